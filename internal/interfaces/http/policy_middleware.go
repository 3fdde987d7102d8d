package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harmonyglass/operaciones-api/internal/application/policy"
)

// NavigationPolicy evalúa la matriz de acceso en cada navegación (rutas de
// página GET). Denegado se resuelve con redirección, nunca con un error
// hacia la UI. Debe ir después de SessionMiddleware.
func NavigationPolicy() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := policy.Decide(c.Path(), GetRole(c))
		if !d.Allowed {
			return c.Redirect(d.Redirect, fiber.StatusFound)
		}
		c.Locals(LocalReadOnly, d.ReadOnly)
		return c.Next()
	}
}
