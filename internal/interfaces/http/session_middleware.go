package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harmonyglass/operaciones-api/internal/application/dto"
	"github.com/harmonyglass/operaciones-api/internal/application/session"
	"github.com/harmonyglass/operaciones-api/internal/domain/entity"
	"github.com/harmonyglass/operaciones-api/pkg/jwt"
)

// Nombre de la cookie de sesión y claves de Locals en Fiber.
const (
	SessionCookie = "harmony_session"
	LocalRole     = "role"
	LocalUsername = "username"
	LocalReadOnly = "read_only"
)

// SessionMiddleware resuelve el rol efectivo de la petición. La cookie
// firmada sólo prueba que es el mismo navegador: la identidad autoritativa
// vive en el store de sesión del servidor, y el sid de la cookie debe
// coincidir con la sesión viva. Cookie ausente, inválida o de una sesión
// anterior deja el rol en RoleNone; decidir qué hacer con eso es asunto de
// la política de navegación, no de este middleware.
func SessionMiddleware(jwtSecret string, sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalRole, entity.RoleNone)
		c.Locals(LocalUsername, "")

		cookie := c.Cookies(SessionCookie)
		if cookie == "" {
			return c.Next()
		}
		_, _, sid, err := jwt.Parse(jwtSecret, cookie)
		if err != nil || sid == "" || sid != sessions.SessionID() {
			return c.Next()
		}

		c.Locals(LocalRole, sessions.CurrentRole())
		c.Locals(LocalUsername, sessions.CurrentUser())
		return c.Next()
	}
}

// GetRole devuelve el rol efectivo de la petición (RoleNone si no hay sesión).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return entity.RoleNone
	}
	s, _ := v.(string)
	return s
}

// GetUsername devuelve el usuario de la sesión, o cadena vacía.
func GetUsername(c *fiber.Ctx) string {
	v := c.Locals(LocalUsername)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// IsReadOnly indica si la política marcó la ruta como de sólo lectura para
// el rol actual (después de NavigationPolicy).
func IsReadOnly(c *fiber.Ctx) bool {
	v, _ := c.Locals(LocalReadOnly).(bool)
	return v
}

// RequireAuth exige sesión autenticada en acciones (no navegación): sin
// sesión responde 401 en vez de redirigir.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !entity.ValidRole(GetRole(c)) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "se requiere sesión"})
		}
		return c.Next()
	}
}

// RequireAdmin es la segunda capa de autorización, por acción: las
// mutaciones (crear, actualizar, archivar, borrar) son sólo de admin aunque
// la ruta sea alcanzable para basic.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if !entity.ValidRole(role) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "se requiere sesión"})
		}
		if role != entity.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acción reservada al rol admin"})
		}
		return c.Next()
	}
}
