package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harmonyglass/operaciones-api/internal/application/auth"
	"github.com/harmonyglass/operaciones-api/internal/application/expenses"
	"github.com/harmonyglass/operaciones-api/internal/application/payments"
	"github.com/harmonyglass/operaciones-api/internal/application/policy"
	"github.com/harmonyglass/operaciones-api/internal/application/registry"
	"github.com/harmonyglass/operaciones-api/internal/application/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Registry  *registry.Registry
	Sessions  *session.Store
	AuthUC    *auth.UseCase
	Payments  *payments.UseCase
	Expenses  *expenses.UseCase
	JWTSecret string
	JWTIssuer string
	AppName   string
}

// Router registra la superficie de navegación y las acciones. Las rutas de
// página (GET) pasan por NavigationPolicy, que redirige cuando la matriz de
// acceso lo niega; las acciones de mutación llevan además la capa fina
// RequireAuth/RequireAdmin.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(SessionMiddleware(deps.JWTSecret, deps.Sessions))

	nav := NavigationPolicy()
	pages := NewPagesHandler(deps.Registry, deps.Sessions, deps.Payments, deps.AppName)
	sessionHandler := NewSessionHandler(deps.AuthUC, deps.Sessions, deps.JWTSecret, deps.JWTIssuer)
	clientHandler := NewClientHandler(deps.Registry)
	expenseHandler := NewBusinessExpenseHandler(deps.Expenses)

	// Login (siempre alcanzable)
	app.Get("/", nav, pages.Login)
	app.Post("/login", sessionHandler.Login)
	app.Post("/logout", RequireAuth(), sessionHandler.Logout)

	// Tablero de clientes activos
	app.Get("/dashboard", nav, pages.Dashboard)
	app.Post("/dashboard/selection/:id", RequireAuth(), clientHandler.Select)
	app.Delete("/dashboard/clients/:id", RequireAdmin(), clientHandler.Archive)

	// Histórico de clientes archivados
	app.Get("/clients", nav, pages.History)
	app.Delete("/clients/:id", RequireAdmin(), clientHandler.DeleteHistory)

	// Alta de clientes (sólo admin, por política y por acción)
	app.Get("/new-client", nav, pages.NewClient)
	app.Post("/new-client", RequireAdmin(), clientHandler.Create)

	// Gestión de gastos del cliente seleccionado
	app.Get("/expense-management", nav, pages.ExpenseManagement)
	app.Put("/expense-management", RequireAdmin(), clientHandler.Update)

	// Pagos y gastos del negocio
	app.Get("/payments", nav, pages.Payments)
	app.Get("/business-expenses", nav, expenseHandler.List)
	app.Post("/business-expenses", RequireAuth(), expenseHandler.Create)

	// Ajustes
	app.Get("/settings", nav, pages.Settings)

	// Comodín: toda ruta no reconocida vuelve al login.
	app.Use(func(c *fiber.Ctx) error {
		return c.Redirect(policy.RouteLogin, fiber.StatusFound)
	})
}
