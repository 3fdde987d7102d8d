package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harmonyglass/operaciones-api/internal/application/dto"
	"github.com/harmonyglass/operaciones-api/internal/application/payments"
	"github.com/harmonyglass/operaciones-api/internal/application/registry"
	"github.com/harmonyglass/operaciones-api/internal/application/session"
	"github.com/harmonyglass/operaciones-api/internal/domain/entity"
)

// PagesHandler sirve los datos que renderiza cada página de la aplicación.
// Son lecturas puras sobre el registro y la sesión; toda mutación entra por
// ClientHandler, SessionHandler o BusinessExpenseHandler.
type PagesHandler struct {
	registry *registry.Registry
	sessions *session.Store
	payments *payments.UseCase
	appName  string
}

// NewPagesHandler construye el handler.
func NewPagesHandler(reg *registry.Registry, sessions *session.Store, pay *payments.UseCase, appName string) *PagesHandler {
	return &PagesHandler{registry: reg, sessions: sessions, payments: pay, appName: appName}
}

// Login GET /
func (h *PagesHandler) Login(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service":       h.appName,
		"authenticated": entity.ValidRole(GetRole(c)),
	})
}

// Dashboard GET /dashboard
//
// Clientes activos, más reciente primero. ReadOnly le dice a la UI que no
// ofrezca archivar ni crear para el rol actual.
func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(dto.DashboardResponse{
		ReadOnly: IsReadOnly(c),
		Clients:  h.registry.Active(),
	})
}

// History GET /clients
func (h *PagesHandler) History(c *fiber.Ctx) error {
	return c.JSON(dto.HistoryResponse{
		ReadOnly: IsReadOnly(c),
		Clients:  h.registry.History(),
	})
}

// NewClient GET /new-client (admin, por política)
//
// SuggestedID es sólo una sugerencia para el formulario; el alta valida la
// unicidad real del id que llegue.
func (h *PagesHandler) NewClient(c *fiber.Ctx) error {
	maxID := 0
	for _, cl := range h.registry.Active() {
		if cl.ID > maxID {
			maxID = cl.ID
		}
	}
	for _, cl := range h.registry.History() {
		if cl.ID > maxID {
			maxID = cl.ID
		}
	}
	return c.JSON(fiber.Map{"suggested_id": maxID + 1})
}

// ExpenseManagement GET /expense-management
//
// Vista acotada al cliente seleccionado; si la selección apunta a un cliente
// archivado o eliminado, client viene nulo.
func (h *PagesHandler) ExpenseManagement(c *fiber.Ctx) error {
	resp := dto.ExpenseManagementResponse{ReadOnly: IsReadOnly(c)}
	if cl, ok := h.registry.Selected(); ok {
		resp.Client = &cl
	}
	return c.JSON(resp)
}

// Payments GET /payments
func (h *PagesHandler) Payments(c *fiber.Ctx) error {
	return c.JSON(h.payments.Summary())
}

// Settings GET /settings
func (h *PagesHandler) Settings(c *fiber.Ctx) error {
	return c.JSON(dto.SessionResponse{
		Role:     h.sessions.CurrentRole(),
		Username: h.sessions.CurrentUser(),
	})
}
