package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/harmonyglass/operaciones-api/internal/application/dto"
	"github.com/harmonyglass/operaciones-api/internal/application/expenses"
	"github.com/harmonyglass/operaciones-api/internal/domain"
)

// BusinessExpenseHandler gastos operativos del negocio. Cualquier rol
// autenticado puede registrar uno; el servidor estampa fecha y usuario.
type BusinessExpenseHandler struct {
	uc *expenses.UseCase
}

// NewBusinessExpenseHandler construye el handler.
func NewBusinessExpenseHandler(uc *expenses.UseCase) *BusinessExpenseHandler {
	return &BusinessExpenseHandler{uc: uc}
}

// List GET /business-expenses
func (h *BusinessExpenseHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.BusinessExpensesResponse{
		Username: GetUsername(c),
		Expenses: h.uc.List(),
	})
}

// Create POST /business-expenses
func (h *BusinessExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBusinessExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount debe ser un decimal válido"})
	}

	exp, err := h.uc.Add(in.Item, in.Ref, in.Icon, amount, GetUsername(c))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item es requerido y amount no puede ser negativo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(exp)
}
