package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/harmonyglass/operaciones-api/internal/application/dto"
	"github.com/harmonyglass/operaciones-api/internal/application/registry"
	"github.com/harmonyglass/operaciones-api/internal/domain"
	"github.com/harmonyglass/operaciones-api/internal/domain/entity"
)

// ClientHandler expone las mutaciones del ciclo de vida de clientes sobre el
// registro. El "borrar" del tablero es un archivado (el dato pasa al
// histórico); el único borrado real es el del histórico.
type ClientHandler struct {
	registry *registry.Registry
}

// NewClientHandler construye el handler.
func NewClientHandler(reg *registry.Registry) *ClientHandler {
	return &ClientHandler{registry: reg}
}

// Create POST /new-client (admin)
//
// La página de alta envía el cliente completo con un id fresco ya generado.
// Un id repetido es error del generador aguas arriba y se responde 409.
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in entity.Client
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	if in.Total.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "total no puede ser negativo"})
	}

	if err := h.registry.Add(in); err != nil {
		switch err {
		case domain.ErrDuplicate:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_IDENTITY", Message: "ya existe un cliente con ese id"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id debe ser positivo y el status de alta no puede ser Finalizado"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(in)
}

// Update PUT /expense-management (admin)
//
// Reemplazo de registro completo, no merge: la página envía el cliente
// entero con los campos que quiera conservar ya copiados.
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in entity.Client
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	if err := h.registry.Update(in); err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el cliente no está activo"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "un update no puede asignar el status Finalizado"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(in)
}

// Select POST /dashboard/selection/:id
//
// Fija el cliente que enfoca la vista de gastos. No valida existencia: una
// selección colgante resuelve a "sin cliente" al leer.
func (h *ClientHandler) Select(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	h.registry.Select(id)
	return c.JSON(fiber.Map{"selected": id})
}

// Archive DELETE /dashboard/clients/:id (admin)
//
// Semánticamente es un movimiento al histórico, nunca un borrado duro del
// dato activo. Sobre un id no activo es un no-op y se reporta 404.
func (h *ClientHandler) Archive(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}

	if err := h.registry.Archive(id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el cliente no está activo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteHistory DELETE /clients/:id (admin)
//
// Borrado permanente del histórico, sin recuperación. Idempotente: repetirlo
// con un id ausente responde igual que la primera vez.
func (h *ClientHandler) DeleteHistory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}

	if err := h.registry.DeleteFromHistory(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
