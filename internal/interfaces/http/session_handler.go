package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/harmonyglass/operaciones-api/internal/application/auth"
	"github.com/harmonyglass/operaciones-api/internal/application/dto"
	"github.com/harmonyglass/operaciones-api/internal/application/session"
	"github.com/harmonyglass/operaciones-api/internal/domain"
	"github.com/harmonyglass/operaciones-api/pkg/jwt"
)

// SessionHandler maneja login y logout: verifica credenciales con el
// colaborador de auth, establece la identidad en el store de sesión y emite
// o retira la cookie firmada.
type SessionHandler struct {
	auth      *auth.UseCase
	sessions  *session.Store
	jwtSecret string
	jwtIssuer string
}

// NewSessionHandler construye el handler.
func NewSessionHandler(authUC *auth.UseCase, sessions *session.Store, jwtSecret, jwtIssuer string) *SessionHandler {
	return &SessionHandler{auth: authUC, sessions: sessions, jwtSecret: jwtSecret, jwtIssuer: jwtIssuer}
}

// Login POST /login
//
// Verifica credenciales, establece la sesión y emite la cookie. La cookie no
// lleva expiración: es una cookie de sesión del navegador, sobrevive una
// recarga pero no un reinicio del navegador, y el sid que transporta muere
// con el proceso del servidor.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username y password son requeridos"})
	}

	role, err := h.auth.Login(in.Username, in.Password)
	if err != nil {
		if err == domain.ErrUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	sid, err := h.sessions.Login(role, in.Username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	token, err := jwt.Generate(h.jwtSecret, role, in.Username, sid, h.jwtIssuer)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		// Sin Expires/MaxAge: cookie de sesión.
	})

	return c.JSON(dto.SessionResponse{Role: role, Username: in.Username})
}

// Logout POST /logout
//
// Limpia la identidad de la sesión y retira la cookie. Tras esto cualquier
// navegación a ruta protegida redirige al login, sin importar el rol previo.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.SendStatus(fiber.StatusNoContent)
}
