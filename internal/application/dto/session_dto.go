package dto

// LoginRequest credenciales del formulario de login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse identidad de la sesión actual.
type SessionResponse struct {
	Role     string `json:"role"`
	Username string `json:"username"`
}
