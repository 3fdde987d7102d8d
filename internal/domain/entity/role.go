package entity

// Roles válidos para la sesión. RoleNone representa "sin autenticar".
const (
	RoleAdmin = "admin"
	RoleBasic = "basic"
	RoleNone  = ""
)

// ValidRole indica si s es un rol autenticado conocido.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleBasic
}
