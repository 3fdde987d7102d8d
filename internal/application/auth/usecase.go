package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/harmonyglass/operaciones-api/internal/domain"
	"github.com/harmonyglass/operaciones-api/internal/domain/entity"
)

// Account cuenta local del servicio: usuario, hash bcrypt y rol asignado.
// Una cuenta con hash vacío está deshabilitada.
type Account struct {
	Username string
	Hash     string
	Role     string
}

// UseCase verifica credenciales contra las cuentas configuradas y resuelve
// el rol. Es el colaborador de login: el núcleo (sesión, registro, política)
// sólo recibe el par (rol, usuario) resultante.
type UseCase struct {
	accounts []Account
}

// New construye el caso de uso con las cuentas configuradas.
func New(accounts []Account) *UseCase {
	return &UseCase{accounts: accounts}
}

// Login verifica usuario y contraseña y devuelve el rol de la cuenta.
// Devuelve ErrUnauthorized ante credenciales inválidas, sin distinguir si
// falló el usuario o la contraseña.
func (uc *UseCase) Login(username, password string) (role string, err error) {
	for _, acc := range uc.accounts {
		if acc.Username != username || acc.Hash == "" {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(acc.Hash), []byte(password)); err != nil {
			return entity.RoleNone, domain.ErrUnauthorized
		}
		return acc.Role, nil
	}
	return entity.RoleNone, domain.ErrUnauthorized
}
