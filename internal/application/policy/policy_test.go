package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harmonyglass/operaciones-api/internal/application/policy"
	"github.com/harmonyglass/operaciones-api/internal/domain/entity"
)

// La matriz de autorización completa, ruta por rol. Centralizarla en una
// función pura permite verificarla entera sin levantar el servidor.
func TestDecide_MatrizCompleta(t *testing.T) {
	allow := policy.Allow()
	readOnly := policy.AllowReadOnly()
	toLogin := policy.RedirectTo(policy.RouteLogin)
	toDashboard := policy.RedirectTo(policy.RouteDashboard)

	cases := []struct {
		path string
		none policy.Decision
		bsc  policy.Decision
		adm  policy.Decision
	}{
		{policy.RouteLogin, allow, allow, allow},
		{policy.RouteDashboard, toLogin, readOnly, allow},
		{policy.RouteClientsHistory, toLogin, readOnly, allow},
		{policy.RouteNewClient, toDashboard, toDashboard, allow},
		{policy.RouteExpenses, toLogin, readOnly, allow},
		{policy.RoutePayments, toLogin, allow, allow},
		{policy.RouteBusinessExpenses, toLogin, allow, allow},
		{policy.RouteSettings, toLogin, allow, allow},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.none, policy.Decide(tc.path, entity.RoleNone), "%s sin sesión", tc.path)
		assert.Equal(t, tc.bsc, policy.Decide(tc.path, entity.RoleBasic), "%s con basic", tc.path)
		assert.Equal(t, tc.adm, policy.Decide(tc.path, entity.RoleAdmin), "%s con admin", tc.path)
	}
}

// Cualquier ruta no reconocida redirige al login, con cualquier rol.
func TestDecide_RutaDesconocidaRedirigeAlLogin(t *testing.T) {
	for _, role := range []string{entity.RoleNone, entity.RoleBasic, entity.RoleAdmin} {
		d := policy.Decide("/no-existe", role)
		assert.False(t, d.Allowed)
		assert.Equal(t, policy.RouteLogin, d.Redirect)
	}
}

// Un rol inventado se trata como sin sesión.
func TestDecide_RolDesconocidoEsComoSinSesion(t *testing.T) {
	d := policy.Decide(policy.RouteDashboard, "superusuario")
	assert.Equal(t, policy.RedirectTo(policy.RouteLogin), d)
}
