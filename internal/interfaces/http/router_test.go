package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/harmonyglass/operaciones-api/internal/application/auth"
	"github.com/harmonyglass/operaciones-api/internal/application/dto"
	"github.com/harmonyglass/operaciones-api/internal/application/expenses"
	"github.com/harmonyglass/operaciones-api/internal/application/payments"
	"github.com/harmonyglass/operaciones-api/internal/application/registry"
	"github.com/harmonyglass/operaciones-api/internal/application/session"
	"github.com/harmonyglass/operaciones-api/internal/domain/entity"
	"github.com/harmonyglass/operaciones-api/internal/infrastructure/memstore"
	apphttp "github.com/harmonyglass/operaciones-api/internal/interfaces/http"
	"github.com/harmonyglass/operaciones-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testPassword  = "secreto123"
)

// buildTestApp levanta la aplicación completa sobre almacenes en memoria,
// con cuentas admin/basic verificables por bcrypt.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	log := logger.New(logger.Config{Env: "development", Level: "error"})
	reg := registry.New(memstore.New(), log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Registry: reg,
		Sessions: session.New(memstore.New()),
		AuthUC: auth.New([]auth.Account{
			{Username: "marcela", Hash: string(hash), Role: entity.RoleAdmin},
			{Username: "jorge", Hash: string(hash), Role: entity.RoleBasic},
		}),
		Payments:  payments.New(reg),
		Expenses:  expenses.New(memstore.New(), log),
		JWTSecret: testJWTSecret,
		JWTIssuer: "operaciones-test",
		AppName:   "harmony-operaciones-test",
	})
	return app
}

// login autentica al usuario y devuelve la cookie de sesión.
func login(t *testing.T, app *fiber.App, username string) *http.Cookie {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/login", dto.LoginRequest{Username: username, Password: testPassword}, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "el login debe ser exitoso")

	for _, ck := range resp.Cookies() {
		if ck.Name == "harmony_session" {
			return ck
		}
	}
	t.Fatal("el login no emitió la cookie de sesión")
	return nil
}

// doReq lanza una petición sin cuerpo, con cookie opcional.
func doReq(t *testing.T, app *fiber.App, method, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// doJSON lanza una petición con cuerpo JSON, con cookie opcional.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func clienteJSON(id int, name string) map[string]any {
	return map[string]any{
		"id":     id,
		"name":   name,
		"desc":   "remodelación de cocina",
		"status": "Activo",
		"start":  "1/2/2026",
		"total":  1000,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Navegación y política
// ──────────────────────────────────────────────────────────────────────────────

// Sin sesión, toda ruta protegida redirige al login; /new-client redirige al
// dashboard (que a su vez redirige al login).
func TestNavegacion_SinSesionRedirige(t *testing.T) {
	app := buildTestApp(t)

	for _, path := range []string{"/dashboard", "/clients", "/expense-management", "/payments", "/business-expenses", "/settings"} {
		resp := doReq(t, app, http.MethodGet, path, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode, "%s sin sesión debe redirigir", path)
		assert.Equal(t, "/", resp.Header.Get("Location"), "%s debe redirigir al login", path)
	}

	resp := doReq(t, app, http.MethodGet, "/new-client", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

// El login siempre es alcanzable, con o sin sesión.
func TestNavegacion_LoginSiempreAlcanzable(t *testing.T) {
	app := buildTestApp(t)

	resp := doReq(t, app, http.MethodGet, "/", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := login(t, app, "marcela")
	resp = doReq(t, app, http.MethodGet, "/", cookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Una ruta no reconocida vuelve al login con cualquier rol.
func TestNavegacion_RutaDesconocidaRedirige(t *testing.T) {
	app := buildTestApp(t)
	cookie := login(t, app, "marcela")

	for _, ck := range []*http.Cookie{nil, cookie} {
		resp := doReq(t, app, http.MethodGet, "/no-existe", ck)
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	}
}

// basic navega /new-client y es devuelto al dashboard; admin entra.
func TestNavegacion_NewClientPorRol(t *testing.T) {
	app := buildTestApp(t)

	basic := login(t, app, "jorge")
	resp := doReq(t, app, http.MethodGet, "/new-client", basic)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	admin := login(t, app, "marcela")
	resp = doReq(t, app, http.MethodGet, "/new-client", admin)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/login", dto.LoginRequest{Username: "marcela", Password: "equivocada"}, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/login", dto.LoginRequest{Username: "", Password: ""}, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// La cookie emitida es de sesión: sin Expires ni MaxAge.
func TestLogin_CookieDeSesion(t *testing.T) {
	app := buildTestApp(t)

	cookie := login(t, app, "marcela")
	assert.True(t, cookie.Expires.IsZero() || cookie.Expires.Unix() <= 0, "la cookie no debe llevar Expires")
	assert.LessOrEqual(t, cookie.MaxAge, 0, "la cookie no debe llevar MaxAge")
}

// Tras logout, la navegación protegida redirige al login aunque el
// navegador conserve la cookie, sin importar el rol previo.
func TestLogout_InvalidaLaSesion(t *testing.T) {
	app := buildTestApp(t)
	cookie := login(t, app, "marcela")

	resp := doReq(t, app, http.MethodPost, "/logout", cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doReq(t, app, http.MethodGet, "/dashboard", cookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

// Una cookie de un proceso anterior no autentica: el sid muere con el
// proceso que lo emitió.
func TestCookieDeProcesoAnteriorNoAutentica(t *testing.T) {
	app1 := buildTestApp(t)
	cookie := login(t, app1, "marcela")

	app2 := buildTestApp(t)
	resp := doReq(t, app2, http.MethodGet, "/dashboard", cookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida de clientes
// ──────────────────────────────────────────────────────────────────────────────

// Alta → tablero → archivado → histórico → borrado permanente (dos veces,
// idempotente).
func TestAdmin_CicloDeVidaCompleto(t *testing.T) {
	app := buildTestApp(t)
	cookie := login(t, app, "marcela")

	resp := doJSON(t, app, http.MethodPost, "/new-client", clienteJSON(1, "Acme"), cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	dashboard := decode[dto.DashboardResponse](t, doReq(t, app, http.MethodGet, "/dashboard", cookie))
	require.Len(t, dashboard.Clients, 1)
	assert.False(t, dashboard.ReadOnly, "admin no es sólo lectura")
	assert.Equal(t, "Acme", dashboard.Clients[0].Name)

	resp = doReq(t, app, http.MethodDelete, "/dashboard/clients/1", cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	dashboard = decode[dto.DashboardResponse](t, doReq(t, app, http.MethodGet, "/dashboard", cookie))
	assert.Empty(t, dashboard.Clients)

	history := decode[dto.HistoryResponse](t, doReq(t, app, http.MethodGet, "/clients", cookie))
	require.Len(t, history.Clients, 1)
	assert.Equal(t, entity.StatusFinalizado, history.Clients[0].Status)
	assert.NotEmpty(t, history.Clients[0].End)

	// Archivar de nuevo el mismo id ya no encuentra nada.
	resp = doReq(t, app, http.MethodDelete, "/dashboard/clients/1", cookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	for i := 0; i < 2; i++ {
		resp = doReq(t, app, http.MethodDelete, "/clients/1", cookie)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode, "el borrado del histórico es idempotente")
	}
	history = decode[dto.HistoryResponse](t, doReq(t, app, http.MethodGet, "/clients", cookie))
	assert.Empty(t, history.Clients)
}

func TestCreate_IdDuplicadoResponde409(t *testing.T) {
	app := buildTestApp(t)
	cookie := login(t, app, "marcela")

	resp := doJSON(t, app, http.MethodPost, "/new-client", clienteJSON(1, "Acme"), cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	out := doJSON(t, app, http.MethodPost, "/new-client", clienteJSON(1, "Otro"), cookie)
	body := decode[dto.ErrorResponse](t, out)
	assert.Equal(t, "DUPLICATE_IDENTITY", body.Code)
}

// basic alcanza las vistas en sólo lectura y ninguna mutación.
func TestBasic_SoloLectura(t *testing.T) {
	app := buildTestApp(t)

	admin := login(t, app, "marcela")
	resp := doJSON(t, app, http.MethodPost, "/new-client", clienteJSON(1, "Acme"), admin)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	basic := login(t, app, "jorge")

	dashboard := decode[dto.DashboardResponse](t, doReq(t, app, http.MethodGet, "/dashboard", basic))
	assert.True(t, dashboard.ReadOnly)
	require.Len(t, dashboard.Clients, 1)

	resp = doJSON(t, app, http.MethodPost, "/new-client", clienteJSON(2, "Bosque"), basic)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doReq(t, app, http.MethodDelete, "/dashboard/clients/1", basic)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/expense-management", clienteJSON(1, "Acme"), basic)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doReq(t, app, http.MethodDelete, "/clients/1", basic)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// La selección acota la vista de gastos y es una referencia débil: archivar
// al seleccionado la deja resolviendo a nada.
func TestSeleccion_AcotaVistaDeGastos(t *testing.T) {
	app := buildTestApp(t)
	cookie := login(t, app, "marcela")

	resp := doJSON(t, app, http.MethodPost, "/new-client", clienteJSON(5, "Acme"), cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doReq(t, app, http.MethodPost, "/dashboard/selection/5", cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := decode[dto.ExpenseManagementResponse](t, doReq(t, app, http.MethodGet, "/expense-management", cookie))
	require.NotNil(t, view.Client)
	assert.Equal(t, 5, view.Client.ID)

	resp = doReq(t, app, http.MethodDelete, "/dashboard/clients/5", cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	view = decode[dto.ExpenseManagementResponse](t, doReq(t, app, http.MethodGet, "/expense-management", cookie))
	assert.Nil(t, view.Client, "la selección de un archivado resuelve a nada")
}

// La actualización es reemplazo de registro completo sobre un activo.
func TestUpdate_ClienteActivo(t *testing.T) {
	app := buildTestApp(t)
	cookie := login(t, app, "marcela")

	resp := doJSON(t, app, http.MethodPost, "/new-client", clienteJSON(1, "Acme"), cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	mod := clienteJSON(1, "Acme Renovada")
	mod["expenses"] = []map[string]any{
		{"id": 1, "item": "madera", "ref": "FAC-001", "amount": 200, "icon": "wood"},
	}
	resp = doJSON(t, app, http.MethodPut, "/expense-management", mod, cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	dashboard := decode[dto.DashboardResponse](t, doReq(t, app, http.MethodGet, "/dashboard", cookie))
	require.Len(t, dashboard.Clients, 1)
	assert.Equal(t, "Acme Renovada", dashboard.Clients[0].Name)
	assert.Len(t, dashboard.Clients[0].Expenses, 1)

	resp = doJSON(t, app, http.MethodPut, "/expense-management", clienteJSON(99, "Nadie"), cookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gastos del negocio y ajustes
// ──────────────────────────────────────────────────────────────────────────────

// Cualquier rol autenticado registra gastos del negocio; el servidor estampa
// el usuario de la sesión.
func TestGastosDelNegocio(t *testing.T) {
	app := buildTestApp(t)
	basic := login(t, app, "jorge")

	resp := doJSON(t, app, http.MethodPost, "/business-expenses", dto.CreateBusinessExpenseRequest{
		Item: "gasolina", Ref: "GAS-02", Icon: "fuel", Amount: "120.50",
	}, basic)
	created := decode[entity.BusinessExpense](t, resp)
	assert.Equal(t, "jorge", created.User)
	assert.NotEmpty(t, created.Date)

	view := decode[dto.BusinessExpensesResponse](t, doReq(t, app, http.MethodGet, "/business-expenses", basic))
	assert.Equal(t, "jorge", view.Username)
	require.Len(t, view.Expenses, 1)
	assert.Equal(t, "gasolina", view.Expenses[0].Item)

	// Sin sesión no se registra.
	resp = doJSON(t, app, http.MethodPost, "/business-expenses", dto.CreateBusinessExpenseRequest{Item: "x", Amount: "1"}, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSettings_IdentidadActual(t *testing.T) {
	app := buildTestApp(t)
	cookie := login(t, app, "marcela")

	view := decode[dto.SessionResponse](t, doReq(t, app, http.MethodGet, "/settings", cookie))
	assert.Equal(t, entity.RoleAdmin, view.Role)
	assert.Equal(t, "marcela", view.Username)
}

// El tablero de pagos agrega los activos con sus abonos.
func TestPayments_Resumen(t *testing.T) {
	app := buildTestApp(t)
	cookie := login(t, app, "marcela")

	c := clienteJSON(1, "Acme")
	c["abonoTotal"] = 400
	resp := doJSON(t, app, http.MethodPost, "/new-client", c, cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	summary := decode[dto.PaymentsResponse](t, doReq(t, app, http.MethodGet, "/payments", cookie))
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 1, summary.Items[0].ClientID)
	assert.Equal(t, "600", summary.Items[0].Pendiente.String())
	assert.NotEmpty(t, summary.TotalPendienteLabel)
}
