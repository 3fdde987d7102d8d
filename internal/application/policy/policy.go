package policy

import "github.com/harmonyglass/operaciones-api/internal/domain/entity"

// Rutas de navegación de la aplicación.
const (
	RouteLogin            = "/"
	RouteDashboard        = "/dashboard"
	RouteClientsHistory   = "/clients"
	RouteNewClient        = "/new-client"
	RouteExpenses         = "/expense-management"
	RoutePayments         = "/payments"
	RouteBusinessExpenses = "/business-expenses"
	RouteSettings         = "/settings"
)

// Decision resultado de evaluar el acceso a una ruta: permitido (con o sin
// capacidad de mutación) o redirección a otra ruta.
type Decision struct {
	Allowed  bool
	ReadOnly bool   // alcanzable pero sin acciones de mutación (rol basic)
	Redirect string // destino cuando Allowed es false
}

// Allow acceso completo.
func Allow() Decision { return Decision{Allowed: true} }

// AllowReadOnly acceso de sólo lectura: la ruta es alcanzable pero el
// orquestador no ofrece las acciones de mutación a ese rol.
func AllowReadOnly() Decision { return Decision{Allowed: true, ReadOnly: true} }

// RedirectTo acceso denegado con redirección.
func RedirectTo(path string) Decision { return Decision{Redirect: path} }

// Decide evalúa la matriz de autorización por ruta. Función pura: toda la
// política de navegación vive en esta tabla y no en condicionales dispersos.
// Cualquier ruta no reconocida redirige al login, con cualquier rol.
//
// La tabla gobierna alcanzabilidad; los chequeos finos por acción (crear,
// actualizar y borrar son sólo de admin) son una segunda capa que aplica el
// orquestador HTTP.
func Decide(path, role string) Decision {
	switch path {
	case RouteLogin:
		return Allow()

	case RouteDashboard, RouteClientsHistory, RouteExpenses:
		switch role {
		case entity.RoleAdmin:
			return Allow()
		case entity.RoleBasic:
			return AllowReadOnly()
		default:
			return RedirectTo(RouteLogin)
		}

	case RouteNewClient:
		if role == entity.RoleAdmin {
			return Allow()
		}
		// Tanto basic como sin sesión vuelven al dashboard; si no hay
		// sesión, el dashboard a su vez redirige al login.
		return RedirectTo(RouteDashboard)

	case RoutePayments, RouteBusinessExpenses, RouteSettings:
		if entity.ValidRole(role) {
			return Allow()
		}
		return RedirectTo(RouteLogin)

	default:
		return RedirectTo(RouteLogin)
	}
}
