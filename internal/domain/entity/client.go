package entity

import "github.com/shopspring/decimal"

// Estados de un cliente. El conjunto es abierto (la UI puede usar etiquetas
// propias como "Activo" o "En pausa"), pero "Finalizado" está reservado:
// sólo la transición de archivado lo asigna.
const (
	StatusActivo     = "Activo"
	StatusFinalizado = "Finalizado"
)

// Client representa un cliente/proyecto del taller. El ID es un entero
// positivo único asignado en la creación y nunca se reutiliza; el resto de
// campos son mutables mientras el cliente está activo.
//
// End queda vacío mientras el cliente está activo y se estampa con la fecha
// de archivado (formato local) exactamente al pasar al histórico.
type Client struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Desc     string          `json:"desc"`
	Status   string          `json:"status"`
	Progress string          `json:"progress"` // clase de color de fondo (pista de presentación)
	Pct      string          `json:"pct"`
	Start    string          `json:"start"`
	End      string          `json:"end"`
	Color    string          `json:"color"` // clase de color de texto (pista de presentación)
	Total    decimal.Decimal `json:"total"`
	Phone    string          `json:"phone,omitempty"`
	Location string          `json:"location,omitempty"`

	// Avance de pagos: porcentaje y monto real abonado sobre Total.
	AbonoPercent float64         `json:"abonoPercent,omitempty"`
	AbonoTotal   decimal.Decimal `json:"abonoTotal"`

	// Gastos registrados contra el cliente; el orden de inserción importa
	// (la UI muestra el más reciente primero, aquí sólo se preserva).
	Expenses []Expense `json:"expenses,omitempty"`
}

// Expense gasto asociado a un cliente. El ID es único dentro de la lista del
// cliente dueño, no globalmente.
type Expense struct {
	ID     int             `json:"id"`
	Item   string          `json:"item"`
	Ref    string          `json:"ref"`
	Amount decimal.Decimal `json:"amount"`
	Icon   string          `json:"icon"`
}
