package dto

import "github.com/shopspring/decimal"

// ClientPayment avance de pagos de un cliente activo. Los campos *Label son
// las cifras formateadas en locale es-CO para render directo.
type ClientPayment struct {
	ClientID       int             `json:"client_id"`
	Name           string          `json:"name"`
	Total          decimal.Decimal `json:"total"`
	Abonado        decimal.Decimal `json:"abonado"`
	Pendiente      decimal.Decimal `json:"pendiente"`
	AbonoPercent   float64         `json:"abono_percent"`
	TotalLabel     string          `json:"total_label"`
	AbonadoLabel   string          `json:"abonado_label"`
	PendienteLabel string          `json:"pendiente_label"`
}

// PaymentsResponse resumen de pagos sobre los clientes activos.
type PaymentsResponse struct {
	Items               []ClientPayment `json:"items"`
	TotalFacturado      decimal.Decimal `json:"total_facturado"`
	TotalAbonado        decimal.Decimal `json:"total_abonado"`
	TotalPendiente      decimal.Decimal `json:"total_pendiente"`
	TotalFacturadoLabel string          `json:"total_facturado_label"`
	TotalAbonadoLabel   string          `json:"total_abonado_label"`
	TotalPendienteLabel string          `json:"total_pendiente_label"`
}
