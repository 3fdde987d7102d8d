package entity

import "github.com/shopspring/decimal"

// BusinessExpense gasto operativo del negocio, no ligado a ningún cliente.
// Date y User se estampan al registrarlo (fecha local y usuario de la sesión).
type BusinessExpense struct {
	ID     int             `json:"id"`
	Item   string          `json:"item"`
	Amount decimal.Decimal `json:"amount"`
	Ref    string          `json:"ref"`
	Icon   string          `json:"icon"`
	Date   string          `json:"date"`
	User   string          `json:"user"`
}
