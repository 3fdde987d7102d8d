package dto

import "github.com/harmonyglass/operaciones-api/internal/domain/entity"

// DashboardResponse vista del tablero: clientes activos y si el rol actual
// es de sólo lectura (sin acciones de archivar/crear).
type DashboardResponse struct {
	ReadOnly bool            `json:"read_only"`
	Clients  []entity.Client `json:"clients"`
}

// HistoryResponse vista del histórico de clientes archivados.
type HistoryResponse struct {
	ReadOnly bool            `json:"read_only"`
	Clients  []entity.Client `json:"clients"`
}

// ExpenseManagementResponse vista de gestión de gastos, acotada al cliente
// seleccionado. Client es nil si la selección no resuelve a un activo.
type ExpenseManagementResponse struct {
	ReadOnly bool           `json:"read_only"`
	Client   *entity.Client `json:"client"`
}

// BusinessExpensesResponse vista de gastos operativos del negocio.
type BusinessExpensesResponse struct {
	Username string                   `json:"username"`
	Expenses []entity.BusinessExpense `json:"expenses"`
}

// CreateBusinessExpenseRequest alta de un gasto operativo. Date y User los
// estampa el servidor.
type CreateBusinessExpenseRequest struct {
	Item   string `json:"item"`
	Ref    string `json:"ref"`
	Icon   string `json:"icon"`
	Amount string `json:"amount"` // decimal en texto, ej. "125000.50"
}
