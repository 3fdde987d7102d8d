package payments

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/harmonyglass/operaciones-api/internal/application/dto"
	"github.com/harmonyglass/operaciones-api/internal/domain/entity"
)

// activeLister es el contrato mínimo que necesita el resumen de pagos; lo
// implementa *registry.Registry. La interfaz evita acoplar este paquete al
// registro completo.
type activeLister interface {
	Active() []entity.Client
}

// UseCase resumen de pagos: renderizado puro sobre los datos que mantiene el
// registro, sin mutarlos. La aritmética va en decimal; las etiquetas en
// locale es-CO salen del printer de x/text.
type UseCase struct {
	registry activeLister
	printer  *message.Printer
}

// New construye el caso de uso.
func New(registry activeLister) *UseCase {
	return &UseCase{
		registry: registry,
		printer:  message.NewPrinter(language.MustParse("es-CO")),
	}
}

// Summary calcula el avance de pagos por cliente activo y los totales del
// taller. Pendiente nunca baja de cero: un abono por encima del total se
// reporta como saldo cero, no negativo.
func (uc *UseCase) Summary() dto.PaymentsResponse {
	clients := uc.registry.Active()

	resp := dto.PaymentsResponse{
		Items:          make([]dto.ClientPayment, 0, len(clients)),
		TotalFacturado: decimal.Zero,
		TotalAbonado:   decimal.Zero,
		TotalPendiente: decimal.Zero,
	}

	for _, c := range clients {
		pendiente := c.Total.Sub(c.AbonoTotal)
		if pendiente.IsNegative() {
			pendiente = decimal.Zero
		}
		resp.Items = append(resp.Items, dto.ClientPayment{
			ClientID:       c.ID,
			Name:           c.Name,
			Total:          c.Total,
			Abonado:        c.AbonoTotal,
			Pendiente:      pendiente,
			AbonoPercent:   c.AbonoPercent,
			TotalLabel:     uc.money(c.Total),
			AbonadoLabel:   uc.money(c.AbonoTotal),
			PendienteLabel: uc.money(pendiente),
		})
		resp.TotalFacturado = resp.TotalFacturado.Add(c.Total)
		resp.TotalAbonado = resp.TotalAbonado.Add(c.AbonoTotal)
		resp.TotalPendiente = resp.TotalPendiente.Add(pendiente)
	}

	resp.TotalFacturadoLabel = uc.money(resp.TotalFacturado)
	resp.TotalAbonadoLabel = uc.money(resp.TotalAbonado)
	resp.TotalPendienteLabel = uc.money(resp.TotalPendiente)
	return resp
}

// money formatea una cifra en pesos con separador de miles es-CO.
// Sólo presentación: los cálculos quedan en decimal.
func (uc *UseCase) money(d decimal.Decimal) string {
	f, _ := d.Float64()
	return uc.printer.Sprintf("$ %v", number.Decimal(f, number.MaxFractionDigits(2)))
}
