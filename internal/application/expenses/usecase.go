package expenses

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harmonyglass/operaciones-api/internal/domain"
	"github.com/harmonyglass/operaciones-api/internal/domain/entity"
	"github.com/harmonyglass/operaciones-api/internal/domain/repository"
	"github.com/harmonyglass/operaciones-api/pkg/logger"
)

// UseCase gastos operativos del negocio, no ligados a clientes. Colección
// propia con slot durable propio; el registro de clientes nunca la toca.
type UseCase struct {
	mu    sync.Mutex
	store repository.SlotStore

	items []entity.BusinessExpense
}

// New construye el caso de uso restaurando la colección desde su slot.
// Slot ausente o corrupto degrada a colección vacía.
func New(store repository.SlotStore, log *logger.Logger) *UseCase {
	uc := &UseCase{store: store, items: []entity.BusinessExpense{}}
	data, err := store.Read(repository.SlotBusinessExpenses)
	if err != nil {
		log.Warn().Err(err).Str("slot", repository.SlotBusinessExpenses).Msg("no se pudo leer el slot, se inicia vacío")
		return uc
	}
	if data == nil {
		return uc
	}
	if err := json.Unmarshal(data, &uc.items); err != nil {
		log.Warn().Err(err).Str("slot", repository.SlotBusinessExpenses).Msg("slot corrupto, se inicia vacío")
		uc.items = []entity.BusinessExpense{}
	}
	return uc
}

// List devuelve una copia de los gastos, más reciente primero.
func (uc *UseCase) List() []entity.BusinessExpense {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return append([]entity.BusinessExpense(nil), uc.items...)
}

// Add registra un gasto estampando la fecha local de hoy y el usuario de la
// sesión que lo registra. El id es secuencial sobre la colección.
func (uc *UseCase) Add(item, ref, icon string, amount decimal.Decimal, user string) (entity.BusinessExpense, error) {
	if strings.TrimSpace(item) == "" || amount.IsNegative() {
		return entity.BusinessExpense{}, domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	exp := entity.BusinessExpense{
		ID:     uc.nextID(),
		Item:   item,
		Amount: amount,
		Ref:    ref,
		Icon:   icon,
		Date:   domain.LocalDate(time.Now()),
		User:   user,
	}

	next := make([]entity.BusinessExpense, 0, len(uc.items)+1)
	next = append(next, exp)
	next = append(next, uc.items...)

	data, err := json.Marshal(next)
	if err != nil {
		return entity.BusinessExpense{}, err
	}
	if err := uc.store.Write(repository.SlotBusinessExpenses, data); err != nil {
		return entity.BusinessExpense{}, err
	}
	uc.items = next
	return exp, nil
}

func (uc *UseCase) nextID() int {
	max := 0
	for _, e := range uc.items {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}
