package registry

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/harmonyglass/operaciones-api/internal/domain"
	"github.com/harmonyglass/operaciones-api/internal/domain/entity"
	"github.com/harmonyglass/operaciones-api/internal/domain/repository"
	"github.com/harmonyglass/operaciones-api/pkg/logger"
)

// Registry mantiene las dos colecciones persistentes de clientes: activos e
// histórico. Un cliente pertenece a exactamente una de las dos; el archivado
// lo mueve (nunca lo copia) de activos a histórico estampando status
// "Finalizado" y la fecha de cierre.
//
// Cada mutación serializa la colección afectada completa y la escribe en su
// slot durable antes de retornar. Las mutaciones se procesan de a una: el
// mutex reproduce el modelo de eventos discretos de la UI original.
type Registry struct {
	mu    sync.Mutex
	store repository.SlotStore
	log   *logger.Logger

	active  []entity.Client
	history []entity.Client

	// Selección transitoria: id del cliente activo que enfoca la vista de
	// gastos. Referencia débil, se resuelve contra activos en cada lectura;
	// 0 significa "sin selección".
	selectedID int
}

// New construye el registro restaurando ambas colecciones desde sus slots.
// Un slot ausente o corrupto degrada a colección vacía: el sistema prefiere
// un estado vacío usable a fallar en el arranque.
func New(store repository.SlotStore, log *logger.Logger) *Registry {
	r := &Registry{store: store, log: log}
	r.active = r.restore(repository.SlotActiveClients)
	r.history = r.restore(repository.SlotHistoryClients)
	return r
}

func (r *Registry) restore(slot string) []entity.Client {
	data, err := r.store.Read(slot)
	if err != nil {
		r.log.Warn().Err(err).Str("slot", slot).Msg("no se pudo leer el slot, se inicia vacío")
		return []entity.Client{}
	}
	if data == nil {
		return []entity.Client{}
	}
	var clients []entity.Client
	if err := json.Unmarshal(data, &clients); err != nil {
		r.log.Warn().Err(err).Str("slot", slot).Msg("slot corrupto, se inicia vacío")
		return []entity.Client{}
	}
	return clients
}

// Add inserta un cliente nuevo al frente de activos y lo deja seleccionado.
// El id debe ser positivo y no existir en ninguna de las dos colecciones;
// un id repetido es un error del generador de ids aguas arriba, no un estado
// que el registro pueda absorber. El alta nunca entra con status "Finalizado".
func (r *Registry) Add(c entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID <= 0 {
		return domain.ErrInvalidInput
	}
	if c.Status == entity.StatusFinalizado {
		return domain.ErrInvalidInput
	}
	if r.indexOf(r.active, c.ID) >= 0 || r.indexOf(r.history, c.ID) >= 0 {
		return domain.ErrDuplicate
	}

	next := make([]entity.Client, 0, len(r.active)+1)
	next = append(next, c)
	next = append(next, r.active...)
	if err := r.flush(repository.SlotActiveClients, next); err != nil {
		return err
	}
	r.active = next
	r.selectedID = c.ID
	return nil
}

// Update reemplaza el registro completo del cliente activo con el mismo id,
// conservando su posición. Es un reemplazo total, no un merge: el llamador
// debe enviar el registro con todos los campos que quiera conservar.
// Devuelve ErrNotFound si el id no está en activos.
func (r *Registry) Update(c entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(r.active, c.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	// "Finalizado" sólo lo asigna Archive; un update no puede colarlo.
	if c.Status == entity.StatusFinalizado {
		return domain.ErrInvalidInput
	}

	next := make([]entity.Client, len(r.active))
	copy(next, r.active)
	next[i] = c
	if err := r.flush(repository.SlotActiveClients, next); err != nil {
		return err
	}
	r.active = next
	return nil
}

// Archive mueve el cliente activo con ese id al histórico, estampando
// status "Finalizado" y End con la fecha local de hoy. Las dos colecciones
// se escriben en una sola operación atómica del almacén: ningún lector ni
// ningún reinicio puede ver el cliente en ambas o en ninguna.
// Devuelve ErrNotFound si el id no está en activos; el llamador lo trata
// como no-op.
func (r *Registry) Archive(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(r.active, id)
	if i < 0 {
		return domain.ErrNotFound
	}

	archived := r.active[i]
	archived.Status = entity.StatusFinalizado
	archived.End = domain.LocalDate(time.Now())

	nextHistory := make([]entity.Client, 0, len(r.history)+1)
	nextHistory = append(nextHistory, archived)
	nextHistory = append(nextHistory, r.history...)

	nextActive := make([]entity.Client, 0, len(r.active)-1)
	nextActive = append(nextActive, r.active[:i]...)
	nextActive = append(nextActive, r.active[i+1:]...)

	activeJSON, err := json.Marshal(nextActive)
	if err != nil {
		return err
	}
	historyJSON, err := json.Marshal(nextHistory)
	if err != nil {
		return err
	}
	err = r.store.WriteMulti(map[string][]byte{
		repository.SlotActiveClients:  activeJSON,
		repository.SlotHistoryClients: historyJSON,
	})
	if err != nil {
		return err
	}

	r.active = nextActive
	r.history = nextHistory
	return nil
}

// DeleteFromHistory elimina permanentemente el cliente del histórico.
// Idempotente: si el id no está, no hay mutación ni escritura.
func (r *Registry) DeleteFromHistory(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(r.history, id)
	if i < 0 {
		return nil
	}

	next := make([]entity.Client, 0, len(r.history)-1)
	next = append(next, r.history[:i]...)
	next = append(next, r.history[i+1:]...)
	if err := r.flush(repository.SlotHistoryClients, next); err != nil {
		return err
	}
	r.history = next
	return nil
}

// Select fija el cliente seleccionado. No valida que el id exista: una
// selección colgante simplemente resuelve a "sin selección" al leer.
// Select(0) limpia la selección.
func (r *Registry) Select(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selectedID = id
}

// Selected resuelve la selección contra activos únicamente: un cliente
// archivado o eliminado deja de ser resoluble aunque su id siga seleccionado.
// Devuelve (cliente, true) o (cero, false).
func (r *Registry) Selected() (entity.Client, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(r.active, r.selectedID)
	if i < 0 {
		return entity.Client{}, false
	}
	return r.active[i], true
}

// Active devuelve una copia de la colección de activos, más reciente primero.
func (r *Registry) Active() []entity.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Client(nil), r.active...)
}

// History devuelve una copia del histórico, más reciente primero.
func (r *Registry) History() []entity.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Client(nil), r.history...)
}

func (r *Registry) indexOf(list []entity.Client, id int) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) flush(slot string, clients []entity.Client) error {
	data, err := json.Marshal(clients)
	if err != nil {
		return err
	}
	return r.store.Write(slot, data)
}
