package session

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/harmonyglass/operaciones-api/internal/domain"
	"github.com/harmonyglass/operaciones-api/internal/domain/entity"
	"github.com/harmonyglass/operaciones-api/internal/domain/repository"
)

// Store mantiene la identidad de la sesión actual: rol y nombre de usuario.
// Existe identidad si y sólo si hubo un login sin logout posterior.
//
// El respaldo es el almacén de nivel sesión (en memoria): la identidad
// sobrevive recargas de página dentro de la misma sesión pero nunca un
// reinicio del proceso. Es un nivel de durabilidad deliberadamente más débil
// que el del registro de clientes.
type Store struct {
	mu    sync.RWMutex
	slots repository.SlotStore

	role      string
	username  string
	sessionID string
}

// New construye el store de sesión, restaurando la identidad del respaldo si
// existe (recarga dentro de la misma sesión).
func New(slots repository.SlotStore) *Store {
	s := &Store{slots: slots}

	roleJSON, err := slots.Read(repository.SlotSessionRole)
	if err != nil || roleJSON == nil {
		return s
	}
	var role string
	if err := json.Unmarshal(roleJSON, &role); err != nil || !entity.ValidRole(role) {
		return s
	}
	user, err := slots.Read(repository.SlotSessionUsername)
	if err != nil {
		return s
	}
	s.role = role
	s.username = string(user)
	s.sessionID = uuid.NewString()
	return s
}

// Login establece la identidad de la sesión sin precondición sobre el estado
// anterior y la escribe en el respaldo antes de retornar. Genera un id de
// sesión nuevo que ata las cookies emitidas a esta identidad.
func (s *Store) Login(role, username string) (sessionID string, err error) {
	if !entity.ValidRole(role) {
		return "", domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	roleJSON, err := json.Marshal(role)
	if err != nil {
		return "", err
	}
	err = s.slots.WriteMulti(map[string][]byte{
		repository.SlotSessionRole:     roleJSON,
		repository.SlotSessionUsername: []byte(username),
	})
	if err != nil {
		return "", err
	}

	s.role = role
	s.username = username
	s.sessionID = uuid.NewString()
	return s.sessionID, nil
}

// Logout limpia la identidad completa. Atómico para los lectores: nadie
// puede observar la sesión con sólo uno de rol/usuario borrado.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slots.Delete(repository.SlotSessionRole); err != nil {
		return err
	}
	if err := s.slots.Delete(repository.SlotSessionUsername); err != nil {
		return err
	}
	s.role = entity.RoleNone
	s.username = ""
	s.sessionID = ""
	return nil
}

// CurrentRole devuelve el rol de la sesión, o RoleNone si no hay sesión.
func (s *Store) CurrentRole() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// CurrentUser devuelve el usuario de la sesión, o cadena vacía.
func (s *Store) CurrentUser() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// SessionID devuelve el id de la sesión viva, o cadena vacía si no hay
// sesión. Una cookie cuyo sid no coincida con este valor no autentica.
func (s *Store) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}
