package memstore

import "sync"

// SlotStore implementa repository.SlotStore en memoria. Es el nivel de
// durabilidad "sesión": los datos viven lo que vive el proceso y se pierden
// con él, que es exactamente lo que debe pasar con la identidad de sesión.
// También sirve como doble del almacén durable en los tests.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// New crea un almacén vacío.
func New() *SlotStore {
	return &SlotStore{slots: make(map[string][]byte)}
}

// Read devuelve el contenido del slot, o (nil, nil) si no existe.
func (s *SlotStore) Read(slot string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[slot]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Write reemplaza el contenido del slot.
func (s *SlotStore) Write(slot string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = append([]byte(nil), data...)
	return nil
}

// WriteMulti escribe varios slots bajo el mismo lock, sin estado intermedio
// visible para otros lectores.
func (s *SlotStore) WriteMulti(slots map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for slot, data := range slots {
		s.slots[slot] = append([]byte(nil), data...)
	}
	return nil
}

// Delete elimina el slot; no es error si no existe.
func (s *SlotStore) Delete(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}
