package bolt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var bucketSlots = []byte("slots")

// SlotStore implementa repository.SlotStore sobre bbolt: un único bucket con
// un par clave/valor por slot. Cada Write es una transacción, por lo que la
// escritura síncrona por mutación que exige el registro de clientes la da el
// propio motor.
type SlotStore struct {
	db *bbolt.DB
}

// Open abre (o crea) la base en dataDir/operaciones.db y asegura el bucket.
func Open(dataDir string) (*SlotStore, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}

	dbPath := filepath.Join(dataDir, "operaciones.db")
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSlots)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("crear bucket: %w", err)
	}

	return &SlotStore{db: db}, nil
}

// Read devuelve el contenido del slot, o (nil, nil) si no existe.
func (s *SlotStore) Read(slot string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketSlots).Get([]byte(slot))
		if v != nil {
			// El valor sólo es válido dentro de la transacción.
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Write reemplaza el contenido del slot.
func (s *SlotStore) Write(slot string, data []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSlots).Put([]byte(slot), data)
	})
}

// WriteMulti escribe varios slots en una sola transacción. Es lo que usa el
// archivado de clientes para mover un registro entre colecciones sin estado
// intermedio observable ni en disco.
func (s *SlotStore) WriteMulti(slots map[string][]byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSlots)
		for slot, data := range slots {
			if err := b.Put([]byte(slot), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete elimina el slot; no es error si no existe.
func (s *SlotStore) Delete(slot string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSlots).Delete([]byte(slot))
	})
}

// Close cierra la base de datos.
func (s *SlotStore) Close() error {
	return s.db.Close()
}
