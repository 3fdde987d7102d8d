package repository

// Nombres de los registros durables. Llevan versión en el nombre para que un
// cambio de esquema no lea en silencio datos viejos: un esquema nuevo estrena
// slot y el anterior queda intacto.
const (
	SlotActiveClients    = "active-clients-v4"
	SlotHistoryClients   = "history-clients-v4"
	SlotBusinessExpenses = "business-expenses-v1"
	SlotSessionRole      = "session-role"
	SlotSessionUsername  = "session-username"
)

// SlotStore es un almacén de registros con nombre. Cada slot guarda un valor
// opaco completo; toda escritura reemplaza el contenido anterior del slot y
// es síncrona (al retornar, el dato está persistido en el nivel que el
// backend ofrezca).
//
// Hay dos niveles de durabilidad: el backend bbolt sobrevive reinicios del
// proceso (colecciones de clientes) y el backend en memoria vive lo que vive
// el proceso (identidad de sesión).
type SlotStore interface {
	// Read devuelve el contenido del slot, o (nil, nil) si no existe.
	Read(slot string) ([]byte, error)
	// Write reemplaza el contenido del slot.
	Write(slot string, data []byte) error
	// WriteMulti escribe varios slots como una sola operación atómica: o se
	// aplican todas las escrituras o ninguna.
	WriteMulti(slots map[string][]byte) error
	// Delete elimina el slot; no es error si no existe.
	Delete(slot string) error
}
