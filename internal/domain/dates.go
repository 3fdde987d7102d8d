package domain

import "time"

// LocalDate formatea una fecha como cadena local corta (día/mes/año sin
// ceros a la izquierda), el mismo formato que producía la UI con
// toLocaleDateString(). Las fechas del dominio son cadenas, no time.Time:
// se comparan y persisten tal cual.
func LocalDate(t time.Time) string {
	return t.Format("2/1/2006")
}
