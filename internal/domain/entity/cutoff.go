package entity

import "time"

const dateLayout = "2006-01-02"

// Cutoff es el corte "a la fecha" de una valoración. Date es el día (sin hora) que
// se compara contra las fechas de compra; Until es el instante exclusivo (inicio del
// día siguiente) que se compara contra los movimientos, de modo que el día de corte
// queda incluido completo.
//
// Un mismo Cutoff debe usarse en todos los lectores de un cálculo.
type Cutoff struct {
	Date  time.Time
	Until time.Time
}

// NewCutoff construye el corte para el día de t en la zona horaria de t.
func NewCutoff(t time.Time) Cutoff {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Cutoff{Date: day, Until: day.AddDate(0, 0, 1)}
}

// DateString devuelve el día de corte en formato ISO (YYYY-MM-DD).
func (c Cutoff) DateString() string { return c.Date.Format(dateLayout) }

// IncludesMovement informa si un movimiento con ese timestamp entra en el corte.
func (c Cutoff) IncludesMovement(at time.Time) bool { return at.Before(c.Until) }

// IncludesPurchase informa si una compra con esa fecha entra en el corte.
// Se compara solo año-mes-día (granularidad de las compras).
func (c Cutoff) IncludesPurchase(date time.Time) bool {
	return date.Format(dateLayout) <= c.DateString()
}
