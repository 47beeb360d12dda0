package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento de stock.
type MovementKind string

const (
	MovementReceipt    MovementKind = "receipt"    // entrada por recepción
	MovementIssue      MovementKind = "issue"      // salida a una orden de trabajo o venta
	MovementAdjustment MovementKind = "adjustment" // ajuste manual, con signo
)

// Valid informa si el tipo es uno de los conocidos.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementReceipt, MovementIssue, MovementAdjustment:
		return true
	}
	return false
}

// InventoryMovement representa un evento de stock (solo anexado, lo escribe otro subsistema).
type InventoryMovement struct {
	ID        string
	PartID    PartID
	GarageID  GarageID
	Kind      MovementKind
	Quantity  decimal.Decimal // con signo: positivo entrada/ajuste+, negativo salida/ajuste-
	CreatedAt time.Time
}

// SignedDelta devuelve el efecto del movimiento sobre el stock.
// Recepciones siempre suman y salidas siempre restan, sin importar el signo registrado;
// los ajustes se toman tal cual.
func (m InventoryMovement) SignedDelta() decimal.Decimal {
	switch m.Kind {
	case MovementReceipt:
		return m.Quantity.Abs()
	case MovementIssue:
		return m.Quantity.Abs().Neg()
	default:
		return m.Quantity
	}
}
