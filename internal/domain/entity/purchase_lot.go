package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus estado de una compra. Solo las finalizadas afectan la base de costo.
type PurchaseStatus string

const (
	PurchaseDraft     PurchaseStatus = "draft"
	PurchaseFinalized PurchaseStatus = "finalized"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

// PurchaseLot es una línea de compra finalizada: cantidad recibida a un costo en una fecha.
// Sequence desempata lotes del mismo día; lo asigna el almacén de compras en orden de inserción.
type PurchaseLot struct {
	PartID     PartID
	GarageID   GarageID
	PurchaseID string
	Date       time.Time
	Sequence   int64
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
}

// Value devuelve cantidad × costo unitario.
func (l PurchaseLot) Value() decimal.Decimal {
	return l.Quantity.Mul(l.UnitCost)
}

// CompareLots ordena por (fecha, secuencia) y, por estabilidad, por ID de compra.
// Devuelve -1, 0 o 1.
func CompareLots(a, b PurchaseLot) int {
	da, db := a.Date.Format(dateLayout), b.Date.Format(dateLayout)
	if da != db {
		if da < db {
			return -1
		}
		return 1
	}
	if a.Sequence != b.Sequence {
		if a.Sequence < b.Sequence {
			return -1
		}
		return 1
	}
	return strings.Compare(a.PurchaseID, b.PurchaseID)
}
