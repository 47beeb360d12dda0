// Package valuation contiene el motor de valoración de inventario a una fecha de corte:
// costo promedio ponderado, consumo FIFO de lotes y el ensamblado de filas del reporte.
//
// Es lógica pura (sin I/O). Las cantidades y montos usan shopspring/decimal.
package valuation

import "github.com/shopspring/decimal"

// Escalas de redondeo. El costo unitario lleva 4 decimales porque alimenta una
// multiplicación posterior; cantidades y dinero se muestran con 2.
const (
	QuantityPlaces int32 = 2
	CostPlaces     int32 = 4
	MoneyPlaces    int32 = 2
)

// quantityEpsilon protege la división del promedio contra ruido de redondeo.
var quantityEpsilon = decimal.New(1, -4)

// clampZero devuelve d, o cero si d es negativo.
func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// RoundQuantity redondea una cantidad de stock a 2 decimales.
func RoundQuantity(d decimal.Decimal) decimal.Decimal { return d.Round(QuantityPlaces) }

// RoundCost redondea un costo unitario a 4 decimales.
func RoundCost(d decimal.Decimal) decimal.Decimal { return d.Round(CostPlaces) }

// RoundMoney redondea un valor monetario a 2 decimales.
func RoundMoney(d decimal.Decimal) decimal.Decimal { return d.Round(MoneyPlaces) }
