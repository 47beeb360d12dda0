package valuation

import "github.com/shopspring/decimal"

// AverageCost implementa el costo promedio ponderado del repuesto:
//
//	avgCost = TotalValue / TotalQty        si TotalQty > 0.0001
//	avgCost = max(0, standardCost)         en otro caso (sin historial de compras)
//
// El resultado se redondea a 4 decimales.
func AverageCost(book LotBook, standardCost decimal.Decimal) decimal.Decimal {
	if book.TotalQty.GreaterThan(quantityEpsilon) {
		return RoundCost(clampZero(book.TotalValue.Div(book.TotalQty)))
	}
	return RoundCost(clampZero(standardCost))
}

// WeightedValue devuelve round(stockQty × avgCost, 2).
func WeightedValue(stockQty, avgCost decimal.Decimal) decimal.Decimal {
	return RoundMoney(clampZero(stockQty).Mul(clampZero(avgCost)))
}
