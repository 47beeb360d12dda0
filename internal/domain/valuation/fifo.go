package valuation

import "github.com/shopspring/decimal"

// FIFOInput datos de un repuesto para la valoración FIFO.
type FIFOInput struct {
	Book         LotBook         // lotes ordenados de más antiguo a más reciente
	StockQty     decimal.Decimal // stock neto a la fecha de corte
	OutboundQty  decimal.Decimal // salidas históricas (issue) a la fecha de corte, sin signo
	AvgCost      decimal.Decimal // costo promedio ponderado (4 decimales)
	StandardCost decimal.Decimal
}

// FIFOResult resultado detallado de la valoración FIFO de un repuesto.
type FIFOResult struct {
	Value             decimal.Decimal // valor final, >= 0, 2 decimales
	RemainingLotQty   decimal.Decimal // unidades respaldadas por lotes no consumidos
	RemainingLotValue decimal.Decimal // valor de esas unidades a su costo de lote
	ExcessLotQty      decimal.Decimal // unidades de lotes remanentes por encima del stock (ajustes negativos)
	GapQty            decimal.Decimal // stock sin lote que lo respalde
	GapValue          decimal.Decimal // valor asignado a la brecha por la política
}

// HasGap indica deriva de datos: hay más stock del que los lotes explican.
func (r FIFOResult) HasGap() bool { return r.GapQty.IsPositive() }

type fifoLayer struct {
	qty  decimal.Decimal
	cost decimal.Decimal
}

// FIFOValue reproduce el consumo FIFO de lotes y valora el stock remanente.
//
//  1. Recorre los lotes del más antiguo al más reciente descontando OutboundQty: un lote
//     completamente cubierto por el contador se consume entero; el primero que no lo está
//     aporta su porción no consumida y el contador queda en cero.
//  2. El valor es la suma de las porciones no consumidas a su costo de lote. Si superan el
//     stock (salidas registradas como ajustes negativos) el excedente solo se reporta como
//     deriva en ExcessLotQty; el valor no cambia.
//  3. Si el stock supera lo remanente, la brecha se valora con la política de relleno.
//  4. Valor final = max(0, round(valor, 2)).
//
// Nunca falla: entradas negativas se toman como cero.
func FIFOValue(in FIFOInput, policy GapFillPolicy) FIFOResult {
	if policy == nil {
		policy = DefaultGapFillPolicy()
	}
	stock := clampZero(in.StockQty)
	toConsume := clampZero(in.OutboundQty)

	layers := make([]fifoLayer, 0, len(in.Book.Lots))
	remainingQty := decimal.Zero
	for _, lot := range in.Book.Lots {
		qty := clampZero(lot.Quantity)
		if toConsume.GreaterThanOrEqual(qty) {
			toConsume = toConsume.Sub(qty)
			continue
		}
		unconsumed := clampZero(qty.Sub(toConsume))
		toConsume = decimal.Zero
		layers = append(layers, fifoLayer{qty: unconsumed, cost: clampZero(lot.UnitCost)})
		remainingQty = remainingQty.Add(unconsumed)
	}

	excess := decimal.Zero
	if remainingQty.GreaterThan(stock) {
		excess = remainingQty.Sub(stock)
	}

	remainingValue := decimal.Zero
	for _, l := range layers {
		remainingValue = remainingValue.Add(l.qty.Mul(l.cost))
	}
	remainingValue = clampZero(remainingValue)

	res := FIFOResult{
		RemainingLotQty:   remainingQty,
		RemainingLotValue: remainingValue,
		ExcessLotQty:      excess,
		GapQty:            decimal.Zero,
		GapValue:          decimal.Zero,
	}

	value := remainingValue
	if stock.GreaterThan(remainingQty) {
		lastCost, hasLast := in.Book.LastCost()
		res.GapQty = stock.Sub(remainingQty)
		res.GapValue = clampZero(policy.Fill(GapContext{
			GapQty:       res.GapQty,
			AvgCost:      clampZero(in.AvgCost),
			StandardCost: clampZero(in.StandardCost),
			LastCost:     lastCost,
			HasLastCost:  hasLast,
		}))
		value = value.Add(res.GapValue)
	}

	res.Value = clampZero(RoundMoney(value))
	return res
}
