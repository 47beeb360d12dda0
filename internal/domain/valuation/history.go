package valuation

import (
	"strings"
)

// DefaultHistorySize cantidad de compras recientes que se muestran en el resumen.
const DefaultHistorySize = 3

const historySeparator = "; "

// HistorySummary arma el texto "2024-03-05 @ 120.00; 2024-02-01 @ 100.00" con las
// limit compras más recientes, de la más nueva a la más antigua.
// Sin historial devuelve cadena vacía.
func HistorySummary(book LotBook, limit int) string {
	if limit <= 0 || book.IsEmpty() {
		return ""
	}
	parts := make([]string, 0, limit)
	for i := len(book.Lots) - 1; i >= 0 && len(parts) < limit; i-- {
		lot := book.Lots[i]
		parts = append(parts, lot.Date.Format("2006-01-02")+" @ "+RoundMoney(lot.UnitCost).StringFixed(MoneyPlaces))
	}
	return strings.Join(parts, historySeparator)
}
