package valuation_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/garage-valuation/internal/domain"
	"github.com/jhoicas/garage-valuation/internal/domain/entity"
	"github.com/jhoicas/garage-valuation/internal/domain/valuation"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(n int) time.Time { return time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC) }

func lot(part entity.PartID, seq int64, date time.Time, qty, cost string) entity.PurchaseLot {
	return entity.PurchaseLot{
		PartID:     part,
		GarageID:   "g-a",
		PurchaseID: fmt.Sprintf("pur-%02d", seq),
		Date:       date,
		Sequence:   seq,
		Quantity:   d(qty),
		UnitCost:   d(cost),
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]interface{}{fmt.Sprintf("esperado %s, obtenido %s", want, got.String())}, msgAndArgs...)...)
}

func TestLotBook_OrdenaPorFechaYSecuencia(t *testing.T) {
	book := valuation.NewLotBook([]entity.PurchaseLot{
		lot("p", 3, day(2), "1", "30"),
		lot("p", 2, day(1), "1", "20"),
		lot("p", 1, day(1), "1", "10"),
	})

	require.Len(t, book.Lots, 3)
	assertDec(t, "10", book.Lots[0].UnitCost)
	assertDec(t, "20", book.Lots[1].UnitCost)
	assertDec(t, "30", book.Lots[2].UnitCost)
	assertDec(t, "3", book.TotalQty)
	assertDec(t, "60", book.TotalValue)

	last, ok := book.LastCost()
	assert.True(t, ok)
	assertDec(t, "30", last)
}

func TestLotBook_NegativosSeAcotanACero(t *testing.T) {
	book := valuation.NewLotBook([]entity.PurchaseLot{
		lot("p", 1, day(1), "-4", "10"),
		lot("p", 2, day(2), "2", "-5"),
	})

	assertDec(t, "2", book.TotalQty)
	assertDec(t, "0", book.TotalValue)
}

// Lote 1 (10 @ 100) consumido, lote 2 (5 @ 120) con 3 restantes.
func TestScenarioA_ConsumoParcial(t *testing.T) {
	book := valuation.NewLotBook([]entity.PurchaseLot{
		lot("p", 1, day(1), "10", "100"),
		lot("p", 2, day(2), "5", "120"),
	})
	avg := valuation.AverageCost(book, d("0"))
	assertDec(t, "106.6667", avg)

	res := valuation.FIFOValue(valuation.FIFOInput{
		Book:        book,
		StockQty:    d("3"),
		OutboundQty: d("12"),
		AvgCost:     avg,
	}, nil)

	assertDec(t, "360", res.Value)
	assertDec(t, "3", res.RemainingLotQty)
	assert.False(t, res.HasGap())
	assertDec(t, "320", valuation.WeightedValue(d("3"), avg))
}

func TestScenarioB_SinComprasUsaCostoEstandar(t *testing.T) {
	book := valuation.NewLotBook(nil)
	avg := valuation.AverageCost(book, d("50"))
	assertDec(t, "50", avg)

	res := valuation.FIFOValue(valuation.FIFOInput{Book: book, StockQty: d("4"), AvgCost: avg}, nil)
	assertDec(t, "200", res.Value)
	assertDec(t, "200", valuation.WeightedValue(d("4"), avg))
	assert.True(t, res.HasGap())
}

func TestScenarioB_CostoEstandarNegativo(t *testing.T) {
	avg := valuation.AverageCost(valuation.NewLotBook(nil), d("-7"))
	assertDec(t, "0", avg)
}

func TestScenarioC_BrechaRellenaConPromedio(t *testing.T) {
	book := valuation.NewLotBook([]entity.PurchaseLot{lot("p", 1, day(1), "5", "10")})
	avg := valuation.AverageCost(book, d("0"))

	res := valuation.FIFOValue(valuation.FIFOInput{Book: book, StockQty: d("8"), AvgCost: avg}, nil)

	assertDec(t, "5", res.RemainingLotQty)
	assertDec(t, "50", res.RemainingLotValue)
	assertDec(t, "3", res.GapQty)
	assertDec(t, "30", res.GapValue)
	assertDec(t, "80", res.Value)
}

func TestFIFO_Conservacion(t *testing.T) {
	book := valuation.NewLotBook([]entity.PurchaseLot{
		lot("p", 1, day(1), "4", "10"),
		lot("p", 2, day(2), "6", "12.5"),
		lot("p", 3, day(3), "3", "15"),
	})

	tests := []struct {
		name     string
		stock    string
		outbound string
		want     string
		excess   string
	}{
		// 5 salidas: lote 1 completo y 1 unidad del lote 2.
		{name: "stock igual a lotes remanentes", stock: "8", outbound: "5", want: "107.5", excess: "0"},
		{name: "stock menor que lotes remanentes", stock: "2", outbound: "5", want: "107.5", excess: "6"},
		{name: "sin salidas y stock reducido", stock: "1", outbound: "0", want: "160", excess: "12"},
		{name: "salidas cubren todo menos el ultimo lote", stock: "3", outbound: "10", want: "45", excess: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := valuation.FIFOValue(valuation.FIFOInput{
				Book:        book,
				StockQty:    d(tt.stock),
				OutboundQty: d(tt.outbound),
				AvgCost:     valuation.AverageCost(book, d("0")),
			}, nil)

			assertDec(t, tt.want, res.Value)
			assertDec(t, tt.want, res.RemainingLotValue)
			assertDec(t, "0", res.GapQty)
			assertDec(t, tt.excess, res.ExcessLotQty)
		})
	}
}

func TestFIFO_ExcedenteDeLotesSoloSeReporta(t *testing.T) {
	book := valuation.NewLotBook([]entity.PurchaseLot{
		lot("p", 1, day(1), "10", "100"),
		lot("p", 2, day(2), "5", "120"),
	})
	avg := valuation.AverageCost(book, d("0"))

	// Sin salidas tipo issue pero el stock bajó a 6 por ajustes negativos.
	res := valuation.FIFOValue(valuation.FIFOInput{Book: book, StockQty: d("6"), AvgCost: avg}, nil)

	assertDec(t, "1600", res.Value) // 10×100 + 5×120
	assertDec(t, "15", res.RemainingLotQty)
	assertDec(t, "9", res.ExcessLotQty)
	assert.False(t, res.HasGap())

	// 12 salidas: lote 1 completo y 2 unidades del lote 2; quedan 3 × 120.
	res = valuation.FIFOValue(valuation.FIFOInput{Book: book, StockQty: d("2"), OutboundQty: d("12"), AvgCost: avg}, nil)

	assertDec(t, "360", res.Value)
	assertDec(t, "3", res.RemainingLotQty)
	assertDec(t, "1", res.ExcessLotQty)
}

func TestFIFO_EntradasNegativasNoFallan(t *testing.T) {
	book := valuation.NewLotBook([]entity.PurchaseLot{lot("p", 1, day(1), "5", "10")})

	res := valuation.FIFOValue(valuation.FIFOInput{
		Book:        book,
		StockQty:    d("-3"),
		OutboundQty: d("-10"),
		AvgCost:     d("-1"),
	}, nil)

	assertDec(t, "0", res.Value)
	assertDec(t, "0", res.GapQty)
}

func TestFIFO_SalidasSuperanLotes(t *testing.T) {
	book := valuation.NewLotBook([]entity.PurchaseLot{lot("p", 1, day(1), "5", "10")})

	res := valuation.FIFOValue(valuation.FIFOInput{
		Book:        book,
		StockQty:    d("2"),
		OutboundQty: d("9"),
		AvgCost:     d("10"),
	}, nil)

	assertDec(t, "0", res.RemainingLotQty)
	assertDec(t, "20", res.Value)
}

func TestGapFillPolicies(t *testing.T) {
	book := valuation.NewLotBook([]entity.PurchaseLot{
		lot("p", 1, day(1), "5", "10"),
		lot("p", 2, day(2), "2", "20"),
	})
	avg := valuation.AverageCost(book, d("0"))
	assertDec(t, "12.8571", avg)

	cases := []struct {
		policy string
		want   string
	}{
		{valuation.PolicyAverageCost, "128.57"},
		{valuation.PolicyLastCost, "150"},
		{valuation.PolicyNone, "90"},
	}
	for _, tc := range cases {
		t.Run(tc.policy, func(t *testing.T) {
			p, err := valuation.GapFillPolicyByName(tc.policy)
			require.NoError(t, err)
			assert.Equal(t, tc.policy, p.Name())

			res := valuation.FIFOValue(valuation.FIFOInput{Book: book, StockQty: d("10"), AvgCost: avg}, p)
			assertDec(t, tc.want, res.Value)
		})
	}
}

func TestGapFillPolicyByName(t *testing.T) {
	p, err := valuation.GapFillPolicyByName("")
	require.NoError(t, err)
	assert.Equal(t, valuation.PolicyAverageCost, p.Name())

	_, err = valuation.GapFillPolicyByName("lifo")
	assert.ErrorIs(t, err, domain.ErrUnknownPolicy)

	assert.Equal(t, []string{"average_cost", "last_cost", "none"}, valuation.GapFillPolicyNames())
}

func TestLastCostSinLotesUsaPromedio(t *testing.T) {
	p, err := valuation.GapFillPolicyByName(valuation.PolicyLastCost)
	require.NoError(t, err)

	res := valuation.FIFOValue(valuation.FIFOInput{Book: valuation.NewLotBook(nil), StockQty: d("2"), AvgCost: d("40")}, p)
	assertDec(t, "80", res.Value)
}

func TestHistorySummary(t *testing.T) {
	book := valuation.NewLotBook([]entity.PurchaseLot{
		lot("p", 1, day(1), "1", "100"),
		lot("p", 2, day(2), "1", "120"),
		lot("p", 3, day(3), "1", "130.456"),
		lot("p", 4, day(4), "1", "140"),
	})

	assert.Equal(t, "2026-01-04 @ 140.00; 2026-01-03 @ 130.46; 2026-01-02 @ 120.00", valuation.HistorySummary(book, 3))
	assert.Equal(t, "2026-01-04 @ 140.00", valuation.HistorySummary(book, 1))
	assert.Equal(t, "", valuation.HistorySummary(valuation.NewLotBook(nil), 3))
	assert.Equal(t, "", valuation.HistorySummary(book, 0))
}

type driftSpy struct{ events []valuation.DriftEvent }

func (s *driftSpy) ObserveDrift(ev valuation.DriftEvent) { s.events = append(s.events, ev) }

func sampleInputs() valuation.Inputs {
	parts := []*entity.Part{
		{ID: "p-filter", Name: "Filtro de aceite", SKU: "FA-1", Unit: "und", Category: "Filtros", StandardCost: d("0")},
		{ID: "p-brake", Name: "Pastilla de freno", SKU: "PF-2", Unit: "jgo", StandardCost: d("50")},
		{ID: "p-zero", Name: "Bujía", SKU: "BJ-3", Unit: "und", StandardCost: d("8")},
		{ID: "p-drift", Name: "Aceite 5W30", SKU: "AC-4", Unit: "lt", Category: "Lubricantes", StandardCost: d("0")},
	}
	return valuation.Inputs{
		Parts: parts,
		Stock: map[entity.PartID]decimal.Decimal{
			"p-filter": d("3"),
			"p-brake":  d("4"),
			"p-zero":   d("0"),
			"p-drift":  d("8"),
		},
		Outbound: map[entity.PartID]decimal.Decimal{
			"p-filter": d("12"),
		},
		Books: map[entity.PartID]valuation.LotBook{
			"p-filter": valuation.NewLotBook([]entity.PurchaseLot{
				lot("p-filter", 1, day(1), "10", "100"),
				lot("p-filter", 2, day(2), "5", "120"),
			}),
			"p-drift": valuation.NewLotBook([]entity.PurchaseLot{lot("p-drift", 3, day(3), "5", "10")}),
		},
	}
}

func render(r valuation.Report) string {
	var b strings.Builder
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "%s|%s|%s|%s|%s|%s|%s|%s|%s|%s\n", row.PartID, row.PartName, row.SKU, row.Category,
			row.StockQty.StringFixed(2), row.AvgCost.StringFixed(4), row.WeightedValue.StringFixed(2),
			row.FIFOValue.StringFixed(2), row.TotalPurchasedQty.StringFixed(2), row.History)
	}
	fmt.Fprintf(&b, "%d|%s|%s|%s", r.Totals.ProductCount, r.Totals.TotalStockQty.StringFixed(2),
		r.Totals.TotalFIFOValue.StringFixed(2), r.Totals.TotalWeightedValue.StringFixed(2))
	return b.String()
}

func TestAssembler_FilasYTotales(t *testing.T) {
	spy := &driftSpy{}
	report := valuation.NewAssembler(nil, valuation.DefaultHistorySize).Assemble(sampleInputs(), spy)

	require.Len(t, report.Rows, 3, "los repuestos sin stock no se incluyen")
	assert.Equal(t, entity.PartID("p-drift"), report.Rows[0].PartID)
	assert.Equal(t, entity.PartID("p-filter"), report.Rows[1].PartID)
	assert.Equal(t, entity.PartID("p-brake"), report.Rows[2].PartID)

	filter := report.Rows[1]
	assertDec(t, "360", filter.FIFOValue)
	assertDec(t, "320", filter.WeightedValue)
	assertDec(t, "15", filter.TotalPurchasedQty)
	assert.Equal(t, "2026-01-02 @ 120.00; 2026-01-01 @ 100.00", filter.History)

	brake := report.Rows[2]
	assert.Equal(t, entity.UncategorizedLabel, brake.Category)
	assert.Equal(t, "", brake.History)
	assertDec(t, "50", brake.AvgCost)
	assert.True(t, brake.FIFOValue.Equal(brake.WeightedValue))

	assertDec(t, "80", report.Rows[0].FIFOValue)

	assert.Equal(t, 3, report.Totals.ProductCount)
	stock, fifo, weighted := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range report.Rows {
		stock = stock.Add(r.StockQty)
		fifo = fifo.Add(r.FIFOValue)
		weighted = weighted.Add(r.WeightedValue)
		assert.True(t, r.WeightedValue.Equal(r.StockQty.Mul(r.AvgCost).Round(2)))
	}
	assert.True(t, report.Totals.TotalStockQty.Equal(stock))
	assert.True(t, report.Totals.TotalFIFOValue.Equal(fifo))
	assert.True(t, report.Totals.TotalWeightedValue.Equal(weighted))

	require.Len(t, spy.events, 2)
	ids := []entity.PartID{spy.events[0].PartID, spy.events[1].PartID}
	assert.ElementsMatch(t, []entity.PartID{"p-brake", "p-drift"}, ids)
}

func TestAssembler_ExcedenteDeLotesNotificaSinAlterarValor(t *testing.T) {
	spy := &driftSpy{}
	in := valuation.Inputs{
		Parts: []*entity.Part{{ID: "p-adj", Name: "Correa", SKU: "CR-1", Unit: "und", StandardCost: d("0")}},
		Stock: map[entity.PartID]decimal.Decimal{"p-adj": d("6")},
		Books: map[entity.PartID]valuation.LotBook{
			"p-adj": valuation.NewLotBook([]entity.PurchaseLot{
				lot("p-adj", 1, day(1), "10", "100"),
				lot("p-adj", 2, day(2), "5", "120"),
			}),
		},
	}

	report := valuation.NewAssembler(nil, valuation.DefaultHistorySize).Assemble(in, spy)

	require.Len(t, report.Rows, 1)
	assertDec(t, "1600", report.Rows[0].FIFOValue)
	require.Len(t, spy.events, 1)
	assertDec(t, "9", spy.events[0].ExcessQty)
	assertDec(t, "0", spy.events[0].GapQty)
}

func TestAssembler_Idempotente(t *testing.T) {
	a := valuation.NewAssembler(nil, valuation.DefaultHistorySize)
	first := render(a.Assemble(sampleInputs(), nil))
	second := render(a.Assemble(sampleInputs(), nil))
	assert.Equal(t, first, second)
}

func TestAssembler_SinRepuestos(t *testing.T) {
	report := valuation.NewAssembler(nil, 3).Assemble(valuation.Inputs{}, nil)
	assert.Empty(t, report.Rows)
	assert.Equal(t, 0, report.Totals.ProductCount)
	assert.True(t, report.Totals.TotalFIFOValue.IsZero())
}
