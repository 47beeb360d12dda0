package valuation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/garage-valuation/internal/domain"
)

// Nombres de las políticas de relleno de brecha.
const (
	PolicyAverageCost = "average_cost"
	PolicyLastCost    = "last_cost"
	PolicyNone        = "none"
)

// GapContext datos disponibles para valorar el stock que los lotes no alcanzan a cubrir.
type GapContext struct {
	GapQty       decimal.Decimal
	AvgCost      decimal.Decimal
	StandardCost decimal.Decimal
	LastCost     decimal.Decimal
	HasLastCost  bool
}

// GapFillPolicy decide cuánto vale el stock sin lote que lo respalde
// (ajustes manuales, saldos iniciales, compras borradas).
type GapFillPolicy interface {
	Name() string
	Fill(gap GapContext) decimal.Decimal
}

// averageCostGapFill valora la brecha al costo promedio ponderado.
type averageCostGapFill struct{}

func (averageCostGapFill) Name() string { return PolicyAverageCost }

func (averageCostGapFill) Fill(gap GapContext) decimal.Decimal {
	return gap.GapQty.Mul(gap.AvgCost)
}

// lastCostGapFill valora la brecha al costo del lote más reciente; sin lotes usa el promedio.
type lastCostGapFill struct{}

func (lastCostGapFill) Name() string { return PolicyLastCost }

func (lastCostGapFill) Fill(gap GapContext) decimal.Decimal {
	if gap.HasLastCost {
		return gap.GapQty.Mul(gap.LastCost)
	}
	return gap.GapQty.Mul(gap.AvgCost)
}

// noGapFill no asigna valor al stock sin respaldo (valoración FIFO estricta).
type noGapFill struct{}

func (noGapFill) Name() string { return PolicyNone }

func (noGapFill) Fill(GapContext) decimal.Decimal { return decimal.Zero }

var gapFillPolicies = map[string]GapFillPolicy{
	PolicyAverageCost: averageCostGapFill{},
	PolicyLastCost:    lastCostGapFill{},
	PolicyNone:        noGapFill{},
}

// DefaultGapFillPolicy política por defecto: costo promedio ponderado.
func DefaultGapFillPolicy() GapFillPolicy { return averageCostGapFill{} }

// GapFillPolicyByName busca una política registrada. Vacío devuelve la política por defecto.
func GapFillPolicyByName(name string) (GapFillPolicy, error) {
	if name == "" {
		return DefaultGapFillPolicy(), nil
	}
	p, ok := gapFillPolicies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPolicy, name)
	}
	return p, nil
}

// GapFillPolicyNames lista las políticas disponibles en orden alfabético.
func GapFillPolicyNames() []string {
	names := make([]string, 0, len(gapFillPolicies))
	for n := range gapFillPolicies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
