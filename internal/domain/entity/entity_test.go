package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
)

func TestGarageSetScope_OrdenaYDeduplica(t *testing.T) {
	scope := entity.NewGarageSetScope([]entity.GarageID{"g-b", "g-a", "g-b", ""})

	assert.False(t, scope.IsSingle())
	assert.False(t, scope.IsEmpty())
	assert.Equal(t, []entity.GarageID{"g-a", "g-b"}, scope.GarageIDs())
	assert.Equal(t, []string{"g-a", "g-b"}, scope.Strings())
	assert.True(t, scope.Contains("g-a"))
	assert.False(t, scope.Contains("g-c"))
}

func TestGarageSetScope_GarageIDsEsCopia(t *testing.T) {
	scope := entity.NewGarageSetScope([]entity.GarageID{"g-a"})
	ids := scope.GarageIDs()
	ids[0] = "mutado"

	assert.Equal(t, []entity.GarageID{"g-a"}, scope.GarageIDs(), "el alcance no debe poder mutarse desde afuera")
}

func TestSingleGarageScope(t *testing.T) {
	scope := entity.NewSingleGarageScope("g-a")
	assert.True(t, scope.IsSingle())
	assert.True(t, scope.Contains("g-a"))

	empty := entity.NewSingleGarageScope("")
	assert.True(t, empty.IsEmpty())
}

func TestCutoff_IncluyeDiaCompleto(t *testing.T) {
	loc := time.FixedZone("COT", -5*3600)
	cutoff := entity.NewCutoff(time.Date(2026, 3, 15, 9, 30, 0, 0, loc))

	assert.Equal(t, "2026-03-15", cutoff.DateString())
	assert.True(t, cutoff.IncludesMovement(time.Date(2026, 3, 15, 23, 59, 59, 0, loc)))
	assert.False(t, cutoff.IncludesMovement(time.Date(2026, 3, 16, 0, 0, 0, 0, loc)))

	assert.True(t, cutoff.IncludesPurchase(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, cutoff.IncludesPurchase(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)))
}

func TestSignedDelta(t *testing.T) {
	cases := []struct {
		name string
		kind entity.MovementKind
		qty  string
		want string
	}{
		{"recepción positiva", entity.MovementReceipt, "5", "5"},
		{"recepción registrada negativa", entity.MovementReceipt, "-5", "5"},
		{"salida positiva", entity.MovementIssue, "3", "-3"},
		{"salida negativa", entity.MovementIssue, "-3", "-3"},
		{"ajuste negativo", entity.MovementAdjustment, "-2", "-2"},
		{"ajuste positivo", entity.MovementAdjustment, "2", "2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := entity.InventoryMovement{Kind: tc.kind, Quantity: decimal.RequireFromString(tc.qty)}
			assert.True(t, decimal.RequireFromString(tc.want).Equal(m.SignedDelta()), "got %s", m.SignedDelta())
		})
	}
}

func TestCompareLots(t *testing.T) {
	d1 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, -1, entity.CompareLots(entity.PurchaseLot{Date: d1, Sequence: 9}, entity.PurchaseLot{Date: d2, Sequence: 1}))
	assert.Equal(t, 1, entity.CompareLots(entity.PurchaseLot{Date: d1, Sequence: 2}, entity.PurchaseLot{Date: d1, Sequence: 1}))
	assert.Equal(t, 0, entity.CompareLots(entity.PurchaseLot{Date: d1, Sequence: 1, PurchaseID: "p"}, entity.PurchaseLot{Date: d1, Sequence: 1, PurchaseID: "p"}))
}

func TestPart_CategoryLabel(t *testing.T) {
	assert.Equal(t, entity.UncategorizedLabel, (&entity.Part{}).CategoryLabel())
	assert.Equal(t, "Filtros", (&entity.Part{Category: "Filtros"}).CategoryLabel())
}
