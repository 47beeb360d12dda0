package memory_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/garage-valuation/internal/domain"
	"github.com/jhoicas/garage-valuation/internal/domain/entity"
	"github.com/jhoicas/garage-valuation/internal/domain/repository"
	"github.com/jhoicas/garage-valuation/internal/infrastructure/memory"
)

func loadFixture(t *testing.T) *memory.Store {
	t.Helper()
	f, err := os.Open("testdata/fixture.json")
	require.NoError(t, err)
	defer f.Close()
	s, err := memory.LoadFixture(f)
	require.NoError(t, err)
	return s
}

func TestLoadFixture_Lecturas(t *testing.T) {
	s := loadFixture(t)
	ctx := context.Background()
	scope := entity.NewGarageSetScope([]entity.GarageID{"g-a", "g-b"})
	cutoff := entity.NewCutoff(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))

	garages, err := s.ListActiveByTenant(ctx, "t-1")
	require.NoError(t, err)
	require.Len(t, garages, 2)
	assert.Equal(t, "Centro", garages[0].Name)

	err = s.ReadOnly(ctx, func(r repository.SnapshotReaders) error {
		parts, err := r.Parts.ListActive(ctx, "t-1", "LÍQUIDO")
		require.NoError(t, err)
		require.Len(t, parts, 1)
		assert.Equal(t, entity.PartID("p-2"), parts[0].ID)
		assert.Equal(t, "50", parts[0].StandardCost.String())

		net, err := r.Movements.SumNetByPart(ctx, []entity.PartID{"p-1", "p-2"}, scope, cutoff)
		require.NoError(t, err)
		require.Len(t, net, 2)
		assert.Equal(t, "11", net[0].Quantity.String())
		assert.Equal(t, "4", net[1].Quantity.String())

		out, err := r.Movements.SumOutboundByPart(ctx, []entity.PartID{"p-1", "p-2"}, scope, cutoff)
		require.NoError(t, err)
		require.Len(t, out, 1, "solo p-1 tiene salidas")
		assert.Equal(t, "4", out[0].Quantity.String())

		lots, err := r.Lots.ListFinalized(ctx, []entity.PartID{"p-1"}, scope, cutoff)
		require.NoError(t, err)
		require.Len(t, lots, 2)
		assert.Equal(t, "pur-1", lots[0].PurchaseID)
		assert.Equal(t, "200", lots[1].UnitCost.String(), "acepta números JSON sin comillas")
		assert.Less(t, lots[0].Sequence, lots[1].Sequence)
		return nil
	})
	require.NoError(t, err)
}

func TestLoadFixture_Errores(t *testing.T) {
	cases := map[string]string{
		"json inválido":    `{"garages": [`,
		"campo extra":      `{"warehouses": []}`,
		"fecha inválida":   `{"purchases": [{"id": "x", "date": "01/03/2026"}]}`,
		"tipo desconocido": `{"movements": [{"id": "m", "kind": "transfer", "quantity": "1", "created_at": "2026-03-01T00:00:00Z"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := memory.LoadFixture(strings.NewReader(raw))
			assert.Error(t, err)
		})
	}

	_, err := memory.LoadFixture(strings.NewReader(`{"purchases": [{"id": "x", "date": "bad"}]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_FiltraAlcanceYCorte(t *testing.T) {
	s := loadFixture(t)
	ctx := context.Background()
	onlyA := entity.NewSingleGarageScope("g-a")
	early := entity.NewCutoff(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	err := s.ReadOnly(ctx, func(r repository.SnapshotReaders) error {
		net, err := r.Movements.SumNetByPart(ctx, []entity.PartID{"p-1"}, onlyA, early)
		require.NoError(t, err)
		require.Len(t, net, 1)
		assert.Equal(t, "10", net[0].Quantity.String(), "el día de corte se incluye completo")

		lots, err := r.Lots.ListFinalized(ctx, []entity.PartID{"p-1"}, onlyA, early)
		require.NoError(t, err)
		require.Len(t, lots, 1)

		none, err := r.Lots.ListFinalized(ctx, []entity.PartID{"p-1"}, entity.NewGarageSetScope(nil), early)
		require.NoError(t, err)
		assert.Empty(t, none)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_ContextoCancelado(t *testing.T) {
	s := loadFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.ReadOnly(ctx, func(repository.SnapshotReaders) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
