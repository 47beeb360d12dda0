// Package memory implementa los puertos de lectura sobre estructuras en memoria.
// Se usa en pruebas y en el CLI con datos de ejemplo (-fixture).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
	"github.com/jhoicas/garage-valuation/internal/domain/entity"
	"github.com/jhoicas/garage-valuation/internal/domain/repository"
)

var (
	_ appvaluation.SnapshotRunner = (*Store)(nil)
	_ repository.GarageRepository = (*Store)(nil)
)

// PurchaseItem línea de una compra en memoria.
type PurchaseItem struct {
	PartID   entity.PartID
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Purchase compra en memoria.
type Purchase struct {
	ID       string
	GarageID entity.GarageID
	Date     time.Time
	Status   entity.PurchaseStatus
	Items    []PurchaseItem
}

type storedLot struct {
	entity.PurchaseLot
	status entity.PurchaseStatus
}

// Store almacén concurrente. Las escrituras toman el lock exclusivo; ReadOnly toma el
// compartido durante toda la función, así una instantánea no ve escrituras a medias.
type Store struct {
	mu        sync.RWMutex
	garages   map[entity.GarageID]entity.Garage
	parts     map[entity.PartID]entity.Part
	movements []entity.InventoryMovement
	lots      []storedLot
	seq       int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		garages: make(map[entity.GarageID]entity.Garage),
		parts:   make(map[entity.PartID]entity.Part),
	}
}

// AddGarage agrega o reemplaza un taller.
func (s *Store) AddGarage(g entity.Garage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.garages[g.ID] = g
}

// AddPart agrega o reemplaza un repuesto.
func (s *Store) AddPart(p entity.Part) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts[p.ID] = p
}

// AddMovement agrega un movimiento (append-only).
func (s *Store) AddMovement(m entity.InventoryMovement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = append(s.movements, m)
}

// AddPurchase registra una compra; cada línea recibe una secuencia creciente como desempate.
func (s *Store) AddPurchase(p Purchase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range p.Items {
		s.seq++
		s.lots = append(s.lots, storedLot{
			PurchaseLot: entity.PurchaseLot{
				PartID:     it.PartID,
				GarageID:   p.GarageID,
				PurchaseID: p.ID,
				Date:       p.Date,
				Sequence:   s.seq,
				Quantity:   it.Quantity,
				UnitCost:   it.UnitCost,
			},
			status: p.Status,
		})
	}
}

// ReadOnly ejecuta fn con lectores sobre el estado actual bajo lock compartido.
func (s *Store) ReadOnly(ctx context.Context, fn func(r repository.SnapshotReaders) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := snapshot{s: s}
	return fn(repository.SnapshotReaders{Garages: v, Parts: v, Movements: v, Lots: v})
}

// ListActiveByTenant implementa repository.GarageRepository fuera de una instantánea.
func (s *Store) ListActiveByTenant(ctx context.Context, tenantID string) ([]*entity.Garage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{s: s}.ListActiveByTenant(ctx, tenantID)
}

// snapshot lectores que asumen el RLock ya tomado por ReadOnly.
type snapshot struct{ s *Store }

func (v snapshot) ListActiveByTenant(ctx context.Context, tenantID string) ([]*entity.Garage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*entity.Garage, 0, len(v.s.garages))
	for _, g := range v.s.garages {
		if g.TenantID != tenantID || !g.Active {
			continue
		}
		g := g
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (v snapshot) ListActive(ctx context.Context, tenantID, search string) ([]*entity.Part, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Un Caser no se comparte entre goroutines.
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))
	out := make([]*entity.Part, 0, len(v.s.parts))
	for _, p := range v.s.parts {
		if p.TenantID != tenantID || !p.Active {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(p.Name), needle) &&
			!strings.Contains(fold.String(p.SKU), needle) {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v snapshot) SumNetByPart(ctx context.Context, partIDs []entity.PartID, scope entity.ScopeFilter, cutoff entity.Cutoff) ([]repository.PartQuantity, error) {
	return v.sumMovements(ctx, partIDs, scope, cutoff, func(m entity.InventoryMovement) (decimal.Decimal, bool) {
		return m.SignedDelta(), true
	})
}

func (v snapshot) SumOutboundByPart(ctx context.Context, partIDs []entity.PartID, scope entity.ScopeFilter, cutoff entity.Cutoff) ([]repository.PartQuantity, error) {
	return v.sumMovements(ctx, partIDs, scope, cutoff, func(m entity.InventoryMovement) (decimal.Decimal, bool) {
		if m.Kind != entity.MovementIssue {
			return decimal.Zero, false
		}
		return m.Quantity.Abs(), true
	})
}

func (v snapshot) sumMovements(
	ctx context.Context,
	partIDs []entity.PartID,
	scope entity.ScopeFilter,
	cutoff entity.Cutoff,
	pick func(entity.InventoryMovement) (decimal.Decimal, bool),
) ([]repository.PartQuantity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wanted := v.activeParts(partIDs)
	sums := make(map[entity.PartID]decimal.Decimal)
	for _, m := range v.s.movements {
		if _, ok := wanted[m.PartID]; !ok {
			continue
		}
		if !v.garageVisible(m.GarageID, scope) || !cutoff.IncludesMovement(m.CreatedAt) {
			continue
		}
		q, ok := pick(m)
		if !ok {
			continue
		}
		sums[m.PartID] = sums[m.PartID].Add(q)
	}
	out := make([]repository.PartQuantity, 0, len(sums))
	for id, q := range sums {
		if q.IsZero() {
			continue
		}
		out = append(out, repository.PartQuantity{PartID: id, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartID < out[j].PartID })
	return out, nil
}

func (v snapshot) ListFinalized(ctx context.Context, partIDs []entity.PartID, scope entity.ScopeFilter, cutoff entity.Cutoff) ([]entity.PurchaseLot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wanted := v.activeParts(partIDs)
	out := make([]entity.PurchaseLot, 0)
	for _, l := range v.s.lots {
		if l.status != entity.PurchaseFinalized {
			continue
		}
		if _, ok := wanted[l.PartID]; !ok {
			continue
		}
		if !v.garageVisible(l.GarageID, scope) || !cutoff.IncludesPurchase(l.Date) {
			continue
		}
		out = append(out, l.PurchaseLot)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PartID != out[j].PartID {
			return out[i].PartID < out[j].PartID
		}
		return entity.CompareLots(out[i], out[j]) < 0
	})
	return out, nil
}

func (v snapshot) activeParts(ids []entity.PartID) map[entity.PartID]struct{} {
	m := make(map[entity.PartID]struct{}, len(ids))
	for _, id := range ids {
		if p, ok := v.s.parts[id]; ok && p.Active {
			m[id] = struct{}{}
		}
	}
	return m
}

func (v snapshot) garageVisible(id entity.GarageID, scope entity.ScopeFilter) bool {
	g, ok := v.s.garages[id]
	return ok && g.Active && scope.Contains(id)
}
