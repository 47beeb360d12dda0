package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/garage-valuation/internal/domain"
	"github.com/jhoicas/garage-valuation/internal/domain/entity"
)

// Fixture formato JSON de datos de ejemplo para el almacén en memoria.
// Las fechas de compra van como YYYY-MM-DD y los movimientos en RFC 3339.
type Fixture struct {
	Garages []struct {
		ID       string `json:"id"`
		TenantID string `json:"tenant_id"`
		Name     string `json:"name"`
		Active   bool   `json:"active"`
	} `json:"garages"`
	Parts []struct {
		ID           string          `json:"id"`
		TenantID     string          `json:"tenant_id"`
		Name         string          `json:"name"`
		SKU          string          `json:"sku"`
		Unit         string          `json:"unit"`
		Category     string          `json:"category"`
		StandardCost decimal.Decimal `json:"standard_cost"`
		Active       bool            `json:"active"`
	} `json:"parts"`
	Purchases []struct {
		ID       string `json:"id"`
		GarageID string `json:"garage_id"`
		Date     string `json:"date"`
		Status   string `json:"status"`
		Items    []struct {
			PartID   string          `json:"part_id"`
			Quantity decimal.Decimal `json:"quantity"`
			UnitCost decimal.Decimal `json:"unit_cost"`
		} `json:"items"`
	} `json:"purchases"`
	Movements []struct {
		ID        string          `json:"id"`
		PartID    string          `json:"part_id"`
		GarageID  string          `json:"garage_id"`
		Kind      string          `json:"kind"`
		Quantity  decimal.Decimal `json:"quantity"`
		CreatedAt time.Time       `json:"created_at"`
	} `json:"movements"`
}

// LoadFixture decodifica un Fixture desde r y lo carga en un Store nuevo.
// Las compras se agregan en el orden del archivo, que define la secuencia de desempate.
func LoadFixture(r io.Reader) (*Store, error) {
	var fx Fixture
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("memory.LoadFixture: %w", err)
	}

	s := NewStore()
	for _, g := range fx.Garages {
		s.AddGarage(entity.Garage{ID: entity.GarageID(g.ID), TenantID: g.TenantID, Name: g.Name, Active: g.Active})
	}
	for _, p := range fx.Parts {
		s.AddPart(entity.Part{
			ID:           entity.PartID(p.ID),
			TenantID:     p.TenantID,
			Name:         p.Name,
			SKU:          p.SKU,
			Unit:         p.Unit,
			Category:     p.Category,
			StandardCost: p.StandardCost,
			Active:       p.Active,
		})
	}
	for _, p := range fx.Purchases {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, fmt.Errorf("memory.LoadFixture compra %s: %w", p.ID, domain.ErrInvalidInput)
		}
		items := make([]PurchaseItem, 0, len(p.Items))
		for _, it := range p.Items {
			items = append(items, PurchaseItem{PartID: entity.PartID(it.PartID), Quantity: it.Quantity, UnitCost: it.UnitCost})
		}
		s.AddPurchase(Purchase{
			ID:       p.ID,
			GarageID: entity.GarageID(p.GarageID),
			Date:     date,
			Status:   entity.PurchaseStatus(p.Status),
			Items:    items,
		})
	}
	for _, m := range fx.Movements {
		kind := entity.MovementKind(m.Kind)
		if !kind.Valid() {
			return nil, fmt.Errorf("memory.LoadFixture movimiento %s tipo %q: %w", m.ID, m.Kind, domain.ErrInvalidInput)
		}
		s.AddMovement(entity.InventoryMovement{
			ID:        m.ID,
			PartID:    entity.PartID(m.PartID),
			GarageID:  entity.GarageID(m.GarageID),
			Kind:      kind,
			Quantity:  m.Quantity,
			CreatedAt: m.CreatedAt,
		})
	}
	return s, nil
}
