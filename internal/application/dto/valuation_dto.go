package dto

import "github.com/shopspring/decimal"

// InventoryValuationQuery query string de GET /api/reports/inventory-valuation[/export].
// Salvo format, los valores que no validan no abortan la solicitud: el handler los reemplaza
// por su default.
type InventoryValuationQuery struct {
	GarageID string `query:"garage_id" validate:"omitempty,uuid"`
	AsOnDate string `query:"as_on_date" validate:"omitempty,datetime=2006-01-02"`
	Search   string `query:"search" validate:"max=100"`
	Format   string `query:"format" validate:"omitempty,oneof=csv xlsx pdf"`
}

// InventoryValuationRowDTO fila del reporte de valoración.
type InventoryValuationRowDTO struct {
	PartID            string          `json:"part_id"`
	PartName          string          `json:"part_name"`
	SKU               string          `json:"sku"`
	Category          string          `json:"category"`
	Unit              string          `json:"unit"`
	StockQty          decimal.Decimal `json:"stock_qty"`
	AvgCost           decimal.Decimal `json:"avg_cost"`       // 4 decimales
	WeightedValue     decimal.Decimal `json:"weighted_value"` // stock × avg_cost, 2 decimales
	FIFOValue         decimal.Decimal `json:"fifo_value"`
	TotalPurchasedQty decimal.Decimal `json:"total_purchased_qty"`
	PurchaseHistory   string          `json:"purchase_history"`
}

// InventoryValuationResponse reporte completo con totales calculados sobre las filas devueltas.
type InventoryValuationResponse struct {
	AsOnDate           string                     `json:"as_on_date"`
	Rows               []InventoryValuationRowDTO `json:"rows"`
	ProductCount       int                        `json:"product_count"`
	TotalStockQty      decimal.Decimal            `json:"total_stock_qty"`
	TotalFIFOValue     decimal.Decimal            `json:"total_fifo_value"`
	TotalWeightedValue decimal.Decimal            `json:"total_weighted_value"`
}
