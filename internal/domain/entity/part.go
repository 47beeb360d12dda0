package entity

import "github.com/shopspring/decimal"

// UncategorizedLabel etiqueta que se muestra cuando el repuesto no tiene categoría.
const UncategorizedLabel = "Uncategorized"

// PartID identificador estable de un repuesto (UUID en texto).
// Es la llave de todos los mapas por repuesto del motor de valoración.
type PartID string

// Part representa un repuesto del maestro de partes. Lo administra otro subsistema;
// aquí es de solo lectura.
type Part struct {
	ID           PartID
	TenantID     string
	Name         string
	SKU          string
	Unit         string // unidad de medida (und, lt, kg...)
	Category     string // vacío si no tiene categoría asignada
	StandardCost decimal.Decimal // costo de referencia registrado en el maestro
	Active       bool
}

// CategoryLabel devuelve la categoría o el placeholder "Uncategorized".
func (p *Part) CategoryLabel() string {
	if p.Category == "" {
		return UncategorizedLabel
	}
	return p.Category
}
