package valuation

import "strings"

// ExportGate decide si el llamador puede exportar datos: por rol configurado
// o por el claim can_export del token.
type ExportGate struct {
	roles map[string]struct{}
}

// NewExportGate construye el gate con los roles habilitados (sin distinguir mayúsculas).
func NewExportGate(roles []string) *ExportGate {
	m := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
			m[r] = struct{}{}
		}
	}
	return &ExportGate{roles: m}
}

// CanExport informa si p puede descargar el reporte.
func (g *ExportGate) CanExport(p Principal) bool {
	if p.TenantID == "" {
		return false
	}
	if p.CanExport {
		return true
	}
	_, ok := g.roles[strings.ToLower(p.Role)]
	return ok
}
