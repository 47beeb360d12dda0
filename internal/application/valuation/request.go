package valuation

import (
	"strings"
	"time"

	"github.com/jhoicas/garage-valuation/internal/domain/entity"
)

// Principal identidad del llamador tal como la entrega el token.
// GarageIDs vacío significa todos los talleres activos del tenant.
type Principal struct {
	UserID    string
	TenantID  string
	Role      string
	GarageIDs []entity.GarageID
	CanExport bool
}

// ReportRequest parámetros crudos del reporte (query string o flags del CLI).
type ReportRequest struct {
	GarageID string // override de un solo taller; vacío = alcance completo
	AsOnDate string // YYYY-MM-DD; inválido o vacío usa hoy
	Search   string // texto libre sobre nombre o SKU
}

// RequestContext valor inmutable que recorre todo el cálculo de un reporte.
// Se construye una sola vez por solicitud y se pasa por valor.
type RequestContext struct {
	TenantID string
	Scope    entity.ScopeFilter
	Cutoff   entity.Cutoff
	Search   string
}

// ParseAsOnDate interpreta la fecha de corte en loc. Si raw está vacío o mal formado devuelve
// el día de now y defaulted=true; no es un error.
func ParseAsOnDate(raw string, loc *time.Location, now time.Time) (cutoff entity.Cutoff, defaulted bool) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), loc); err == nil {
		return entity.NewCutoff(t), false
	}
	return entity.NewCutoff(now.In(loc)), true
}
