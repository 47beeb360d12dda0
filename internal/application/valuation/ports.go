package valuation

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/garage-valuation/internal/domain/repository"
)

// SnapshotRunner ejecuta fn dentro de una única lectura consistente (transacción read-only),
// pasando lectores atados a esa instantánea. Todo lo que lee un reporte pasa por aquí.
type SnapshotRunner interface {
	ReadOnly(ctx context.Context, fn func(r repository.SnapshotReaders) error) error
}

// Exporter materializa un documento de exportación en un formato (csv, xlsx, pdf).
type Exporter interface {
	Format() string
	ContentType() string
	FileExtension() string
	Write(w io.Writer, doc ExportDocument) error
}

// Metrics registra resultados del reporte. Puede ser nil en el caso de uso.
type Metrics interface {
	ObserveReport(outcome string, elapsed time.Duration)
	ObserveGapFill(policy string)
}

// Resultados posibles de una ejecución, usados como etiqueta de métricas.
const (
	OutcomeOK         = "ok"
	OutcomeEmptyScope = "empty_scope"
	OutcomeForbidden  = "forbidden"
	OutcomeError      = "error"
)
