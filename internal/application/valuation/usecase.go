package valuation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/garage-valuation/internal/application/dto"
	"github.com/jhoicas/garage-valuation/internal/domain"
	"github.com/jhoicas/garage-valuation/internal/domain/entity"
	"github.com/jhoicas/garage-valuation/internal/domain/repository"
	"github.com/jhoicas/garage-valuation/internal/domain/valuation"
	"github.com/jhoicas/garage-valuation/pkg/logger"
)

var tracer = otel.Tracer("garage-valuation/valuation")

// Options parámetros opcionales del caso de uso.
type Options struct {
	Location    *time.Location          // zona para "hoy"; nil = UTC
	Policy      valuation.GapFillPolicy // nil = average_cost
	HistorySize int
	Metrics     Metrics
	Now         func() time.Time
}

// InventoryValuationUseCase arma el reporte de valoración de inventario a una fecha de corte.
// Es de solo lectura e idempotente: mismas entradas y mismo contenido de la BD producen
// exactamente la misma salida.
type InventoryValuationUseCase struct {
	runner    SnapshotRunner
	gate      *ExportGate
	assembler *valuation.Assembler
	movements MovementAggregator
	lots      PurchaseLotLoader
	exporters map[string]Exporter
	metrics   Metrics
	log       *logger.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewInventoryValuationUseCase construye el caso de uso. exporters se indexan por Format().
func NewInventoryValuationUseCase(
	runner SnapshotRunner,
	gate *ExportGate,
	exporters []Exporter,
	log *logger.Logger,
	opts Options,
) *InventoryValuationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	byFormat := make(map[string]Exporter, len(exporters))
	for _, e := range exporters {
		byFormat[strings.ToLower(e.Format())] = e
	}
	return &InventoryValuationUseCase{
		runner:    runner,
		gate:      gate,
		assembler: valuation.NewAssembler(opts.Policy, opts.HistorySize),
		exporters: byFormat,
		metrics:   opts.Metrics,
		log:       log.Component("valuation"),
		loc:       opts.Location,
		now:       opts.Now,
	}
}

// GetReport devuelve el reporte en forma de DTO.
func (uc *InventoryValuationUseCase) GetReport(ctx context.Context, p Principal, req ReportRequest) (*dto.InventoryValuationResponse, error) {
	ctx, span := tracer.Start(ctx, "valuation.GetReport", trace.WithAttributes(
		attribute.String("tenant.id", p.TenantID),
	))
	defer span.End()

	rc, report, err := uc.run(ctx, p, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return toResponse(rc.Cutoff.DateString(), report), nil
}

// Export valida el permiso antes de cualquier lectura y luego materializa el reporte
// en el formato pedido.
func (uc *InventoryValuationUseCase) Export(ctx context.Context, p Principal, req ReportRequest, format string) (*ExportFile, error) {
	ctx, span := tracer.Start(ctx, "valuation.Export", trace.WithAttributes(
		attribute.String("tenant.id", p.TenantID),
		attribute.String("export.format", format),
	))
	defer span.End()

	if uc.gate == nil || !uc.gate.CanExport(p) {
		uc.observe(OutcomeForbidden, time.Time{})
		uc.log.Warn().Str("user_id", p.UserID).Str("role", p.Role).Msg("exportación denegada")
		span.SetStatus(codes.Error, domain.ErrExportForbidden.Error())
		return nil, domain.ErrExportForbidden
	}
	exporter, ok := uc.exporters[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}

	rc, report, err := uc.run(ctx, p, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var buf bytes.Buffer
	doc := NewExportDocument(rc.Cutoff.DateString(), report)
	if err := exporter.Write(&buf, doc); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("valuation.Export %s: %w", exporter.Format(), err)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("inventory-valuation-%s.%s", rc.Cutoff.DateString(), exporter.FileExtension()),
		ContentType: exporter.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

// Formats lista los formatos de exportación registrados.
func (uc *InventoryValuationUseCase) Formats() []string {
	out := make([]string, 0, len(uc.exporters))
	for f := range uc.exporters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// run resuelve el contexto de la solicitud y calcula el reporte.
func (uc *InventoryValuationUseCase) run(ctx context.Context, p Principal, req ReportRequest) (RequestContext, valuation.Report, error) {
	start := time.Now()

	rc, in, err := uc.read(ctx, p, req)
	if err != nil {
		uc.observe(OutcomeError, start)
		uc.log.Error().Err(err).Str("tenant_id", p.TenantID).Msg("valoración de inventario fallida")
		return rc, valuation.Report{}, err
	}
	if rc.Scope.IsEmpty() {
		uc.log.Debug().Str("tenant_id", p.TenantID).Str("garage_id", req.GarageID).Msg("alcance vacío, reporte sin filas")
		uc.observe(OutcomeEmptyScope, start)
		return rc, emptyReport(), nil
	}

	report := uc.assembler.Assemble(in, &driftRecorder{log: uc.log, metrics: uc.metrics})
	uc.observe(OutcomeOK, start)
	uc.log.Info().
		Str("tenant_id", rc.TenantID).
		Str("as_on_date", rc.Cutoff.DateString()).
		Int("garages", len(rc.Scope.GarageIDs())).
		Int("rows", report.Totals.ProductCount).
		Dur("elapsed", time.Since(start)).
		Msg("valoración de inventario generada")
	return rc, report, nil
}

func (uc *InventoryValuationUseCase) buildContext(p Principal, req ReportRequest) RequestContext {
	cutoff, defaulted := ParseAsOnDate(req.AsOnDate, uc.loc, uc.now())
	if defaulted && req.AsOnDate != "" {
		uc.log.Debug().Str("as_on_date", req.AsOnDate).Str("used", cutoff.DateString()).Msg("fecha de corte inválida, se usa hoy")
	}
	return RequestContext{
		TenantID: p.TenantID,
		Cutoff:   cutoff,
		Search:   strings.TrimSpace(req.Search),
	}
}

// read resuelve el alcance y lee repuestos, movimientos y lotes dentro de una misma
// instantánea. Con alcance vacío no lee nada más y devuelve Inputs vacío.
func (uc *InventoryValuationUseCase) read(ctx context.Context, p Principal, req ReportRequest) (RequestContext, valuation.Inputs, error) {
	rc := uc.buildContext(p, req)
	requested := entity.GarageID(strings.TrimSpace(req.GarageID))

	var in valuation.Inputs
	err := uc.runner.ReadOnly(ctx, func(r repository.SnapshotReaders) error {
		scope, err := NewScopeResolver(r.Garages).Resolve(ctx, p, requested)
		if err != nil {
			return err
		}
		rc.Scope = scope
		if scope.IsEmpty() {
			return nil
		}

		parts, err := r.Parts.ListActive(ctx, rc.TenantID, rc.Search)
		if err != nil {
			return fmt.Errorf("valuation.read parts: %w", err)
		}
		ids := make([]entity.PartID, 0, len(parts))
		for _, p := range parts {
			ids = append(ids, p.ID)
		}

		stock, err := uc.movements.NetStock(ctx, r.Movements, ids, rc.Scope, rc.Cutoff)
		if err != nil {
			return err
		}
		// Lotes y salidas solo hacen falta para repuestos con stock positivo.
		stocked := make([]entity.PartID, 0, len(stock))
		for _, id := range ids {
			if q, ok := stock[id]; ok && q.IsPositive() {
				stocked = append(stocked, id)
			}
		}

		outbound, err := uc.movements.OutboundIssued(ctx, r.Movements, stocked, rc.Scope, rc.Cutoff)
		if err != nil {
			return err
		}
		books, err := uc.lots.Load(ctx, r.Lots, stocked, rc.Scope, rc.Cutoff)
		if err != nil {
			return err
		}
		in = valuation.Inputs{Parts: parts, Stock: stock, Outbound: outbound, Books: books}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return rc, valuation.Inputs{}, err
		}
		return rc, valuation.Inputs{}, fmt.Errorf("valuation.read: %w", err)
	}
	return rc, in, nil
}

func (uc *InventoryValuationUseCase) observe(outcome string, start time.Time) {
	if uc.metrics == nil {
		return
	}
	var elapsed time.Duration
	if !start.IsZero() {
		elapsed = time.Since(start)
	}
	uc.metrics.ObserveReport(outcome, elapsed)
}

// driftRecorder registra en log y métricas los repuestos con stock sin lotes que lo respalden.
type driftRecorder struct {
	log     *logger.Logger
	metrics Metrics
}

func (d *driftRecorder) ObserveDrift(ev valuation.DriftEvent) {
	d.log.Warn().
		Str("part_id", string(ev.PartID)).
		Str("sku", ev.SKU).
		Str("stock_qty", ev.StockQty.String()).
		Str("lot_qty", ev.LotQty.String()).
		Str("gap_qty", ev.GapQty.String()).
		Str("gap_value", ev.GapValue.String()).
		Str("excess_lot_qty", ev.ExcessQty.String()).
		Str("policy", ev.Policy).
		Msg("stock y lotes de compra no concuerdan")
	if d.metrics != nil && ev.GapQty.IsPositive() {
		d.metrics.ObserveGapFill(ev.Policy)
	}
}

func emptyReport() valuation.Report {
	return valuation.Report{Rows: []valuation.Row{}, Totals: valuation.SumTotals(nil)}
}

func toResponse(asOnDate string, report valuation.Report) *dto.InventoryValuationResponse {
	rows := make([]dto.InventoryValuationRowDTO, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, dto.InventoryValuationRowDTO{
			PartID:            string(r.PartID),
			PartName:          r.PartName,
			SKU:               r.SKU,
			Category:          r.Category,
			Unit:              r.Unit,
			StockQty:          r.StockQty,
			AvgCost:           r.AvgCost,
			WeightedValue:     r.WeightedValue,
			FIFOValue:         r.FIFOValue,
			TotalPurchasedQty: r.TotalPurchasedQty,
			PurchaseHistory:   r.History,
		})
	}
	return &dto.InventoryValuationResponse{
		AsOnDate:           asOnDate,
		Rows:               rows,
		ProductCount:       report.Totals.ProductCount,
		TotalStockQty:      report.Totals.TotalStockQty,
		TotalFIFOValue:     report.Totals.TotalFIFOValue,
		TotalWeightedValue: report.Totals.TotalWeightedValue,
	}
}
