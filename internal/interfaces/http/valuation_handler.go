package http

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/garage-valuation/internal/application/dto"
	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
	"github.com/jhoicas/garage-valuation/internal/domain"
	"github.com/jhoicas/garage-valuation/pkg/logger"
)

const (
	defaultExportFormat = "csv"
	maxSearchRunes      = 100
)

// ValuationHandler expone el reporte de valoración de inventario (protegido).
type ValuationHandler struct {
	uc       *appvaluation.InventoryValuationUseCase
	validate *validator.Validate
	log      *logger.Logger
}

// NewValuationHandler construye el handler.
func NewValuationHandler(uc *appvaluation.InventoryValuationUseCase, log *logger.Logger) *ValuationHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ValuationHandler{uc: uc, validate: validator.New(), log: log.Component("valuation_handler")}
}

// GetReport godoc
// @Summary      Valoración de inventario a una fecha de corte
// @Description  Devuelve por repuesto el stock, el costo promedio ponderado, el valor FIFO y el
//
//	historial reciente de compras, con totales sobre las filas devueltas.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        garage_id   query  string  false  "Taller (UUID). Vacío = todos los talleres visibles."
// @Param        as_on_date  query  string  false  "Fecha de corte (YYYY-MM-DD). Inválida o vacía = hoy."
// @Param        search      query  string  false  "Filtro por nombre o SKU (máx. 100 caracteres)."
// @Success      200  {object}  dto.InventoryValuationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory-valuation [get]
func (h *ValuationHandler) GetReport(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var q dto.InventoryValuationQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	req, _ := h.reportRequest(q)

	resp, err := h.uc.GetReport(c.UserContext(), p, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(resp)
}

// Export godoc
// @Summary      Exportar la valoración de inventario
// @Description  Descarga el mismo reporte como archivo. Requiere rol habilitado o el claim can_export.
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        garage_id   query  string  false  "Taller (UUID). Vacío = todos los talleres visibles."
// @Param        as_on_date  query  string  false  "Fecha de corte (YYYY-MM-DD). Inválida o vacía = hoy."
// @Param        search      query  string  false  "Filtro por nombre o SKU (máx. 100 caracteres)."
// @Param        format      query  string  false  "csv (default), xlsx o pdf"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory-valuation/export [get]
func (h *ValuationHandler) Export(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var q dto.InventoryValuationQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	req, format := h.reportRequest(q)

	file, err := h.uc.Export(c.UserContext(), p, req, format)
	if err != nil {
		return h.fail(c, err)
	}
	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Status(fiber.StatusOK).Send(file.Body)
}

// reportRequest valida la query y reemplaza por su default lo que no valida: fecha inválida
// pasa a vacía (hoy) y la búsqueda se recorta. Un garage_id que no es UUID se conserva; no
// coincide con ningún taller y el alcance queda vacío.
func (h *ValuationHandler) reportRequest(q dto.InventoryValuationQuery) (appvaluation.ReportRequest, string) {
	req := appvaluation.ReportRequest{
		GarageID: strings.TrimSpace(q.GarageID),
		AsOnDate: strings.TrimSpace(q.AsOnDate),
		Search:   strings.TrimSpace(q.Search),
	}
	format := strings.ToLower(strings.TrimSpace(q.Format))
	if format == "" {
		format = defaultExportFormat
	}

	var verrs validator.ValidationErrors
	if err := h.validate.Struct(q); errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.StructField() {
			case "AsOnDate":
				h.log.Debug().Str("as_on_date", q.AsOnDate).Msg("fecha de corte inválida, se usa hoy")
				req.AsOnDate = ""
			case "Search":
				req.Search = truncateRunes(req.Search, maxSearchRunes)
			}
		}
	}
	return req, format
}

// fail traduce errores del caso de uso a la respuesta HTTP.
func (h *ValuationHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrExportForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "EXPORT_FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownFormat):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "TIMEOUT", Message: "la consulta excedió el tiempo límite"})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("reporte de valoración")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar el reporte"})
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit])
}
