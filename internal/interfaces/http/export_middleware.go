package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/garage-valuation/internal/application/dto"
	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
)

// RequireExport corta la petición antes de leer parámetros o datos si el llamador no
// puede exportar. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay Principal en el contexto.
//   - 403 EXPORT_FORBIDDEN si ni el rol ni el claim can_export lo habilitan.
func RequireExport(gate *appvaluation.ExportGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "tenant_id no encontrado en el token",
			})
		}
		if gate == nil || !gate.CanExport(p) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "EXPORT_FORBIDDEN",
				Message: "el rol '" + p.Role + "' no tiene permiso para exportar",
			})
		}
		return c.Next()
	}
}
