package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/garage-valuation/internal/application/dto"
	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
	"github.com/jhoicas/garage-valuation/internal/domain/entity"
	"github.com/jhoicas/garage-valuation/pkg/jwt"
)

// LocalPrincipal key de c.Locals donde queda la identidad del llamador.
const LocalPrincipal = "principal"

// AuthMiddleware valida el Bearer Token JWT y deja el Principal en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido o expirado"})
		}
		c.Locals(LocalPrincipal, principalFromClaims(claims))
		return c.Next()
	}
}

func principalFromClaims(claims *jwt.Claims) appvaluation.Principal {
	garages := make([]entity.GarageID, 0, len(claims.GarageIDs))
	for _, id := range claims.GarageIDs {
		if id = strings.TrimSpace(id); id != "" {
			garages = append(garages, entity.GarageID(id))
		}
	}
	return appvaluation.Principal{
		UserID:    claims.UserID,
		TenantID:  claims.TenantID,
		Role:      claims.Role,
		GarageIDs: garages,
		CanExport: claims.CanExport,
	}
}

// GetPrincipal devuelve el Principal del contexto (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) (appvaluation.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(appvaluation.Principal)
	if !ok || p.TenantID == "" {
		return appvaluation.Principal{}, false
	}
	return p, true
}
