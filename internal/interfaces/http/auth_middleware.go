package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ewm-stock-api/internal/application/dto"
	"github.com/jhoicas/ewm-stock-api/internal/domain/entity"
	"github.com/jhoicas/ewm-stock-api/internal/domain/repository"
	"github.com/jhoicas/ewm-stock-api/pkg/jwt"
	"github.com/jhoicas/ewm-stock-api/pkg/logger"
)

// LocalPrincipal clave de c.Locals con el *entity.Principal de la petición.
const LocalPrincipal = "principal"

// AuthConfig opciones del middleware de autenticación.
type AuthConfig struct {
	JWTSecret string
	// Optional permite peticiones sin Authorization (modo público). Un token presente se valida igual.
	Optional bool
	// StockTypeAttribute atributo que se completa desde Grants cuando el token no lo trae.
	StockTypeAttribute string
	// Grants fuente alternativa de tipos de stock (nil = solo el token).
	Grants repository.StockTypeGrantRepository
	Log    zerolog.Logger
}

// AuthMiddleware valida el Bearer Token JWT y construye el Principal en c.Locals.
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	if cfg.StockTypeAttribute == "" {
		cfg.StockTypeAttribute = entity.DefaultStockTypeAttribute
	}
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			if cfg.Optional {
				return c.Next()
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewODataError("MISSING_TOKEN", "Authorization header requerido"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewODataError("INVALID_TOKEN", "formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewODataError("MISSING_TOKEN", "token vacío"))
		}
		userID, attributes, err := jwt.Parse(cfg.JWTSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewODataError("INVALID_TOKEN", "token inválido o expirado"))
		}

		principal := &entity.Principal{ID: userID, Attributes: attributes}
		if principal.Attributes == nil {
			principal.Attributes = map[string]any{}
		}
		if _, ok := principal.Attributes[cfg.StockTypeAttribute]; !ok && cfg.Grants != nil {
			types, err := cfg.Grants.ListStockTypes(c.UserContext(), userID)
			if err != nil {
				cfg.Log.Error().Err(err).Str("request_id", logger.RequestID(c.UserContext())).
					Str("user", userID).Msg("lectura de concesiones de tipo de stock")
				return c.Status(fiber.StatusInternalServerError).JSON(dto.NewODataError("INTERNAL_ERROR", "no se pudieron leer las autorizaciones del usuario"))
			}
			principal.Attributes[cfg.StockTypeAttribute] = types
		}

		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

// GetPrincipal devuelve el Principal del contexto (nil si la petición es anónima).
func GetPrincipal(c *fiber.Ctx) *entity.Principal {
	p, _ := c.Locals(LocalPrincipal).(*entity.Principal)
	return p
}
