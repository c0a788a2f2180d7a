package stock

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ewm-stock-api/internal/application/ports"
	"github.com/jhoicas/ewm-stock-api/internal/domain"
	"github.com/jhoicas/ewm-stock-api/internal/domain/entity"
	domainstock "github.com/jhoicas/ewm-stock-api/internal/domain/stock"
	"github.com/jhoicas/ewm-stock-api/pkg/logger"
)

// Config política de autorización por tipo de stock y límites de paginación.
// EnforceStockTypes en false habilita el modo público explícito: el filtro no se restringe.
type Config struct {
	EnforceStockTypes  bool
	StockTypeAttribute string
	DefaultLimit       int // $top cuando la consulta no lo trae; 0 = entity.DefaultLimit
	MaxLimit           int // 0 = sin tope
}

// ReadStockUseCase orquesta la lectura de stock físico:
// autorizar → extraer → compilar filtro → llamar EWM → normalizar.
// No guarda estado entre peticiones; el gateway es la única llamada bloqueante.
type ReadStockUseCase struct {
	gateway ports.StockGateway
	cfg     Config
	log     zerolog.Logger
}

// NewReadStockUseCase construye el caso de uso inyectando el puerto StockGateway.
func NewReadStockUseCase(gateway ports.StockGateway, cfg Config, log zerolog.Logger) *ReadStockUseCase {
	if cfg.StockTypeAttribute == "" {
		cfg.StockTypeAttribute = entity.DefaultStockTypeAttribute
	}
	return &ReadStockUseCase{gateway: gateway, cfg: cfg, log: log}
}

// Read ejecuta la consulta para el usuario. Todo error devuelto es *domain.StockError.
// Una consulta denegada por autorización nunca llega al gateway.
func (uc *ReadStockUseCase) Read(ctx context.Context, principal *entity.Principal, query entity.StockQuery) (*entity.StockPage, error) {
	limit, offset := query.Page()
	if query.Limit == nil && uc.cfg.DefaultLimit > 0 {
		limit = uc.cfg.DefaultLimit
	}
	if limit < 0 || offset < 0 {
		return nil, domain.NewStockError(domain.KindInvalidQuery, "$top y $skip deben ser enteros no negativos", domain.ErrInvalidInput)
	}
	if uc.cfg.MaxLimit > 0 && limit > uc.cfg.MaxLimit {
		limit = uc.cfg.MaxLimit
	}

	auth := domainstock.Authorization{Enforced: uc.cfg.EnforceStockTypes}
	if auth.Enforced {
		auth.StockTypes = domainstock.ResolveStockTypes(principal, uc.cfg.StockTypeAttribute)
	}
	predicates := domainstock.ExtractPredicates(query)

	reqID := logger.RequestID(ctx)
	filter, err := domainstock.CompileFilter(predicates, auth)
	if err != nil {
		uc.log.Info().Str("request_id", reqID).Str("user", principalID(principal)).Strs("authorized", auth.StockTypes).
			Str("requested", predicates[entity.FieldStockType]).Msg("consulta de stock denegada")
		return nil, denial(err)
	}
	uc.log.Debug().Str("request_id", reqID).Str("user", principalID(principal)).Str("filter", filter).
		Int("top", limit).Int("skip", offset).Msg("consulta de stock")

	payload, err := uc.gateway.Fetch(ctx, ports.FetchRequest{Filter: filter, Limit: limit, Offset: offset})
	if err != nil {
		se := domain.AsStockError(err)
		uc.log.Error().Err(err).Str("request_id", reqID).Str("kind", string(se.Kind)).Int("status", se.Status).Msg("lectura de stock en EWM")
		return nil, se
	}

	return domainstock.Normalize(payload.Items, payload.Count, offset), nil
}

func denial(err error) *domain.StockError {
	if errors.Is(err, domain.ErrStockTypeForbidden) {
		return domain.NewStockError(domain.KindForbiddenType, "no tiene autorización para el tipo de stock solicitado", err)
	}
	if errors.Is(err, domain.ErrNoStockTypeAuthorization) {
		return domain.NewStockError(domain.KindNoAuthorization, "el usuario no tiene tipos de stock autorizados", err)
	}
	return domain.AsStockError(err)
}

func principalID(p *entity.Principal) string {
	if p == nil {
		return ""
	}
	return p.ID
}
