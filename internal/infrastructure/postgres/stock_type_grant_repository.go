package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ewm-stock-api/internal/domain/repository"
)

var _ repository.StockTypeGrantRepository = (*StockTypeGrantRepo)(nil)

// Querier es el subconjunto de pgxpool.Pool que usa el repositorio.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// StockTypeGrantRepo lee la tabla user_stock_type_grants(user_id, stock_type).
type StockTypeGrantRepo struct {
	db Querier
}

// NewStockTypeGrantRepository construye el adaptador de persistencia para concesiones de tipo de stock.
func NewStockTypeGrantRepository(db Querier) *StockTypeGrantRepo {
	return &StockTypeGrantRepo{db: db}
}

// ListStockTypes devuelve los tipos concedidos al usuario en orden de stock_type.
// Un usuario sin filas, o una base sin la tabla, devuelve una lista vacía: la lectura queda denegada.
func (r *StockTypeGrantRepo) ListStockTypes(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT stock_type
		FROM user_stock_type_grants
		WHERE user_id = $1
		ORDER BY stock_type`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		if isUndefinedTable(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list stock type grants: %w", err)
	}
	types, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan stock type grants: %w", err)
	}

	out := make([]string, 0, len(types))
	for _, t := range types {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}
