package repository

import "context"

// StockTypeGrantRepository define el puerto de lectura de tipos de stock concedidos a un usuario.
// Se usa cuando el token no trae el atributo de tipos de stock.
type StockTypeGrantRepository interface {
	ListStockTypes(ctx context.Context, userID string) ([]string, error)
}
