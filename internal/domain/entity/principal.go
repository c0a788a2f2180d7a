package entity

// DefaultStockTypeAttribute es el nombre del atributo de usuario con los tipos de stock visibles.
const DefaultStockTypeAttribute = "StockType"

// Principal es el usuario autenticado de la petición. Se construye en cada request
// a partir del token y nunca se persiste.
type Principal struct {
	ID         string
	Attributes map[string]any
}
