package entity

import "encoding/json"

// Campos OData reconocidos en los predicados de la consulta.
const (
	FieldProduct            = "Product"
	FieldStockType          = "EWMStockType"
	FieldBatch              = "Batch"
	FieldHandlingUnitNumber = "HandlingUnitNumber"
	FieldStorageBin         = "EWMStorageBin"
)

// OperatorEq es el único operador que se traslada al sistema remoto.
const OperatorEq = "eq"

// Valores por defecto de paginación cuando la consulta no los trae.
const (
	DefaultLimit  = 100
	DefaultOffset = 0
)

// Predicate es una tripleta campo/operador/literal de la cláusula $filter.
// Value nil significa literal indefinido (null en OData).
type Predicate struct {
	Field    string
	Operator string
	Value    *string
}

// StockQuery es la lectura estructurada que llega desde la UI.
// Limit y Offset nil indican que el cliente no los envió.
type StockQuery struct {
	Predicates []Predicate
	Limit      *int
	Offset     *int
}

// Page devuelve limit y offset aplicando los valores por defecto.
func (q StockQuery) Page() (limit, offset int) {
	limit, offset = DefaultLimit, DefaultOffset
	if q.Limit != nil {
		limit = *q.Limit
	}
	if q.Offset != nil {
		offset = *q.Offset
	}
	return limit, offset
}

// StockRecord es una línea de stock físico normalizada (forma local de la entidad).
type StockRecord struct {
	ID                 string
	Product            string
	Warehouse          string
	StockType          string
	Batch              string
	HandlingUnitNumber string
	StorageBin         string
	Quantity           float64
	QuantityUnit       string
}

// StockPage es una página de registros más el total informado por el sistema remoto.
type StockPage struct {
	Records    []StockRecord
	TotalCount int64
}

// UpstreamStockItem es un registro tal como lo devuelve la API remota de EWM.
// La cantidad se conserva cruda porque llega como número o como string decimal.
type UpstreamStockItem struct {
	Product            string          `json:"Product"`
	Warehouse          string          `json:"EWMWarehouse"`
	StockType          string          `json:"EWMStockType"`
	Batch              string          `json:"Batch"`
	HandlingUnitNumber string          `json:"HandlingUnitNumber"`
	StorageBin         string          `json:"EWMStorageBin"`
	Quantity           json.RawMessage `json:"EWMStockQuantityInBaseUnit"`
	QuantityUnit       string          `json:"EWMStockQuantityBaseUnit"`
}
