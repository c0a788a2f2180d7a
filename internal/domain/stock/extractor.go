package stock

import "github.com/jhoicas/ewm-stock-api/internal/domain/entity"

// Predicates valor solicitado por campo (como máximo uno por campo).
type Predicates map[string]string

var recognizedFields = map[string]struct{}{
	entity.FieldProduct:            {},
	entity.FieldStockType:          {},
	entity.FieldBatch:              {},
	entity.FieldHandlingUnitNumber: {},
	entity.FieldStorageBin:         {},
}

// ExtractPredicates recorre los predicados de la consulta y conserva solo las igualdades
// sobre campos reconocidos con literal definido. Si un campo aparece dos veces gana el último.
// Nunca falla: una entrada vacía o irreconocible produce un mapa vacío.
func ExtractPredicates(query entity.StockQuery) Predicates {
	out := make(Predicates)
	for _, p := range query.Predicates {
		if p.Operator != entity.OperatorEq || p.Value == nil {
			continue
		}
		if _, ok := recognizedFields[p.Field]; !ok {
			continue
		}
		out[p.Field] = *p.Value
	}
	return out
}
