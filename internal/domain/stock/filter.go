package stock

import (
	"fmt"
	"strings"

	"github.com/jhoicas/ewm-stock-api/internal/domain"
	"github.com/jhoicas/ewm-stock-api/internal/domain/entity"
)

// Authorization describe la restricción de tipos de stock que se aplica al filtro.
// Con Enforced en false el filtro no se restringe (modo público explícito).
type Authorization struct {
	Enforced   bool
	StockTypes []string
}

// Campos que se trasladan tal cual, en el orden en que se emiten.
var passthroughFields = []string{
	entity.FieldProduct,
	entity.FieldBatch,
	entity.FieldHandlingUnitNumber,
	entity.FieldStorageBin,
}

// CompileFilter combina los predicados y la autorización en una expresión $filter.
//
// Devuelve domain.ErrNoStockTypeAuthorization si el usuario no tiene tipos autorizados y
// domain.ErrStockTypeForbidden si pidió un tipo que no tiene asignado. En ambos casos no
// debe hacerse ninguna llamada remota. Una expresión vacía significa "sin filtro".
func CompileFilter(predicates Predicates, auth Authorization) (string, error) {
	clauses := make([]string, 0, len(passthroughFields)+1)
	for _, field := range passthroughFields {
		if v := predicates[field]; v != "" {
			clauses = append(clauses, eqClause(field, v))
		}
	}

	requested := predicates[entity.FieldStockType]
	switch {
	case !auth.Enforced:
		if requested != "" {
			clauses = append(clauses, eqClause(entity.FieldStockType, requested))
		}
	case len(auth.StockTypes) == 0:
		return "", domain.ErrNoStockTypeAuthorization
	case requested != "":
		if !contains(auth.StockTypes, requested) {
			return "", domain.ErrStockTypeForbidden
		}
		clauses = append(clauses, eqClause(entity.FieldStockType, requested))
	default:
		alts := make([]string, 0, len(auth.StockTypes))
		for _, st := range auth.StockTypes {
			alts = append(alts, eqClause(entity.FieldStockType, st))
		}
		clauses = append(clauses, "("+strings.Join(alts, " or ")+")")
	}

	return strings.Join(clauses, " and "), nil
}

// EscapeLiteral duplica las comillas simples para que el valor no cierre el literal OData.
func EscapeLiteral(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

func eqClause(field, value string) string {
	return fmt.Sprintf("%s eq '%s'", field, EscapeLiteral(value))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
