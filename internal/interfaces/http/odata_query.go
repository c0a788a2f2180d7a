package http

import (
	"strconv"
	"strings"

	"github.com/jhoicas/ewm-stock-api/internal/domain"
	"github.com/jhoicas/ewm-stock-api/internal/domain/entity"
)

// Opciones de sistema OData aceptadas en la lectura de stock.
const (
	optFilter = "$filter"
	optTop    = "$top"
	optSkip   = "$skip"
)

// ParseStockQuery traduce las opciones de la query string a una consulta estructurada.
// $top y $skip deben ser enteros; un valor no numérico es INVALID_QUERY.
// $count se ignora: la respuesta siempre incluye @odata.count.
func ParseStockQuery(params map[string]string) (entity.StockQuery, error) {
	var q entity.StockQuery

	var err error
	if q.Limit, err = parseIntOption(params, optTop); err != nil {
		return q, err
	}
	if q.Offset, err = parseIntOption(params, optSkip); err != nil {
		return q, err
	}
	q.Predicates = ParseFilter(params[optFilter])
	return q, nil
}

func parseIntOption(params map[string]string, name string) (*int, error) {
	raw, ok := params[name]
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewStockError(domain.KindInvalidQuery, name+" debe ser un entero", domain.ErrInvalidInput)
	}
	return &n, nil
}

// ParseFilter extrae los predicados de comparación "Campo op literal" de una expresión $filter.
// Es permisivo: funciones, paréntesis y operadores lógicos se saltan, y un literal sin cerrar
// termina el análisis conservando lo leído hasta ahí. El literal null produce Value nil.
func ParseFilter(filter string) []entity.Predicate {
	tokens := tokenizeFilter(filter)

	var preds []entity.Predicate
	for i := 0; i+2 < len(tokens); i++ {
		field, op, val := tokens[i], tokens[i+1], tokens[i+2]
		if field.kind != tokWord || op.kind != tokWord || !isComparison(op.text) {
			continue
		}

		var value *string
		switch val.kind {
		case tokString:
			v := val.text
			value = &v
		case tokWord:
			if !strings.EqualFold(val.text, "null") {
				v := val.text
				value = &v
			}
		default:
			continue
		}
		preds = append(preds, entity.Predicate{Field: field.text, Operator: strings.ToLower(op.text), Value: value})
		i += 2
	}
	return preds
}

func isComparison(op string) bool {
	switch strings.ToLower(op) {
	case "eq", "ne", "gt", "ge", "lt", "le":
		return true
	}
	return false
}

type tokenKind int

const (
	tokWord tokenKind = iota
	tokString
	tokPunct
)

type filterToken struct {
	kind tokenKind
	text string
}

// tokenizeFilter separa palabras, literales entre comillas simples ('' escapa una comilla)
// y los signos ( ) ,.
func tokenizeFilter(s string) []filterToken {
	var out []filterToken
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isSpace(c):
			i++
		case c == '(' || c == ')' || c == ',':
			out = append(out, filterToken{kind: tokPunct, text: string(c)})
			i++
		case c == '\'':
			text, next, ok := readLiteral(s, i+1)
			if !ok {
				return out
			}
			out = append(out, filterToken{kind: tokString, text: text})
			i = next
		default:
			j := i
			for j < len(s) && !isDelimiter(s[j]) {
				j++
			}
			out = append(out, filterToken{kind: tokWord, text: s[i:j]})
			i = j
		}
	}
	return out
}

// readLiteral lee desde start hasta la comilla de cierre. ok=false si no hay cierre.
func readLiteral(s string, start int) (text string, next int, ok bool) {
	var b strings.Builder
	for j := start; j < len(s); j++ {
		if s[j] != '\'' {
			b.WriteByte(s[j])
			continue
		}
		if j+1 < len(s) && s[j+1] == '\'' {
			b.WriteByte('\'')
			j++
			continue
		}
		return b.String(), j + 1, true
	}
	return "", len(s), false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDelimiter(c byte) bool {
	return isSpace(c) || c == '(' || c == ')' || c == ',' || c == '\''
}
