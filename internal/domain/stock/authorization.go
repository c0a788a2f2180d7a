package stock

import (
	"strings"

	"github.com/jhoicas/ewm-stock-api/internal/domain/entity"
)

// ResolveStockTypes devuelve los tipos de stock que el usuario puede consultar,
// leídos del atributo indicado. Sin usuario o sin atributo el resultado es vacío (no ve nada).
// El atributo puede venir como un valor suelto o como lista; el orden se conserva y
// se descartan vacíos y duplicados.
func ResolveStockTypes(principal *entity.Principal, attribute string) []string {
	if principal == nil || principal.Attributes == nil {
		return nil
	}
	if attribute == "" {
		attribute = entity.DefaultStockTypeAttribute
	}

	var raw []string
	switch v := principal.Attributes[attribute].(type) {
	case string:
		raw = []string{v}
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	default:
		return nil
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
