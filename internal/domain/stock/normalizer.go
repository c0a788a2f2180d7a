package stock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ewm-stock-api/internal/domain/entity"
)

// Normalize transforma los registros remotos a la forma local.
//
// El ID combina producto, bodega, ubicación y la posición absoluta (offset+i), de modo que
// dos filas con las mismas claves de negocio en páginas distintas no colisionan.
// rawCount es el @odata.count remoto; si falta se usa la cantidad de registros devueltos.
func Normalize(items []entity.UpstreamStockItem, rawCount json.RawMessage, offset int) *entity.StockPage {
	records := make([]entity.StockRecord, 0, len(items))
	for i, item := range items {
		records = append(records, entity.StockRecord{
			ID:                 fmt.Sprintf("%s_%s_%s_%d", item.Product, item.Warehouse, item.StorageBin, offset+i),
			Product:            item.Product,
			Warehouse:          item.Warehouse,
			StockType:          item.StockType,
			Batch:              item.Batch,
			HandlingUnitNumber: item.HandlingUnitNumber,
			StorageBin:         item.StorageBin,
			Quantity:           parseQuantity(item.Quantity),
			QuantityUnit:       item.QuantityUnit,
		})
	}

	total := int64(len(records))
	if n, ok := parseDecimal(rawCount); ok {
		total = n.IntPart()
	}
	return &entity.StockPage{Records: records, TotalCount: total}
}

func parseQuantity(raw json.RawMessage) float64 {
	d, ok := parseDecimal(raw)
	if !ok {
		return 0
	}
	return d.InexactFloat64()
}

// parseDecimal acepta un número JSON o un string con un decimal ("12.500").
func parseDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, false
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, false
		}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
