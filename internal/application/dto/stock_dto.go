package dto

import "github.com/jhoicas/ewm-stock-api/internal/domain/entity"

// StockContext valor de @odata.context de la colección.
const StockContext = "$metadata#WarehousePhysicalStock"

// StockResponse una línea de stock físico con los nombres de propiedad de la entidad OData.
type StockResponse struct {
	ID                         string  `json:"ID"`
	Product                    string  `json:"Product"`
	EWMWarehouse               string  `json:"EWMWarehouse"`
	EWMStockType               string  `json:"EWMStockType"`
	Batch                      string  `json:"Batch"`
	HandlingUnitNumber         string  `json:"HandlingUnitNumber"`
	EWMStorageBin              string  `json:"EWMStorageBin"`
	EWMStockQuantityInBaseUnit float64 `json:"EWMStockQuantityInBaseUnit"`
	EWMStockQuantityBaseUnit   string  `json:"EWMStockQuantityBaseUnit"`
}

// StockCollectionResponse colección OData v4 con @odata.count siempre presente.
type StockCollectionResponse struct {
	Context string          `json:"@odata.context"`
	Count   int64           `json:"@odata.count"`
	Value   []StockResponse `json:"value"`
}

// ToStockResponse convierte un registro normalizado a su forma de respuesta.
func ToStockResponse(r entity.StockRecord) StockResponse {
	return StockResponse{
		ID:                         r.ID,
		Product:                    r.Product,
		EWMWarehouse:               r.Warehouse,
		EWMStockType:               r.StockType,
		Batch:                      r.Batch,
		HandlingUnitNumber:         r.HandlingUnitNumber,
		EWMStorageBin:              r.StorageBin,
		EWMStockQuantityInBaseUnit: r.Quantity,
		EWMStockQuantityBaseUnit:   r.QuantityUnit,
	}
}

// ToStockCollection convierte una página normalizada; una página vacía produce value: [].
func ToStockCollection(page *entity.StockPage) StockCollectionResponse {
	out := StockCollectionResponse{Context: StockContext, Value: []StockResponse{}}
	if page == nil {
		return out
	}
	out.Count = page.TotalCount
	for _, r := range page.Records {
		out.Value = append(out.Value, ToStockResponse(r))
	}
	return out
}
