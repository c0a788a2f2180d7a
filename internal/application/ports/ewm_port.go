package ports

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jhoicas/ewm-stock-api/internal/domain/entity"
)

// Destination es el manejador de conexión al sistema remoto resuelto por nombre.
// Client lleva la configuración de transporte propia del destino (p. ej. certificado cliente).
type Destination struct {
	Name    string
	BaseURL string
	Headers map[string]string
	Client  *http.Client
}

// DestinationResolver resuelve destinos por nombre. Devuelve (nil, nil) si el destino
// no está configurado; el error queda para fallos al construirlo.
type DestinationResolver interface {
	Resolve(ctx context.Context, name string) (*Destination, error)
}

// UpstreamRequest petición saliente ya construida (URL absoluta).
type UpstreamRequest struct {
	Method  string
	URL     string
	Headers map[string]string
}

// UpstreamResponse respuesta cruda del sistema remoto; los status no 2xx no son error.
type UpstreamResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// Transport ejecuta la llamada HTTP contra un destino. Solo devuelve error cuando no hubo
// respuesta (DNS, conexión rechazada, timeout, cancelación).
type Transport interface {
	Execute(ctx context.Context, dest *Destination, req UpstreamRequest) (*UpstreamResponse, error)
}

// FetchRequest lectura paginada y filtrada contra la API de stock físico.
type FetchRequest struct {
	Filter string
	Limit  int
	Offset int
}

// UpstreamPayload sobre OData v4 devuelto por la API remota.
type UpstreamPayload struct {
	Items []entity.UpstreamStockItem
	Count json.RawMessage
}

// StockGateway puerto de salida hacia EWM. Los fallos llegan clasificados como *domain.StockError.
type StockGateway interface {
	Fetch(ctx context.Context, req FetchRequest) (*UpstreamPayload, error)
}
