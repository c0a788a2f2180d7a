package ewm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ewm-stock-api/internal/application/ports"
	"github.com/jhoicas/ewm-stock-api/internal/domain"
	"github.com/jhoicas/ewm-stock-api/internal/domain/entity"
	"github.com/jhoicas/ewm-stock-api/pkg/logger"
)

// Verificar en tiempo de compilación que StockGateway implementa el puerto.
var _ ports.StockGateway = (*StockGateway)(nil)

const (
	// DefaultAPIPath ruta de la API OData v4 de stock físico por producto en EWM.
	DefaultAPIPath = "/sap/opu/odata4/sap/api_whse_physstockprod/srvd_a2x/sap/whsephysicalstockproducts/0001/WarehousePhysicalStockProducts"
	// DefaultDestination nombre del destino configurado para EWM.
	DefaultDestination = "EWM_HMF"
)

// GatewayConfig ruta y destino de la API remota.
type GatewayConfig struct {
	Destination string
	APIPath     string
}

// StockGateway lectura paginada de stock físico contra EWM.
// Resuelve el destino en cada llamada y hace un único intento (sin reintentos).
type StockGateway struct {
	resolver  ports.DestinationResolver
	transport ports.Transport
	cfg       GatewayConfig
	log       zerolog.Logger
}

// NewStockGateway construye el gateway con los valores por defecto si cfg viene vacío.
func NewStockGateway(resolver ports.DestinationResolver, transport ports.Transport, cfg GatewayConfig, log zerolog.Logger) *StockGateway {
	if cfg.Destination == "" {
		cfg.Destination = DefaultDestination
	}
	if cfg.APIPath == "" {
		cfg.APIPath = DefaultAPIPath
	}
	return &StockGateway{resolver: resolver, transport: transport, cfg: cfg, log: log}
}

// Fetch ejecuta GET <APIPath>?$count=true&$top=..&$skip=..[&$filter=..] con Accept: application/json.
// Los fallos se devuelven como *domain.StockError ya clasificados.
func (g *StockGateway) Fetch(ctx context.Context, req ports.FetchRequest) (*ports.UpstreamPayload, error) {
	dest, err := g.resolver.Resolve(ctx, g.cfg.Destination)
	if err != nil {
		return nil, domain.NewStockError(domain.KindUpstreamUnavailable,
			fmt.Sprintf("no se pudo resolver el destino %q", g.cfg.Destination), err)
	}
	if dest == nil {
		return nil, domain.NewStockError(domain.KindUpstreamUnavailable,
			fmt.Sprintf("destino %q no configurado", g.cfg.Destination), nil)
	}

	reqID := logger.RequestID(ctx)
	path := g.cfg.APIPath + "?" + BuildQuery(req)
	g.log.Debug().Str("request_id", reqID).Str("destination", dest.Name).Str("path", path).Msg("llamando API EWM")

	resp, err := g.transport.Execute(ctx, dest, ports.UpstreamRequest{
		Method:  http.MethodGet,
		URL:     strings.TrimRight(dest.BaseURL, "/") + path,
		Headers: map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		return nil, classifyTransportError(err)
	}
	if resp.Status < 200 || resp.Status > 299 {
		g.log.Warn().Str("request_id", reqID).Int("status", resp.Status).Str("destination", dest.Name).Msg("respuesta de error de EWM")
		return nil, classifyStatus(resp.Status, resp.ContentType, resp.Body)
	}

	payload, err := decodePayload(resp.Body)
	if err != nil {
		return nil, domain.NewStockError(domain.KindInternal, "respuesta inesperada de la API EWM", err)
	}
	g.log.Debug().Str("request_id", reqID).Int("records", len(payload.Items)).RawJSON("count", countOrNull(payload.Count)).Msg("respuesta EWM recibida")
	return payload, nil
}

// BuildQuery arma la query string en orden fijo. Los nombres de opción ($count, $top, …) van
// literales y los valores codificados con %20 para los espacios.
func BuildQuery(req ports.FetchRequest) string {
	var b strings.Builder
	b.WriteString("$count=true")
	b.WriteString("&$top=" + strconv.Itoa(req.Limit))
	b.WriteString("&$skip=" + strconv.Itoa(req.Offset))
	if req.Filter != "" {
		b.WriteString("&$filter=" + encodeComponent(req.Filter))
	}
	return b.String()
}

func encodeComponent(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// decodePayload acepta el sobre {"value":[...],"@odata.count":N} o, en su defecto, una sola entidad.
func decodePayload(body []byte) (*ports.UpstreamPayload, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &ports.UpstreamPayload{Items: []entity.UpstreamStockItem{}}, nil
	}
	var env struct {
		Value *[]entity.UpstreamStockItem `json:"value"`
		Count json.RawMessage             `json:"@odata.count"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decodificar respuesta: %w", err)
	}
	if env.Value != nil {
		return &ports.UpstreamPayload{Items: *env.Value, Count: env.Count}, nil
	}

	var single entity.UpstreamStockItem
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, fmt.Errorf("decodificar entidad: %w", err)
	}
	if single.Product == "" && single.Warehouse == "" {
		return &ports.UpstreamPayload{Items: []entity.UpstreamStockItem{}, Count: env.Count}, nil
	}
	return &ports.UpstreamPayload{Items: []entity.UpstreamStockItem{single}, Count: env.Count}, nil
}

func countOrNull(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}
