package ewm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jhoicas/ewm-stock-api/internal/application/ports"
)

// Verificar en tiempo de compilación que HTTPTransport implementa Transport.
var _ ports.Transport = (*HTTPTransport)(nil)

// maxResponseBytes límite de lectura de la respuesta remota (32 MB).
const maxResponseBytes = 32 << 20

// HTTPTransport ejecuta las llamadas salientes con net/http instrumentado con OpenTelemetry.
// Cada destino puede traer su propio *http.Client (mTLS); si no, se usa el cliente por defecto.
type HTTPTransport struct {
	httpClient *http.Client
}

// NewHTTPTransport construye el transporte con el timeout de red indicado.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{httpClient: NewHTTPClient(timeout, nil)}
}

// NewHTTPClient devuelve un cliente instrumentado. base puede ser nil (http.DefaultTransport).
func NewHTTPClient(timeout time.Duration, base http.RoundTripper) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(base),
	}
}

// Execute envía la petición y devuelve status, content-type y cuerpo sin interpretarlos.
func (t *HTTPTransport) Execute(ctx context.Context, dest *ports.Destination, in ports.UpstreamRequest) (*ports.UpstreamResponse, error) {
	req, err := http.NewRequestWithContext(ctx, in.Method, in.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("ewm: crear request: %w", err)
	}
	client := t.httpClient
	if dest != nil {
		for k, v := range dest.Headers {
			req.Header.Set(k, v)
		}
		if dest.Client != nil {
			client = dest.Client
		}
	}
	for k, v := range in.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ewm: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("ewm: leer respuesta: %w", err)
	}
	return &ports.UpstreamResponse{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
