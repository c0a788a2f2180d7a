package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ewm-stock-api/internal/application/ports"
	"github.com/jhoicas/ewm-stock-api/internal/application/stock"
	"github.com/jhoicas/ewm-stock-api/internal/domain"
	"github.com/jhoicas/ewm-stock-api/internal/domain/entity"
	apphttp "github.com/jhoicas/ewm-stock-api/internal/interfaces/http"
)

// stubGateway devuelve un payload fijo y registra las peticiones.
type stubGateway struct {
	payload *ports.UpstreamPayload
	err     error
	calls   []ports.FetchRequest
}

func (g *stubGateway) Fetch(_ context.Context, req ports.FetchRequest) (*ports.UpstreamPayload, error) {
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	if g.payload == nil {
		return &ports.UpstreamPayload{}, nil
	}
	return g.payload, nil
}

func buildStockApp(gw ports.StockGateway, enforce bool) *fiber.App {
	uc := stock.NewReadStockUseCase(gw, stock.Config{EnforceStockTypes: enforce}, zerolog.Nop())
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		StockReader: uc,
		Auth:        apphttp.AuthConfig{JWTSecret: testJWTSecret, Optional: !enforce, Log: zerolog.Nop()},
	})
	return app
}

func stockURL(params url.Values) string {
	return apphttp.ServicePath + "/" + apphttp.EntitySetName + "?" + params.Encode()
}

func TestStockList_EscenarioCompleto(t *testing.T) {
	var items []entity.UpstreamStockItem
	require.NoError(t, json.Unmarshal([]byte(`[{"Product":"P100","EWMWarehouse":"HMF1","EWMStockType":"F2","EWMStorageBin":"A-01-01","EWMStockQuantityInBaseUnit":"12.5","EWMStockQuantityBaseUnit":"EA"}]`), &items))
	gw := &stubGateway{payload: &ports.UpstreamPayload{Items: items, Count: json.RawMessage(`1`)}}
	app := buildStockApp(gw, true)

	resp := doGet(t, app, stockURL(url.Values{"$filter": {"Product eq 'P100'"}, "$top": {"50"}, "$skip": {"0"}}),
		bearer(t, map[string]any{"StockType": []string{"F2"}}))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "4.0", resp.Header.Get("OData-Version"))
	require.Len(t, gw.calls, 1)
	assert.Equal(t, "Product eq 'P100' and (EWMStockType eq 'F2')", gw.calls[0].Filter)
	assert.Equal(t, 50, gw.calls[0].Limit)

	body := decodeBody(t, resp)
	assert.Equal(t, "$metadata#WarehousePhysicalStock", body["@odata.context"])
	assert.Equal(t, float64(1), body["@odata.count"])
	value := body["value"].([]any)
	require.Len(t, value, 1)
	rec := value[0].(map[string]any)
	assert.Equal(t, "P100_HMF1_A-01-01_0", rec["ID"])
	assert.Equal(t, 12.5, rec["EWMStockQuantityInBaseUnit"])
	assert.Equal(t, "EA", rec["EWMStockQuantityBaseUnit"])
	assert.Equal(t, "A-01-01", rec["EWMStorageBin"])
}

func TestStockList_PaginaVacia(t *testing.T) {
	app := buildStockApp(&stubGateway{}, true)

	resp := doGet(t, app, stockURL(url.Values{}), bearer(t, map[string]any{"StockType": "F1"}))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(0), body["@odata.count"])
	assert.Equal(t, []any{}, body["value"])
}

func TestStockList_TipoNoAutorizado_403(t *testing.T) {
	gw := &stubGateway{}
	app := buildStockApp(gw, true)

	resp := doGet(t, app, stockURL(url.Values{"$filter": {"EWMStockType eq 'Q4'"}}),
		bearer(t, map[string]any{"StockType": []string{"F1", "F2"}}))

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN_TYPE", errorCode(t, resp))
	assert.Empty(t, gw.calls)
}

func TestStockList_SinTipos_403(t *testing.T) {
	gw := &stubGateway{}
	app := buildStockApp(gw, true)

	resp := doGet(t, app, stockURL(url.Values{}), bearer(t, nil))

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "NO_AUTHORIZATION", errorCode(t, resp))
	assert.Empty(t, gw.calls)
}

func TestStockList_SinToken_401(t *testing.T) {
	resp := doGet(t, buildStockApp(&stubGateway{}, true), stockURL(url.Values{}), "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestStockList_TopInvalido_400(t *testing.T) {
	gw := &stubGateway{}
	resp := doGet(t, buildStockApp(gw, true), stockURL(url.Values{"$top": {"abc"}}),
		bearer(t, map[string]any{"StockType": "F1"}))

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUERY", errorCode(t, resp))
	assert.Empty(t, gw.calls)
}

func TestStockList_ErrorRemoto_ConservaStatusYMensaje(t *testing.T) {
	gw := &stubGateway{err: domain.NewUpstreamError(http.StatusConflict, "Almacén bloqueado")}
	resp := doGet(t, buildStockApp(gw, true), stockURL(url.Values{}),
		bearer(t, map[string]any{"StockType": "F1"}))

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "UPSTREAM_ERROR", errObj["code"])
	assert.Equal(t, "Almacén bloqueado", errObj["message"])
}

func TestStockList_ModoPublico_SinToken(t *testing.T) {
	gw := &stubGateway{}
	resp := doGet(t, buildStockApp(gw, false), stockURL(url.Values{}), "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, gw.calls, 1)
	assert.Empty(t, gw.calls[0].Filter)
}

func TestStockList_RequestIDSePropaga(t *testing.T) {
	app := buildStockApp(&stubGateway{}, true)

	req := newGet(stockURL(url.Values{}))
	req.Header.Set("Authorization", bearer(t, map[string]any{"StockType": "F1"}))
	req.Header.Set(apphttp.HeaderRequestID, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, "req-123", resp.Header.Get(apphttp.HeaderRequestID))
}

func TestStockList_RequestIDGenerado(t *testing.T) {
	resp := doGet(t, buildStockApp(&stubGateway{}, true), stockURL(url.Values{}), "")

	assert.Len(t, resp.Header.Get(apphttp.HeaderRequestID), 36, "uuid canónico")
}

func TestServiceDocument(t *testing.T) {
	resp := doGet(t, buildStockApp(&stubGateway{}, true), apphttp.ServicePath+"/", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	value := body["value"].([]any)
	require.Len(t, value, 1)
	assert.Equal(t, "WarehousePhysicalStock", value[0].(map[string]any)["name"])
}

func TestMetadata_DocumentoEDMX(t *testing.T) {
	resp := doGet(t, buildStockApp(&stubGateway{}, true), apphttp.ServicePath+"/$metadata", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	xml := string(raw)
	assert.Contains(t, xml, `<edmx:Edmx xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx" Version="4.0">`)
	assert.Contains(t, xml, `<EntitySet Name="WarehousePhysicalStock" EntityType="StockService.WarehousePhysicalStock"/>`)
	assert.Contains(t, xml, `<Property Name="EWMStockQuantityInBaseUnit" Type="Edm.Double"/>`)
	assert.Contains(t, xml, `<Property Name="ID" Type="Edm.String" Nullable="false"/>`)
}
