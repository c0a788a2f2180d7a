package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/ewm-stock-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/ewm-stock-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "ewm-stock-api-test"
	testExpMin    = 60
)

// fakeGrants fuente de concesiones en memoria.
type fakeGrants struct {
	types []string
	err   error
	calls int
}

func (f *fakeGrants) ListStockTypes(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.types, f.err
}

// buildAuthApp construye una aplicación Fiber mínima con AuthMiddleware y un handler
// que devuelve el Principal cargado.
func buildAuthApp(cfg apphttp.AuthConfig) *fiber.App {
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = testJWTSecret
	}
	cfg.Log = zerolog.Nop()
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(cfg), func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		if p == nil {
			return c.JSON(fiber.Map{"anonymous": true})
		}
		return c.JSON(fiber.Map{"id": p.ID, "attributes": p.Attributes})
	})
	return app
}

// bearer genera un JWT con los atributos indicados.
func bearer(t *testing.T, attributes map[string]any) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, attributes, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func newGet(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func doGet(t *testing.T, app *fiber.App, target, authHeader string) *http.Response {
	t.Helper()
	req := newGet(target)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body := decodeBody(t, resp)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "la respuesta debe tener el envoltorio error")
	code, _ := errObj["code"].(string)
	return code
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValido_CargaPrincipal(t *testing.T) {
	app := buildAuthApp(apphttp.AuthConfig{})

	resp := doGet(t, app, "/protected", bearer(t, map[string]any{"StockType": []string{"F1", "F2"}}))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, testUserID, body["id"])
	attrs := body["attributes"].(map[string]any)
	assert.Equal(t, []any{"F1", "F2"}, attrs["StockType"])
}

func TestAuthMiddleware_SinHeader_401(t *testing.T) {
	resp := doGet(t, buildAuthApp(apphttp.AuthConfig{}), "/protected", "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FormatoInvalido_401(t *testing.T) {
	resp := doGet(t, buildAuthApp(apphttp.AuthConfig{}), "/protected", "Basic dTpw")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FirmaIncorrecta_401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, nil, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doGet(t, buildAuthApp(apphttp.AuthConfig{}), "/protected", "Bearer "+tok)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_Opcional_PermiteAnonimo(t *testing.T) {
	resp := doGet(t, buildAuthApp(apphttp.AuthConfig{Optional: true}), "/protected", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["anonymous"])
}

func TestAuthMiddleware_Opcional_TokenInvalidoSigueSiendo401(t *testing.T) {
	resp := doGet(t, buildAuthApp(apphttp.AuthConfig{Optional: true}), "/protected", "Bearer basura")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_Concesiones_CompletanAtributoAusente(t *testing.T) {
	grants := &fakeGrants{types: []string{"F3"}}
	app := buildAuthApp(apphttp.AuthConfig{Grants: grants})

	resp := doGet(t, app, "/protected", bearer(t, nil))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	attrs := decodeBody(t, resp)["attributes"].(map[string]any)
	assert.Equal(t, []any{"F3"}, attrs["StockType"])
	assert.Equal(t, 1, grants.calls)
}

func TestAuthMiddleware_Concesiones_NoPisanElToken(t *testing.T) {
	grants := &fakeGrants{types: []string{"F3"}}
	app := buildAuthApp(apphttp.AuthConfig{Grants: grants})

	resp := doGet(t, app, "/protected", bearer(t, map[string]any{"StockType": "F1"}))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	attrs := decodeBody(t, resp)["attributes"].(map[string]any)
	assert.Equal(t, "F1", attrs["StockType"])
	assert.Zero(t, grants.calls)
}

func TestAuthMiddleware_Concesiones_Error500(t *testing.T) {
	app := buildAuthApp(apphttp.AuthConfig{Grants: &fakeGrants{err: errors.New("db caída")}})

	resp := doGet(t, app, "/protected", bearer(t, nil))

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, resp))
}
