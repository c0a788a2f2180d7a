package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ewm-stock-api/pkg/config"
	"github.com/jhoicas/ewm-stock-api/pkg/jwt"
)

func testConfig(ewmURL string) *config.Config {
	return &config.Config{
		JWT:  config.JWTConfig{Secret: "cli-secret", Expiration: 60, Issuer: "stockctl-test"},
		Auth: config.AuthConfig{EnforceStockTypes: true, StockTypeAttribute: "StockType", StockTypeSource: config.StockTypeSourceToken},
		EWM:  config.EWMConfig{Destination: "EWM_HMF", APIPath: "/stock", DefaultTop: 100, MaxTop: 1000, TimeoutSeconds: 5},
		Destination: config.DestinationConfig{
			URL: ewmURL,
		},
	}
}

func execute(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out, func() (*config.Config, error) { return cfg, nil })
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTokenCmd_EmiteTokenConTipos(t *testing.T) {
	cfg := testConfig("")

	out, err := execute(t, cfg, "token", "--user", "u1", "--stock-type", "F1,F2")
	require.NoError(t, err)

	userID, attrs, err := jwt.Parse(cfg.JWT.Secret, strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, []any{"F1", "F2"}, attrs["StockType"])
}

func TestTokenCmd_SinSecreto(t *testing.T) {
	cfg := testConfig("")
	cfg.JWT.Secret = ""

	_, err := execute(t, cfg, "token")
	assert.Error(t, err)
}

func TestQueryCmd_ContraServidorEWM(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"@odata.count":"1","value":[{"Product":"P100","EWMWarehouse":"HMF1","EWMStockType":"F2","EWMStorageBin":"A-01-01","EWMStockQuantityInBaseUnit":12.5,"EWMStockQuantityBaseUnit":"EA"}]}`))
	}))
	defer srv.Close()

	out, err := execute(t, testConfig(srv.URL), "query", "--filter", "Product eq 'P100'", "--top", "50", "--stock-type", "F2")
	require.NoError(t, err)

	assert.Equal(t, "$count=true&$top=50&$skip=0&$filter=Product%20eq%20%27P100%27%20and%20%28EWMStockType%20eq%20%27F2%27%29", gotQuery)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, float64(1), body["@odata.count"])
	rec := body["value"].([]any)[0].(map[string]any)
	assert.Equal(t, "P100_HMF1_A-01-01_0", rec["ID"])
}

func TestQueryCmd_Denegado(t *testing.T) {
	out, err := execute(t, testConfig("http://127.0.0.1:1"), "query", "--filter", "EWMStockType eq 'Q4'", "--stock-type", "F1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORBIDDEN_TYPE")
	assert.Empty(t, out)
}

func TestQueryCmd_SinDestino(t *testing.T) {
	_, err := execute(t, testConfig(""), "query", "--stock-type", "F1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_UNAVAILABLE")
}
