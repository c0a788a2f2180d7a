package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/ewm-stock-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "ewm-stock-api-test"
)

func TestJWT_GenerateAndParse_ConAtributos(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u1", map[string]any{"StockType": []string{"F1", "F2"}}, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, attrs, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, "u1", userID)
	// Tras el viaje por JSON la lista llega como []any.
	assert.Equal(t, []any{"F1", "F2"}, attrs["StockType"])
}

func TestJWT_SinAtributos(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u1", nil, testIssuer, 60)
	require.NoError(t, err)

	_, attrs, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Empty(t, attrs)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u1", nil, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u1", nil, testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", "u1", nil, testIssuer, 60)
	assert.Error(t, err)

	_, _, err = pkgjwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
