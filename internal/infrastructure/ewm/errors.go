package ewm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/ewm-stock-api/internal/domain"
)

// maxMessageLen recorta mensajes remotos que no vienen en un sobre de error reconocible.
const maxMessageLen = 300

// classifyTransportError traduce un fallo sin respuesta HTTP al tipo de error local.
// DNS, conexión rechazada y timeouts de red son UPSTREAM_UNREACHABLE; el resto INTERNAL_ERROR.
func classifyTransportError(err error) *domain.StockError {
	if isNetworkFailure(err) {
		return domain.NewStockError(domain.KindUpstreamUnreachable, "el sistema EWM no es alcanzable", err)
	}
	return domain.NewStockError(domain.KindInternal, "error inesperado llamando al sistema EWM", err)
}

func isNetworkFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// classifyStatus traduce una respuesta no 2xx.
func classifyStatus(status int, contentType string, body []byte) *domain.StockError {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewStockError(domain.KindUpstreamAuthFailed,
			"autenticación fallida contra EWM; revisar credenciales del destino", nil)
	case http.StatusNotFound:
		return domain.NewStockError(domain.KindUpstreamNotFound, "endpoint de la API EWM no encontrado", nil)
	default:
		return domain.NewUpstreamError(status, upstreamMessage(status, contentType, body))
	}
}

// upstreamMessage extrae el mensaje legible de un cuerpo de error OData (JSON o XML).
func upstreamMessage(status int, contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return http.StatusText(status)
	}
	if trimmed[0] == '<' {
		if msg := xmlErrorMessage(trimmed); msg != "" {
			return msg
		}
	}

	text := decodeCharset(trimmed, contentType)
	if text[0] == '{' {
		if msg := jsonErrorMessage(text); msg != "" {
			return msg
		}
	}
	msg := strings.TrimSpace(string(text))
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen] + "..."
	}
	return msg
}

// jsonErrorMessage soporta error.message como string (OData v4) o como {"value": ...} (OData v2).
func jsonErrorMessage(body []byte) string {
	var env struct {
		Error struct {
			Code    string          `json:"code"`
			Message json.RawMessage `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Error.Message) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(env.Error.Message, &s); err == nil {
		return s
	}
	var v2 struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(env.Error.Message, &v2); err == nil {
		return v2.Value
	}
	return ""
}

// xmlErrorMessage lee <error><message>…</message></error> con o sin namespace.
func xmlErrorMessage(body []byte) string {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(body); err != nil {
		return ""
	}
	el := doc.FindElement("//message")
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	if isLatin1(charset) {
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	}
	return input, nil
}

// decodeCharset convierte a UTF-8 los cuerpos declarados como ISO-8859-1 en el Content-Type.
func decodeCharset(body []byte, contentType string) []byte {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || !isLatin1(params["charset"]) {
		return body
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err != nil {
		return body
	}
	return out
}

func isLatin1(charset string) bool {
	switch strings.ToLower(charset) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return true
	}
	return false
}
