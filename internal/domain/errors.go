package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput             = errors.New("entrada inválida")
	ErrNoStockTypeAuthorization = errors.New("el usuario no tiene tipos de stock autorizados")
	ErrStockTypeForbidden       = errors.New("tipo de stock no autorizado para el usuario")
)

// ErrorKind clasifica cualquier fallo de una lectura de stock en un código estable.
type ErrorKind string

const (
	KindInvalidQuery        ErrorKind = "INVALID_QUERY"
	KindNoAuthorization     ErrorKind = "NO_AUTHORIZATION"
	KindForbiddenType       ErrorKind = "FORBIDDEN_TYPE"
	KindUpstreamUnavailable ErrorKind = "UPSTREAM_UNAVAILABLE"
	KindUpstreamAuthFailed  ErrorKind = "UPSTREAM_AUTH_FAILED"
	KindUpstreamNotFound    ErrorKind = "UPSTREAM_NOT_FOUND"
	KindUpstreamUnreachable ErrorKind = "UPSTREAM_UNREACHABLE"
	KindUpstreamError       ErrorKind = "UPSTREAM_ERROR"
	KindInternal            ErrorKind = "INTERNAL_ERROR"
)

// StockError es el único error que la capa HTTP recibe del caso de uso de stock.
// Status es el código HTTP local; solo UPSTREAM_ERROR lo toma del sistema remoto.
type StockError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *StockError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *StockError) Unwrap() error { return e.Err }

// NewStockError construye el error con el status local que corresponde al tipo.
func NewStockError(kind ErrorKind, message string, cause error) *StockError {
	return &StockError{Kind: kind, Status: StatusFor(kind), Message: message, Err: cause}
}

// NewUpstreamError conserva el status HTTP devuelto por el sistema remoto.
func NewUpstreamError(status int, message string) *StockError {
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	return &StockError{Kind: KindUpstreamError, Status: status, Message: message}
}

// StatusFor devuelve el status HTTP local de cada tipo de error.
func StatusFor(kind ErrorKind) int {
	switch kind {
	case KindInvalidQuery:
		return http.StatusBadRequest
	case KindNoAuthorization, KindForbiddenType:
		return http.StatusForbidden
	case KindUpstreamUnavailable:
		return http.StatusBadGateway
	case KindUpstreamAuthFailed:
		return http.StatusUnauthorized
	case KindUpstreamNotFound:
		return http.StatusNotFound
	case KindUpstreamUnreachable:
		return http.StatusServiceUnavailable
	case KindUpstreamError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// AsStockError normaliza cualquier error a *StockError (INTERNAL_ERROR si no lo es).
func AsStockError(err error) *StockError {
	if err == nil {
		return nil
	}
	var se *StockError
	if errors.As(err, &se) {
		return se
	}
	return NewStockError(KindInternal, "error interno procesando la consulta de stock", err)
}
