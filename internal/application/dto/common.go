package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ODataErrorResponse envoltorio de error OData v4: {"error":{"code","message"}}.
type ODataErrorResponse struct {
	Error ErrorResponse `json:"error"`
}

// NewODataError construye el envoltorio de error.
func NewODataError(code, message string) ODataErrorResponse {
	return ODataErrorResponse{Error: ErrorResponse{Code: code, Message: message}}
}
