package http

import (
	"github.com/gofiber/fiber/v2"
)

// ServicePath raíz del servicio OData de stock.
const ServicePath = "/odata/v4/stock"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockReader StockReader
	Auth        AuthConfig
}

// Router registra las rutas del servicio OData.
func Router(app *fiber.App, deps RouterDeps) {
	stockHandler := NewStockHandler(deps.StockReader)

	service := app.Group(ServicePath)

	// Documentos de servicio (públicos, no exponen datos)
	service.Get("/", stockHandler.ServiceDocument)
	service.Get("/$metadata", stockHandler.Metadata)

	// Colección protegida (Bearer Token; opcional en modo público)
	service.Get("/"+EntitySetName, AuthMiddleware(deps.Auth), stockHandler.List)
}
