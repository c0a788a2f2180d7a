package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ewm-stock-api/internal/application/dto"
	"github.com/jhoicas/ewm-stock-api/internal/domain"
	"github.com/jhoicas/ewm-stock-api/internal/domain/entity"
)

// HeaderODataVersion versión del protocolo anunciada en las respuestas.
const HeaderODataVersion = "OData-Version"

// StockReader puerto de lectura que el handler necesita del caso de uso.
type StockReader interface {
	Read(ctx context.Context, principal *entity.Principal, query entity.StockQuery) (*entity.StockPage, error)
}

// StockHandler expone la entidad WarehousePhysicalStock como colección OData v4 de solo lectura.
type StockHandler struct {
	reader StockReader
}

// NewStockHandler construye el handler.
func NewStockHandler(reader StockReader) *StockHandler {
	return &StockHandler{reader: reader}
}

// List godoc
// @Summary      Stock físico por producto en EWM
// @Description  Lectura filtrada por los tipos de stock autorizados del usuario.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        $filter  query  string  false  "Expresión OData (Product, Batch, HandlingUnitNumber, EWMStorageBin, EWMStockType con eq)"
// @Param        $top     query  int     false  "Tamaño de página (por defecto 100)"
// @Param        $skip    query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockCollectionResponse
// @Failure      400  {object}  dto.ODataErrorResponse
// @Failure      401  {object}  dto.ODataErrorResponse
// @Failure      403  {object}  dto.ODataErrorResponse
// @Failure      502  {object}  dto.ODataErrorResponse
// @Failure      503  {object}  dto.ODataErrorResponse
// @Router       /odata/v4/stock/WarehousePhysicalStock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	c.Set(HeaderODataVersion, "4.0")

	query, err := ParseStockQuery(c.Queries())
	if err != nil {
		return writeStockError(c, err)
	}
	page, err := h.reader.Read(c.UserContext(), GetPrincipal(c), query)
	if err != nil {
		return writeStockError(c, err)
	}
	return c.JSON(dto.ToStockCollection(page))
}

// ServiceDocument godoc
// @Summary      Documento de servicio OData
// @Tags         stock
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /odata/v4/stock/ [get]
func (h *StockHandler) ServiceDocument(c *fiber.Ctx) error {
	c.Set(HeaderODataVersion, "4.0")
	return c.JSON(fiber.Map{
		"@odata.context": "$metadata",
		"value": []fiber.Map{
			{"name": EntitySetName, "url": EntitySetName, "kind": "EntitySet"},
		},
	})
}

// Metadata godoc
// @Summary      Documento CSDL ($metadata)
// @Tags         stock
// @Produce      xml
// @Success      200  {string}  string
// @Router       /odata/v4/stock/$metadata [get]
func (h *StockHandler) Metadata(c *fiber.Ctx) error {
	doc, err := MetadataDocument()
	if err != nil {
		return writeStockError(c, err)
	}
	c.Set(HeaderODataVersion, "4.0")
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(doc)
}

// writeStockError traduce cualquier error a {"error":{"code","message"}} con el status del tipo.
func writeStockError(c *fiber.Ctx, err error) error {
	se := domain.AsStockError(err)
	return c.Status(se.Status).JSON(dto.NewODataError(string(se.Kind), se.Message))
}
