package http

import (
	"sync"

	"github.com/beevik/etree"
)

// Nombres del modelo expuesto.
const (
	ServiceNamespace = "StockService"
	EntitySetName    = "WarehousePhysicalStock"
)

type edmProperty struct {
	name     string
	typ      string
	nullable bool
}

var stockProperties = []edmProperty{
	{"ID", "Edm.String", false},
	{"Product", "Edm.String", true},
	{"EWMWarehouse", "Edm.String", true},
	{"EWMStockType", "Edm.String", true},
	{"Batch", "Edm.String", true},
	{"HandlingUnitNumber", "Edm.String", true},
	{"EWMStorageBin", "Edm.String", true},
	{"EWMStockQuantityInBaseUnit", "Edm.Double", true},
	{"EWMStockQuantityBaseUnit", "Edm.String", true},
}

var (
	metadataOnce sync.Once
	metadataXML  []byte
	metadataErr  error
)

// MetadataDocument devuelve el CSDL (EDMX 4.0) del servicio. Se construye una vez.
func MetadataDocument() ([]byte, error) {
	metadataOnce.Do(func() {
		metadataXML, metadataErr = buildMetadata().WriteToBytes()
	})
	return metadataXML, metadataErr
}

func buildMetadata() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	edmx := doc.CreateElement("edmx:Edmx")
	edmx.CreateAttr("xmlns:edmx", "http://docs.oasis-open.org/odata/ns/edmx")
	edmx.CreateAttr("Version", "4.0")

	schema := edmx.CreateElement("edmx:DataServices").CreateElement("Schema")
	schema.CreateAttr("xmlns", "http://docs.oasis-open.org/odata/ns/edm")
	schema.CreateAttr("Namespace", ServiceNamespace)

	container := schema.CreateElement("EntityContainer")
	container.CreateAttr("Name", "EntityContainer")
	set := container.CreateElement("EntitySet")
	set.CreateAttr("Name", EntitySetName)
	set.CreateAttr("EntityType", ServiceNamespace+"."+EntitySetName)

	entityType := schema.CreateElement("EntityType")
	entityType.CreateAttr("Name", EntitySetName)
	entityType.CreateElement("Key").CreateElement("PropertyRef").CreateAttr("Name", "ID")
	for _, p := range stockProperties {
		prop := entityType.CreateElement("Property")
		prop.CreateAttr("Name", p.name)
		prop.CreateAttr("Type", p.typ)
		if !p.nullable {
			prop.CreateAttr("Nullable", "false")
		}
	}

	doc.Indent(2)
	return doc
}
