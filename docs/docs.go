// Package docs contiene la especificación Swagger servida en /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "paths": {
        "/odata/v4/stock/": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "stock"
                ],
                "summary": "Documento de servicio OData",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/odata/v4/stock/$metadata": {
            "get": {
                "produces": [
                    "application/xml"
                ],
                "tags": [
                    "stock"
                ],
                "summary": "Documento CSDL ($metadata)",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/odata/v4/stock/WarehousePhysicalStock": {
            "get": {
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "description": "Lectura filtrada por los tipos de stock autorizados del usuario.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "stock"
                ],
                "summary": "Stock físico por producto en EWM",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Expresión OData (Product, Batch, HandlingUnitNumber, EWMStorageBin, EWMStockType con eq)",
                        "name": "$filter",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Tamaño de página (por defecto 100)",
                        "name": "$top",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Desplazamiento",
                        "name": "$skip",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.StockCollectionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ODataErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ODataErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ODataErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/dto.ODataErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/dto.ODataErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.ODataErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "$ref": "#/definitions/dto.ErrorResponse"
                }
            }
        },
        "dto.StockCollectionResponse": {
            "type": "object",
            "properties": {
                "@odata.context": {
                    "type": "string"
                },
                "@odata.count": {
                    "type": "integer"
                },
                "value": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.StockResponse"
                    }
                }
            }
        },
        "dto.StockResponse": {
            "type": "object",
            "properties": {
                "ID": {
                    "type": "string"
                },
                "Product": {
                    "type": "string"
                },
                "EWMWarehouse": {
                    "type": "string"
                },
                "EWMStockType": {
                    "type": "string"
                },
                "Batch": {
                    "type": "string"
                },
                "HandlingUnitNumber": {
                    "type": "string"
                },
                "EWMStorageBin": {
                    "type": "string"
                },
                "EWMStockQuantityInBaseUnit": {
                    "type": "number"
                },
                "EWMStockQuantityBaseUnit": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "host": "{{.Host}}",
    "schemes": {{ marshal .Schemes }}
}`

// SwaggerInfo información de la API, modificable en tiempo de ejecución.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "EWM Stock API",
	Description:      "Lectura OData v4 del stock físico de SAP EWM filtrada por los tipos de stock autorizados del usuario.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
