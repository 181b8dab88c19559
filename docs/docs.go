// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [
        {
            "BearerAuth": []
        }
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Emite tokens de acceso y refresco",
                "security": [],
                "responses": {
                    "200": {"description": "Tokens emitidos"},
                    "401": {"description": "Usuario o contraseña incorrectos"},
                    "429": {"description": "Demasiados intentos"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Renueva los tokens con un token de refresco",
                "security": [],
                "responses": {
                    "200": {"description": "Tokens emitidos"},
                    "401": {"description": "Token inválido"}
                }
            }
        },
        "/clientes": {
            "get": {
                "tags": ["clientes"],
                "summary": "Lista clientes; con q busca por nombre o CUIT (máximo 20)",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "Clientes ordenados por nombre"}}
            },
            "post": {
                "tags": ["clientes"],
                "summary": "Crea un cliente",
                "responses": {
                    "201": {"description": "Cliente creado"},
                    "422": {"description": "Error de validación"}
                }
            }
        },
        "/clientes/{id}": {
            "get": {
                "tags": ["clientes"],
                "summary": "Obtiene un cliente",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"200": {"description": "Cliente"}, "404": {"description": "No encontrado"}}
            },
            "put": {
                "tags": ["clientes"],
                "summary": "Actualiza parcialmente un cliente",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"200": {"description": "Cliente actualizado"}, "404": {"description": "No encontrado"}, "422": {"description": "Error de validación"}}
            },
            "delete": {
                "tags": ["clientes"],
                "summary": "Elimina un cliente (administrador)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"204": {"description": "Eliminado"}, "403": {"description": "Rol insuficiente"}, "404": {"description": "No encontrado"}}
            }
        },
        "/proveedores": {
            "get": {
                "tags": ["proveedores"],
                "summary": "Lista proveedores; con q busca por nombre o CUIT (máximo 20)",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "Proveedores ordenados por nombre"}}
            },
            "post": {
                "tags": ["proveedores"],
                "summary": "Crea un proveedor",
                "responses": {"201": {"description": "Proveedor creado"}, "422": {"description": "Error de validación"}}
            }
        },
        "/proveedores/{id}": {
            "get": {
                "tags": ["proveedores"],
                "summary": "Obtiene un proveedor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"200": {"description": "Proveedor"}, "404": {"description": "No encontrado"}}
            },
            "put": {
                "tags": ["proveedores"],
                "summary": "Actualiza parcialmente un proveedor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"200": {"description": "Proveedor actualizado"}, "404": {"description": "No encontrado"}, "422": {"description": "Error de validación"}}
            },
            "delete": {
                "tags": ["proveedores"],
                "summary": "Elimina un proveedor (administrador)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"204": {"description": "Eliminado"}, "403": {"description": "Rol insuficiente"}, "404": {"description": "No encontrado"}}
            }
        },
        "/facturas": {
            "get": {
                "tags": ["facturas"],
                "summary": "Lista facturas por tipo y rango de fechas",
                "parameters": [
                    {"name": "tipo", "in": "query", "type": "string", "enum": ["A", "B", "C", "sin_facturar"]},
                    {"name": "desde", "in": "query", "type": "string", "format": "date"},
                    {"name": "hasta", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {"200": {"description": "Facturas"}}
            },
            "post": {
                "tags": ["facturas"],
                "summary": "Crea una factura, reconciliando el cliente y calculando totales",
                "responses": {"201": {"description": "Factura creada"}, "422": {"description": "Error de validación"}}
            }
        },
        "/facturas/validar": {
            "post": {
                "tags": ["facturas"],
                "summary": "Valida una factura sin guardarla",
                "responses": {"200": {"description": "Resultado de la validación"}}
            }
        },
        "/facturas/{id}": {
            "get": {
                "tags": ["facturas"],
                "summary": "Obtiene una factura",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"200": {"description": "Factura"}, "404": {"description": "No encontrada"}}
            },
            "put": {
                "tags": ["facturas"],
                "summary": "Actualiza una factura; el cliente congelado no cambia",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"200": {"description": "Factura actualizada"}, "404": {"description": "No encontrada"}, "422": {"description": "Error de validación"}}
            },
            "delete": {
                "tags": ["facturas"],
                "summary": "Elimina una factura (administrador)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"204": {"description": "Eliminada"}, "403": {"description": "Rol insuficiente"}, "404": {"description": "No encontrada"}}
            }
        },
        "/facturas/{id}/pdf": {
            "get": {
                "tags": ["facturas"],
                "summary": "Descarga la factura en PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"200": {"description": "PDF"}, "404": {"description": "No encontrada"}}
            }
        },
        "/facturas/{id}/enviar": {
            "post": {
                "tags": ["facturas"],
                "summary": "Encola el envío de la factura por email",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"202": {"description": "Envío encolado"}, "404": {"description": "No encontrada"}, "503": {"description": "Envíos deshabilitados"}}
            }
        },
        "/ordenes-compra": {
            "get": {
                "tags": ["ordenes-compra"],
                "summary": "Lista órdenes de compra por estado y rango de fechas",
                "parameters": [
                    {"name": "estado", "in": "query", "type": "string", "enum": ["pendiente", "en_proceso", "completada", "cancelada"]},
                    {"name": "desde", "in": "query", "type": "string", "format": "date"},
                    {"name": "hasta", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {"200": {"description": "Órdenes de compra"}}
            },
            "post": {
                "tags": ["ordenes-compra"],
                "summary": "Crea una orden de compra, reconciliando el proveedor",
                "responses": {"201": {"description": "Orden creada"}, "422": {"description": "Error de validación"}}
            }
        },
        "/ordenes-compra/{id}": {
            "get": {
                "tags": ["ordenes-compra"],
                "summary": "Obtiene una orden de compra",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"200": {"description": "Orden de compra"}, "404": {"description": "No encontrada"}}
            },
            "put": {
                "tags": ["ordenes-compra"],
                "summary": "Actualiza una orden de compra",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"200": {"description": "Orden actualizada"}, "404": {"description": "No encontrada"}, "422": {"description": "Error de validación"}}
            },
            "delete": {
                "tags": ["ordenes-compra"],
                "summary": "Elimina una orden de compra (administrador)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"204": {"description": "Eliminada"}, "403": {"description": "Rol insuficiente"}, "404": {"description": "No encontrada"}}
            }
        },
        "/ordenes-compra/{id}/pdf": {
            "get": {
                "tags": ["ordenes-compra"],
                "summary": "Descarga la orden de compra en PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"200": {"description": "PDF"}, "404": {"description": "No encontrada"}}
            }
        },
        "/ordenes-compra/{id}/enviar": {
            "post": {
                "tags": ["ordenes-compra"],
                "summary": "Encola el envío de la orden de compra por email",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {"202": {"description": "Envío encolado"}, "404": {"description": "No encontrada"}, "503": {"description": "Envíos deshabilitados"}}
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Resumen de ingresos, gastos y órdenes; cada métrica informa su propio error",
                "responses": {"200": {"description": "Resumen"}}
            }
        },
        "/totales": {
            "post": {
                "tags": ["dashboard"],
                "summary": "Calcula subtotal, IVA y total de una lista de ítems",
                "responses": {"200": {"description": "Totales"}, "422": {"description": "Error de validación"}}
            }
        }
    }
}`

// SwaggerInfo holds the values substituted into docTemplate.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Facturación API",
	Description:      "Clientes, proveedores, facturas, órdenes de compra y tablero.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
