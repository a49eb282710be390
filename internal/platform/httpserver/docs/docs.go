// Package docs registers the OpenAPI document served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/customers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["customer-service"],
                "summary": "List customers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/customer.ListCustomersResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "description": "Creates a customer. A blank customer_id is replaced by a generated UUID.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["customer-service"],
                "summary": "Create a customer",
                "parameters": [
                    {"description": "Customer payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/customer.CreateCustomerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/customer.CustomerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/v1/customers/{customer_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["customer-service"],
                "summary": "Get a customer",
                "parameters": [
                    {"type": "string", "description": "Customer id", "name": "customer_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/customer.CustomerResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/v1/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["order-service"],
                "summary": "List orders",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.ListOrdersResponse"}}
                }
            },
            "post": {
                "description": "Creates an order for an existing customer and copies the customer's full name onto it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["order-service"],
                "summary": "Create an order",
                "parameters": [
                    {"description": "Order payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/order.OrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "412": {"description": "Precondition Failed", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/v1/orders/{order_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["order-service"],
                "summary": "Get an order",
                "parameters": [
                    {"type": "string", "description": "Order id", "name": "order_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.OrderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/v1/entities": {
            "get": {
                "produces": ["application/json"],
                "tags": ["entity-service"],
                "summary": "List generic entities",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.ListEntitiesResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["entity-service"],
                "summary": "Create a generic entity",
                "parameters": [
                    {"description": "Entity payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/entity.CreateEntityRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entity.EntityResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/v1/entities/{entity_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["entity-service"],
                "summary": "Get a generic entity",
                "parameters": [
                    {"type": "string", "description": "Entity id", "name": "entity_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.EntityResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/v1/activity": {
            "get": {
                "description": "Returns one entry per consumed creation event, in arrival order.",
                "produces": ["application/json"],
                "tags": ["activity-service"],
                "summary": "List recorded activity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/activity.ListActivityResponse"}}
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "customer.CreateCustomerRequest": {
            "type": "object",
            "properties": {
                "customer_id": {"type": "string"},
                "full_name": {"type": "string"}
            }
        },
        "customer.Customer": {
            "type": "object",
            "properties": {
                "customer_id": {"type": "string"},
                "full_name": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "customer.CustomerResponse": {
            "type": "object",
            "properties": {
                "customer": {"$ref": "#/definitions/customer.Customer"}
            }
        },
        "customer.ListCustomersResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/customer.Customer"}}
            }
        },
        "order.CreateOrderRequest": {
            "type": "object",
            "properties": {
                "order_id": {"type": "string"},
                "customer_id": {"type": "string"},
                "total_amount": {"type": "number"}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "order_id": {"type": "string"},
                "customer_id": {"type": "string"},
                "customer_full_name": {"type": "string"},
                "total_amount": {"type": "number"},
                "created_at": {"type": "string"}
            }
        },
        "order.OrderResponse": {
            "type": "object",
            "properties": {
                "order": {"$ref": "#/definitions/order.Order"}
            }
        },
        "order.ListOrdersResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.Order"}}
            }
        },
        "entity.CreateEntityRequest": {
            "type": "object",
            "properties": {
                "entity_id": {"type": "string"},
                "name": {"type": "string"},
                "attributes": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "entity.Entity": {
            "type": "object",
            "properties": {
                "entity_id": {"type": "string"},
                "name": {"type": "string"},
                "attributes": {"type": "object", "additionalProperties": {"type": "string"}},
                "created_at": {"type": "string"}
            }
        },
        "entity.EntityResponse": {
            "type": "object",
            "properties": {
                "entity": {"$ref": "#/definitions/entity.Entity"}
            }
        },
        "entity.ListEntitiesResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/entity.Entity"}}
            }
        },
        "activity.Entry": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string"},
                "event_type": {"type": "string"},
                "topic": {"type": "string"},
                "source": {"type": "string"},
                "subject_id": {"type": "string"},
                "route": {"type": "string"},
                "recognized": {"type": "boolean"},
                "occurred_at": {"type": "string"},
                "recorded_at": {"type": "string"}
            }
        },
        "activity.ListActivityResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/activity.Entry"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "orderflow API",
	Description:      "Customers, orders and generic entities with created-event propagation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
