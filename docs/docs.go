// Package docs holds the OpenAPI description served at /swagger/*.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/products": {
            "get": {
                "tags": ["products"],
                "summary": "List products",
                "parameters": [{"type": "string", "in": "query", "name": "q", "description": "Case-insensitive title filter"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Product"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Create listing",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.listingRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "tags": ["products"],
                "summary": "Product detail",
                "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ProductDetail"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Edit listing",
                "parameters": [
                    {"type": "integer", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.listingRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Product"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Delete listing",
                "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/checkout/{product_id}": {
            "post": {
                "tags": ["checkout"],
                "summary": "Create checkout session",
                "parameters": [
                    {"type": "integer", "in": "path", "name": "product_id", "required": true},
                    {"type": "string", "in": "header", "name": "Idempotency-Key"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ports.CheckoutResult"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expires_at": {"type": "string"},
                "onboarding_url": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        },
        "handler.listingRequest": {
            "type": "object",
            "required": ["title", "price", "description"],
            "properties": {
                "title": {"type": "string"},
                "price": {"type": "string"},
                "stock": {"type": "integer"},
                "description": {"type": "string"},
                "image_url": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "payout_account_id": {"type": "string"},
                "role": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "domain.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "owner_id": {"type": "integer"},
                "title": {"type": "string"},
                "price": {"type": "string"},
                "stock": {"type": "integer"},
                "description": {"type": "string"},
                "image_url": {"type": "string"},
                "date_posted": {"type": "string"}
            }
        },
        "domain.Review": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "product_id": {"type": "integer"},
                "author_id": {"type": "integer"},
                "author_name": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "domain.ProductDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "price": {"type": "string"},
                "seller_name": {"type": "string"},
                "reviews": {"type": "array", "items": {"$ref": "#/definitions/domain.Review"}}
            }
        },
        "ports.CheckoutResult": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "url": {"type": "string"},
                "status": {"type": "string"},
                "replayed": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Marketplace API",
	Description:      "Peer-to-peer marketplace: listings, reviews, messaging and hosted checkout with seller payouts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
