// Package docs registers the PlantMatch OpenAPI document with swag for the
// /swagger/ UI. The template is kept in step with the @Router annotations
// on the handlers by hand; `go generate ./cmd/plantmatch` rebuilds it with
// the swag CLI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Reports liveness and build information.",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/plants": {
            "get": {
                "description": "Returns the normalized plant catalog in source order.",
                "produces": ["application/json"],
                "tags": ["plants"],
                "summary": "List plants",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.Plant"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/plants/options": {
            "get": {
                "description": "Distinct, sorted values for each filter field, each list starting with \"-\".",
                "produces": ["application/json"],
                "tags": ["plants"],
                "summary": "Filter options",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.FilterOptions"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/plants/export": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["plants"],
                "summary": "Export plants",
                "parameters": [
                    {"type": "string", "description": "Comma-separated plant IDs", "name": "ids", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/plants/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plants"],
                "summary": "Get plant",
                "parameters": [
                    {"type": "integer", "description": "Plant ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.Plant"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/recommendations": {
            "get": {
                "description": "Scores every plant against the filter, ranks best first and groups by match band when a filter is active. \"-\" means no preference.",
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "Recommend plants",
                "parameters": [
                    {"type": "string", "description": "Light condition", "name": "light", "in": "query"},
                    {"type": "string", "description": "Climate", "name": "climate", "in": "query"},
                    {"type": "string", "description": "Aesthetic use", "name": "aesthetic", "in": "query"},
                    {"type": "string", "description": "Watering preference", "name": "watering", "in": "query"},
                    {"type": "string", "description": "MBTI type", "name": "mbti", "in": "query"},
                    {"type": "string", "description": "Search text", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.Result"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/recommendations/bands": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "Match bands",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/recommend.BandMeta"}}}
                }
            }
        },
        "/assistant/context": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["assistant"],
                "summary": "Assistant context",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/garden": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["garden"],
                "summary": "List garden",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/services.GardenEntry"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["garden"],
                "summary": "Add plant to garden",
                "parameters": [
                    {"description": "Plant to add", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/garden.AddRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/services.GardenEntry"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/garden/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["garden"],
                "summary": "Garden summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.GardenSummary"}}
                }
            }
        },
        "/garden/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["garden"],
                "summary": "Plant history",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/services.HistoryEntry"}}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["garden"],
                "summary": "Clear plant history",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/garden.ClearResponse"}}
                }
            }
        },
        "/garden/{id}/water": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["garden"],
                "summary": "Water plant",
                "parameters": [
                    {"type": "string", "description": "Garden entry ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.GardenEntry"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/garden/{id}/stop": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["garden"],
                "summary": "Stop growing plant",
                "parameters": [
                    {"type": "string", "description": "Garden entry ID", "name": "id", "in": "path", "required": true},
                    {"description": "Stop reason", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/garden.StopRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.HistoryEntry"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/wishlist": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["wishlist"],
                "summary": "List wishlist",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/wishlist.Item"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wishlist"],
                "summary": "Add to wishlist",
                "parameters": [
                    {"description": "Plant to save", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/wishlist.AddRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/services.WishlistItem"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/wishlist/count": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["wishlist"],
                "summary": "Wishlist count",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/wishlist.CountResponse"}}
                }
            }
        },
        "/wishlist/remove": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wishlist"],
                "summary": "Bulk remove from wishlist",
                "parameters": [
                    {"description": "Plants to remove", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/wishlist.RemoveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/wishlist.RemoveResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/wishlist/{plant_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["wishlist"],
                "summary": "Wishlist membership",
                "parameters": [
                    {"type": "integer", "description": "Plant ID", "name": "plant_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/wishlist.ContainsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["wishlist"],
                "summary": "Remove from wishlist",
                "parameters": [
                    {"type": "integer", "description": "Plant ID", "name": "plant_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        }
    },
    "definitions": {
        "catalog.FilterOptions": {
            "type": "object",
            "properties": {
                "aesthetic": {"type": "array", "items": {"type": "string"}},
                "climate": {"type": "array", "items": {"type": "string"}},
                "light": {"type": "array", "items": {"type": "string"}},
                "mbti": {"type": "array", "items": {"type": "string"}},
                "watering": {"type": "array", "items": {"type": "string"}}
            }
        },
        "catalog.Plant": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "latin": {"type": "string"},
                "family": {"type": "string"},
                "common": {"type": "array", "items": {"type": "string"}},
                "category": {"type": "string"},
                "origin": {"type": "string"},
                "climate": {"type": "string"},
                "ideallight": {"type": "string"},
                "toleratedlight": {"type": "string"},
                "use": {"type": "array", "items": {"type": "string"}},
                "watering": {"type": "string"},
                "mbti": {"type": "string"},
                "image": {"type": "string"}
            }
        },
        "catalog.Result": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "groups": {"type": "object", "additionalProperties": true},
                "has_active_filter": {"type": "boolean"},
                "plants": {"type": "array", "items": {"$ref": "#/definitions/catalog.Plant"}}
            }
        },
        "garden.AddRequest": {
            "type": "object",
            "required": ["plant_id"],
            "properties": {
                "plant_id": {"type": "integer"}
            }
        },
        "garden.ClearResponse": {
            "type": "object",
            "properties": {
                "deleted": {"type": "integer"}
            }
        },
        "garden.StopRequest": {
            "type": "object",
            "required": ["reason"],
            "properties": {
                "reason": {"type": "string", "enum": ["died", "not_suitable"]}
            }
        },
        "recommend.BandMeta": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "label": {"type": "string"},
                "emoji": {"type": "string"},
                "color": {"type": "string"},
                "description": {"type": "string"},
                "range": {"type": "string"},
                "min": {"type": "number"},
                "max": {"type": "number"},
                "min_inclusive": {"type": "boolean"},
                "max_inclusive": {"type": "boolean"}
            }
        },
        "server.Problem": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "status": {"type": "integer"},
                "title": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "services.GardenEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "plant_id": {"type": "integer"},
                "plant_name": {"type": "string"},
                "image": {"type": "string"},
                "planted_at": {"type": "string"},
                "last_watered_at": {"type": "string"},
                "watering_history": {"type": "array", "items": {"type": "string"}}
            }
        },
        "services.GardenSummary": {
            "type": "object",
            "properties": {
                "overdue": {"type": "integer"},
                "total": {"type": "integer"},
                "unwatered_today": {"type": "integer"}
            }
        },
        "services.HistoryEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "plant_id": {"type": "integer"},
                "plant_name": {"type": "string"},
                "image": {"type": "string"},
                "planted_at": {"type": "string"},
                "stopped_at": {"type": "string"},
                "reason": {"type": "string"},
                "total_watering_days": {"type": "integer"},
                "watering_history": {"type": "array", "items": {"type": "string"}}
            }
        },
        "services.WishlistItem": {
            "type": "object",
            "properties": {
                "added_at": {"type": "string"},
                "plant_id": {"type": "integer"},
                "user_id": {"type": "string"}
            }
        },
        "wishlist.AddRequest": {
            "type": "object",
            "required": ["plant_id"],
            "properties": {
                "plant_id": {"type": "integer"}
            }
        },
        "wishlist.ContainsResponse": {
            "type": "object",
            "properties": {
                "in_wishlist": {"type": "boolean"},
                "plant_id": {"type": "integer"}
            }
        },
        "wishlist.CountResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"}
            }
        },
        "wishlist.Item": {
            "type": "object",
            "properties": {
                "added_at": {"type": "string"},
                "plant": {"$ref": "#/definitions/catalog.Plant"},
                "plant_id": {"type": "integer"},
                "user_id": {"type": "string"}
            }
        },
        "wishlist.RemoveRequest": {
            "type": "object",
            "required": ["plant_ids"],
            "properties": {
                "plant_ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "wishlist.RemoveResponse": {
            "type": "object",
            "properties": {
                "removed": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT bearer token. Format: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "PlantMatch API",
	Description:      "Houseplant catalog and preference-based plant recommendations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
