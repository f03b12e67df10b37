// Package docs holds the OpenAPI description served by the Swagger UI.
// Regenerate with `swag init -g cmd/argmapd/docs.go -o internal/httpapi/docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "argmap maintainers"},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Slot and memory status",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}}
            }
        },
        "/device": {
            "get": {
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Device mode and runtime versions",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.DeviceResponse"}}}
            }
        },
        "/memory": {
            "get": {
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Accelerator memory",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.MemoryResponse"}}}
            }
        },
        "/models/embedding": {
            "delete": {
                "tags": ["models"],
                "summary": "Evict the embedding model",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/models/{slot}": {
            "post": {
                "description": "Constructs the model named by the environment on first call; later calls return the cached slot.",
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Load a model slot",
                "parameters": [{"type": "string", "description": "language or embedding", "name": "slot", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SlotStatus"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "507": {"description": "Insufficient Storage", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Required: HuggingFace Model ID using MODEL_ID environment variable"},
                "code": {"type": "integer", "example": 503}
            }
        },
        "types.SlotStatus": {
            "type": "object",
            "properties": {
                "slot": {"type": "string", "example": "language"},
                "state": {"type": "string", "example": "loaded"},
                "model_id": {"type": "string"},
                "revision": {"type": "string", "example": "main"},
                "device": {"type": "string", "example": "cuda"},
                "loaded_at_unix": {"type": "integer"},
                "load_ms": {"type": "integer"},
                "last_error": {"type": "string"}
            }
        },
        "types.MemoryResponse": {
            "type": "object",
            "properties": {
                "device": {"type": "string", "example": "cuda"},
                "free_bytes": {"type": "integer"},
                "allocated_bytes": {"type": "integer"},
                "total_bytes": {"type": "integer"},
                "free_gb": {"type": "number"},
                "allocated_gb": {"type": "number"},
                "total_gb": {"type": "number"}
            }
        },
        "types.DeviceResponse": {
            "type": "object",
            "properties": {
                "device": {"type": "string", "example": "cuda"},
                "device_count": {"type": "integer", "example": 1},
                "versions": {"type": "string"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "slots": {"type": "array", "items": {"$ref": "#/definitions/types.SlotStatus"}},
                "memory": {"$ref": "#/definitions/types.MemoryResponse"},
                "uptime_seconds": {"type": "integer"},
                "server_time_unix": {"type": "integer"},
                "loads_total": {"type": "integer"},
                "unloads_total": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "argmap API",
	Description:      "Control surface for the argmap model registry.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
