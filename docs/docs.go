// Package docs holds the generated swagger document for cmd/worldapi.
//
// A real build regenerates this file with `swag init`; it is checked in
// here, by hand, in the form swag would produce, so the module builds
// without a code-generation step.
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
        "/info": {
            "get": {
                "description": "Returns the world's root metadata and chunk count.",
                "produces": ["application/json"],
                "summary": "World info",
                "responses": {
                    "200": { "description": "OK" }
                }
            }
        },
        "/chunks": {
            "get": {
                "description": "Lists every chunk coordinate present in the world.",
                "produces": ["application/json"],
                "summary": "List chunks",
                "responses": {
                    "200": { "description": "OK" }
                }
            }
        },
        "/chunks/{cx}/{cz}": {
            "get": {
                "description": "Returns a single chunk's decoded summary.",
                "produces": ["application/json"],
                "summary": "Get chunk",
                "parameters": [
                    { "type": "integer", "name": "cx", "in": "path", "required": true },
                    { "type": "integer", "name": "cz", "in": "path", "required": true }
                ],
                "responses": {
                    "200": { "description": "OK" },
                    "404": { "description": "chunk not present" }
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Liveness probe. Served at /healthz on the server root, outside the /api/v1 base path.",
                "produces": ["application/json"],
                "summary": "Health check",
                "responses": {
                    "200": { "description": "OK" }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported swagger.json information, populated by
// cmd/worldapi at startup with the runtime host/addr before being served.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Pocket World API",
	Description:      "Read-only introspection over a pocket-edition world directory.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
