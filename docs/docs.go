// Package docs holds the generated swagger spec that swaggo/swag's CLI
// would normally emit via `swag init` from annotations on the handler
// package. No docs/ directory was ever generated for this module, so this
// is hand-written in the same shape `swag init` produces: a registered
// swag.Spec plus the raw swagger 2.0 JSON template it serves.
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
        "/transactions": {
            "get": {
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "name": "user_id", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Create a transaction",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/agent/chat": {
            "post": {
                "summary": "Run the ReAct agent loop",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/analytics/health-score/{user_id}": {
            "get": {
                "summary": "Compute the financial health score",
                "parameters": [
                    {"type": "string", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:18080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Wealthin Agent Backend API",
	Description:      "Ledger, planning, extraction and agent endpoints for the personal-finance agent backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
