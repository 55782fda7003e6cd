// Package docs registers the OpenAPI document served at /swagger/*.
// Regenerate with: swag init -g cmd/api/main.go
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Create an account", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Sign in with email and password", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Revoke the bearer token", "responses": {"204": {"description": "No Content"}}}
        },
        "/applications": {
            "get": {"tags": ["applications"], "security": [{"BearerAuth": []}], "summary": "List applications", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "post": {"tags": ["applications"], "security": [{"BearerAuth": []}], "summary": "Create an application", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/applications/tags": {
            "get": {"tags": ["applications"], "security": [{"BearerAuth": []}], "summary": "Sorted union of tags", "responses": {"200": {"description": "OK"}}}
        },
        "/applications/bulk/status": {
            "post": {"tags": ["applications"], "security": [{"BearerAuth": []}], "summary": "Change the status of many applications", "responses": {"200": {"description": "OK"}, "207": {"description": "Multi-Status"}}}
        },
        "/applications/bulk/delete": {
            "post": {"tags": ["applications"], "security": [{"BearerAuth": []}], "summary": "Soft-delete many applications", "responses": {"200": {"description": "OK"}, "207": {"description": "Multi-Status"}}}
        },
        "/applications/{id}": {
            "get": {"tags": ["applications"], "security": [{"BearerAuth": []}], "summary": "Get one application", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["applications"], "security": [{"BearerAuth": []}], "summary": "Partially update an application", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["applications"], "security": [{"BearerAuth": []}], "summary": "Soft-delete an application", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/applications/{id}/status": {
            "put": {"tags": ["applications"], "security": [{"BearerAuth": []}], "summary": "Change the status of an application", "responses": {"200": {"description": "OK"}}}
        },
        "/applications/{id}/generate": {
            "post": {"tags": ["applications"], "security": [{"BearerAuth": []}], "summary": "Generate a tailored resume and cover letter", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/applications/{id}/export": {
            "get": {"tags": ["applications"], "security": [{"BearerAuth": []}], "summary": "Export one application as PDF", "responses": {"200": {"description": "OK"}}}
        },
        "/analytics/summary": {
            "get": {"tags": ["analytics"], "security": [{"BearerAuth": []}], "summary": "Dashboard statistics for a window", "responses": {"200": {"description": "OK"}}}
        },
        "/analytics/trend": {
            "get": {"tags": ["analytics"], "security": [{"BearerAuth": []}], "summary": "Daily application counts for a window", "responses": {"200": {"description": "OK"}}}
        },
        "/analytics/export": {
            "get": {"tags": ["analytics"], "security": [{"BearerAuth": []}], "summary": "Export statistics and the filtered list", "responses": {"200": {"description": "OK"}}}
        },
        "/backup": {
            "post": {"tags": ["backup"], "security": [{"BearerAuth": []}], "summary": "Snapshot every record and the preferences", "responses": {"201": {"description": "Created"}}}
        },
        "/restore": {
            "post": {"tags": ["backup"], "security": [{"BearerAuth": []}], "summary": "Re-apply the last backup", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/preferences": {
            "get": {"tags": ["backup"], "security": [{"BearerAuth": []}], "summary": "Saved view preferences", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["backup"], "security": [{"BearerAuth": []}], "summary": "Replace view preferences", "responses": {"200": {"description": "OK"}}}
        },
        "/brand": {
            "post": {"tags": ["brand"], "security": [{"BearerAuth": []}], "summary": "Generate a brand name, slogan and logo", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Job Tracker API",
	Description:      "Job application tracking with dashboards, exports and AI-written documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
