// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with `swag init -g cmd/api/main.go`.
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
        "/health": {"get": {"tags": ["health"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Log in", "responses": {"200": {"description": "Login successful"}, "400": {"description": "Invalid request data"}}}},
        "/auth/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Log out", "responses": {"200": {"description": "Logged out"}}}},
        "/auth/user": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Get current user", "responses": {"200": {"description": "Caller profile"}}}},
        "/equipment": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["equipment"], "summary": "List equipment", "responses": {"200": {"description": "Active equipment"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["equipment"], "summary": "Create equipment", "responses": {"201": {"description": "Equipment created"}, "403": {"description": "Forbidden"}}}
        },
        "/equipment/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["equipment"], "summary": "Get equipment by ID", "responses": {"200": {"description": "Equipment"}, "404": {"description": "Equipment not found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["equipment"], "summary": "Update equipment", "responses": {"200": {"description": "Equipment updated"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["equipment"], "summary": "Retire equipment", "responses": {"204": {"description": "Equipment retired"}}}
        },
        "/equipment/{id}/status": {"patch": {"security": [{"BearerAuth": []}], "tags": ["equipment"], "summary": "Set equipment status", "responses": {"200": {"description": "Equipment updated"}}}},
        "/equipment/{id}/usage-logs": {"get": {"security": [{"BearerAuth": []}], "tags": ["usage-logs"], "summary": "List usage history", "responses": {"200": {"description": "Usage logs"}}}},
        "/equipment/{id}/maintenance": {"get": {"security": [{"BearerAuth": []}], "tags": ["maintenance"], "summary": "List maintenance history", "responses": {"200": {"description": "Maintenance records"}}}},
        "/reservations": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "List reservations", "responses": {"200": {"description": "Reservations"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "Submit reservation", "responses": {"201": {"description": "Reservation submitted"}, "400": {"description": "Invalid request data"}}}
        },
        "/reservations/pending": {"get": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "List pending reservations", "responses": {"200": {"description": "Pending reservations"}, "403": {"description": "Forbidden"}}}},
        "/reservations/{id}/approve": {"patch": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "Decide reservation", "responses": {"200": {"description": "Reservation decided"}, "403": {"description": "Forbidden"}}}},
        "/usage-logs": {"post": {"security": [{"BearerAuth": []}], "tags": ["usage-logs"], "summary": "Record usage", "responses": {"201": {"description": "Usage recorded"}}}},
        "/usage-logs/{id}/checkin": {"patch": {"security": [{"BearerAuth": []}], "tags": ["usage-logs"], "summary": "Check in", "responses": {"200": {"description": "Usage log closed"}, "409": {"description": "Already checked in"}}}},
        "/maintenance": {"post": {"security": [{"BearerAuth": []}], "tags": ["maintenance"], "summary": "Log maintenance", "responses": {"201": {"description": "Maintenance logged"}, "403": {"description": "Forbidden"}}}},
        "/training-records": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["training"], "summary": "List my training records", "responses": {"200": {"description": "Training records"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["training"], "summary": "Certify training", "responses": {"201": {"description": "Training recorded"}, "403": {"description": "Forbidden"}}}
        },
        "/notifications": {"get": {"security": [{"BearerAuth": []}], "tags": ["notifications"], "summary": "List notifications", "responses": {"200": {"description": "Notifications"}}}},
        "/notifications/{id}/read": {"patch": {"security": [{"BearerAuth": []}], "tags": ["notifications"], "summary": "Mark notification read", "responses": {"200": {"description": "Notification updated"}, "404": {"description": "Notification not found"}}}},
        "/analytics/dashboard": {"get": {"security": [{"BearerAuth": []}], "tags": ["analytics"], "summary": "Dashboard", "responses": {"200": {"description": "Dashboard"}}}},
        "/analytics/equipment-utilization": {"get": {"security": [{"BearerAuth": []}], "tags": ["analytics"], "summary": "Equipment utilization", "responses": {"200": {"description": "Utilization"}}}},
        "/analytics/reservations": {"get": {"security": [{"BearerAuth": []}], "tags": ["analytics"], "summary": "Reservation stats", "responses": {"200": {"description": "Reservation stats"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token for authorization",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Tinker Lab API",
	Description:      "Equipment reservation and inventory tracking for the Tinker Lab",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
