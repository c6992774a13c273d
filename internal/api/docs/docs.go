// Package docs registers the OpenAPI description of the console with swag so
// echo-swagger can serve it under /swagger/.
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
        "/login": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "303": {"description": "See Other"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "429": {"description": "Too Many Requests"},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"204": {"description": "No Content"}, "303": {"description": "See Other"}}
            }
        },
        "/register": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "303": {"description": "See Other"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/api/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}
            }
        },
        "/api/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Get profile",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Update profile",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.profileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/api/theme": {
            "get": {
                "produces": ["application/json"],
                "tags": ["theme"],
                "summary": "Get theme",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["theme"],
                "summary": "Select theme",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.themeRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/api/workers": {
            "get": {"tags": ["workers"], "summary": "List workers", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["workers"], "summary": "Create a worker", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}
        },
        "/api/workers/{id}": {
            "get": {"tags": ["workers"], "summary": "Get a worker", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["workers"], "summary": "Update a worker", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["workers"], "summary": "Delete a worker", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/courses": {
            "get": {"tags": ["courses"], "summary": "List courses", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["courses"], "summary": "Create a course", "responses": {"201": {"description": "Created"}}}
        },
        "/api/courses/{id}": {
            "put": {"tags": ["courses"], "summary": "Update a course", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["courses"], "summary": "Delete a course", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/enrollments": {
            "get": {"tags": ["courses"], "summary": "List course enrollments", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["courses"], "summary": "Enroll a worker in a course", "responses": {"201": {"description": "Created"}}}
        },
        "/api/enrollments/{id}": {
            "delete": {"tags": ["courses"], "summary": "Remove an enrollment", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/requests": {
            "get": {"tags": ["requests"], "summary": "List leave requests", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["requests"], "summary": "File a leave request", "responses": {"201": {"description": "Created"}}}
        },
        "/api/requests/{id}": {
            "put": {"tags": ["requests"], "summary": "Approve or reject a leave request", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}},
            "delete": {"tags": ["requests"], "summary": "Delete a leave request", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/applicants": {
            "get": {"tags": ["applicants"], "summary": "List applicants", "responses": {"200": {"description": "OK"}}},
            "post": {"consumes": ["multipart/form-data"], "tags": ["applicants"], "summary": "Apply for a job", "responses": {"201": {"description": "Created"}}}
        },
        "/api/applicants/{id}": {
            "delete": {"tags": ["applicants"], "summary": "Delete an applicant", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/job-types": {
            "get": {"tags": ["job-types"], "summary": "List job types", "responses": {"200": {"description": "OK"}}}
        },
        "/api/job-types/options": {
            "get": {"tags": ["job-types"], "summary": "Job type enumeration", "responses": {"200": {"description": "OK"}}}
        },
        "/api/users": {
            "get": {"tags": ["users"], "summary": "List user accounts", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["users"], "summary": "Create a user account", "responses": {"201": {"description": "Created"}}}
        },
        "/api/users/{id}": {
            "put": {"tags": ["users"], "summary": "Update a user account", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}},
            "delete": {"tags": ["users"], "summary": "Delete a user account", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["username", "email", "password"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "confirmPassword": {"type": "string"},
                "role": {"type": "string", "enum": ["TRABAJADOR", "ADMIN"]},
                "telefono": {"type": "string"},
                "direccion": {"type": "string"},
                "tipoTrabajoId": {"type": "integer"}
            }
        },
        "handler.profileRequest": {
            "type": "object",
            "required": ["username", "email"],
            "properties": {"username": {"type": "string"}, "email": {"type": "string"}}
        },
        "handler.themeRequest": {
            "type": "object",
            "required": ["theme"],
            "properties": {"theme": {"type": "string", "enum": ["default", "gray", "orange", "teal"]}}
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "user": {"type": "object"},
                "menu": {"type": "array", "items": {"type": "object"}}
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
	Title:            "RRHH Console API",
	Description:      "Backend-for-frontend of the HR administration console.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
