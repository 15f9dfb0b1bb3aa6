// Package copilot registers the Swagger document for the Copilot API.
// Regenerate with: swag init -g internal/copilot/http/router.go -o api/copilot
package copilot

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/copilot"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/.well-known/jwks.json": {
            "get": {
                "description": "Returns the Ed25519 public keys that verify access tokens.",
                "produces": ["application/json"],
                "tags": ["well-known"],
                "summary": "Get JWKS",
                "responses": {
                    "200": {
                        "description": "The JSON Web Key Set",
                        "schema": {"$ref": "#/definitions/copilotsdk.JWKSResponse"}
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Checks the email and password against the registered accounts and returns the public account view with a short-lived access token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/copilotsdk.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "success, user, access_token", "schema": {"$ref": "#/definitions/copilotsdk.AuthResponse"}},
                    "400": {"description": "success=false, message", "schema": {"$ref": "#/definitions/copilotsdk.AuthResponse"}},
                    "401": {"description": "success=false, message", "schema": {"$ref": "#/definitions/copilotsdk.AuthResponse"}},
                    "429": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}},
                    "500": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "description": "Registers a new account. Emails are unique and compared case-sensitively.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Sign up",
                "parameters": [
                    {
                        "description": "New account",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/copilotsdk.SignupRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "success, user", "schema": {"$ref": "#/definitions/copilotsdk.AuthResponse"}},
                    "400": {"description": "success=false, message", "schema": {"$ref": "#/definitions/copilotsdk.AuthResponse"}},
                    "429": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}},
                    "500": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}}
                }
            }
        },
        "/clients": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns every client in insertion order, each with its services.",
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "List clients",
                "responses": {
                    "200": {"description": "Clients", "schema": {"type": "array", "items": {"$ref": "#/definitions/copilotsdk.Client"}}},
                    "401": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}},
                    "500": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Adds a client with no services.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "Create client",
                "parameters": [
                    {
                        "description": "Client name and GSTIN",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/copilotsdk.CreateClientRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "The new client", "schema": {"$ref": "#/definitions/copilotsdk.Client"}},
                    "400": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}},
                    "401": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}},
                    "500": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}}
                }
            }
        },
        "/clients/{clientId}/services": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Services"],
                "summary": "List services of a client",
                "parameters": [
                    {"type": "integer", "description": "Client id", "name": "clientId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Services, possibly empty", "schema": {"type": "array", "items": {"$ref": "#/definitions/copilotsdk.Service"}}},
                    "401": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}},
                    "404": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}},
                    "500": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Appends a service to the client and leaves every other client untouched.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Services"],
                "summary": "Add service to a client",
                "parameters": [
                    {"type": "integer", "description": "Client id", "name": "clientId", "in": "path", "required": true},
                    {
                        "description": "Service details",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/copilotsdk.AddServiceRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "The new service", "schema": {"$ref": "#/definitions/copilotsdk.Service"}},
                    "400": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}},
                    "401": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}},
                    "404": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}},
                    "500": {"description": "message", "schema": {"$ref": "#/definitions/copilotsdk.ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "description": "Liveness probe endpoint returning basic service health status, uptime, and version information\nThis endpoint always returns 200 OK if the service is running",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/copilotsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe endpoint returning service health status and checks for critical dependencies\nIncludes uptime, version, and the status of the document store and token signer",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/copilotsdk.HealthResponse"}},
                    "503": {"description": "status, uptime, version, checks - service not ready", "schema": {"$ref": "#/definitions/copilotsdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "copilotsdk.AddServiceRequest": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "name": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "copilotsdk.AuthResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "expires_in": {"type": "integer"},
                "message": {"type": "string"},
                "success": {"type": "boolean"},
                "token_type": {"type": "string"},
                "user": {"$ref": "#/definitions/copilotsdk.User"}
            }
        },
        "copilotsdk.Client": {
            "type": "object",
            "properties": {
                "gstin": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "services": {"type": "array", "items": {"$ref": "#/definitions/copilotsdk.Service"}}
            }
        },
        "copilotsdk.CreateClientRequest": {
            "type": "object",
            "properties": {
                "gstin": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "copilotsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "copilotsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "signer": {"type": "string"},
                "store": {"type": "string"}
            }
        },
        "copilotsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"$ref": "#/definitions/copilotsdk.HealthChecks"},
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "copilotsdk.JWKSResponse": {
            "type": "object",
            "properties": {
                "keys": {"type": "array", "items": {"$ref": "#/definitions/jwtx.JWK"}}
            }
        },
        "copilotsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "copilotsdk.Service": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "copilotsdk.SignupRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "copilotsdk.User": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "jwtx.JWK": {
            "type": "object",
            "properties": {
                "alg": {"type": "string"},
                "crv": {"type": "string"},
                "kid": {"type": "string"},
                "kty": {"type": "string"},
                "use": {"type": "string"},
                "x": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Copilot Bookkeeping API",
	Description:      "Backend for a small bookkeeping assistant: accounts, clients and the services kept for each client.\n\nAccess tokens are EdDSA signed JWTs and can be verified using the JWKS endpoint.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
