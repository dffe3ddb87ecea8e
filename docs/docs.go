// Package docs registers the medipred API description with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/assessments/{condition}": {
            "post": {
                "tags": ["assessments"],
                "summary": "Score and store a questionnaire",
                "parameters": [
                    {"$ref": "#/parameters/condition"},
                    {"name": "questionnaire", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/PredictionRecord"}},
                    "400": {"description": "Invalid questionnaire", "schema": {"$ref": "#/definitions/ValidationError"}},
                    "401": {"description": "Unauthorized"},
                    "500": {"description": "Scored but not persisted"}
                }
            }
        },
        "/assessments/{condition}/preview": {
            "post": {
                "tags": ["assessments"],
                "summary": "Score a questionnaire without storing it",
                "parameters": [
                    {"$ref": "#/parameters/condition"},
                    {"name": "questionnaire", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PredictionResult"}},
                    "400": {"description": "Invalid questionnaire", "schema": {"$ref": "#/definitions/ValidationError"}}
                }
            }
        },
        "/predictions": {
            "get": {
                "tags": ["predictions"],
                "summary": "List the caller's predictions, newest first",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["predictions"],
                "summary": "Store a client-computed prediction",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/PredictionRecord"}},
                    "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/ValidationError"}}
                }
            },
            "delete": {
                "tags": ["predictions"],
                "summary": "Delete all of the caller's predictions",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/predictions/summary": {
            "get": {
                "tags": ["predictions"],
                "summary": "Per-condition totals for the caller",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/predictions/{id}": {
            "get": {
                "tags": ["predictions"],
                "summary": "Fetch one prediction",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PredictionRecord"}},
                    "401": {"description": "Not the owner"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["predictions"],
                "summary": "Delete one prediction",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Not the owner"},
                    "404": {"description": "Not found"}
                }
            }
        }
    },
    "parameters": {
        "condition": {"name": "condition", "in": "path", "required": true, "type": "string", "enum": ["heart", "diabetes", "parkinsons", "mental-health"]},
        "id": {"name": "id", "in": "path", "required": true, "type": "string"}
    },
    "definitions": {
        "RiskFactor": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "value": {"type": "string"},
                "weight": {"type": "number"},
                "impact": {"type": "string", "enum": ["low", "medium", "high"]}
            }
        },
        "PredictionResult": {
            "type": "object",
            "properties": {
                "prediction": {"type": "boolean"},
                "probability": {"type": "number"},
                "risk_factors": {"type": "array", "items": {"$ref": "#/definitions/RiskFactor"}},
                "recommendations": {"type": "array", "items": {"type": "string"}},
                "mental_health": {"type": "object"}
            }
        },
        "PredictionRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "predictionType": {"type": "string"},
                "formData": {"type": "object"},
                "result": {"$ref": "#/definitions/PredictionResult"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "ValidationError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "medipred API",
	Description:      "Clinical questionnaire risk scoring and prediction history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
