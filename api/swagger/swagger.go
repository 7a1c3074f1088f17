package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SportDev Assessment API",
        "description": "Special examination scoring and ranking service for athlete development programs",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Exams", "description": "Examination session management"},
        {"name": "Templates", "description": "Per-sport test battery templates"},
        {"name": "Setup", "description": "Per-exam test battery trees"},
        {"name": "Results", "description": "Raw value capture and computed results"},
        {"name": "Rankings", "description": "Leaderboards and exports"},
        {"name": "Comparison", "description": "Cross-exam comparison matrices"},
        {"name": "System", "description": "Observability"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Unavailable"}
                }
            }
        },
        "/assessment/exams": {
            "post": {
                "tags": ["Exams"],
                "summary": "Schedule an examination session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExamRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assessment/exams/{id}": {
            "get": {
                "tags": ["Exams"],
                "summary": "Get one examination session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Exams"],
                "summary": "Delete an examination session and its results",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/assessment/sports/{sportId}/exams": {
            "get": {
                "tags": ["Exams"],
                "summary": "List a sport's examination sessions by date",
                "parameters": [
                    {"name": "sportId", "in": "path", "required": true, "type": "string"},
                    {"name": "categoryId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assessment/templates/{sportId}": {
            "get": {
                "tags": ["Templates"],
                "summary": "Get sport template",
                "parameters": [
                    {"name": "sportId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Templates"],
                "summary": "Replace sport template",
                "parameters": [
                    {"name": "sportId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveTemplateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assessment/templates/clone": {
            "post": {
                "tags": ["Templates"],
                "summary": "Clone sport template into an exam",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CloneTemplateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assessment/exams/{id}/setup": {
            "get": {
                "tags": ["Setup"],
                "summary": "Get exam test battery",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Setup"],
                "summary": "Replace exam test battery",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveSetupRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assessment/exams/{id}/participants/{participantId}/form": {
            "get": {
                "tags": ["Setup"],
                "summary": "Get capture form for one participant",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "participantId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assessment/exams/{id}/results": {
            "post": {
                "tags": ["Results"],
                "summary": "Record raw values and recompute results",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveResultsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Results"],
                "summary": "List computed results for an exam",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "kind", "in": "query", "type": "string", "enum": ["ATHLETE", "COACH", "SUPPORT_STAFF"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assessment/exams/{id}/ranking": {
            "get": {
                "tags": ["Rankings"],
                "summary": "Rank one exam by overall percentage",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assessment/exams/{id}/ranking/export": {
            "get": {
                "tags": ["Rankings"],
                "summary": "Export one exam's ranking as CSV or PDF",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/assessment/sports/{sportId}/ranking": {
            "get": {
                "tags": ["Rankings"],
                "summary": "Rank a sport across exam sessions",
                "parameters": [
                    {"name": "sportId", "in": "path", "required": true, "type": "string"},
                    {"name": "mode", "in": "query", "type": "string", "enum": ["rolling-all", "rolling-lastN"]},
                    {"name": "lastN", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assessment/sports/{sportId}/ranking/export": {
            "get": {
                "tags": ["Rankings"],
                "summary": "Export a sport's rolling ranking as CSV or PDF",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "sportId", "in": "path", "required": true, "type": "string"},
                    {"name": "mode", "in": "query", "type": "string", "enum": ["rolling-all", "rolling-lastN"]},
                    {"name": "lastN", "in": "query", "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/assessment/comparison": {
            "get": {
                "tags": ["Comparison"],
                "summary": "Compare athlete results across exams",
                "parameters": [
                    {"name": "examIds", "in": "query", "required": true, "type": "string"},
                    {"name": "categoryId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Aggregated instrumentation snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateExamRequest": {
            "type": "object",
            "required": ["sport_id", "name", "exam_date"],
            "properties": {
                "sport_id": {"type": "string"},
                "category_id": {"type": "string"},
                "name": {"type": "string"},
                "exam_date": {"type": "string", "format": "date-time"}
            }
        },
        "ItemTestInput": {
            "type": "object",
            "required": ["name", "direction"],
            "properties": {
                "name": {"type": "string"},
                "unit": {"type": "string"},
                "target_male": {"type": "string"},
                "target_female": {"type": "string"},
                "direction": {"type": "string", "enum": ["max", "min"]},
                "order": {"type": "integer"}
            }
        },
        "AspectInput": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "order": {"type": "integer"},
                "item_tests": {"type": "array", "items": {"$ref": "#/definitions/ItemTestInput"}}
            }
        },
        "SaveTemplateRequest": {
            "type": "object",
            "required": ["aspects"],
            "properties": {
                "aspects": {"type": "array", "items": {"$ref": "#/definitions/AspectInput"}}
            }
        },
        "CloneTemplateRequest": {
            "type": "object",
            "required": ["exam_id", "sport_id"],
            "properties": {
                "exam_id": {"type": "string"},
                "sport_id": {"type": "string"}
            }
        },
        "SaveSetupRequest": {
            "type": "object",
            "required": ["aspects"],
            "properties": {
                "aspects": {"type": "array", "items": {"$ref": "#/definitions/AspectInput"}}
            }
        },
        "ItemResultInput": {
            "type": "object",
            "required": ["item_test_id"],
            "properties": {
                "item_test_id": {"type": "string"},
                "raw_value": {"type": "string"}
            }
        },
        "ResultEntry": {
            "type": "object",
            "required": ["participant_id", "item_results"],
            "properties": {
                "participant_id": {"type": "string"},
                "item_results": {"type": "array", "items": {"$ref": "#/definitions/ItemResultInput"}}
            }
        },
        "SaveResultsRequest": {
            "type": "object",
            "required": ["entries"],
            "properties": {
                "entries": {"type": "array", "items": {"$ref": "#/definitions/ResultEntry"}}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
