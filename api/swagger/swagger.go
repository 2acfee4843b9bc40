package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LiU Tentor Exam Archive API",
        "description": "Course search, exam archive proxy and community upload review for LiU exams",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Search", "description": "Course code lookup and suggestions"},
        {"name": "Exams", "description": "Exam documents proxied from the upstream archive"},
        {"name": "Statistics", "description": "Pass-rate summaries and exports"},
        {"name": "RecentActivity", "description": "Per-client search history"},
        {"name": "Preferences", "description": "Per-client interface preferences"},
        {"name": "Viewer", "description": "Server-side document viewer sessions"},
        {"name": "Uploads", "description": "Community exam submissions"},
        {"name": "Review", "description": "Upload moderation queue"},
        {"name": "Auth", "description": "Review admin login"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
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
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/courses/suggest": {
            "get": {
                "tags": ["Search"],
                "summary": "Course code autocomplete",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/courses/closest": {
            "get": {
                "tags": ["Search"],
                "summary": "Closest course codes by edit distance",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string", "required": true},
                    {"name": "n", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing query", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/search/select": {
            "post": {
                "tags": ["Search"],
                "summary": "Finalise a course search",
                "parameters": [
                    {"name": "X-Client-ID", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Empty course code", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/courses/{courseCode}/exams": {
            "get": {
                "tags": ["Exams"],
                "summary": "List exams for a course",
                "parameters": [
                    {"name": "courseCode", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown course", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exams/{examId}": {
            "get": {
                "tags": ["Exams"],
                "summary": "Fetch one exam with solutions",
                "parameters": [
                    {"name": "examId", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown exam", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/courses/{courseCode}/stats": {
            "get": {
                "tags": ["Statistics"],
                "summary": "Pass-rate statistics for a course",
                "parameters": [
                    {"name": "courseCode", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/courses/{courseCode}/stats/export": {
            "get": {
                "tags": ["Statistics"],
                "summary": "Download course statistics as CSV or PDF",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "courseCode", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "403": {"description": "Exports disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/recent-activity": {
            "get": {
                "tags": ["RecentActivity"],
                "summary": "Recently searched courses",
                "parameters": [
                    {"name": "X-Client-ID", "in": "header", "type": "string", "required": true},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["RecentActivity"],
                "summary": "Record a course search",
                "parameters": [
                    {"name": "X-Client-ID", "in": "header", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddActivityRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["RecentActivity"],
                "summary": "Wipe the recent-activity list",
                "parameters": [
                    {"name": "X-Client-ID", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Cleared"}
                }
            }
        },
        "/api/v1/preferences": {
            "get": {
                "tags": ["Preferences"],
                "summary": "Client preferences",
                "parameters": [
                    {"name": "X-Client-ID", "in": "header", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Preferences"],
                "summary": "Update client preferences",
                "parameters": [
                    {"name": "X-Client-ID", "in": "header", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Preferences"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/viewer/sessions": {
            "post": {
                "tags": ["Viewer"],
                "summary": "Open a viewer session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/viewer/sessions/{id}": {
            "get": {
                "tags": ["Viewer"],
                "summary": "Fetch viewer session state",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/viewer/sessions/{id}/{slot}": {
            "patch": {
                "tags": ["Viewer"],
                "summary": "Mutate one viewer pane",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "slot", "in": "path", "type": "string", "required": true, "enum": ["exam", "solution"]},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SlotUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid update", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/uploads": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Submit exam PDFs for review",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "courseCode", "in": "formData", "type": "string", "required": true},
                    {"name": "files", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "201": {"description": "All files accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "207": {"description": "Partial failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Review admin login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/review/uploads": {
            "get": {
                "tags": ["Review"],
                "summary": "List uploads in the review queue",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["PENDING", "APPROVED", "REJECTED"]},
                    {"name": "courseCode", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/review/uploads/{id}/approve": {
            "post": {
                "tags": ["Review"],
                "summary": "Approve a pending upload",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown upload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/review/uploads/{id}/reject": {
            "post": {
                "tags": ["Review"],
                "summary": "Reject a pending upload",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Rejected"},
                    "409": {"description": "Already reviewed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/review/uploads/{id}/download-url": {
            "get": {
                "tags": ["Review"],
                "summary": "Signed download link for a queued PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/review/uploads/{id}/download": {
            "get": {
                "tags": ["Review"],
                "summary": "Stream a queued PDF using a signed token",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "token", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "401": {"description": "Bad or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SelectRequest": {
            "type": "object",
            "properties": {
                "courseCode": {"type": "string"},
                "mode": {"type": "string", "enum": ["tentor", "stats"]}
            },
            "required": ["courseCode"]
        },
        "AddActivityRequest": {
            "type": "object",
            "properties": {
                "courseCode": {"type": "string"}
            },
            "required": ["courseCode"]
        },
        "Preferences": {
            "type": "object",
            "properties": {
                "language": {"type": "string", "enum": ["sv", "en"]},
                "theme": {"type": "string", "enum": ["light", "dark", "system"]}
            }
        },
        "SlotUpdate": {
            "type": "object",
            "properties": {
                "document_url": {"type": "string"},
                "scale": {"type": "number"},
                "rotation": {"type": "integer"},
                "num_pages": {"type": "integer"},
                "page_number": {"type": "integer"},
                "page_rotation": {"type": "integer"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
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
                "pagination": {"type": "object"},
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
