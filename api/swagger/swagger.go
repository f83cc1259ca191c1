package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Ops API",
        "description": "Campus operations backend: leave-request lifecycle, visitor log, clubs, lost & found",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Leaves", "description": "Leave-request lifecycle and approvals"},
        {"name": "Dashboard", "description": "Approver dashboards"},
        {"name": "Export", "description": "Downloadable queue renditions"},
        {"name": "Visitors", "description": "Campus visitor log"},
        {"name": "Clubs", "description": "Clubs and memberships"},
        {"name": "LostFound", "description": "Lost & found board"}
    ],
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
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/leaves": {
            "post": {
                "tags": ["Leaves"],
                "summary": "Submit a leave request",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitLeaveRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/leaves/my": {
            "get": {
                "tags": ["Leaves"],
                "summary": "List the caller's leave requests",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/leaves/my/stream": {
            "get": {
                "tags": ["Leaves"],
                "summary": "Stream the caller's leave requests as server-sent events",
                "produces": ["text/event-stream"],
                "responses": {
                    "200": {"description": "Event stream"}
                }
            }
        },
        "/leaves/{id}/decision": {
            "post": {
                "tags": ["Leaves"],
                "summary": "Approve, reject, or return a pending leave request",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecideLeaveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Caller is not the expected approver"},
                    "409": {"description": "Decided concurrently"},
                    "412": {"description": "Record is not pending"}
                }
            }
        },
        "/leaves/{id}/reapply": {
            "post": {
                "tags": ["Leaves"],
                "summary": "Resubmit a rejected or returned leave request",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReapplyLeaveRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Original is not terminal"}
                }
            }
        },
        "/leaves/queue": {
            "get": {
                "tags": ["Leaves"],
                "summary": "Reconciled pending queue for the approver",
                "parameters": [
                    {"name": "year", "in": "query", "type": "string"},
                    {"name": "semester", "in": "query", "type": "string"},
                    {"name": "division", "in": "query", "type": "string"},
                    {"name": "subject", "in": "query", "type": "string"},
                    {"name": "month", "in": "query", "type": "integer"},
                    {"name": "yearLabel", "in": "query", "type": "integer"},
                    {"name": "department", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/leaves": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Leave dashboard for the approver's scope",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/leaves": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the approver queue as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/visitors": {
            "get": {
                "tags": ["Visitors"],
                "summary": "List visitor entries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Visitors"],
                "summary": "Check a visitor in",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/visitors/{id}/checkout": {
            "post": {
                "tags": ["Visitors"],
                "summary": "Check a visitor out",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/clubs": {
            "get": {
                "tags": ["Clubs"],
                "summary": "List clubs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Clubs"],
                "summary": "Create a club",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/clubs/{id}/join": {
            "post": {
                "tags": ["Clubs"],
                "summary": "Join a club",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/clubs/{id}/members": {
            "get": {
                "tags": ["Clubs"],
                "summary": "List a club's members",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lost-found": {
            "get": {
                "tags": ["LostFound"],
                "summary": "List lost & found items",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["LostFound"],
                "summary": "Report a lost or found item",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lost-found/{id}/claim": {
            "post": {
                "tags": ["LostFound"],
                "summary": "Claim an open item",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubmitLeaveRequest": {
            "type": "object",
            "required": ["category", "from_date", "to_date", "reason"],
            "properties": {
                "category": {"type": "string", "enum": ["SICK", "CASUAL", "ON_DUTY", "MEDICAL", "OTHER"]},
                "from_date": {"type": "string", "format": "date"},
                "to_date": {"type": "string", "format": "date"},
                "reason": {"type": "string"},
                "assigned_to": {"type": "string"}
            }
        },
        "ReapplyLeaveRequest": {
            "type": "object",
            "required": ["category", "from_date", "to_date", "reason"],
            "properties": {
                "category": {"type": "string"},
                "from_date": {"type": "string", "format": "date"},
                "to_date": {"type": "string", "format": "date"},
                "reason": {"type": "string"},
                "reapply_reason": {"type": "string"},
                "assigned_to": {"type": "string"}
            }
        },
        "DecideLeaveRequest": {
            "type": "object",
            "required": ["action"],
            "properties": {
                "action": {"type": "string", "enum": ["APPROVE", "REJECT", "RETURN"]},
                "remarks": {"type": "string"}
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
