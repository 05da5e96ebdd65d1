package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "FYP Coordination API",
        "description": "Meeting scheduling and evaluation workflows for final-year projects",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Meetings", "description": "Venue booking and conflict detection"},
        {"name": "Evaluations", "description": "Dual-evaluator mark entry and rollups"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/meetings": {
            "get": {
                "tags": ["Meetings"],
                "summary": "List scheduled meetings visible to the caller",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/meetings/venues": {
            "get": {
                "tags": ["Meetings"],
                "summary": "List bookable venues",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/meetings/schedule": {
            "post": {
                "tags": ["Meetings"],
                "summary": "Schedule a meeting for a group",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleMeetingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not the FYP team or assigned supervisor", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Venue conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/meetings/check-availability": {
            "post": {
                "tags": ["Meetings"],
                "summary": "Check whether a venue is free for an interval",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckAvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/meetings/eligible-groups": {
            "get": {
                "tags": ["Meetings"],
                "summary": "List groups eligible for scheduling",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/meetings/supervisor-groups": {
            "get": {
                "tags": ["Meetings"],
                "summary": "List groups supervised by the caller",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/evaluations": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "List eligible groups with evaluation records and rollups",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Evaluations"],
                "summary": "Record one phase of the FYP team's evaluation",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveEvaluationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/evaluations/supervisor": {
            "post": {
                "tags": ["Evaluations"],
                "summary": "Record one phase of the supervisor's evaluation",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveEvaluationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not the assigned supervisor", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/evaluations/combined-marks": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "Get the calling student's combined official marks",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/evaluations/group/{groupId}": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "Get one group's evaluation records and rollup",
                "parameters": [
                    {"name": "groupId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Group not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/evaluations/group/{groupId}/export": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "Export a group's evaluation records as a PDF mark sheet",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "groupId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        },
        "/evaluations/student/{rollNumber}": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "Get both evaluators' records for a student",
                "parameters": [
                    {"name": "rollNumber", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No records", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/evaluations/supervisor-records/{groupId}": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "Get the supervisor-track records of a group",
                "parameters": [
                    {"name": "groupId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/evaluations/supervisor-groups": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "Marks-free completion rollups for supervised groups",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/evaluations/my-evaluations": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "List the completed phases the calling supervisor has recorded",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "ScheduleMeetingRequest": {
            "type": "object",
            "properties": {
                "group_id": {"type": "string"},
                "venue": {"type": "string"},
                "start_time": {"type": "string", "format": "date-time"},
                "end_time": {"type": "string", "format": "date-time"}
            },
            "required": ["group_id", "venue", "start_time", "end_time"]
        },
        "CheckAvailabilityRequest": {
            "type": "object",
            "properties": {
                "venue": {"type": "string"},
                "start_time": {"type": "string", "format": "date-time"},
                "end_time": {"type": "string", "format": "date-time"},
                "exclude_meeting_id": {"type": "string"}
            },
            "required": ["venue", "start_time", "end_time"]
        },
        "SaveEvaluationRequest": {
            "type": "object",
            "properties": {
                "group_id": {"type": "string"},
                "roll_number": {"type": "string"},
                "evaluation_type": {"type": "string", "enum": ["MidYear", "FinalYear"]},
                "marks": {"$ref": "#/definitions/EvaluationMarks"}
            },
            "required": ["group_id", "roll_number", "evaluation_type"]
        },
        "EvaluationMarks": {
            "type": "object",
            "properties": {
                "presentation": {"type": "number"},
                "srs_report": {"type": "number"},
                "poster": {"type": "number"},
                "progress_sheet": {"type": "number"},
                "report": {"type": "number"},
                "final_presentation": {"type": "number"}
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
