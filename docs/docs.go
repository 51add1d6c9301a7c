// Package docs registers the OpenAPI description served under /swagger.
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
        "/interviews": {
            "post": {
                "description": "Validates the candidate, loads questions and opens the session",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Interviews"],
                "summary": "Start an interview",
                "parameters": [
                    {
                        "description": "Candidate and optional questions",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/interview.StartInterviewRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/interview.SessionResponse"}},
                    "400": {"description": "Invalid candidate or questions", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "422": {"description": "No questions available", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/interviews/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Interviews"],
                "summary": "Get interview",
                "parameters": [{"type": "string", "description": "Session ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/interview.SessionResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/interviews/{id}/answers": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Interviews"],
                "summary": "Submit an answer",
                "parameters": [
                    {"type": "string", "description": "Session ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Answer", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/interview.SubmitAnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/interview.OutcomeResponse"}},
                    "400": {"description": "Empty answer", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "409": {"description": "Invalid state or session busy", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/interviews/{id}/handoff/resolve": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Interviews"],
                "summary": "Resolve handoff",
                "parameters": [{"type": "string", "description": "Session ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/interview.OutcomeResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "409": {"description": "No handoff to resolve", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/interviews/{id}/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Interviews"],
                "summary": "Interview summary",
                "parameters": [{"type": "string", "description": "Session ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/interview.SummaryResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "409": {"description": "Session not complete", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/interviews/{id}/transcript": {
            "get": {
                "description": "Returns a presigned URL for the archived transcript of a completed session",
                "produces": ["application/json"],
                "tags": ["Transcripts"],
                "summary": "Transcript download link",
                "parameters": [{"type": "string", "description": "Session ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/interview.TranscriptResponse"}},
                    "404": {"description": "Session not found or archiving disabled", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "409": {"description": "Session not complete", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Storage failure", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/transcripts": {
            "get": {
                "description": "Lists the sessions whose transcript has been archived",
                "produces": ["application/json"],
                "tags": ["Transcripts"],
                "summary": "Archived transcripts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/interview.TranscriptListResponse"}},
                    "404": {"description": "Archiving disabled", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Storage failure", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/handoffs/pending": {
            "get": {
                "description": "Lists tickets waiting for a recruiter, oldest first, with the candidate's contact details",
                "produces": ["application/json"],
                "tags": ["Handoffs"],
                "summary": "Pending handoffs",
                "parameters": [{"type": "integer", "description": "Maximum number of tickets (1-500, default 50)", "name": "limit", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/interview.PendingHandoffListResponse"}},
                    "400": {"description": "Invalid limit", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Backend query failed", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/faq": {
            "post": {
                "description": "Answers from the curated FAQ, then from the generated fallback when configured",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["FAQ"],
                "summary": "Ask a question",
                "parameters": [
                    {"description": "Question", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/faq.AskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/faq.AnswerResponse"}},
                    "400": {"description": "Missing question", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/analytics/overview": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Analytics overview",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "common.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "info": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "interview.CandidateRequest": {
            "type": "object",
            "required": ["email", "name"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "experience": {"type": "string"},
                "skills": {"type": "array", "items": {"type": "string"}}
            }
        },
        "interview.QuestionRequest": {
            "type": "object",
            "required": ["category", "reference_answer", "text"],
            "properties": {
                "id": {"type": "string"},
                "category": {"type": "string", "enum": ["Technical", "Behavioral", "HR"]},
                "text": {"type": "string"},
                "reference_answer": {"type": "string"}
            }
        },
        "interview.StartInterviewRequest": {
            "type": "object",
            "required": ["candidate"],
            "properties": {
                "candidate": {"$ref": "#/definitions/interview.CandidateRequest"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/interview.QuestionRequest"}}
            }
        },
        "interview.SubmitAnswerRequest": {
            "type": "object",
            "properties": {"answer": {"type": "string"}}
        },
        "interview.SessionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "candidate_id": {"type": "string"},
                "candidate_name": {"type": "string"},
                "state": {"type": "string", "enum": ["intake", "in_progress", "awaiting_handoff", "complete"]},
                "cursor": {"type": "integer"},
                "total": {"type": "integer"},
                "room": {"type": "string"},
                "started_at": {"type": "string"},
                "completed_at": {"type": "string"}
            }
        },
        "interview.OutcomeResponse": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "state": {"type": "string"},
                "cursor": {"type": "integer"},
                "total": {"type": "integer"},
                "handoff_reason": {"type": "string"},
                "already_resolved": {"type": "boolean"}
            }
        },
        "interview.SummaryResponse": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "candidate_id": {"type": "string"},
                "candidate_name": {"type": "string"},
                "total_score": {"type": "number"},
                "average_score": {"type": "number"},
                "answer_count": {"type": "integer"},
                "duration_seconds": {"type": "number"}
            }
        },
        "interview.TranscriptResponse": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "url": {"type": "string"},
                "expires_at": {"type": "string"}
            }
        },
        "interview.TranscriptListResponse": {
            "type": "object",
            "properties": {
                "session_ids": {"type": "array", "items": {"type": "string"}},
                "count": {"type": "integer"}
            }
        },
        "interview.PendingHandoffResponse": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "candidate_name": {"type": "string"},
                "candidate_email": {"type": "string"},
                "handoff": {"type": "object"},
                "triggering_answer": {"type": "object"}
            }
        },
        "interview.PendingHandoffListResponse": {
            "type": "object",
            "properties": {
                "handoffs": {"type": "array", "items": {"$ref": "#/definitions/interview.PendingHandoffResponse"}},
                "count": {"type": "integer"}
            }
        },
        "faq.AskRequest": {
            "type": "object",
            "required": ["question"],
            "properties": {"question": {"type": "string", "maxLength": 1000}}
        },
        "faq.AnswerResponse": {
            "type": "object",
            "properties": {
                "answer": {"type": "string"},
                "source": {"type": "string", "enum": ["static", "generated", "none"]},
                "matched_question": {"type": "string"}
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
	Title:            "Interview Assistant API",
	Description:      "Automated interview sessions with scoring, human handoff and realtime observers",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
