package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Shelter Adoption API",
        "description": "Adoption requests, approvals and post-adoption follow-up for a dog shelter.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "Adoptions",
            "description": "Adoption request lifecycle"
        },
        {
            "name": "Certificates",
            "description": "Adoption certificates"
        },
        {
            "name": "FollowUps",
            "description": "Weekly post-adoption reports"
        },
        {
            "name": "Dashboard",
            "description": "Admin overview"
        }
    ],
    "paths": {
        "/adoption-requests": {
            "post": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "Submit an adoption request",
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateAdoptionRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "get": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "List adoption requests",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "description": "Comma separated statuses"
                    },
                    {
                        "name": "vetReviewStatus",
                        "in": "query",
                        "type": "string",
                        "description": "pending, cleared or flagged"
                    },
                    {
                        "name": "dogId",
                        "in": "query",
                        "type": "string",
                        "description": "Dog ID"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "description": "Page"
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/adoption-requests/mine": {
            "get": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "List the caller's adoption requests",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "description": "Comma separated statuses"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "description": "Page"
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/adoption-requests/export": {
            "get": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "Export adoption requests as CSV",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "description": "Comma separated statuses"
                    },
                    {
                        "name": "vetReviewStatus",
                        "in": "query",
                        "type": "string",
                        "description": "pending, cleared or flagged"
                    },
                    {
                        "name": "dogId",
                        "in": "query",
                        "type": "string",
                        "description": "Dog ID"
                    }
                ],
                "produces": [
                    "text/csv"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/adoption-requests/dog/{dogId}": {
            "get": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "List adoption requests for a dog",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "dogId",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Dog ID"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "description": "Page"
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/adoption-requests/{id}": {
            "get": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "Get an adoption request",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Adoption request ID"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "Edit a pending adoption request",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Adoption request ID"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateAdoptionRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "Withdraw a pending adoption request",
                "responses": {
                    "204": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Adoption request ID"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/adoption-requests/{id}/approve": {
            "post": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "Approve a pending request and mark the dog adopted",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Adoption request ID"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/DecisionRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/adoption-requests/{id}/reject": {
            "post": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "Reject a pending request",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Adoption request ID"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/DecisionRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/adoption-requests/{id}/vet-review": {
            "post": {
                "tags": [
                    "Adoptions"
                ],
                "summary": "Record the vet review outcome",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Adoption request ID"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/VetReviewRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/adoption-requests/{id}/certificate": {
            "get": {
                "tags": [
                    "Certificates"
                ],
                "summary": "Certificate data of an approved adoption",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Adoption request ID"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/adoption-requests/{id}/certificate/pdf": {
            "get": {
                "tags": [
                    "Certificates"
                ],
                "summary": "Certificate PDF of an approved adoption",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Adoption request ID"
                    }
                ],
                "produces": [
                    "application/pdf"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/follow-up-reports": {
            "post": {
                "tags": [
                    "FollowUps"
                ],
                "summary": "Submit the next weekly follow-up report",
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "adoptionRequestId",
                        "in": "formData",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "week",
                        "in": "formData",
                        "type": "integer"
                    },
                    {
                        "name": "healthCondition",
                        "in": "formData",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "healthy",
                            "needs_attention",
                            "critical"
                        ]
                    },
                    {
                        "name": "feedingStatus",
                        "in": "formData",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "regular",
                            "irregular",
                            "skipped_meals"
                        ]
                    },
                    {
                        "name": "behaviorChecklist",
                        "in": "formData",
                        "type": "array",
                        "items": {
                            "type": "string",
                            "enum": [
                                "playful",
                                "aggressive",
                                "calm",
                                "anxious"
                            ]
                        },
                        "collectionFormat": "multi"
                    },
                    {
                        "name": "dogId",
                        "in": "formData",
                        "type": "string"
                    },
                    {
                        "name": "feedingNotes",
                        "in": "formData",
                        "type": "string"
                    },
                    {
                        "name": "behaviorNotes",
                        "in": "formData",
                        "type": "string"
                    },
                    {
                        "name": "environmentCheck",
                        "in": "formData",
                        "type": "string"
                    },
                    {
                        "name": "optionalNotes",
                        "in": "formData",
                        "type": "string"
                    },
                    {
                        "name": "photos",
                        "in": "formData",
                        "type": "file"
                    },
                    {
                        "name": "vetReport",
                        "in": "formData",
                        "type": "file"
                    }
                ],
                "consumes": [
                    "multipart/form-data",
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/follow-up-reports/{adoptionRequestId}": {
            "get": {
                "tags": [
                    "FollowUps"
                ],
                "summary": "List follow-up reports of an adoption",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "adoptionRequestId",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Adoption request ID"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/follow-up-reports/{adoptionRequestId}/summary": {
            "get": {
                "tags": [
                    "FollowUps"
                ],
                "summary": "Follow-up progress of an adoption",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "adoptionRequestId",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Adoption request ID"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/follow-up-reports/files/{reportId}/{index}": {
            "get": {
                "tags": [
                    "FollowUps"
                ],
                "summary": "Download a follow-up attachment",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "reportId",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Report ID"
                    },
                    {
                        "name": "index",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Attachment index"
                    },
                    {
                        "name": "token",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/octet-stream"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/dashboard/adoptions": {
            "get": {
                "tags": [
                    "Dashboard"
                ],
                "summary": "Admin adoption dashboard",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "CreateAdoptionRequest": {
            "type": "object",
            "properties": {
                "dogId": {
                    "type": "string"
                },
                "fullName": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "adopterStatus": {
                    "type": "string",
                    "enum": [
                        "employed",
                        "self-employed",
                        "student",
                        "retired",
                        "unemployed"
                    ]
                },
                "homeType": {
                    "type": "string",
                    "enum": [
                        "house",
                        "apartment",
                        "condo",
                        "farm",
                        "other"
                    ]
                },
                "hasOtherPets": {
                    "type": "boolean"
                },
                "agreed": {
                    "type": "boolean"
                }
            },
            "required": [
                "dogId",
                "fullName",
                "email",
                "phone",
                "address",
                "agreed"
            ]
        },
        "UpdateAdoptionRequest": {
            "type": "object",
            "properties": {
                "dogId": {
                    "type": "string"
                },
                "fullName": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "adopterStatus": {
                    "type": "string",
                    "enum": [
                        "employed",
                        "self-employed",
                        "student",
                        "retired",
                        "unemployed"
                    ]
                },
                "homeType": {
                    "type": "string",
                    "enum": [
                        "house",
                        "apartment",
                        "condo",
                        "farm",
                        "other"
                    ]
                },
                "hasOtherPets": {
                    "type": "boolean"
                }
            }
        },
        "DecisionRequest": {
            "type": "object",
            "properties": {
                "note": {
                    "type": "string"
                }
            }
        },
        "VetReviewRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "cleared",
                        "flagged"
                    ]
                },
                "note": {
                    "type": "string"
                }
            },
            "required": [
                "status"
            ]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "pageSize": {
                    "type": "integer"
                },
                "totalCount": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
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
