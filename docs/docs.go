// Package docs registers the OpenAPI document served under /swagger.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ResponseBody"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            }
        },
        "/v1/api/trades/last": {
            "get": {
                "description": "Rows sharing the most recent date. Data is empty when nothing was logged.",
                "produces": ["application/json"],
                "tags": ["TRADES"],
                "summary": "Last trade log",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.LastLogResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            }
        },
        "/v1/api/trades/statistics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["TRADES"],
                "summary": "Trade statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.StatisticsResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            }
        },
        "/v1/api/trades/recent": {
            "get": {
                "description": "Most recent trades first",
                "produces": ["application/json"],
                "tags": ["TRADES"],
                "summary": "Recent trades",
                "parameters": [
                    {"type": "integer", "description": "limit (1-50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.TradeResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ResponseBody"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/http.ResponseBody"}}
                }
            }
        },
        "/webhook/line": {
            "post": {
                "description": "Handles webhook events from LINE Messaging API",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["LINE"],
                "summary": "LINE Webhook",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "http.Status": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "array", "items": {"type": "string"}}
            }
        },
        "http.ResponseBody": {
            "type": "object",
            "properties": {
                "status": {"$ref": "#/definitions/http.Status"},
                "data": {},
                "total_item": {"type": "integer"}
            }
        },
        "http.SkinResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "wear": {"type": "string"}
            }
        },
        "http.LastLogResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/http.SkinResponse"}},
                "price": {"type": "string"},
                "account": {"type": "string"}
            }
        },
        "http.StatisticsResponse": {
            "type": "object",
            "properties": {
                "total_trades": {"type": "integer"},
                "total_spent": {"type": "string"},
                "most_traded_skin": {"type": "string"},
                "most_used_account": {"type": "string"}
            }
        },
        "http.TradeResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "skin_name": {"type": "string"},
                "wear": {"type": "string"},
                "price": {"type": "string"},
                "account": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:9089",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Skin Trade Log Bot API",
	Description:      "LINE bot logging skin trades to a spreadsheet, with a read API over the log.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
