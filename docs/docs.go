// Package docs registers the OpenAPI document served at /api/swagger.
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
        "/posts": {
            "get": {
                "description": "All posts newest first with like counts. isLiked reflects the optional userId.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [
                    {"type": "string", "description": "Viewer user ID", "name": "userId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.PostSummary"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create post",
                "parameters": [
                    {"description": "Post", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.createPostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Post"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}": {
            "delete": {
                "description": "Deletes the post and all of its likes.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Delete post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"message": {"type": "string"}}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}/like": {
            "post": {
                "description": "Liking a post twice is rejected with 400.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["likes"],
                "summary": "Like post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Liking user", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.likeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.LikeState"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Removes the like if present. userId may also be passed as a query parameter.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["likes"],
                "summary": "Unlike post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Unliking user", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/server.likeRequest"}},
                    {"type": "string", "description": "Unliking user when no body is sent", "name": "userId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LikeState"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "models.LikeState": {
            "type": "object",
            "properties": {
                "isLiked": {"type": "boolean"},
                "likeCount": {"type": "integer"}
            }
        },
        "models.Post": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "createdAt": {"type": "string"},
                "id": {"type": "integer"},
                "imageUrl": {"type": "string"},
                "updatedAt": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "models.PostSummary": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "createdAt": {"type": "string"},
                "id": {"type": "integer"},
                "imageUrl": {"type": "string"},
                "isLiked": {"type": "boolean"},
                "likeCount": {"type": "integer"},
                "updatedAt": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "server.createPostRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "imageUrl": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "server.likeRequest": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "postboard API",
	Description:      "Posts with per-user likes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
