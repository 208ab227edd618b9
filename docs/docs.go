// Package docs регистрирует описание API для swagger UI на /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/player/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Players"],
                "summary": "Карточка игрока",
                "parameters": [
                    {"type": "integer", "description": "id игрока MLB", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Player"}},
                    "404": {"description": "Игрок не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/user/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Регистрация пользователя",
                "parameters": [
                    {"description": "Данные нового пользователя", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/signup.Request"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/auth.Response"}},
                    "400": {"description": "Не заполнены обязательные поля", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Имя или email уже заняты", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/user/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Авторизация пользователя",
                "parameters": [
                    {"description": "Учетные данные пользователя", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/login.Request"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.Response"}},
                    "400": {"description": "Не заполнены обязательные поля", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Неверные учетные данные", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/verify-token": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Проверка токена",
                "parameters": [
                    {"type": "string", "description": "Сессионный токен без префикса", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/verify.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/user/get_username": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Имя текущего пользователя",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/username.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Пользователь не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/user/change_password": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Смена пароля",
                "parameters": [
                    {"description": "Текущий и новый пароли", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/changepassword.Request"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Неверный токен или текущий пароль", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/user/players": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Favorites"],
                "summary": "Избранные игроки",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Player"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Favorites"],
                "summary": "Добавить игрока в избранное",
                "parameters": [
                    {"description": "id игрока", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/add.Request"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.MessageResponse"}},
                    "400": {"description": "Некорректный id игрока", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Игрок уже в избранном", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/user/players/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Favorites"],
                "summary": "Удалить игрока из избранного",
                "parameters": [
                    {"type": "integer", "description": "id игрока", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.MessageResponse"}},
                    "400": {"description": "Некорректный id игрока", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/user/players/images": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Favorites"],
                "summary": "Фотографии избранных игроков",
                "responses": {
                    "200": {"description": "id игрока -> url фотографии", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/user/players/teams": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Favorites"],
                "summary": "Команды избранных игроков",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.TeamResult"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.Player": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "fullName": {"type": "string"},
                "primaryNumber": {"type": "string"},
                "birthDate": {"type": "string"},
                "currentAge": {"type": "integer"},
                "birthCity": {"type": "string"},
                "birthCountry": {"type": "string"},
                "height": {"type": "string"},
                "weight": {"type": "integer"},
                "primaryPosition": {"type": "string"},
                "nickName": {"type": "string"},
                "mlbDebutDate": {"type": "string"},
                "batSide": {"type": "string"},
                "pitchHand": {"type": "string"},
                "strikeZoneTop": {"type": "number"},
                "strikeZoneBottom": {"type": "number"}
            }
        },
        "models.TeamResult": {
            "type": "object",
            "properties": {
                "teamName": {"type": "string"},
                "teamId": {"type": "integer"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "auth.Response": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"},
                "token": {"type": "string"}
            }
        },
        "signup.Request": {
            "type": "object",
            "required": ["username", "email", "password"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "login.Request": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "changepassword.Request": {
            "type": "object",
            "required": ["current_password", "new_password"],
            "properties": {
                "current_password": {"type": "string"},
                "new_password": {"type": "string"}
            }
        },
        "add.Request": {
            "type": "object",
            "properties": {
                "player_id": {"type": "integer", "example": 592450}
            }
        },
        "verify.Response": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Token is valid"},
                "user_id": {"type": "integer", "example": 7}
            }
        },
        "username.Response": {
            "type": "object",
            "properties": {
                "username": {"type": "string"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Invalid token"},
                "code": {"type": "string", "example": "UNAUTHORIZED"},
                "fields": {"type": "array", "items": {"type": "string"}}
            }
        },
        "response.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Player added successfully"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Player Tracker API",
	Description:      "API избранных игроков MLB: учётные записи, избранное и данные MLB Stats API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
