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
        "/api/v1/requests": {
            "post": {
                "description": "Маршрутизирует запрос по полю \"type\" или по ключу операции",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Dispatch"],
                "summary": "Единая точка входа аналитика",
                "parameters": [
                    {"description": "Запрос с дискриминантом операции", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/api/v1/terrain/analyze": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Terrain"],
                "summary": "Анализ местности",
                "parameters": [
                    {"description": "Локация и параметры анализа", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AnalyzeTerrainRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/api/v1/terrain/obstacles": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Terrain"],
                "summary": "Поиск препятствий",
                "parameters": [
                    {"description": "Локация", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.IdentifyObstaclesRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/terrain/{location}/map": {
            "get": {
                "description": "Возвращает FeatureCollection без обёртки",
                "produces": ["application/geo+json"],
                "tags": ["Terrain"],
                "summary": "Карта местности в GeoJSON",
                "parameters": [
                    {"type": "string", "description": "Локация", "name": "location", "in": "path", "required": true},
                    {"type": "string", "default": "geojson", "description": "Формат экспорта", "name": "format", "in": "query"},
                    {"type": "boolean", "default": true, "description": "Слой погоды", "name": "include_weather", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/terrain/{location}/changes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Terrain"],
                "summary": "Изменения местности с момента анализа",
                "parameters": [
                    {"type": "string", "description": "Локация", "name": "location", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/terrain/{location}/crossing": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Terrain"],
                "summary": "Оценка сложности пересечения препятствия",
                "parameters": [
                    {"type": "string", "description": "Локация", "name": "location", "in": "path", "required": true},
                    {"type": "string", "description": "Тип препятствия", "name": "obstacle_type", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/terrain/{location}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Knowledge"],
                "summary": "История анализов локации",
                "parameters": [
                    {"type": "string", "description": "Локация", "name": "location", "in": "path", "required": true},
                    {"type": "integer", "default": 10, "description": "Сколько снимков вернуть", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "501": {"description": "Not Implemented"}}
            }
        },
        "/api/v1/terrain/locations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Knowledge"],
                "summary": "Локации с заданным типом местности",
                "parameters": [
                    {"type": "string", "description": "Тип местности", "name": "terrain_type", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "501": {"description": "Not Implemented"}}
            }
        },
        "/api/v1/paths": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Paths"],
                "summary": "Построение маршрута",
                "parameters": [
                    {"description": "Начало, конец и сложность", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.GeneratePathRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Status"],
                "summary": "Текущий статус миссии",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Status"],
                "summary": "Смена статуса миссии",
                "parameters": [
                    {"description": "Новый статус", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.StatusRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        }
    },
    "definitions": {
        "dto.AnalyzeTerrainRequest": {
            "type": "object",
            "required": ["location"],
            "properties": {
                "location": {"type": "string"},
                "resolution": {"type": "string", "default": "medium"},
                "include_weather": {"type": "boolean", "default": true}
            }
        },
        "dto.IdentifyObstaclesRequest": {
            "type": "object",
            "required": ["location"],
            "properties": {
                "location": {"type": "string"},
                "include_weather": {"type": "boolean", "default": true}
            }
        },
        "dto.GeneratePathRequest": {
            "type": "object",
            "required": ["start", "end"],
            "properties": {
                "start": {"type": "string"},
                "end": {"type": "string"},
                "difficulty": {"type": "string", "default": "normal", "enum": ["easy", "normal", "hard", "extreme"]},
                "include_weather": {"type": "boolean", "default": true}
            }
        },
        "dto.StatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Terrain Analyst API",
	Description:      "Аналитик местности для планирования поисково-спасательных операций",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
