// Package docs registra a especificação OpenAPI servida em /swagger.
// Escrita à mão no formato que o swag registra; atualizar junto com as rotas do router.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/jwt": {
            "post": {
                "tags": ["auth"],
                "summary": "Emite o token de sessão no cookie",
                "parameters": [{"in": "body", "name": "session", "required": true, "schema": {"$ref": "#/definitions/domain.SessionRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "E-mail ausente", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}}
            }
        },
        "/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Limpa o cookie de sessão",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/users": {
            "get": {
                "tags": ["users"],
                "summary": "Busca um usuário pelo e-mail",
                "parameters": [{"in": "query", "name": "email", "type": "string", "required": true}],
                "responses": {"200": {"description": "Usuário ou null", "schema": {"$ref": "#/definitions/domain.User"}}, "401": {"description": "Sem token"}}
            },
            "post": {
                "tags": ["users"],
                "summary": "Registra um usuário (idempotente por e-mail)",
                "parameters": [{"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/domain.UserRegistration"}}],
                "responses": {"200": {"description": "Usuário já existe"}, "201": {"description": "Criado"}}
            }
        },
        "/users/role": {
            "get": {
                "tags": ["users"],
                "summary": "Retorna o papel de um usuário",
                "parameters": [{"in": "query", "name": "email", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "User not found"}}
            }
        },
        "/users/search": {
            "get": {
                "tags": ["users"],
                "summary": "Busca usuários por nome ou e-mail (admin)",
                "parameters": [{"in": "query", "name": "keyword", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}}, "403": {"description": "Acesso negado"}}
            }
        },
        "/users/manageUsers": {
            "get": {
                "tags": ["users"],
                "summary": "Lista usuários paginados para administração (admin)",
                "parameters": [
                    {"in": "query", "name": "keyword", "type": "string"},
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserPage"}}, "400": {"description": "Invalid page"}, "403": {"description": "Access Denied: Role restricted"}}
            }
        },
        "/users/update-role/{id}": {
            "patch": {
                "tags": ["users"],
                "summary": "Altera o papel de um usuário (admin)",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "role", "required": true, "schema": {"$ref": "#/definitions/domain.RoleUpdate"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid or missing role."}, "404": {"description": "Não encontrado"}}
            }
        },
        "/upcoming-meals": {
            "get": {
                "tags": ["upcoming-meals"],
                "summary": "Lista as refeições candidatas",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.UpcomingMeal"}}}}
            },
            "post": {
                "tags": ["upcoming-meals"],
                "summary": "Submete uma refeição candidata",
                "parameters": [{"in": "body", "name": "meal", "required": true, "schema": {"$ref": "#/definitions/domain.MealSubmission"}}],
                "responses": {"201": {"description": "Criado"}, "400": {"description": "Missing required fields"}}
            }
        },
        "/upcoming-meals/sorted": {
            "get": {
                "tags": ["upcoming-meals"],
                "summary": "Lista candidatas por curtidas (admin)",
                "parameters": [
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UpcomingMealPage"}}}
            }
        },
        "/upcoming-meals/like/{id}": {
            "patch": {
                "tags": ["upcoming-meals"],
                "summary": "Registra um voto numa candidata",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "E-mail ausente ou voto duplicado"}, "404": {"description": "Não encontrada"}}
            }
        },
        "/upcoming-meals/{id}": {
            "delete": {
                "tags": ["upcoming-meals"],
                "summary": "Remove uma candidata (admin)",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/meals": {
            "get": {
                "tags": ["meals"],
                "summary": "Lista o catálogo com filtros",
                "parameters": [
                    {"in": "query", "name": "search", "type": "string"},
                    {"in": "query", "name": "category", "type": "string"},
                    {"in": "query", "name": "priceRange", "type": "string"},
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MealPage"}}}
            },
            "post": {
                "tags": ["meals"],
                "summary": "Publica uma refeição diretamente (admin)",
                "parameters": [{"in": "body", "name": "meal", "required": true, "schema": {"$ref": "#/definitions/domain.MealSubmission"}}],
                "responses": {"201": {"description": "Criado", "schema": {"$ref": "#/definitions/domain.Meal"}}}
            }
        },
        "/meals/{id}": {
            "get": {
                "tags": ["meals"],
                "summary": "Busca uma refeição publicada",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Meal"}}, "404": {"description": "Meal not found"}}
            },
            "delete": {
                "tags": ["meals"],
                "summary": "Remove uma refeição do catálogo (admin)",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "{deletedCount}"}}
            }
        },
        "/meals/distributor/{email}": {
            "get": {
                "tags": ["meals"],
                "summary": "Lista as refeições de um distribuidor (admin)",
                "parameters": [{"in": "path", "name": "email", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Meal"}}}}
            }
        },
        "/meals/sorted": {
            "get": {
                "tags": ["meals"],
                "summary": "Catálogo ordenado por curtidas e avaliações (admin)",
                "parameters": [
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MealSortedPage"}}, "400": {"description": "Invalid page"}}
            }
        },
        "/meals/update/{id}": {
            "patch": {
                "tags": ["meals"],
                "summary": "Atualiza campos de uma refeição (admin)",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "meal", "required": true, "schema": {"$ref": "#/definitions/domain.MealSubmission"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "No fields to update"}, "404": {"description": "Meal not found or already updated"}}
            }
        },
        "/meals/{id}/like": {
            "patch": {
                "tags": ["meals"],
                "summary": "Curte uma refeição publicada",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Meal not found or already liked"}}
            }
        },
        "/meals/{id}/reviews": {
            "get": {
                "tags": ["reviews"],
                "summary": "Lista as avaliações de uma refeição",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Review"}}}}
            },
            "post": {
                "tags": ["reviews"],
                "summary": "Avalia uma refeição publicada",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "review", "required": true, "schema": {"$ref": "#/definitions/domain.ReviewSubmission"}}
                ],
                "responses": {"201": {"description": "Criado", "schema": {"$ref": "#/definitions/domain.Review"}}, "400": {"description": "Missing review fields"}, "403": {"description": "E-mail diferente do token"}, "404": {"description": "Meal not found"}}
            }
        },
        "/reviews": {
            "get": {
                "tags": ["reviews"],
                "summary": "Lista todas as avaliações (admin)",
                "parameters": [
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ReviewPage"}}}
            }
        },
        "/reviews/user": {
            "get": {
                "tags": ["reviews"],
                "summary": "Lista as avaliações do usuário logado",
                "parameters": [
                    {"in": "query", "name": "email", "type": "string"},
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ReviewPage"}}, "403": {"description": "E-mail de outro usuário"}}
            }
        },
        "/reviews/{id}": {
            "patch": {
                "tags": ["reviews"],
                "summary": "Edita comentário/nota de uma avaliação (dono ou admin)",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "review", "required": true, "schema": {"$ref": "#/definitions/domain.ReviewPatch"}}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Não é o dono"}, "404": {"description": "Review not found or no change made."}}
            },
            "delete": {
                "tags": ["reviews"],
                "summary": "Remove uma avaliação (dono ou admin)",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Não é o dono"}, "404": {"description": "Review not found"}}
            }
        },
        "/meal-requests": {
            "get": {
                "tags": ["meal-requests"],
                "summary": "Indica se o usuário já pediu a refeição",
                "parameters": [
                    {"in": "query", "name": "mealId", "type": "string", "required": true},
                    {"in": "query", "name": "userEmail", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "{exists}"}, "400": {"description": "Parâmetros ausentes"}}
            },
            "post": {
                "tags": ["meal-requests"],
                "summary": "Pede uma refeição do catálogo",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.MealRequestSubmission"}}],
                "responses": {"201": {"description": "Criado", "schema": {"$ref": "#/definitions/domain.MealRequest"}}, "400": {"description": "Missing required fields / Already requested"}, "404": {"description": "Meal not found"}}
            }
        },
        "/meal-requests/user": {
            "get": {
                "tags": ["meal-requests"],
                "summary": "Lista os pedidos do usuário logado",
                "parameters": [
                    {"in": "query", "name": "email", "type": "string"},
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {"200": {"description": "{total, page, limit, totalPages, requests}"}}
            }
        },
        "/meal-requests/all": {
            "get": {
                "tags": ["meal-requests"],
                "summary": "Lista todos os pedidos (admin)",
                "parameters": [
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MealRequestPage"}}}
            }
        },
        "/meal-requests/search": {
            "get": {
                "tags": ["meal-requests"],
                "summary": "Busca pedidos por e-mail (admin)",
                "parameters": [
                    {"in": "query", "name": "keyword", "type": "string", "required": true},
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MealRequestPage"}}}
            }
        },
        "/meal-requests/serve/{id}": {
            "patch": {
                "tags": ["meal-requests"],
                "summary": "Marca o pedido como on serving (admin)",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Meal request not found"}}
            }
        },
        "/meal-requests/{id}": {
            "delete": {
                "tags": ["meal-requests"],
                "summary": "Cancela um pedido (dono ou admin)",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Não é o dono"}, "404": {"description": "Meal request not found"}}
            }
        }
    },
    "definitions": {
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "code": {"type": "integer"},
                "category": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "domain.SessionRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}}
        },
        "domain.UserRegistration": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "badge": {"type": "string"}}
        },
        "domain.RoleUpdate": {
            "type": "object",
            "properties": {"role": {"type": "string", "enum": ["admin", "user"]}}
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "badge": {"type": "string"}
            }
        },
        "domain.MealSubmission": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "category": {"type": "string"},
                "cuisine": {"type": "string"},
                "image": {"type": "string"},
                "ingredients": {"type": "array", "items": {"type": "string"}},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "prep_time": {"type": "string"},
                "distributor_name": {"type": "string"},
                "distributor_email": {"type": "string"}
            }
        },
        "domain.UpcomingMeal": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "string"},
                "likes": {"type": "integer"},
                "liked_by": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.UpcomingMealPage": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.UpcomingMeal"}}
            }
        },
        "domain.Meal": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "category": {"type": "string"},
                "price": {"type": "number"},
                "likes": {"type": "integer"},
                "rating": {"type": "number"}
            }
        },
        "domain.MealPage": {
            "type": "object",
            "properties": {
                "meals": {"type": "array", "items": {"$ref": "#/definitions/domain.Meal"}},
                "hasMore": {"type": "boolean"}
            }
        },
        "domain.MealSortedPage": {
            "type": "object",
            "properties": {
                "totalCount": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Meal"}}
            }
        },
        "domain.UserPage": {
            "type": "object",
            "properties": {
                "users": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}},
                "total": {"type": "integer"}
            }
        },
        "domain.Review": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "mealId": {"type": "string"},
                "mealTitle": {"type": "string"},
                "user": {"type": "string"},
                "email": {"type": "string"},
                "comment": {"type": "string"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "posted_at": {"type": "string"}
            }
        },
        "domain.ReviewSubmission": {
            "type": "object",
            "properties": {
                "mealTitle": {"type": "string"},
                "user": {"type": "string"},
                "email": {"type": "string"},
                "comment": {"type": "string"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5}
            }
        },
        "domain.ReviewPatch": {
            "type": "object",
            "properties": {
                "comment": {"type": "string"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5}
            }
        },
        "domain.ReviewPage": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "reviews": {"type": "array", "items": {"$ref": "#/definitions/domain.Review"}}
            }
        },
        "domain.MealRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "mealId": {"type": "string"},
                "mealTitle": {"type": "string"},
                "userEmail": {"type": "string"},
                "userName": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "on serving"]},
                "requested_at": {"type": "string"}
            }
        },
        "domain.MealRequestSubmission": {
            "type": "object",
            "properties": {
                "mealId": {"type": "string"},
                "mealTitle": {"type": "string"},
                "userEmail": {"type": "string"},
                "userName": {"type": "string"}
            }
        },
        "domain.MealRequestPage": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.MealRequest"}}
            }
        }
    }
}`

// SwaggerInfo contém as informações exportadas da especificação.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "HallPoint API",
	Description:      "API de refeições do refeitório: sessão, usuários, candidatas, catálogo, avaliações e pedidos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
