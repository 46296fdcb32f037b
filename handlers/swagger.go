package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>simpleapi — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the public endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "simpleapi", "version": "v1" },
  "paths": {
    "/users": {
      "post": {
        "summary": "Register a new user",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"userName":{"type":"string"},"email":{"type":"string"},"password":{"type":"string"}},"required":["userName","email","password"]}}}},
        "responses": { "200": { "description": "user created" }, "400": { "description": "registration rejected" } }
      }
    },
    "/users/login": {
      "post": {
        "summary": "Login and obtain access/refresh tokens",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}},"required":["email","password"]}}}},
        "responses": { "200": { "description": "tokens returned" }, "400": { "description": "invalid credentials" } }
      }
    },
    "/test": {
      "get": { "summary": "API smoke test", "responses": { "200": { "description": "success flag" } } }
    },
    "/products": {
      "get": { "summary": "List products", "parameters": [{"name":"page","in":"query","schema":{"type":"integer"}},{"name":"pageSize","in":"query","schema":{"type":"integer"}},{"name":"query","in":"query","schema":{"type":"string"}}], "responses": { "200": { "description": "one page of products" } } },
      "post": { "summary": "Create a product (bearer token required)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"description":{"type":"string"},"price":{"type":"number"}},"required":["name"]}}}}, "responses": { "201": { "description": "created" }, "401": { "description": "missing or invalid token" } } }
    },
    "/products/{id}": {
      "get": { "summary": "Get a product", "responses": { "200": { "description": "product" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update a product (bearer token required)", "responses": { "204": { "description": "updated" }, "401": { "description": "missing or invalid token" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a product (bearer token required)", "responses": { "204": { "description": "deleted" }, "401": { "description": "missing or invalid token" }, "404": { "description": "not found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
