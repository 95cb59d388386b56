package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterDocs registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterDocs(r *gin.Engine) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>MADR — Swagger</title>
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

// Minimal OpenAPI document describing the MADR endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "madr", "version": "v0.1.0" },
  "paths": {
    "/accounts": {
      "post": { "summary": "Register a new account", "responses": { "201": { "description": "account created" }, "409": { "description": "email already registered" } } }
    },
    "/auth/token": {
      "post": { "summary": "Password login, returns a bearer token", "responses": { "200": { "description": "access token" }, "400": { "description": "incorrect email or password" } } }
    },
    "/auth/refresh": {
      "post": { "summary": "Exchange a valid token for a fresh one", "responses": { "200": { "description": "access token" }, "401": { "description": "invalid token" } } }
    },
    "/accounts/me": {
      "get": { "summary": "Authenticated account info", "responses": { "200": { "description": "account" }, "401": { "description": "invalid token" } } }
    },
    "/accounts/{id}": {
      "put": { "summary": "Update own account", "responses": { "200": { "description": "account" }, "403": { "description": "not the owner" } } },
      "delete": { "summary": "Delete own account", "responses": { "200": { "description": "deleted" }, "403": { "description": "not the owner" } } }
    },
    "/authors": {
      "get": { "summary": "List authors (name filter, limit/offset)", "responses": { "200": { "description": "authors" } } },
      "post": { "summary": "Add an author", "responses": { "201": { "description": "author" }, "409": { "description": "duplicate name" } } }
    },
    "/authors/{id}": {
      "get": { "summary": "Get one author", "responses": { "200": { "description": "author" }, "304": { "description": "not modified" }, "404": { "description": "unknown author" } } },
      "patch": { "summary": "Partially update an author", "responses": { "200": { "description": "author" } } },
      "delete": { "summary": "Remove an author", "responses": { "200": { "description": "deleted" } } }
    },
    "/books": {
      "get": { "summary": "List books (name filter, limit/offset)", "responses": { "200": { "description": "books" } } },
      "post": { "summary": "Add a book with author links", "responses": { "201": { "description": "book" }, "404": { "description": "unknown author link" } } }
    },
    "/books/{id}": {
      "get": { "summary": "Get one book", "responses": { "200": { "description": "book" }, "304": { "description": "not modified" }, "404": { "description": "unknown book" } } },
      "patch": { "summary": "Partially update a book", "responses": { "200": { "description": "book" } } },
      "delete": { "summary": "Remove a book", "responses": { "200": { "description": "deleted" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
