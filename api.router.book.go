package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupBookRoutes injects the book related api endpoints. Reads stay
// public, every mutating operation requires a valid bearer credential.
func (api *APIHandler) SetupBookRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/v1/books", m.public(api.GetAllBooks))
	router.GET("/v1/books/:id", m.public(api.GetOneBook))
	router.POST("/v1/books", m.protected(api.CreateBook))
	router.PUT("/v1/books/:id", m.protected(api.UpdateBook))
	router.DELETE("/v1/books/:id", m.protected(api.DeleteOneBook))
	return router
}
