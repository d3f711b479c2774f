package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupAuthRoutes injects the identity related api endpoints.
func (api *APIHandler) SetupAuthRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))
	router.GET("/health", m.public(api.Health))
	router.POST("/signup", m.public(api.Signup))
	router.POST("/login", m.public(api.Login))
	return router
}
