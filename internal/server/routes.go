package server

import (
	"github.com/nfrund/signup/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	home := s.handlers.home
	reg := s.handlers.registration
	rateLimiter := middleware.RateLimiter(middleware.DefaultSubmitsPerMinute)
	openLimiter := middleware.RateLimiter(middleware.DefaultFormOpensPerMinute)

	s.E.GET("/", home.HomeGet)
	s.E.GET("/health", home.HealthGet)

	s.E.GET("/register", reg.RegisterGet, openLimiter)
	s.E.PUT("/register/:id/fields/:field", reg.FieldPut)
	s.E.POST("/register/:id/fields/:field/blur", reg.FieldBlur)
	s.E.POST("/register/:id/visibility/:field", reg.VisibilityPost)
	s.E.POST("/register/:id", reg.SubmitPost, rateLimiter)

	s.E.POST("/api/registrations", reg.RegisterAPI, rateLimiter)
}
