package handler

import (
	"github.com/Ujjwal3492/Fitness/prometheus"
	"github.com/labstack/echo/v4"
)

// Handlers groups everything RegisterRoutes mounts
type Handlers struct {
	Trainers     *TrainerHandler
	Testimonials *TestimonialHandler
	Webhook      *WebhookHandler
	Health       *HealthHandler
	Metrics      *prometheus.Metrics
}

// RegisterRoutes mounts the public API on e
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(h.Metrics.Handler()))

	api := e.Group("/api/v1")

	trainers := api.Group("/Trainer")
	trainers.POST("/create", h.Trainers.CreateTrainer)
	trainers.GET("", h.Trainers.ListTrainers)
	trainers.GET("/", h.Trainers.ListTrainers)
	trainers.GET("/:id", h.Trainers.GetTrainer)
	trainers.PUT("/:id", h.Trainers.UpdateTrainer)
	trainers.DELETE("/:id", h.Trainers.DeleteTrainer)

	testimonials := api.Group("/testimonials")
	testimonials.POST("/create", h.Testimonials.CreateTestimonial)
	testimonials.GET("", h.Testimonials.ListTestimonials)
	testimonials.GET("/", h.Testimonials.ListTestimonials)
	testimonials.GET("/:id", h.Testimonials.GetTestimonial)
	testimonials.PUT("/:id", h.Testimonials.UpdateTestimonial)
	testimonials.DELETE("/:id", h.Testimonials.DeleteTestimonial)

	e.GET("/webhook", h.Webhook.Verify)
	e.POST("/webhook", h.Webhook.Receive)
}
