package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Ujjwal3492/Fitness/internal/lifecycle"
	"github.com/Ujjwal3492/Fitness/internal/model"
	"github.com/Ujjwal3492/Fitness/internal/repository"
	"github.com/Ujjwal3492/Fitness/pkg/cache"
	"github.com/Ujjwal3492/Fitness/pkg/logger"
	"github.com/Ujjwal3492/Fitness/pkg/mediastore"
	"github.com/Ujjwal3492/Fitness/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TestimonialVideoField is the multipart field carrying a testimonial video
const TestimonialVideoField = "testimonialVideo"

// TestimonialReader is the read side of the testimonial storage
type TestimonialReader interface {
	FindByID(ctx context.Context, id string) (*model.Testimonial, error)
	List(ctx context.Context) ([]model.Testimonial, error)
}

// TestimonialHandler serves the testimonial admin API
type TestimonialHandler struct {
	reader    TestimonialReader
	lifecycle *lifecycle.Testimonials
	staging   *mediastore.Staging
	lists     *listCache
}

// NewTestimonialHandler creates the testimonial handler
func NewTestimonialHandler(reader TestimonialReader, lc *lifecycle.Testimonials, staging *mediastore.Staging, c cache.Cache, metrics *prometheus.Metrics) *TestimonialHandler {
	return &TestimonialHandler{
		reader:    reader,
		lifecycle: lc,
		staging:   staging,
		lists:     newListCache(c, cache.KeyTestimonials, metrics),
	}
}

// CreateTestimonial handles creating a testimonial from an uploaded video
func (h *TestimonialHandler) CreateTestimonial(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new testimonial")

	f, staged, err := h.parse(c)
	if err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	testimonial, err := h.lifecycle.Create(c.Request().Context(), lifecycle.TestimonialInput{
		Name:        f.str("name"),
		Designation: f.str("designation"),
		StagedFile:  staged,
	})
	if err != nil {
		return lifecycleFailure(c, log, err)
	}

	log.Info("Testimonial created successfully", zap.String("testimonial_id", testimonial.ID))
	return c.JSON(http.StatusCreated, testimonial)
}

// ListTestimonials handles retrieving all testimonials, newest first
func (h *TestimonialHandler) ListTestimonials(c echo.Context) error {
	log := logger.FromContext(c)

	if body, ok := h.lists.get(c.Request().Context()); ok {
		return c.JSONBlob(http.StatusOK, body)
	}

	testimonials, err := h.reader.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to list testimonials", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Server error fetching testimonials.",
		})
	}

	log.Info("Testimonials retrieved successfully", zap.Int("count", len(testimonials)))
	return h.lists.respond(c, testimonials)
}

// GetTestimonial handles retrieving a single testimonial by ID
func (h *TestimonialHandler) GetTestimonial(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	if !model.IsValidID(id) {
		return invalidID(c, "testimonial")
	}

	testimonial, err := h.reader.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Testimonial not found.",
			})
		}
		log.Error("Failed to get testimonial", zap.String("testimonial_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Server error fetching testimonial.",
		})
	}

	return c.JSON(http.StatusOK, testimonial)
}

// UpdateTestimonial handles partial updates with an optional new video.
// Blank text fields are ignored.
func (h *TestimonialHandler) UpdateTestimonial(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	if !model.IsValidID(id) {
		return invalidID(c, "testimonial")
	}
	log.Info("Updating testimonial", zap.String("testimonial_id", id))

	f, staged, err := h.parse(c)
	if err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	testimonial, err := h.lifecycle.Update(c.Request().Context(), id, lifecycle.TestimonialInput{
		Name:        f.nonEmpty("name"),
		Designation: f.nonEmpty("designation"),
		StagedFile:  staged,
	})
	if err != nil {
		return lifecycleFailure(c, log, err)
	}

	log.Info("Testimonial updated successfully", zap.String("testimonial_id", id))
	return c.JSON(http.StatusOK, testimonial)
}

// DeleteTestimonial handles deleting a testimonial and its video
func (h *TestimonialHandler) DeleteTestimonial(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	if !model.IsValidID(id) {
		return invalidID(c, "testimonial")
	}

	if err := h.lifecycle.Delete(c.Request().Context(), id); err != nil {
		return lifecycleFailure(c, log, err)
	}

	log.Info("Testimonial deleted successfully", zap.String("testimonial_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Testimonial deleted successfully.",
	})
}

func (h *TestimonialHandler) parse(c echo.Context) (*form, string, error) {
	f, err := parseForm(c)
	if err != nil {
		return nil, "", err
	}
	staged, err := stageUpload(c, h.staging, TestimonialVideoField)
	if err != nil {
		return nil, "", err
	}
	return f, staged, nil
}
