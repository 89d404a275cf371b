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

// ProfilePictureField is the multipart field carrying a trainer picture
const ProfilePictureField = "profilePicture"

// TrainerReader is the read side of the trainer storage
type TrainerReader interface {
	FindByID(ctx context.Context, id string) (*model.Trainer, error)
	List(ctx context.Context) ([]model.Trainer, error)
}

// TrainerHandler serves the trainer admin API
type TrainerHandler struct {
	reader    TrainerReader
	lifecycle *lifecycle.Trainers
	staging   *mediastore.Staging
	lists     *listCache
}

// NewTrainerHandler creates the trainer handler
func NewTrainerHandler(reader TrainerReader, lc *lifecycle.Trainers, staging *mediastore.Staging, c cache.Cache, metrics *prometheus.Metrics) *TrainerHandler {
	return &TrainerHandler{
		reader:    reader,
		lifecycle: lc,
		staging:   staging,
		lists:     newListCache(c, cache.KeyTrainers, metrics),
	}
}

// CreateTrainer handles creating a new trainer
func (h *TrainerHandler) CreateTrainer(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new trainer")

	in, err := h.input(c)
	if err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	trainer, err := h.lifecycle.Create(c.Request().Context(), *in)
	if err != nil {
		return lifecycleFailure(c, log, err)
	}

	log.Info("Trainer created successfully", zap.String("trainer_id", trainer.ID))
	return c.JSON(http.StatusCreated, trainer)
}

// ListTrainers handles retrieving all trainers
func (h *TrainerHandler) ListTrainers(c echo.Context) error {
	log := logger.FromContext(c)

	if body, ok := h.lists.get(c.Request().Context()); ok {
		return c.JSONBlob(http.StatusOK, body)
	}

	trainers, err := h.reader.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to list trainers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve trainers",
		})
	}

	log.Info("Trainers retrieved successfully", zap.Int("count", len(trainers)))
	return h.lists.respond(c, trainers)
}

// GetTrainer handles retrieving a single trainer by ID
func (h *TrainerHandler) GetTrainer(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	if !model.IsValidID(id) {
		return invalidID(c, "trainer")
	}

	trainer, err := h.reader.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Trainer not found.",
			})
		}
		log.Error("Failed to get trainer", zap.String("trainer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve trainer",
		})
	}

	return c.JSON(http.StatusOK, trainer)
}

// UpdateTrainer handles partial trainer updates with an optional new picture
func (h *TrainerHandler) UpdateTrainer(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	if !model.IsValidID(id) {
		return invalidID(c, "trainer")
	}
	log.Info("Updating trainer", zap.String("trainer_id", id))

	in, err := h.input(c)
	if err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	trainer, err := h.lifecycle.Update(c.Request().Context(), id, *in)
	if err != nil {
		return lifecycleFailure(c, log, err)
	}

	log.Info("Trainer updated successfully", zap.String("trainer_id", id))
	return c.JSON(http.StatusOK, trainer)
}

// DeleteTrainer handles deleting a trainer and its picture
func (h *TrainerHandler) DeleteTrainer(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	if !model.IsValidID(id) {
		return invalidID(c, "trainer")
	}

	if err := h.lifecycle.Delete(c.Request().Context(), id); err != nil {
		return lifecycleFailure(c, log, err)
	}

	log.Info("Trainer deleted successfully", zap.String("trainer_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Trainer deleted successfully.",
	})
}

func (h *TrainerHandler) input(c echo.Context) (*lifecycle.TrainerInput, error) {
	f, err := parseForm(c)
	if err != nil {
		return nil, err
	}

	staged, err := stageUpload(c, h.staging, ProfilePictureField)
	if err != nil {
		return nil, err
	}

	return &lifecycle.TrainerInput{
		FullName:        f.str("fullName"),
		Location:        f.str("location"),
		Experience:      f.str("experience"),
		Philosophy:      f.str("philosophy"),
		Specializations: f.list("specializations"),
		Qualifications:  f.list("qualifications"),
		CorePrinciples:  f.list("corePrinciples"),
		Services:        f.list("services"),
		StagedFile:      staged,
	}, nil
}
