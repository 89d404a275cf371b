package handler

import (
	"errors"
	"net/http"

	"github.com/Ujjwal3492/Fitness/internal/lifecycle"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// lifecycleFailure answers a failed lifecycle operation with the status
// matching its kind
func lifecycleFailure(c echo.Context, log *zap.Logger, err error) error {
	var lerr *lifecycle.Error
	if !errors.As(err, &lerr) {
		log.Error("Unexpected error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
		})
	}

	switch lerr.Kind {
	case lifecycle.KindValidation:
		log.Warn("Validation failed", zap.Any("fields", lerr.Fields))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  lerr.Message,
			"errors": lerr.Fields,
		})
	case lifecycle.KindNotFound:
		log.Info(lerr.Message)
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": lerr.Message,
		})
	default:
		log.Error("Operation failed",
			zap.Stringer("kind", lerr.Kind),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": lerr.Message,
		})
	}
}

func invalidID(c echo.Context, entity string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error": "Invalid " + entity + " ID format.",
	})
}
