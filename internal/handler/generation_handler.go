package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/taellinglin/LingTreasury/internal/errors"
	"github.com/taellinglin/LingTreasury/internal/service"
)

const taskHistoryLimit = 10

// GenerationHandler handles the generation trigger and the audit trail.
type GenerationHandler struct {
	generationService service.GenerationService
	userService       service.UserService
}

// NewGenerationHandler creates a new generation handler.
func NewGenerationHandler(generationService service.GenerationService, userService service.UserService) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		userService:       userService,
	}
}

// Trigger godoc
// @Summary Start a banknote generation attempt
// @Description Returns immediately; the attempt runs in the background and
// @Description its progress is visible in the task history.
// @Tags generation
// @Produce json
// @Success 202 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /generate [post]
func (h *GenerationHandler) Trigger(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.userService.FindByID(c.Request().Context(), userID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.generationService.Trigger(c.Request().Context(), user); err != nil {
		switch err {
		case apperrors.ErrGenerationInFlight:
			return echo.NewHTTPError(http.StatusConflict, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "GENERATION_IN_FLIGHT",
			})
		case apperrors.ErrGenerationCooldown:
			days := h.generationService.DaysUntilNext(user)
			return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.ErrorResponse{
				Error: fmt.Sprintf("You can generate money again in %d days", days),
				Code:  "GENERATION_COOLDOWN",
			})
		}
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"message": "Banknote generation started! This may take a few moments.",
	})
}

// ListTasks godoc
// @Summary The caller's ten most recent generation attempts, newest first
// @Tags generation
// @Produce json
// @Success 200 {array} model.GenerationTask
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /generations [get]
func (h *GenerationHandler) ListTasks(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	tasks, err := h.generationService.RecentTasks(c.Request().Context(), userID, taskHistoryLimit)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tasks)
}
