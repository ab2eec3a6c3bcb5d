package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taellinglin/LingTreasury/internal/errors"
	"github.com/taellinglin/LingTreasury/internal/service"
)

// BanknoteHandler handles owner-facing banknote endpoints.
type BanknoteHandler struct {
	banknoteService service.BanknoteService
}

// NewBanknoteHandler creates a new banknote handler.
func NewBanknoteHandler(banknoteService service.BanknoteService) *BanknoteHandler {
	return &BanknoteHandler{banknoteService: banknoteService}
}

// ToggleVisibility godoc
// @Summary Flip a banknote between public and private
// @Tags banknotes
// @Produce json
// @Param id path int true "Banknote ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /banknotes/{id}/toggle [post]
func (h *BanknoteHandler) ToggleVisibility(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	noteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid banknote id")
	}

	note, err := h.banknoteService.ToggleVisibility(c.Request().Context(), uint(noteID), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	visibility := "private"
	if note.IsPublic {
		visibility = "public"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Banknote visibility set to " + visibility,
		"banknote": note,
	})
}
