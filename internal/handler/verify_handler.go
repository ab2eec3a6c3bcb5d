package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taellinglin/LingTreasury/internal/errors"
	"github.com/taellinglin/LingTreasury/internal/service"
)

// VerifyHandler handles serial-number verification endpoints.
type VerifyHandler struct {
	verifyService service.VerifyService
}

// NewVerifyHandler creates a new verify handler.
func NewVerifyHandler(verifyService service.VerifyService) *VerifyHandler {
	return &VerifyHandler{verifyService: verifyService}
}

// VerifyRequest carries a user-submitted serial string.
type VerifyRequest struct {
	Serial string `json:"serial" validate:"required"`
}

// VerifyBySerial godoc
// @Summary Verify a serial number passed in the path
// @Tags verify
// @Produce json
// @Param serial path string true "Serial number"
// @Success 200 {object} service.VerifyResult
// @Router /verify/{serial} [get]
func (h *VerifyHandler) VerifyBySerial(c echo.Context) error {
	result, err := h.verifyService.Verify(c.Request().Context(), c.Param("serial"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}

// Verify godoc
// @Summary Verify a serial number submitted in the body
// @Tags verify
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Serial to verify"
// @Success 200 {object} service.VerifyResult
// @Failure 400 {object} errors.ErrorResponse
// @Router /verify [post]
func (h *VerifyHandler) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.verifyService.Verify(c.Request().Context(), strings.TrimSpace(req.Serial))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}
