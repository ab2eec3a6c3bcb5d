package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taellinglin/LingTreasury/internal/errors"
	"github.com/taellinglin/LingTreasury/internal/service"
)

// UserHandler handles gallery, profile, bio, and wallet endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateBioRequest carries the raw biography text. BBCode is allowed; the
// stored version is sanitized.
type UpdateBioRequest struct {
	Bio string `json:"bio"`
}

// ListUsers godoc
// @Summary Gallery index: all users ordered by username
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// GetProfile godoc
// @Summary Profile: user, recent generation attempts, and banknotes
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} service.Profile
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	// Owners see their private notes; identify the viewer when a token is
	// present, otherwise treat as anonymous.
	var viewerID uint
	if id, _, err := currentUser(c); err == nil {
		viewerID = id
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), c.Param("username"), viewerID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateBio godoc
// @Summary Update the caller's biography
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateBioRequest true "Raw bio text"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me/bio [put]
func (h *UserHandler) UpdateBio(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req UpdateBioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	clean, err := h.userService.UpdateBio(c.Request().Context(), userID, req.Bio)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "bio updated successfully",
		"bio":     clean,
	})
}

// Wallet godoc
// @Summary The caller's wallet: newest front/back artifact per denomination
// @Tags users
// @Produce json
// @Success 200 {array} service.WalletDenomination
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me/wallet [get]
func (h *UserHandler) Wallet(c echo.Context) error {
	_, username, err := currentUser(c)
	if err != nil {
		return err
	}

	wallet, err := h.userService.Wallet(c.Request().Context(), username)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if len(wallet) == 0 {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message":       "No banknotes found in your wallet",
			"denominations": []service.WalletDenomination{},
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"denominations": wallet,
	})
}
