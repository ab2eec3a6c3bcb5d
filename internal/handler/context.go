package handler

import (
	"net/http"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// currentUser extracts the authenticated user's id and username from the
// JWT the echo-jwt middleware stored on the context.
func currentUser(c echo.Context) (uint, string, error) {
	token, ok := c.Get("user").(*jwtv5.Token)
	if !ok {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	username, _ := claims["username"].(string)
	return uint(id), username, nil
}
