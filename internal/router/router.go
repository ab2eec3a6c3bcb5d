package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/taellinglin/LingTreasury/internal/config"
	"github.com/taellinglin/LingTreasury/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	generationHandler *handler.GenerationHandler,
	banknoteHandler *handler.BanknoteHandler,
	verifyHandler *handler.VerifyHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Generated artifacts (SVG/PNG/PDF trees) are served straight from disk.
	e.Static("/images", cfg.ImagesRoot)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/2fa/verify", authHandler.VerifySetup)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/users", userHandler.ListUsers)
	api.GET("/verify/:serial", verifyHandler.VerifyBySerial)
	api.POST("/verify", verifyHandler.Verify)

	// Profiles are public but recognize an authenticated owner when a token
	// is supplied, so the JWT middleware runs in optional mode here.
	api.GET("/users/:username", userHandler.GetProfile, echojwt.WithConfig(echojwt.Config{
		SigningKey:             []byte(cfg.JWTSecret),
		TokenLookup:            "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil // anonymous viewer
		},
	}))

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
	}))

	secured.POST("/generate", generationHandler.Trigger)
	secured.GET("/generations", generationHandler.ListTasks)
	secured.PUT("/me/bio", userHandler.UpdateBio)
	secured.GET("/me/wallet", userHandler.Wallet)
	secured.POST("/banknotes/:id/toggle", banknoteHandler.ToggleVisibility)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
