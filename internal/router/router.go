package router

import (
	stderrors "errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"sweetshop/internal/auth"
	"sweetshop/internal/config"
	"sweetshop/internal/errors"
	"sweetshop/internal/handler"
	"sweetshop/internal/middleware"
	"sweetshop/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	sweetHandler *handler.SweetHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.HTTPErrorHandler = errorHandler

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "OK",
			"message": "Sweet Shop API is running",
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// All sweet routes require an authenticated user
	sweets := api.Group("/sweets",
		echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(cfg.JWTSecret),
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(auth.Claims)
			},
			ErrorHandler: func(c echo.Context, err error) error {
				if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
					return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			},
		}),
		middleware.LoadUser(userRepo),
	)

	sweets.GET("", sweetHandler.List)
	sweets.GET("/search", sweetHandler.Search)
	sweets.POST("", sweetHandler.Create)
	sweets.GET("/:id", sweetHandler.GetByID)
	sweets.PUT("/:id", sweetHandler.Update)
	sweets.POST("/:id/purchase", sweetHandler.Purchase)

	// Admin only routes
	sweets.POST("/:id/restock", sweetHandler.Restock, middleware.RequireAdmin)
	sweets.DELETE("/:id", sweetHandler.Delete, middleware.RequireAdmin)
}

// errorHandler renders every error as {"error": message}. Unmatched routes
// get a distinct message; anything uncategorized is logged and collapsed to
// a generic 500 so internals never leak.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Something went wrong!"

	var he *echo.HTTPError
	if stderrors.As(err, &he) {
		status = he.Code
		switch {
		case err == echo.ErrNotFound, err == echo.ErrMethodNotAllowed:
			status = http.StatusNotFound
			message = "Route not found"
		default:
			if msg, ok := he.Message.(string); ok {
				message = msg
			}
		}
	}

	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("request failed")
		message = "Something went wrong!"
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, errors.ErrorResponse{Error: message})
}
