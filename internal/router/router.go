package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"lapor/internal/auth"
	"lapor/internal/config"
	"lapor/internal/handler"
	"lapor/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	reportHandler *handler.ReportHandler,
	userHandler *handler.UserHandler,
	notificationHandler *handler.NotificationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Report routes
	secured.GET("/reports", reportHandler.List)
	secured.GET("/reports/stats", reportHandler.Stats)
	secured.GET("/reports/:id", reportHandler.Get)
	secured.POST("/reports", reportHandler.Create)
	secured.PUT("/reports/:id/review", reportHandler.Review, RequireRole(model.RoleAdmin))

	// Notification routes
	secured.GET("/notifications", notificationHandler.Unread)
	secured.POST("/notifications/deliver", notificationHandler.Deliver)
	secured.PUT("/notifications/:id/read", notificationHandler.Dismiss)

	// User management routes
	secured.GET("/users", userHandler.List)
	secured.GET("/users/:id", userHandler.Get)
	secured.PUT("/users/:id", userHandler.Update)
	secured.POST("/users", userHandler.Create, RequireRole(model.RoleAdmin))
	secured.DELETE("/users/:id", userHandler.Delete, RequireRole(model.RoleAdmin))
	secured.DELETE("/users/:id/permanent", userHandler.DeletePermanent, RequireRole(model.RoleAdmin))
}

// RequireRole rejects requests whose token claims carry none of the
// allowed roles.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
