package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"lapor/internal/auth"
	"lapor/internal/engine"
	"lapor/internal/model"
)

// ActorResolver turns the JWT claims of a request into the acting
// user from the engine snapshot.
type ActorResolver struct {
	engine *engine.Engine
}

// NewActorResolver creates a resolver over the engine.
func NewActorResolver(eng *engine.Engine) *ActorResolver {
	return &ActorResolver{engine: eng}
}

// FromContext resolves the authenticated user for the request.
func (r *ActorResolver) FromContext(c echo.Context) (*model.User, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	user, ok := r.engine.UserByID(claims.UserID)
	if !ok || !user.IsActive {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown or inactive user")
	}
	return &user, nil
}
