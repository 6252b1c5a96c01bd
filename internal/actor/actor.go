package actor

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/swiftcart/fulfillment/internal/models"
	"github.com/swiftcart/fulfillment/pkg/tokens"
)

const contextKey = "actor"

// Actor is the authenticated party behind a request: a buyer, seller or
// rider. It is produced once per request by the Gate middleware and consumed
// by every handler; nothing downstream re-derives identity or role from the
// token.
type Actor struct {
	ID   uuid.UUID
	Role string
}

type Gate struct {
	JWTSecret []byte
}

func NewGate(secret []byte) *Gate {
	return &Gate{JWTSecret: secret}
}

// RequireAuth validates the bearer token and deposits the typed Actor into
// the echo context.
func (g *Gate) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		act, err := g.actorFromRequest(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
		}
		c.Set(contextKey, act)
		return next(c)
	}
}

// RequireRole is RequireAuth plus a role check.
func (g *Gate) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			act, err := g.actorFromRequest(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
			}
			if act.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, role+" access required")
			}
			c.Set(contextKey, act)
			return next(c)
		}
	}
}

func (g *Gate) actorFromRequest(c echo.Context) (Actor, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return Actor{}, errors.New("missing bearer token")
	}

	claims, err := tokens.AccessClaimsFromToken(strings.TrimPrefix(header, "Bearer "), g.JWTSecret)
	if err != nil || claims == nil {
		return Actor{}, errors.New("invalid token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Actor{}, errors.New("invalid subject claim")
	}

	switch claims.Role {
	case models.RoleBuyer, models.RoleSeller, models.RoleRider:
	default:
		return Actor{}, errors.New("unknown role")
	}

	return Actor{ID: id, Role: claims.Role}, nil
}

func FromContext(c echo.Context) (Actor, bool) {
	act, ok := c.Get(contextKey).(Actor)
	return act, ok
}
