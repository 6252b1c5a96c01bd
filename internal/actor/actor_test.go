package actor

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/swiftcart/fulfillment/internal/models"
	"github.com/swiftcart/fulfillment/pkg/tokens"
)

var testSecret = []byte("test-secret")

func gateRequest(t *testing.T, mw echo.MiddlewareFunc, auth string) (*httptest.ResponseRecorder, Actor, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got Actor
	var ok bool
	handler := mw(func(c echo.Context) error {
		got, ok = FromContext(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, got, ok
}

func TestRequireAuth_DepositsActor(t *testing.T) {
	g := NewGate(testSecret)
	id := uuid.New()
	token, err := tokens.NewAccessToken(models.RoleRider, id.String(), time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)

	rec, act, ok := gateRequest(t, g.RequireAuth, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	require.Equal(t, id, act.ID)
	require.Equal(t, models.RoleRider, act.Role)
}

func TestRequireAuth_RejectsBadTokens(t *testing.T) {
	g := NewGate(testSecret)

	expired, err := tokens.NewAccessToken(models.RoleBuyer, uuid.NewString(), time.Now().Add(-time.Hour), testSecret)
	require.NoError(t, err)

	foreign, err := tokens.NewAccessToken(models.RoleBuyer, uuid.NewString(), time.Now().Add(time.Hour), []byte("other-secret"))
	require.NoError(t, err)

	badSubject, err := tokens.NewAccessToken(models.RoleBuyer, "not-a-uuid", time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)

	badRole, err := tokens.NewAccessToken("admin", uuid.NewString(), time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)

	for name, auth := range map[string]string{
		"no header":    "",
		"not bearer":   "Basic abc",
		"garbage":      "Bearer not-a-token",
		"expired":      "Bearer " + expired,
		"wrong secret": "Bearer " + foreign,
		"bad subject":  "Bearer " + badSubject,
		"unknown role": "Bearer " + badRole,
	} {
		t.Run(name, func(t *testing.T) {
			rec, _, ok := gateRequest(t, g.RequireAuth, auth)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.False(t, ok)
		})
	}
}

func TestRequireRole(t *testing.T) {
	g := NewGate(testSecret)
	token, err := tokens.NewAccessToken(models.RoleSeller, uuid.NewString(), time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)

	rec, _, ok := gateRequest(t, g.RequireRole(models.RoleSeller), "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)

	rec, _, ok = gateRequest(t, g.RequireRole(models.RoleRider), "Bearer "+token)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, ok)
}
