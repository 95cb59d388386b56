package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/madr-project/madr/internal/models"
)

// fakeResolver implements Resolver
type fakeResolver struct {
	user *models.User
}

func (f *fakeResolver) Resolve(ctx context.Context, raw string) (*models.User, error) {
	if raw == "goodtoken" {
		return f.user, nil
	}
	return nil, errors.New("invalid token")
}

func TestAuth_NoHeader(t *testing.T) {
	g := gin.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rw := httptest.NewRecorder()

	g.GET("/", Auth(&fakeResolver{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusUnauthorized, rw.Code)
	require.Equal(t, "Bearer", rw.Header().Get("WWW-Authenticate"))
}

func TestAuth_InvalidHeader(t *testing.T) {
	g := gin.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "BadHeader")
	rw := httptest.NewRecorder()

	g.GET("/", Auth(&fakeResolver{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestAuth_RejectedToken(t *testing.T) {
	g := gin.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer badtoken")
	rw := httptest.NewRecorder()

	g.GET("/", Auth(&fakeResolver{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	want := &models.User{ID: uuid.New(), Name: "reader", Email: "reader@example.com"}

	g := gin.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")
	rw := httptest.NewRecorder()

	g.GET("/", Auth(&fakeResolver{user: want}), func(c *gin.Context) {
		got, ok := CurrentUser(c)
		require.True(t, ok)
		require.Equal(t, want.ID, got.ID)
		c.Status(http.StatusOK)
	})
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
}

func TestCurrentUser_MissingOutsideAuth(t *testing.T) {
	g := gin.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rw := httptest.NewRecorder()

	g.GET("/", func(c *gin.Context) {
		_, ok := CurrentUser(c)
		require.False(t, ok)
		c.Status(http.StatusOK)
	})
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
}
