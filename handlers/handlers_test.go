package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/madr-project/madr/internal/accounts"
	"github.com/madr-project/madr/internal/catalog"
	"github.com/madr-project/madr/internal/i18n"
	"github.com/madr-project/madr/internal/tokens"
	"github.com/madr-project/madr/pkg/middleware"
)

// newTestRouter wires the full HTTP surface against in-memory repositories.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bundle, err := i18n.NewBundle("en", []string{"en", "pt"})
	require.NoError(t, err)

	codec := tokens.NewCodec("handler-test-secret", 30*time.Minute)
	accSvc := accounts.NewService(accounts.NewMemoryRepository(), codec)

	authorRepo := catalog.NewMemoryAuthorRepository()
	catSvc := catalog.NewService(authorRepo, catalog.NewMemoryBookRepository(authorRepo))

	r := gin.New()
	auth := middleware.Auth(accSvc)
	NewAccountsHandler(accSvc, bundle).Register(r, auth)
	NewAuthorsHandler(catSvc, bundle).Register(r, auth)
	NewBooksHandler(catSvc, bundle).Register(r, auth)
	RegisterDocs(r)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates an account and returns its bearer token.
func registerAndLogin(t *testing.T, r *gin.Engine, name, email, pass string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/accounts", "", gin.H{"name": name, "email": email, "password": pass})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	form := url.Values{"username": {email}, "password": {pass}}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	lw := httptest.NewRecorder()
	r.ServeHTTP(lw, req)
	require.Equal(t, http.StatusOK, lw.Code, lw.Body.String())

	token, ok := decode(t, lw)["access_token"].(string)
	require.True(t, ok)
	return token
}

func TestDocsEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"openapi"`)

	w = doJSON(r, http.MethodGet, "/swagger/index.html", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "swagger-ui")
}
