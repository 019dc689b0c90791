package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mottars_backend/internal/common"
	"mottars_backend/internal/config"
	"mottars_backend/internal/detail"
	"mottars_backend/internal/draft"
	"mottars_backend/internal/filestorage"
	"mottars_backend/internal/jobs"
	"mottars_backend/internal/listing"
	"mottars_backend/internal/platform/database"
	"mottars_backend/internal/seller"
	"mottars_backend/internal/session"
	"mottars_backend/internal/verification"
	"mottars_backend/internal/view"
	"mottars_backend/internal/view/viewtest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	root := filepath.Join(t.TempDir(), "previews")
	cfg := &config.Config{
		GinMode:            gin.TestMode,
		ServerHost:         "127.0.0.1",
		ServerPort:         "0",
		DemoSellerID:       "s1",
		SessionCookieName:  "mottars_sid",
		SessionTTL:         time.Hour,
		ImageStoragePath:   root,
		ImagePublicBaseURL: "/previews",
		ViewIdleTimeout:    30 * time.Minute,
	}

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	require.NoError(t, listing.Migrate(db))
	require.NoError(t, verification.Migrate(db))
	_, err = listing.SeedIfEmpty(context.Background(), db)
	require.NoError(t, err)

	views := view.NewRegistry(viewtest.NewClock(), logger)
	t.Cleanup(func() { views.CloseAll() })
	files, err := filestorage.NewFileStorageService(root, cfg.ImagePublicBaseURL, logger)
	require.NoError(t, err)

	sessions := session.NewService(session.NewMemoryStore(time.Hour), cfg, logger)
	listings := listing.NewService(listing.NewGORMRepository(db), logger)
	verifications := verification.NewService(verification.NewGORMRepository(db), sessions, listings, views, cfg, logger)

	srv, err := NewServer(cfg, logger,
		sessions,
		session.NewHandler(sessions, listings, logger),
		listing.NewHandler(listings, logger),
		detail.NewHandler(detail.NewService(listings, sessions, views, cfg, logger), logger),
		verification.NewHandler(verifications, logger),
		draft.NewHandler(draft.NewService(verifications, views, files, cfg, logger), logger),
		seller.NewHandler(seller.NewService(listings, verifications, logger), logger),
		files,
		jobs.NewViewSweeperJob(views, logger, cfg),
	)
	require.NoError(t, err)
	return srv, root
}

func TestNewServer_RegistersEveryPage(t *testing.T) {
	srv, _ := newTestServer(t)

	registered := map[string]bool{}
	for _, r := range srv.Router().Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/session",
		"GET /api/v1/cars",
		"GET /api/v1/cars/featured",
		"GET /api/v1/cars/suggestions",
		"GET /api/v1/cars/:id",
		"GET /api/v1/sellers/:id",
		"GET /api/v1/brands",
		"POST /api/v1/cars/:id/visits",
		"POST /api/v1/visits/:visitId/offer",
		"POST /api/v1/visits/:visitId/chat/messages",
		"GET /api/v1/seller/verification/status",
		"POST /api/v1/seller/verification/:flowId/submit",
		"POST /api/v1/seller/drafts",
		"POST /api/v1/seller/drafts/:draftId/publish",
		"GET /api/v1/seller/dashboard",
		"POST /api/v1/seller/listings/new",
	} {
		assert.True(t, registered[want], "route %s not registered", want)
	}
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "UP")
}

func TestServer_IssuesSessionAndExposesHeader(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cars", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(common.SessionIDHeader))
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Expose-Headers")), "x-session-id")
}

func TestServer_ProtectedRouteNeedsSignIn(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/seller/dashboard", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body struct {
		Code    string `json:"code"`
		Details struct {
			Redirect string `json:"redirect"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SIGN_IN_REQUIRED", body.Code)
	assert.Equal(t, "/login", body.Details.Redirect)
}

func TestServer_ServesPreviews(t *testing.T) {
	srv, root := newTestServer(t)
	dir := filepath.Join(root, "drafts", "d1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("jpeg"), 0o644))

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/previews/drafts/d1/cover.jpg", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg", w.Body.String())
}

func TestServer_UnknownRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}
