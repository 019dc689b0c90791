package seller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mottars_backend/internal/common"
	"mottars_backend/internal/config"
	"mottars_backend/internal/domain"
	"mottars_backend/internal/listing"
	"mottars_backend/internal/middleware"
	"mottars_backend/internal/platform/database"
	"mottars_backend/internal/seller"
	"mottars_backend/internal/session"
	"mottars_backend/internal/verification"
	"mottars_backend/internal/view"
	"mottars_backend/internal/view/viewtest"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type DashboardTestSuite struct {
	suite.Suite
	clock  *clockwork.FakeClock
	views  *view.Registry
	router *gin.Engine
	sid    string
}

type envelope struct {
	Status  string          `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details json.RawMessage `json:"details"`
}

func (s *DashboardTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	cfg := &config.Config{
		DemoSellerID:      "s1",
		SessionCookieName: "mottars_sid",
		SessionTTL:        time.Hour,
		VerificationDelay: 2 * time.Second,
	}

	db, err := database.OpenInMemory()
	s.Require().NoError(err)
	s.Require().NoError(listing.Migrate(db))
	s.Require().NoError(verification.Migrate(db))
	_, err = listing.SeedIfEmpty(context.Background(), db)
	s.Require().NoError(err)

	s.clock = viewtest.NewClock()
	s.views = view.NewRegistry(s.clock, logger)
	sessions := session.NewService(session.NewMemoryStore(time.Hour), cfg, logger)
	listings := listing.NewService(listing.NewGORMRepository(db), logger)
	verifications := verification.NewService(verification.NewGORMRepository(db), sessions, listings, s.views, cfg, logger)

	s.router = gin.New()
	s.router.Use(middleware.SessionResolver(cfg, logger))
	api := s.router.Group("/api/v1")
	authMW := middleware.RequireAuth(sessions, logger)
	session.NewHandler(sessions, listings, logger).RegisterRoutes(api)
	verification.NewHandler(verifications, logger).RegisterRoutes(api, authMW)
	seller.NewHandler(seller.NewService(listings, verifications, logger), logger).RegisterRoutes(api, authMW)

	s.sid = "dashboard-test-session-01"
}

func (s *DashboardTestSuite) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.SessionIDHeader, s.sid)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *DashboardTestSuite) dashboard() seller.Dashboard {
	w, env := s.do(http.MethodGet, "/api/v1/seller/dashboard", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var dash seller.Dashboard
	s.Require().NoError(json.Unmarshal(env.Data, &dash))
	return dash
}

func (s *DashboardTestSuite) createListing() verification.GateDecision {
	w, env := s.do(http.MethodPost, "/api/v1/seller/listings/new", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var decision verification.GateDecision
	s.Require().NoError(json.Unmarshal(env.Data, &decision))
	return decision
}

func (s *DashboardTestSuite) TestDashboardRequiresSignIn() {
	w, env := s.do(http.MethodGet, "/api/v1/seller/dashboard", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("SIGN_IN_REQUIRED", env.Code)

	var details common.RedirectDetails
	s.Require().NoError(json.Unmarshal(env.Details, &details))
	s.Equal(domain.RouteLogin, details.Redirect)
}

func (s *DashboardTestSuite) TestVerifiedDemoSeller() {
	w, _ := s.do(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "seller@mottars.ng", "password": "secret"})
	s.Require().Equal(http.StatusOK, w.Code)

	dash := s.dashboard()
	s.Equal("s1", dash.Seller.ID)
	s.Equal(domain.VerificationVerified, dash.Status)
	s.Equal(domain.VerificationVerified, dash.Advisory.Panel)
	s.Len(dash.RecentListings, seller.RecentListingsLimit)
	s.Len(dash.ProfileViews, 7)
	s.Equal(120, dash.ProfileViews[5].Views)
	s.Equal("24.5k", dash.Stats.TotalViews)

	decision := s.createListing()
	s.Equal(verification.GateProceed, decision.Action)
	s.Equal(domain.RouteCreateListing, decision.Route)
}

func (s *DashboardTestSuite) TestVerificationMovesDashboardToPending() {
	w, _ := s.do(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "chinedu@mottars.ng", "password": "secret", "seller_id": "s2"})
	s.Require().Equal(http.StatusOK, w.Code)

	dash := s.dashboard()
	s.Equal(domain.VerificationUnverified, dash.Advisory.Panel)

	decision := s.createListing()
	s.Equal(verification.GateRedirect, decision.Action)
	s.Equal(domain.RouteSellerVerification, decision.Route)

	w, env := s.do(http.MethodPost, "/api/v1/seller/verification", nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var flow verification.FlowState
	s.Require().NoError(json.Unmarshal(env.Data, &flow))

	w, _ = s.do(http.MethodPut, "/api/v1/seller/verification/"+flow.ID+"/personal",
		gin.H{"first_name": "Ada", "last_name": "Obi", "date_of_birth": "1990-01-01"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w, _ = s.do(http.MethodPost, "/api/v1/seller/verification/"+flow.ID+"/submit",
		gin.H{"id_type": "National ID", "id_number": "12345"})
	s.Require().Equal(http.StatusAccepted, w.Code, w.Body.String())

	viewtest.Advance(s.T(), s.clock, s.views, 2*time.Second)

	dash = s.dashboard()
	s.Equal(domain.VerificationPending, dash.Status)
	s.Equal(domain.VerificationPending, dash.Advisory.Panel)

	decision = s.createListing()
	s.Equal(verification.GateBlocked, decision.Action)
	s.Empty(decision.Route)
	s.NotEmpty(decision.Message)
}

func (s *DashboardTestSuite) TestLoginValidation() {
	w, env := s.do(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "not-an-email", "password": "x"})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("VALIDATION_ERROR", env.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "a@b.ng", "password": "x", "seller_id": "nobody"})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *DashboardTestSuite) TestLogoutSignsOut() {
	w, _ := s.do(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "seller@mottars.ng", "password": "secret"})
	s.Require().Equal(http.StatusOK, w.Code)
	w, _ = s.do(http.MethodPost, "/api/v1/auth/logout", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/seller/dashboard", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func TestDashboardTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardTestSuite))
}
