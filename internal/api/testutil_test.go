package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/dondigital/storefront/internal/database"
	"github.com/dondigital/storefront/internal/models"
	"github.com/dondigital/storefront/internal/repository"
	"github.com/dondigital/storefront/internal/services"
	"github.com/dondigital/storefront/internal/workers"
)

// testEnv bundles everything a handler test needs: the router, the database
// and direct repository access for seeding and asserting.
type testEnv struct {
	router         *gin.Engine
	db             *gorm.DB
	affiliatorRepo *repository.GormAffiliatorRepository
	referralRepo   *repository.GormReferralRepository
	commentRepo    *repository.GormCommentRepository
	productRepo    *repository.GormProductRepository
	statsRepo      *repository.GormStatisticsRepository
}

// newTestEnv spins up a fresh in-memory database, migrates the full schema
// (including the leaderboard view and the statistics singleton), wires the
// services and starts a single click worker. The database name is derived
// from the test name so parallel packages never share state.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	env := &testEnv{
		db:             db,
		affiliatorRepo: repository.NewAffiliatorRepository(db),
		referralRepo:   repository.NewReferralRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		productRepo:    repository.NewProductRepository(db),
		statsRepo:      repository.NewStatisticsRepository(db),
	}

	svcs := Services{
		Affiliators: services.NewAffiliatorService(env.affiliatorRepo, "https://dondigital.vercel.app", 6),
		Comments:    services.NewCommentService(env.commentRepo),
		Products:    services.NewProductService(env.productRepo, env.statsRepo),
		Referrals:   services.NewReferralService(env.affiliatorRepo, env.referralRepo),
		Statistics:  services.NewStatisticsService(env.statsRepo),
	}

	ClickEventsChannel = make(chan models.ClickEvent, 16)
	workers.StartClickWorkers(1, ClickEventsChannel, svcs.Referrals)

	router := gin.New()
	SetupRoutes(router, svcs, 16)
	env.router = router
	return env
}

// do performs an HTTP request against the test router. A nil body sends an
// empty request; anything else is JSON-encoded.
func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// seedAffiliator inserts an affiliator row directly, bypassing the API.
func (env *testEnv) seedAffiliator(t *testing.T, username, code string, active bool) *models.Affiliator {
	t.Helper()
	affiliator := &models.Affiliator{
		Username: username,
		IsActive: active,
	}
	if code != "" {
		affiliator.ReferralCode = &code
	}
	if err := env.affiliatorRepo.Create(affiliator); err != nil {
		t.Fatalf("Failed to seed affiliator %s: %v", username, err)
	}
	return affiliator
}

// setBalance writes the statistics singleton's Robux balance.
func (env *testEnv) setBalance(t *testing.T, currentRobux int) {
	t.Helper()
	if _, err := env.statsRepo.Update(currentRobux, "09:00", "21:00"); err != nil {
		t.Fatalf("Failed to set balance: %v", err)
	}
}

// assertStatus fails the test when the recorded status differs.
func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Fatalf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// decodeJSON unmarshals the response body into v.
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v. Body: %s", err, w.Body.String())
	}
}

// waitFor polls cond until it holds or the deadline passes. Used for
// asserting on the asynchronous click pipeline.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for condition: %s", msg)
}

// envelope is the standard response shape of every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}
