package routes

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"nutrilog/config"
	"nutrilog/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubEstimator struct{}

func (stubEstimator) Estimate(ctx context.Context, ownerID string, image []byte, contentType string) (services.Estimate, error) {
	return services.Estimate{Label: "Salmon", Amounts: map[string]float64{"Omega-3": 1.2}}, nil
}

type stubImages struct{}

func (stubImages) PutImage(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return "s3://test/" + key, nil
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	catalog, err := config.LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	secret := []byte("route-secret")
	hub := services.NewRealtimeHub()
	records := services.NewRecordService(db, services.NewEventBus(hub, nil))
	dash := services.NewDashboardService(records, catalog, time.UTC)

	return SetupRouter(Deps{
		JWTSecret: secret,
		Catalog:   catalog,
		Location:  time.UTC,
		Auth:      services.NewAuthService(db, secret),
		Records:   records,
		Capture:   services.NewCaptureService(stubEstimator{}, stubImages{}, records),
		Dashboard: dash,
		Analytics: services.NewAnalyticsService(records, catalog, time.UTC),
		Recs:      services.NewRecService(dash),
		Hub:       hub,
	})
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	creds := map[string]string{"email": email, "password": "hunter22"}
	if rec := do(t, r, http.MethodPost, "/auth/register", "", creds); rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	rec := do(t, r, http.MethodPost, "/auth/login", "", creds)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || out.Token == "" {
		t.Fatalf("login: bad body %s", rec.Body.String())
	}
	return out.Token
}

func omegaConsumed(t *testing.T, rec *httptest.ResponseRecorder) float64 {
	t.Helper()
	var day services.DayReport
	if err := json.Unmarshal(rec.Body.Bytes(), &day); err != nil {
		t.Fatalf("decode day report: %v", err)
	}
	for _, n := range day.Nutrients {
		if n.Name == "Omega-3" {
			return n.Consumed
		}
	}
	t.Fatalf("Omega-3 missing from %s", rec.Body.String())
	return 0
}

func TestCaptureConfirmDeleteFlow(t *testing.T) {
	r := newTestServer(t)
	token := login(t, r, "ana@example.com")

	img := base64.StdEncoding.EncodeToString([]byte("photo"))
	rec := do(t, r, http.MethodPost, "/meals/estimate", token, map[string]string{"image_base64": img})
	if rec.Code != http.StatusCreated {
		t.Fatalf("estimate: expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	var captured services.CaptureResult
	if err := json.Unmarshal(rec.Body.Bytes(), &captured); err != nil {
		t.Fatalf("decode capture: %v", err)
	}
	id := captured.Record.ID

	rec = do(t, r, http.MethodGet, "/progress/today", token, nil)
	if rec.Code != http.StatusOK || omegaConsumed(t, rec) != 1.2 {
		t.Fatalf("today: expected Omega-3 1.2, got %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, r, http.MethodGet, "/progress/today?confirmed_only=true", token, nil)
	if omegaConsumed(t, rec) != 0 {
		t.Fatalf("expected unconfirmed record excluded, got %s", rec.Body.String())
	}

	if rec = do(t, r, http.MethodPost, "/meals/"+id+"/confirm", token, nil); rec.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d", rec.Code)
	}

	other := login(t, r, "ben@example.com")
	if rec = do(t, r, http.MethodGet, "/meals/"+id, other, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected other owner to get 404, got %d", rec.Code)
	}

	if rec = do(t, r, http.MethodDelete, "/meals/"+id, token, nil); rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec = do(t, r, http.MethodGet, "/progress/today", token, nil)
	if omegaConsumed(t, rec) != 0 {
		t.Fatalf("expected deleted record gone after refetch, got %s", rec.Body.String())
	}
	if rec = do(t, r, http.MethodDelete, "/meals/"+id, token, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestRouterErrors(t *testing.T) {
	r := newTestServer(t)

	if rec := do(t, r, http.MethodGet, "/nutrients", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("catalog: expected 200, got %d", rec.Code)
	}
	if rec := do(t, r, http.MethodGet, "/progress/today", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token := login(t, r, "cy@example.com")
	if rec := do(t, r, http.MethodGet, "/nutrients/Caffeine/progress", token, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown nutrient, got %d", rec.Code)
	}
	if rec := do(t, r, http.MethodGet, "/progress?date=15-10-2026", token, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", rec.Code)
	}
	if rec := do(t, r, http.MethodGet, "/analytics/summary?from=0001-01-01&to=9999-12-31&includeMissingDays=true", token, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an oversized summary range, got %d", rec.Code)
	}
	if rec := do(t, r, http.MethodPost, "/meals/estimate", token, map[string]string{"image_base64": "%%%"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad image, got %d", rec.Code)
	}
	if rec := do(t, r, http.MethodPost, "/reports/daily/email", token, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected report route to be absent without SES, got %d", rec.Code)
	}
}
