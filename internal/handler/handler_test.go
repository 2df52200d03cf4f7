package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xdiner/internal/db"
)

func setupTestAPI(t *testing.T) (*API, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if err := db.Init(db.DefaultDSN); err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}

	api := NewAPI(db.DB, "test-key")
	api.Store().SetClock(func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	})

	return api, func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func jsonContext(t *testing.T, method, target string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return decoded
}

func TestCreateReservationSuccess(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	c, w := jsonContext(t, http.MethodPost, "/api/reservations", map[string]interface{}{
		"name":   "Alice Wu",
		"email":  "alice@example.com",
		"date":   "2024-05-20",
		"time":   "19:30",
		"guests": 3,
	})
	api.CreateReservation(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["status"] != db.ReservationPending {
		t.Fatalf("new reservation must be pending, got %v", body["status"])
	}
	if body["confirmationCode"] == "" || body["confirmationCode"] == nil {
		t.Fatalf("expected a confirmation code in the response")
	}
}

func TestCreateReservationSurfacesValidation(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	c, w := jsonContext(t, http.MethodPost, "/api/reservations", map[string]interface{}{
		"name":   "Alice Wu",
		"email":  "alice@example.com",
		"date":   "2024-05-20",
		"guests": 0,
	})
	api.CreateReservation(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["field"] != "guests" {
		t.Fatalf("expected guests rejection, got %v", body)
	}

	content, err := api.Store().Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if len(content.Reservations) != 1 {
		t.Fatalf("rejected submission must not change the store")
	}
}

func TestUpdateSettingsSurfacesStoreRejection(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	c, w := jsonContext(t, http.MethodPut, "/admin/api/settings", map[string]interface{}{
		"primaryColor": "chartreuse-ish",
	})
	api.UpdateSettings(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["field"] != "primaryColor" {
		t.Fatalf("store rejection not surfaced: %v", body)
	}
}

func TestUpdateSettingsPassThrough(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	c, w := jsonContext(t, http.MethodPut, "/admin/api/settings", map[string]interface{}{
		"primaryColor": "#3b82f6",
	})
	api.UpdateSettings(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	content, err := api.Store().Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if content.Settings.PrimaryColor != "#3b82f6" {
		t.Fatalf("settings save did not reach the store")
	}
	if content.Settings.Name != "Xdiner" || content.Settings.Tagline != "Modern Fast Food Reimagined" {
		t.Fatalf("unrelated settings fields changed: %#v", content.Settings)
	}
}

func TestUpdateReservationStatusConflict(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	if _, err := api.Store().UpdateReservationStatus(1, db.ReservationConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	c, w := jsonContext(t, http.MethodPut, "/admin/api/reservations/1/status", map[string]interface{}{
		"status": "pending",
	})
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	api.UpdateReservationStatus(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}

func TestUpdateReservationStatusNotFound(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	c, w := jsonContext(t, http.MethodPut, "/admin/api/reservations/42/status", map[string]interface{}{
		"status": "confirmed",
	})
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	api.UpdateReservationStatus(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestDeleteMenuItemReturnsRemainingMenu(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	c, w := jsonContext(t, http.MethodDelete, "/admin/api/menu/2", nil)
	c.Params = gin.Params{{Key: "id", Value: "2"}}
	api.DeleteMenuItem(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	menu, ok := body["menu"].([]interface{})
	if !ok || len(menu) != 3 {
		t.Fatalf("expected 3 remaining items, got %v", body["menu"])
	}
}

type stubDoer struct {
	err error
}

func (s *stubDoer) Do(req *http.Request) (*http.Response, error) {
	return nil, s.err
}

func TestGenerateImageAlwaysResolves(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	api.Images().SetHTTPClient(&stubDoer{err: errors.New("dns failure")})

	c, w := jsonContext(t, http.MethodPost, "/admin/api/images/generate", map[string]interface{}{
		"prompt": "a glossy burger on a slate board",
	})
	api.GenerateImage(c)

	if w.Code != http.StatusOK {
		t.Fatalf("image failure must not surface as an error, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["image"] == "" || body["image"] == nil {
		t.Fatalf("expected an image reference, got %v", body)
	}
	if api.Images().InFlight() {
		t.Fatalf("in-flight flag must be cleared")
	}
}
