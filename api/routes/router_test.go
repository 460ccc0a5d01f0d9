package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	cartsvc "github.com/minithai/minithai-backend/internal/cart"
	"github.com/minithai/minithai-backend/internal/menu"
	"github.com/minithai/minithai-backend/pkg/config"
	"github.com/minithai/minithai-backend/pkg/db/models"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubMenuService struct{}

func (stubMenuService) List(ctx context.Context, filter menu.ListFilter) ([]models.MenuItem, error) {
	return []models.MenuItem{{ID: uuid.New(), Name: "Som Tam"}}, nil
}

func (stubMenuService) Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return &models.MenuItem{ID: id, Name: "Som Tam"}, nil
}

func (stubMenuService) Create(ctx context.Context, input menu.CreateInput) (*models.MenuItem, error) {
	return &models.MenuItem{ID: uuid.New(), Name: input.Name}, nil
}

func (stubMenuService) Update(ctx context.Context, id uuid.UUID, input menu.UpdateInput) (*models.MenuItem, error) {
	return &models.MenuItem{ID: id}, nil
}

func (stubMenuService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
		Cart: config.CartConfig{
			SessionCookie: "mt_session",
		},
		CORS: config.CORSConfig{Origins: []string{"http://localhost:3000"}},
	}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	backend := cartsvc.NewMemoryBackend()
	manager := cartsvc.NewManager(cartsvc.ManagerParams{
		Storage: backend.Context(),
		KeyFor:  func(sessionID string) string { return "mt:cart:" + sessionID },
		Cart:    testConfig().Cart,
	})
	t.Cleanup(func() { _ = manager.Close() })

	return NewRouter(Deps{
		Config:      testConfig(),
		DB:          stubPinger{},
		Redis:       stubPinger{},
		CartManager: manager,
		Menu:        stubMenuService{},
	})
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, rec.Code)
		}
	}
}

func TestSessionCookieAssignedOnAPIRoutes(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/menu", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("menu list returned %d", rec.Code)
	}
	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "mt_session=") {
		t.Fatalf("expected session cookie, got %q", cookie)
	}
}

func TestCartRoundTripThroughRouter(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	// First request establishes the session cookie.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/cart", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("cart fetch returned %d: %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie")
	}

	body := strings.NewReader(`{"id":"7","name":"Som Tam","price":"18.90","quantity":2}`)
	req := httptest.NewRequest("POST", "/api/cart/items", body)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add item returned %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/cart", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid cart payload: %v", err)
	}
	if envelope.Data.Count != 2 {
		t.Fatalf("expected count 2 after add, got %d", envelope.Data.Count)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
