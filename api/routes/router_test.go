package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	billsvc "github.com/rkotecha/tilebill-backend/internal/bills"
	cartsvc "github.com/rkotecha/tilebill-backend/internal/cart"
	"github.com/rkotecha/tilebill-backend/internal/inventory"
	"github.com/rkotecha/tilebill-backend/pkg/config"
	"github.com/rkotecha/tilebill-backend/pkg/db/models"
	pkgerrors "github.com/rkotecha/tilebill-backend/pkg/errors"
	"github.com/rkotecha/tilebill-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubInventoryService struct{}

func (stubInventoryService) LookupTile(ctx context.Context, productID uuid.UUID) (*inventory.TileProduct, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubInventoryService) ListTiles(ctx context.Context) ([]inventory.TileProduct, error) {
	return []inventory.TileProduct{}, nil
}

type stubCartService struct {
	items []cartsvc.StagedItem
}

func (s *stubCartService) Items(ctx context.Context, sessionID string) ([]cartsvc.StagedItem, error) {
	return s.items, nil
}

func (s *stubCartService) Add(ctx context.Context, sessionID string, item cartsvc.StagedItem) (int, error) {
	s.items = append(s.items, item)
	return len(s.items), nil
}

func (s *stubCartService) RemoveAt(ctx context.Context, sessionID string, index int) error {
	if index < 0 || index >= len(s.items) {
		return pkgerrors.New(pkgerrors.CodeIndexRange, "invalid index")
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return nil
}

func (s *stubCartService) Clear(ctx context.Context, sessionID string) error {
	s.items = nil
	return nil
}

type stubBillService struct{}

func (stubBillService) Commit(ctx context.Context, input billsvc.CommitInput) (*models.CalculationBill, error) {
	return &models.CalculationBill{ID: uuid.New(), OwnerID: input.OwnerID, CreatedBy: input.CreatedBy}, nil
}

func (stubBillService) Get(ctx context.Context, id uuid.UUID) (*models.CalculationBill, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bill not found")
}

func (stubBillService) List(ctx context.Context, opts billsvc.ListOptions) ([]models.CalculationBill, error) {
	return []models.CalculationBill{}, nil
}

func (stubBillService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubBillService) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	return 0, nil
}

func (stubBillService) CountOlderThan(ctx context.Context, days int) (int64, error) {
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Env: "test", Port: "0"},
		Retention: config.RetentionConfig{BillDays: 30},
	}
}

func newTestRouter() http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		testConfig(),
		logg,
		stubPinger{},
		nil,
		stubInventoryService{},
		cartsvc.NewAssembler(stubInventoryService{}),
		&stubCartService{},
		stubBillService{},
	)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live got %d", resp.Code)
	}
}

func TestCartRequiresSession(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session got %d", resp.Code)
	}
}

func TestCartFetchWithSession(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Session-Id", "sess-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cart fetch got %d", resp.Code)
	}
}

func TestFloorCalculationStagesItem(t *testing.T) {
	router := newTestRouter()
	body := `{"room_width":10,"room_length":10.4,"source":"predefined","tile_size":"2x2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/floor", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "sess-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for floor calculation got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"boxes_needed":7`) {
		t.Fatalf("expected 7 boxes in response got %s", resp.Body.String())
	}
}

func TestFloorCalculationRejectsBadJSON(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/floor", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "sess-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestFloorCalculationRejectsUnknownSource(t *testing.T) {
	router := newTestRouter()
	body := `{"room_width":10,"room_length":10,"source":"catalog"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/floor", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "sess-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown source got %d", resp.Code)
	}
}

func TestBillCommitRequiresSession(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bills", nil)
	req.Header.Set("X-User-Id", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session got %d", resp.Code)
	}
}

func TestBillCommitWithIdentity(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bills", nil)
	req.Header.Set("X-Session-Id", "sess-1")
	req.Header.Set("X-User-Id", uuid.NewString())
	req.Header.Set("X-User-Email", "mason@example.com")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for commit got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestBillListIsPublic(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bills", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for bill list got %d", resp.Code)
	}
}

func TestBillDetailNotFound(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bills/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown bill got %d", resp.Code)
	}
}

func TestTilePresetsListsCatalogs(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tiles/presets", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for presets got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "12x18") {
		t.Fatalf("expected wall preset in response got %s", resp.Body.String())
	}
}
