package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rkotecha/tilebill-backend/api/middleware"
	billsvc "github.com/rkotecha/tilebill-backend/internal/bills"
	"github.com/rkotecha/tilebill-backend/pkg/db/models"
	pkgerrors "github.com/rkotecha/tilebill-backend/pkg/errors"
	"github.com/rkotecha/tilebill-backend/pkg/logger"
)

type stubBillService struct {
	commitInput billsvc.CommitInput
	listOpts    billsvc.ListOptions
	purgeDays   int
	countDays   int
	deletedID   uuid.UUID
}

func (s *stubBillService) Commit(ctx context.Context, input billsvc.CommitInput) (*models.CalculationBill, error) {
	s.commitInput = input
	return &models.CalculationBill{ID: uuid.New(), OwnerID: input.OwnerID, CreatedBy: input.CreatedBy}, nil
}

func (s *stubBillService) Get(ctx context.Context, id uuid.UUID) (*models.CalculationBill, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bill not found")
}

func (s *stubBillService) List(ctx context.Context, opts billsvc.ListOptions) ([]models.CalculationBill, error) {
	s.listOpts = opts
	return []models.CalculationBill{}, nil
}

func (s *stubBillService) Delete(ctx context.Context, id uuid.UUID) error {
	s.deletedID = id
	return nil
}

func (s *stubBillService) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	s.purgeDays = days
	return 3, nil
}

func (s *stubBillService) CountOlderThan(ctx context.Context, days int) (int64, error) {
	s.countDays = days
	return 5, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func TestBillCommit(t *testing.T) {
	logg := testLogger()

	t.Run("missing identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bills", nil)
		req = req.WithContext(middleware.WithSessionID(req.Context(), "sess-1"))
		rec := httptest.NewRecorder()
		BillCommit(&stubBillService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without identity, got %d", rec.Code)
		}
	})

	t.Run("identity flows into commit input", func(t *testing.T) {
		ownerID := uuid.New()
		ctx := middleware.WithSessionID(context.Background(), "sess-1")
		ctx = middleware.WithUserIdentity(ctx, ownerID.String(), "mason@example.com")

		body := `{"bill_name":"kitchen remodel"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bills", strings.NewReader(body))
		req = req.WithContext(ctx)

		stub := &stubBillService{}
		rec := httptest.NewRecorder()
		BillCommit(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.commitInput.OwnerID != ownerID {
			t.Fatalf("expected owner %s, got %s", ownerID, stub.commitInput.OwnerID)
		}
		if stub.commitInput.CreatedBy != "mason@example.com" {
			t.Fatalf("expected email as created_by, got %q", stub.commitInput.CreatedBy)
		}
		if stub.commitInput.SessionID != "sess-1" {
			t.Fatalf("expected session id carried, got %q", stub.commitInput.SessionID)
		}
		if stub.commitInput.BillName == nil || *stub.commitInput.BillName != "kitchen remodel" {
			t.Fatalf("expected bill name carried, got %v", stub.commitInput.BillName)
		}
	})

	t.Run("user id fallback for created_by", func(t *testing.T) {
		ownerID := uuid.New()
		ctx := middleware.WithSessionID(context.Background(), "sess-1")
		ctx = middleware.WithUserIdentity(ctx, ownerID.String(), "")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bills", nil)
		req = req.WithContext(ctx)

		stub := &stubBillService{}
		rec := httptest.NewRecorder()
		BillCommit(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if stub.commitInput.CreatedBy != ownerID.String() {
			t.Fatalf("expected user id fallback, got %q", stub.commitInput.CreatedBy)
		}
	})
}

func TestBillListOptions(t *testing.T) {
	logg := testLogger()

	t.Run("defaults to newest first", func(t *testing.T) {
		stub := &stubBillService{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bills", nil)
		rec := httptest.NewRecorder()
		BillList(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.listOpts.Order != billsvc.SortNewestFirst {
			t.Fatalf("expected desc default, got %q", stub.listOpts.Order)
		}
		if stub.listOpts.OwnerID != nil {
			t.Fatalf("expected no owner filter by default")
		}
	})

	t.Run("mine filters by owner", func(t *testing.T) {
		ownerID := uuid.New()
		stub := &stubBillService{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bills?mine=true&order=asc&limit=10", nil)
		req = req.WithContext(middleware.WithUserIdentity(req.Context(), ownerID.String(), ""))
		rec := httptest.NewRecorder()
		BillList(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.listOpts.OwnerID == nil || *stub.listOpts.OwnerID != ownerID {
			t.Fatalf("expected owner filter %s, got %v", ownerID, stub.listOpts.OwnerID)
		}
		if stub.listOpts.Order != billsvc.SortOldestFirst {
			t.Fatalf("expected asc order, got %q", stub.listOpts.Order)
		}
		if stub.listOpts.Limit != 10 {
			t.Fatalf("expected limit 10, got %d", stub.listOpts.Limit)
		}
	})

	t.Run("rejects non-numeric limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bills?limit=ten", nil)
		rec := httptest.NewRecorder()
		BillList(&stubBillService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
		}
	})
}

func TestBillDetailRejectsBadID(t *testing.T) {
	logg := testLogger()
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("billId", "not-a-uuid")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bills/not-a-uuid", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	BillDetail(&stubBillService{}, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
	}
}

func TestBillDeleteInvokesService(t *testing.T) {
	logg := testLogger()
	billID := uuid.New()
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("billId", billID.String())
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bills/"+billID.String(), nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	stub := &stubBillService{}
	rec := httptest.NewRecorder()
	BillDelete(stub, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.deletedID != billID {
		t.Fatalf("expected delete of %s, got %s", billID, stub.deletedID)
	}
}

func TestBillPurgeDays(t *testing.T) {
	logg := testLogger()

	t.Run("uses configured default", func(t *testing.T) {
		stub := &stubBillService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bills/purge", nil)
		rec := httptest.NewRecorder()
		BillPurge(stub, 30, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.purgeDays != 30 {
			t.Fatalf("expected default 30 days, got %d", stub.purgeDays)
		}
	})

	t.Run("body overrides default", func(t *testing.T) {
		stub := &stubBillService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bills/purge", strings.NewReader(`{"days":7}`))
		rec := httptest.NewRecorder()
		BillPurge(stub, 30, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.purgeDays != 7 {
			t.Fatalf("expected 7 days, got %d", stub.purgeDays)
		}
	})

	t.Run("rejects non-positive days", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bills/purge", strings.NewReader(`{"days":0}`))
		rec := httptest.NewRecorder()
		BillPurge(&stubBillService{}, 30, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for zero days, got %d", rec.Code)
		}
	})
}

func TestBillStaleCountDays(t *testing.T) {
	logg := testLogger()
	stub := &stubBillService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bills/stale-count?days=14", nil)
	rec := httptest.NewRecorder()
	BillStaleCount(stub, 30, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.countDays != 14 {
		t.Fatalf("expected 14 days, got %d", stub.countDays)
	}
	if !strings.Contains(rec.Body.String(), `"stale":5`) {
		t.Fatalf("expected stale count in body, got %s", rec.Body.String())
	}
}
