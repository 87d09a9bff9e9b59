package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkotecha/tilebill-backend/api/middleware"
	"github.com/rkotecha/tilebill-backend/api/responses"
	"github.com/rkotecha/tilebill-backend/api/validators"
	billsvc "github.com/rkotecha/tilebill-backend/internal/bills"
	"github.com/rkotecha/tilebill-backend/pkg/db/models"
	pkgerrors "github.com/rkotecha/tilebill-backend/pkg/errors"
	"github.com/rkotecha/tilebill-backend/pkg/logger"
)

const maxBillListLimit = 500

// BillCommit persists the session cart as a durable bill.
func BillCommit(svc billsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bill service unavailable"))
			return
		}

		ownerID, createdBy, err := billOwner(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload commitBillRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		bill, err := svc.Commit(r.Context(), billsvc.CommitInput{
			SessionID: middleware.SessionIDFromContext(r.Context()),
			OwnerID:   ownerID,
			CreatedBy: createdBy,
			BillName:  payload.BillName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newBillResponse(bill))
	}
}

// BillList returns committed bills, newest first by default.
func BillList(svc billsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bill service unavailable"))
			return
		}

		opts := billsvc.ListOptions{Order: billsvc.SortNewestFirst}

		if raw := strings.TrimSpace(r.URL.Query().Get("order")); raw != "" {
			opts.Order = billsvc.SortOrder(raw)
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, maxBillListLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		opts.Limit = limit

		if strings.EqualFold(r.URL.Query().Get("mine"), "true") {
			ownerID, _, err := billOwner(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			opts.OwnerID = &ownerID
		}

		bills, err := svc.List(r.Context(), opts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]billResponse, 0, len(bills))
		for i := range bills {
			out = append(out, newBillResponse(&bills[i]))
		}
		responses.WriteSuccess(w, map[string]any{"bills": out})
	}
}

// BillDetail returns one bill with its line items.
func BillDetail(svc billsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bill service unavailable"))
			return
		}

		billID, err := uuid.Parse(chi.URLParam(r, "billId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid bill id"))
			return
		}

		bill, err := svc.Get(r.Context(), billID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newBillResponse(bill))
	}
}

// BillDelete removes one bill and its items.
func BillDelete(svc billsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bill service unavailable"))
			return
		}

		billID, err := uuid.Parse(chi.URLParam(r, "billId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid bill id"))
			return
		}

		if err := svc.Delete(r.Context(), billID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// BillPurge removes bills created strictly before now minus the given days.
func BillPurge(svc billsvc.Service, defaultDays int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bill service unavailable"))
			return
		}

		var payload purgeBillsRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		days := defaultDays
		if payload.Days != nil {
			days = *payload.Days
		}

		deleted, err := svc.PurgeOlderThan(r.Context(), days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"deleted": deleted, "days": days})
	}
}

// BillStaleCount reports how many bills a purge with the same horizon
// would remove.
func BillStaleCount(svc billsvc.Service, defaultDays int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bill service unavailable"))
			return
		}

		days, err := validators.ParseQueryInt(r, "days", defaultDays, 1, 3650)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := svc.CountOlderThan(r.Context(), days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"stale": count, "days": days})
	}
}

type commitBillRequest struct {
	BillName *string `json:"bill_name" validate:"omitempty,max=200"`
}

type purgeBillsRequest struct {
	Days *int `json:"days" validate:"omitempty,gt=0"`
}

type billResponse struct {
	ID         uuid.UUID          `json:"id"`
	OwnerID    uuid.UUID          `json:"owner_id"`
	BillName   *string            `json:"bill_name,omitempty"`
	TotalBoxes int                `json:"total_boxes"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	CreatedBy  string             `json:"created_by"`
	Items      []billItemResponse `json:"items"`
	CreatedAt  time.Time          `json:"created_at"`
}

type billItemResponse struct {
	ID              uuid.UUID        `json:"id"`
	ProductID       *uuid.UUID       `json:"product_id,omitempty"`
	SourceType      string           `json:"source_type"`
	CalculationType string           `json:"calculation_type"`
	TileName        string           `json:"tile_name"`
	Dimensions      string           `json:"dimensions"`
	RoomDimensions  string           `json:"room_dimensions"`
	TilesPerBox     int              `json:"tiles_per_box"`
	CoveragePerBox  float64          `json:"coverage_per_box"`
	AreaCalculated  int              `json:"area_calculated"`
	BoxesExact      float64          `json:"boxes_exact"`
	BoxesNeeded     int              `json:"boxes_needed"`
	PricePerBox     *decimal.Decimal `json:"price_per_box,omitempty"`
	TotalPrice      *decimal.Decimal `json:"total_price,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func newBillResponse(bill *models.CalculationBill) billResponse {
	items := make([]billItemResponse, 0, len(bill.Items))
	for _, item := range bill.Items {
		items = append(items, billItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			SourceType:      string(item.SourceType),
			CalculationType: string(item.CalculationType),
			TileName:        item.TileName,
			Dimensions:      item.Dimensions,
			RoomDimensions:  item.RoomDimensions,
			TilesPerBox:     item.TilesPerBox,
			CoveragePerBox:  item.CoveragePerBox,
			AreaCalculated:  item.AreaCalculated,
			BoxesExact:      item.BoxesExact,
			BoxesNeeded:     item.BoxesNeeded,
			PricePerBox:     item.PricePerBox,
			TotalPrice:      item.TotalPrice,
			CreatedAt:       item.CreatedAt,
		})
	}

	return billResponse{
		ID:         bill.ID,
		OwnerID:    bill.OwnerID,
		BillName:   bill.BillName,
		TotalBoxes: bill.TotalBoxes,
		TotalPrice: bill.TotalPrice,
		CreatedBy:  bill.CreatedBy,
		Items:      items,
		CreatedAt:  bill.CreatedAt,
	}
}

func billOwner(r *http.Request) (uuid.UUID, string, error) {
	rawUserID := middleware.UserIDFromContext(r.Context())
	if rawUserID == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}

	ownerID, err := uuid.Parse(rawUserID)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}

	createdBy := middleware.UserEmailFromContext(r.Context())
	if createdBy == "" {
		createdBy = rawUserID
	}

	return ownerID, createdBy, nil
}
