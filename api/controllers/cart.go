package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rkotecha/tilebill-backend/api/middleware"
	"github.com/rkotecha/tilebill-backend/api/responses"
	cartsvc "github.com/rkotecha/tilebill-backend/internal/cart"
	pkgerrors "github.com/rkotecha/tilebill-backend/pkg/errors"
	"github.com/rkotecha/tilebill-backend/pkg/logger"
)

type cartItemsResponse struct {
	Items []cartsvc.StagedItem `json:"items"`
	Count int                  `json:"count"`
}

// CartFetch returns the session's staged items in insertion order.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		items, err := svc.Items(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartItemsResponse{Items: items, Count: len(items)})
	}
}

// CartRemoveItem removes the staged item at the given zero-based index.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "index must be numeric"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := svc.RemoveAt(r.Context(), sessionID, index); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Items(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartItemsResponse{Items: items, Count: len(items)})
	}
}

// CartClear drops every staged item for the session.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := svc.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
