package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nharmon/slicehaus-backend/api/middleware"
	"github.com/nharmon/slicehaus-backend/api/responses"
	"github.com/nharmon/slicehaus-backend/api/validators"
	cartsvc "github.com/nharmon/slicehaus-backend/internal/cart"
	pkgerrors "github.com/nharmon/slicehaus-backend/pkg/errors"
	"github.com/nharmon/slicehaus-backend/pkg/logger"
)

// CartFetch returns the session's priced cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSession(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		priced, err := svc.View(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(priced))
	}
}

// CartAddItem adds one unit of a product and returns the repriced cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSession(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		priced, err := svc.AddItem(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(priced))
	}
}

// CartAdjustItem shifts a line's quantity by a signed delta.
func CartAdjustItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSession(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AdjustItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		priced, err := svc.AdjustItem(r.Context(), sessionID, productID, payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(priced))
	}
}

// CartRemoveItem drops a line entirely.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSession(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		priced, err := svc.RemoveItem(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(priced))
	}
}

// CartClear empties the session's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSession(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		priced, err := svc.Clear(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(priced))
	}
}

// CartMerge folds a guest cart into the stored one. The stored cart is the
// base; shared lines sum their quantities and keep the stored snapshot.
func CartMerge(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSession(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload MergeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		incoming, err := payload.toCart()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		priced, err := svc.Merge(r.Context(), sessionID, incoming)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(priced))
	}
}

func requireSession(r *http.Request, svc cartsvc.Service) (string, error) {
	if svc == nil {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sessionID, nil
}
