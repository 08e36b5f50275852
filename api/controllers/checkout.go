package controllers

import (
	"net/http"

	"github.com/nharmon/slicehaus-backend/api/middleware"
	"github.com/nharmon/slicehaus-backend/api/responses"
	"github.com/nharmon/slicehaus-backend/api/validators"
	"github.com/nharmon/slicehaus-backend/internal/orders"
	"github.com/nharmon/slicehaus-backend/pkg/enums"
	pkgerrors "github.com/nharmon/slicehaus-backend/pkg/errors"
	"github.com/nharmon/slicehaus-backend/pkg/logger"
)

// CheckoutRequest is the checkout form payload. Totals are intentionally
// absent: pricing is always recomputed from the stored cart.
type CheckoutRequest struct {
	CustomerName  string  `json:"customer_name" validate:"required,min=2,max=120"`
	Phone         string  `json:"phone" validate:"required,min=7,max=32"`
	AddressLine   string  `json:"address_line" validate:"required,min=4,max=240"`
	City          string  `json:"city" validate:"required,min=2,max=120"`
	DeliverySlot  string  `json:"delivery_slot" validate:"required,oneof=asap scheduled"`
	ScheduledFor  *string `json:"scheduled_for,omitempty"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash_on_delivery card_on_delivery"`
}

// Checkout places an order from the session's cart.
func Checkout(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		var payload CheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), sessionID, orders.PlaceOrderInput{
			CustomerName:  payload.CustomerName,
			Phone:         payload.Phone,
			AddressLine:   payload.AddressLine,
			City:          payload.City,
			DeliverySlot:  enums.DeliverySlot(payload.DeliverySlot),
			ScheduledFor:  payload.ScheduledFor,
			PaymentMethod: enums.PaymentMethod(payload.PaymentMethod),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
