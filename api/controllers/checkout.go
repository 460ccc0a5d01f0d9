package controllers

import (
	"net/http"

	"github.com/minithai/minithai-backend/api/responses"
	"github.com/minithai/minithai-backend/api/validators"
	cartsvc "github.com/minithai/minithai-backend/internal/cart"
	checkoutsvc "github.com/minithai/minithai-backend/internal/checkout"
	"github.com/minithai/minithai-backend/pkg/logger"
)

// Checkout places an order from the session's cart. The cart is
// cleared only when the order was stored.
func Checkout(svc checkoutsvc.Service, manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionCart(w, r, manager, logg)
		if sess == nil {
			return
		}

		var payload checkoutsvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), sess.Store, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, order.OrderID)
			logg.Info(ctx, "order placed")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
