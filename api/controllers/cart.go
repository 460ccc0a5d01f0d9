package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/minithai/minithai-backend/api/middleware"
	"github.com/minithai/minithai-backend/api/responses"
	"github.com/minithai/minithai-backend/api/validators"
	cartsvc "github.com/minithai/minithai-backend/internal/cart"
	pkgerrors "github.com/minithai/minithai-backend/pkg/errors"
	"github.com/minithai/minithai-backend/pkg/logger"
)

type cartView struct {
	Items []cartsvc.LineItem `json:"items"`
	Total decimal.Decimal    `json:"total"`
	Count int                `json:"count"`
}

func newCartView(store *cartsvc.Store) cartView {
	items := store.Items()
	if items == nil {
		items = []cartsvc.LineItem{}
	}
	return cartView{
		Items: items,
		Total: store.Total(),
		Count: store.Count(),
	}
}

// sessionCart resolves the caller's cart session, or writes the error.
func sessionCart(w http.ResponseWriter, r *http.Request, manager *cartsvc.Manager, logg *logger.Logger) *cartsvc.Session {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
		return nil
	}
	sess := manager.Session(r.Context(), sessionID)
	if sess == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
		return nil
	}
	return sess
}

// CartFetch returns the session's cart contents.
func CartFetch(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionCart(w, r, manager, logg)
		if sess == nil {
			return
		}
		responses.WriteSuccess(w, newCartView(sess.Store))
	}
}

type addItemRequest struct {
	ID       string          `json:"id" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"required"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity" validate:"gte=0,lte=99"`
}

// CartAddItem adds a line to the session's cart.
func CartAddItem(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionCart(w, r, manager, logg)
		if sess == nil {
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		added := sess.Store.AddItem(r.Context(), cartsvc.Candidate{
			ID:       payload.ID,
			Name:     payload.Name,
			Price:    payload.Price,
			Image:    payload.Image,
			Quantity: payload.Quantity,
		})
		if !added {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "item needs an id, a name and a positive price"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartView(sess.Store))
	}
}

type updateItemRequest struct {
	Quantity int `json:"quantity" validate:"lte=99"`
}

// CartUpdateItem sets a line's quantity; zero removes the line.
func CartUpdateItem(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionCart(w, r, manager, logg)
		if sess == nil {
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemId")
		if !sess.Store.UpdateQuantity(r.Context(), itemID, payload.Quantity) {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart"))
			return
		}
		responses.WriteSuccess(w, newCartView(sess.Store))
	}
}

// CartRemoveItem removes a line from the session's cart.
func CartRemoveItem(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionCart(w, r, manager, logg)
		if sess == nil {
			return
		}

		itemID := chi.URLParam(r, "itemId")
		if !sess.Store.RemoveItem(r.Context(), itemID) {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart"))
			return
		}
		responses.WriteSuccess(w, newCartView(sess.Store))
	}
}

// CartClear empties the session's cart.
func CartClear(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionCart(w, r, manager, logg)
		if sess == nil {
			return
		}

		sess.Store.Clear(r.Context())
		responses.WriteSuccess(w, newCartView(sess.Store))
	}
}
