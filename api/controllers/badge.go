package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/minithai/minithai-backend/api/responses"
	cartsvc "github.com/minithai/minithai-backend/internal/cart"
	pkgerrors "github.com/minithai/minithai-backend/pkg/errors"
	"github.com/minithai/minithai-backend/pkg/logger"
)

type badgeView struct {
	Text        string `json:"text"`
	Visible     bool   `json:"visible"`
	Highlighted bool   `json:"highlighted"`
}

// CartBadge returns the current badge snapshot for polling clients.
// The session's display hub may have no display yet; the snapshot is
// then derived straight from the store.
func CartBadge(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionCart(w, r, manager, logg)
		if sess == nil {
			return
		}

		if display, ok := sess.DisplayHub.Badge().(*cartsvc.BadgeState); ok && display != nil {
			responses.WriteSuccess(w, badgeView{
				Text:        display.Text(),
				Visible:     display.Visible(),
				Highlighted: display.Highlighted(),
			})
			return
		}

		count := sess.Store.Count()
		responses.WriteSuccess(w, badgeView{
			Text:    fmt.Sprintf("%d", count),
			Visible: count > 0,
		})
	}
}

// CartBadgeStream mounts a display into the session's badge surface
// and streams its state over SSE until the client disconnects. A
// reconnect (Last-Event-ID set) counts as the surface resuming rather
// than a fresh mount.
func CartBadgeStream(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionCart(w, r, manager, logg)
		if sess == nil {
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		events := make(chan badgeView, 16)
		var display *cartsvc.BadgeState
		display = cartsvc.NewBadgeState(func() {
			view := badgeView{
				Text:        display.Text(),
				Visible:     display.Visible(),
				Highlighted: display.Highlighted(),
			}
			select {
			case events <- view:
			default:
			}
		})

		unmount := sess.DisplayHub.Mount(display)
		defer unmount()

		if r.Header.Get("Last-Event-ID") != "" {
			sess.Badge.NotifyResumed()
		} else {
			sess.Badge.NotifyMounted()
		}

		eventID := 0
		for {
			select {
			case <-r.Context().Done():
				return
			case view := <-events:
				payload, err := json.Marshal(view)
				if err != nil {
					if logg != nil {
						logg.Error(r.Context(), "encoding badge event failed", err)
					}
					continue
				}
				eventID++
				fmt.Fprintf(w, "id: %d\nevent: badge\ndata: %s\n\n", eventID, payload)
				flusher.Flush()
			}
		}
	}
}
