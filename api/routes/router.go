package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minithai/minithai-backend/api/controllers"
	"github.com/minithai/minithai-backend/api/middleware"
	cartsvc "github.com/minithai/minithai-backend/internal/cart"
	checkoutsvc "github.com/minithai/minithai-backend/internal/checkout"
	"github.com/minithai/minithai-backend/internal/contact"
	"github.com/minithai/minithai-backend/internal/content"
	"github.com/minithai/minithai-backend/internal/menu"
	"github.com/minithai/minithai-backend/internal/orders"
	"github.com/minithai/minithai-backend/internal/reservations"
	"github.com/minithai/minithai-backend/pkg/config"
	"github.com/minithai/minithai-backend/pkg/db"
	"github.com/minithai/minithai-backend/pkg/logger"
	"github.com/minithai/minithai-backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           db.Pinger
	Redis        db.Pinger
	HTTPMetrics  *metrics.HTTPMetrics
	Registry     *prometheus.Registry
	CartManager  *cartsvc.Manager
	Menu         menu.Service
	Orders       orders.Service
	Checkout     checkoutsvc.Service
	Reservations reservations.Service
	Contact      contact.Service
	Content      content.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Cart.SessionCookie, cfg.App.IsProd(), logg))

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", controllers.MenuList(deps.Menu, logg))
			r.Post("/", controllers.MenuCreate(deps.Menu, logg))
			r.Get("/{id}", controllers.MenuDetail(deps.Menu, logg))
			r.Put("/{id}", controllers.MenuUpdate(deps.Menu, logg))
			r.Delete("/{id}", controllers.MenuDelete(deps.Menu, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.CartManager, logg))
			r.Delete("/", controllers.CartClear(deps.CartManager, logg))
			r.Post("/items", controllers.CartAddItem(deps.CartManager, logg))
			r.Put("/items/{itemId}", controllers.CartUpdateItem(deps.CartManager, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.CartManager, logg))
			r.Get("/badge", controllers.CartBadge(deps.CartManager, logg))
			r.Get("/badge/stream", controllers.CartBadgeStream(deps.CartManager, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.Checkout, deps.CartManager, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(deps.Orders, logg))
			r.Get("/", controllers.OrderList(deps.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, logg))
			r.Put("/{orderId}/status", controllers.OrderUpdateStatus(deps.Orders, logg))
			r.Delete("/{orderId}", controllers.OrderDelete(deps.Orders, logg))
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", controllers.ReservationList(deps.Reservations, logg))
			r.Post("/", controllers.ReservationCreate(deps.Reservations, logg))
			r.Get("/{id}", controllers.ReservationDetail(deps.Reservations, logg))
			r.Patch("/{id}/status", controllers.ReservationUpdateStatus(deps.Reservations, logg))
			r.Patch("/{id}/cancel", controllers.ReservationCancel(deps.Reservations, logg))
		})

		r.Post("/contact", controllers.ContactSubmit(deps.Contact, logg))
		r.Get("/messages", controllers.MessageList(deps.Contact, logg))
		r.Delete("/messages/{id}", controllers.MessageDelete(deps.Contact, logg))

		r.Get("/gallery", controllers.GalleryList(deps.Content, logg))
		r.Get("/staff", controllers.StaffList(deps.Content, logg))
	})

	return r
}
