package router

import (
	"net/http"
	"time"

	"storefront/internal/auth"
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// requestTimeout bounds each request's context.
const requestTimeout = 30 * time.Second

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Product *handler.ProductHandler
	Order   *handler.OrderHandler
	Health  *handler.HealthHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, authenticator *auth.Authenticator, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware order: RequestID -> Recovery -> Logging -> CORS -> APIKeyAuth -> Authenticate
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))
	r.Use(chimw.Timeout(requestTimeout))

	r.NotFound(handler.NotFound(logger))
	r.MethodNotAllowed(handler.MethodNotAllowed(logger))

	r.Get("/health", h.Health.Check)

	r.Route("/api", func(r chi.Router) {
		r.Use(authenticator.Authenticate(logger))

		r.Get("/products", h.Product.GetAll)
		r.Get("/products/{id}", h.Product.GetByID)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/guest", h.Order.PlaceGuest)
			r.Get("/track/{trackingId}", h.Order.Track)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireUser)
				r.Post("/", h.Order.Place)
				r.Get("/mine", h.Order.ListMine)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/orders", h.Order.ListAll)
			r.Patch("/orders/{orderId}/status", h.Order.UpdateStatus)
		})
	})

	return r
}
