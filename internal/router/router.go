package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Session  *handler.SessionHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// A nil limiter disables rate limiting.
func New(
	h Handlers,
	sessions middleware.SessionParser,
	limiter *middleware.RateLimiter,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no session required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	customer := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireSession(fn)
	}
	requireAdmin := middleware.RequireAdmin(logger)
	admin := func(fn http.HandlerFunc) http.Handler {
		return requireAdmin(fn)
	}

	// Sessions
	mux.HandleFunc("POST /api/session", h.Session.Create)
	mux.HandleFunc("POST /api/session/admin", h.Session.AdminLogin)
	mux.Handle("DELETE /api/session/admin", customer(h.Session.AdminLogout))

	// Catalog
	mux.HandleFunc("GET /api/categories", h.Category.List)
	mux.HandleFunc("GET /api/categories/{id}", h.Category.GetByID)
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)

	// Cart and checkout
	mux.Handle("GET /api/cart", customer(h.Cart.Get))
	mux.Handle("DELETE /api/cart", customer(h.Cart.Clear))
	mux.Handle("POST /api/cart/items", customer(h.Cart.AddItem))
	mux.Handle("PUT /api/cart/items/{id}", customer(h.Cart.UpdateItem))
	mux.Handle("DELETE /api/cart/items/{id}", customer(h.Cart.RemoveItem))
	mux.Handle("POST /api/checkout", customer(h.Order.Checkout))
	mux.Handle("GET /api/orders/{id}", customer(h.Order.GetByID))

	// Admin
	mux.Handle("POST /api/admin/products", admin(h.Product.Create))
	mux.Handle("PUT /api/admin/products/{id}", admin(h.Product.Update))
	mux.Handle("DELETE /api/admin/products/{id}", admin(h.Product.Delete))
	mux.Handle("POST /api/admin/categories", admin(h.Category.Create))
	mux.Handle("PUT /api/admin/categories/{id}", admin(h.Category.Update))
	mux.Handle("DELETE /api/admin/categories/{id}", admin(h.Category.Delete))
	mux.Handle("GET /api/admin/orders", admin(h.Order.List))
	mux.Handle("PATCH /api/admin/orders/{id}/status", admin(h.Order.UpdateStatus))

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> Session -> RateLimit
	var handler http.Handler = mux
	if limiter != nil {
		handler = limiter.Middleware(handler)
	}
	handler = middleware.Session(sessions, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	return otelhttp.NewHandler(handler, "storefront.http")
}
