package http

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/storefront/internal/http/handlers"
	rl "github.com/rogerio-castellano/storefront/internal/http/rate_limiter"
)

// NewRouter mounts the storefront API on a chi router. limiter may be nil to
// disable rate limiting (tests do this).
func NewRouter(h *handlers.Handler, limiter *rl.Limiter) http.Handler {
	r := chi.NewRouter()

	if limiter != nil {
		r.Use(rateLimitMiddleware(limiter))
	}

	r.Get("/health", handlers.HealthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProductsHandler)
		r.Post("/products", h.CreateProductHandler)
		r.Get("/products/{id}", h.GetProductByIDHandler)
		r.Patch("/products/{id}/inventory", h.UpdateInventoryHandler)
		r.Delete("/products/{id}", h.DeleteProductHandler)

		r.Get("/cart", h.GetCartHandler)
		r.Post("/cart", h.AddToCartHandler)
		r.Patch("/cart/{id}", h.UpdateCartItemHandler)
		r.Delete("/cart/{id}", h.RemoveCartItemHandler)
	})

	return r
}

func rateLimitMiddleware(limiter *rl.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiter.GetVisitor(ip).Allow() {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
