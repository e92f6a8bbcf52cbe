package router

import (
	"net/http"

	"pizza-shop/internal/handler"
	"pizza-shop/internal/middleware"
	"pizza-shop/internal/service"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	authHandler *handler.AuthHandler,
	cartHandler *handler.CartHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	userHandler *handler.UserHandler,
	authService service.AuthService,
	uploadDir string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(authService, logger)
	requireAdmin := middleware.RequireAdmin(authService, logger)

	authed := func(h http.HandlerFunc) http.Handler { return requireAuth(h) }
	admin := func(h http.HandlerFunc) http.Handler { return requireAdmin(h) }

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Auth routes
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.Handle("POST /auth/logout", authed(authHandler.Logout))
	mux.Handle("PUT /auth/change-password", authed(authHandler.ChangePassword))

	// Cart routes
	mux.Handle("GET /cart", authed(cartHandler.Get))
	mux.Handle("POST /cart/product/{id}", authed(cartHandler.AddProduct))
	mux.Handle("DELETE /cart/product/{id}", authed(cartHandler.RemoveProduct))

	// Catalog routes: reads are public, writes are admin-only
	mux.HandleFunc("GET /products", productHandler.List)
	mux.HandleFunc("GET /products/{id}", productHandler.Get)
	mux.Handle("POST /products", admin(productHandler.Create))
	mux.Handle("PUT /products/{id}", admin(productHandler.Update))
	mux.Handle("PATCH /products/{id}", admin(productHandler.Patch))
	mux.Handle("DELETE /products/{id}", admin(productHandler.Delete))

	// Order routes
	mux.Handle("POST /orders", authed(orderHandler.Create))
	mux.Handle("GET /orders/{id}", authed(orderHandler.Get))
	mux.Handle("PUT /orders/{id}", admin(orderHandler.Update))
	mux.Handle("PATCH /orders/{id}", admin(orderHandler.Patch))
	mux.Handle("DELETE /orders/{id}", admin(orderHandler.Delete))

	// User routes
	mux.Handle("GET /users", admin(userHandler.List))
	mux.Handle("GET /users/{id}", authed(userHandler.Get))
	mux.Handle("PATCH /users/{id}", authed(userHandler.Patch))
	mux.Handle("DELETE /users/{id}", admin(userHandler.Delete))

	// Product images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
