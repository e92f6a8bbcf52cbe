package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pizza-shop/internal/model"
	"pizza-shop/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey int

const (
	principalKey contextKey = iota
	sessionKey
)

// PrincipalFrom returns the authenticated user stored by RequireAuth.
func PrincipalFrom(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(principalKey).(*model.User)
	return user, ok
}

// SessionFrom returns the session id stored by RequireAuth.
func SessionFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(sessionKey).(uuid.UUID)
	return id, ok
}

// WithPrincipal stores an authenticated user and session on the context.
func WithPrincipal(ctx context.Context, user *model.User, sessionID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, principalKey, user)
	return context.WithValue(ctx, sessionKey, sessionID)
}

func writeUnauthorised(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"Unauthorized"}`))
}

// RequireAuth resolves the bearer token into a user and stores it on the
// request context. Every failure mode answers with the same 401 body.
func RequireAuth(auth service.AuthService, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeUnauthorised(w)
				return
			}

			user, sessionID, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("authentication failed")
				writeUnauthorised(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), user, sessionID)))
		})
	}
}

// RequireAdmin restricts a route to admin users. A non-admin gets the
// same 401 as an unauthenticated caller, never a 403, so the route
// reveals nothing about the privilege it needs.
func RequireAdmin(auth service.AuthService, logger zerolog.Logger) func(http.Handler) http.Handler {
	requireAuth := RequireAuth(auth, logger)
	return func(next http.Handler) http.Handler {
		return requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := PrincipalFrom(r.Context())
			if !ok || !user.Admin {
				writeUnauthorised(w)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// CORS adds CORS headers to the response.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Logging logs HTTP requests with timing information.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create a response writer wrapper to capture status code
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.statusCode).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Msg("http request")
		})
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().
						Interface("panic", err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"message":"Internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code.
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
