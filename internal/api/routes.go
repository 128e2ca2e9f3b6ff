// Route registration and chi router setup.
// Public routes: /healthz, /health, /api/quote, /api/social and static files.
// /api/ai is public unless a JWT secret is configured; /api/usage exists only with audit + auth.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/matiasleandrokruk/promptrelay/internal/api/handlers"
	apmiddleware "github.com/matiasleandrokruk/promptrelay/internal/api/middleware"
)

// Deps carries everything NewRouter needs. Zero values disable the optional parts.
type Deps struct {
	Replies handlers.ReplyService
	Quotes  handlers.QuotePicker
	Usage   handlers.UsageLister // nil disables GET /api/usage

	JWTSecret []byte // empty leaves /api/ai public

	CORSAllowedOrigins []string
	RateLimitMax       int // <= 0 disables rate limiting
	RateLimitWindow    time.Duration
	StaticDir          string
}

// NewRouter creates and configures a chi router with all routes.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apmiddleware.SecureHeaders)
	r.Use(cors.Handler(corsOptions(deps.CORSAllowedOrigins)))

	// Health check, used by load balancers and probes
	r.Get("/healthz", health)
	r.Get("/health", health)

	aiHandler := handlers.NewAIHandler(deps.Replies)
	quoteHandler := handlers.NewQuoteHandler(deps.Quotes)

	r.Route("/api", func(r chi.Router) {
		if deps.RateLimitMax > 0 {
			r.Use(httprate.LimitByIP(deps.RateLimitMax, deps.RateLimitWindow))
		}

		r.Get("/quote", quoteHandler.Random) // GET /api/quote
		r.Post("/social", handlers.Share)    // POST /api/social

		if len(deps.JWTSecret) == 0 {
			r.Post("/ai", aiHandler.Ask) // POST /api/ai
			return
		}

		// Protected group: Bearer JWT required
		r.Group(func(r chi.Router) {
			r.Use(apmiddleware.Auth(deps.JWTSecret))
			r.Post("/ai", aiHandler.Ask) // POST /api/ai
			if deps.Usage != nil {
				r.Get("/usage", handlers.NewUsageHandler(deps.Usage).List) // GET /api/usage
			}
		})
	})

	if deps.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(deps.StaticDir)))
	}

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}
}
