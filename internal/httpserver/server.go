// internal/httpserver/server.go
//
// HTTP server wiring for the breed quiz backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Quiz endpoints: mounted under /quiz (routes_quiz.go).
//   - Movie search endpoints: mounted under /movies (routes_movies.go).
//   - Space image search endpoints: mounted under /space (routes_space.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled for the single configured page origin.
//   - Handlers are the thin binding between the browser page and the domain packages;
//     they never hold rendering state of their own.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/breedquiz/apps/go-server/internal/movies"
	"github.com/robalobadob/breedquiz/apps/go-server/internal/quiz"
	"github.com/robalobadob/breedquiz/apps/go-server/internal/space"
)

// SpaceSearcher runs NASA image searches; *space.Client satisfies it.
type SpaceSearcher interface {
	Search(ctx context.Context, query string) ([]space.Card, error)
}

// Deps are the domain components the server binds to HTTP.
type Deps struct {
	Quiz      *quiz.Controller
	Movies    *movies.Catalog
	Formatter *movies.Formatter
	Space     SpaceSearcher

	ClientOrigin   string        // CORS origin; defaults to http://localhost:5173
	RequestTimeout time.Duration // 0 disables the handler timeout
}

// Server bundles the router and the components it serves.
type Server struct {
	r    *chi.Mux
	deps Deps

	quizMu sync.Mutex // serializes quiz controller calls
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.ClientOrigin == "" {
		d.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), deps: d}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	if d.RequestTimeout > 0 {
		s.r.Use(chimw.Timeout(d.RequestTimeout)) // bound handler time
	}
	s.r.Use(jsonContentType)      // default JSON responses
	s.r.Use(cors(d.ClientOrigin)) // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"breedquiz-go","endpoints":["/health","/quiz","/movies/search","/space/search"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	if d.Quiz != nil {
		s.mountQuiz(s.r)
	}
	if d.Movies != nil {
		s.mountMovies(s.r)
	}
	if d.Space != nil {
		s.mountSpace(s.r)
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- helpers -----------------------------------

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a plain {"error": msg} body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
