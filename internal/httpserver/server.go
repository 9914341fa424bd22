// internal/httpserver/server.go
//
// HTTP server wiring for the solver API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Read-only solver endpoints: /words/stats, /score, /rank, /solve, /greedy/{answer}.
//   - Optional bearer-token guard when a JWT secret is configured.
//
// Notes:
//   - The Solver is immutable and shared; every search allocates its own scratch table.
//   - Full-answer-set verdicts are memoized in a store.Store keyed by the pool fingerprint.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Options configure a Server.
type Options struct {
	JWTSecret    string        // empty disables the token guard
	ClientOrigin string        // CORS origin
	Timeout      time.Duration // per-request handler timeout
	Budget       int           // default guess budget
}

// Server bundles router, solver and verdict memo.
type Server struct {
	r           *chi.Mux
	solver      *solver.Solver
	pools       *words.Pools
	fingerprint string
	store       store.Store
	opts        Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(s *solver.Solver, pools *words.Pools, st store.Store, opts Options) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}
	if opts.Budget < 1 {
		opts.Budget = 6
	}
	srv := &Server{
		r:           chi.NewRouter(),
		solver:      s,
		pools:       pools,
		fingerprint: pools.Fingerprint(),
		store:       st,
		opts:        opts,
	}

	// --- middleware ---
	srv.r.Use(chimw.RequestID)             // add X-Request-ID
	srv.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	srv.r.Use(accessLog)                   // zerolog access log
	srv.r.Use(chimw.Recoverer)             // recover from panics
	srv.r.Use(chimw.Timeout(opts.Timeout)) // bound handler time
	srv.r.Use(jsonContentType)             // default JSON responses
	srv.r.Use(cors(opts.ClientOrigin))     // credentials-friendly CORS

	// --- diagnostics ---
	srv.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","/words/stats","POST /score","/rank","POST /solve","/greedy/{answer}"]}`))
	})
	srv.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Solver endpoints, guarded when a secret is configured
	srv.r.Group(func(r chi.Router) {
		r.Use(requireToken(opts.JWTSecret))
		r.Get("/words/stats", srv.handleStats)
		r.Post("/score", srv.handleScore)
		r.Get("/rank", srv.handleRank)
		srv.mountSolve(r)
	})

	// JSON 404 for easier debugging
	srv.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return srv
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

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
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, If-None-Match")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one zerolog event per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------ WORDS --------------------------------------

type statsRes struct {
	Answers     int    `json:"answers"`
	Guesses     int    `json:"guesses"`
	WordLen     int    `json:"wordLen"`
	Fingerprint string `json:"fingerprint"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	a, g := s.pools.Stats()
	writeJSON(w, statsRes{Answers: a, Guesses: g, WordLen: s.solver.WordLen(), Fingerprint: s.fingerprint})
}

// ------------------------------ SCORE --------------------------------------

// scoreReq/Res payloads for POST /score.
type scoreReq struct {
	Guess  string `json:"guess"`
	Answer string `json:"answer"`
}
type scoreRes struct {
	Code    game.Code `json:"code"`
	Marks   []string  `json:"marks"` // "correct" | "present" | "absent"
	Pattern string    `json:"pattern"`
}

// handleScore scores any pair of equal-length words; they need not be in the pools.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	marks, err := game.Marks(game.ParseWord(req.Guess), game.ParseWord(req.Answer))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res := scoreRes{Code: game.Encode(marks), Pattern: game.Pattern(marks)}
	for _, m := range marks {
		res.Marks = append(res.Marks, m.String())
	}
	writeJSON(w, res)
}

// ------------------------------- RANK --------------------------------------

// handleRank lists the best guesses by worst case. The body depends only on
// the pools and the limit, so those two make up the ETag.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, "bad_limit")
		return
	}
	ranking := s.solver.Ranking()
	if limit == 0 || limit > len(ranking) {
		limit = len(ranking)
	}
	ranking = ranking[:limit]

	etag := `"` + s.fingerprint + "-" + strconv.Itoa(limit) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, ranking)
}

// ------------------------------- util --------------------------------------

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// queryInt parses an integer query parameter, returning def when absent.
func queryInt(r *http.Request, k string, def int) (int, error) {
	v := r.URL.Query().Get(k)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
