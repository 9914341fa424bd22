// internal/httpserver/routes_solve.go
//
// HTTP routes for exhaustive search and greedy simulation.
//   - POST /solve             → solvability verdict for the full answer set or a subset
//   - GET  /greedy/{answer}   → greedy game trace against one answer
//
// Full-set verdicts are deterministic for the loaded pools, so they are
// memoized in the store. Subset searches are always recomputed.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
)

// maxBudget bounds request budgets; searches deeper than this are pointless
// for any realistic pool and only burn CPU.
const maxBudget = 12

// mountSolve registers the search routes.
func (s *Server) mountSolve(r chi.Router) {
	r.Post("/solve", s.handleSolve)
	r.Get("/greedy/{answer}", s.handleGreedy)
}

// -----------------------------------------------------------------------------
// /solve

// solveReq is the request payload for /solve. Answers restricts the candidate
// set; empty means every answer.
type solveReq struct {
	Budget  int      `json:"budget"`
	Answers []string `json:"answers"`
	Plan    bool     `json:"plan"`
}

// solveRes wraps a verdict with whether it came from the memo.
type solveRes struct {
	solver.Verdict
	Cached bool `json:"cached"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Budget == 0 {
		req.Budget = s.opts.Budget
	}
	if req.Budget < 1 || req.Budget > maxBudget {
		writeError(w, http.StatusBadRequest, "bad_budget")
		return
	}

	cands, ok := s.candidates(req.Answers)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_answer")
		return
	}

	full := len(req.Answers) == 0
	key := store.Key(s.fingerprint, req.Budget, req.Plan)
	if full {
		v, err := s.store.Get(r.Context(), key)
		if err == nil {
			writeJSON(w, solveRes{Verdict: v, Cached: true})
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			log.Error().Err(err).Str("key", key).Msg("verdict lookup")
		}
	}

	v := s.solver.Search(req.Budget, cands, solver.SearchOptions{Plan: req.Plan})
	log.Info().
		Str("sub", subject(r)).
		Int("budget", v.Budget).
		Int("candidates", v.Candidates).
		Bool("solvable", v.Solvable).
		Int("calls", v.Calls).
		Msg("search")

	if full {
		if err := s.store.Save(r.Context(), key, v); err != nil {
			log.Error().Err(err).Str("key", key).Msg("verdict save")
		}
	}
	writeJSON(w, solveRes{Verdict: v})
}

// candidates maps answer words to a deduplicated index set. An empty list
// selects every answer.
func (s *Server) candidates(list []string) ([]int, bool) {
	if len(list) == 0 {
		return s.solver.AllAnswers(), true
	}
	seen := make(map[int]bool, len(list))
	out := make([]int, 0, len(list))
	for _, word := range list {
		a, ok := s.solver.AnswerIndex(word)
		if !ok {
			return nil, false
		}
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	return out, true
}

// -----------------------------------------------------------------------------
// /greedy/{answer}

func (s *Server) handleGreedy(w http.ResponseWriter, r *http.Request) {
	a, ok := s.solver.AnswerIndex(chi.URLParam(r, "answer"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_answer")
		return
	}
	budget, err := queryInt(r, "budget", s.opts.Budget)
	if err != nil || budget < 1 || budget > maxBudget {
		writeError(w, http.StatusBadRequest, "bad_budget")
		return
	}
	writeJSON(w, s.solver.Greedy(a, budget))
}
