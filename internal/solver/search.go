// internal/solver/search.go
//
// Exhaustive solvability search.
//
// solvable(N, C) holds when every answer in C can be pinned down and guessed
// within N guesses:
//   - |C| == 1: always (the remaining guess is the answer itself).
//   - N == 1:   only when |C| == 1.
//   - N == 2:   some guess gives every candidate a distinct Code.
//   - N > 2:    some guess splits C into buckets that are each solvable(N-1).
//
// Guesses are tried in ranked order and buckets largest first, so successes
// and failures are both found early.

package solver

import (
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/game"
)

// SearchOptions tune one search run. The zero value answers yes/no only.
type SearchOptions struct {
	// Trace, if set, receives one Step per guess whose buckets were explored,
	// plus the outcome of each two-guess check.
	Trace func(Step)
	// Plan records the decision tree of a successful search in Verdict.Plan.
	Plan bool
	// Scratch is reused when set; otherwise the run allocates its own.
	Scratch *Scratch
}

// Step is one diagnostic record of a search run.
type Step struct {
	Depth      int    `json:"depth"`
	Budget     int    `json:"budget"`
	Guess      string `json:"guess,omitempty"` // empty when no guess worked at a two-guess node
	Candidates int    `json:"candidates"`
	Buckets    int    `json:"buckets"`
	Largest    int    `json:"largest"`
	OK         bool   `json:"ok"`
}

// Node is one node of a solving decision tree. Leaves carry the answer to
// guess; inner nodes carry the guess to play and one branch per feedback.
type Node struct {
	Guess    string   `json:"guess,omitempty"`
	Answer   string   `json:"answer,omitempty"`
	Branches []Branch `json:"branches,omitempty"`
}

// Branch follows one feedback Code from an inner Node.
type Branch struct {
	Code    game.Code `json:"code"`
	Pattern string    `json:"pattern"`
	Next    *Node     `json:"next"`
}

// Verdict is the result of a search run. Solvable false is a normal outcome.
type Verdict struct {
	Budget     int    `json:"budget"`
	Candidates int    `json:"candidates"`
	Solvable   bool   `json:"solvable"`
	First      string `json:"first,omitempty"` // opening guess of the solution
	Tried      int    `json:"tried"`           // opening guesses examined
	Calls      int    `json:"calls"`           // recursive calls made
	Plan       *Node  `json:"plan,omitempty"`
}

// run carries the mutable state of one search.
type run struct {
	s       *Solver
	opts    SearchOptions
	scratch *Scratch
	counts  []int
	first   string
	tried   int
	calls   int
}

// Solvable reports whether cands can always be solved within budget guesses.
func (s *Solver) Solvable(budget int, cands []int) bool {
	return s.Search(budget, cands, SearchOptions{}).Solvable
}

// Search runs the exhaustive search. budget must be at least 1 and cands must
// be a non-empty set of answer indices.
func (s *Solver) Search(budget int, cands []int, opts SearchOptions) Verdict {
	if budget < 1 {
		panic(fmt.Sprintf("solver: budget %d < 1", budget))
	}
	if len(cands) == 0 {
		panic("solver: empty candidate set")
	}
	r := s.newRun(opts)
	node, ok := r.solve(budget, cands, 0)
	v := Verdict{
		Budget:     budget,
		Candidates: len(cands),
		Solvable:   ok,
		Tried:      r.tried,
		Calls:      r.calls,
	}
	if ok {
		v.First = r.first
		v.Plan = node
	}
	return v
}

// MinBudget returns the smallest budget in [1, max] that solves the full
// answer set, or false when none does.
func (s *Solver) MinBudget(max int, opts SearchOptions) (Verdict, bool) {
	if opts.Scratch == nil {
		opts.Scratch = s.NewScratch()
	}
	all := s.AllAnswers()
	var v Verdict
	for budget := 1; budget <= max; budget++ {
		v = s.Search(budget, all, opts)
		if v.Solvable {
			return v, true
		}
	}
	return v, false
}

func (s *Solver) newRun(opts SearchOptions) *run {
	sc := opts.Scratch
	if sc == nil {
		sc = s.NewScratch()
	} else if len(sc.seen) < s.cache.NumCodes() {
		panic(fmt.Sprintf("solver: scratch of %d entries for %d codes", len(sc.seen), s.cache.NumCodes()))
	}
	return &run{
		s:       s,
		opts:    opts,
		scratch: sc,
		counts:  make([]int, s.cache.NumCodes()),
	}
}

func (r *run) solve(budget int, cands []int, depth int) (*Node, bool) {
	r.calls++
	switch {
	case len(cands) == 1:
		return r.leaf(cands[0]), true
	case budget <= 1:
		return nil, false
	case budget == 2:
		return r.solveTwo(cands, depth)
	}
	return r.solveGeneral(budget, cands, depth)
}

// solveTwo looks for a guess whose Codes are injective over cands. The final
// guess must be the answer, so the first one has to isolate every candidate.
func (r *run) solveTwo(cands []int, depth int) (*Node, bool) {
	if len(cands) > r.s.cache.NumCodes() {
		r.trace(Step{Depth: depth, Budget: 2, Candidates: len(cands)})
		return nil, false
	}
	for g := 0; g < len(r.s.guesses); g++ {
		if depth == 0 {
			r.tried++
		}
		if !r.injective(g, cands) {
			continue
		}
		if depth == 0 {
			r.first = string(r.s.guesses[g])
		}
		r.trace(Step{Depth: depth, Budget: 2, Guess: string(r.s.guesses[g]),
			Candidates: len(cands), Buckets: len(cands), Largest: 1, OK: true})
		if !r.opts.Plan {
			return nil, true
		}
		return r.splitNode(g, cands), true
	}
	r.trace(Step{Depth: depth, Budget: 2, Candidates: len(cands)})
	return nil, false
}

func (r *run) injective(g int, cands []int) bool {
	row := r.s.cache.Row(g)
	r.scratch.begin()
	for _, a := range cands {
		if r.scratch.mark(row[a]) {
			return false
		}
	}
	return true
}

func (r *run) solveGeneral(budget int, cands []int, depth int) (*Node, bool) {
	limit := capacity(r.s.cache.NumCodes(), budget-1)
	for g := 0; g < len(r.s.guesses); g++ {
		if depth == 0 {
			r.tried++
		}
		worst, n := worstCase(r.s.cache.Row(g), cands, r.counts)
		// A guess that does not split cands leaves the same problem with one
		// guess fewer; some splitting guess does at least as well.
		if n == 1 || worst > limit {
			continue
		}

		buckets := Buckets(r.s.cache, g, cands)
		var node *Node
		if r.opts.Plan {
			node = &Node{Guess: string(r.s.guesses[g])}
		}
		ok := true
		for _, b := range buckets {
			child, solved := r.solve(budget-1, b.Members, depth+1)
			if !solved {
				ok = false
				break
			}
			if node != nil {
				node.Branches = append(node.Branches, r.branch(b.Code, child))
			}
		}
		r.trace(Step{Depth: depth, Budget: budget, Guess: string(r.s.guesses[g]),
			Candidates: len(cands), Buckets: len(buckets), Largest: worst, OK: ok})
		if ok {
			if depth == 0 {
				r.first = string(r.s.guesses[g])
			}
			return node, true
		}
	}
	return nil, false
}

// splitNode builds the plan node of a guess that isolates every candidate.
func (r *run) splitNode(g int, cands []int) *Node {
	node := &Node{Guess: string(r.s.guesses[g])}
	for _, b := range Buckets(r.s.cache, g, cands) {
		node.Branches = append(node.Branches, r.branch(b.Code, r.leaf(b.Members[0])))
	}
	return node
}

func (r *run) leaf(a int) *Node {
	if !r.opts.Plan {
		return nil
	}
	return &Node{Answer: string(r.s.answers[a])}
}

func (r *run) branch(code game.Code, next *Node) Branch {
	return Branch{
		Code:    code,
		Pattern: game.Pattern(game.Decode(code, r.s.cache.WordLen())),
		Next:    next,
	}
}

func (r *run) trace(st Step) {
	if r.opts.Trace != nil {
		r.opts.Trace(st)
	}
}

// capacity is the most candidates k guesses can tell apart: numCodes^(k-1).
func capacity(numCodes, k int) int {
	if k < 1 {
		return 0
	}
	c := 1
	for i := 1; i < k; i++ {
		if c > (1<<31)/numCodes {
			return 1 << 31
		}
		c *= numCodes
	}
	return c
}
