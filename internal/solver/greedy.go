package solver

import (
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/game"
)

// Turn is one guess of a greedy game.
type Turn struct {
	Guess     string    `json:"guess"`
	Code      game.Code `json:"code"`
	Pattern   string    `json:"pattern"`
	Remaining int       `json:"remaining"` // candidates left after the feedback
}

// Trace is the record of one greedy game against a known target.
type Trace struct {
	Target  string `json:"target"`
	Budget  int    `json:"budget"`
	Turns   []Turn `json:"turns"`
	Guesses int    `json:"guesses"`
	Solved  bool   `json:"solved"`          // Guesses <= Budget
	Stuck   bool   `json:"stuck,omitempty"` // no guess could split the candidates
}

// Greedy plays against answer index target, each turn choosing the guess with
// the smallest worst case over the remaining candidates (ties by rank). The
// game ends when the target is guessed, which happens either by chance while
// narrowing or as the final guess once it is the only candidate left.
// Stuck is set only when no guess splits the candidates and none of them can
// be guessed.
//
// This is an upper bound on the guesses needed, not a proof of optimality.
func (s *Solver) Greedy(target, budget int) Trace {
	if target < 0 || target >= len(s.answers) {
		panic(fmt.Sprintf("solver: target %d out of range", target))
	}
	n := s.cache.WordLen()
	done := game.AllCorrect(n)
	counts := make([]int, s.cache.NumCodes())
	tr := Trace{Target: string(s.answers[target]), Budget: budget}

	cands := s.AllAnswers()
	for len(cands) > 1 {
		g, worst := s.bestGuess(cands, counts)
		if worst == len(cands) {
			// Every guess scores all candidates alike. If one of them scores
			// all-correct, it does so for every candidate and ends the game.
			var ok bool
			if g, ok = s.finishingGuess(cands[0], done); !ok {
				tr.Stuck = true
				break
			}
		}
		for _, b := range Buckets(s.cache, g, cands) {
			if !contains(b.Members, target) {
				continue
			}
			tr.Turns = append(tr.Turns, Turn{
				Guess:     string(s.guesses[g]),
				Code:      b.Code,
				Pattern:   game.Pattern(game.Decode(b.Code, n)),
				Remaining: len(b.Members),
			})
			cands = b.Members
			break
		}
		if tr.Turns[len(tr.Turns)-1].Code == done {
			break
		}
	}

	if !tr.Stuck && (len(tr.Turns) == 0 || tr.Turns[len(tr.Turns)-1].Code != done) {
		tr.Turns = append(tr.Turns, Turn{
			Guess:     tr.Target,
			Code:      done,
			Pattern:   game.Pattern(game.Decode(done, n)),
			Remaining: 1,
		})
	}
	tr.Guesses = len(tr.Turns)
	tr.Solved = !tr.Stuck && tr.Guesses <= budget
	return tr
}

// bestGuess returns the ranked guess with the smallest worst case over cands.
func (s *Solver) bestGuess(cands []int, counts []int) (int, int) {
	best, bestWorst := 0, len(cands)+1
	for g := range s.guesses {
		worst, _ := worstCase(s.cache.Row(g), cands, counts)
		if worst < bestWorst {
			best, bestWorst = g, worst
			if worst == 1 {
				break
			}
		}
	}
	return best, bestWorst
}

// finishingGuess returns a guess scoring all-correct against answer a.
func (s *Solver) finishingGuess(a int, done game.Code) (int, bool) {
	for g := range s.guesses {
		if s.cache.At(g, a) == done {
			return g, true
		}
	}
	return 0, false
}

func contains(xs []int, x int) bool {
	for _, y := range xs {
		if y == x {
			return true
		}
	}
	return false
}
