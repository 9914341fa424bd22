// internal/solver/solver.go
//
// Solver ties the word pools to their score cache.
// Responsibilities:
//   - Build the cache once from the guess and answer pools.
//   - Rank guesses by worst case over the full answer set.
//   - Keep the guess pool and the cache rows in the same (ranked) order.
//
// A Solver is read-only after New returns and may be shared between
// goroutines; per-run mutable state lives in Scratch and in the search run.

package solver

import (
	"github.com/robalobadob/wordle-solver/internal/cache"
	"github.com/robalobadob/wordle-solver/internal/game"
)

// Options tune Solver construction.
type Options struct {
	// Progress is forwarded to cache.Build and called after each scored guess.
	Progress func(rows int)
}

// Solver answers solvability and greedy questions over fixed word pools.
type Solver struct {
	guesses  []game.Word // ranked order; guesses[i] is cache row i
	answers  []game.Word
	worst    []int // worst[i] is the worst case of guesses[i] over all answers
	cache    *cache.ScoreCache
	byAnswer map[string]int
}

// RankedWord is one line of the guess ranking.
type RankedWord struct {
	Word  string `json:"word"`
	Worst int    `json:"worst"`
}

// New scores every guess against every answer and ranks the guesses.
// It fails only when the pools are empty or words differ in length.
func New(guesses, answers []game.Word, opts Options) (*Solver, error) {
	c, err := cache.Build(guesses, answers, opts.Progress)
	if err != nil {
		return nil, err
	}
	ranked := Rank(c, allIndices(len(answers)))
	order := make([]int, len(ranked))
	for i, r := range ranked {
		order[i] = r.Index
	}
	return assemble(c, guesses, answers, order), nil
}

// assemble lays the guess pool and cache out in the given row order.
func assemble(c *cache.ScoreCache, guesses, answers []game.Word, order []int) *Solver {
	s := &Solver{
		guesses:  make([]game.Word, len(order)),
		answers:  answers,
		worst:    make([]int, len(order)),
		cache:    c.Permute(order),
		byAnswer: make(map[string]int, len(answers)),
	}
	for a, w := range answers {
		if _, dup := s.byAnswer[string(w)]; !dup {
			s.byAnswer[string(w)] = a
		}
	}
	all := s.AllAnswers()
	counts := make([]int, c.NumCodes())
	for i, g := range order {
		s.guesses[i] = guesses[g]
		s.worst[i], _ = worstCase(s.cache.Row(i), all, counts)
	}
	return s
}

// Ranking returns every guess with its worst case, best first.
func (s *Solver) Ranking() []RankedWord {
	out := make([]RankedWord, len(s.guesses))
	for i, w := range s.guesses {
		out[i] = RankedWord{Word: string(w), Worst: s.worst[i]}
	}
	return out
}

// AllAnswers returns the candidate set of every answer index.
func (s *Solver) AllAnswers() []int {
	return allIndices(len(s.answers))
}

// AnswerIndex looks up an answer word.
func (s *Solver) AnswerIndex(word string) (int, bool) {
	a, ok := s.byAnswer[string(game.ParseWord(word))]
	return a, ok
}

// Answer returns the answer word at index a. The pools stay private so they
// cannot change after the cache is built.
func (s *Solver) Answer(a int) string { return string(s.answers[a]) }

// Guess returns the guess word at ranked position g.
func (s *Solver) Guess(g int) string { return string(s.guesses[g]) }

func (s *Solver) NumGuesses() int { return len(s.guesses) }
func (s *Solver) NumAnswers() int { return len(s.answers) }
func (s *Solver) WordLen() int    { return s.cache.WordLen() }

// NewScratch returns a Scratch sized for this solver's Codes.
func (s *Solver) NewScratch() *Scratch { return NewScratch(s.cache.NumCodes()) }

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
