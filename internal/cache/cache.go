// internal/cache/cache.go
//
// Precomputed feedback for every (guess, answer) pair.
// Responsibilities:
//   - Score each guess against each answer exactly once.
//   - Serve O(1) lookups to the bucketing and search code.
//   - Reorder rows when the guess pool is re-ranked.
//
// The cache holds no references to the word pools; it is derived data and is
// never mutated after Build returns.

package cache

import (
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/game"
)

// ScoreCache is a dense row-major matrix: row g, column a holds
// Score(guesses[g], answers[a]).
type ScoreCache struct {
	guesses int
	answers int
	wordLen int
	codes   []game.Code
}

// Build scores every guess against every answer. progress, if non-nil, is
// called after each finished row with the number of rows done so far.
func Build(guesses, answers []game.Word, progress func(rows int)) (*ScoreCache, error) {
	if len(guesses) == 0 || len(answers) == 0 {
		return nil, fmt.Errorf("cache: empty pool (%d guesses, %d answers): %w",
			len(guesses), len(answers), game.ErrInvalidInput)
	}

	// Validate shapes up front so a bad word fails before the expensive part.
	n := len(answers[0])
	for _, w := range answers {
		if err := game.Validate(answers[0], w); err != nil {
			return nil, fmt.Errorf("cache: answer pool: %w", err)
		}
	}
	for _, w := range guesses {
		if err := game.Validate(w, answers[0]); err != nil {
			return nil, fmt.Errorf("cache: guess pool: %w", err)
		}
	}

	c := &ScoreCache{
		guesses: len(guesses),
		answers: len(answers),
		wordLen: n,
		codes:   make([]game.Code, len(guesses)*len(answers)),
	}
	for g, guess := range guesses {
		row := c.codes[g*c.answers : (g+1)*c.answers]
		for a, answer := range answers {
			code, err := game.Score(guess, answer)
			if err != nil {
				return nil, fmt.Errorf("cache: score %q/%q: %w", guess, answer, err)
			}
			row[a] = code
		}
		if progress != nil {
			progress(g + 1)
		}
	}
	return c, nil
}

// At returns the Code of guess g against answer a.
func (c *ScoreCache) At(g, a int) game.Code {
	return c.codes[g*c.answers+a]
}

// Row returns all Codes of guess g, indexed by answer. Callers must not modify it.
func (c *ScoreCache) Row(g int) []game.Code {
	return c.codes[g*c.answers : (g+1)*c.answers]
}

func (c *ScoreCache) Guesses() int  { return c.guesses }
func (c *ScoreCache) Answers() int  { return c.answers }
func (c *ScoreCache) WordLen() int  { return c.wordLen }
func (c *ScoreCache) NumCodes() int { return game.NumCodes(c.wordLen) }

// Permute returns a new cache whose row i is row order[i] of c. order must be
// a permutation of the guess indices.
func (c *ScoreCache) Permute(order []int) *ScoreCache {
	if len(order) != c.guesses {
		panic(fmt.Sprintf("cache: permutation of %d rows for %d guesses", len(order), c.guesses))
	}
	out := &ScoreCache{
		guesses: c.guesses,
		answers: c.answers,
		wordLen: c.wordLen,
		codes:   make([]game.Code, len(c.codes)),
	}
	seen := make([]bool, c.guesses)
	for i, g := range order {
		if seen[g] {
			panic(fmt.Sprintf("cache: row %d repeated in permutation", g))
		}
		seen[g] = true
		copy(out.Row(i), c.Row(g))
	}
	return out
}
