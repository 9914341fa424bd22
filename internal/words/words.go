// internal/words/words.go
//
// Word list management for the solver.
//
// Responsibilities:
//   - Parse word lists (one word per line) from files or the embedded defaults.
//   - Build the guess and answer pools, making every answer a valid guess.
//   - Fingerprint the loaded pools so derived results can be keyed by them.
//
// Word Lists:
//   - "answers": candidate solutions.
//   - "allowed": extra valid guesses (answers are always added).
//
// Loading behavior (Load):
//   1. If both paths are set, load answers from the first and allowed guesses from the second.
//   2. If only the allowed path is set, use that list for both answers and guesses.
//   3. If neither is set, fall back to the embedded defaults in package assets.
//
// Constraints:
//   • Lines are trimmed and lowercased; blank lines and "#" comments are skipped.
//   • Every word must be exactly wordLen bytes of printable ASCII. A bad line
//     fails the whole load: a wrong word would silently corrupt every score.
//   • Duplicates are kept as-is.

package words

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/wordle-solver/assets"
	"github.com/robalobadob/wordle-solver/internal/game"
)

var (
	// ErrEmptyList reports a list without a single usable word.
	ErrEmptyList = errors.New("words: list is empty")
	// ErrWordLength reports a line whose length differs from the configured one.
	ErrWordLength = fmt.Errorf("words: wrong word length: %w", game.ErrInvalidInput)
)

// Pools are the two immutable word pools the solver works on.
type Pools struct {
	Guesses []game.Word
	Answers []game.Word
}

// Parse reads one word per line from r.
func Parse(r io.Reader, wordLen int) ([]game.Word, error) {
	if wordLen < 1 || wordLen > game.MaxWordLen {
		return nil, fmt.Errorf("words: word length %d outside 1..%d: %w", wordLen, game.MaxWordLen, game.ErrInvalidInput)
	}
	var out []game.Word
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		w := game.ParseWord(s)
		if len(w) != wordLen {
			return nil, fmt.Errorf("%w: line %d: %q has %d letters, want %d", ErrWordLength, line, s, len(w), wordLen)
		}
		if !isPrintable(w) {
			return nil, fmt.Errorf("words: line %d: %q: %w", line, s, game.ErrInvalidInput)
		}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmptyList
	}
	return out, nil
}

// ReadFile loads a word list file.
func ReadFile(path string, wordLen int) ([]game.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ws, err := Parse(f, wordLen)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ws, nil
}

// Default returns the embedded answer and guess-only lists.
func Default(wordLen int) (answers, allowed []game.Word, err error) {
	answers, err = parseEmbedded(assets.Answers, wordLen)
	if err != nil {
		return nil, nil, err
	}
	allowed, err = parseEmbedded(assets.Allowed, wordLen)
	if err != nil {
		return nil, nil, err
	}
	return answers, allowed, nil
}

func parseEmbedded(open func() (io.ReadCloser, error), wordLen int) ([]game.Word, error) {
	f, err := open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ws, err := Parse(f, wordLen)
	if err != nil {
		return nil, fmt.Errorf("embedded list: %w", err)
	}
	return ws, nil
}

// Load builds the pools from the configured files or the embedded defaults.
func Load(answersPath, allowedPath string, wordLen int) (*Pools, error) {
	var ansList, allowList []game.Word
	var err error

	switch {
	// Case 1: both lists provided
	case answersPath != "" && allowedPath != "":
		if ansList, err = ReadFile(answersPath, wordLen); err != nil {
			return nil, err
		}
		if allowList, err = ReadFile(allowedPath, wordLen); err != nil {
			return nil, err
		}

	// Case 2: only allowed file provided → use for both
	case answersPath == "" && allowedPath != "":
		if allowList, err = ReadFile(allowedPath, wordLen); err != nil {
			return nil, err
		}
		ansList = allowList

	// Case 3: answers only, or nothing → embedded guesses fill in
	default:
		embAnswers, embAllowed, err := Default(wordLen)
		if err != nil {
			return nil, err
		}
		ansList, allowList = embAnswers, embAllowed
		if answersPath != "" {
			if ansList, err = ReadFile(answersPath, wordLen); err != nil {
				return nil, err
			}
		}
	}

	return NewPools(allowList, ansList), nil
}

// NewPools returns pools whose guess pool is guesses followed by every answer
// not already in it, so every answer is also a valid guess.
func NewPools(guesses, answers []game.Word) *Pools {
	have := make(map[string]struct{}, len(guesses)+len(answers))
	pool := make([]game.Word, 0, len(guesses)+len(answers))
	for _, w := range guesses {
		have[string(w)] = struct{}{}
		pool = append(pool, w)
	}
	for _, w := range answers {
		if _, ok := have[string(w)]; ok {
			continue
		}
		have[string(w)] = struct{}{}
		pool = append(pool, w)
	}
	return &Pools{Guesses: pool, Answers: answers}
}

// Fingerprint is a short stable digest of both pools, in order.
func (p *Pools) Fingerprint() string {
	h, _ := blake2b.New256(nil)
	for _, list := range [][]game.Word{p.Guesses, p.Answers} {
		for _, w := range list {
			h.Write(w)
			h.Write([]byte{'\n'})
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// Stats returns the pool sizes: (answers, guesses).
func (p *Pools) Stats() (answersCount int, guessesCount int) {
	return len(p.Answers), len(p.Guesses)
}

// isPrintable reports whether w is all printable ASCII without spaces.
func isPrintable(w game.Word) bool {
	for _, c := range w {
		if c <= ' ' || c > '~' {
			return false
		}
	}
	return true
}
