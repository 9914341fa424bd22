// internal/game/engine.go
//
// Scoring engine: turns a (guess, answer) pair into feedback.
// Responsibilities:
//   - Validate word shapes (equal, non-zero length up to MaxWordLen).
//   - Score guesses using the classic two-pass algorithm.
//   - Pack/unpack feedback as base-3 Codes.
//
// Notes:
//   - Exact matches consume answer slots before any presence check.
//   - Presence checks consume the leftmost unused matching answer slot, so a
//     repeated guess letter never earns more marks than the answer has copies.

package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/TwiN/go-color"
)

// ErrInvalidInput reports a guess/answer pair that cannot be scored.
var ErrInvalidInput = errors.New("invalid input")

// Validate checks that guess and answer can be scored against each other.
func Validate(guess, answer Word) error {
	switch {
	case len(guess) != len(answer):
		return fmt.Errorf("%w: %q and %q differ in length", ErrInvalidInput, guess, answer)
	case len(guess) == 0:
		return fmt.Errorf("%w: empty word", ErrInvalidInput)
	case len(guess) > MaxWordLen:
		return fmt.Errorf("%w: %q is longer than %d", ErrInvalidInput, guess, MaxWordLen)
	}
	return nil
}

// Score returns the packed feedback for guess against answer.
func Score(guess, answer Word) (Code, error) {
	if err := Validate(guess, answer); err != nil {
		return 0, err
	}
	var buf [MaxWordLen]CharScore
	marks := buf[:len(guess)]
	mark(guess, answer, marks)
	return Encode(marks), nil
}

// Marks returns the unpacked per-position feedback for guess against answer.
func Marks(guess, answer Word) ([]CharScore, error) {
	if err := Validate(guess, answer); err != nil {
		return nil, err
	}
	marks := make([]CharScore, len(guess))
	mark(guess, answer, marks)
	return marks, nil
}

// mark fills marks for an already validated pair.
//
// Pass 1:
//   - Mark exact matches Correct and use up their answer slots.
//
// Pass 2:
//   - For each remaining guess letter, consume the first unused equal answer
//     letter (Present) or leave it Absent.
func mark(guess, answer Word, marks []CharScore) {
	var buf [MaxWordLen]bool
	used := buf[:len(answer)]

	for i := range guess {
		if guess[i] == answer[i] {
			marks[i] = Correct
			used[i] = true
		} else {
			marks[i] = Absent
		}
	}

	for i, c := range guess {
		if marks[i] == Correct {
			continue
		}
		if checkPresence(c, answer, used) {
			marks[i] = Present
		}
	}
}

// checkPresence looks for an unused occurrence of c in answer, scanning from
// the first slot. On a hit the slot is marked used and true is returned.
func checkPresence(c byte, answer Word, used []bool) bool {
	for j, d := range answer {
		if !used[j] && c == d {
			used[j] = true
			return true
		}
	}
	return false
}

// Encode folds marks into a Code: acc*3 + ordinal, first position most significant.
func Encode(marks []CharScore) Code {
	var acc Code
	for _, m := range marks {
		acc = acc*3 + Code(m)
	}
	return acc
}

// Decode unpacks a Code produced for words of length n.
func Decode(code Code, n int) []CharScore {
	marks := make([]CharScore, n)
	for i := n - 1; i >= 0; i-- {
		marks[i] = CharScore(code % 3)
		code /= 3
	}
	return marks
}

// NumCodes is the size of the Code range for words of length n (3^n).
func NumCodes(n int) int {
	size := 1
	for i := 0; i < n; i++ {
		size *= 3
	}
	return size
}

// AllCorrect is the Code of a guess that equals the answer.
func AllCorrect(n int) Code {
	var acc Code
	for i := 0; i < n; i++ {
		acc = acc*3 + Code(Correct)
	}
	return acc
}

// Pattern renders marks as G (correct), Y (present) and _ (absent).
func Pattern(marks []CharScore) string {
	b := make([]byte, len(marks))
	for i, m := range marks {
		switch m {
		case Correct:
			b[i] = 'G'
		case Present:
			b[i] = 'Y'
		default:
			b[i] = '_'
		}
	}
	return string(b)
}

// Colorize renders the letters of guess in terminal colors matching marks.
func Colorize(guess Word, marks []CharScore) string {
	var sb strings.Builder
	for i, c := range guess {
		letter := strings.ToUpper(string(c))
		switch marks[i] {
		case Correct:
			sb.WriteString(color.Ize(color.Green, letter))
		case Present:
			sb.WriteString(color.Ize(color.Yellow, letter))
		default:
			sb.WriteString(color.Ize(color.Gray, letter))
		}
	}
	return sb.String()
}
