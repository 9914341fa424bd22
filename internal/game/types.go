// internal/game/types.go
//
// Core type definitions for the feedback rules of the game.
// Defines:
//   - CharScore: per-letter result of a guess (absent/correct/present).
//   - Word: a fixed-length guess or answer.
//   - Code: a whole feedback sequence packed into one base-3 integer.

package game

import "strings"

// MaxWordLen bounds word length so every Code fits in 16 bits (3^10 = 59049).
const MaxWordLen = 10

// CharScore is the evaluation result for a single letter of a guess.
// The ordinals double as the base-3 digits of a Code.
type CharScore uint8

const (
	Absent  CharScore = iota // letter does not occur in the unused part of the answer
	Correct                  // letter is in the right position
	Present                  // letter occurs elsewhere in the answer
)

func (c CharScore) String() string {
	switch c {
	case Absent:
		return "absent"
	case Correct:
		return "correct"
	case Present:
		return "present"
	}
	return "invalid"
}

// Word is an immutable sequence of symbols. Words are lowercase ASCII once parsed.
type Word []byte

// ParseWord trims and lowercases s. It does not validate length.
func ParseWord(s string) Word {
	return Word(strings.ToLower(strings.TrimSpace(s)))
}

func (w Word) String() string { return string(w) }

// Code is a FeedbackCode: the CharScore sequence of a (guess, answer) pair,
// most significant digit first.
type Code uint16
