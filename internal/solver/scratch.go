package solver

import (
	"math"

	"github.com/robalobadob/wordle-solver/internal/game"
)

// Scratch is the "seen" table of the two-guess injectivity check. Entries are
// stamped with a generation number so starting a new round does not require
// clearing the table.
//
// A Scratch belongs to one search run at a time. Concurrent searches need
// their own.
type Scratch struct {
	seen []uint32
	gen  uint32
}

// NewScratch returns a table for Codes in [0, size).
func NewScratch(size int) *Scratch {
	return &Scratch{seen: make([]uint32, size)}
}

// begin starts a new round. Marks from earlier rounds become invisible.
func (s *Scratch) begin() {
	if s.gen == math.MaxUint32 {
		clear(s.seen)
		s.gen = 0
	}
	s.gen++
}

// mark records code in the current round and reports whether it was already
// recorded.
func (s *Scratch) mark(code game.Code) bool {
	if s.seen[code] == s.gen {
		return true
	}
	s.seen[code] = s.gen
	return false
}
