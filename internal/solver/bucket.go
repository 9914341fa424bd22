// internal/solver/bucket.go
//
// Bucketing engine and worst-case ranking.
//
// A bucket is the set of candidate answers that produce the same feedback
// for one guess. Buckets of one guess partition the candidate set.

package solver

import (
	"sort"

	"github.com/robalobadob/wordle-solver/internal/cache"
	"github.com/robalobadob/wordle-solver/internal/game"
)

// Bucket groups answer indices sharing one Code under one guess.
type Bucket struct {
	Code    game.Code
	Members []int
}

// Buckets partitions cands by the feedback of guess g. Buckets are non-empty
// and ordered largest first; equal sizes are ordered by ascending Code.
func Buckets(c *cache.ScoreCache, g int, cands []int) []Bucket {
	row := c.Row(g)
	index := make(map[game.Code]int)
	var out []Bucket
	for _, a := range cands {
		code := row[a]
		i, ok := index[code]
		if !ok {
			i = len(out)
			index[code] = i
			out = append(out, Bucket{Code: code})
		}
		out[i].Members = append(out[i].Members, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Members) != len(out[j].Members) {
			return len(out[i].Members) > len(out[j].Members)
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// WorstCase returns the size of the largest bucket guess g produces over cands.
func WorstCase(c *cache.ScoreCache, g int, cands []int) int {
	counts := make([]int, c.NumCodes())
	worst, _ := worstCase(c.Row(g), cands, counts)
	return worst
}

// worstCase counts bucket sizes into counts and returns the largest size and
// the number of distinct codes. counts must be all zero on entry and is left
// all zero on return.
func worstCase(row []game.Code, cands []int, counts []int) (worst, buckets int) {
	for _, a := range cands {
		code := row[a]
		counts[code]++
		if counts[code] == 1 {
			buckets++
		}
		if counts[code] > worst {
			worst = counts[code]
		}
	}
	for _, a := range cands {
		counts[row[a]] = 0
	}
	return worst, buckets
}

// Ranked is one guess with its worst case over some candidate set.
type Ranked struct {
	Index int // row in the cache the ranking was computed from
	Worst int
}

// Rank orders every guess of c by ascending worst case over cands. Ties keep
// the input guess order.
func Rank(c *cache.ScoreCache, cands []int) []Ranked {
	counts := make([]int, c.NumCodes())
	out := make([]Ranked, c.Guesses())
	for g := range out {
		worst, _ := worstCase(c.Row(g), cands, counts)
		out[g] = Ranked{Index: g, Worst: worst}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Worst < out[j].Worst
	})
	return out
}
