// internal/report/report.go
//
// Greedy play against every answer, summarized.
//
// Each target is independent and the Solver is read-only, so targets are
// simulated in parallel with errgroup; every worker writes only its own slot.

package report

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/solver"
)

// Report summarizes greedy traces for every answer.
type Report struct {
	Budget     int            `json:"budget"`
	Traces     []solver.Trace `json:"-"` // indexed by answer
	Histogram  map[int]int    `json:"histogram"`
	Worst      int            `json:"worst"`
	WorstWords []string       `json:"worstWords"`
	Average    float64        `json:"average"` // over games that were not stuck
	Stuck      int            `json:"stuck"`
	Failed     *bitset.BitSet `json:"-"` // answers not solved within Budget
}

// Greedy runs Solver.Greedy for every answer on up to workers goroutines.
// onDone, if set, is called once per finished target and may be called
// concurrently.
func Greedy(ctx context.Context, s *solver.Solver, budget, workers int, onDone func()) (*Report, error) {
	if workers < 1 {
		workers = 1
	}
	traces := make([]solver.Trace, s.NumAnswers())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for a := range traces {
		a := a
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			traces[a] = s.Greedy(a, budget)
			if onDone != nil {
				onDone()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Summarize(traces, budget), nil
}

// Summarize builds a Report from finished traces.
func Summarize(traces []solver.Trace, budget int) *Report {
	r := &Report{
		Budget:    budget,
		Traces:    traces,
		Histogram: make(map[int]int),
		Failed:    bitset.New(uint(len(traces))),
	}
	sum, played := 0, 0
	for i, tr := range traces {
		if !tr.Solved {
			r.Failed.Set(uint(i))
		}
		// stuck games never finished, so they have no guess count
		if tr.Stuck {
			r.Stuck++
			continue
		}
		played++
		r.Histogram[tr.Guesses]++
		sum += tr.Guesses
		switch {
		case tr.Guesses > r.Worst:
			r.Worst = tr.Guesses
			r.WorstWords = []string{tr.Target}
		case tr.Guesses == r.Worst:
			r.WorstWords = append(r.WorstWords, tr.Target)
		}
	}
	sort.Strings(r.WorstWords)
	if played > 0 {
		r.Average = float64(sum) / float64(played)
	}
	return r
}

// AllSolved reports whether every target was solved within the budget.
func (r *Report) AllSolved() bool {
	return r.Failed.None()
}

// FailedWords lists the targets not solved within the budget, in answer order.
func (r *Report) FailedWords() []string {
	var out []string
	for i, ok := r.Failed.NextSet(0); ok; i, ok = r.Failed.NextSet(i + 1) {
		out = append(out, r.Traces[i].Target)
	}
	return out
}

// Lines renders the histogram and summary metrics.
func (r *Report) Lines() []string {
	n := len(r.Traces)
	w := "%" + strconv.Itoa(len(strconv.Itoa(n))) + "d"

	counts := make([]int, 0, len(r.Histogram))
	for k := range r.Histogram {
		counts = append(counts, k)
	}
	sort.Ints(counts)

	var out []string
	cum := 0
	for _, k := range counts {
		cum += r.Histogram[k]
		out = append(out, fmt.Sprintf(w+": "+w+"/"+w+" (cum. "+w+"/"+w+")", k, r.Histogram[k], n, cum, n))
	}
	out = append(out,
		fmt.Sprintf("worst: %d (%s)", r.Worst, strings.Join(r.WorstWords, " ")),
		fmt.Sprintf("average: %.3f", r.Average),
	)
	if n > 0 {
		failed := int(r.Failed.Count())
		out = append(out, fmt.Sprintf("not-in-%d: %d (%.2f%%)", r.Budget, failed, 100*float64(failed)/float64(n)))
	}
	if r.Stuck > 0 {
		out = append(out, fmt.Sprintf("stuck: %d", r.Stuck))
	}
	return out
}
