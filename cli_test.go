package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

var first20 = []string{
	"cigar", "rebut", "sissy", "humph", "awake", "blush", "focal", "evade", "naval", "serve",
	"heath", "dwarf", "model", "karma", "stink", "grade", "quiet", "bench", "abate", "feign",
}

type harness struct {
	c      *cli
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()
	dir := t.TempDir()
	list := "# test list\n" + strings.Join(first20, "\n") + "\n"
	answers := filepath.Join(dir, "answers.txt")
	allowed := filepath.Join(dir, "allowed.txt")
	require.NoError(t, os.WriteFile(answers, []byte(list), 0o644))
	require.NoError(t, os.WriteFile(allowed, []byte(list), 0o644))

	cfg := config.Config{AnswersFile: answers, AllowedFile: allowed, WordLen: 5, Budget: 6, Workers: 2}
	if mutate != nil {
		mutate(&cfg)
	}
	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	h.c = newCLI(cfg, h.stdout, h.stderr)
	h.c.progress = false
	return h
}

func (h *harness) run(args ...string) int { return h.c.run(args) }

func TestUsage(t *testing.T) {
	h := newHarness(t, nil)
	assert.Equal(t, exitUsage, h.run())
	assert.Equal(t, exitUsage, h.run("frobnicate"))
	assert.Contains(t, h.stderr.String(), "unknown command")
	assert.Equal(t, exitUsage, h.run("rank", "-nope"))
	assert.Equal(t, exitOK, h.run("help"))
}

func TestScoreCommand(t *testing.T) {
	h := newHarness(t, nil)
	require.Equal(t, exitOK, h.run("score", "pilot", "leaks"))
	assert.Contains(t, h.stdout.String(), "__Y__ 18")

	assert.Equal(t, exitUsage, h.run("score", "pilot"))
	assert.Equal(t, exitUsage, h.run("score", "pilot", "leak"))
}

func TestRankCommand(t *testing.T) {
	h := newHarness(t, nil)
	require.Equal(t, exitOK, h.run("rank", "-limit", "3"))
	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "1 "))
}

func TestLoadFailure(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.AnswersFile = filepath.Join(t.TempDir(), "missing.txt") })
	assert.Equal(t, exitNo, h.run("rank"))
}

func TestSolveAndMinCommands(t *testing.T) {
	ws := make([]game.Word, len(first20))
	for i, s := range first20 {
		ws[i] = game.ParseWord(s)
	}
	s, err := solver.New(ws, ws, solver.Options{})
	require.NoError(t, err)
	v, ok := s.MinBudget(10, solver.SearchOptions{})
	require.True(t, ok)

	h := newHarness(t, nil)
	assert.Equal(t, exitNo, h.run("solve", "-budget", "1"))
	assert.Contains(t, h.stdout.String(), "not solvable in 1")

	h.stdout.Reset()
	require.Equal(t, exitOK, h.run("min", "-max", "10"))
	assert.Contains(t, h.stdout.String(), "min budget: "+strconv.Itoa(v.Budget))

	h.stdout.Reset()
	require.Equal(t, exitOK, h.run("solve", "-budget", strconv.Itoa(v.Budget), "-plan"))
	out := h.stdout.String()
	assert.Contains(t, out, "first guess: "+v.First)
	// every answer appears as a plan leaf
	for _, w := range first20 {
		assert.Contains(t, out, "= "+strings.ToUpper(w))
	}

	assert.Equal(t, exitNo, h.run("min", "-max", "1"))
	assert.Equal(t, exitUsage, h.run("solve", "-budget", "0"))
}

func TestGreedyCommand(t *testing.T) {
	h := newHarness(t, nil)
	require.Equal(t, exitOK, h.run("greedy", "cigar", "Rebut"))
	out := h.stdout.String()
	assert.Contains(t, out, "cigar:")
	assert.Contains(t, out, "rebut:")
	assert.Contains(t, out, "solved in")

	assert.Equal(t, exitUsage, h.run("greedy", "zzzzz"))
}

func TestGreedyReportCommand(t *testing.T) {
	h := newHarness(t, nil)
	require.Equal(t, exitOK, h.run("greedy"))
	assert.Contains(t, h.stdout.String(), "not-in-6: 0 (0.00%)")

	h.stdout.Reset()
	assert.Equal(t, exitNo, h.run("greedy", "-budget", "1"))
	assert.Contains(t, h.stdout.String(), "not-in-1: 19")
}

func TestTokenCommand(t *testing.T) {
	h := newHarness(t, nil)
	assert.Equal(t, exitUsage, h.run("token"))

	h = newHarness(t, func(c *config.Config) { c.JWTSecret = "s3cret" })
	require.Equal(t, exitOK, h.run("token", "-sub", "alice", "-ttl", "1h"))
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(h.stdout.String()), "."))
}
