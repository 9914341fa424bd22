package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/game"
)

func words(ss ...string) []game.Word {
	out := make([]game.Word, len(ss))
	for i, s := range ss {
		out[i] = game.ParseWord(s)
	}
	return out
}

func TestBuildMatchesScore(t *testing.T) {
	guesses := words("weary", "pilot", "kazoo", "loose", "spoon")
	answers := words("wills", "leaks", "tools", "chore", "coats", "prize")

	var rows []int
	c, err := Build(guesses, answers, func(n int) { rows = append(rows, n) })
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, rows)
	assert.Equal(t, 5, c.Guesses())
	assert.Equal(t, 6, c.Answers())
	assert.Equal(t, 5, c.WordLen())
	assert.Equal(t, 243, c.NumCodes())

	for g, guess := range guesses {
		for a, answer := range answers {
			want, err := game.Score(guess, answer)
			require.NoError(t, err)
			assert.Equal(t, want, c.At(g, a), "%s/%s", guess, answer)
			assert.Equal(t, want, c.Row(g)[a])
		}
	}
}

func TestBuildRejectsMixedLengths(t *testing.T) {
	_, err := Build(words("crane", "cranes"), words("slate"), nil)
	assert.ErrorIs(t, err, game.ErrInvalidInput)

	_, err = Build(words("crane"), words("slate", "sly"), nil)
	assert.ErrorIs(t, err, game.ErrInvalidInput)

	_, err = Build(nil, words("slate"), nil)
	assert.ErrorIs(t, err, game.ErrInvalidInput)
}

func TestPermuteKeepsRowsInLockstep(t *testing.T) {
	guesses := words("weary", "pilot", "kazoo")
	answers := words("wills", "leaks", "tools")
	c, err := Build(guesses, answers, nil)
	require.NoError(t, err)

	order := []int{2, 0, 1}
	p := c.Permute(order)
	for i, g := range order {
		assert.Equal(t, c.Row(g), p.Row(i))
	}
	// the source is untouched
	assert.Equal(t, c.At(0, 0), mustScore(t, "weary", "wills"))
}

func TestPermuteRejectsBadOrder(t *testing.T) {
	c, err := Build(words("weary", "pilot"), words("wills"), nil)
	require.NoError(t, err)
	assert.Panics(t, func() { c.Permute([]int{0}) })
	assert.Panics(t, func() { c.Permute([]int{1, 1}) })
}

func mustScore(t *testing.T, guess, answer string) game.Code {
	t.Helper()
	code, err := game.Score(game.ParseWord(guess), game.ParseWord(answer))
	require.NoError(t, err)
	return code
}
