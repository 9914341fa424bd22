package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/game"
)

func strs(ws []game.Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = string(w)
	}
	return out
}

func writeList(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseSkipsBlanksAndComments(t *testing.T) {
	ws, err := Parse(strings.NewReader("# header\nCigar\n\n  rebut \r\nsissy\ncigar\n"), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"cigar", "rebut", "sissy", "cigar"}, strs(ws))
}

func TestParseRejectsWrongLength(t *testing.T) {
	_, err := Parse(strings.NewReader("cigar\nrebuts\n"), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWordLength)
	assert.ErrorIs(t, err, game.ErrInvalidInput)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseRejectsNonASCII(t *testing.T) {
	_, err := Parse(strings.NewReader("cafés\n"), 6)
	assert.ErrorIs(t, err, game.ErrInvalidInput)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader("\n# nothing\n"), 5)
	assert.ErrorIs(t, err, ErrEmptyList)

	_, err = Parse(strings.NewReader("cigar\n"), 0)
	assert.ErrorIs(t, err, game.ErrInvalidInput)
}

func TestDefaultListsAreValid(t *testing.T) {
	answers, allowed, err := Default(5)
	require.NoError(t, err)
	assert.NotEmpty(t, answers)
	assert.NotEmpty(t, allowed)

	_, _, err = Default(6)
	assert.ErrorIs(t, err, ErrWordLength)
}

func TestNewPoolsMakesAnswersGuessable(t *testing.T) {
	guesses := []game.Word{game.ParseWord("crane"), game.ParseWord("slate")}
	answers := []game.Word{game.ParseWord("slate"), game.ParseWord("cigar"), game.ParseWord("cigar")}
	p := NewPools(guesses, answers)
	assert.Equal(t, []string{"crane", "slate", "cigar"}, strs(p.Guesses))
	assert.Equal(t, []string{"slate", "cigar", "cigar"}, strs(p.Answers))

	a, g := p.Stats()
	assert.Equal(t, 3, a)
	assert.Equal(t, 3, g)
}

func TestLoadCases(t *testing.T) {
	answersPath := writeList(t, "answers.txt", "cigar\nrebut\n")
	allowedPath := writeList(t, "allowed.txt", "crane\nslate\n")

	p, err := Load(answersPath, allowedPath, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"cigar", "rebut"}, strs(p.Answers))
	assert.Equal(t, []string{"crane", "slate", "cigar", "rebut"}, strs(p.Guesses))

	p, err = Load("", allowedPath, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, strs(p.Answers))
	assert.Equal(t, []string{"crane", "slate"}, strs(p.Guesses))

	p, err = Load(answersPath, "", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"cigar", "rebut"}, strs(p.Answers))
	assert.Greater(t, len(p.Guesses), 2)

	p, err = Load("", "", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, p.Answers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"), allowedPath, 5)
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	a := NewPools([]game.Word{game.ParseWord("crane")}, []game.Word{game.ParseWord("cigar")})
	b := NewPools([]game.Word{game.ParseWord("crane")}, []game.Word{game.ParseWord("cigar")})
	c := NewPools([]game.Word{game.ParseWord("cigar")}, []game.Word{game.ParseWord("crane")})
	assert.Len(t, a.Fingerprint(), 16)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
