package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"WORDS_ANSWERS_FILE", "WORDS_ALLOWED_FILE", "WORD_LEN", "GUESS_BUDGET",
		"WORKERS", "LOG_LEVEL", "LOG_FORMAT", "PORT", "CLIENT_ORIGIN", "JWT_SECRET", "REQUEST_TIMEOUT"} {
		t.Setenv(k, "")
	}
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, c.WordLen)
	assert.Equal(t, 6, c.Budget)
	assert.Equal(t, 1, c.Workers)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, 2*time.Minute, c.RequestTimeout)
	assert.Empty(t, c.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WORD_LEN", "6")
	t.Setenv("GUESS_BUDGET", "4")
	t.Setenv("WORKERS", "0")
	t.Setenv("REQUEST_TIMEOUT", "30s")
	t.Setenv("WORDS_ANSWERS_FILE", "/tmp/answers.txt")
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6, c.WordLen)
	assert.Equal(t, 4, c.Budget)
	assert.Equal(t, 1, c.Workers)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, "/tmp/answers.txt", c.AnswersFile)
}

func TestLoadRejectsMalformed(t *testing.T) {
	t.Setenv("WORD_LEN", "five")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("WORD_LEN", "11")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("WORD_LEN", "5")
	t.Setenv("GUESS_BUDGET", "0")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("GUESS_BUDGET", "6")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	_, err = Load()
	assert.Error(t, err)
}
