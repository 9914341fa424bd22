// internal/config/config.go
//
// Environment-driven configuration.
//
// Environment variables (a .env file is loaded by main when present):
//   WORDS_ANSWERS_FILE=/path/to/answers.txt
//   WORDS_ALLOWED_FILE=/path/to/allowed.txt
//   WORD_LEN=5            letters per word
//   GUESS_BUDGET=6        guesses allowed per game
//   WORKERS=1             parallel greedy simulations in reports
//   LOG_LEVEL=info        zerolog level
//   LOG_FORMAT=json       "console" for human-readable logs
//   PORT=5175             API listen port
//   CLIENT_ORIGIN=...     CORS origin for the API
//   JWT_SECRET=           when set, the API requires an HS256 bearer token
//   REQUEST_TIMEOUT=2m    per-request handler timeout

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/game"
)

// Config holds every setting read from the environment.
type Config struct {
	AnswersFile    string
	AllowedFile    string
	WordLen        int
	Budget         int
	Workers        int
	LogLevel       string
	LogFormat      string
	Port           string
	ClientOrigin   string
	JWTSecret      string
	RequestTimeout time.Duration
}

// Load reads the configuration. Malformed numbers or durations are errors;
// unset variables take their defaults.
func Load() (Config, error) {
	c := Config{
		AnswersFile:  os.Getenv("WORDS_ANSWERS_FILE"),
		AllowedFile:  os.Getenv("WORDS_ALLOWED_FILE"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		Port:         getEnv("PORT", "5175"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
	}

	var err error
	if c.WordLen, err = envInt("WORD_LEN", 5); err != nil {
		return c, err
	}
	if c.WordLen < 1 || c.WordLen > game.MaxWordLen {
		return c, fmt.Errorf("config: WORD_LEN=%d outside 1..%d", c.WordLen, game.MaxWordLen)
	}
	if c.Budget, err = envInt("GUESS_BUDGET", 6); err != nil {
		return c, err
	}
	if c.Budget < 1 {
		return c, fmt.Errorf("config: GUESS_BUDGET=%d must be at least 1", c.Budget)
	}
	if c.Workers, err = envInt("WORKERS", 1); err != nil {
		return c, err
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.RequestTimeout, err = envDuration("REQUEST_TIMEOUT", 2*time.Minute); err != nil {
		return c, err
	}
	return c, nil
}

// SetupLogging applies LogLevel and LogFormat to the global zerolog logger.
func (c Config) SetupLogging() {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", c.LogLevel).Msg("unknown log level, keeping default")
	}
	if c.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("config: %s=%q: %w", k, v, err)
	}
	return n, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("config: %s=%q: %w", k, v, err)
	}
	return d, nil
}
