// main.go
//
// Entry point of the wordle-solver binary.
// Loads .env (optional), reads configuration from the environment, sets up
// zerolog, then hands off to the subcommand dispatcher in cli.go.

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/config"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	cfg.SetupLogging()

	c := newCLI(cfg, os.Stdout, os.Stderr)
	os.Exit(c.run(os.Args[1:]))
}
