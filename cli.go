// cli.go
//
// Subcommand dispatcher.
//
//   rank   [-limit N]                 best opening guesses by worst-case bucket
//   solve  [-budget N] [-plan] [-trace]
//                                     exhaustive solvability of the full answer set
//   min    [-max N]                   smallest solvable budget
//   greedy [-budget N] [word...]      greedy traces; no words runs the full report
//   score  guess answer               colored feedback for one pair
//   serve                             JSON API on PORT
//   token  [-sub name] [-ttl 24h]     bearer token for the API
//
// Exit codes: 0 success, 1 negative outcome (unsolvable, not found, failed
// targets) or load failure, 2 usage or input error.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/TwiN/go-color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/report"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

const (
	exitOK    = 0
	exitNo    = 1
	exitUsage = 2
)

type cli struct {
	cfg      config.Config
	stdout   io.Writer
	stderr   io.Writer
	progress bool // draw progress bars on stderr
}

func newCLI(cfg config.Config, stdout, stderr io.Writer) *cli {
	tty := isatty.IsTerminal(os.Stderr.Fd())
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.Toggle(false)
	}
	return &cli{cfg: cfg, stdout: stdout, stderr: stderr, progress: tty}
}

func (c *cli) run(args []string) int {
	if len(args) == 0 {
		c.usage()
		return exitUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "rank":
		return c.rank(rest)
	case "solve":
		return c.solve(rest)
	case "min":
		return c.min(rest)
	case "greedy":
		return c.greedy(rest)
	case "score":
		return c.score(rest)
	case "serve":
		return c.serve(rest)
	case "token":
		return c.token(rest)
	case "help", "-h", "--help":
		c.usage()
		return exitOK
	}
	fmt.Fprintf(c.stderr, "unknown command %q\n", cmd)
	c.usage()
	return exitUsage
}

func (c *cli) usage() {
	fmt.Fprintln(c.stderr, "usage: wordle-solver <rank|solve|min|greedy|score|serve|token> [flags]")
}

// flags returns a FlagSet that reports errors instead of exiting.
func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// parse returns an exit code and false when the command should stop.
func parse(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	return 0, true
}

// load reads the word pools and builds the Solver.
func (c *cli) load() (*words.Pools, *solver.Solver, error) {
	pools, err := words.Load(c.cfg.AnswersFile, c.cfg.AllowedFile, c.cfg.WordLen)
	if err != nil {
		return nil, nil, err
	}
	a, g := pools.Stats()
	log.Info().Int("answers", a).Int("guesses", g).Str("fingerprint", pools.Fingerprint()).Msg("word lists loaded")

	var opts solver.Options
	if c.progress {
		bar := progressbar.Default(int64(g), "scoring")
		opts.Progress = func(rows int) { _ = bar.Set(rows) }
		defer bar.Close()
	}
	start := time.Now()
	s, err := solver.New(pools.Guesses, pools.Answers, opts)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("score cache ready")
	return pools, s, nil
}

// mustLoad is load for commands that cannot proceed without a Solver.
func (c *cli) mustLoad() (*words.Pools, *solver.Solver, bool) {
	pools, s, err := c.load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load word lists")
		return nil, nil, false
	}
	return pools, s, true
}

// ------------------------------- RANK --------------------------------------

func (c *cli) rank(args []string) int {
	fs := c.flags("rank")
	limit := fs.Int("limit", 20, "number of guesses to print (0 = all)")
	if code, ok := parse(fs, args); !ok {
		return code
	}
	_, s, ok := c.mustLoad()
	if !ok {
		return exitNo
	}
	ranking := s.Ranking()
	if *limit > 0 && *limit < len(ranking) {
		ranking = ranking[:*limit]
	}
	for i, r := range ranking {
		fmt.Fprintf(c.stdout, "%4d %s %d\n", i+1, r.Word, r.Worst)
	}
	return exitOK
}

// ------------------------------- SOLVE -------------------------------------

func (c *cli) solve(args []string) int {
	fs := c.flags("solve")
	budget := fs.Int("budget", c.cfg.Budget, "guesses allowed")
	plan := fs.Bool("plan", false, "print the decision tree of a solution")
	trace := fs.Bool("trace", false, "log every explored guess at debug level")
	if code, ok := parse(fs, args); !ok {
		return code
	}
	if *budget < 1 {
		fmt.Fprintln(c.stderr, "solve: -budget must be at least 1")
		return exitUsage
	}
	_, s, ok := c.mustLoad()
	if !ok {
		return exitNo
	}

	opts := solver.SearchOptions{Plan: *plan}
	if *trace {
		opts.Trace = traceStep
		if zerolog.GlobalLevel() > zerolog.DebugLevel {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}
	start := time.Now()
	v := s.Search(*budget, s.AllAnswers(), opts)
	log.Info().Int("calls", v.Calls).Int("tried", v.Tried).Dur("elapsed", time.Since(start)).Msg("search done")

	if !v.Solvable {
		fmt.Fprintf(c.stdout, "not solvable in %d (%d answers)\n", v.Budget, v.Candidates)
		return exitNo
	}
	fmt.Fprintf(c.stdout, "solvable in %d (%d answers), first guess: %s\n", v.Budget, v.Candidates, v.First)
	if v.Plan != nil {
		printPlan(c.stdout, v.Plan, s.WordLen(), 0)
	}
	return exitOK
}

func traceStep(st solver.Step) {
	log.Debug().
		Int("depth", st.Depth).
		Int("budget", st.Budget).
		Str("guess", st.Guess).
		Int("candidates", st.Candidates).
		Int("buckets", st.Buckets).
		Int("largest", st.Largest).
		Bool("ok", st.OK).
		Msg("step")
}

// printPlan writes the decision tree, one feedback branch per line.
func printPlan(w io.Writer, n *solver.Node, wordLen, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.Answer != "" {
		fmt.Fprintf(w, "%s= %s\n", indent, strings.ToUpper(n.Answer))
		return
	}
	for _, b := range n.Branches {
		marks := game.Decode(b.Code, wordLen)
		fmt.Fprintf(w, "%s%s %s\n", indent, game.Colorize(game.Word(n.Guess), marks), b.Pattern)
		if b.Next != nil {
			printPlan(w, b.Next, wordLen, depth+1)
		}
	}
}

// -------------------------------- MIN --------------------------------------

func (c *cli) min(args []string) int {
	fs := c.flags("min")
	limit := fs.Int("max", 10, "largest budget to try")
	if code, ok := parse(fs, args); !ok {
		return code
	}
	if *limit < 1 {
		fmt.Fprintln(c.stderr, "min: -max must be at least 1")
		return exitUsage
	}
	_, s, ok := c.mustLoad()
	if !ok {
		return exitNo
	}
	v, found := s.MinBudget(*limit, solver.SearchOptions{})
	if !found {
		fmt.Fprintf(c.stdout, "not solvable within %d\n", *limit)
		return exitNo
	}
	fmt.Fprintf(c.stdout, "min budget: %d, first guess: %s\n", v.Budget, v.First)
	return exitOK
}

// ------------------------------- GREEDY ------------------------------------

func (c *cli) greedy(args []string) int {
	fs := c.flags("greedy")
	budget := fs.Int("budget", c.cfg.Budget, "guesses allowed")
	if code, ok := parse(fs, args); !ok {
		return code
	}
	if *budget < 1 {
		fmt.Fprintln(c.stderr, "greedy: -budget must be at least 1")
		return exitUsage
	}
	_, s, ok := c.mustLoad()
	if !ok {
		return exitNo
	}

	if fs.NArg() == 0 {
		return c.greedyReport(s, *budget)
	}

	targets := make([]int, 0, fs.NArg())
	for _, w := range fs.Args() {
		a, ok := s.AnswerIndex(w)
		if !ok {
			fmt.Fprintf(c.stderr, "greedy: %q is not an answer\n", w)
			return exitUsage
		}
		targets = append(targets, a)
	}
	code := exitOK
	for _, a := range targets {
		tr := s.Greedy(a, *budget)
		printTrace(c.stdout, tr, s.WordLen())
		if !tr.Solved {
			code = exitNo
		}
	}
	return code
}

func (c *cli) greedyReport(s *solver.Solver, budget int) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var onDone func()
	if c.progress {
		bar := progressbar.Default(int64(s.NumAnswers()), "greedy")
		onDone = func() { _ = bar.Add(1) }
		defer bar.Close()
	}
	r, err := report.Greedy(ctx, s, budget, c.cfg.Workers, onDone)
	if err != nil {
		log.Error().Err(err).Msg("greedy report aborted")
		return exitNo
	}
	for _, line := range r.Lines() {
		fmt.Fprintln(c.stdout, line)
	}
	if !r.AllSolved() {
		log.Warn().Strs("failed", r.FailedWords()).Msg("targets not solved within budget")
		return exitNo
	}
	return exitOK
}

func printTrace(w io.Writer, tr solver.Trace, wordLen int) {
	fmt.Fprintf(w, "%s:\n", tr.Target)
	for _, t := range tr.Turns {
		marks := game.Decode(t.Code, wordLen)
		fmt.Fprintf(w, "  %s %s %d\n", game.Colorize(game.Word(t.Guess), marks), t.Pattern, t.Remaining)
	}
	switch {
	case tr.Stuck:
		fmt.Fprintln(w, "  stuck: no guess splits the remaining candidates")
	case tr.Solved:
		fmt.Fprintf(w, "  solved in %d\n", tr.Guesses)
	default:
		fmt.Fprintf(w, "  took %d, over budget %d\n", tr.Guesses, tr.Budget)
	}
}

// ------------------------------- SCORE -------------------------------------

func (c *cli) score(args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(c.stderr, "usage: wordle-solver score <guess> <answer>")
		return exitUsage
	}
	guess, answer := game.ParseWord(args[0]), game.ParseWord(args[1])
	marks, err := game.Marks(guess, answer)
	if err != nil {
		fmt.Fprintf(c.stderr, "score: %v\n", err)
		return exitUsage
	}
	fmt.Fprintf(c.stdout, "%s %s %d\n", game.Colorize(guess, marks), game.Pattern(marks), game.Encode(marks))
	return exitOK
}

// ------------------------------- SERVE -------------------------------------

func (c *cli) serve(args []string) int {
	fs := c.flags("serve")
	if code, ok := parse(fs, args); !ok {
		return code
	}
	pools, s, ok := c.mustLoad()
	if !ok {
		return exitNo
	}
	srv := httpserver.New(s, pools, store.NewMemoryStore(), httpserver.Options{
		JWTSecret:    c.cfg.JWTSecret,
		ClientOrigin: c.cfg.ClientOrigin,
		Timeout:      c.cfg.RequestTimeout,
		Budget:       c.cfg.Budget,
	})
	log.Info().Str("port", c.cfg.Port).Bool("auth", c.cfg.JWTSecret != "").Msg("starting wordle-solver api")
	if err := srv.Start(":" + c.cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	return exitOK
}

// ------------------------------- TOKEN -------------------------------------

func (c *cli) token(args []string) int {
	fs := c.flags("token")
	sub := fs.String("sub", "cli", "token subject")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if code, ok := parse(fs, args); !ok {
		return code
	}
	if c.cfg.JWTSecret == "" {
		fmt.Fprintln(c.stderr, "token: JWT_SECRET is not set")
		return exitUsage
	}
	tok, exp, err := httpserver.SignToken(c.cfg.JWTSecret, *sub, *ttl)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		return exitNo
	}
	log.Info().Time("expires", exp).Str("sub", *sub).Msg("token issued")
	fmt.Fprintln(c.stdout, tok)
	return exitOK
}
