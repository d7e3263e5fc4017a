// cmd/monopoly/main.go plays a hot-seat game in the terminal. Run with the
// argument "simulation" to soak-test the engine with random answers instead.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jason-s-yu/monopoly/internal/cache"
	"github.com/jason-s-yu/monopoly/internal/game"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

const closeTimeout = 10 * time.Second

func main() {
	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "warn")); err == nil {
		logger.SetLevel(lvl)
	}

	simulation := len(os.Args) > 1 && os.Args[1] == "simulation"
	if err := run(logger, simulation, os.Stdin, os.Stdout); err != nil && !errors.Is(err, errQuit) {
		logger.WithError(err).Fatal("game aborted")
	}
}

func run(logger *logrus.Logger, simulation bool, in io.Reader, out io.Writer) error {
	rules, err := loadRules()
	if err != nil {
		return err
	}
	seed := int64(getEnvInt("MONOPOLY_SEED", 0))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	names := playerNames()

	base := game.Config{Rules: rules, Logger: logger}

	if os.Getenv("REDIS_ADDR") != "" {
		rdb, err := cache.ConnectRedis(context.Background())
		if err != nil {
			logger.WithError(err).Warn("action history disabled")
		} else {
			defer rdb.Close()
			base.Recorder = cache.NewPublisher(rdb)
		}
	}

	if path := os.Getenv("MONOPOLY_EVENT_LOG"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer f.Close()
		base.BroadcastFn = eventWriter(f)
	}

	maxTurns := getEnvInt("MONOPOLY_MAX_TURNS", 0)
	if !simulation {
		prompter := newConsolePrompter(in, out)
		g, err := newGame(base, prompter, seed, names)
		if err != nil {
			return err
		}
		defer finish(g, logger)
		d := &driver{g: g, prompt: prompter, out: out, maxTurns: maxTurns}
		return d.run()
	}

	if maxTurns == 0 {
		maxTurns = 1000
	}
	tables := getEnvInt("MONOPOLY_GAMES", 1)
	if tables <= 1 {
		prompter := newRandomPrompter(seed)
		g, err := newGame(base, prompter, seed, names)
		if err != nil {
			return err
		}
		defer finish(g, logger)
		d := &driver{g: g, prompt: prompter, out: out, auto: true, maxTurns: maxTurns}
		return d.run()
	}
	return simulateTables(base, seed, names, tables, maxTurns, out)
}

// simulateTables plays several random-answer games at once and prints how each ended.
func simulateTables(base game.Config, seed int64, names []string, tables, maxTurns int, out io.Writer) error {
	store := game.NewGameStore()
	drivers := make([]*driver, tables)
	for i := range drivers {
		prompter := newRandomPrompter(seed + int64(i))
		g, err := newGame(base, prompter, seed+int64(i), names)
		if err != nil {
			return err
		}
		store.AddGame(g)
		drivers[i] = &driver{g: g, prompt: prompter, out: io.Discard, auto: true, maxTurns: maxTurns}
	}

	errs := make([]error, tables)
	var wg sync.WaitGroup
	for i, d := range drivers {
		wg.Add(1)
		go func(i int, d *driver) {
			defer wg.Done()
			errs[i] = d.run()
			finish(d.g, base.Logger)
		}(i, d)
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return err
	}

	finished := store.RemoveFinished()
	for _, g := range finished {
		winner := "nobody"
		if w := g.Winner(); w != nil {
			winner = w.Name
		}
		fmt.Fprintf(out, "game %s: %s wins\n", g.ID, winner)
	}
	fmt.Fprintf(out, "%d of %d games finished within %d turns\n", len(finished), tables, maxTurns)
	return nil
}

// finish waits for the game's queued action records so the Redis client is not
// closed under them.
func finish(g *game.Game, logger logrus.FieldLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := g.Close(ctx); err != nil {
		logger.WithError(err).WithField("game", g.ID).Warn("action history incomplete")
	}
}

// newGame seats names at a new table.
func newGame(base game.Config, prompter game.Prompter, seed int64, names []string) (*game.Game, error) {
	cfg := base
	cfg.Prompter = prompter
	cfg.Seed = seed
	cfg.Dice = game.NewRandomDice(seed)
	g, err := game.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := g.SetPlayerCount(len(names)); err != nil {
		return nil, err
	}
	for _, name := range names {
		if _, err := g.AddPlayer(name); err != nil {
			return nil, err
		}
	}
	cfg.Logger.WithFields(logrus.Fields{"game": g.ID, "players": len(names), "seed": seed}).Info("game ready")
	return g, nil
}

// eventWriter appends each event to w as one JSON line.
func eventWriter(w io.Writer) func(ev game.GameEvent) {
	var mu sync.Mutex
	return func(ev game.GameEvent) {
		mu.Lock()
		defer mu.Unlock()
		w.Write(append(game.EncodeEvent(ev), '\n'))
	}
}

// loadRules applies MONOPOLY_RULES, a JSON object of rule overrides, to the defaults.
func loadRules() (game.Rules, error) {
	rules := game.DefaultRules()
	raw := os.Getenv("MONOPOLY_RULES")
	if raw == "" {
		return rules, nil
	}
	var overrides map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return rules, fmt.Errorf("MONOPOLY_RULES is not a JSON object: %w", err)
	}
	return game.ParseRules(overrides, rules)
}

func playerNames() []string {
	var names []string
	for _, n := range strings.Split(getEnv("MONOPOLY_PLAYERS", "Player 1,Player 2"), ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// getEnv retrieves an environment variable's value or returns a default.
func getEnv(key, defVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defVal
}

// getEnvInt retrieves an integer value from an environment variable or returns a default value.
func getEnvInt(key string, defVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defVal
	}
	return i
}
