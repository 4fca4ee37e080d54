package config

import (
	"flag"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"snake-arcade/game"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
)

const (
	FrontendRaylib   = "raylib"
	FrontendTerminal = "term"
)

// Config holds everything main needs to assemble a game
type Config struct {
	Frontend       string
	Store          string
	BestFile       string
	LogFile        string
	Tick           time.Duration
	BonusPeriod    time.Duration
	BonusLifetime  time.Duration
	BonusThreshold float64
	WinLength      int
	Seed           uint64 // 0 picks one from the clock
	Sound          bool
	EnvFile        string
}

func Default() Config {
	return Config{
		Frontend:       FrontendRaylib,
		Store:          manager.StoreJSON,
		BestFile:       "data/best.json",
		LogFile:        "data/snake.log",
		Tick:           types.TickInterval,
		BonusPeriod:    types.BonusSpawnPeriod,
		BonusLifetime:  types.BonusLifetime,
		BonusThreshold: types.BonusSpawnThreshold,
		WinLength:      types.WinLength,
		Sound:          true,
		EnvFile:        ".env",
	}
}

// Load resolves the configuration: defaults, then the .env file, then SNAKE_* variables,
// then command-line flags. A missing .env file is not an error.
func Load(args []string) (Config, error) {
	cfg := Default()

	envFile := cfg.EnvFile
	if v, ok := os.LookupEnv("SNAKE_ENV_FILE"); ok {
		envFile = v
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, errors.Wrapf(err, "read %s", envFile)
	}
	cfg.EnvFile = envFile

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.apply(lookup); err != nil {
		return cfg, err
	}

	flags := flag.NewFlagSet("snake", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.StringVar(&cfg.Frontend, "frontend", cfg.Frontend, "raylib or term")
	flags.StringVar(&cfg.Store, "store", cfg.Store, "best-result store: json or sqlite")
	flags.StringVar(&cfg.BestFile, "best", cfg.BestFile, "best-result file")
	flags.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file for the terminal frontend")
	flags.DurationVar(&cfg.Tick, "tick", cfg.Tick, "tick interval")
	flags.DurationVar(&cfg.BonusPeriod, "bonus-period", cfg.BonusPeriod, "bonus spawn period")
	flags.DurationVar(&cfg.BonusLifetime, "bonus-lifetime", cfg.BonusLifetime, "bonus lifetime")
	flags.Float64Var(&cfg.BonusThreshold, "bonus-threshold", cfg.BonusThreshold, "bonus spawns when a uniform draw exceeds this")
	flags.IntVar(&cfg.WinLength, "win", cfg.WinLength, "body length that wins")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for time based")
	flags.BoolVar(&cfg.Sound, "sound", cfg.Sound, "play sound effects")
	if err := flags.Parse(args); err != nil {
		return cfg, errors.Wrap(err, "parse flags")
	}
	if cfg.Store == manager.StoreSQLite && cfg.BestFile == Default().BestFile {
		cfg.BestFile = "data/best.db"
	}

	return cfg, cfg.Validate()
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "%s", key)
		}
		*dst = d
		return nil
	}

	str("SNAKE_FRONTEND", &c.Frontend)
	str("SNAKE_STORE", &c.Store)
	str("SNAKE_BEST_FILE", &c.BestFile)
	str("SNAKE_LOG_FILE", &c.LogFile)
	if err := dur("SNAKE_TICK", &c.Tick); err != nil {
		return err
	}
	if err := dur("SNAKE_BONUS_PERIOD", &c.BonusPeriod); err != nil {
		return err
	}
	if err := dur("SNAKE_BONUS_LIFETIME", &c.BonusLifetime); err != nil {
		return err
	}
	if v, ok := lookup("SNAKE_BONUS_THRESHOLD"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(err, "SNAKE_BONUS_THRESHOLD")
		}
		c.BonusThreshold = f
	}
	if v, ok := lookup("SNAKE_WIN_LENGTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "SNAKE_WIN_LENGTH")
		}
		c.WinLength = n
	}
	if v, ok := lookup("SNAKE_SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "SNAKE_SEED")
		}
		c.Seed = n
	}
	if v, ok := lookup("SNAKE_SOUND"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "SNAKE_SOUND")
		}
		c.Sound = b
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Frontend {
	case FrontendRaylib, FrontendTerminal:
	default:
		return errors.Errorf("unknown frontend %q", c.Frontend)
	}
	switch c.Store {
	case manager.StoreJSON, manager.StoreSQLite:
	default:
		return errors.Errorf("unknown store %q", c.Store)
	}
	if c.BestFile == "" {
		return errors.New("best-result file must be set")
	}
	if c.Tick <= 0 || c.BonusPeriod <= 0 || c.BonusLifetime <= 0 {
		return errors.Errorf("periods must be positive: tick %v, bonus period %v, bonus lifetime %v",
			c.Tick, c.BonusPeriod, c.BonusLifetime)
	}
	if c.BonusThreshold < 0 || c.BonusThreshold >= 1 {
		return errors.Errorf("bonus threshold %v outside [0, 1)", c.BonusThreshold)
	}
	if c.WinLength < 1 {
		return errors.Errorf("win length %d below 1", c.WinLength)
	}
	return nil
}

// Options converts the configuration into controller options
func (c Config) Options() game.Options {
	opts := game.DefaultOptions()
	opts.TickInterval = c.Tick
	opts.BonusSpawnPeriod = c.BonusPeriod
	opts.BonusLifetime = c.BonusLifetime
	opts.BonusSpawnThreshold = c.BonusThreshold
	opts.WinLength = c.WinLength
	opts.Seed = c.Seed
	return opts
}
