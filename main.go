package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"

	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
	"snake-arcade/ui"
)

func init() {
	// raylib must run on the main OS thread
	runtime.LockOSThread()
}

type frontend interface {
	Run() error
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "snake:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := manager.OpenStore(cfg.Store, cfg.BestFile)
	if err != nil {
		return err
	}
	defer store.Close()

	sound := ui.NewSoundPlayer(cfg.Sound, logger)
	defer sound.Close()

	scene := ui.NewScene()
	scene.OnAdd(func(o entity.Object) {
		if o.Kind() == entity.KindSegment {
			sound.Chomp()
		}
	})

	snake, err := entity.NewSnake(types.StartPosition())
	if err != nil {
		return err
	}
	opts := cfg.Options()
	opts.Logger = logger
	g := game.NewGame(snake, scene, store, opts)

	var fe frontend
	switch cfg.Frontend {
	case config.FrontendTerminal:
		fe = ui.NewTerminalRenderer(g, scene, sound, logger)
	default:
		fe = ui.NewRenderer(g, scene, sound, logger)
	}

	logger.Printf("Starting %s frontend, best results in %s (%s)", cfg.Frontend, cfg.BestFile, cfg.Store)
	return fe.Run()
}

// newLogger logs to stderr, or to the log file when the terminal frontend owns the screen
func newLogger(cfg config.Config) (*log.Logger, func(), error) {
	var out io.Writer = os.Stderr
	closeFn := func() {}

	if cfg.Frontend == config.FrontendTerminal {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, nil, errors.Wrap(err, "create log directory")
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file")
		}
		out = f
		closeFn = func() { f.Close() }
	}
	return log.New(out, "[snake] ", log.LstdFlags), closeFn, nil
}
