package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/xlab/closer"

	"glescraft/internal/config"
	"glescraft/internal/game"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a TOML configuration file")
	headless := pflag.Int("headless", 0, "render `N` frames without a window and print world statistics")
	seed := pflag.Int64("seed", 0, "terrain seed, overrides the configuration file")
	verbose := pflag.BoolP("verbose", "v", false, "log at debug level")
	pflag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, "glescraft:", err)
			os.Exit(2)
		}
	}
	if pflag.CommandLine.Changed("seed") {
		cfg.World.Seed = *seed
	}
	config.Apply(cfg)

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	closer.Bind(func() {
		log.Info("shutting down")
	})

	if *headless > 0 {
		_, err = game.RunHeadless(cfg, *headless, log)
	} else {
		err = game.Run(cfg, log)
	}
	if err != nil {
		closer.Fatalln(err)
	}
	closer.Close()
}
