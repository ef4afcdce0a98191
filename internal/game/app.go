package game

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"

	"glescraft/internal/config"
	"glescraft/internal/graphics"
	"glescraft/internal/player"
	"glescraft/internal/world"
)

// Run opens a window and plays until it is closed. It must be called from
// the main thread.
func Run(cfg *config.Config, log *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := SetupWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	s, err := NewSession(window, cfg, log)
	if err != nil {
		return err
	}
	defer s.Cleanup()

	SetupInputHandlers(s)
	return s.Run()
}

func worldOptions(cfg config.WorldConfig) world.Options {
	opts := world.Options{
		SizeX:    cfg.SizeX,
		SizeY:    cfg.SizeY,
		SizeZ:    cfg.SizeZ,
		Seed:     cfg.Seed,
		PoolSize: cfg.PoolSize,
	}
	if cfg.Culler == config.CullerFrustum {
		opts.Culler = world.FrustumCuller{Margin: 1}
	}
	return opts
}

func newPlayer(cfg config.ControlsConfig, camera *graphics.Camera, log *slog.Logger) *player.Player {
	p := player.New(camera, log)
	p.MoveSpeed = cfg.MoveSpeed
	p.MouseSpeed = cfg.MouseSpeed
	p.BuildType = cfg.BlockType()
	return p
}
