package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"glescraft/internal/config"
	"glescraft/internal/graphics"
	"glescraft/internal/input"
	"glescraft/internal/player"
	"glescraft/internal/profiling"
	"glescraft/internal/world"
)

// SlowFrame is the processing time above which a frame is logged together
// with its most expensive tasks.
const SlowFrame = 16 * time.Millisecond

// Session is an interactive game bound to a window.
type Session struct {
	Window *glfw.Window
	Device *graphics.GLDevice
	Camera *graphics.Camera
	World  *world.World
	Player *player.Player
	Scene  *Scene
	Input  *input.InputManager

	limiter  *FPSLimiter
	lastTime time.Time
	log      *slog.Logger
}

// NewSession creates the GL device, world and player for window.
func NewSession(window *glfw.Window, cfg *config.Config, log *slog.Logger) (*Session, error) {
	dev, err := graphics.NewGLDevice()
	if err != nil {
		return nil, err
	}

	w, err := world.New(worldOptions(cfg.World), dev)
	if err != nil {
		dev.Dispose()
		return nil, fmt.Errorf("create world: %w", err)
	}

	fbWidth, fbHeight := window.GetFramebufferSize()
	camera := graphics.NewCamera(fbWidth, fbHeight)
	p := newPlayer(cfg.Controls, camera, log)

	scene, err := NewScene(w, p, dev, log)
	if err != nil {
		w.Dispose()
		dev.Dispose()
		return nil, err
	}

	log.Info("world created",
		"size", fmt.Sprintf("%dx%dx%d", cfg.World.SizeX, cfg.World.SizeY, cfg.World.SizeZ),
		"seed", w.Seed(),
		"pool", cfg.World.PoolSize)

	return &Session{
		Window:   window,
		Device:   dev,
		Camera:   camera,
		World:    w,
		Player:   p,
		Scene:    scene,
		Input:    input.NewInputManager(),
		limiter:  NewFPSLimiter(),
		lastTime: time.Now(),
		log:      log,
	}, nil
}

// Run runs frames until the window is closed.
func (s *Session) Run() error {
	for !s.Window.ShouldClose() {
		if err := s.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// Frame polls and applies input, moves the player, draws and presents one
// frame, then waits for the frame limiter.
func (s *Session) Frame() error {
	profiling.ResetFrame()
	start := time.Now()
	dt := float32(start.Sub(s.lastTime).Seconds())
	s.lastTime = start

	glfw.PollEvents()
	if s.Scene.HandleInput(s.Input) {
		s.Window.SetShouldClose(true)
	}
	s.Player.UpdatePosition(dt)

	width, height := s.Window.GetFramebufferSize()
	s.Device.BeginFrame(width, height)
	if err := s.Scene.Draw(); err != nil {
		return err
	}

	s.Window.SwapBuffers()
	s.Input.PostUpdate()

	if d := time.Since(start); d > SlowFrame {
		s.log.Warn("slow frame", "duration", d, "top", profiling.TopN(5))
	}

	s.limiter.Wait(s.Window.GetAttrib(glfw.Iconified) == glfw.True)
	return nil
}

// Cleanup frees all GPU resources. The window is left to the caller.
func (s *Session) Cleanup() {
	s.Scene.Dispose()
	s.Device.Dispose()

	s.Scene = nil
	s.World = nil
	s.Player = nil
}
