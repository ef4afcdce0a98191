package game

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"glescraft/internal/config"
	"glescraft/internal/graphics"
	"glescraft/internal/physics"
	"glescraft/internal/player"
	"glescraft/internal/profiling"
	"glescraft/internal/registry"
	"glescraft/internal/world"
)

// MaxFocusDistance caps the focus distance reported for the cursor.
const MaxFocusDistance = 100

var crosshair = []float32{
	-0.05, 0, 0, float32(registry.BlockTypeWhite),
	+0.05, 0, 0, float32(registry.BlockTypeWhite),
	0, -0.05, 0, float32(registry.BlockTypeWhite),
	0, +0.05, 0, float32(registry.BlockTypeWhite),
}

// overlayDevice is implemented by devices with separate state for line
// overlays.
type overlayDevice interface {
	BeginOverlay(depthTest bool)
}

// Scene draws one frame of the world with the cursor overlay on top.
type Scene struct {
	World  *world.World
	Player *player.Player

	// Target is the block under the cursor after the last Draw.
	Target physics.Target

	dev     graphics.Device
	overlay graphics.Buffer
	log     *slog.Logger
}

// NewScene allocates the overlay buffer on dev.
func NewScene(w *world.World, p *player.Player, dev graphics.Device, log *slog.Logger) (*Scene, error) {
	overlay, err := dev.GenBuffer()
	if err != nil {
		return nil, fmt.Errorf("overlay buffer: %w", err)
	}
	return &Scene{
		World:   w,
		Player:  p,
		dev:     dev,
		overlay: overlay,
		log:     log,
	}, nil
}

// Draw renders the visible chunks, probes for the cursor target and draws
// the cursor box and crosshair.
func (s *Scene) Draw() error {
	vp := s.Player.ViewProjection()
	if err := s.World.Render(vp); err != nil {
		return err
	}

	s.Target = s.Player.Target(s.World, config.GetFocusOnTransparent())
	s.drawOverlay(vp)
	return nil
}

func (s *Scene) drawOverlay(vp mgl32.Mat4) {
	defer profiling.Track("game.drawOverlay")()

	ov, hasOverlay := s.dev.(overlayDevice)

	if s.Target.Hit {
		if hasOverlay {
			ov.BeginOverlay(true)
		}
		box := s.Target.CursorBox(registry.BlockTypeBlack)
		s.dev.BufferData(s.overlay, graphics.Float32Bytes(box), graphics.DynamicDraw)
		s.dev.SetMVP(vp)
		s.dev.Draw(s.overlay, graphics.Lines, graphics.FormatFloat4, len(box)/4)
	}

	if hasOverlay {
		ov.BeginOverlay(false)
	}
	s.dev.BufferData(s.overlay, graphics.Float32Bytes(crosshair), graphics.DynamicDraw)
	s.dev.SetMVP(mgl32.Ident4())
	s.dev.Draw(s.overlay, graphics.Lines, graphics.FormatFloat4, len(crosshair)/4)
}

// Focus is the distance to the cursor target, capped at MaxFocusDistance.
func (s *Scene) Focus() float32 {
	if !s.Target.Hit || s.Target.Distance > MaxFocusDistance {
		return MaxFocusDistance
	}
	return s.Target.Distance
}

// Build places the selected block type at the cursor.
func (s *Scene) Build() {
	s.Player.PlaceBlock(s.World, s.Target)
}

// Erase removes the block under the cursor.
func (s *Scene) Erase() {
	s.Player.BreakBlock(s.World, s.Target)
}

// Dispose frees the overlay buffer and the world's buffers.
func (s *Scene) Dispose() {
	s.World.Dispose()
	s.dev.DeleteBuffer(s.overlay)
}
