package player

import (
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"glescraft/internal/graphics"
	"glescraft/internal/registry"
)

const (
	// MoveSpeed is the flying speed in blocks per second.
	MoveSpeed = 10
	// SprintMultiplier applies while shift is held.
	SprintMultiplier = 5
	// MouseSpeed is radians per pixel of mouse movement.
	MouseSpeed = 0.001
	// MaxPitch keeps the camera from flipping over the poles.
	MaxPitch = math32.Pi * 0.49
)

// Player is the flying camera together with the block it builds with.
type Player struct {
	Position mgl32.Vec3
	// Yaw turns around the y axis, Pitch looks up and down. Radians.
	Yaw   float32
	Pitch float32

	forward mgl32.Vec3
	right   mgl32.Vec3
	lookat  mgl32.Vec3
	up      mgl32.Vec3

	Keys  Keys
	Shift bool

	MoveSpeed  float32
	MouseSpeed float32

	BuildType registry.BlockType
	Camera    *graphics.Camera

	log *slog.Logger
}

// New places a player at the home position.
func New(camera *graphics.Camera, log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}
	p := &Player{
		MoveSpeed:  MoveSpeed,
		MouseSpeed: MouseSpeed,
		BuildType:  registry.BlockTypeDirt,
		Camera:     camera,
		log:        log,
	}
	p.Home(32)
	return p
}

// Home moves the player just above the ground at the origin, looking
// slightly down.
func (p *Player) Home(chunkHeight int) {
	p.Position = mgl32.Vec3{0, float32(chunkHeight + 1), 0}
	p.SetAngles(0, -0.5)
}

// Overview moves the player high above the world looking almost straight
// down. height is the world width in blocks.
func (p *Player) Overview(height int) {
	p.Position = mgl32.Vec3{0, float32(height), 0}
	p.SetAngles(0, -MaxPitch)
}

// SelectNext cycles the build type forward.
func (p *Player) SelectNext() registry.BlockType {
	p.BuildType = registry.Next(p.BuildType)
	p.logBuildType()
	return p.BuildType
}

// SelectPrev cycles the build type backward.
func (p *Player) SelectPrev() registry.BlockType {
	p.BuildType = registry.Prev(p.BuildType)
	p.logBuildType()
	return p.BuildType
}

// Scroll selects a build type from a wheel offset. Scrolling up goes back
// in the catalog.
func (p *Player) Scroll(yoff float64) {
	if yoff > 0 {
		p.SelectPrev()
	} else if yoff < 0 {
		p.SelectNext()
	}
}

func (p *Player) logBuildType() {
	p.log.Info("building blocks", "type", uint8(p.BuildType), "name", registry.Name(p.BuildType))
}
