package player

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SetAngles sets yaw and pitch and recomputes the view vectors. Yaw wraps
// to [-pi, pi]; pitch is clamped to +-MaxPitch.
func (p *Player) SetAngles(yaw, pitch float32) {
	if yaw < -math32.Pi {
		yaw += 2 * math32.Pi
	}
	if yaw > math32.Pi {
		yaw -= 2 * math32.Pi
	}
	p.Yaw = yaw
	p.Pitch = mgl32.Clamp(pitch, -MaxPitch, MaxPitch)
	p.updateVectors()
}

// Look turns the camera by a mouse offset in pixels from the window center.
func (p *Player) Look(dx, dy float64) {
	p.SetAngles(
		p.Yaw-float32(dx)*p.MouseSpeed,
		p.Pitch-float32(dy)*p.MouseSpeed,
	)
}

func (p *Player) updateVectors() {
	sy, cy := math32.Sincos(p.Yaw)
	sp, cp := math32.Sincos(p.Pitch)

	p.forward = mgl32.Vec3{sy, 0, cy}
	p.right = mgl32.Vec3{-cy, 0, sy}
	p.lookat = mgl32.Vec3{sy * cp, sp, cy * cp}
	p.up = p.right.Cross(p.lookat)
}

// Forward is the horizontal walking direction.
func (p *Player) Forward() mgl32.Vec3 { return p.forward }

// Right is the horizontal strafing direction.
func (p *Player) Right() mgl32.Vec3 { return p.right }

// LookAt is the unit view direction.
func (p *Player) LookAt() mgl32.Vec3 { return p.lookat }

// Up is the camera up vector.
func (p *Player) Up() mgl32.Vec3 { return p.up }

func (p *Player) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(p.Position, p.Position.Add(p.lookat), p.up)
}

// ViewProjection combines the camera projection with the view matrix.
func (p *Player) ViewProjection() mgl32.Mat4 {
	return p.Camera.GetProjectionMatrix().Mul4(p.GetViewMatrix())
}
