package player

import (
	"glescraft/internal/profiling"
)

// Keys is the set of held movement keys.
type Keys uint8

const (
	KeyLeft Keys = 1 << iota
	KeyRight
	KeyForward
	KeyBackward
	KeyUp
	KeyDown
)

// Press marks keys as held.
func (p *Player) Press(k Keys) { p.Keys |= k }

// Release marks keys as released.
func (p *Player) Release(k Keys) { p.Keys &^= k }

// UpdatePosition flies the player along the held keys for dt seconds.
// Vertical movement ignores the view direction.
func (p *Player) UpdatePosition(dt float32) {
	defer profiling.Track("player.UpdatePosition")()

	speed := p.MoveSpeed * dt
	if p.Shift {
		speed *= SprintMultiplier
	}

	if p.Keys&KeyLeft != 0 {
		p.Position = p.Position.Sub(p.right.Mul(speed))
	}
	if p.Keys&KeyRight != 0 {
		p.Position = p.Position.Add(p.right.Mul(speed))
	}
	if p.Keys&KeyForward != 0 {
		p.Position = p.Position.Add(p.forward.Mul(speed))
	}
	if p.Keys&KeyBackward != 0 {
		p.Position = p.Position.Sub(p.forward.Mul(speed))
	}
	if p.Keys&KeyUp != 0 {
		p.Position[1] += speed
	}
	if p.Keys&KeyDown != 0 {
		p.Position[1] -= speed
	}
}
