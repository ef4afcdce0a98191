package player

import (
	"glescraft/internal/physics"
)

// World is what the player looks at and edits.
type World interface {
	physics.BlockGetter
	physics.BlockSetter
}

// Target probes along the view direction.
func (p *Player) Target(w physics.BlockGetter, focusOnTransparent bool) physics.Target {
	return physics.Probe(w, p.Position, p.lookat, physics.ProbeOptions{FocusOnTransparent: focusOnTransparent})
}

// PlaceBlock builds the selected type against the targeted face.
func (p *Player) PlaceBlock(w World, t physics.Target) bool {
	p.log.Info("clicked", "x", t.Position[0], "y", t.Position[1], "z", t.Position[2], "face", t.Face.String(), "action", "build")
	return physics.Build(w, t, p.BuildType)
}

// BreakBlock erases the targeted block.
func (p *Player) BreakBlock(w World, t physics.Target) bool {
	p.log.Info("clicked", "x", t.Position[0], "y", t.Position[1], "z", t.Position[2], "face", t.Face.String(), "action", "erase")
	return physics.Erase(w, t)
}
