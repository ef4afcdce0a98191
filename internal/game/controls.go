package game

import (
	"glescraft/internal/config"
	"glescraft/internal/input"
	"glescraft/internal/player"
	"glescraft/internal/world"
)

var movementActions = [...]struct {
	action input.Action
	key    player.Keys
}{
	{input.ActionMoveLeft, player.KeyLeft},
	{input.ActionMoveRight, player.KeyRight},
	{input.ActionMoveForward, player.KeyForward},
	{input.ActionMoveBackward, player.KeyBackward},
	{input.ActionMoveUp, player.KeyUp},
	{input.ActionMoveDown, player.KeyDown},
}

// HandleInput applies this frame's input to the player and the world. It
// reports whether the player asked to quit. Edits act on the target found
// by the previous Draw.
func (s *Scene) HandleInput(im *input.InputManager) (quit bool) {
	p := s.Player

	for _, m := range movementActions {
		if im.IsActive(m.action) {
			p.Press(m.key)
		} else {
			p.Release(m.key)
		}
	}
	p.Shift = im.IsActive(input.ActionSprint)

	if dx, dy := im.Look(); dx != 0 || dy != 0 {
		p.Look(dx, dy)
	}
	p.Scroll(im.Scroll())

	if im.JustPressed(input.ActionHome) {
		p.Home(world.ChunkSizeY)
	}
	if im.JustPressed(input.ActionOverview) {
		sizeX, _, _ := s.World.Size()
		p.Overview(world.ChunkSizeX * sizeX)
	}
	if im.JustPressed(input.ActionToggleFocus) {
		s.log.Info("focus on transparent", "enabled", config.ToggleFocusOnTransparent())
	}
	if im.JustPressed(input.ActionCycleFramerate) {
		s.log.Info("frame rate", "hz", config.CycleFramerate())
	}
	if im.JustPressed(input.ActionBuild) {
		s.Build()
	}
	if im.JustPressed(input.ActionErase) {
		s.Erase()
	}

	return im.JustPressed(input.ActionQuit)
}
