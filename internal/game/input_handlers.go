package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupInputHandlers feeds window events into the session's input manager.
func SetupInputHandlers(s *Session) {
	window := s.Window
	im := s.Input

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})

	// The cursor is disabled, so positions are virtual. Recentering keeps
	// each event relative to the window center.
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		width, height := w.GetSize()
		cx, cy := float64(width)/2, float64(height)/2
		dx, dy := xpos-cx, ypos-cy
		if dx == 0 && dy == 0 {
			return
		}
		im.HandleMouseMove(dx, dy)
		w.SetCursorPos(cx, cy)
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		im.HandleScroll(yoff)
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		s.Camera.SetViewport(fbWidth, fbHeight)
	})

	// Lose held keys when the window loses focus.
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused {
			im.ReleaseAll()
		}
	})
}
