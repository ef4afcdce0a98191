package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical game action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionSprint
	ActionHome
	ActionOverview
	ActionToggleFocus
	ActionCycleFramerate
	ActionQuit
	ActionBuild
	ActionErase
	ActionCount // Sentinel value for array sizing
)

// InputManager maps physical keys and buttons to logical actions and
// accumulates mouse movement and scrolling between frames.
type InputManager struct {
	mu sync.RWMutex

	// One key can map to multiple actions
	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool

	// Edge flags, reset by PostUpdate
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	lookX, lookY float64
	scroll       float64
}

// NewInputManager creates a new InputManager with default key bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeySpace, ActionMoveUp)
	im.BindKey(glfw.KeyC, ActionMoveDown)
	im.BindKey(glfw.KeyLeftShift, ActionSprint)
	im.BindKey(glfw.KeyRightShift, ActionSprint)
	im.BindKey(glfw.KeyHome, ActionHome)
	im.BindKey(glfw.KeyEnd, ActionOverview)
	im.BindKey(glfw.KeyF5, ActionToggleFocus)
	im.BindKey(glfw.KeyF6, ActionCycleFramerate)
	im.BindKey(glfw.KeyEscape, ActionQuit)

	im.BindMouseButton(glfw.MouseButtonLeft, ActionBuild)
	im.BindMouseButton(glfw.MouseButtonRight, ActionErase)

	return im
}

// BindKey binds a physical key to a logical action
// Multiple keys can be bound to the same action
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.apply(im.keyToActions[key], action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent processes a mouse button event and updates internal state
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.apply(im.mouseButtonToActions[button], action == glfw.Press)
}

func (im *InputManager) apply(actions []Action, isPressed bool) {
	for _, act := range actions {
		// Detect edges immediately when event arrives
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !isPressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// ReleaseAll releases every held action, as if all keys went up.
func (im *InputManager) ReleaseAll() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for act := range ActionCount {
		if im.currentState[act] {
			im.justReleased[act] = true
		}
	}
	clear(im.currentState[:])
}

// HandleMouseMove accumulates a cursor offset in pixels.
func (im *InputManager) HandleMouseMove(dx, dy float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.lookX += dx
	im.lookY += dy
}

// HandleScroll accumulates a vertical wheel offset.
func (im *InputManager) HandleScroll(yoff float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.scroll += yoff
}

// Look returns the cursor movement accumulated this frame.
func (im *InputManager) Look() (dx, dy float64) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.lookX, im.lookY
}

// Scroll returns the wheel offset accumulated this frame.
func (im *InputManager) Scroll() float64 {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.scroll
}

// PostUpdate must be called at the end of each frame. It clears the edge
// flags and the accumulated mouse movement.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	clear(im.justPressed[:])
	clear(im.justReleased[:])
	im.lookX, im.lookY = 0, 0
	im.scroll = 0
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}
