package config

import "sync"

const (
	// MinFramerate is where the frame rate cycle wraps around to.
	MinFramerate = 12
	// MaxCycledFramerate is the highest frame rate reachable by cycling.
	MaxCycledFramerate = 200
	maxFramerate       = 1000
)

// RuntimeSettings holds the settings that can be toggled while running
type RuntimeSettings struct {
	mu                 sync.RWMutex
	framerate          int // frames per second, 0 = unlimited
	focusOnTransparent bool
}

var globalRuntimeSettings = &RuntimeSettings{
	framerate:          24,
	focusOnTransparent: true,
}

// GetFramerate returns the frame rate limit in Hz (0 = unlimited)
func GetFramerate() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.framerate
}

// SetFramerate sets the frame rate limit
func SetFramerate(hz int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	// Clamp to reasonable values
	if hz < 0 {
		hz = 0
	}
	if hz > maxFramerate {
		hz = maxFramerate
	}

	globalRuntimeSettings.framerate = hz
}

// CycleFramerate doubles the frame rate limit, wrapping back to
// MinFramerate once it passes MaxCycledFramerate. Returns the new limit.
func CycleFramerate() int {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	hz := globalRuntimeSettings.framerate * 2
	if hz > MaxCycledFramerate || hz <= 0 {
		hz = MinFramerate
	}
	globalRuntimeSettings.framerate = hz
	return hz
}

// GetFocusOnTransparent returns whether the block cursor stops at water and glass
func GetFocusOnTransparent() bool {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.focusOnTransparent
}

// SetFocusOnTransparent sets whether the block cursor stops at water and glass
func SetFocusOnTransparent(enabled bool) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.focusOnTransparent = enabled
}

// ToggleFocusOnTransparent flips the setting and returns the new value
func ToggleFocusOnTransparent() bool {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.focusOnTransparent = !globalRuntimeSettings.focusOnTransparent
	return globalRuntimeSettings.focusOnTransparent
}

// Apply copies the runtime part of a loaded configuration into the
// global settings.
func Apply(c *Config) {
	SetFramerate(c.Window.Framerate)
	SetFocusOnTransparent(c.Controls.FocusOnTransparent)
}
