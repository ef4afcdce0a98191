package game

import (
	"time"

	"glescraft/internal/config"
)

// FPSLimiter paces the main loop to the configured frame rate.
type FPSLimiter struct {
	next time.Time
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// Wait blocks until the next frame is due. An iconified window is paced at
// config.MinFramerate regardless of the setting.
// Uses a hybrid sleep/spin approach for better precision on high frame rates.
func (f *FPSLimiter) Wait(iconified bool) {
	limit := config.GetFramerate()
	if iconified {
		limit = config.MinFramerate
	}

	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// Resync after a hitch instead of running frames back to back.
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
