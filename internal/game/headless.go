package game

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chewxy/math32"

	"glescraft/internal/config"
	"glescraft/internal/graphics"
	"glescraft/internal/player"
	"glescraft/internal/profiling"
	"glescraft/internal/world"
)

// headlessTurn is how far the scripted camera turns per frame, one full
// circle every 240 frames.
const headlessTurn = 2 * math32.Pi / 240

// HeadlessReport summarizes a headless run.
type HeadlessReport struct {
	Frames   int
	Stats    world.Stats
	Draws    int
	Uploads  int
	PeakLive int
	Edits    int
}

// RunHeadless renders frames against a recording device with a scripted
// camera that flies forward while turning. Every 60th frame a block is built
// against the cursor target and erased again.
func RunHeadless(cfg *config.Config, frames int, log *slog.Logger) (HeadlessReport, error) {
	if frames < 0 {
		return HeadlessReport{}, errors.New("headless: negative frame count")
	}

	hz := config.GetFramerate()
	if hz <= 0 {
		hz = config.MinFramerate
	}
	step := time.Second / time.Duration(hz)
	var now time.Duration

	rec := graphics.NewRecorder()
	opts := worldOptions(cfg.World)
	opts.Clock = func() time.Duration { return now }

	w, err := world.New(opts, rec)
	if err != nil {
		return HeadlessReport{}, fmt.Errorf("create world: %w", err)
	}

	p := newPlayer(cfg.Controls, graphics.NewCamera(cfg.Window.Width, cfg.Window.Height), log)
	p.Press(player.KeyForward)

	scene, err := NewScene(w, p, rec, log)
	if err != nil {
		w.Dispose()
		return HeadlessReport{}, err
	}
	defer scene.Dispose()

	report := HeadlessReport{Frames: frames}
	for frame := range frames {
		profiling.ResetFrame()
		now += step

		p.SetAngles(p.Yaw+headlessTurn, p.Pitch)
		p.UpdatePosition(float32(step.Seconds()))

		if err := scene.Draw(); err != nil {
			return report, fmt.Errorf("frame %d: %w", frame, err)
		}
		report.Draws += len(rec.Calls())
		rec.Reset()

		if frame%60 == 59 && scene.Target.Hit {
			scene.Build()
			scene.Target = p.Target(w, config.GetFocusOnTransparent())
			scene.Erase()
			report.Edits++
		}

		if frame%100 == 99 {
			log.Debug("headless progress", "frame", frame+1, "top", profiling.TopN(3))
		}
	}

	report.Stats = w.Stats()
	report.Uploads = rec.Uploads()
	report.PeakLive = rec.PeakLive()

	log.Info("headless run finished",
		"frames", report.Frames,
		"chunks", report.Stats.Chunks,
		"initialized", report.Stats.Initialized,
		"noised", report.Stats.Noised,
		"nonEmpty", report.Stats.NonEmpty,
		"drawn", report.Stats.Drawn,
		"draws", report.Draws,
		"uploads", report.Uploads,
		"peakBuffers", report.PeakLive,
		"evictions", report.Stats.Pool.Evictions,
		"edits", report.Edits,
		"focus", scene.Focus())
	return report, nil
}
