package timeline

import (
	"math"
	"time"

	"routereel/internal/domain/entity"
	domainerrors "routereel/internal/domain/errors"
)

const (
	// DefaultDuration is the length of a full run at speed 1.
	DefaultDuration = 10 * time.Second
	// DefaultSpeed is the initial playback rate multiplier.
	DefaultSpeed = 1.0
)

// Playback is the playback state machine. It is Stopped, Playing or Paused
// and integrates wall-clock ticks into route progress.
type Playback struct {
	state        entity.AnimationState
	segmentCount int
	completions  int
}

// NewPlayback creates a stopped engine. Non-positive arguments fall back to
// the defaults.
func NewPlayback(duration time.Duration, speed float64) *Playback {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		speed = DefaultSpeed
	}

	return &Playback{
		state: entity.AnimationState{
			Speed:    speed,
			Duration: duration,
		},
	}
}

// State returns a copy of the current animation state.
func (p *Playback) State() entity.AnimationState {
	return p.state
}

// SegmentCount returns the number of segments progress is spread over.
func (p *Playback) SegmentCount() int {
	return p.segmentCount
}

// Completions counts how many times playback ran to the end and rewound.
func (p *Playback) Completions() int {
	return p.completions
}

// Reset stops playback and adopts a new segment count. Called after every
// structural route edit.
func (p *Playback) Reset(segmentCount int) {
	p.segmentCount = max(segmentCount, 0)
	p.Stop()
}

// Play starts or resumes playback from Stopped or Paused.
func (p *Playback) Play() error {
	if p.segmentCount == 0 {
		return domainerrors.ErrEmptyRoute
	}

	p.state.IsPlaying = true
	p.state.IsPaused = false

	return nil
}

// Pause freezes progress. Only meaningful while playing.
func (p *Playback) Pause() {
	if !p.state.IsPlaying {
		return
	}

	p.state.IsPlaying = false
	p.state.IsPaused = true
}

// Stop rewinds to the start. Speed and duration are kept.
func (p *Playback) Stop() {
	p.state.IsPlaying = false
	p.state.IsPaused = false
	p.state.CurrentProgress = 0
	p.state.CurrentSegmentIndex = 0
	p.state.SegmentProgress = 0
}

// Scrub jumps to the given progress without changing the play/pause flags.
// Progress is clamped to [0, 1]. With no segments it does nothing.
func (p *Playback) Scrub(progress float64) error {
	if math.IsNaN(progress) {
		return domainerrors.ErrInvalidProgress
	}
	if p.segmentCount == 0 {
		return nil
	}

	p.seek(math.Min(math.Max(progress, 0), 1))

	return nil
}

// Tick advances a playing engine by the elapsed wall time. It reports true
// when this tick completed the run, in which case the engine is back at
// Stopped with zero progress.
func (p *Playback) Tick(elapsed time.Duration) bool {
	if !p.state.IsPlaying || elapsed <= 0 || p.segmentCount == 0 {
		return false
	}

	progress := p.state.CurrentProgress + elapsed.Seconds()/p.state.Duration.Seconds()*p.state.Speed
	if progress >= 1 {
		p.Stop()
		p.completions++

		return true
	}

	p.seek(progress)

	return false
}

// SetSpeed changes the playback rate multiplier.
func (p *Playback) SetSpeed(speed float64) error {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return domainerrors.ErrInvalidSpeed
	}
	p.state.Speed = speed

	return nil
}

// SetDuration changes the length of a full run at speed 1.
func (p *Playback) SetDuration(duration time.Duration) error {
	if duration <= 0 {
		return domainerrors.ErrInvalidDuration
	}
	p.state.Duration = duration

	return nil
}

func (p *Playback) seek(progress float64) {
	scaled := progress * float64(p.segmentCount)
	index := min(int(math.Floor(scaled)), p.segmentCount-1)

	p.state.CurrentProgress = progress
	p.state.CurrentSegmentIndex = index
	p.state.SegmentProgress = scaled - float64(index)
}
