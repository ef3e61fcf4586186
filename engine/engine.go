// Package engine plays a single clip window on an external player.
//
// A Controller owns one player instance for the lifetime of one window. It
// clamps every command into the window, samples the player on a fixed
// interval to keep playback inside the bounds, and raises a completion event
// when the end boundary is reached. Interaction helpers translate keyboard and
// pointer input into commands and manage the auto-hiding control overlay.
package engine

import (
	"context"
	"errors"

	"github.com/babua-dev/clipper/clip"
	"github.com/babua-dev/clipper/completion"
	"github.com/babua-dev/clipper/player"
)

const (
	// SeekGuard keeps user seeks this many seconds before the end boundary.
	SeekGuard = 0.5
	// LowerGuard is how far before the start the player may drift before a corrective seek.
	LowerGuard = 0.5
	// UpperGuard is how close to the end boundary playback is considered complete.
	UpperGuard = 0.3
	// FrameStep is one frame at 30 fps.
	FrameStep = 1.0 / 30
	// UnmuteVolume is restored when unmuting from volume 0.
	UnmuteVolume = 50
	// VolumeStep is applied by the volume keys.
	VolumeStep = 5
)

// Rates are the allowed playback rates, ascending.
var Rates = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2}

// ErrorMessage is shown for any load or playback failure.
const ErrorMessage = "Video failed to load"

var (
	ErrAPILoad         = errors.New("player api failed to load")
	ErrPlayback        = errors.New("playback failed")
	ErrUnsupportedRate = errors.New("unsupported playback rate")
	ErrClosed          = errors.New("controller closed")
	ErrNotStarted      = errors.New("player not started")
)

// Phase is the lifecycle position of a Controller.
type Phase int

const (
	Idle Phase = iota
	Acquiring
	Ready
	Playing
	Paused
	Ended
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Acquiring:
		return "acquiring"
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// State is a snapshot of everything a view needs to render the player.
// Positions are relative to the window start.
type State struct {
	Phase Phase

	Active  bool
	Ready   bool
	Playing bool

	Position float64
	Buffered float64

	Volume int
	Muted  bool
	Rate   float64

	Error string

	Fullscreen      bool
	ControlsVisible bool
	SettingsOpen    bool
	Dragging        bool
}

// Loader hands out the player API. *player.Loader satisfies it.
type Loader interface {
	Load(ctx context.Context) (player.API, error)
}

// Publisher receives completion events. *completion.Bus satisfies it.
type Publisher interface {
	Publish(completion.Event)
}

// Recorder persists watched windows. *watched.Store satisfies it.
type Recorder interface {
	Mark(clip.Window) bool
}

// Fullscreen is the host's presentation-mode capability.
type Fullscreen interface {
	IsFullscreen() bool
	Request() error
	Exit() error
}

// Observer is told about notable engine events, for metrics.
type Observer interface {
	PlayerConstructed()
	Completed(clip.Window)
	CorrectiveSeek()
	SampleFailed()
	PlaybackFailed()
}

// Deps are the process-wide services a Controller uses.
// Only Loader is required.
type Deps struct {
	Loader     Loader
	Bus        Publisher
	Store      Recorder
	Fullscreen Fullscreen
	Observer   Observer
}

type nopObserver struct{}

func (nopObserver) PlayerConstructed()    {}
func (nopObserver) Completed(clip.Window) {}
func (nopObserver) CorrectiveSeek()       {}
func (nopObserver) SampleFailed()         {}
func (nopObserver) PlaybackFailed()       {}

type nopPublisher struct{}

func (nopPublisher) Publish(completion.Event) {}

type nopRecorder struct{}

func (nopRecorder) Mark(clip.Window) bool { return false }

func (d Deps) withDefaults() Deps {
	if d.Bus == nil {
		d.Bus = nopPublisher{}
	}
	if d.Store == nil {
		d.Store = nopRecorder{}
	}
	if d.Observer == nil {
		d.Observer = nopObserver{}
	}
	return d
}
