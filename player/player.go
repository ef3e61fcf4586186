// Package player defines the capability the clip engine drives: an opaque, externally
// implemented video player that can be constructed, commanded and sampled.
// The primary implementation targets mpv via its JSON-IPC interface.
package player

// Config describes how a player instance is constructed for a clip.
type Config struct {
	// VideoID identifies a single source video.
	VideoID string
	// StartTime is the absolute position, in seconds, playback begins at.
	StartTime int
	Autoplay  bool
	// NativeControlsDisabled hides the backend's own on-screen controls and key bindings.
	NativeControlsDisabled bool
	// RelatedDisabled suppresses related-content suggestions after the video.
	RelatedDisabled bool
	// Origin is forwarded to the backend as the embedding origin, when supported.
	Origin string
}

// Events are the notifications a player emits after construction.
// Any callback may be nil.
type Events struct {
	// OnReady fires once, when the player can accept commands.
	OnReady func()
	// OnStateChange reports discrete playback state transitions.
	OnStateChange func(State)
	// OnRateChange reports a playback rate change made by the backend.
	OnRateChange func(float64)
	// OnError reports a load or playback failure.
	OnError func(error)
}

func (e Events) ready() {
	if e.OnReady != nil {
		e.OnReady()
	}
}

func (e Events) state(s State) {
	if e.OnStateChange != nil {
		e.OnStateChange(s)
	}
}

func (e Events) rate(r float64) {
	if e.OnRateChange != nil {
		e.OnRateChange(r)
	}
}

func (e Events) fail(err error) {
	if e.OnError != nil {
		e.OnError(err)
	}
}

// Player is a constructed player handle. Every operation is always present;
// a backend that cannot honour one returns an error instead of omitting it.
type Player interface {
	// Play resumes or starts playback.
	Play() error

	// Pause suspends playback.
	Pause() error

	// SeekTo moves playback to an absolute position in seconds.
	// allowSeekAhead permits seeking into data that is not buffered yet.
	SeekTo(seconds float64, allowSeekAhead bool) error

	// SetVolume sets the output volume, 0 to 100.
	SetVolume(volume int) error

	Mute() error
	Unmute() error

	// SetPlaybackRate sets the playback speed multiplier.
	SetPlaybackRate(rate float64) error

	// CurrentTime returns the absolute playback position in seconds.
	CurrentTime() (float64, error)

	// BufferedFraction returns the buffered share of the whole media, 0 to 1.
	BufferedFraction() (float64, error)

	// Destroy tears the player down and releases its resources.
	Destroy() error
}

// API constructs players. Obtaining an API is the one-time, process-wide
// load step; see Loader.
//
// Implementations must not deliver Events from within New itself.
type API interface {
	New(cfg Config, events Events) (Player, error)
}
