package engine

import (
	"time"

	"github.com/babua-dev/clipper/key"
	"github.com/spf13/viper"
)

const (
	DefaultPollInterval = 50 * time.Millisecond
	DefaultHideDelay    = 3 * time.Second
)

type options struct {
	pollInterval time.Duration
	hideDelay    time.Duration
	volume       int
	rate         float64
	origin       string
	notify       func()
}

// Option configures a Controller.
type Option func(*options)

// WithPollInterval sets how often the position monitor samples the player.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

// WithHideDelay sets how long the controls stay visible in fullscreen playback.
func WithHideDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.hideDelay = d
		}
	}
}

// WithVolume sets the volume applied when the player becomes ready.
func WithVolume(v int) Option {
	return func(o *options) {
		o.volume = clampVolume(v)
	}
}

// WithRate sets the playback rate applied when the player becomes ready.
// Rates outside Rates are ignored.
func WithRate(r float64) Option {
	return func(o *options) {
		if rateIndex(r) >= 0 {
			o.rate = r
		}
	}
}

// WithOrigin is forwarded to the player as the embedding origin.
func WithOrigin(origin string) Option {
	return func(o *options) {
		o.origin = origin
	}
}

// WithNotify registers fn to be called, outside any lock, after every state change.
func WithNotify(fn func()) Option {
	return func(o *options) {
		o.notify = fn
	}
}

// FromConfig builds options from the player.* configuration keys.
func FromConfig() []Option {
	return []Option{
		WithVolume(viper.GetInt(key.PlayerVolume)),
		WithRate(viper.GetFloat64(key.PlayerRate)),
		WithPollInterval(time.Duration(viper.GetInt(key.PlayerPollIntervalMs)) * time.Millisecond),
		WithHideDelay(time.Duration(viper.GetInt(key.PlayerControlsHideMs)) * time.Millisecond),
	}
}

func newOptions(opts []Option) options {
	o := options{
		pollInterval: DefaultPollInterval,
		hideDelay:    DefaultHideDelay,
		volume:       100,
		rate:         1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
