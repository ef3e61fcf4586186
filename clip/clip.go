// Package clip resolves raw clip descriptors into canonical, immutable playback windows.
package clip

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/babua-dev/clipper/constant"
)

// ErrInvalidWindow is returned by Resolve for descriptors that cannot be played.
var ErrInvalidWindow = errors.New("invalid clip window")

// Window is the bounded [StartSeconds, EndSeconds) range of a source video.
// Its identity is the (SourceID, StartSeconds, EndSeconds) triple.
type Window struct {
	SourceID     string `json:"source_id"`
	StartSeconds int    `json:"start_seconds"`
	EndSeconds   int    `json:"end_seconds"`
	Duration     int    `json:"duration"`
}

// Resolve validates a raw descriptor and normalizes it into a Window.
func Resolve(rawSourceID string, rawStart, rawEnd float64) (Window, error) {
	id := strings.TrimSpace(rawSourceID)

	switch {
	case id == "":
		return Window{}, fmt.Errorf("%w: empty source id", ErrInvalidWindow)
	case strings.HasPrefix(id, constant.PlaylistPrefix):
		return Window{}, fmt.Errorf("%w: %q is a playlist, not a single video", ErrInvalidWindow, id)
	case !finite(rawStart) || !finite(rawEnd):
		return Window{}, fmt.Errorf("%w: non-finite bounds %v..%v", ErrInvalidWindow, rawStart, rawEnd)
	case rawEnd <= rawStart:
		return Window{}, fmt.Errorf("%w: end %v is not after start %v", ErrInvalidWindow, rawEnd, rawStart)
	}

	start := int(math.Floor(math.Max(0, rawStart)))
	end := int(math.Floor(rawEnd))
	if end <= start {
		return Window{}, fmt.Errorf("%w: window %d..%d is empty after flooring", ErrInvalidWindow, start, end)
	}

	return Window{
		SourceID:     id,
		StartSeconds: start,
		EndSeconds:   end,
		Duration:     end - start,
	}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Key returns the persistence and broadcast key "{sourceId}_{start}_{end}".
func (w Window) Key() string {
	return Key(w.SourceID, w.StartSeconds, w.EndSeconds)
}

// Key builds a window key from its identity triple.
func Key(sourceID string, start, end int) string {
	return fmt.Sprintf("%s_%d_%d", sourceID, start, end)
}

// Equal reports whether both windows share the same identity.
func (w Window) Equal(other Window) bool {
	return w.SourceID == other.SourceID &&
		w.StartSeconds == other.StartSeconds &&
		w.EndSeconds == other.EndSeconds
}

// Absolute converts a clip-relative offset into a source position.
func (w Window) Absolute(relative float64) float64 {
	return float64(w.StartSeconds) + relative
}

// WatchURL links to the clip start on the source site.
func (w Window) WatchURL() string {
	return fmt.Sprintf(constant.WatchURLFormat, w.SourceID, w.StartSeconds)
}

// ThumbnailURL links to the preview image shown before playback starts.
func (w Window) ThumbnailURL() string {
	return fmt.Sprintf(constant.ThumbnailURLFormat, w.SourceID)
}

func (w Window) String() string {
	return fmt.Sprintf("%s [%s-%s]", w.SourceID, FormatTime(float64(w.StartSeconds)), FormatTime(float64(w.EndSeconds)))
}

// FormatTime renders seconds as M:SS, or H:MM:SS from one hour on.
// Negative and non-finite inputs render as 0:00.
func FormatTime(seconds float64) string {
	if !finite(seconds) || seconds < 0 {
		seconds = 0
	}

	s := int(math.Floor(seconds))
	h, m, r := s/3600, (s%3600)/60, s%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, r)
	}
	return fmt.Sprintf("%d:%02d", m, r)
}
