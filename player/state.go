package player

// State is a discrete playback state reported by a backend.
type State int

const (
	Unstarted State = iota
	Ended
	Playing
	Paused
	Buffering
	Cued
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Ended:
		return "ended"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Buffering:
		return "buffering"
	case Cued:
		return "cued"
	default:
		return "unknown"
	}
}
