package history

import (
	"fmt"
	"time"

	"github.com/babua-dev/clipper/clip"
)

// Played is one remembered clip play.
type Played struct {
	SourceID     string    `json:"source_id"`
	StartSeconds int       `json:"start_seconds"`
	EndSeconds   int       `json:"end_seconds"`
	Title        string    `json:"title,omitempty"`
	Pattern      string    `json:"pattern,omitempty"`
	Question     string    `json:"question,omitempty"`
	PlayedAt     time.Time `json:"played_at"`
}

// Key returns the window key of the play.
func (p *Played) Key() string {
	return clip.Key(p.SourceID, p.StartSeconds, p.EndSeconds)
}

// FromCatalog reports whether the play was looked up by pattern and question.
func (p *Played) FromCatalog() bool {
	return p.Pattern != "" && p.Question != ""
}

func (p *Played) String() string {
	name := p.Title
	if name == "" {
		name = p.Question
	}
	if name == "" {
		name = p.SourceID
	}
	return fmt.Sprintf("%s [%s-%s]", name, clip.FormatTime(float64(p.StartSeconds)), clip.FormatTime(float64(p.EndSeconds)))
}

func newPlayed(w clip.Window, title, pattern, question string, at time.Time) *Played {
	return &Played{
		SourceID:     w.SourceID,
		StartSeconds: w.StartSeconds,
		EndSeconds:   w.EndSeconds,
		Title:        title,
		Pattern:      pattern,
		Question:     question,
		PlayedAt:     at,
	}
}
