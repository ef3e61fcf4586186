package watched

import (
	"fmt"
	"time"

	"github.com/babua-dev/clipper/clip"
)

// Record marks a clip as watched to its end.
type Record struct {
	CompletedAt  time.Time `json:"completed_at"`
	SourceID     string    `json:"source_id"`
	StartSeconds int       `json:"start_seconds"`
	EndSeconds   int       `json:"end_seconds"`
}

// Key returns the record's storage key, "{sourceId}_{start}_{end}".
func (r *Record) Key() string {
	return clip.Key(r.SourceID, r.StartSeconds, r.EndSeconds)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s  %s-%s  %s",
		r.SourceID,
		clip.FormatTime(float64(r.StartSeconds)),
		clip.FormatTime(float64(r.EndSeconds)),
		r.CompletedAt.Local().Format(time.DateTime),
	)
}

func newRecord(w clip.Window, at time.Time) *Record {
	return &Record{
		CompletedAt:  at,
		SourceID:     w.SourceID,
		StartSeconds: w.StartSeconds,
		EndSeconds:   w.EndSeconds,
	}
}
