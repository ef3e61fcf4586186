// Package history remembers recently played clips so they can be resumed.
package history

import (
	"sort"
	"time"

	"github.com/babua-dev/clipper/clip"
	"github.com/babua-dev/clipper/filesystem"
	"github.com/babua-dev/clipper/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Limit is the number of clips kept. Older plays are dropped on save.
const Limit = 50

var cacher = gache.New[map[string]*Played](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every remembered play, keyed by window key.
func Get() (map[string]*Played, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Played), nil
	}
	return cached, nil
}

// Recent returns remembered plays, most recent first.
func Recent() ([]*Played, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	played := lo.Values(saved)
	sort.Slice(played, func(i, j int) bool {
		return played[i].PlayedAt.After(played[j].PlayedAt)
	})
	return played, nil
}

// Last returns the most recently played clip, if any.
func Last() (mo.Option[*Played], error) {
	played, err := Recent()
	if err != nil {
		return mo.None[*Played](), err
	}
	if len(played) == 0 {
		return mo.None[*Played](), nil
	}
	return mo.Some(played[0]), nil
}

// Save records a play of w. Playing the same window again moves it to the top.
func Save(w clip.Window, title, pattern, question string) error {
	played, err := Recent()
	if err != nil {
		return err
	}

	record := newPlayed(w, title, pattern, question, time.Now())
	played = append([]*Played{record}, lo.Reject(played, func(p *Played, _ int) bool {
		return p.Key() == record.Key()
	})...)

	if len(played) > Limit {
		played = played[:Limit]
	}

	return cacher.Set(lo.KeyBy(played, (*Played).Key))
}

// Remove forgets the play stored under key.
func Remove(key string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, key)
	return cacher.Set(saved)
}
