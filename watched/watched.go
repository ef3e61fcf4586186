// Package watched persists which clips were played through to their end boundary.
//
// Every read degrades to an empty set and every write reports failure instead
// of returning an error: a broken store must only ever leave content locked.
package watched

import (
	"sync"
	"time"

	"github.com/babua-dev/clipper/clip"
	"github.com/babua-dev/clipper/filesystem"
	"github.com/babua-dev/clipper/log"
	"github.com/babua-dev/clipper/where"
	"github.com/metafates/gache"
)

// Store is a JSON-file backed mapping from window key to Record.
type Store struct {
	mu     sync.Mutex
	cacher *gache.Cache[map[string]*Record]
	now    func() time.Time
}

// New opens the store at path. Nothing is read until first use.
func New(path string) *Store {
	return &Store{
		cacher: gache.New[map[string]*Record](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
		now: time.Now,
	}
}

var (
	defaultStore     *Store
	defaultStoreOnce sync.Once
)

// Default returns the process-wide store at where.Watched().
func Default() *Store {
	defaultStoreOnce.Do(func() {
		defaultStore = New(where.Watched())
	})
	return defaultStore
}

// All returns every record. A missing, unreadable or corrupt file yields an empty map.
func (s *Store) All() map[string]*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() map[string]*Record {
	cached, expired, err := s.cacher.Get()
	if err != nil {
		log.Warnf("watched store unreadable, treating as empty: %v", err)
		return make(map[string]*Record)
	}
	if expired || cached == nil {
		return make(map[string]*Record)
	}
	return cached
}

// IsWatched reports whether w has a record.
func (s *Store) IsWatched(w clip.Window) bool {
	_, ok := s.All()[w.Key()]
	return ok
}

// Mark records w as watched now. Marking again overwrites the timestamp.
// It returns false when the record could not be persisted.
func (s *Store) Mark(w clip.Window) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.load()
	saved[w.Key()] = newRecord(w, s.now())

	if err := s.cacher.Set(saved); err != nil {
		log.Warnf("persist watched record %s: %v", w.Key(), err)
		return false
	}
	return true
}

// Remove deletes a record by key. Removing an unknown key is not an error.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.load()
	if _, ok := saved[key]; !ok {
		return nil
	}
	delete(saved, key)
	return s.cacher.Set(saved)
}

// Clear deletes every record.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cacher.Set(make(map[string]*Record))
}
