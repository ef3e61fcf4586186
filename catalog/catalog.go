// Package catalog loads the clip index and looks clips up by pattern and question.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/babua-dev/clipper/clip"
	"github.com/babua-dev/clipper/filesystem"
	"github.com/babua-dev/clipper/internal/cache"
	"github.com/babua-dev/clipper/key"
	"github.com/babua-dev/clipper/log"
	"github.com/babua-dev/clipper/network"
	"github.com/babua-dev/clipper/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Entry is one clip in the index.
type Entry struct {
	Pattern   string  `json:"pattern"`
	Question  string  `json:"question"`
	VideoID   string  `json:"videoId"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Title     string  `json:"title,omitempty"`
	Summary   string  `json:"summary,omitempty"`

	// Solution content, shown once the clip has been watched.
	JavaCode  string `json:"javaCode,omitempty"`
	CppCode   string `json:"cppCode,omitempty"`
	Intuition string `json:"intuition,omitempty"`
}

// Window resolves the clip window of e.
func (e Entry) Window() (clip.Window, error) {
	return clip.Resolve(e.VideoID, e.StartTime, e.EndTime)
}

// HasSolution reports whether e carries any gated content.
func (e Entry) HasSolution() bool {
	return e.JavaCode != "" || e.CppCode != "" || e.Intuition != ""
}

// DisplayTitle is the title, falling back to the question.
func (e Entry) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return e.Question
}

// Index is a lazily loaded clip index. Concurrent loads share one fetch and a
// successful result is kept for the life of the Index.
type Index struct {
	source string
	client *http.Client

	mu      sync.Mutex
	entries []Entry
	loaded  bool
	pending *mo.Future[[]Entry]
}

// New returns an Index reading from source: a local path or an http(s) URL.
func New(source string) *Index {
	return &Index{source: source, client: network.Client}
}

var (
	defaultIndex     *Index
	defaultIndexOnce sync.Once
)

// Default returns the process-wide index at catalog.path, or where.Catalog() when unset.
func Default() *Index {
	defaultIndexOnce.Do(func() {
		source := viper.GetString(key.CatalogPath)
		if source == "" {
			source = where.Catalog()
		}
		defaultIndex = New(source)
	})
	return defaultIndex
}

// Source returns where the index is read from.
func (i *Index) Source() string {
	return i.source
}

// Load returns every entry. Any failure yields an empty list.
// Cancelling ctx abandons the wait, not the shared fetch.
func (i *Index) Load(ctx context.Context) []Entry {
	i.mu.Lock()
	if i.loaded {
		entries := i.entries
		i.mu.Unlock()
		return entries
	}
	if i.pending == nil {
		i.pending = mo.NewFuture(func(resolve func([]Entry), reject func(error)) {
			entries, err := i.fetch()

			i.mu.Lock()
			if err == nil {
				i.entries = entries
				i.loaded = true
			}
			i.pending = nil
			i.mu.Unlock()

			if err != nil {
				reject(err)
				return
			}
			resolve(entries)
		})
	}
	future := i.pending
	i.mu.Unlock()

	type result = lo.Tuple2[[]Entry, error]
	done := make(chan result, 1)
	go func() {
		entries, err := future.Collect()
		done <- result{A: entries, B: err}
	}()

	select {
	case <-ctx.Done():
		return []Entry{}
	case r := <-done:
		if r.B != nil {
			log.Warnf("clip index %s unavailable: %v", i.source, r.B)
			return []Entry{}
		}
		return r.A
	}
}

func (i *Index) fetch() ([]Entry, error) {
	if i.source == "" {
		return nil, fmt.Errorf("no clip index configured")
	}

	if isRemote(i.source) {
		return i.fetchRemote()
	}

	data, err := filesystem.API().ReadFile(i.source)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func (i *Index) fetchRemote() ([]Entry, error) {
	cacheKey := cache.Key(i.source)

	var cached []Entry
	if cache.Read(cacheKey, &cached) {
		log.Debugf("clip index %s served from cache", i.source)
		return cached, nil
	}

	req, err := http.NewRequest(http.MethodGet, i.source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to load clip index (%d)", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	entries, err := decode(data)
	if err != nil {
		return nil, err
	}

	if err := cache.Write(cacheKey, entries); err != nil {
		log.Warnf("caching clip index: %v", err)
	}
	return entries, nil
}

// decode parses a JSON array of entries. A valid document that is not an
// array is an empty index.
func decode(data []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if !bytes.HasPrefix(trimmed, []byte("[")) {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("clip index is not valid JSON")
		}
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
