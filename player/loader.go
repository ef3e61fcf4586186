package player

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/babua-dev/clipper/key"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// LoadFunc obtains an API. It runs at most once per Loader.
type LoadFunc func() (API, error)

// Loader shares a single API load between every caller. The first call starts
// the load; concurrent and later callers await the same result, success or failure.
type Loader struct {
	load   LoadFunc
	once   sync.Once
	future *mo.Future[API]
}

// NewLoader wraps load in a Loader.
func NewLoader(load LoadFunc) *Loader {
	return &Loader{load: load}
}

// Load returns the API, starting the load on first use.
// Cancelling ctx abandons the wait but not the shared load.
func (l *Loader) Load(ctx context.Context) (API, error) {
	l.once.Do(func() {
		l.future = mo.NewFuture(func(resolve func(API), reject func(error)) {
			api, err := l.load()
			switch {
			case err != nil:
				reject(err)
			case api == nil:
				reject(fmt.Errorf("player api unavailable"))
			default:
				resolve(api)
			}
		})
	})

	type result struct {
		api API
		err error
	}

	done := make(chan result, 1)
	go func() {
		api, err := l.future.Collect()
		done <- result{api, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.api, r.err
	}
}

var (
	defaultLoader     *Loader
	defaultLoaderOnce sync.Once
)

// Default returns the process-wide loader for the configured backend.
func Default() *Loader {
	defaultLoaderOnce.Do(func() {
		defaultLoader = NewLoader(func() (API, error) {
			switch backend := strings.ToLower(viper.GetString(key.Player)); backend {
			case "", "mpv":
				return LoadMPV()
			default:
				return nil, fmt.Errorf("unsupported player backend %q", backend)
			}
		})
	})
	return defaultLoader
}
