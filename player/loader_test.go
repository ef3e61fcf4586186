package player

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type stubAPI struct{}

func (stubAPI) New(Config, Events) (Player, error) { return nil, errors.New("stub") }

func TestLoader(t *testing.T) {
	Convey("Given a loader", t, func() {
		var calls atomic.Int32
		release := make(chan struct{})
		loader := NewLoader(func() (API, error) {
			calls.Add(1)
			<-release
			return stubAPI{}, nil
		})

		Convey("Concurrent callers should share a single load", func() {
			var wg sync.WaitGroup
			results := make([]API, 8)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], _ = loader.Load(context.Background())
				}(i)
			}

			time.Sleep(20 * time.Millisecond)
			close(release)
			wg.Wait()

			So(calls.Load(), ShouldEqual, 1)
			for _, api := range results {
				So(api, ShouldNotBeNil)
			}

			_, err := loader.Load(context.Background())
			So(err, ShouldBeNil)
			So(calls.Load(), ShouldEqual, 1)
		})

		Convey("A cancelled wait should not cancel the shared load", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := loader.Load(ctx)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)

			close(release)
			api, err := loader.Load(context.Background())
			So(err, ShouldBeNil)
			So(api, ShouldNotBeNil)
		})
	})

	Convey("A failed load should stay failed", t, func() {
		var calls atomic.Int32
		loader := NewLoader(func() (API, error) {
			calls.Add(1)
			return nil, errors.New("script blocked")
		})

		_, err := loader.Load(context.Background())
		So(err, ShouldNotBeNil)
		_, err = loader.Load(context.Background())
		So(err, ShouldNotBeNil)
		So(calls.Load(), ShouldEqual, 1)
	})
}
