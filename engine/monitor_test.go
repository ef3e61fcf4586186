package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/babua-dev/clipper/completion"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMonitor(t *testing.T) {
	Convey("Given a 120..180 clip that is playing", t, func() {
		h := newHarness()
		h.start()
		c := h.controller

		Convey("Ticks inside the window track the relative position", func() {
			for _, now := range []float64{120, 130, 150, 179} {
				h.at(now)
				h.tickNow()
				So(c.Snapshot().Playing, ShouldBeTrue)
				So(c.Snapshot().Position, ShouldEqual, now-120)
			}
			So(h.completions(), ShouldEqual, 0)
		})

		Convey("The buffered amount is scaled to the clip", func() {
			h.player.set(func(f *fakePlayer) { f.buffered = 0.5 })
			h.tickNow()
			So(c.Snapshot().Buffered, ShouldEqual, 30)
		})

		Convey("Reaching the end guard completes the clip", func() {
			h.at(179.8)
			h.tickNow()

			s := c.Snapshot()
			So(s.Playing, ShouldBeFalse)
			So(s.Phase, ShouldEqual, Ended)
			So(s.Position, ShouldEqual, 60)
			So(h.player.get().playing, ShouldBeFalse)
			So(h.completions(), ShouldEqual, 1)
			So(h.store.count(), ShouldEqual, 1)
			So(h.observer.count(&h.observer.completed), ShouldEqual, 1)

			ev := (*h.events)[0]
			So(ev, ShouldResemble, completion.Event{SourceID: "dQw4w9WgXcQ", StartSeconds: 120, EndSeconds: 180})

			Convey("Further ticks at the end do not complete again", func() {
				h.tickNow()
				h.tickNow()
				So(h.completions(), ShouldEqual, 1)
				So(c.Snapshot().Position, ShouldEqual, 60)
			})

			Convey("Seeking back re-arms completion", func() {
				So(c.SeekRelative(10), ShouldBeNil)
				h.tickNow()
				So(c.Snapshot().Phase, ShouldEqual, Paused)
				So(c.Snapshot().Position, ShouldEqual, 10)

				h.at(179.9)
				h.tickNow()
				So(h.completions(), ShouldEqual, 2)
			})

			Convey("Play restarts from the window start", func() {
				So(c.TogglePlayPause(), ShouldBeNil)
				So(h.player.lastSeek(), ShouldEqual, 120)
				So(c.Snapshot().Position, ShouldEqual, 0)
				So(c.Snapshot().Playing, ShouldBeTrue)

				h.tickNow()
				So(c.Snapshot().Phase, ShouldEqual, Playing)
				So(h.completions(), ShouldEqual, 1)
			})
		})

		Convey("Drifting before the start is corrected", func() {
			h.at(100)
			h.tickNow()

			So(h.player.lastSeek(), ShouldEqual, 120)
			So(c.Snapshot().Position, ShouldEqual, 0)
			So(h.observer.count(&h.observer.corrective), ShouldEqual, 1)
		})

		Convey("Small drift inside the lower guard is tolerated", func() {
			seeks := len(h.player.get().seeks)
			h.at(119.7)
			h.tickNow()
			So(len(h.player.get().seeks), ShouldEqual, seeks)
		})

		Convey("A failed sample is skipped", func() {
			h.at(150)
			h.tickNow()
			h.player.set(func(f *fakePlayer) {
				f.now = 179.9
				f.nowErr = errors.New("socket closed")
			})
			h.tickNow()

			So(c.Snapshot().Position, ShouldEqual, 30)
			So(h.completions(), ShouldEqual, 0)
			So(h.observer.count(&h.observer.failed), ShouldEqual, 1)
		})

		Convey("A panicking sample is swallowed", func() {
			h.player.set(func(f *fakePlayer) { f.panics = true })
			So(func() { h.tickNow() }, ShouldNotPanic)
			So(h.observer.count(&h.observer.failed), ShouldEqual, 1)

			Convey("And the next tick works", func() {
				h.player.set(func(f *fakePlayer) { f.panics = false; f.now = 140 })
				h.tickNow()
				So(c.Snapshot().Position, ShouldEqual, 20)
			})
		})

		Convey("A tick from before teardown does nothing", func() {
			h.controller.mu.Lock()
			gen := h.controller.gen
			h.controller.mu.Unlock()

			So(c.Close(), ShouldBeNil)
			h.at(179.9)
			c.tick(gen)
			So(h.completions(), ShouldEqual, 0)
		})
	})
}

func TestMonitorTicker(t *testing.T) {
	Convey("Given a controller with a fast monitor", t, func() {
		h := newHarness(WithPollInterval(5 * time.Millisecond))

		done := make(chan completion.Event, 4)
		h.bus.SubscribeKey(h.window.Key(), func(e completion.Event) {
			done <- e
		})

		So(h.controller.Start(context.Background()), ShouldBeNil)
		h.api.emit().OnReady()

		Convey("It completes on its own when the end is reached", func() {
			h.at(179.95)

			select {
			case e := <-done:
				So(e.Key(), ShouldEqual, h.window.Key())
			case <-time.After(2 * time.Second):
				So("no completion", ShouldBeEmpty)
			}
			So(h.controller.Close(), ShouldBeNil)
		})

		Convey("It stops sampling after Close", func() {
			So(h.controller.Close(), ShouldBeNil)
			// a tick already in flight may still finish
			time.Sleep(20 * time.Millisecond)
			before := h.player.get().samples
			time.Sleep(50 * time.Millisecond)
			So(h.player.get().samples, ShouldEqual, before)
		})
	})
}
