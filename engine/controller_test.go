package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/babua-dev/clipper/player"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStart(t *testing.T) {
	Convey("Given an idle controller", t, func() {
		h := newHarness()
		c := h.controller

		So(c.Snapshot().Phase, ShouldEqual, Idle)
		So(c.Snapshot().Active, ShouldBeFalse)

		Convey("Commands before start report it", func() {
			So(errors.Is(c.SeekRelative(10), ErrNotStarted), ShouldBeTrue)
			So(errors.Is(c.TogglePlayPause(), ErrNotStarted), ShouldBeTrue)
		})

		Convey("Volume before start is kept and applied on ready", func() {
			So(c.ChangeVolume(30), ShouldBeNil)
			h.start()
			So(h.player.get().volume, ShouldEqual, 30)
		})

		Convey("When it is started", func() {
			So(c.Start(context.Background()), ShouldBeNil)

			Convey("It constructs a player at the window start", func() {
				So(c.Snapshot().Phase, ShouldEqual, Acquiring)
				So(c.Snapshot().Active, ShouldBeTrue)
				So(h.api.config.VideoID, ShouldEqual, "dQw4w9WgXcQ")
				So(h.api.config.StartTime, ShouldEqual, 120)
				So(h.api.config.Autoplay, ShouldBeTrue)
				So(h.api.config.NativeControlsDisabled, ShouldBeTrue)
				So(h.api.config.RelatedDisabled, ShouldBeTrue)
				So(h.observer.count(&h.observer.constructed), ShouldEqual, 1)
			})

			Convey("Starting again does nothing", func() {
				So(c.Start(context.Background()), ShouldBeNil)
				So(h.api.built, ShouldEqual, 1)
			})

			Convey("And the player becomes ready", func() {
				h.api.emit().OnReady()
				p := h.player.get()

				Convey("It seeks to start, applies settings and plays", func() {
					So(p.seeks, ShouldResemble, []float64{120})
					So(p.volume, ShouldEqual, 100)
					So(p.rate, ShouldEqual, 1)
					So(p.playing, ShouldBeTrue)

					s := c.Snapshot()
					So(s.Phase, ShouldEqual, Playing)
					So(s.Ready, ShouldBeTrue)
					So(s.Playing, ShouldBeTrue)
					So(s.Position, ShouldEqual, 0)
				})
			})
		})
	})
}

func TestStartFailures(t *testing.T) {
	Convey("Given a loader that fails", t, func() {
		h := newHarness()
		c := New(h.window, Deps{
			Loader:   fakeLoader{err: errors.New("no mpv")},
			Observer: h.observer,
		})

		err := c.Start(context.Background())

		Convey("Start fails with an api load error", func() {
			So(errors.Is(err, ErrAPILoad), ShouldBeTrue)

			s := c.Snapshot()
			So(s.Phase, ShouldEqual, Failed)
			So(s.Error, ShouldEqual, ErrorMessage)
			So(s.Active, ShouldBeTrue)
			So(h.observer.count(&h.observer.errored), ShouldEqual, 1)
		})

		Convey("The error phase is terminal", func() {
			So(c.Start(context.Background()), ShouldBeNil)
			So(c.Snapshot().Phase, ShouldEqual, Failed)
		})
	})

	Convey("Given no loader", t, func() {
		c := New(mustWindow("abc", 0, 10), Deps{})
		So(errors.Is(c.Start(context.Background()), ErrAPILoad), ShouldBeTrue)
	})

	Convey("Given an api that cannot construct players", t, func() {
		h := newHarness()
		h.api.err = errors.New("spawn failed")

		err := h.controller.Start(context.Background())
		So(errors.Is(err, ErrAPILoad), ShouldBeTrue)
		So(h.controller.Snapshot().Phase, ShouldEqual, Failed)
	})

	Convey("Given a player that reports an error after ready", t, func() {
		h := newHarness()
		h.start()

		h.api.emit().OnError(errors.New("403"))

		s := h.controller.Snapshot()
		So(s.Phase, ShouldEqual, Failed)
		So(s.Error, ShouldEqual, ErrorMessage)
		So(s.Playing, ShouldBeFalse)

		Convey("Later state notifications are ignored", func() {
			h.api.emit().OnStateChange(player.Playing)
			So(h.controller.Snapshot().Phase, ShouldEqual, Failed)
		})
	})
}

func TestStateNotifications(t *testing.T) {
	Convey("Given a playing controller", t, func() {
		h := newHarness()
		h.start()
		events := h.api.emit()
		c := h.controller

		Convey("Paused clears playing", func() {
			events.OnStateChange(player.Paused)
			So(c.Snapshot().Playing, ShouldBeFalse)
			So(c.Snapshot().Phase, ShouldEqual, Paused)

			Convey("And Playing sets it again", func() {
				events.OnStateChange(player.Playing)
				So(c.Snapshot().Playing, ShouldBeTrue)
				So(c.Snapshot().Phase, ShouldEqual, Playing)
			})
		})

		Convey("Ended seeks back to the window start", func() {
			h.at(200)
			events.OnStateChange(player.Ended)
			So(c.Snapshot().Playing, ShouldBeFalse)
			So(h.player.lastSeek(), ShouldEqual, 120)
		})

		Convey("Rate changes are mirrored", func() {
			events.OnRateChange(1.5)
			So(c.Snapshot().Rate, ShouldEqual, 1.5)
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Given a playing controller", t, func() {
		h := newHarness()
		h.start()
		c := h.controller
		events := h.api.emit()

		So(c.Close(), ShouldBeNil)

		Convey("The player is destroyed once", func() {
			So(c.Close(), ShouldBeNil)
			So(h.player.get().destroyed, ShouldEqual, 1)
		})

		Convey("The state is reset", func() {
			s := c.Snapshot()
			So(s.Phase, ShouldEqual, Idle)
			So(s.Active, ShouldBeFalse)
		})

		Convey("Commands and restarts are refused", func() {
			So(errors.Is(c.SeekRelative(5), ErrClosed), ShouldBeTrue)
			So(errors.Is(c.Start(context.Background()), ErrClosed), ShouldBeTrue)
			So(c.HandleKey("k"), ShouldBeFalse)
		})

		Convey("Stale callbacks do nothing", func() {
			events.OnReady()
			events.OnStateChange(player.Playing)
			So(c.Snapshot().Phase, ShouldEqual, Idle)
			So(c.Snapshot().Playing, ShouldBeFalse)
		})
	})
}

func TestRemount(t *testing.T) {
	Convey("Given a controller that played a window", t, func() {
		h := newHarness()
		h.start()
		So(h.controller.ChangeVolume(20), ShouldBeNil)
		h.at(150)
		h.tickNow()
		So(h.controller.Close(), ShouldBeNil)

		Convey("A controller for a new window starts from scratch", func() {
			next := newHarness()
			next.window = mustWindow("other", 10, 40)
			c := New(next.window, Deps{Loader: fakeLoader{api: next.api}}, WithPollInterval(0))

			s := c.Snapshot()
			So(s.Phase, ShouldEqual, Idle)
			So(s.Position, ShouldEqual, 0)
			So(s.Volume, ShouldEqual, 100)
			So(c.Window().StartSeconds, ShouldEqual, 10)
		})
	})
}

func TestNotify(t *testing.T) {
	Convey("Given a controller with a change callback", t, func() {
		var calls int
		h := newHarness(WithNotify(func() { calls++ }))
		h.start()

		Convey("Changes are reported", func() {
			before := calls
			So(h.controller.ToggleMute(), ShouldBeNil)
			So(calls, ShouldBeGreaterThan, before)
		})
	})
}
