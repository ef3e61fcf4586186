package engine

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHandleKey(t *testing.T) {
	Convey("Given an idle controller", t, func() {
		h := newHarness()

		Convey("Keys are ignored", func() {
			So(h.controller.HandleKey("k"), ShouldBeFalse)
		})
	})

	Convey("Given a playing clip", t, func() {
		h := newHarness()
		h.start()
		c := h.controller

		Convey("k and space toggle playback", func() {
			So(c.HandleKey("k"), ShouldBeTrue)
			So(c.Snapshot().Playing, ShouldBeFalse)
			So(c.HandleKey(" "), ShouldBeTrue)
			So(c.Snapshot().Playing, ShouldBeTrue)
		})

		Convey("Arrows and j/l jump", func() {
			h.at(150)
			So(c.HandleKey("left"), ShouldBeTrue)
			So(h.player.lastSeek(), ShouldEqual, 145)
			So(c.HandleKey("l"), ShouldBeTrue)
			So(h.player.lastSeek(), ShouldEqual, 155)
			So(c.HandleKey("j"), ShouldBeTrue)
			So(h.player.lastSeek(), ShouldEqual, 145)
			So(c.HandleKey("right"), ShouldBeTrue)
			So(h.player.lastSeek(), ShouldEqual, 150)
		})

		Convey("Up and down change the volume", func() {
			So(c.HandleKey("down"), ShouldBeTrue)
			So(c.Snapshot().Volume, ShouldEqual, 95)
			So(c.HandleKey("up"), ShouldBeTrue)
			So(c.Snapshot().Volume, ShouldEqual, 100)
		})

		Convey("m mutes", func() {
			So(c.HandleKey("m"), ShouldBeTrue)
			So(c.Snapshot().Muted, ShouldBeTrue)
		})

		Convey("0 restarts", func() {
			h.at(170)
			So(c.HandleKey("0"), ShouldBeTrue)
			So(h.player.lastSeek(), ShouldEqual, 120)
			So(c.Snapshot().Position, ShouldEqual, 0)
		})

		Convey("f toggles fullscreen", func() {
			So(c.HandleKey("f"), ShouldBeTrue)
			So(c.Snapshot().Fullscreen, ShouldBeTrue)
		})

		Convey("While playing", func() {
			Convey("< is not handled", func() {
				So(c.HandleKey("<"), ShouldBeFalse)
			})

			Convey("> speeds up", func() {
				So(c.HandleKey(">"), ShouldBeTrue)
				So(c.Snapshot().Rate, ShouldEqual, 1.25)
			})
		})

		Convey("While paused, < and > step by a frame", func() {
			So(c.HandleKey("k"), ShouldBeTrue)
			h.at(150)

			So(c.HandleKey(">"), ShouldBeTrue)
			So(h.player.lastSeek(), ShouldAlmostEqual, 150+FrameStep, 1e-9)
			So(c.HandleKey("<"), ShouldBeTrue)
			So(h.player.lastSeek(), ShouldAlmostEqual, 150, 1e-9)
			So(c.Snapshot().Rate, ShouldEqual, 1)
		})

		Convey("s opens the menu and esc closes it", func() {
			So(c.HandleKey("esc"), ShouldBeFalse)
			So(c.HandleKey("s"), ShouldBeTrue)
			So(c.Snapshot().SettingsOpen, ShouldBeTrue)
			So(c.HandleKey("esc"), ShouldBeTrue)
			So(c.Snapshot().SettingsOpen, ShouldBeFalse)
		})

		Convey("Unbound keys are not handled", func() {
			So(c.HandleKey("x"), ShouldBeFalse)
		})

		Convey("Keys are ignored while typing", func() {
			c.SetInputFocused(true)
			So(c.HandleKey("k"), ShouldBeFalse)
			So(c.Snapshot().Playing, ShouldBeTrue)

			c.SetInputFocused(false)
			So(c.HandleKey("k"), ShouldBeTrue)
		})
	})
}

func TestProgress(t *testing.T) {
	Convey("Given a 60 second clip on a 60 cell bar", t, func() {
		h := newHarness()
		h.start()
		c := h.controller
		bar := c.Progress(60)

		Convey("Click seeks to the cell", func() {
			So(bar.Click(30), ShouldBeNil)
			So(h.player.lastSeek(), ShouldEqual, 150)
			So(c.Snapshot().Position, ShouldEqual, 30)
		})

		Convey("Clicks outside the bar are clamped", func() {
			So(bar.Click(-5), ShouldBeNil)
			So(h.player.lastSeek(), ShouldEqual, 120)
			So(bar.Click(500), ShouldBeNil)
			So(h.player.lastSeek(), ShouldEqual, 179)
		})

		Convey("Dragging moves the display without seeking", func() {
			seeks := len(h.player.get().seeks)

			bar.Press(30)
			So(c.Snapshot().Dragging, ShouldBeTrue)
			So(c.Snapshot().Position, ShouldEqual, 30)

			bar.Drag(45)
			So(c.Snapshot().Position, ShouldEqual, 45)
			So(len(h.player.get().seeks), ShouldEqual, seeks)

			Convey("Monitor ticks leave the dragged position alone", func() {
				h.at(125)
				h.tickNow()
				So(c.Snapshot().Position, ShouldEqual, 45)
			})

			Convey("Release commits the seek", func() {
				So(bar.Release(45), ShouldBeNil)
				So(c.Snapshot().Dragging, ShouldBeFalse)
				So(h.player.lastSeek(), ShouldEqual, 165)
			})
		})

		Convey("Drag and release without a press do nothing", func() {
			seeks := len(h.player.get().seeks)
			bar.Drag(10)
			So(bar.Release(10), ShouldBeNil)
			So(len(h.player.get().seeks), ShouldEqual, seeks)
		})
	})

	Convey("A zero width bar maps everything to the start", t, func() {
		h := newHarness()
		h.start()
		So(h.controller.Progress(0).Click(10), ShouldBeNil)
		So(h.player.lastSeek(), ShouldEqual, 120)
	})
}

func TestControlsVisibility(t *testing.T) {
	const delay = 20 * time.Millisecond

	Convey("Given a playing clip with a short hide delay", t, func() {
		h := newHarness(WithHideDelay(delay))
		h.start()
		c := h.controller

		Convey("Outside fullscreen the controls stay visible", func() {
			c.ShowControls()
			time.Sleep(5 * delay)
			So(c.Snapshot().ControlsVisible, ShouldBeTrue)
		})

		Convey("In fullscreen", func() {
			So(c.ToggleFullscreen(), ShouldBeNil)

			Convey("The controls hide after the delay", func() {
				So(c.Snapshot().ControlsVisible, ShouldBeTrue)
				time.Sleep(5 * delay)
				So(c.Snapshot().ControlsVisible, ShouldBeFalse)

				Convey("And any key shows them again", func() {
					c.HandleKey("x")
					So(c.Snapshot().ControlsVisible, ShouldBeTrue)
				})
			})

			Convey("An open menu keeps them visible", func() {
				c.ToggleSettings()
				time.Sleep(5 * delay)
				So(c.Snapshot().ControlsVisible, ShouldBeTrue)
			})

			Convey("Pausing keeps them visible", func() {
				So(c.TogglePlayPause(), ShouldBeNil)
				c.ShowControls()
				time.Sleep(5 * delay)
				So(c.Snapshot().ControlsVisible, ShouldBeTrue)
			})

			Convey("Leaving the player hides them at once", func() {
				c.PointerLeave()
				So(c.Snapshot().ControlsVisible, ShouldBeFalse)
			})

			Convey("Close cancels a pending hide", func() {
				So(c.Close(), ShouldBeNil)
				time.Sleep(5 * delay)
				So(c.Snapshot().ControlsVisible, ShouldBeTrue)
			})
		})
	})
}
