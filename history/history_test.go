package history

import (
	"testing"
	"time"

	"github.com/babua-dev/clipper/clip"
	"github.com/babua-dev/clipper/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		_ = cacher.Set(map[string]*Played{})

		first, err := clip.Resolve("abc123", 30, 95)
		So(err, ShouldBeNil)
		second, err := clip.Resolve("dQw4w9WgXcQ", 120, 180)
		So(err, ShouldBeNil)

		Convey("There is nothing to resume", func() {
			last, err := Last()
			So(err, ShouldBeNil)
			So(last.IsAbsent(), ShouldBeTrue)
		})

		Convey("When saving two plays", func() {
			So(Save(first, "", "Two Pointers", "3Sum"), ShouldBeNil)
			time.Sleep(time.Millisecond)
			So(Save(second, "Intro", "", ""), ShouldBeNil)

			Convey("The latest is resumed", func() {
				last, err := Last()
				So(err, ShouldBeNil)
				So(last.MustGet().Key(), ShouldEqual, "dQw4w9WgXcQ_120_180")
				So(last.MustGet().FromCatalog(), ShouldBeFalse)
			})

			Convey("Replaying moves a clip to the top without duplicating it", func() {
				time.Sleep(time.Millisecond)
				So(Save(first, "", "Two Pointers", "3Sum"), ShouldBeNil)

				played, err := Recent()
				So(err, ShouldBeNil)
				So(played, ShouldHaveLength, 2)
				So(played[0].Key(), ShouldEqual, "abc123_30_95")
				So(played[0].FromCatalog(), ShouldBeTrue)
				So(played[0].String(), ShouldEqual, "3Sum [0:30-1:35]")
			})

			Convey("Removing forgets a play", func() {
				So(Remove(second.Key()), ShouldBeNil)
				played, err := Recent()
				So(err, ShouldBeNil)
				So(played, ShouldHaveLength, 1)
			})
		})

		Convey("Old plays are dropped past the limit", func() {
			for i := 0; i < Limit+5; i++ {
				w, err := clip.Resolve("abc123", float64(i), float64(i+10))
				So(err, ShouldBeNil)
				So(Save(w, "", "", ""), ShouldBeNil)
			}

			played, err := Recent()
			So(err, ShouldBeNil)
			So(played, ShouldHaveLength, Limit)
		})
	})
}
