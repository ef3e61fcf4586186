package util

import (
	"testing"

	"github.com/babua-dev/clipper/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "clip", "clips"), ShouldEqual, "1 clip")
		So(Quantify(2, "clip", "clips"), ShouldEqual, "2 clips")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(5.0, 0, 10), ShouldEqual, 5.0)
		So(Clamp(-1.0, 0, 10), ShouldEqual, 0.0)
		So(Clamp(11.0, 0, 10), ShouldEqual, 10.0)

		Convey("An inverted range resolves to the lower bound", func() {
			So(Clamp(3.0, 0, -1), ShouldEqual, 0.0)
		})
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.WriteFile("/tmp/x/file.json", []byte("{}"), 0o644), ShouldBeNil)

		So(Delete("/tmp/x"), ShouldBeNil)
		exists, _ := fs.Exists("/tmp/x/file.json")
		So(exists, ShouldBeFalse)

		So(Delete("/tmp/missing"), ShouldNotBeNil)
	})
}
