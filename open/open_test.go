package open

import (
	"runtime"
	"testing"

	"github.com/babua-dev/clipper/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given the current platform", t, func() {
		cmd, ok := command("https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=120")

		switch runtime.GOOS {
		case constant.Linux, constant.Darwin, constant.Windows, constant.Android:
			Convey("A handler command is built for the input", func() {
				So(ok, ShouldBeTrue)
				So(cmd.Args[len(cmd.Args)-1], ShouldEqual, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=120")
			})
		default:
			Convey("The platform is unsupported", func() {
				So(ok, ShouldBeFalse)
			})
		}
	})
}
