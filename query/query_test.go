package query

import (
	"testing"

	"github.com/babua-dev/clipper/filesystem"
	"github.com/babua-dev/clipper/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given remembered questions", t, func() {
		viper.Set(key.CatalogSuggestions, true)
		So(cacher.Set(map[string]*queryRecord{}), ShouldBeNil)

		So(Remember("3Sum", 1), ShouldBeNil)
		So(Remember("Container With Most Water", 10), ShouldBeNil)

		Convey("Suggestions are sorted by rank", func() {
			So(SuggestMany(""), ShouldResemble, []string{"container with most water", "3sum"})
			So(Suggest("cont").MustGet(), ShouldEqual, "container with most water")
		})

		Convey("Remembering again raises the rank", func() {
			So(SuggestMany(""), ShouldHaveLength, 2)
			So(Remember("  3SUM ", 20), ShouldBeNil)
			So(Suggest("").MustGet(), ShouldEqual, "3sum")
		})

		Convey("Candidates are ordered by rank, unknown ones last", func() {
			ordered := Order([]string{"Two Sum", "3Sum", "Container With Most Water"})
			So(ordered, ShouldResemble, []string{"Container With Most Water", "3Sum", "Two Sum"})
		})

		Convey("Nothing is suggested when disabled", func() {
			viper.Set(key.CatalogSuggestions, false)
			So(SuggestMany("3"), ShouldBeEmpty)
			So(Order([]string{"b", "a"}), ShouldResemble, []string{"b", "a"})
		})

		Convey("Blank questions are ignored", func() {
			So(Remember("   ", 5), ShouldBeNil)
			So(SuggestMany(""), ShouldHaveLength, 2)
		})
	})
}
