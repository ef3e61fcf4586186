package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/babua-dev/clipper/clip"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given fresh metrics", t, func() {
		m := New()
		w, err := clip.Resolve("dQw4w9WgXcQ", 120, 180)
		So(err, ShouldBeNil)

		Convey("Observer calls increment the counters", func() {
			m.PlayerConstructed()
			m.Completed(w)
			m.Completed(w)
			m.CorrectiveSeek()
			m.SampleFailed()
			m.PlaybackFailed()

			So(testutil.ToFloat64(m.playersConstructed), ShouldEqual, 1)
			So(testutil.ToFloat64(m.completions.WithLabelValues("dQw4w9WgXcQ")), ShouldEqual, 2)
			So(testutil.ToFloat64(m.correctiveSeeks), ShouldEqual, 1)
			So(testutil.ToFloat64(m.sampleFailures), ShouldEqual, 1)
			So(testutil.ToFloat64(m.playbackErrors), ShouldEqual, 1)
		})

		Convey("The router serves the exposition format", func() {
			m.PlayerConstructed()
			server := httptest.NewServer(m.Router())
			defer server.Close()

			resp, err := http.Get(server.URL + "/metrics")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			So(err, ShouldBeNil)

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(string(body), ShouldContainSubstring, "clipper_players_constructed_total 1")
		})

		Convey("The router answers health checks", func() {
			rec := httptest.NewRecorder()
			m.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}
