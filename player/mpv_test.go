package player

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildArgs(t *testing.T) {
	Convey("buildArgs", t, func() {
		cfg := Config{
			VideoID:                "abc",
			StartTime:              120,
			Autoplay:               true,
			NativeControlsDisabled: true,
			RelatedDisabled:        true,
			Origin:                 "https://example.com",
		}
		args := buildArgs("/tmp/clipper-1.sock", "https://www.youtube.com/watch?v=abc", cfg)

		Convey("Should pass the socket and start position", func() {
			So(args, ShouldContain, "--input-ipc-server=/tmp/clipper-1.sock")
			So(args, ShouldContain, "--start=120")
			So(args, ShouldContain, "--pause=no")
		})

		Convey("Should disable native controls and related content", func() {
			So(args, ShouldContain, "--osc=no")
			So(args, ShouldContain, "--input-default-bindings=no")
			So(args, ShouldContain, "--ytdl-raw-options=no-playlist=")
			So(args, ShouldContain, "--referrer=https://example.com")
		})

		Convey("Should end with the media target", func() {
			So(args[len(args)-1], ShouldEqual, "https://www.youtube.com/watch?v=abc")
		})

		Convey("Should start paused without autoplay", func() {
			cfg.Autoplay = false
			cfg.NativeControlsDisabled = false
			args := buildArgs("s", "t", cfg)
			So(args, ShouldContain, "--pause=yes")
			So(args, ShouldNotContain, "--osc=no")
		})
	})
}

func TestSourceURL(t *testing.T) {
	Convey("sourceURL", t, func() {
		Convey("Should expand a bare id", func() {
			u, err := sourceURL("dQw4w9WgXcQ")
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
		})

		Convey("Should pass http URLs through", func() {
			u, err := sourceURL("https://example.com/clip.mp4")
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "https://example.com/clip.mp4")
		})

		Convey("Should reject flags, control characters and other schemes", func() {
			for _, bad := range []string{"", "--script=x", "a\nb", "file:///etc/passwd"} {
				_, err := sourceURL(bad)
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestOnEvent(t *testing.T) {
	Convey("Given an mpv player with recording callbacks", t, func() {
		var (
			states []State
			rates  []float64
			errs   []error
			ready  int
		)
		m := &MPV{events: Events{
			OnReady:       func() { ready++ },
			OnStateChange: func(s State) { states = append(states, s) },
			OnRateChange:  func(r float64) { rates = append(rates, r) },
			OnError:       func(err error) { errs = append(errs, err) },
		}}

		Convey("Property changes should map onto states", func() {
			m.onEvent("pause", false)
			m.onEvent("pause", true)
			m.onEvent("paused-for-cache", true)
			m.onEvent("paused-for-cache", false)
			m.onEvent("eof-reached", true)
			So(states, ShouldResemble, []State{Playing, Paused, Buffering, Ended})
		})

		Convey("Ready should fire once", func() {
			m.onEvent("file-loaded", "")
			m.onEvent("playback-restart", "")
			So(ready, ShouldEqual, 1)
		})

		Convey("Speed changes and load errors should be forwarded", func() {
			m.onEvent("speed", 1.5)
			m.onEvent("end-file", "eof")
			m.onEvent("end-file", "error")
			So(rates, ShouldResemble, []float64{1.5})
			So(errs, ShouldHaveLength, 1)
		})
	})
}

func TestRoundTrip(t *testing.T) {
	Convey("roundTrip", t, func() {
		client, server := net.Pipe()
		defer client.Close()
		defer server.Close()

		go func() {
			line, err := bufio.NewReader(server).ReadBytes('\n')
			if err != nil {
				return
			}
			var cmd ipcCommand
			_ = json.Unmarshal(line, &cmd)

			// an unrelated broadcast event arrives before the reply
			_, _ = server.Write([]byte(`{"event":"playback-restart"}` + "\n"))
			reply, _ := json.Marshal(map[string]any{"data": 42.5, "error": "success", "request_id": cmd.RequestID})
			_, _ = server.Write(append(reply, '\n'))
		}()

		data, err := roundTrip(client, []any{"get_property", "time-pos"})
		So(err, ShouldBeNil)
		So(data, ShouldEqual, 42.5)
	})

	Convey("roundTrip should surface mpv errors", t, func() {
		client, server := net.Pipe()
		defer client.Close()
		defer server.Close()

		go func() {
			line, err := bufio.NewReader(server).ReadBytes('\n')
			if err != nil {
				return
			}
			var cmd ipcCommand
			_ = json.Unmarshal(line, &cmd)
			reply, _ := json.Marshal(map[string]any{"error": "property unavailable", "request_id": cmd.RequestID})
			_, _ = server.Write(append(reply, '\n'))
		}()

		_, err := roundTrip(client, []any{"get_property", "time-pos"})
		So(err, ShouldNotBeNil)
		_, ok := err.(*mpvError)
		So(ok, ShouldBeTrue)
	})
}

func TestProcessEvent(t *testing.T) {
	Convey("processEvent", t, func() {
		var names []string
		el := NewEventListener("unused", func(name string, _ any) {
			names = append(names, name)
		})

		el.processEvent([]byte(`{"event":"property-change","id":1,"name":"pause","data":true}`))
		el.processEvent([]byte(`{"request_id":3,"error":"success"}`))
		el.processEvent([]byte(`not json`))
		el.processEvent([]byte(`{"event":"end-file","reason":"error"}`))

		So(names, ShouldResemble, []string{"pause", "end-file"})
	})
}

func TestState(t *testing.T) {
	Convey("State names", t, func() {
		So(Playing.String(), ShouldEqual, "playing")
		So(Ended.String(), ShouldEqual, "ended")
		So(State(99).String(), ShouldEqual, "unknown")
	})
}
