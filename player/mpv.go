package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/babua-dev/clipper/constant"
	"github.com/babua-dev/clipper/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// MPVAPI constructs mpv-backed players from a resolved mpv binary.
type MPVAPI struct {
	binary string
}

// LoadMPV locates the mpv executable. It is the load step behind Default.
func LoadMPV() (*MPVAPI, error) {
	path, err := exec.LookPath("mpv")
	if err != nil {
		return nil, fmt.Errorf("mpv not found in PATH: %w", err)
	}
	return &MPVAPI{binary: path}, nil
}

// New launches mpv for cfg in the background and returns immediately.
// Readiness and failures are reported through events.
func (a *MPVAPI) New(cfg Config, events Events) (Player, error) {
	target, err := sourceURL(cfg.VideoID)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, fmt.Errorf("generate socket name: %w", err)
	}

	m := &MPV{
		binary:     a.binary,
		socketPath: filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.App, randomBytes)),
		exited:     make(chan struct{}),
		destroyed:  make(chan struct{}),
		events:     events,
	}

	go m.launch(target, cfg)
	return m, nil
}

// MPV implements Player using mpv's JSON-IPC protocol.
type MPV struct {
	binary     string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the mpv process exits
	destroyed  chan struct{}
	listener   *EventListener
	events     Events
	readyOnce  sync.Once
	destroy    sync.Once
	started    bool
	stateMu    sync.Mutex
	mu         sync.Mutex // serializes IPC round trips
}

func (m *MPV) launch(target string, cfg Config) {
	m.stateMu.Lock()
	select {
	case <-m.destroyed:
		m.stateMu.Unlock()
		return
	default:
	}

	m.cmd = exec.Command(m.binary, buildArgs(m.socketPath, target, cfg)...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		m.stateMu.Unlock()
		m.events.fail(fmt.Errorf("start mpv: %w", err))
		return
	}
	m.started = true
	m.stateMu.Unlock()

	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		m.events.fail(fmt.Errorf("mpv socket not ready: %w", err))
		return
	}

	m.stateMu.Lock()
	select {
	case <-m.destroyed:
		m.stateMu.Unlock()
		return
	default:
	}
	m.listener = NewEventListener(m.socketPath, m.onEvent)
	err := m.listener.Start()
	m.stateMu.Unlock()
	if err != nil {
		m.events.fail(err)
		return
	}

	// the file may already be loaded by the time the listener is attached
	if _, err := m.CurrentTime(); err == nil {
		m.readyOnce.Do(m.events.ready)
	}
}

// buildArgs assembles the mpv command line. The user's mpv.conf is respected;
// only what the clip needs is forced.
func buildArgs(socket, target string, cfg Config) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", socket),
		"--force-window=yes",
		"--keep-open=yes",
		fmt.Sprintf("--start=%d", cfg.StartTime),
		fmt.Sprintf("--pause=%s", yesNo(!cfg.Autoplay)),
		fmt.Sprintf("--title=%s", sanitizeTitle(cfg.VideoID)),
	}

	if cfg.NativeControlsDisabled {
		args = append(args, "--osc=no", "--input-default-bindings=no", "--input-vo-keyboard=no")
	}

	if cfg.RelatedDisabled {
		// ytdl playlists would pull in related videos
		args = append(args, "--ytdl-raw-options=no-playlist=")
	}

	if cfg.Origin != "" {
		args = append(args, fmt.Sprintf("--referrer=%s", cfg.Origin))
	}

	return append(args, target)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (m *MPV) onEvent(name string, data any) {
	switch name {
	case "file-loaded", "playback-restart":
		m.readyOnce.Do(m.events.ready)
	case "pause":
		if paused, ok := data.(bool); ok {
			if paused {
				m.events.state(Paused)
			} else {
				m.events.state(Playing)
			}
		}
	case "paused-for-cache":
		if buffering, ok := data.(bool); ok && buffering {
			m.events.state(Buffering)
		}
	case "eof-reached":
		if eof, ok := data.(bool); ok && eof {
			m.events.state(Ended)
		}
	case "speed":
		if rate, ok := data.(float64); ok {
			m.events.rate(rate)
		}
	case "end-file":
		if reason, _ := data.(string); reason == "error" {
			m.events.fail(errors.New("mpv failed to load the video"))
		}
	}
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		case <-m.destroyed:
			return fmt.Errorf("player destroyed")
		case <-time.After(socketWaitDelay):
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Play resumes playback.
func (m *MPV) Play() error {
	return m.set("pause", false)
}

// Pause suspends playback.
func (m *MPV) Pause() error {
	return m.set("pause", true)
}

// SeekTo moves playback to an absolute position. mpv always seeks ahead of the
// buffer, so allowSeekAhead only selects between exact and keyframe seeks.
func (m *MPV) SeekTo(seconds float64, allowSeekAhead bool) error {
	flags := "absolute+exact"
	if !allowSeekAhead {
		flags = "absolute+keyframes"
	}
	_, err := m.sendCommand("seek", seconds, flags)
	return err
}

// SetVolume sets the output volume, 0 to 100.
func (m *MPV) SetVolume(volume int) error {
	return m.set("volume", volume)
}

func (m *MPV) Mute() error   { return m.set("mute", true) }
func (m *MPV) Unmute() error { return m.set("mute", false) }

// SetPlaybackRate sets the speed multiplier.
func (m *MPV) SetPlaybackRate(rate float64) error {
	return m.set("speed", rate)
}

// CurrentTime returns the current playback position in seconds.
func (m *MPV) CurrentTime() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// BufferedFraction reports how much of the media is buffered, from the
// position plus the demuxer cache ahead of it, over the total duration.
func (m *MPV) BufferedFraction() (float64, error) {
	duration, err := m.getFloatProperty("duration")
	if err != nil {
		return 0, err
	}
	if duration <= 0 {
		return 0, fmt.Errorf("property duration: not positive")
	}

	pos, err := m.CurrentTime()
	if err != nil {
		return 0, err
	}

	ahead, err := m.getFloatProperty("demuxer-cache-duration")
	if err != nil {
		ahead = 0
	}

	fraction := (pos + ahead) / duration
	if fraction > 1 {
		fraction = 1
	}
	return fraction, nil
}

// Destroy quits mpv, force-killing it when the graceful quit times out,
// and removes the socket. Safe to call more than once.
func (m *MPV) Destroy() error {
	m.destroy.Do(func() {
		m.stateMu.Lock()
		close(m.destroyed)
		started, listener := m.started, m.listener
		m.stateMu.Unlock()

		if listener != nil {
			listener.Stop()
		}

		if !started {
			return
		}

		_, _ = m.sendCommand("quit")

		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			_ = killProcess(m.cmd)
		}

		_ = os.Remove(m.socketPath)
	})
	return nil
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) set(property string, value any) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	switch v := data.(type) {
	case float64:
		return v, nil
	case nil:
		return 0, fmt.Errorf("property %s: nil response", name)
	default:
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}
}

// sourceURL turns a video id into something mpv (through ytdl) can open.
// Full http(s) URLs and local paths pass through after validation.
func sourceURL(videoID string) (string, error) {
	id := strings.TrimSpace(videoID)
	if id == "" {
		return "", fmt.Errorf("empty video id")
	}

	if strings.ContainsAny(id, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in video id")
	}

	if strings.HasPrefix(id, "-") {
		return "", fmt.Errorf("video id must not start with '-' (looks like a flag)")
	}

	if strings.Contains(id, "://") {
		u, err := url.Parse(id)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return id, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	if strings.ContainsAny(id, `/\`) {
		return filepath.Clean(id), nil
	}

	return "https://www.youtube.com/watch?v=" + url.QueryEscape(id), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}

// compile-time check
var _ Player = (*MPV)(nil)
