package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/babua-dev/clipper/clip"
	"github.com/babua-dev/clipper/completion"
	"github.com/babua-dev/clipper/player"
)

// fakePlayer is a scripted player. Tests move its clock by setting now.
type fakePlayer struct {
	mu sync.Mutex

	now        float64
	nowErr     error
	panics     bool
	buffered   float64
	playing    bool
	volume     int
	muted      bool
	rate       float64
	seeks      []float64
	samples    int
	destroyed  int
	commandErr error
}

func (f *fakePlayer) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = true
	return f.commandErr
}

func (f *fakePlayer) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = false
	return f.commandErr
}

func (f *fakePlayer) SeekTo(seconds float64, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = seconds
	f.seeks = append(f.seeks, seconds)
	return f.commandErr
}

func (f *fakePlayer) SetVolume(volume int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = volume
	return f.commandErr
}

func (f *fakePlayer) Mute() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = true
	return f.commandErr
}

func (f *fakePlayer) Unmute() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = false
	return f.commandErr
}

func (f *fakePlayer) SetPlaybackRate(rate float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = rate
	return f.commandErr
}

func (f *fakePlayer) CurrentTime() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samples++
	if f.panics {
		panic("player exploded")
	}
	return f.now, f.nowErr
}

func (f *fakePlayer) BufferedFraction() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buffered, nil
}

func (f *fakePlayer) Destroy() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed++
	return nil
}

func (f *fakePlayer) set(fn func(f *fakePlayer)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

type playerView struct {
	now       float64
	playing   bool
	volume    int
	muted     bool
	rate      float64
	seeks     []float64
	samples   int
	destroyed int
}

func (f *fakePlayer) get() playerView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return playerView{
		now:       f.now,
		playing:   f.playing,
		volume:    f.volume,
		muted:     f.muted,
		rate:      f.rate,
		seeks:     append([]float64(nil), f.seeks...),
		samples:   f.samples,
		destroyed: f.destroyed,
	}
}

func (f *fakePlayer) lastSeek() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.seeks) == 0 {
		return -1
	}
	return f.seeks[len(f.seeks)-1]
}

type fakeAPI struct {
	player *fakePlayer
	err    error

	mu     sync.Mutex
	config player.Config
	events player.Events
	built  int
}

func (a *fakeAPI) New(cfg player.Config, events player.Events) (player.Player, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
	a.config = cfg
	a.events = events
	a.built++
	return a.player, nil
}

func (a *fakeAPI) emit() player.Events {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.events
}

type fakeLoader struct {
	api player.API
	err error
}

func (l fakeLoader) Load(ctx context.Context) (player.API, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.api, ctx.Err()
}

type fakeFullscreen struct {
	mu     sync.Mutex
	on     bool
	failed bool
}

func (f *fakeFullscreen) IsFullscreen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.on
}

func (f *fakeFullscreen) Request() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return errors.New("fullscreen denied")
	}
	f.on = true
	return nil
}

func (f *fakeFullscreen) Exit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.on = false
	return nil
}

type countingObserver struct {
	mu                                                  sync.Mutex
	constructed, completed, corrective, failed, errored int
}

func (o *countingObserver) PlayerConstructed() { o.inc(&o.constructed) }
func (o *countingObserver) Completed(clip.Window) {
	o.inc(&o.completed)
}
func (o *countingObserver) CorrectiveSeek() { o.inc(&o.corrective) }
func (o *countingObserver) SampleFailed()   { o.inc(&o.failed) }
func (o *countingObserver) PlaybackFailed() { o.inc(&o.errored) }

func (o *countingObserver) inc(n *int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	*n++
}

func (o *countingObserver) count(n *int) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return *n
}

type memRecorder struct {
	mu     sync.Mutex
	marked []string
}

func (r *memRecorder) Mark(w clip.Window) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.marked = append(r.marked, w.Key())
	return true
}

func (r *memRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.marked)
}

type harness struct {
	window     clip.Window
	player     *fakePlayer
	api        *fakeAPI
	bus        *completion.Bus
	events     *[]completion.Event
	store      *memRecorder
	observer   *countingObserver
	fullscreen *fakeFullscreen
	controller *Controller
}

func mustWindow(id string, start, end float64) clip.Window {
	w, err := clip.Resolve(id, start, end)
	if err != nil {
		panic(err)
	}
	return w
}

// newHarness builds a controller whose monitor never ticks on its own;
// tests drive it with tickNow.
func newHarness(opts ...Option) *harness {
	h := &harness{
		window:     mustWindow("dQw4w9WgXcQ", 120, 180),
		player:     &fakePlayer{},
		bus:        completion.NewBus(),
		store:      &memRecorder{},
		observer:   &countingObserver{},
		fullscreen: &fakeFullscreen{},
	}
	h.api = &fakeAPI{player: h.player}

	var (
		mu     sync.Mutex
		events []completion.Event
	)
	h.events = &events
	h.bus.Subscribe(func(e completion.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})

	opts = append([]Option{WithPollInterval(time.Hour)}, opts...)
	h.controller = New(h.window, Deps{
		Loader:     fakeLoader{api: h.api},
		Bus:        h.bus,
		Store:      h.store,
		Fullscreen: h.fullscreen,
		Observer:   h.observer,
	}, opts...)
	return h
}

// start activates the controller and delivers the ready notification.
func (h *harness) start() {
	if err := h.controller.Start(context.Background()); err != nil {
		panic(err)
	}
	h.api.emit().OnReady()
}

func (h *harness) at(seconds float64) {
	h.player.set(func(f *fakePlayer) { f.now = seconds })
}

func (h *harness) tickNow() {
	h.controller.mu.Lock()
	gen := h.controller.gen
	h.controller.mu.Unlock()
	h.controller.tick(gen)
}

func (h *harness) completions() int {
	return len(*h.events)
}
