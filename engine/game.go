package engine

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/runebeat/audio"
	"github.com/lixenwraith/runebeat/constants"
	"github.com/lixenwraith/runebeat/core"
	"github.com/lixenwraith/runebeat/logger"
	"github.com/lixenwraith/runebeat/metrics"
)

// Renderer draws one frame snapshot
type Renderer interface {
	Render(f *Frame)
}

// GameOptions wires the loop to its collaborators
type GameOptions struct {
	Screen   tcell.Screen
	Session  *Session
	Renderer Renderer
	Loader   *audio.Loader
	Output   audio.Output
	Tap      *audio.Tap
	Sounds   *audio.SoundManager
	Clock    Clock
	Volume   float64
	Playlist []string
	Metrics  *metrics.Manager
	Logger   logger.Logger
}

// Game runs the single-threaded frame loop. Only the loop goroutine
// touches the session.
type Game struct {
	screen   tcell.Screen
	session  *Session
	renderer Renderer
	loader   *audio.Loader
	out      audio.Output
	tap      *audio.Tap
	sounds   *audio.SoundManager
	clock    Clock
	volume   float64
	metrics  *metrics.Manager
	log      logger.Logger

	playlist []string
	index    int

	loadCh <-chan audio.LoadResult
	endCh  chan struct{}
	frame  Frame
}

// NewGame creates the loop; nothing runs until Run
func NewGame(opts GameOptions) *Game {
	if opts.Clock == nil {
		opts.Clock = NewMonotonicTimeProvider()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Named("game")
	}
	return &Game{
		screen:   opts.Screen,
		session:  opts.Session,
		renderer: opts.Renderer,
		loader:   opts.Loader,
		out:      opts.Output,
		tap:      opts.Tap,
		sounds:   opts.Sounds,
		clock:    opts.Clock,
		volume:   opts.Volume,
		metrics:  opts.Metrics,
		log:      opts.Logger,
		playlist: opts.Playlist,
		index:    -1,
		endCh:    make(chan struct{}, 1),
	}
}

// Session returns the game session
func (g *Game) Session() *Session { return g.session }

// Run loops until ctx is done or the player quits
func (g *Game) Run(ctx context.Context) error {
	ticker := time.NewTicker(constants.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, constants.EventChannelSize)
	core.Go(func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	g.resize()
	if len(g.playlist) > 0 {
		g.nextTrack(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			if !g.handleEvent(ctx, ev) {
				return nil
			}

		case res, ok := <-g.loadCh:
			g.loadCh = nil
			if ok {
				g.finishLoad(res)
			}

		case <-g.endCh:
			g.session.TrackEnded()

		case <-ticker.C:
			g.step()
		}
	}
}

// handleEvent applies one terminal event, returning false to quit
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			g.handleRune(ctx, ev.Rune())
		}

	case *tcell.EventResize:
		g.screen.Sync()
		g.resize()
	}
	return true
}

func (g *Game) handleRune(ctx context.Context, r rune) {
	switch r {
	case ' ':
		g.session.TogglePlay()
	case 'r', 'R':
		g.session.Reset()
	case 'n', 'N':
		g.nextTrack(ctx)
	default:
		if res, ok := g.session.KeyPress(r, g.clock.Now()); ok {
			g.log.Debug(ctx, "hit",
				logger.String("key", res.Key.String()),
				logger.Bool("on_beat", res.OnBeat),
				logger.Float64("accuracy", res.Accuracy))
		}
	}
}

func (g *Game) resize() {
	w, h := g.screen.Size()
	g.session.Resize(float64(w)*constants.CellWidth, float64(h)*constants.CellHeight)
}

// step advances and draws one frame
func (g *Game) step() {
	start := time.Now()
	now := g.clock.Now()

	g.session.Tick(now)
	g.session.Snapshot(now, &g.frame)
	if g.renderer != nil {
		g.renderer.Render(&g.frame)
	}

	bpm, _ := g.session.BPM()
	g.metrics.ObserveFrame(g.session.Energy(), bpm, len(g.frame.Particles), len(g.frame.Rings), time.Since(start))
}

// nextTrack loads the next playlist entry, wrapping around
func (g *Game) nextTrack(ctx context.Context) {
	if len(g.playlist) == 0 {
		g.session.SetStatus(StatusNoTrack)
		return
	}
	g.index = (g.index + 1) % len(g.playlist)
	g.load(ctx, g.playlist[g.index])
}

// load checks path up front so a bad path changes nothing but the status
func (g *Game) load(ctx context.Context, path string) {
	if err := audio.CheckTrack(path); err != nil {
		g.session.SetStatus("Error loading audio: " + err.Error())
		g.metrics.RecordLoad(metrics.OutcomeError)
		g.log.Warn(ctx, "track rejected", logger.String("path", path), logger.Error(err))
		return
	}
	g.session.BeginLoad(filepath.Base(path))
	g.loadCh = g.loader.Load(ctx, path)
}

func (g *Game) finishLoad(res audio.LoadResult) {
	if res.Seq != g.loader.Current() || errors.Is(res.Err, audio.ErrLoadCanceled) {
		g.metrics.RecordLoad(metrics.OutcomeCanceled)
		return
	}
	if res.Err != nil {
		g.session.FinishLoad(nil, "", res.Err)
		return
	}

	player := audio.NewPlayer(g.out, res.Track, g.tap, g.volume, g.notifyEnd)
	g.session.FinishLoad(player, res.Track.Name, nil)
	if g.sounds != nil {
		g.sounds.Play(audio.SoundLoaded)
	}
}

// notifyEnd runs on the audio goroutine
func (g *Game) notifyEnd() {
	select {
	case g.endCh <- struct{}{}:
	default:
	}
}
