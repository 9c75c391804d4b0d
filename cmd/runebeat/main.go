package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"golang.org/x/term"

	"github.com/lixenwraith/runebeat/audio"
	"github.com/lixenwraith/runebeat/config"
	"github.com/lixenwraith/runebeat/constants"
	"github.com/lixenwraith/runebeat/core"
	"github.com/lixenwraith/runebeat/engine"
	"github.com/lixenwraith/runebeat/logger"
	"github.com/lixenwraith/runebeat/metrics"
	"github.com/lixenwraith/runebeat/render"
)

var errNotTerminal = errors.New("stdout is not a terminal")

type options struct {
	configPath string
	silent     bool
	playlist   []string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("runebeat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: runebeat [flags] track.mp3 [track.wav ...]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "YAML config file (default $"+config.EnvPrefix+"CONFIG)")
	fs.BoolVar(&opts.silent, "silent", false, "analyze without opening the audio device")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	opts.playlist = fs.Args()
	return opts, nil
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintf(os.Stderr, "runebeat: %v\n", errNotTerminal)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "runebeat: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(ctx, opts.configPath)
	if err != nil {
		return err
	}
	if opts.silent {
		cfg.Audio.Enabled = false
	}

	if err := logger.Init(cfg.Log.File); err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()
	if err := logger.SetLevelString(cfg.Log.Level); err != nil {
		return err
	}
	log := logger.Named("main")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := metrics.NewManager(metrics.WithRegistry(metrics.NewRuntimeRegistry()))
	if cfg.Metrics.Addr != "" {
		core.Go(func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Error(ctx, "metrics listener stopped", logger.Error(err))
			}
		})
	}

	rate := beep.SampleRate(cfg.Audio.SampleRate)
	out, closeOut := openOutput(ctx, cfg, rate, log)
	defer closeOut()

	detector := cfg.BeatDetector()
	tap := audio.NewTap(max(cfg.Audio.AnalysisWindow, constants.DefaultAnalysisWindow) * 2)
	analyzer := audio.NewAnalyzer(tap, detector.Metric, cfg.Audio.AnalysisWindow)

	sounds := audio.NewSoundManager(out, cfg.Audio.MasterVolume, cfg.Audio.Effects)
	sounds.Initialize()
	defer sounds.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.SetCrashScreen(screen)
	defer func() {
		core.SetCrashScreen(nil)
		screen.Fini()
	}()
	screen.SetStyle(tcell.StyleDefault.Background(render.RgbBackground))
	screen.HideCursor()

	sessionOpts := engine.OptionsFromConfig(cfg)
	w, h := screen.Size()
	sessionOpts.Width = float64(w) * constants.CellWidth
	sessionOpts.Height = float64(h) * constants.CellHeight
	sessionOpts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	sessionOpts.Source = analyzer
	sessionOpts.Sounds = sounds
	sessionOpts.Metrics = m
	session := engine.NewSession(sessionOpts)
	defer session.Shutdown()

	log.Info(ctx, "session started",
		logger.String("session", session.ID()),
		logger.String("metric", detector.Metric.String()),
		logger.Float64("threshold", detector.Threshold),
		logger.Int("tracks", len(opts.playlist)))

	game := engine.NewGame(engine.GameOptions{
		Screen:   screen,
		Session:  session,
		Renderer: render.NewTerminalRenderer(screen),
		Loader:   audio.NewLoader(rate),
		Output:   out,
		Tap:      tap,
		Sounds:   sounds,
		Volume:   cfg.Audio.MasterVolume,
		Playlist: opts.playlist,
		Metrics:  m,
		Logger:   logger.Named("game"),
	})
	return game.Run(ctx)
}

// openOutput prefers the speaker, then an external PCM backend, then a
// silent real-time sink
func openOutput(ctx context.Context, cfg *config.Config, rate beep.SampleRate, log logger.Logger) (audio.Output, func()) {
	if cfg.Audio.Enabled {
		out, err := audio.NewSpeakerOutput(rate)
		if err == nil {
			return out, out.Close
		}
		log.Warn(ctx, "audio device unavailable, trying external backend", logger.Error(err))

		pipe, err := audio.OpenPipeOutput(rate)
		if err == nil {
			log.Info(ctx, "piping audio to backend", logger.String("backend", pipe.Backend().Name))
			core.Go(func() { pipe.Run(ctx) })
			core.Go(func() {
				select {
				case err := <-pipe.Errors():
					log.Warn(ctx, "audio backend stopped, continuing silent", logger.Error(err))
				case <-ctx.Done():
				}
			})
			return pipe, pipe.Close
		}
		log.Warn(ctx, "no audio backend, continuing silent", logger.Error(err))
	}
	out := audio.NewSilentOutput(rate)
	core.Go(func() { out.Run(ctx) })
	return out, func() {}
}
