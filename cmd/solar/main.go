// Command solar opens an orrery scene in a window or a terminal. Number keys
// send the camera to a body.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"

	"github.com/DakotaStorm/solar"
	"github.com/DakotaStorm/solar/ebitenhost"
	"github.com/DakotaStorm/solar/ecs"
	"github.com/DakotaStorm/solar/internal/logging"
	"github.com/DakotaStorm/solar/termhost"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	strategy := flag.String("strategy", "", "camera strategy: reparent or tween")
	tablesPath := flag.String("tables", "", "TOML body table (default: embedded)")
	host := flag.String("host", "ebiten", "rendering host: ebiten or term")
	tourPath := flag.String("tour", "", "JSON tour script to play")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	debug := flag.Bool("debug", false, "log frame timings and hierarchy warnings")
	scaleByDelta := flag.Bool("scale-by-delta", false, "scale motion by measured frame time")
	flag.Parse()

	logger := logging.Configure("solar", logging.ProfileRuntime)
	if *logLevel != "" {
		lvl, err := zerolog.ParseLevel(*logLevel)
		if err != nil {
			fatal(logger, fmt.Errorf("-log-level: %w", err))
		}
		logger = logger.Level(lvl)
	}

	cfg := solar.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = solar.LoadConfig(*configPath); err != nil {
			fatal(logger, err)
		}
		logger.Info().Str("path", *configPath).Msg("loaded config")
	}
	if *strategy != "" {
		s, err := solar.ParseStrategy(*strategy)
		if err != nil {
			fatal(logger, fmt.Errorf("-strategy: %w", err))
		}
		cfg.Strategy = s
	}
	if *tablesPath != "" {
		cfg.Tables = *tablesPath
	}
	cfg.Debug = cfg.Debug || *debug
	cfg.ScaleByDelta = cfg.ScaleByDelta || *scaleByDelta

	tables, err := cfg.OpenTables()
	if err != nil {
		fatal(logger, err)
	}
	scene, err := solar.NewScene(tables, cfg)
	if err != nil {
		fatal(logger, err)
	}
	scene.SetLogger(logger)
	scene.SetDebugMode(cfg.Debug)

	world := donburi.NewWorld()
	ecs.SelectionEventType.Subscribe(world, func(w donburi.World, e solar.SelectionEvent) {
		if e.Accepted {
			logger.Debug().Str("target", e.ID).Str("previous", e.Previous).Msg("selection event")
		}
	})
	scene.SetEventSink(processingSink{EventSink: ecs.NewDonburiSink(world), world: world})

	if *tourPath != "" {
		data, err := os.ReadFile(*tourPath)
		if err != nil {
			fatal(logger, err)
		}
		tour, err := solar.LoadTour(data)
		if err != nil {
			fatal(logger, err)
		}
		scene.SetTour(tour)
	}

	var engine solar.Engine
	switch *host {
	case "ebiten":
		e := ebitenhost.New(ebitenhost.Options{
			Title:  cfg.Window.Title,
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Zoom:   cfg.Window.Zoom,
			Bodies: scene.Registry().IDs(),
			Logger: logger,
		})
		e.OnSelect = scene.OnSelect
		engine = e
	case "term":
		// The terminal owns stdout; keep logs off it.
		scene.SetLogger(zerolog.Nop())
		e := termhost.New(termhost.Options{
			Bodies:    scene.Registry().IDs(),
			FrameRate: cfg.FrameRate,
		})
		e.OnSelect = scene.OnSelect
		engine = e
	default:
		fatal(logger, fmt.Errorf("-host: unknown host %q", *host))
	}

	loop := solar.NewRenderLoop(scene, engine, solar.LoopOptions{})
	scene.Bind(engine)
	loop.Gate().Open()

	logger.Info().
		Stringer("strategy", cfg.Strategy).
		Str("host", *host).
		Int("bodies", scene.Registry().Len()).
		Msg("solar starting")
	if err := loop.RunForever(); err != nil {
		fatal(logger, err)
	}
}

// processingSink publishes into the world and delivers immediately; the
// command has no ECS systems loop of its own.
type processingSink struct {
	solar.EventSink
	world donburi.World
}

func (s processingSink) EmitSelection(e solar.SelectionEvent) {
	s.EventSink.EmitSelection(e)
	ecs.SelectionEventType.ProcessEvents(s.world)
}

func fatal(logger zerolog.Logger, err error) {
	logger.Error().Err(err).Msg("solar")
	os.Exit(1)
}
