package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/broadside/asset"
	"github.com/lixenwraith/broadside/audio"
	"github.com/lixenwraith/broadside/config"
	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/game"
	"github.com/lixenwraith/broadside/input"
	"github.com/lixenwraith/broadside/parameter"
	"github.com/lixenwraith/broadside/render"
	"github.com/lixenwraith/broadside/status"
)

var (
	configFlag = flag.String("config", "broadside.yaml", "Path to YAML config, missing file uses defaults")
	debugFlag  = flag.Bool("debug", false, "Write JSON logs and show the metrics line")
	muteFlag   = flag.Bool("mute", false, "Disable audio")
)

func main() {
	defer func() { core.HandleCrash(recover()) }()
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "broadside: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}
	if *muteFlag {
		cfg.Audio.Muted = true
	}

	logger, closeLog, err := setupLogging(cfg.Log.Debug, cfg.Log.Dir)
	if err != nil {
		return err
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	// Crashing goroutines must hand the terminal back before printing
	core.SetCrashReset(screen.Fini)

	manifest, err := asset.DefaultManifest()
	if err != nil {
		return err
	}
	loader := asset.NewLoader(manifest, cfg.Assets.Workers, cfg.Assets.LoadDelay, logger)
	defer loader.Close()

	sound := audio.NewSoundManager(audio.Config{Muted: cfg.Audio.Muted, Volume: cfg.Audio.Volume}, logger)
	if err := sound.Initialize(); err != nil {
		logger.Warn("continuing without audio", zap.Error(err))
	}
	defer sound.Cleanup()

	registry := status.NewRegistry()
	var metrics *status.Registry
	if cfg.Log.Debug {
		metrics = registry
	}
	renderer := render.NewRenderer(screen, cfg.CameraView(), metrics)

	var rng engine.Rand
	if seed, ok := cfg.SeedValue(); ok {
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	loop := game.New(game.Options{
		Loader: loader,
		Scene:  renderer,
		Camera: renderer,
		Audio:  sound,
		HUD:    renderer.HUD(),
		Rand:   rng,
		Status: registry,
		Logger: logger,
		View:   cfg.CameraView(),
	})
	loop.Start()

	scheduler := engine.NewClockScheduler(loop.Tick, cfg.TickInterval(), logger)
	pump := input.NewPump(screen, loop, nil, renderer.Sync, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(guard(func() error {
		return scheduler.Run(gctx)
	}))

	g.Go(guard(func() error {
		return pump.Run(gctx)
	}))

	// Wake the pump out of PollEvent once anything stops the group
	g.Go(func() error {
		<-gctx.Done()
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		return nil
	})

	// Render loop: ticks mark the frame dirty, the ticker paces the draws
	g.Go(guard(func() error {
		ticker := time.NewTicker(parameter.FrameUpdateInterval)
		defer ticker.Stop()
		dirty := true
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-scheduler.FrameDone():
				dirty = true
			case <-ticker.C:
				if dirty {
					renderer.Draw()
					dirty = false
				}
			}
		}
	}))

	err = g.Wait()
	logger.Info("session ended",
		zap.Stringer("session", loop.Session()),
		zap.Uint64("ticks", scheduler.TickCount()),
		zap.Bool("game_over", loop.State().IsOver()),
		zap.Uint64("game_over_tick", loop.State().GameOverTick()),
	)
	if errors.Is(err, input.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// guard routes a group goroutine's panic through the terminal-restoring crash handler
func guard(fn func() error) func() error {
	return func() error {
		defer func() { core.HandleCrash(recover()) }()
		return fn()
	}
}
