package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vedantwpatil/cursor-overlay/internal/overlay"
	"github.com/vedantwpatil/cursor-overlay/internal/throttle"
	"github.com/vedantwpatil/cursor-overlay/internal/visibility"
	"github.com/vedantwpatil/cursor-overlay/internal/window"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var headless bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Track the pointer and draw the overlay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.app.Run(cmd.Context(), headless)
		},
	}
	cmd.Flags().BoolVar(&headless, "headless", false, "log overlay commands instead of opening a window")
	return cmd
}

// Run wires the pointer source, rate controller and positioner and blocks until ctx is done
// or the overlay window is closed.
func (app *Application) Run(ctx context.Context, headless bool) error {
	cfg := app.config

	resolver, err := app.resolver()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub, err := app.store.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch preferences: %w", err)
	}
	defer sub.Cancel()
	enabled := <-sub.C

	ctrl := throttle.NewController(throttle.Options{
		FastInterval: time.Second / time.Duration(cfg.Tracking.FastHz),
		SlowInterval: time.Second / time.Duration(cfg.Tracking.SlowHz),
		Initial:      throttle.Slow,
	})

	machine := visibility.New(visibility.Options{
		Registry:        app.registry,
		Enabled:         enabled,
		RecheckInterval: cfg.Visibility.RecheckInterval,
	})

	var (
		sink overlay.Sink = overlay.LogSink{}
		win  *window.Window
	)
	if !headless && cfg.Overlay.Backend == "window" {
		win = window.New(cfg.Overlay.Width, cfg.Overlay.Height)
		sink = win
	}

	pos := overlay.NewPositioner(overlay.Options{
		Resolver: resolver,
		Query:    app.query,
		Machine:  machine,
		Sink:     sink,
		Rate:     ctrl,
	})

	log.Info().
		Stringer("enabled", enabled).
		Str("source", cfg.Tracking.Source).
		Int("fast_hz", cfg.Tracking.FastHz).
		Int("slow_hz", cfg.Tracking.SlowHz).
		Str("preferences", app.config.Preferences.Path).
		Msg("overlay started")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.source().Stream(gctx, ctrl.Offer) })
	g.Go(func() error { return ctrl.Run(gctx) })
	g.Go(func() error { return pos.Run(gctx, ctrl.Events(), sub.C) })

	if win != nil {
		if err := win.Run(gctx); err != nil {
			log.Error().Err(err).Msg("overlay window failed")
		}
		cancel()
	}

	err = g.Wait()

	stats := ctrl.Stats()
	log.Info().
		Uint64("offered", stats.Offered).
		Uint64("delivered", stats.Delivered).
		Uint64("coalesced", stats.Coalesced()).
		Msg("overlay stopped")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
