package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jezek/xgb"
	"github.com/rs/zerolog/log"

	"github.com/vedantwpatil/cursor-overlay/internal/config"
	"github.com/vedantwpatil/cursor-overlay/internal/cursor"
	"github.com/vedantwpatil/cursor-overlay/internal/display"
	"github.com/vedantwpatil/cursor-overlay/internal/prefs"
	"github.com/vedantwpatil/cursor-overlay/internal/tracking"
)

// Application holds the configuration and the platform adapters shared by every command.
type Application struct {
	config   *config.Config
	registry display.Registry
	query    cursor.Query
	store    prefs.Store
	closers  []func()
}

func NewApplication(cfg *config.Config) *Application {
	app := &Application{
		config: cfg,
		store:  prefs.NewFileStore(cfg.Preferences.Path),
	}
	app.openPlatform()
	return app
}

// openPlatform prefers X11 (RandR outputs and XFixes cursor images) and falls back to
// kbinani/screenshot and a static arrow cursor.
func (app *Application) openPlatform() {
	conn, err := xgb.NewConn()
	if err != nil {
		log.Debug().Err(err).Msg("no X11 connection, using portable display and cursor adapters")
	} else {
		app.closers = append(app.closers, conn.Close)

		if reg, err := display.NewX11Registry(conn); err != nil {
			log.Warn().Err(err).Msg("RandR unavailable, falling back to screenshot registry")
		} else {
			app.registry = reg
		}
		if q, err := cursor.NewX11Query(conn); err != nil {
			log.Warn().Err(err).Msg("XFixes unavailable, overlay will show a static arrow")
		} else {
			app.query = q
		}
	}

	if app.registry == nil {
		app.registry = display.NewScreenshotRegistry()
	}
	if app.query == nil {
		app.query = cursor.NewStaticQuery(cursor.ArrowDescriptor())
	}
}

func (app *Application) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		app.closers[i]()
	}
	app.closers = nil
}

type handCursor struct {
	kind   cursor.Kind
	digest string
	image  string
}

func (app *Application) handCursors() []handCursor {
	c := app.config.Cursor
	return []handCursor{
		{cursor.KindPointingHand, c.Digests.PointingHand, c.Images.PointingHand},
		{cursor.KindOpenHand, c.Digests.OpenHand, c.Images.OpenHand},
		{cursor.KindClosedHand, c.Digests.ClosedHand, c.Images.ClosedHand},
	}
}

// resolver hashes the configured hand reference images once and combines them with the
// configured digests.
func (app *Application) resolver() (*cursor.Resolver, error) {
	digests := make(map[cursor.Kind]cursor.Digest)
	images := make(map[cursor.Kind][]byte)

	for _, h := range app.handCursors() {
		if h.digest != "" {
			digest, err := cursor.ParseDigest(h.digest)
			if err != nil {
				return nil, fmt.Errorf("cursor digest for %s: %w", h.kind, err)
			}
			digests[h.kind] = digest
		}
		if h.image == "" {
			continue
		}

		desc, err := cursor.LoadImage(h.image)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Debug().Str("path", h.image).Stringer("kind", h.kind).Msg("no reference cursor image")
			continue
		case err != nil:
			return nil, fmt.Errorf("cursor image for %s: %w", h.kind, err)
		}
		if desc.Size != cursor.HandSize {
			return nil, fmt.Errorf("cursor image for %s is %s, want %s", h.kind, desc.Size, cursor.HandSize)
		}
		images[h.kind] = desc.Pixels
	}

	log.Debug().Int("digests", len(digests)).Int("images", len(images)).Msg("hand cursor references loaded")
	return cursor.NewResolverFromImages(images, digests), nil
}

// imagePath returns where the reference image of kind is read from.
func (app *Application) imagePath(kind cursor.Kind) (string, bool) {
	for _, h := range app.handCursors() {
		if h.kind == kind {
			return h.image, h.image != ""
		}
	}
	return "", false
}

func (app *Application) source() tracking.Source {
	if app.config.Tracking.Source == "poll" {
		return tracking.NewPollSource(app.config.Tracking.PollHz)
	}
	return tracking.NewHookSource()
}
