package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedantwpatil/cursor-overlay/internal/config"
	"github.com/vedantwpatil/cursor-overlay/internal/cursor"
	"github.com/vedantwpatil/cursor-overlay/internal/display"
	"github.com/vedantwpatil/cursor-overlay/internal/prefs"
)

func writeConfig(t *testing.T) (configPath, prefsPath string) {
	t.Helper()
	dir := t.TempDir()
	prefsPath = filepath.Join(dir, "preferences.yaml")
	configPath = filepath.Join(dir, "config.yaml")
	data := "overlay:\n  backend: log\npreferences:\n  path: " + prefsPath + "\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(configPath, []byte(data), 0o644))
	return configPath, prefsPath
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestToggleCommand(t *testing.T) {
	configPath, prefsPath := writeConfig(t)

	out := execute(t, "--config", configPath, "toggle", "5")
	assert.Contains(t, out, "display 5 enabled")

	out = execute(t, "--config", configPath, "toggle", "5")
	assert.Contains(t, out, "display 5 disabled")
	assert.Contains(t, out, "{}")

	_, err := os.Stat(prefsPath)
	require.NoError(t, err)
}

func TestToggleRejectsBadID(t *testing.T) {
	configPath, _ := writeConfig(t)

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath, "toggle", "left"})
	require.Error(t, cmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), version)
}

func TestDisplayRow(t *testing.T) {
	d := display.Display{
		ID:      5,
		Name:    "DP-1",
		Bounds:  display.Rect{Width: 1920, Height: 1080},
		Visible: display.Rect{Y: 25, Width: 1920, Height: 1055},
	}

	row := displayRow(d, display.NewSet(5), display.Point{X: 100, Y: 100})
	assert.Equal(t, []string{"✅", "5", "DP-1", "(0,0 1920x1080)", "(0,25 1920x1055)", "*"}, row)

	row = displayRow(d, display.Set{}, display.Point{X: 3000, Y: 100})
	assert.Equal(t, "❌", row[0])
	assert.Equal(t, "", row[5])

	assert.Equal(t, "*", displayRow(d, display.Set{}, display.Point{X: 100, Y: 0})[5])
	assert.Equal(t, "", displayRow(d, display.Set{}, display.Point{X: 100, Y: 1080})[5])
}

func TestPrintCursor(t *testing.T) {
	var out bytes.Buffer
	desc := cursor.ArrowDescriptor()
	printCursor(&out, cursor.NewResolver(nil), desc)

	assert.Contains(t, out.String(), "size=17x23")
	assert.Contains(t, out.String(), "kind=arrow")
	assert.Contains(t, out.String(), "offset=(21,32)")
	assert.Contains(t, out.String(), desc.Digest().String())
}

func TestResolverRejectsBadDigest(t *testing.T) {
	configPath, _ := writeConfig(t)
	t.Setenv("OVERLAY_CURSOR_DIGESTS_OPEN_HAND", "not-hex")

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath, "cursor"})
	require.Error(t, cmd.Execute())
}

func handImage(v byte) []byte {
	return bytes.Repeat([]byte{v}, cursor.HandSize.Width*cursor.HandSize.Height*4)
}

func TestResolverLoadsReferenceImages(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.Cursor.Images.PointingHand = filepath.Join(dir, "missing.png")
	cfg.Cursor.Images.OpenHand = filepath.Join(dir, "open-hand.png")
	cfg.Cursor.Images.ClosedHand = filepath.Join(dir, "closed-hand.png")

	open := cursor.Descriptor{Size: cursor.HandSize, Pixels: handImage(2)}
	closed := cursor.Descriptor{Size: cursor.HandSize, Pixels: handImage(3)}
	require.NoError(t, cursor.SaveImage(cfg.Cursor.Images.OpenHand, open))
	require.NoError(t, cursor.SaveImage(cfg.Cursor.Images.ClosedHand, closed))

	app := &Application{config: cfg}
	r, err := app.resolver()
	require.NoError(t, err)

	assert.Equal(t, cursor.KindOpenHand, r.Classify(open))
	assert.Equal(t, cursor.KindClosedHand, r.Classify(closed))
	assert.Equal(t, cursor.KindPointingHand, r.Classify(cursor.Descriptor{Size: cursor.HandSize, Pixels: handImage(1)}))
}

func TestResolverRejectsWrongSizedImage(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Cursor.Images.PointingHand, cfg.Cursor.Images.ClosedHand = "", ""
	cfg.Cursor.Images.OpenHand = filepath.Join(t.TempDir(), "open-hand.png")
	require.NoError(t, cursor.SaveImage(cfg.Cursor.Images.OpenHand, cursor.ArrowDescriptor()))

	_, err := (&Application{config: cfg}).resolver()
	require.Error(t, err)
}

func TestSaveReference(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Cursor.Images.PointingHand, cfg.Cursor.Images.OpenHand = "", ""
	cfg.Cursor.Images.ClosedHand = filepath.Join(t.TempDir(), "cursors", "closed-hand.png")
	closed := cursor.Descriptor{Serial: 7, Size: cursor.HandSize, Pixels: handImage(3)}
	app := &Application{config: cfg, query: cursor.NewStaticQuery(closed)}

	var out bytes.Buffer
	require.NoError(t, saveReference(&out, app, "closed-hand"))
	assert.Contains(t, out.String(), closed.Digest().String())

	r, err := app.resolver()
	require.NoError(t, err)
	assert.Equal(t, cursor.KindClosedHand, r.Classify(closed))

	require.Error(t, saveReference(&out, app, "spinner"))
	app.query = cursor.NewStaticQuery(cursor.ArrowDescriptor())
	require.Error(t, saveReference(&out, app, "closed-hand"), "arrow is not hand sized")
}

type failingStore struct {
	prefs.Store
	err error
}

func (s failingStore) Toggle(display.ID) (display.Set, error) {
	return display.Set{}, s.err
}

func TestToggleReportsStoreError(t *testing.T) {
	storeErr := errors.New("read-only file system")
	app := &Application{
		config:   config.NewConfig(),
		registry: display.RegistryFunc(func() ([]display.Display, error) { return nil, nil }),
		store:    failingStore{err: storeErr},
	}

	cmd := newToggleCmd(&rootOptions{app: app})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"3"})
	require.ErrorIs(t, cmd.Execute(), storeErr)
}
