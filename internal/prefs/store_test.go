package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedantwpatil/cursor-overlay/internal/display"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "prefs", "preferences.yaml"))
}

func TestMissingFileIsEmpty(t *testing.T) {
	s := newStore(t)

	ids, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, 0, s.Enabled().Len())
}

func TestToggleInsertsAtFrontAndRemoves(t *testing.T) {
	s := newStore(t)

	_, err := s.Toggle(5)
	require.NoError(t, err)
	set, err := s.Toggle(7)
	require.NoError(t, err)
	assert.True(t, set.Equal(display.NewSet(5, 7)))

	ids, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []display.ID{7, 5}, ids)

	set, err = s.Toggle(5)
	require.NoError(t, err)
	assert.True(t, set.Equal(display.NewSet(7)))
}

func TestDoubleTogglePersistsPreviousList(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SetEnabled(display.NewSet(1, 2)))

	_, err := s.Toggle(3)
	require.NoError(t, err)
	_, err = s.Toggle(3)
	require.NoError(t, err)

	assert.True(t, s.Enabled().Equal(display.NewSet(1, 2)))
}

func TestSetEnabledSurvivesReopen(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SetEnabled(display.NewSet(9, 4)))

	reopened := NewFileStore(s.Path())
	ids, err := reopened.List()
	require.NoError(t, err)
	assert.Equal(t, []display.ID{4, 9}, ids)
}

func TestCorruptFileReadsAsEmpty(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("enabled_displays: {oops"), 0o644))

	_, err := s.List()
	require.ErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, 0, s.Enabled().Len())

	set, err := s.Toggle(2)
	require.NoError(t, err)
	assert.True(t, set.Equal(display.NewSet(2)))
}

func TestDuplicateIDsCollapse(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("enabled_displays: [3, 1, 3]\n"), 0o644))

	ids, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []display.ID{3, 1}, ids)
}

func TestWatchDeliversInitialAndChanges(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SetEnabled(display.NewSet(1)))

	sub, err := s.Watch(context.Background())
	require.NoError(t, err)
	defer sub.Cancel()

	select {
	case set := <-sub.C:
		assert.True(t, set.Equal(display.NewSet(1)))
	case <-time.After(2 * time.Second):
		t.Fatal("no initial value")
	}

	other := NewFileStore(s.Path())
	_, err = other.Toggle(8)
	require.NoError(t, err)

	select {
	case set := <-sub.C:
		assert.True(t, set.Equal(display.NewSet(1, 8)))
	case <-time.After(5 * time.Second):
		t.Fatal("change not delivered")
	}
}

func TestSubscriptionCancelIsIdempotent(t *testing.T) {
	s := newStore(t)
	sub, err := s.Watch(context.Background())
	require.NoError(t, err)

	sub.Cancel()
	sub.Cancel()
}
