package prefs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/vedantwpatil/cursor-overlay/internal/display"
)

const debounce = 50 * time.Millisecond

// Subscription delivers the enabled set whenever the preferences file changes. C always holds
// the most recent set; intermediate values may be skipped.
type Subscription struct {
	C <-chan display.Set

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Cancel stops the watch and waits for it to finish. It is safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

// Watch starts watching the preferences file. The current set is delivered first.
func (s *FileStore) Watch(ctx context.Context) (*Subscription, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create preferences directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: atomic replacement renames over the file and would drop a file watch.
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan display.Set, 1)
	sub := &Subscription{C: ch, cancel: cancel, done: make(chan struct{})}

	current := s.Enabled()
	ch <- current

	go func() {
		defer close(sub.done)
		defer watcher.Close()

		name := filepath.Base(s.path)
		timer := time.NewTimer(debounce)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				timer.Reset(debounce)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("preferences watcher error")
			case <-timer.C:
				next := s.Enabled()
				if next.Equal(current) {
					continue
				}
				current = next
				publish(ch, next)
			}
		}
	}()

	return sub, nil
}

// publish replaces any undelivered value with set.
func publish(ch chan display.Set, set display.Set) {
	for {
		select {
		case ch <- set:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
