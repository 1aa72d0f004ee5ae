// Package downloads watches the downloads folder and projects its contents
// into the session's download list. There is no download engine in mirage;
// the folder on disk is the source of truth and the watcher keeps the
// about:downloads views current.
package downloads

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"mirage/internal/log"
	"mirage/internal/pubsub"
	"mirage/internal/session"
)

// ChangedEvent signals that the downloads folder contents changed and a
// rescan is due.
type ChangedEvent struct{}

// DefaultDebounce batches bursts of file events into one rescan.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors the downloads folder for changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	debounce  time.Duration
	broker    *pubsub.Broker[ChangedEvent]
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Dir         string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(dir string) Config {
	return Config{Dir: dir, DebounceDur: DefaultDebounce}
}

// New creates a downloads folder watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	debounce := cfg.DebounceDur
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		fsWatcher: fsw,
		dir:       cfg.Dir,
		debounce:  debounce,
		broker:    pubsub.NewBroker[ChangedEvent](),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the downloads folder.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", w.dir, err)
	}
	go w.loop()
	return nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	w.broker.Close()
	return w.fsWatcher.Close()
}

// Broker exposes the change event broker for UI subscription.
func (w *Watcher) Broker() *pubsub.Broker[ChangedEvent] {
	return w.broker
}

// Scan lists the downloads folder as session download entries, newest
// first. Files still carrying a partial-download suffix show as in
// progress, everything else as completed.
func (w *Watcher) Scan() ([]session.Download, error) {
	return Scan(w.dir)
}

// Scan builds the download list for a directory.
func Scan(dir string) ([]session.Download, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading downloads dir: %w", err)
	}

	var out []session.Download
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		d := session.Download{
			ID:        entry.Name(),
			Filename:  entry.Name(),
			Status:    session.DownloadCompleted,
			Progress:  1,
			Timestamp: info.ModTime(),
			Size:      info.Size(),
		}
		if isPartial(entry.Name()) {
			d.Status = session.DownloadInProgress
			d.Progress = 0
		}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// isPartial recognizes the in-progress suffixes common browsers use.
func isPartial(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".part", ".crdownload", ".download", ".tmp":
		return true
	}
	return false
}

// loop processes file system events with debouncing, publishing one
// ChangedEvent per quiet period.
func (w *Watcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			log.Debug(log.CatDownloads, "downloads folder changed", "dir", w.dir)
			w.broker.Publish(pubsub.UpdatedEvent, ChangedEvent{})

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
