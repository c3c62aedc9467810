package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"termfm/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change reports that the watched directory changed.
type Change struct {
	Dir       string
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher follows a single directory with fsnotify. Changes are coalesced:
// while one is waiting to be read, further changes are dropped.
type Watcher struct {
	// Directory being watched, empty before the first Watch
	dir string

	// Channel delivering changes
	changes chan Change

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
	stopped bool
}

// New creates a watcher that is not watching anything yet.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		changes:   make(chan Change, 1),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Watch switches the watched directory to dir.
func (w *Watcher) Watch(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if dir == w.dir {
		return nil
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			log.LogWithFields(log.F("directory", w.dir), log.F("error", err)).Debug("Failed to drop previous directory")
		}
	}
	w.dir = dir
	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.dir
}

// Changes returns the channel that delivers changes.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins forwarding fsnotify events.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	if w.stopped {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.running = true
	stop := w.stopChan
	w.mutex.Unlock()

	go w.loop(stop)
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}) {
	defer close(w.changes)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			change := Change{
				Dir:       w.Dir(),
				Path:      event.Name,
				Op:        event.Op,
				Timestamp: time.Now(),
			}
			select {
			case w.changes <- change:
			default:
				// A change is already pending; the reader re-lists anyway.
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

// Stop halts the watcher. The change channel is closed once the forwarding
// goroutine has exited. A stopped watcher cannot be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.stopped {
		w.mutex.Unlock()
		return
	}
	started := w.running
	w.running = false
	w.stopped = true
	close(w.stopChan)
	w.mutex.Unlock()

	if !started {
		close(w.changes)
	}

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
