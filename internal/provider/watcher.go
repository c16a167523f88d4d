package provider

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"jurix/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// ResponseWatcher watches a responses directory for changes to role response
// files and hot-reloads the static response library when files settle.
type ResponseWatcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	lib         *Library
	dir         string
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats ResponseWatcherStats
}

// ResponseWatcherStats tracks watcher activity for debugging.
type ResponseWatcherStats struct {
	FilesCreated     int
	FilesModified    int
	FilesDeleted     int
	ReloadsTriggered int
	Errors           int
	LastEventTime    time.Time
	LastEventPath    string
	LastEventType    string
}

// NewResponseWatcher creates a watcher that reloads lib from dir whenever a
// response file under dir changes.
func NewResponseWatcher(dir string, lib *Library) (*ResponseWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	rw := &ResponseWatcher{
		watcher:     watcher,
		lib:         lib,
		dir:         dir,
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond, // Debounce rapid saves
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}

	return rw, nil
}

// Start begins watching the responses directory.
// This method is non-blocking; it starts the watcher in a goroutine.
func (rw *ResponseWatcher) Start(ctx context.Context) error {
	rw.mu.Lock()
	if rw.running {
		rw.mu.Unlock()
		return nil // Already running
	}
	rw.running = true
	rw.mu.Unlock()

	if err := os.MkdirAll(rw.dir, 0755); err != nil {
		logging.Get(logging.CategoryWatcher).Warn("ResponseWatcher: failed to create responses dir %s: %v (continuing anyway)", rw.dir, err)
		// Continue anyway - directory might be created later
	}

	if err := rw.watcher.Add(rw.dir); err != nil {
		// Directory may not exist yet - that's OK, we'll try again
		logging.Get(logging.CategoryWatcher).Warn("ResponseWatcher: initial watch failed (dir may not exist): %v", err)
	} else {
		logging.Watcher("ResponseWatcher: watching directory: %s", rw.dir)
	}

	go rw.run(ctx)

	return nil
}

// Stop stops the watcher and waits for cleanup.
func (rw *ResponseWatcher) Stop() {
	rw.mu.Lock()
	if !rw.running {
		rw.mu.Unlock()
		return
	}
	rw.running = false
	rw.mu.Unlock()

	close(rw.stopCh)
	<-rw.doneCh

	if err := rw.watcher.Close(); err != nil {
		logging.WatcherError("ResponseWatcher: error closing watcher: %v", err)
	}
	logging.Watcher("ResponseWatcher: stopped")
}

// run is the main event loop for the watcher.
func (rw *ResponseWatcher) run(ctx context.Context) {
	defer close(rw.doneCh)

	// Debounce timer for batching rapid changes
	debounceTicker := time.NewTicker(100 * time.Millisecond)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Watcher("ResponseWatcher: context cancelled")
			return

		case <-rw.stopCh:
			logging.Watcher("ResponseWatcher: stop signal received")
			return

		case event, ok := <-rw.watcher.Events:
			if !ok {
				logging.Watcher("ResponseWatcher: event channel closed")
				return
			}
			rw.handleEvent(event)

		case err, ok := <-rw.watcher.Errors:
			if !ok {
				logging.Watcher("ResponseWatcher: error channel closed")
				return
			}
			logging.WatcherError("ResponseWatcher error: %v", err)
			rw.mu.Lock()
			rw.stats.Errors++
			rw.mu.Unlock()

		case <-debounceTicker.C:
			rw.processDebouncedEvents()
		}
	}
}

// handleEvent processes a single filesystem event.
func (rw *ResponseWatcher) handleEvent(event fsnotify.Event) {
	if !isResponseFile(event.Name) {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	case event.Op&fsnotify.Remove != 0:
		eventType = "delete"
	case event.Op&fsnotify.Rename != 0:
		eventType = "rename"
	default:
		return // Ignore chmod, etc.
	}

	logging.WatcherDebug("ResponseWatcher: %s event for %s", eventType, event.Name)

	rw.mu.Lock()
	rw.stats.LastEventTime = time.Now()
	rw.stats.LastEventPath = event.Name
	rw.stats.LastEventType = eventType

	switch eventType {
	case "create":
		rw.stats.FilesCreated++
	case "modify":
		rw.stats.FilesModified++
	case "delete", "rename":
		rw.stats.FilesDeleted++
	}

	// Debounce: record the event for later processing
	rw.debounceMap[event.Name] = time.Now()
	rw.mu.Unlock()
}

// processDebouncedEvents reloads the library once events settle past the
// debounce window. A single reload covers every changed file since LoadDir
// re-reads the whole directory.
func (rw *ResponseWatcher) processDebouncedEvents() {
	rw.mu.Lock()
	now := time.Now()
	settled := 0

	for path, eventTime := range rw.debounceMap {
		if now.Sub(eventTime) >= rw.debounceDur {
			settled++
			delete(rw.debounceMap, path)
		}
	}
	rw.mu.Unlock()

	if settled == 0 {
		return
	}
	rw.reload()
}

// reload re-reads the responses directory into the library.
func (rw *ResponseWatcher) reload() {
	logging.Watcher("ResponseWatcher: reloading responses from %s", rw.dir)

	if err := rw.lib.LoadDir(rw.dir); err != nil {
		logging.WatcherError("ResponseWatcher: reload failed: %v", err)
		rw.mu.Lock()
		rw.stats.Errors++
		rw.mu.Unlock()
		return
	}

	rw.mu.Lock()
	rw.stats.ReloadsTriggered++
	rw.mu.Unlock()
}

// TriggerReload manually reloads the responses directory.
// Useful at startup before any file events arrive.
func (rw *ResponseWatcher) TriggerReload() error {
	logging.Watcher("ResponseWatcher: manual reload triggered")

	if _, err := os.Stat(rw.dir); err != nil {
		if os.IsNotExist(err) {
			logging.WatcherDebug("ResponseWatcher: responses dir does not exist: %s", rw.dir)
			return nil
		}
		return err
	}

	rw.reload()
	return nil
}

// GetStats returns the current watcher statistics.
func (rw *ResponseWatcher) GetStats() ResponseWatcherStats {
	rw.mu.RLock()
	defer rw.mu.RUnlock()
	return rw.stats
}

// ResetStats resets the watcher statistics.
func (rw *ResponseWatcher) ResetStats() {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	rw.stats = ResponseWatcherStats{}
}

// IsWatching returns true if the watcher is currently running.
func (rw *ResponseWatcher) IsWatching() bool {
	rw.mu.RLock()
	defer rw.mu.RUnlock()
	return rw.running
}

// GetWatchedDirs returns the directories being watched.
func (rw *ResponseWatcher) GetWatchedDirs() []string {
	return rw.watcher.WatchList()
}

func isResponseFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
