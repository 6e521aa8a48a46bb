package status

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/theiostream/diffstatus/internal/log"
)

// CommonDirResolver resolves the git common directory for a repository.
type CommonDirResolver interface {
	CommonDir(ctx context.Context) string
}

// Watcher observes the repository's git directory (index, refs, logs) and
// signals when the report should be re-collected and re-rendered.
type Watcher struct {
	resolver CommonDirResolver
	debounce time.Duration

	mu          sync.Mutex
	started     bool
	watcher     *fsnotify.Watcher
	events      chan struct{}
	done        chan struct{}
	paths       map[string]struct{}
	roots       []string
	lastRefresh time.Time
}

// NewWatcher builds a watcher for the repository resolved by resolver.
// debounce bounds how often consecutive signals fire.
func NewWatcher(resolver CommonDirResolver, debounce time.Duration) *Watcher {
	return &Watcher{resolver: resolver, debounce: debounce}
}

// Start initialises the fsnotify watcher and begins delivering signals.
// It reports false when the git directory cannot be resolved.
func (w *Watcher) Start(ctx context.Context) (bool, error) {
	if w.started {
		return false, nil
	}

	commonDir := w.resolver.CommonDir(ctx)
	if commonDir == "" {
		log.Println("watch: unable to resolve git common dir")
		return false, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}

	w.started = true
	w.watcher = watcher
	w.events = make(chan struct{}, 1)
	w.done = make(chan struct{})
	w.paths = make(map[string]struct{})
	w.roots = []string{
		filepath.Join(commonDir, "refs"),
		filepath.Join(commonDir, "logs"),
	}
	w.addWatchDir(commonDir)
	for _, root := range w.roots {
		w.addWatchTree(root)
	}

	go w.run()
	return true, nil
}

// Stop stops the watcher and closes channels.
func (w *Watcher) Stop() {
	if !w.started {
		return
	}
	close(w.done)
	w.started = false
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
}

// Events returns the signal channel. One token is delivered per batch of
// filesystem activity.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// ShouldRefresh checks debounce timing for watcher signals.
func (w *Watcher) ShouldRefresh(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.lastRefresh.IsZero() && now.Sub(w.lastRefresh) < w.debounce {
		return false
	}
	w.lastRefresh = now
	return true
}

func (w *Watcher) signal() {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.events <- struct{}{}:
	default:
	}
}

func (w *Watcher) isUnderRoot(path string) bool {
	if path == "" {
		return false
	}
	for _, root := range w.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) maybeWatchNewDir(path string) {
	if !w.isUnderRoot(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	w.addWatchDir(path)
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.maybeWatchNewDir(event.Name)
			}
			w.signal()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

func (w *Watcher) addWatchDir(path string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.paths[path]; ok {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		log.Printf("watch add failed for %s: %v", path, err)
		return
	}
	w.paths[path] = struct{}{}
}

func (w *Watcher) addWatchTree(root string) {
	if root == "" {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		w.addWatchDir(path)
		return nil
	})
}
