package rules

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// PathFor returns the sidecar rule file path for a table, trying both
// the upper- and lower-case extension spec.md §4.3 allows.
func PathFor(dataDir, tableName string) (string, bool) {
	for _, ext := range []string{".RUL", ".rul"} {
		p := filepath.Join(dataDir, tableName+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

type entry struct {
	mtime time.Time
	set   *RuleSet
}

// Cache holds one parsed RuleSet per rule-file path, invalidating an
// entry when the file's mtime (or existence) changes since it was
// cached. Load is the synchronous path every row-ingress call uses;
// Watch is an additional, optional proactive-invalidation mode for a
// long-running server.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Load returns the RuleSet for path, re-parsing only if the file's
// mtime has changed (or the entry is missing) since the last call. A
// missing file is not an error: it yields an empty RuleSet, clearing
// any stale cached entry.
func (c *Cache) Load(path string) (*RuleSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		delete(c.entries, path)
		return &RuleSet{}, nil
	}
	if err != nil {
		return nil, err
	}

	if cached, ok := c.entries[path]; ok && cached.mtime.Equal(info.ModTime()) {
		return cached.set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set, err := Parse(string(data))
	if err != nil {
		return nil, err
	}
	c.entries[path] = entry{mtime: info.ModTime(), set: set}
	return set, nil
}

// Invalidate drops any cached entry for path, forcing the next Load to
// re-read from disk regardless of mtime.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Watch runs until ctx is cancelled, invalidating cache entries as soon
// as a .RUL/.rul file under dataDir changes on disk — for a
// long-running server process where waiting for the next ingress call
// to notice a stale mtime is too slow. The synchronous Load path above
// remains correct without Watch; this only shortens the staleness
// window.
func (c *Cache) Watch(ctx context.Context, dataDir string, log *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dataDir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".rul") {
				continue
			}
			c.Invalidate(ev.Name)
			if log != nil {
				log.Debug("rule file invalidated", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if log != nil {
				log.Warn("rule file watch error", zap.Error(err))
			}
		}
	}
}
