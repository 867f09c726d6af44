package rules

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeRuleFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestCacheLoadReturnsEmptyRuleSetForMissingFile(t *testing.T) {
	c := NewCache()
	rs, err := c.Load(filepath.Join(t.TempDir(), "sales.RUL"))
	require.NoError(t, err)
	require.Empty(t, rs.Rules)
}

func TestCacheLoadCachesUntilMtimeChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.RUL")
	writeRuleFile(t, path, "CHECK Amount Amount > 0")

	c := NewCache()
	rs1, err := c.Load(path)
	require.NoError(t, err)
	require.Len(t, rs1.Rules, 1)

	// Rewrite without advancing mtime: Load must still return the
	// cached RuleSet, not re-parse.
	stat, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("CHECK Amount Amount > 0\nCHECK Amount Amount < 100"), 0o644))
	require.NoError(t, os.Chtimes(path, stat.ModTime(), stat.ModTime()))

	rs2, err := c.Load(path)
	require.NoError(t, err)
	require.Same(t, rs1, rs2)

	// Advance mtime: Load must re-parse and pick up the new content.
	future := stat.ModTime().Add(time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	rs3, err := c.Load(path)
	require.NoError(t, err)
	require.Len(t, rs3.Rules, 2)
}

func TestCacheLoadClearsEntryWhenFileIsDeleted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.RUL")
	writeRuleFile(t, path, "CHECK Amount Amount > 0")

	c := NewCache()
	_, err := c.Load(path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	rs, err := c.Load(path)
	require.NoError(t, err)
	require.Empty(t, rs.Rules)
}

func TestCacheInvalidateForcesReparse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.RUL")
	writeRuleFile(t, path, "CHECK Amount Amount > 0")

	c := NewCache()
	rs1, err := c.Load(path)
	require.NoError(t, err)

	c.Invalidate(path)
	rs2, err := c.Load(path)
	require.NoError(t, err)
	require.NotSame(t, rs1, rs2)
	require.Equal(t, rs1.Rules, rs2.Rules)
}

func TestCacheWatchInvalidatesOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.RUL")
	writeRuleFile(t, path, "CHECK Amount Amount > 0")

	c := NewCache()
	_, err := c.Load(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx, dir, nil) }()

	// Give the watcher a moment to register before mutating the file.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("CHECK Amount Amount > 0\nCHECK Amount Amount < 100"), 0o644))

	require.Eventually(t, func() bool {
		c.mu.Lock()
		_, cached := c.entries[path]
		c.mu.Unlock()
		return !cached
	}, 2*time.Second, 10*time.Millisecond, "Watch did not invalidate the changed rule file")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after ctx cancellation")
	}
}
