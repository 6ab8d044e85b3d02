package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/selector"
)

// cacheKey identifies a unique tree read scope.
type cacheKey struct {
	Title      string
	TitleRegex string
	ClassName  string
}

// cacheEntry holds a cached window and element tree with its timestamp.
type cacheEntry struct {
	window    model.Window
	root      *model.Element
	timestamp time.Time
}

// TreeCache provides a TTL-based cache for element trees, keyed by the
// window matcher that selected them. Tree reads dominate MCP tool
// latency; agents typically issue several reads against one window in a
// row.
type TreeCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
}

// NewTreeCache creates a new cache. A ttl of 0 disables caching.
func NewTreeCache(ttl time.Duration) *TreeCache {
	return &TreeCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
	}
}

// ReadTree returns the cached window and tree for the matcher when still
// fresh, otherwise finds the window and reads through the resolver.
func (c *TreeCache) ReadTree(res *selector.LiveResolver, m selector.WindowMatcher) (model.Window, *model.Element, error) {
	if c.ttl == 0 {
		return readLive(res, m)
	}

	key := cacheKey{Title: m.Title, TitleRegex: m.TitleRegex, ClassName: m.ClassName}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && time.Since(entry.timestamp) < c.ttl {
		w, root := entry.window, entry.root
		c.mu.Unlock()
		return w, root, nil
	}
	c.mu.Unlock()

	w, root, err := readLive(res, m)
	if err != nil {
		return model.Window{}, nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{window: w, root: root, timestamp: time.Now()}
	c.mu.Unlock()

	return w, root, nil
}

func readLive(res *selector.LiveResolver, m selector.WindowMatcher) (model.Window, *model.Element, error) {
	w, err := res.FindWindow(m)
	if err != nil {
		return model.Window{}, nil, err
	}
	root, err := res.Trees.WindowTree(w)
	if err != nil {
		return model.Window{}, nil, fmt.Errorf("read element tree: %w", err)
	}
	return w, root, nil
}

// InvalidateAll clears the entire cache. Write actions call this; any
// click or keystroke can change any window's tree.
func (c *TreeCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}
