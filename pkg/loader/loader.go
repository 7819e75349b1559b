package loader

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// TranscriptFile points at a chat export. The bytes are fetched lazily via
// the associated TranscriptLoader.
type TranscriptFile struct {
	ID     string
	Path   string
	Loader TranscriptLoader
}

// Load retrieves the raw bytes of the file using its Loader.
//
// Example:
//
//	file := loader.TranscriptFile{ID: "job-1", Path: "chat.txt", Loader: io.NewIOTranscriptLoader()}
//	raw, err := file.Load(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
func (f TranscriptFile) Load(ctx context.Context) ([]byte, error) {
	return f.Loader.Load(ctx, f)
}

// TranscriptLoader defines how transcript bytes are fetched. Implementations
// may read from disk, object storage or elsewhere.
type TranscriptLoader interface {
	Load(ctx context.Context, file TranscriptFile) ([]byte, error)
}

// CacheKey generates a unique cache key for a file based on its ID and path.
func CacheKey(file TranscriptFile) string {
	return file.ID + ":" + file.Path
}

// Cache memoizes loads by key and collapses concurrent loads of the same
// key into a single fetch.
type Cache struct {
	mu    sync.RWMutex
	items map[string][]byte
	group singleflight.Group
}

func NewCache() *Cache {
	return &Cache{items: make(map[string][]byte)}
}

func (c *Cache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.items[key]
	return b, ok
}

// Do returns the cached bytes for key or calls fetch once to fill them.
// Failed fetches are not cached.
func (c *Cache) Do(key string, fetch func() ([]byte, error)) ([]byte, error) {
	if b, ok := c.get(key); ok {
		return b, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		if b, ok := c.get(key); ok {
			return b, nil
		}
		b, err := fetch()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.items[key] = b
		c.mu.Unlock()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// Forget drops key from the cache.
func (c *Cache) Forget(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
