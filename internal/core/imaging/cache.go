package imaging

import (
	"fmt"
	"image"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

const defaultCacheShards = 16

// cacheShard is one lock stripe of the cache.
type cacheShard struct {
	mu      sync.RWMutex
	entries map[string]image.Image
}

// Cache keeps decoded (and optionally scaled) sprites so that many objects
// sharing one image file decode it once. Cached images are shared and must
// be treated as read-only.
type Cache struct {
	shards []cacheShard
	group  singleflight.Group
	load   func(path string) (image.Image, error)
}

// NewCache returns an empty cache backed by Load.
func NewCache() *Cache {
	return NewShardedCache(defaultCacheShards)
}

// NewShardedCache is NewCache with an explicit number of lock stripes.
func NewShardedCache(shardCount int) *Cache {
	if shardCount <= 0 {
		shardCount = defaultCacheShards
	}
	c := &Cache{
		shards: make([]cacheShard, shardCount),
		load:   Load,
	}
	for i := range c.shards {
		c.shards[i].entries = make(map[string]image.Image)
	}
	return c
}

func cacheKey(path string, width, height int) string {
	return path + "|" + strconv.Itoa(width) + "x" + strconv.Itoa(height)
}

func (c *Cache) shardFor(key string) *cacheShard {
	return &c.shards[xxhash.Sum64String(key)%uint64(len(c.shards))]
}

// Native returns the image at path at its own size.
func (c *Cache) Native(path string) (image.Image, error) {
	return c.get(cacheKey(path, 0, 0), path, nil)
}

// Get returns the image at path scaled to width x height. Non-positive
// sizes fail with ErrInvalidSize before anything is decoded.
func (c *Cache) Get(path string, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return c.get(cacheKey(path, width, height), path, func(src image.Image) (image.Image, error) {
		return Scale(src, width, height)
	})
}

func (c *Cache) get(key, path string, transform func(image.Image) (image.Image, error)) (image.Image, error) {
	sh := c.shardFor(key)

	sh.mu.RLock()
	img, ok := sh.entries[key]
	sh.mu.RUnlock()
	if ok {
		return img, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		out, err := c.load(path)
		if err != nil {
			return nil, err
		}
		if transform != nil {
			if out, err = transform(out); err != nil {
				return nil, err
			}
		}
		sh.mu.Lock()
		sh.entries[key] = out
		sh.mu.Unlock()
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	n := 0
	for i := range c.shards {
		sh := &c.shards[i]
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}

// Purge drops every cached entry.
func (c *Cache) Purge() {
	for i := range c.shards {
		sh := &c.shards[i]
		sh.mu.Lock()
		sh.entries = make(map[string]image.Image)
		sh.mu.Unlock()
	}
}
