package fetch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type cacheEntry struct {
	FetchedAt time.Time `json:"fetched_at"`
	Payload   []byte    `json:"payload"`
}

// DiskCache stores raw response bodies as JSON envelopes under
// <dir>/<namespace>/<key>.json. A zero Dir disables caching.
type DiskCache struct {
	Dir string
	TTL time.Duration
}

// DefaultCacheDir honours XDG_CACHE_HOME and falls back to ~/.cache.
func DefaultCacheDir() string {
	if cache := os.Getenv("XDG_CACHE_HOME"); cache != "" {
		return filepath.Join(cache, "gene_weaver")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", "gene_weaver")
}

func (c DiskCache) path(namespace, key string) string {
	key = strings.ToLower(key)
	key = strings.NewReplacer("/", "_", " ", "_", ":", "_", "?", "_", "&", "_", "=", "_").Replace(key)
	return filepath.Join(c.Dir, namespace, key+".json")
}

// Get returns a cached payload younger than TTL.
func (c DiskCache) Get(namespace, key string) ([]byte, bool) {
	if c.Dir == "" {
		return nil, false
	}
	data, err := os.ReadFile(c.path(namespace, key))
	if err != nil {
		return nil, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if c.TTL > 0 && time.Since(entry.FetchedAt) > c.TTL {
		return nil, false
	}
	return entry.Payload, true
}

// Put writes payload for namespace/key.
func (c DiskCache) Put(namespace, key string, payload []byte) error {
	if c.Dir == "" {
		return nil
	}
	path := c.path(namespace, key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(cacheEntry{FetchedAt: time.Now(), Payload: payload})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
