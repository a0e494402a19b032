package cache

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache keeps one JSON file per key under a directory, fanned out over
// 256 subdirectories by the first byte of the key hash. The CLI uses it so
// tracks and artifacts survive between invocations.
type FileCache struct {
	dir string
}

func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// DefaultDir returns $XDG_CACHE_HOME/<app>, or ~/.cache/<app> when the
// variable is unset.
func DefaultDir(app string) (string, error) {
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, app), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", app), nil
}

type fileEntry struct {
	Key     string    `json:"key"`
	Data    []byte    `json:"data"`
	Expires time.Time `json:"expires,omitzero"`
}

func (e fileEntry) expired(now time.Time) bool {
	return !e.Expires.IsZero() && now.After(e.Expires)
}

func readEntry(path string) (fileEntry, error) {
	var e fileEntry
	raw, err := os.ReadFile(path)
	if err != nil {
		return e, err
	}
	return e, json.Unmarshal(raw, &e)
}

// Get returns the entry for key. Undecodable and expired entries are deleted
// and count as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var e fileEntry
	if err := json.Unmarshal(raw, &e); err != nil || e.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set writes data under key. A zero ttl never expires.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := fileEntry{Key: key, Data: data}
	if ttl > 0 {
		e.Expires = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Stats describes the entries on disk.
type Stats struct {
	Entries int
	Bytes   int64
	Expired int
	// ByKind counts entries per key namespace, e.g. "artifact".
	ByKind map[string]int
}

// Stats walks the cache directory. Entries that cannot be decoded are
// counted under the kind "unknown".
func (c *FileCache) Stats() (Stats, error) {
	s := Stats{ByKind: map[string]int{}}
	now := time.Now()
	err := c.walk(func(path string, info fs.FileInfo) error {
		s.Entries++
		s.Bytes += info.Size()
		e, err := readEntry(path)
		if err != nil {
			s.ByKind["unknown"]++
			return nil
		}
		s.ByKind[Kind(e.Key)]++
		if e.expired(now) {
			s.Expired++
		}
		return nil
	})
	return s, err
}

// Clear deletes every entry whose kind is one of kinds, or every entry when
// kinds is empty. It returns the number of files removed.
func (c *FileCache) Clear(kinds ...string) (int, error) {
	return c.removeIf(func(e fileEntry, err error) bool {
		if len(kinds) == 0 {
			return true
		}
		if err != nil {
			return false
		}
		k := Kind(e.Key)
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
		return false
	})
}

// Prune deletes expired and unreadable entries.
func (c *FileCache) Prune() (int, error) {
	now := time.Now()
	return c.removeIf(func(e fileEntry, err error) bool {
		return err != nil || e.expired(now)
	})
}

func (c *FileCache) removeIf(match func(fileEntry, error) bool) (int, error) {
	n := 0
	err := c.walk(func(path string, _ fs.FileInfo) error {
		if !match(readEntry(path)) {
			return nil
		}
		if err := os.Remove(path); err == nil {
			n++
		}
		_ = os.Remove(filepath.Dir(path)) // only succeeds once the shard is empty
		return nil
	})
	return n, err
}

// walk calls fn for every entry file. A missing directory is an empty cache.
func (c *FileCache) walk(fn func(path string, info fs.FileInfo) error) error {
	return filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		return fn(path, info)
	})
}

func (c *FileCache) Dir() string { return c.dir }

func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".json")
}

// Kind returns the namespace of a cache key: the segment before the hash, so
// both "artifact:ab12" and "v1:artifact:ab12" are "artifact".
func Kind(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2]
}

var _ Cache = (*FileCache)(nil)
