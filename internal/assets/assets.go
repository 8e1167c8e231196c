// Package assets loads and caches guide assets.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/VincentWang001/hairgl/internal/hair"
	"github.com/VincentWang001/hairgl/pkg/formats"
)

// ErrNotFound is returned when no search location holds the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager resolves .hgl files against a list of directories and keeps every
// parsed asset. Assets are immutable, so one copy is shared by all instances.
type Manager struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a manager that only resolves paths as given.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddSearchDir adds a directory to resolve relative paths against.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddSearchDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding search dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding search dir %s: not a directory", dir)
	}

	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
	return nil
}

// Load returns the guide asset stored at path.
func (m *Manager) Load(path string) (*hair.Asset, error) {
	if a, ok := m.cache.Get(path); ok {
		return a, nil
	}

	resolved, err := m.resolve(path)
	if err != nil {
		return nil, err
	}

	h, err := formats.ParseHGLFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", resolved, err)
	}
	a, err := hair.AssetFromHGL(h)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", resolved, err)
	}

	m.cache.Set(path, a)
	return a, nil
}

// Generate returns a synthetic grid asset.
func (m *Manager) Generate(spec formats.GridSpec) (*hair.Asset, error) {
	key := fmt.Sprintf("grid:%dx%dx%d:%g:%g", spec.Columns, spec.Rows, spec.Vertices, spec.Spacing, spec.Length)
	if a, ok := m.cache.Get(key); ok {
		return a, nil
	}

	h, err := formats.NewGridHGL(spec)
	if err != nil {
		return nil, fmt.Errorf("generating grid: %w", err)
	}
	a, err := hair.AssetFromHGL(h)
	if err != nil {
		return nil, fmt.Errorf("generating grid: %w", err)
	}

	m.cache.Set(key, a)
	return a, nil
}

func (m *Manager) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.dirs) - 1; i >= 0; i-- {
		candidate := filepath.Join(m.dirs[i], path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Close drops the search directories and cached assets.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dirs = nil
	m.cache.Clear()
}

// Cache is an in-memory store of parsed assets.
type Cache struct {
	data map[string]*hair.Asset
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*hair.Asset),
	}
}

// Get retrieves an asset from the cache.
func (c *Cache) Get(key string) (*hair.Asset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return a, ok
}

// Set stores an asset.
func (c *Cache) Set(key string, a *hair.Asset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = a
}

// Clear empties the cache and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*hair.Asset)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
