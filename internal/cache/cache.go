// Package cache stores evaluated expression results on disk so repeated
// batch runs skip the arithmetic.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"rational/internal/rational"
)

// schemaVersion is bumped whenever Payload changes shape.
const schemaVersion uint16 = 1

// App is the directory name under the user cache root.
const App = "rational"

// Key identifies one evaluation.
type Key [sha256.Size]byte

// KeyFor hashes the inputs that determine a result.
func KeyFor(expr, mode string, precision uint) Key {
	h := sha256.New()
	fmt.Fprintf(h, "v%d\x00%s\x00%s\x00%d", schemaVersion, mode, expr, precision)
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// Payload is the msgpack record written per key.
type Payload struct {
	Schema    uint16
	Expr      string
	Mode      string
	Precision uint
	Result    rational.Rat
	Decimal   string
	Stored    time.Time
}

// DiskCache is a directory of msgpack files. A nil *DiskCache is a valid
// cache that never hits. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns the cache under $XDG_CACHE_HOME/rational, falling back to
// ~/.cache/rational.
func Open() (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, App))
}

// OpenDir returns a cache rooted at dir, creating it if needed.
func OpenDir(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Key) string {
	return filepath.Join(c.dir, "results", key.String()+".mp")
}

// Put writes payload under key, replacing any previous entry atomically.
func (c *DiskCache) Put(key Key, payload *Payload) (err error) {
	if c == nil {
		return nil
	}
	payload.Schema = schemaVersion

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the entry for key into out. Missing entries and entries written
// by another schema version report false without error.
func (c *DiskCache) Get(key Key, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false, fmt.Errorf("cache entry %s: %w", key, err)
	}
	if payload.Schema != schemaVersion {
		return false, nil
	}
	*out = payload
	return true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// Stats counts the stored entries.
func (c *DiskCache) Stats() (entries int, bytes int64, err error) {
	if c == nil {
		return 0, 0, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir := filepath.Join(c.dir, "results")
	list, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	for _, e := range list {
		if e.IsDir() || filepath.Ext(e.Name()) != ".mp" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return 0, 0, err
		}
		entries++
		bytes += info.Size()
	}
	return entries, bytes, nil
}
