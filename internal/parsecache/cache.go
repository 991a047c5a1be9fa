// Package parsecache is a content-hash-keyed disk cache for a parsed
// .bgui file, so a host that re-opens the same file repeatedly (a viewer
// reloading on every keystroke of an editor pane) doesn't re-run the
// scanner. Adapted from a module compiler's disk cache: same key/payload/
// atomic-rename shape, applied to a parse result instead of module
// metadata.
package parsecache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"

	"bgui"
	"bgui/internal/config"
)

// schemaVersion guards against stale payloads from an earlier cache
// format; bump it whenever storedPayload's shape changes.
const schemaVersion uint16 = 1

// Digest is a content hash: the input bytes plus the heuristics that
// would affect how they're scanned.
type Digest [sha256.Size]byte

// Cache is a directory of msgpack-encoded ParsedFile payloads keyed by
// content digest. It is safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	dir   string
	group singleflight.Group
}

// Open creates (if needed) and returns a disk cache rooted at dir.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// ComputeDigest computes the cache key for data under the given heuristics: the
// heuristics participate because a different Heuristics value can yield a
// different ParsedFile from identical bytes.
func ComputeDigest(data []byte, h config.Heuristics) Digest {
	hash := sha256.New()
	hash.Write(data)
	writeHeuristics(hash, h)
	var out Digest
	copy(out[:], hash.Sum(nil))
	return out
}

func writeHeuristics(w io.Writer, h config.Heuristics) {
	buf := []byte{
		h.MaxNameLength,
		h.ResourceFlagsLength,
		h.MaxResourceStringLength,
		h.MaxManifestStringLength,
	}
	w.Write(buf)
	writeU32(w, h.MaxContainerID)
	writeU32(w, h.MaxManifestStringCount)
	writeU32(w, h.RegisterSignatureScanWindow)
}

func writeU32(w io.Writer, v uint32) {
	w.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Get looks up a previously cached ParsedFile, returning ok=false on a
// miss (including a version mismatch, treated as a miss rather than an
// error).
func (c *Cache) Get(key Digest) (*bgui.ParsedFile, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var stored storedPayload
	if err := msgpack.NewDecoder(f).Decode(&stored); err != nil {
		return nil, false, err
	}
	if stored.Schema != schemaVersion {
		return nil, false, nil
	}
	return stored.ParsedFile, true, nil
}

// storedPayload is the on-disk shape: a schema tag plus the parsed
// result, so a format change can be detected and treated as a cache miss.
type storedPayload struct {
	Schema     uint16
	ParsedFile *bgui.ParsedFile
}

// Put writes pf to the cache under key, atomically (temp file then
// rename), so a concurrent reader never observes a partially-written
// file.
func (c *Cache) Put(key Digest, pf *bgui.ParsedFile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dst := c.pathFor(key)
	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := msgpack.NewEncoder(f).Encode(storedPayload{Schema: schemaVersion, ParsedFile: pf}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}

// GetOrParse returns the cached ParsedFile for data under h if present,
// otherwise parses it, stores the result, and returns it. Concurrent
// callers with the same digest collapse into a single parse via
// singleflight.
func (c *Cache) GetOrParse(data []byte, h config.Heuristics) (*bgui.ParsedFile, error) {
	key := ComputeDigest(data, h)
	if pf, ok, err := c.Get(key); err != nil {
		return nil, err
	} else if ok {
		return pf, nil
	}

	v, err, _ := c.group.Do(hex.EncodeToString(key[:]), func() (interface{}, error) {
		pf, err := bgui.ParseWithHeuristics(data, h)
		if err != nil {
			return nil, err
		}
		if putErr := c.Put(key, pf); putErr != nil {
			return pf, nil // serve the parse even if the cache write failed
		}
		return pf, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*bgui.ParsedFile), nil
}
