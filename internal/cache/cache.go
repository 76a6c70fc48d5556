package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"time"
)

// Cache is the process-wide store for loaded-and-derived tables. Entries are
// immutable once set; invalidation happens only through Delete/Clear (the
// explicit refresh hook), never by mutation.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// TableKey derives a cache key from the identity of a source file: its path,
// size and modification time. A rewritten artifact therefore misses the old
// entry automatically.
func TableKey(path string, info fs.FileInfo) string {
	id := fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
	hash := sha256.Sum256([]byte(id))
	return "gbdkit:v1:" + hex.EncodeToString(hash[:])
}
