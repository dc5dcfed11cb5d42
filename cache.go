package jieba

import (
	"bytes"
	"crypto/md5"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

func newByteReader(b []byte) io.Reader { return bytes.NewReader(b) }

func xxhashSum(b []byte) uint64 { return xxhash.Sum64(b) }

// cacheSnapshot is the documented binary cache contract (spec §6): a pair
// (freq_map, total), plus an xxhash-64 checksum of the source dictionary's
// bytes (EXPANSION-B) that strengthens the mtime-based freshness check.
type cacheSnapshot struct {
	Freq     map[string]uint32
	Total    uint64
	Tags     map[string]string
	Checksum uint64
}

// pathLocks serializes cache writers for the same source path across
// multiple Lexicon/Segmenter instances in one process, per spec §4.1/§5:
// "concurrent loads of the same source path across multiple Lexicon
// instances share a path-keyed lock to avoid double cache writes." This
// mirrors the original's process-global DICT_WRITING map.
var pathLocks sync.Map // map[string]*sync.Mutex

func lockFor(path string) *sync.Mutex {
	v, _ := pathLocks.LoadOrStore(path, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// cachePath computes the binary cache location for a dictionary source,
// per spec §4.1: "<tmp_dir>/jieba.cache" for the default dictionary, or
// "<tmp_dir>/jieba.u<hex-md5-of-path>.cache" for a custom one.
func cachePath(tmpDir, cacheFileOverride, absPath string, isDefault bool) string {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	if cacheFileOverride != "" {
		if filepath.IsAbs(cacheFileOverride) {
			return cacheFileOverride
		}
		return filepath.Join(tmpDir, cacheFileOverride)
	}
	name := "jieba.cache"
	if !isDefault {
		sum := md5.Sum([]byte(absPath))
		name = fmt.Sprintf("jieba.u%s.cache", hex.EncodeToString(sum[:]))
	}
	return filepath.Join(tmpDir, name)
}

// loadCache attempts to read and validate a binary snapshot for sourcePath.
// It returns ok=false (never an error) when the cache is absent, stale, or
// corrupt — a cache miss is always recoverable by rebuilding from text, per
// spec §4.1 step 3.
func loadCache(cachePath, sourcePath string, sourceBytes []byte, isDefault bool) (cacheSnapshot, bool) {
	cacheInfo, err := os.Stat(cachePath)
	if err != nil {
		return cacheSnapshot{}, false
	}
	if !isDefault {
		srcInfo, err := os.Stat(sourcePath)
		if err != nil || !cacheInfo.ModTime().After(srcInfo.ModTime()) {
			return cacheSnapshot{}, false
		}
	}

	f, err := os.Open(cachePath)
	if err != nil {
		return cacheSnapshot{}, false
	}
	defer f.Close()

	var snap cacheSnapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		logger.Debug().Err(err).Str("cache", cachePath).Msg("cache decode failed, rebuilding")
		return cacheSnapshot{}, false
	}
	if sourceBytes != nil && snap.Checksum != xxhash.Sum64(sourceBytes) {
		logger.Debug().Str("cache", cachePath).Msg("cache checksum mismatch, rebuilding")
		return cacheSnapshot{}, false
	}
	logger.Debug().Str("cache", cachePath).Msg("loaded lexicon from cache")
	return snap, true
}

// writeCache atomically persists snap to cachePath via tempfile+rename, per
// spec §4.1/§5. Failure is non-fatal: it's logged through the package
// logger and returned as a *CacheWriteFailedError purely so callers that
// want to observe it can (Initialize/LoadUserdict never propagate it).
func writeCache(cachePath string, snap cacheSnapshot) error {
	dir := filepath.Dir(cachePath)
	tmp, err := os.CreateTemp(dir, ".jieba-cache-*")
	if err != nil {
		err = &CacheWriteFailedError{Path: cachePath, Err: err}
		logger.Warn().Err(err).Msg("cache write failed")
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	enc := gob.NewEncoder(tmp)
	if err := enc.Encode(snap); err != nil {
		tmp.Close()
		err = &CacheWriteFailedError{Path: cachePath, Err: err}
		logger.Warn().Err(err).Msg("cache write failed")
		return err
	}
	if err := tmp.Close(); err != nil {
		err = &CacheWriteFailedError{Path: cachePath, Err: err}
		logger.Warn().Err(err).Msg("cache write failed")
		return err
	}

	if err := os.Rename(tmpPath, cachePath); err != nil {
		// Cross-device rename: fall back to copy-then-unlink (spec §4.1).
		if copyErr := copyFile(tmpPath, cachePath); copyErr != nil {
			err = &CacheWriteFailedError{Path: cachePath, Err: errors.Wrap(copyErr, "fallback copy failed")}
			logger.Warn().Err(err).Msg("cache write failed")
			return err
		}
		os.Remove(tmpPath)
	}
	logger.Debug().Str("cache", cachePath).Time("at", time.Now()).Msg("wrote lexicon cache")
	return nil
}

func copyFile(src, dst string) error {
	b, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	tmp := dst + ".tmp-copy"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}
