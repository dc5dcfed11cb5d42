// Package jieba implements the segmentation engine described in
// SPEC_FULL.md: a prefix-trie lexicon, a DAG builder over Han-script runs,
// a dynamic-programming route selector, and a 4-state HMM fallback for
// words the lexicon doesn't know, combined by a driver offering full,
// precise, and search cut modes plus position-bearing tokenization.
//
// It is a generalization of github.com/ericlingit/jieba-go: same overall
// shape (Tokenizer -> Segmenter, prefixDictionary -> Lexicon,
// hiddenMarkovModel -> finalseg.HMM), reworked to cover the full Lexicon
// Mutation API, a trie-backed prefix closure, and a documented binary
// cache contract.
package jieba

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/hanzi-nlp/jieba/finalseg"
	"github.com/pkg/errors"
)

// Config holds the construction-time knobs described in spec §6.
type Config struct {
	// Dictionary is the path to a lexicon file in the format documented in
	// spec §6. Required: this repo does not ship a default lexicon file
	// (spec §1, Non-goals).
	Dictionary string
	// CacheFile overrides the binary cache's name or path. Relative values
	// are resolved against TmpDir.
	CacheFile string
	// TmpDir overrides the directory used for cache reads/writes. Defaults
	// to os.TempDir().
	TmpDir string
}

// Option configures a Segmenter at construction time.
type Option func(*Config)

// WithCacheFile overrides the binary cache's name or path.
func WithCacheFile(name string) Option { return func(c *Config) { c.CacheFile = name } }

// WithTmpDir overrides the directory used for cache reads/writes.
func WithTmpDir(dir string) Option { return func(c *Config) { c.TmpDir = dir } }

// Segmenter is the top-level entry point: a Lexicon, an HMM fallback, and
// the configuration used to (re)initialize the Lexicon from a dictionary
// file (spec §4.1, §4.7).
type Segmenter struct {
	initMu sync.Mutex
	cfg    Config

	lx  *Lexicon
	hmm *finalseg.HMM
}

// New constructs a Segmenter reading its lexicon from dictionary, applying
// any options. The Lexicon is not populated until the first call to Cut,
// CutForSearch, Tokenize, or an explicit call to Initialize.
func New(dictionary string, opts ...Option) *Segmenter {
	cfg := Config{Dictionary: dictionary}
	for _, o := range opts {
		o(&cfg)
	}
	return &Segmenter{
		cfg: cfg,
		lx:  newLexicon(),
		hmm: finalseg.NewDefault(),
	}
}

// ensureInitialized lazily runs Initialize on first use, matching the
// original's "initialize on first cut" behavior (spec §4.1 step 4).
func (s *Segmenter) ensureInitialized() error {
	s.lx.mu.RLock()
	ready := s.lx.initialized
	s.lx.mu.RUnlock()
	if ready {
		return nil
	}
	return s.Initialize()
}

// Initialize runs the Dictionary Loader protocol (spec §4.1): resolve the
// dictionary path, attempt the binary cache, fall back to parsing the text
// file, and (on cache miss) persist a fresh cache. Idempotent and
// serialized per Segmenter instance; concurrent loads of the same source
// path across Segmenter instances share a path-keyed lock (cache.go).
func (s *Segmenter) Initialize() error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	s.lx.mu.RLock()
	alreadyReady := s.lx.initialized
	s.lx.mu.RUnlock()
	if alreadyReady {
		return nil
	}

	absPath, err := filepath.Abs(s.cfg.Dictionary)
	if err != nil {
		return &DictNotFoundError{Path: s.cfg.Dictionary, Err: err}
	}

	lock := lockFor(absPath)
	lock.Lock()
	defer lock.Unlock()

	srcBytes, err := os.ReadFile(absPath)
	if err != nil {
		return &DictNotFoundError{Path: absPath, Err: err}
	}
	logger.Debug().Str("dictionary", absPath).Str("size", humanizeBytes(int64(len(srcBytes)))).Msg("read dictionary source")

	cp := cachePath(s.cfg.TmpDir, s.cfg.CacheFile, absPath, false)
	if snap, ok := loadCache(cp, absPath, srcBytes, false); ok {
		s.lx.mu.Lock()
		s.lx.trie = snapshotToTrie(snap.Freq)
		s.lx.total = snap.Total
		s.lx.tags = snap.Tags
		s.lx.source = absPath
		s.lx.cacheFile = cp
		s.lx.initialized = true
		s.lx.mu.Unlock()
		return nil
	}

	entries, err := parseDictLines(newByteReader(srcBytes), absPath)
	if err != nil {
		return err
	}
	s.lx.loadFrom(entries)
	s.lx.mu.Lock()
	s.lx.source = absPath
	s.lx.cacheFile = cp
	s.lx.initialized = true
	s.lx.mu.Unlock()

	snap := cacheSnapshot{
		Freq:     s.lx.snapshot(),
		Total:    s.lx.Total(),
		Tags:     copyTags(s.lx.tags),
		Checksum: xxhashSum(srcBytes),
	}
	if err := writeCache(cp, snap); err != nil {
		logger.Warn().Err(errors.Wrap(err, "initialize")).Msg("cache write failed, continuing without cache")
	}
	return nil
}
