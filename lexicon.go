package jieba

import (
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Lexicon is the prefix dictionary described in spec §3: a mapping from
// word to frequency, plus the ability to tell whether a string is a proper
// prefix of some longer entry even when it isn't itself a word.
//
// Per the Design Notes in §9 ("an implementation may instead use a trie...
// the observable contract is only that DAG construction can distinguish
// 'not a prefix of any word' from 'is a prefix but not itself a word'"),
// this is backed by a radix trie (github.com/tchap/go-patricia/v2) rather
// than a map with synthetic zero-frequency prefix rows. Every real word
// (including ones explicitly set to frequency 0 via DelWord) is inserted
// as a trie key holding its frequency; a string that is merely a prefix of
// some key, but was never itself inserted, answers Freq with (0, false)
// and HasPrefix with true via the trie's subtree match — exactly the two
// states invariant P1 requires callers be able to distinguish.
type Lexicon struct {
	mu          sync.RWMutex
	trie        *patricia.Trie
	total       uint64
	tags        map[string]string // user_word_tag_tab (§3)
	initialized bool

	source    string
	cacheFile string
}

func newLexicon() *Lexicon {
	return &Lexicon{
		trie: patricia.NewTrie(),
		tags: make(map[string]string),
	}
}

// Freq reports the stored frequency for word and whether word was ever
// inserted as a real entry (as opposed to merely being a prefix of one).
func (lx *Lexicon) Freq(word string) (uint32, bool) {
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	return lx.freqLocked(word)
}

func (lx *Lexicon) freqLocked(word string) (uint32, bool) {
	item := lx.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	return item.(uint32), true
}

// HasPrefix reports whether word is a key in the lexicon's prefix closure:
// either a real word itself, or a non-empty proper prefix of one. This is
// the "frag is a key of the lexicon" test DAG construction (§4.2) needs.
func (lx *Lexicon) HasPrefix(word string) bool {
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	return lx.trie.MatchSubtree(patricia.Prefix(word))
}

// Total returns the sum of frequencies of real words (invariant P2).
func (lx *Lexicon) Total() uint64 {
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	return lx.total
}

// Tag returns the user-assigned part-of-speech tag for word, if any.
func (lx *Lexicon) Tag(word string) (string, bool) {
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	t, ok := lx.tags[word]
	return t, ok
}

// setLocked inserts or updates word's frequency, adjusting total by the
// delta against any previous value, and records tag when non-empty. It must
// be called with mu held for writing.
func (lx *Lexicon) setLocked(word string, freq uint32, tag string) {
	prevFreq, hadPrev := lx.freqLocked(word)
	lx.trie.Set(patricia.Prefix(word), freq)
	if hadPrev {
		lx.total = lx.total - uint64(prevFreq) + uint64(freq)
	} else {
		lx.total += uint64(freq)
	}
	if tag != "" {
		lx.tags[word] = tag
	}
}

// loadFrom populates the lexicon from parsed (word, freq, tag) entries,
// replacing any existing content. It does not itself insert prefix rows:
// the trie's topology already answers HasPrefix for every proper prefix of
// every inserted word (invariant P1), which is the whole point of backing
// this with a radix trie instead of a flat map.
func (lx *Lexicon) loadFrom(entries []dictEntry) {
	lx.mu.Lock()
	defer lx.mu.Unlock()
	lx.trie = patricia.NewTrie()
	lx.total = 0
	lx.tags = make(map[string]string, len(entries))
	for _, e := range entries {
		lx.trie.Set(patricia.Prefix(e.word), e.freq)
		lx.total += uint64(e.freq)
		if e.tag != "" {
			lx.tags[e.word] = e.tag
		}
	}
}

// snapshot returns every real (word, freq) pair, used to build the binary
// cache and for cache-idempotence testing.
func (lx *Lexicon) snapshot() map[string]uint32 {
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	out := make(map[string]uint32)
	_ = lx.trie.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		out[string(prefix)] = item.(uint32)
		return nil
	})
	return out
}

// snapshotToTrie rebuilds a trie from a cache-loaded (word -> freq) map.
// Every real word's proper prefixes become reachable trie keys through
// go-patricia's own subtree structure, so no synthetic zero-freq rows need
// rebuilding here (invariant P1 falls out of the trie topology itself).
func snapshotToTrie(freq map[string]uint32) *patricia.Trie {
	trie := patricia.NewTrie()
	for word, f := range freq {
		trie.Set(patricia.Prefix(word), f)
	}
	return trie
}

func copyTags(tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}
