package jieba

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// AddWord inserts or updates word in the lexicon (spec §4.7). If freq is
// nil, a frequency is computed via SuggestFreq(word, false) — the same
// value a caller would get by calling SuggestFreq directly, just applied
// automatically. A zero-frequency insertion (explicit 0 or del_word)
// additionally forces every character of word into the HMM's force-split
// set, so the word can never reappear glued together in HMM output.
func (s *Segmenter) AddWord(word string, freq *uint32, tag string) error {
	if err := s.ensureInitialized(); err != nil {
		return err
	}

	f := uint32(0)
	if freq != nil {
		f = *freq
	} else {
		f = s.SuggestFreq([]string{word}, false)
	}

	s.lx.mu.Lock()
	s.lx.setLocked(word, f, tag)
	s.lx.mu.Unlock()

	if f == 0 {
		s.hmm.AddForceSplit(word)
	}
	return nil
}

// DelWord removes word from segmentation by setting its frequency to 0 and
// force-splitting its characters (spec §4.7: "equivalent to add_word(w, 0)").
func (s *Segmenter) DelWord(word string) error {
	zero := uint32(0)
	return s.AddWord(word, &zero, "")
}

// SuggestFreq computes (and, if tune, applies) a frequency for a word so
// that it either wins (single-segment form) or loses (multi-segment form)
// against its current precise-mode-no-HMM split (spec §4.7).
//
// segment with len(segment) == 1 is the single-string form: "make word
// likely enough to win as one token". segment with len(segment) > 1 is the
// pre-split form: "make the concatenation unlikely enough to be split into
// exactly these pieces".
func (s *Segmenter) SuggestFreq(segment []string, tune bool) uint32 {
	_ = s.ensureInitialized()

	total := s.lx.Total()
	ftotal := float64(total)
	if ftotal == 0 {
		ftotal = 1
	}

	word := strings.Join(segment, "")
	var newFreq uint32

	if len(segment) == 1 {
		p := 1.0
		for _, seg := range cutNoHMMPieces(s, word) {
			f, ok := s.lx.Freq(seg)
			tf := float64(f)
			if !ok {
				tf = 1
			}
			p *= tf / ftotal
		}
		candidate := uint64(p*float64(total)) + 1
		cur, ok := s.lx.Freq(word)
		floor := uint64(1)
		if ok {
			floor = uint64(cur)
		}
		if candidate < floor {
			candidate = floor
		}
		newFreq = uint32(candidate)
	} else {
		p := 1.0
		for _, seg := range segment {
			f, ok := s.lx.Freq(seg)
			tf := float64(f)
			if !ok {
				tf = 1
			}
			p *= tf / ftotal
		}
		candidate := uint64(p * float64(total))
		cur, _ := s.lx.Freq(word)
		ceiling := uint64(cur)
		if candidate > ceiling {
			candidate = ceiling
		}
		newFreq = uint32(candidate)
	}

	if tune {
		_ = s.AddWord(word, &newFreq, "")
	}
	return newFreq
}

// cutNoHMMPieces runs precise-mode-no-HMM segmentation directly against the
// Lexicon, bypassing Segmenter.Cut's initialization check (SuggestFreq is
// always called with the lexicon already initialized by its caller).
func cutNoHMMPieces(s *Segmenter, text string) []string {
	return s.cut(text, modePreciseNoHMM)
}

// LoadUserdict reads the file at path as a user dictionary: one
// "word[ freq][ tag]" entry per line, frequency and tag both optional
// (spec §4.7). A UTF-8 BOM on the first line is tolerated and stripped. It
// takes a file path only; it does not accept an already-open reader.
func (s *Segmenter) LoadUserdict(path string) error {
	if err := s.ensureInitialized(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return &DictNotFoundError{Path: path, Err: err}
	}
	defer f.Close()
	return s.loadUserdictFrom(f, path)
}

func (s *Segmenter) loadUserdictFrom(r io.Reader, name string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if lineno == 1 {
			line = strings.TrimPrefix(line, "\xef\xbb\xbf")
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		word, freq, tag, err := parseUserDictLine(line)
		if err != nil {
			return &InvalidDictEntryError{File: name, Line: lineno, Text: line}
		}
		if err := s.AddWord(word, freq, tag); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "jieba: reading user dictionary %s", name)
	}
	return nil
}

var setDictionaryMu sync.Mutex

// SetDictionary atomically swaps the dictionary path this Segmenter loads
// from and clears its initialized state, so the next Cut/Initialize call
// rebuilds the Lexicon from the new source (spec §4.7).
func (s *Segmenter) SetDictionary(path string) error {
	setDictionaryMu.Lock()
	defer setDictionaryMu.Unlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		return &DictNotFoundError{Path: path, Err: err}
	}

	s.initMu.Lock()
	defer s.initMu.Unlock()
	s.cfg.Dictionary = abs
	s.lx.mu.Lock()
	s.lx.initialized = false
	s.lx.mu.Unlock()
	return nil
}
