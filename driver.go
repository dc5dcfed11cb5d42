package jieba

import (
	"regexp"
	"unicode/utf8"

	"github.com/hanzi-nlp/jieba/finalseg"
)

// Han-run/skip regex pairs per spec §4.5. Precise mode folds Latin letters,
// digits, and a handful of "word-ish" punctuation into the Han-run itself
// (so "AT&T" sitting next to Chinese text is captured as one block and its
// ASCII buffering runs inside cutPreciseNoHMM/cutPreciseHMM); full mode
// only ever captures Han characters as a run, per the original's re_han_cut_all.
var (
	preciseHanRun = regexp.MustCompile(`[\x{4E00}-\x{9FD5}A-Za-z0-9+#&._%\-]+`)
	preciseSkip   = regexp.MustCompile(`\r\n|\s`)

	fullHanRun = regexp.MustCompile(`[\x{4E00}-\x{9FD5}]+`)
	fullSkip   = regexp.MustCompile(`[^A-Za-z0-9+#\n]`)
)

// textSpan is one contiguous piece of the driver's regex partition: either
// matched by the splitting pattern (matched == true; a Han-run or a skip
// fragment, depending on which call produced it) or the text between matches.
type textSpan struct {
	text    string
	matched bool
}

// splitByRegex partitions text into alternating matched/unmatched spans,
// in order, dropping no bytes (spec §8 property 1, Cover).
func splitByRegex(text string, re *regexp.Regexp) []textSpan {
	idx := re.FindAllStringIndex(text, -1)
	if len(idx) == 0 {
		if text == "" {
			return nil
		}
		return []textSpan{{text: text, matched: false}}
	}
	spans := make([]textSpan, 0, len(idx)*2+1)
	prev := 0
	for _, pair := range idx {
		if pair[0] > prev {
			spans = append(spans, textSpan{text: text[prev:pair[0]], matched: false})
		}
		spans = append(spans, textSpan{text: text[pair[0]:pair[1]], matched: true})
		prev = pair[1]
	}
	if prev < len(text) {
		spans = append(spans, textSpan{text: text[prev:], matched: false})
	}
	return spans
}

// cutMode selects which block cutter the driver applies to Han-runs.
type cutMode int

const (
	modeFull cutMode = iota
	modePreciseNoHMM
	modePreciseHMM
)

// cut is the shared engine behind Cut/CutForSearch: split into Han-runs vs
// other text per the mode's regex dialect (§4.5), cut each Han-run with the
// chosen block cutter, and pass other text through the mode's skip regex.
//
// It takes no lock of its own: buildDAG/computeRoute/Freq/HasPrefix/Total
// each acquire the Lexicon's RWMutex for exactly the read they need. Holding
// an outer RLock across this whole call would recursively read-lock the
// same mutex from inner calls, which sync.RWMutex does not support — a
// writer (AddWord/DelWord/SetDictionary) blocked in Lock() between the two
// RLocks deadlocks every reader behind it (spec §5's concurrent-cuts-vs-
// exclusive-mutation model).
func (s *Segmenter) cut(text string, mode cutMode) []string {
	hanRun, skip := preciseHanRun, preciseSkip
	if mode == modeFull {
		hanRun, skip = fullHanRun, fullSkip
	}

	var out []string
	for _, blk := range splitByRegex(text, hanRun) {
		if blk.matched {
			out = append(out, s.cutHanBlock(blk.text, mode)...)
			continue
		}
		out = append(out, cutOtherBlock(blk.text, skip, mode)...)
	}
	return out
}

func (s *Segmenter) cutHanBlock(text string, mode cutMode) []string {
	run := []rune(text)
	switch mode {
	case modeFull:
		return cutFull(s.lx, run)
	case modePreciseNoHMM:
		return cutPreciseNoHMM(s.lx, run)
	default:
		return cutPreciseHMM(s.lx, run, s.hmm)
	}
}

// cutOtherBlock re-splits a non-Han-run span by the mode's skip pattern:
// fragments the skip pattern matches are yielded whole (preserving
// whitespace); the rest is yielded character-by-character in precise mode,
// or whole in full mode (spec §4.5).
func cutOtherBlock(text string, skip *regexp.Regexp, mode cutMode) []string {
	var out []string
	for _, span := range splitByRegex(text, skip) {
		if span.matched {
			out = append(out, span.text)
			continue
		}
		if mode == modeFull {
			out = append(out, span.text)
			continue
		}
		for _, r := range span.text {
			out = append(out, string(r))
		}
	}
	return out
}

// cutFull implements full mode (spec §4.5, §9): every DAG candidate longer
// than one character is emitted, plus a deduplicated single-character
// fallback. oldJ is set to the end index of every token emitted, in the
// single-candidate branch and the multi-candidate branch alike; a position
// that emits nothing leaves it unchanged — see SPEC_FULL.md's note on
// __cut_all, and the worked example in spec §8.
func cutFull(lx *Lexicon, run []rune) []string {
	dag := buildDAG(lx, run)
	n := len(run)
	oldJ := -1
	var out []string
	for k := 0; k < n; k++ {
		ends := dag[k]
		if len(ends) == 1 && k > oldJ {
			e := ends[0]
			out = append(out, string(run[k:e+1]))
			oldJ = e
			continue
		}
		for _, e := range ends {
			if e > k {
				out = append(out, string(run[k:e+1]))
				oldJ = e
			}
		}
	}
	return out
}

// isASCIIAlnum reports whether r is a Latin letter or digit, per spec
// §4.5's precise-mode-without-HMM buffering rule.
func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// cutPreciseNoHMM implements precise mode with HMM disabled (spec §4.5):
// walk the DP route left to right, buffering consecutive length-1
// ASCII-alphanumeric emissions into a single token (undoing the DAG's
// necessarily per-character split of runs like "good"). Any other character
// ends the buffer, so "AT&T" comes out as "AT", "&", "T".
func cutPreciseNoHMM(lx *Lexicon, run []rune) []string {
	dag := buildDAG(lx, run)
	route := computeRoute(lx, run, dag)

	var out []string
	var buf []rune
	flush := func() {
		if len(buf) > 0 {
			out = append(out, string(buf))
			buf = nil
		}
	}

	n := len(run)
	for k := 0; k < n; {
		y := route[k].end + 1
		if y-k == 1 && isASCIIAlnum(run[k]) {
			buf = append(buf, run[k])
		} else {
			flush()
			out = append(out, string(run[k:y]))
		}
		k = y
	}
	flush()
	return out
}

// cutPreciseHMM implements precise mode with HMM enabled (spec §4.5): walk
// the DP route left to right, buffering consecutive length-1 emissions
// (whatever their script) and flushing them through the HMM once a
// longer DAG word interrupts the run of singles, or at end of input.
func cutPreciseHMM(lx *Lexicon, run []rune, hmm *finalseg.HMM) []string {
	dag := buildDAG(lx, run)
	route := computeRoute(lx, run, dag)

	var out []string
	var buf []rune
	flush := func() {
		if len(buf) == 0 {
			return
		}
		switch {
		case len(buf) == 1:
			out = append(out, string(buf))
		default:
			if freq, ok := lx.Freq(string(buf)); ok && freq > 0 {
				for _, r := range buf {
					out = append(out, string(r))
				}
			} else {
				out = append(out, hmm.Cut(string(buf))...)
			}
		}
		buf = nil
	}

	n := len(run)
	for k := 0; k < n; {
		y := route[k].end + 1
		if y-k == 1 {
			buf = append(buf, run[k])
		} else {
			flush()
			out = append(out, string(run[k:y]))
		}
		k = y
	}
	flush()
	return out
}

// Cut segments text per spec §4.5/§6. cutAll selects full mode; otherwise
// precise mode, with or without the HMM fallback per useHMM.
func (s *Segmenter) Cut(text string, cutAll, useHMM bool) []string {
	if err := s.ensureInitialized(); err != nil {
		logger.Warn().Err(err).Msg("Cut called on an uninitialized segmenter")
	}
	mode := modePreciseNoHMM
	switch {
	case cutAll:
		mode = modeFull
	case useHMM:
		mode = modePreciseHMM
	}
	return s.cut(text, mode)
}

// CutForSearch implements search mode (spec §4.6): precise-mode tokens,
// each preceded by its own 2-gram and (for length>3) 3-gram lexicon
// sub-words, in left-to-right order within the word.
func (s *Segmenter) CutForSearch(text string, useHMM bool) []string {
	if err := s.ensureInitialized(); err != nil {
		logger.Warn().Err(err).Msg("CutForSearch called on an uninitialized segmenter")
	}
	mode := modePreciseNoHMM
	if useHMM {
		mode = modePreciseHMM
	}
	words := s.cut(text, mode)

	var out []string
	for _, w := range words {
		wr := []rune(w)
		if len(wr) > 2 {
			for i := 0; i+2 <= len(wr); i++ {
				gram := string(wr[i : i+2])
				if freq, ok := s.lx.Freq(gram); ok && freq > 0 {
					out = append(out, gram)
				}
			}
		}
		if len(wr) > 3 {
			for i := 0; i+3 <= len(wr); i++ {
				gram := string(wr[i : i+3])
				if freq, ok := s.lx.Freq(gram); ok && freq > 0 {
					out = append(out, gram)
				}
			}
		}
		out = append(out, w)
	}
	return out
}

// Token is one entry of Tokenize's output: a word plus its code-point
// offsets into the original input (spec §4.6, §8 property 2).
type Token struct {
	Word  string
	Start int
	End int
}

// TokenizeMode selects whether Tokenize re-granulates like CutForSearch.
type TokenizeMode int

const (
	TokenizeDefault TokenizeMode = iota
	TokenizeSearch
)

// Tokenize yields (word, start, end) triples with code-point offsets into
// text, per spec §4.6. Non-UTF-8 input is rejected before any work is done.
func (s *Segmenter) Tokenize(text string, mode TokenizeMode, useHMM bool) ([]Token, error) {
	if !isValidUTF8(text) {
		return nil, &NonUnicodeInputError{}
	}
	if err := s.ensureInitialized(); err != nil {
		logger.Warn().Err(err).Msg("Tokenize called on an uninitialized segmenter")
	}

	cutMode := modePreciseNoHMM
	if useHMM {
		cutMode = modePreciseHMM
	}
	words := s.cut(text, cutMode)

	var out []Token
	offset := 0
	for _, w := range words {
		wr := []rune(w)
		start := offset
		end := offset + len(wr)

		if mode == TokenizeSearch {
			if len(wr) > 2 {
				for i := 0; i+2 <= len(wr); i++ {
					gram := string(wr[i : i+2])
					if freq, ok := s.lx.Freq(gram); ok && freq > 0 {
						out = append(out, Token{Word: gram, Start: start + i, End: start + i + 2})
					}
				}
			}
			if len(wr) > 3 {
				for i := 0; i+3 <= len(wr); i++ {
					gram := string(wr[i : i+3])
					if freq, ok := s.lx.Freq(gram); ok && freq > 0 {
						out = append(out, Token{Word: gram, Start: start + i, End: start + i + 3})
					}
				}
			}
		}

		out = append(out, Token{Word: w, Start: start, End: end})
		offset = end
	}
	return out, nil
}

func isValidUTF8(s string) bool {
	return utf8.ValidString(s)
}
