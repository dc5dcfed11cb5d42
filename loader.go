package jieba

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// dictEntry is one parsed line of a dictionary file: word, frequency, and
// an optional part-of-speech tag (spec §4.1/§6).
type dictEntry struct {
	word string
	freq uint32
	tag  string
}

// parseDictLines reads name's lines as the lexicon file format described in
// spec §6 ("<word> <freq>[ <tag>]", one entry per line, single-space
// separated fields) and returns the parsed entries. A BOM is tolerated on
// the first line only, matching load_userdict's original behavior
// (EXPANSION-C); gen_pfdict itself never saw a BOM'd default dictionary in
// the original, but tolerating it here costs nothing and keeps the two
// loaders consistent.
func parseDictLines(r io.Reader, name string) ([]dictEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	entries := make([]dictEntry, 0, 1024)
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
		if !utf8.ValidString(line) {
			return nil, &DictNotUTF8Error{File: name}
		}
		entry, err := parseDictLine(line)
		if err != nil {
			return nil, &InvalidDictEntryError{File: name, Line: lineno, Text: line}
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "jieba: reading %s", name)
	}
	logger.Debug().
		Str("file", name).
		Int("entries", len(entries)).
		Msg("parsed dictionary lines")
	return entries, nil
}

// parseDictLine parses a single "word freq[ tag]" line. Fields are split on
// a single space per the original's `line.split(' ')[:2]`/re_userdict
// behavior — word itself must be whitespace-free, so splitting on the
// first space(s) is unambiguous.
func parseDictLine(line string) (dictEntry, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return dictEntry{}, errors.New("missing frequency field")
	}
	word := parts[0]
	if word == "" {
		return dictEntry{}, errors.New("empty word field")
	}
	freq, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return dictEntry{}, errors.Wrap(err, "invalid frequency field")
	}
	tag := ""
	if len(parts) == 3 {
		tag = strings.TrimSpace(parts[2])
	}
	return dictEntry{word: word, freq: uint32(freq), tag: tag}, nil
}

// parseUserDictLine parses a load_userdict line, where frequency and tag
// are both optional (spec §4.7/§6: "(word, freq?, tag?)"). Unlike the
// default dictionary format, a bare word with no frequency is valid; its
// frequency is computed later via SuggestFreq.
func parseUserDictLine(line string) (word string, freq *uint32, tag string, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, "", errors.New("empty line")
	}
	word = fields[0]
	switch len(fields) {
	case 1:
		return word, nil, "", nil
	case 2:
		f, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return "", nil, "", errors.Wrap(err, "invalid frequency field")
		}
		v := uint32(f)
		return word, &v, "", nil
	case 3:
		f, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return "", nil, "", errors.Wrap(err, "invalid frequency field")
		}
		v := uint32(f)
		return word, &v, fields[2], nil
	default:
		return "", nil, "", errors.New("too many fields")
	}
}

func humanizeBytes(n int64) string {
	return humanize.Bytes(uint64(n))
}
