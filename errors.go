package jieba

import "fmt"

// InvalidDictEntryError reports a malformed line in a dictionary file:
// missing fields, or a frequency that doesn't parse as an unsigned integer.
type InvalidDictEntryError struct {
	File string
	Line int
	Text string
}

func (e *InvalidDictEntryError) Error() string {
	return fmt.Sprintf("jieba: invalid dictionary entry in %s at line %d: %q", e.File, e.Line, e.Text)
}

// DictNotUTF8Error reports a dictionary (or user dictionary) file whose
// bytes don't decode as UTF-8.
type DictNotUTF8Error struct {
	File string
}

func (e *DictNotUTF8Error) Error() string {
	return fmt.Sprintf("jieba: dictionary file %s must be UTF-8", e.File)
}

// DictNotFoundError reports a dictionary path that could not be opened.
type DictNotFoundError struct {
	Path string
	Err  error
}

func (e *DictNotFoundError) Error() string {
	return fmt.Sprintf("jieba: dictionary file does not exist: %s: %v", e.Path, e.Err)
}

func (e *DictNotFoundError) Unwrap() error { return e.Err }

// NonUnicodeInputError is raised by Tokenize before any segmentation work
// starts, when the caller's input isn't valid UTF-8.
type NonUnicodeInputError struct{}

func (e *NonUnicodeInputError) Error() string {
	return "jieba: the input parameter should be valid UTF-8 text"
}

// CacheWriteFailedError wraps a failure while persisting the binary cache.
// It is never returned to callers of Initialize/LoadUserdict — the loader
// logs it and swallows it, per the cache-is-an-optimization contract.
type CacheWriteFailedError struct {
	Path string
	Err  error
}

func (e *CacheWriteFailedError) Error() string {
	return fmt.Sprintf("jieba: failed to write cache %s: %v", e.Path, e.Err)
}

func (e *CacheWriteFailedError) Unwrap() error { return e.Err }
