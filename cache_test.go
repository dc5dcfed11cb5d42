package jieba

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeDict(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// touchLater advances path's mtime into the future so a subsequent rewrite
// is unambiguously newer than any cache already written for it, without
// depending on filesystem timestamp resolution or wall-clock sleeps.
func touchLater(path string) error {
	future := time.Now().Add(time.Hour)
	return os.Chtimes(path, future, future)
}

func TestCacheRoundTripIsIdempotent(t *testing.T) {
	tmp := t.TempDir()

	s1 := New("testdata/dict_small.txt", WithTmpDir(tmp))
	require.NoError(t, s1.Initialize())
	want := s1.lx.snapshot()
	wantTotal := s1.lx.Total()

	// Fresh Segmenter, same tmp dir: must load straight from the cache
	// written by s1, with a byte-identical frequency map.
	s2 := New("testdata/dict_small.txt", WithTmpDir(tmp))
	require.NoError(t, s2.Initialize())
	got := s2.lx.snapshot()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cache round trip changed the frequency map (-want +got):\n%s", diff)
	}
	require.Equal(t, wantTotal, s2.lx.Total())
}

func TestCacheStaleAgainstModifiedSource(t *testing.T) {
	tmp := t.TempDir()
	dictPath := tmp + "/dict.txt"
	require.NoError(t, writeDict(dictPath, "你好 100\n"))

	s1 := New(dictPath, WithTmpDir(tmp))
	require.NoError(t, s1.Initialize())
	_, ok := s1.lx.Freq("你好")
	require.True(t, ok)

	// Rewrite source with new content, then push its mtime an hour into the
	// future so it's unambiguously newer than the cache s1 just wrote,
	// regardless of filesystem timestamp resolution. A new Segmenter
	// pointed at the same cache directory must not reuse the stale cache.
	require.NoError(t, writeDict(dictPath, "再见 200\n"))
	require.NoError(t, touchLater(dictPath))

	s2 := New(dictPath, WithTmpDir(tmp))
	require.NoError(t, s2.Initialize())
	_, ok = s2.lx.Freq("再见")
	require.True(t, ok, "rebuilt lexicon must reflect the modified source")
}
