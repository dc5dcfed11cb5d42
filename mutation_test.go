package jieba

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddWordRoundTrip(t *testing.T) {
	s := newTestSegmenter(t)
	freq := uint32(9000)
	require.NoError(t, s.AddWord("杭州西湖", &freq, "ns"))

	got, ok := s.lx.Freq("杭州西湖")
	require.True(t, ok)
	require.Equal(t, freq, got)

	for _, prefix := range []string{"杭", "杭州", "杭州西"} {
		require.True(t, s.lx.HasPrefix(prefix), "%q must be a key after AddWord (invariant P1)", prefix)
	}
}

func TestDelWordForcesSplit(t *testing.T) {
	s := newTestSegmenter(t)
	require.NoError(t, s.DelWord("清华大学"))

	freq, ok := s.lx.Freq("清华大学")
	require.True(t, ok)
	require.Equal(t, uint32(0), freq)

	got := s.Cut("我来到北京清华大学", false, true)
	for _, tok := range got {
		require.NotEqual(t, "清华大学", tok, "清华大学 must no longer be emitted as a whole word")
	}
}

func TestSuggestFreqSingleSegmentFavorsWhole(t *testing.T) {
	s := newTestSegmenter(t)
	newFreq := s.SuggestFreq([]string{"杭州西湖"}, false)
	require.Greater(t, newFreq, uint32(0))
}

func TestSetDictionaryClearsInitialized(t *testing.T) {
	s := newTestSegmenter(t)
	require.True(t, s.lx.initialized)

	require.NoError(t, s.SetDictionary("testdata/dict_small.txt"))
	require.False(t, s.lx.initialized)

	require.NoError(t, s.ensureInitialized())
	require.True(t, s.lx.initialized)
}

func TestLoadUserdictAddsWords(t *testing.T) {
	s := newTestSegmenter(t)
	dir := t.TempDir()
	path := dir + "/userdict.txt"
	writeFile(t, path, "杭州西湖 9000 ns\n西湖 800\n")

	require.NoError(t, s.LoadUserdict(path))

	freq, ok := s.lx.Freq("杭州西湖")
	require.True(t, ok)
	require.Equal(t, uint32(9000), freq)

	freq, ok = s.lx.Freq("西湖")
	require.True(t, ok)
	require.Equal(t, uint32(800), freq)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
