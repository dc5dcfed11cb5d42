package jieba

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSegmenter(t *testing.T) *Segmenter {
	t.Helper()
	s := New("testdata/dict_small.txt", WithTmpDir(t.TempDir()))
	require.NoError(t, s.Initialize())
	return s
}

func TestCutPreciseHMMWorkedExamples(t *testing.T) {
	s := newTestSegmenter(t)

	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			"qinghua",
			"我来到北京清华大学",
			[]string{"我", "来到", "北京", "清华大学"},
		},
		{
			"hangyan recovered by HMM",
			"他来到了网易杭研大厦",
			[]string{"他", "来到", "了", "网易", "杭研", "大厦"},
		},
		{
			"xiaoming",
			"小明硕士毕业于中国科学院计算所",
			[]string{"小明", "硕士", "毕业", "于", "中国科学院", "计算所"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := s.Cut(c.text, false, true)
			require.Equal(t, c.want, got)
		})
	}
}

func TestCutPreciseHMMMixedScriptPunctuation(t *testing.T) {
	s := newTestSegmenter(t)
	got := s.Cut("我来到北京清华大学，今天天气不错,good day!", false, true)
	want := []string{
		"我", "来到", "北京", "清华大学", "，",
		"今天天气", "不错", ",", "good", " ", "day", "!",
	}
	require.Equal(t, want, got)
}

func TestCutFullMode(t *testing.T) {
	s := newTestSegmenter(t)
	got := s.Cut("我来到北京清华大学", true, false)
	want := []string{"我", "来到", "北京", "清华", "清华大学", "华大", "大学"}
	require.Equal(t, want, got)
}

func TestCutForSearchSubGrams(t *testing.T) {
	s := newTestSegmenter(t)
	got := s.CutForSearch("小明硕士毕业于中国科学院计算所", true)

	precise := []string{"小明", "硕士", "毕业", "于", "中国科学院", "计算所"}
	for _, w := range precise {
		require.Contains(t, got, w)
	}

	// 2/3-grams of 中国科学院 that are themselves lexicon words must appear,
	// ordered before 中国科学院 itself.
	subgrams := []string{"中国", "科学", "学院", "科学院"}
	var parentIdx int
	for i, w := range got {
		if w == "中国科学院" {
			parentIdx = i
		}
	}
	for _, g := range subgrams {
		idx := indexOf(got, g)
		require.GreaterOrEqual(t, idx, 0, "%q should be yielded by search mode", g)
		require.Less(t, idx, parentIdx, "%q must precede its parent word", g)
	}
}

func TestTokenizeOffsetsCoverInput(t *testing.T) {
	s := newTestSegmenter(t)
	text := "我来到北京清华大学"
	tokens, err := s.Tokenize(text, TokenizeDefault, true)
	require.NoError(t, err)

	runes := []rune(text)
	offset := 0
	for _, tok := range tokens {
		require.Equal(t, offset, tok.Start)
		require.Equal(t, string(runes[tok.Start:tok.End]), tok.Word)
		offset = tok.End
	}
	require.Equal(t, len(runes), offset)
}

func TestTokenizeRejectsInvalidUTF8(t *testing.T) {
	s := newTestSegmenter(t)
	_, err := s.Tokenize("\xff\xfe", TokenizeDefault, true)
	require.Error(t, err)
	var target *NonUnicodeInputError
	require.ErrorAs(t, err, &target)
}

func indexOf(ss []string, target string) int {
	for i, s := range ss {
		if s == target {
			return i
		}
	}
	return -1
}
