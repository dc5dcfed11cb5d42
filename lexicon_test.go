package jieba

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexiconPrefixClosure(t *testing.T) {
	lx := newLexicon()
	lx.loadFrom([]dictEntry{
		{word: "清华大学", freq: 5000},
		{word: "清华", freq: 300},
	})

	assert.True(t, lx.HasPrefix("清"), "清 must be a prefix (of 清华)")
	_, ok := lx.Freq("清")
	assert.False(t, ok, "清 was never inserted as a real word")

	freq, ok := lx.Freq("清华")
	require.True(t, ok)
	assert.Equal(t, uint32(300), freq)

	assert.True(t, lx.HasPrefix("清华大"), "清华大 must be a prefix (of 清华大学)")
	_, ok = lx.Freq("清华大")
	assert.False(t, ok, "清华大 was never inserted as a real word")

	assert.False(t, lx.HasPrefix("青"), "青 was never inserted and is not a prefix of anything")
	_, ok = lx.Freq("青")
	assert.False(t, ok, "青 was never inserted and is not a prefix of anything")
}

func TestLexiconTotalIsSumOfRealWords(t *testing.T) {
	lx := newLexicon()
	lx.loadFrom([]dictEntry{
		{word: "北京", freq: 800},
		{word: "清华", freq: 300},
	})
	assert.Equal(t, uint64(1100), lx.Total(), "total must not count the zero-freq prefix rows")
}

func TestLexiconSetLockedAdjustsTotalByDelta(t *testing.T) {
	lx := newLexicon()
	lx.loadFrom([]dictEntry{{word: "大厦", freq: 400}})

	lx.mu.Lock()
	lx.setLocked("大厦", 900, "")
	lx.mu.Unlock()

	freq, ok := lx.Freq("大厦")
	require.True(t, ok)
	assert.Equal(t, uint32(900), freq)
	assert.Equal(t, uint64(900), lx.Total(), "total must reflect the updated value, not the old plus the new")
}

func TestLexiconHasPrefix(t *testing.T) {
	lx := newLexicon()
	lx.loadFrom([]dictEntry{{word: "中国科学院", freq: 3000}})

	assert.True(t, lx.HasPrefix("中"))
	assert.True(t, lx.HasPrefix("中国科学院"))
	assert.False(t, lx.HasPrefix("国"))
}
