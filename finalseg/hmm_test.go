package finalseg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViterbiSingleRuneAlwaysS(t *testing.T) {
	h := NewDefault()
	states := h.viterbiStates([]rune("杭"))
	require.Equal(t, []State{StateS}, states)
}

func TestCutRecoversUnknownWordAsOnePiece(t *testing.T) {
	h := NewDefault()
	// 杭研 has no dictionary entry upstream of finalseg; the crafted
	// emission table gives B("杭")/E("研") a wide margin over S/S so
	// Viterbi should recover it as one two-character word.
	got := h.Cut("杭研")
	assert.Equal(t, []string{"杭研"}, got)
}

func TestCutPassesLatinRunThroughWhole(t *testing.T) {
	h := NewDefault()
	got := h.Cut("good")
	assert.Equal(t, []string{"good"}, got)
}

func TestCutSplitsMixedHanAndLatin(t *testing.T) {
	h := NewDefault()
	got := h.Cut("good杭研")
	assert.Equal(t, []string{"good", "杭研"}, got)
}

func TestForceSplitBreaksWordApart(t *testing.T) {
	h := NewDefault()
	h.AddForceSplit("杭研")
	got := h.Cut("杭研")
	assert.Equal(t, []string{"杭", "研"}, got)
}

func TestForceSplitIsPerInstance(t *testing.T) {
	a := NewDefault()
	b := NewDefault()
	a.AddForceSplit("杭研")

	assert.True(t, a.ForcesSplit('杭'))
	assert.False(t, b.ForcesSplit('杭'), "force-split state must not leak across HMM instances")
}

func TestEmissionFloorIsMinimumObserved(t *testing.T) {
	h := New(
		map[State]float64{StateS: -1.0},
		map[State]map[State]float64{},
		map[State]map[rune]float64{
			StateS: {'a': -2.0, 'b': -5.0},
		},
	)
	assert.Equal(t, -5.0, h.floor)
}
