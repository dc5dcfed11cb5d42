// Package finalseg implements the HMM fallback tagger described in spec
// §4.4: a 4-state (B, M, E, S) Viterbi segmenter over Han character runs
// the lexicon's DAG/route stage failed to cut into words. It mirrors the
// teacher's jieba-go hiddenMarkovModel, generalized into its own package
// (matching the shape of the original jieba.finalseg submodule) with an
// exported, per-instance force-split set instead of teacher's flat map
// literals baked into the tokenizer.
package finalseg

import (
	"math"
	"regexp"
)

// State is one of the four hidden states B (begin), M (middle), E (end),
// S (single-character word).
type State byte

const (
	StateB State = iota
	StateM
	StateE
	StateS
)

func (s State) String() string {
	switch s {
	case StateB:
		return "B"
	case StateM:
		return "M"
	case StateE:
		return "E"
	case StateS:
		return "S"
	default:
		return "?"
	}
}

var allStates = [4]State{StateB, StateM, StateE, StateS}

// legalPredecessors lists, for each state, the states legally allowed to
// precede it (spec §4.4: B->M|E, M->M|E, E->B|S, S->B|S, read backwards).
var legalPredecessors = map[State][]State{
	StateB: {StateE, StateS},
	StateM: {StateB, StateM},
	StateE: {StateB, StateM},
	StateS: {StateE, StateS},
}

// minFloat mirrors the teacher's floor constant. It is the start log-prob
// of M and E in jiebaStartP, and the emission floor New falls back to when
// a loaded emission table is empty (so there is nothing to compute a
// minimum over) — a fallback NewDefault never hits, since its table is
// non-empty.
const minFloat float64 = -3.14e100

// HMM is a fully-specified Hidden Markov Model plus the force-split set
// that lets callers unconditionally break a word apart mid-sequence
// (spec §3/§4.4).
type HMM struct {
	startP map[State]float64
	transP map[State]map[State]float64
	emitP  map[State]map[rune]float64
	floor  float64

	forceSplit map[rune]struct{}
}

// New builds an HMM from explicit tables. The emission floor (spec §4.4:
// "the minimum emission log-prob observed during table load") is computed
// once here, across every (state, char) pair in emitP.
func New(startP map[State]float64, transP map[State]map[State]float64, emitP map[State]map[rune]float64) *HMM {
	floor := minFloat
	seen := false
	for _, m := range emitP {
		for _, v := range m {
			if !seen || v < floor {
				floor = v
				seen = true
			}
		}
	}
	return &HMM{
		startP:     startP,
		transP:     transP,
		emitP:      emitP,
		floor:      floor,
		forceSplit: make(map[rune]struct{}),
	}
}

// AddForceSplit registers every rune of word as one that must never appear
// mid-word in HMM output (spec §4.4). Called by the Lexicon Mutation API
// when AddWord(w, 0) / DelWord(w) forces w apart.
func (h *HMM) AddForceSplit(word string) {
	for _, r := range word {
		h.forceSplit[r] = struct{}{}
	}
}

// ForcesSplit reports whether r must unconditionally end/start a token.
func (h *HMM) ForcesSplit(r rune) bool {
	_, ok := h.forceSplit[r]
	return ok
}

func (h *HMM) emit(s State, r rune) float64 {
	if m, ok := h.emitP[s]; ok {
		if v, ok := m[r]; ok {
			return v
		}
	}
	return h.floor
}

func (h *HMM) start(s State) float64 {
	if v, ok := h.startP[s]; ok {
		return v
	}
	return h.floor
}

func (h *HMM) trans(from, to State) float64 {
	if m, ok := h.transP[from]; ok {
		if v, ok := m[to]; ok {
			return v
		}
	}
	return h.floor
}

// viterbiStates returns the best BMES state sequence for run, using plain
// Viterbi dynamic programming: legal transitions only (legalPredecessors),
// unknown emissions floored so -Inf never appears in the DP (spec §4.4).
// A single-rune run always returns S, matching the teacher's special case
// (there is no ambiguity to resolve for a length-1 run).
func (h *HMM) viterbiStates(run []rune) []State {
	n := len(run)
	if n == 1 {
		return []State{StateS}
	}

	// prob[s] = best cumulative log-probability of any legal path ending
	// in state s at the current position; path[s] the path itself.
	prob := make(map[State]float64, 4)
	path := make(map[State][]State, 4)
	for _, s := range allStates {
		prob[s] = h.start(s) + h.emit(s, run[0])
		path[s] = []State{s}
	}

	for i := 1; i < n; i++ {
		newProb := make(map[State]float64, 4)
		newPath := make(map[State][]State, 4)
		for _, s := range allStates {
			bestScore := math.Inf(-1)
			var bestPrev State
			found := false
			for _, prev := range legalPredecessors[s] {
				score := prob[prev] + h.trans(prev, s)
				if !found || score > bestScore {
					bestScore = score
					bestPrev = prev
					found = true
				}
			}
			newProb[s] = bestScore + h.emit(s, run[i])
			newPath[s] = append(append([]State{}, path[bestPrev]...), s)
		}
		prob, path = newProb, newPath
	}

	if prob[StateE] >= prob[StateS] {
		return path[StateE]
	}
	return path[StateS]
}

// Cut segments text using the HMM, per spec §4.4/§9. Latin/digit runs are
// never fed through Viterbi — inferred from real jieba's finalseg.cut
// (see DESIGN.md, Open Question 3): finalseg re-splits its input into Han-script
// sub-runs and everything else, tagging only the former and passing the
// latter through as single whole tokens. Without this split, an unknown
// Latin word's uniform emission floor would make Viterbi's choice of
// boundaries depend only on BMES transition weights, arbitrarily slicing
// ordinary English words.
func (h *HMM) Cut(text string) []string {
	var out []string
	for _, blk := range splitHanBlocks(text) {
		if !blk.han {
			out = append(out, blk.text)
			continue
		}
		out = append(out, h.cutHan([]rune(blk.text))...)
	}
	return out
}

func (h *HMM) cutHan(run []rune) []string {
	states := h.viterbiStates(run)
	var out []string
	start := 0
	for i, s := range states {
		forced := h.ForcesSplit(run[i])
		if forced && i > start {
			out = append(out, string(run[start:i]))
			start = i
		}
		if s == StateE || s == StateS || forced {
			out = append(out, string(run[start:i+1]))
			start = i + 1
		}
	}
	if start < len(run) {
		out = append(out, string(run[start:]))
	}
	return out
}

var hanRun = regexp.MustCompile(`\p{Han}+`)

type hanBlock struct {
	text string
	han  bool
}

func splitHanBlocks(text string) []hanBlock {
	idx := hanRun.FindAllStringIndex(text, -1)
	if len(idx) == 0 {
		if text == "" {
			return nil
		}
		return []hanBlock{{text: text, han: false}}
	}
	var out []hanBlock
	prev := 0
	for _, pair := range idx {
		if pair[0] > prev {
			out = append(out, hanBlock{text: text[prev:pair[0]], han: false})
		}
		out = append(out, hanBlock{text: text[pair[0]:pair[1]], han: true})
		prev = pair[1]
	}
	if prev < len(text) {
		out = append(out, hanBlock{text: text[prev:], han: false})
	}
	return out
}
