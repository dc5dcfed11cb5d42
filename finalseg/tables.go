package finalseg

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/emit_prob.json
var emitProbJSON []byte

// jiebaStartP and jiebaTransP are jieba's trained initial/transition
// probabilities, in log space, carried over verbatim from the teacher's
// newJiebaHMM (ultimately trained against the same Chinese corpus the
// original project shipped prob_start.py/prob_trans.py for).
var jiebaStartP = map[State]float64{
	StateB: -0.26268660809250016,
	StateE: minFloat,
	StateM: minFloat,
	StateS: -1.4652633398537678,
}

var jiebaTransP = map[State]map[State]float64{
	StateB: {
		StateE: -0.51082562376599,  // B->E
		StateM: -0.916290731874155, // B->M
	},
	StateE: {
		StateB: -0.5897149736854513, // E->B
		StateS: -0.8085250474669937, // E->S
	},
	StateM: {
		StateE: -0.33344856811948514, // M->E
		StateM: -1.2603623820268226,  // M->M
	},
	StateS: {
		StateB: -0.7211965654669841, // S->B
		StateS: -0.6658631448798212, // S->S
	},
}

// emitProbJSON is keyed by single-character JSON object keys under top-level
// "B"/"M"/"E"/"S" sections, mirroring the original's prob_emit.py layout
// (a Python dict-of-dicts serialized to JSON by the teacher's build step).
func loadEmitP(raw []byte) (map[State]map[rune]float64, error) {
	var decoded map[string]map[string]float64
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("finalseg: decode emission table: %w", err)
	}
	out := make(map[State]map[rune]float64, 4)
	for stateName, chars := range decoded {
		var s State
		switch stateName {
		case "B":
			s = StateB
		case "M":
			s = StateM
		case "E":
			s = StateE
		case "S":
			s = StateS
		default:
			return nil, fmt.Errorf("finalseg: unknown state %q in emission table", stateName)
		}
		m := make(map[rune]float64, len(chars))
		for key, p := range chars {
			runes := []rune(key)
			if len(runes) != 1 {
				return nil, fmt.Errorf("finalseg: emission key %q is not a single character", key)
			}
			m[runes[0]] = p
		}
		out[s] = m
	}
	return out, nil
}

// defaultEmitP is decoded once at init time; NewDefault builds a fresh *HMM
// from it on every call so that each caller gets its own force-split set
// (spec's Design Notes warn against letting AddWord/DelWord on one Segmenter
// leak force-split state into another). It panics at init time on a
// malformed embed, the same way the teacher's newJiebaHMM panics on a
// malformed prob_emit.json — both are load errors in an asset that never
// changes at runtime.
var defaultEmitP = mustLoadDefaultEmitP()

func mustLoadDefaultEmitP() map[State]map[rune]float64 {
	emitP, err := loadEmitP(emitProbJSON)
	if err != nil {
		panic(err)
	}
	return emitP
}

// NewDefault returns a new HMM loaded with jieba's trained start/transition
// tables and the emission table shipped in data/emit_prob.json, with an
// empty, independent force-split set.
func NewDefault() *HMM {
	return New(jiebaStartP, jiebaTransP, defaultEmitP)
}
