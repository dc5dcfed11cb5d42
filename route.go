package jieba

import "math"

// routeStep is one entry of the DP route table (spec §3): the cumulative
// max log-probability score reachable from this index, and the end index
// (inclusive) of the best first piece to take.
type routeStep struct {
	score float64
	end   int
}

// computeRoute fills the route table from right to left per spec §4.3.
// route[N] is the terminal sentinel (0.0, 0). Ties are broken by preferring
// the smallest end index, which falls out naturally here because dag[k] is
// built in ascending order and strict '>' is used for score comparison
// (the first, smallest-end candidate found with a given best score is
// never displaced by a later one with an equal score).
func computeRoute(lx *Lexicon, run []rune, dag map[int][]int) map[int]routeStep {
	n := len(run)
	route := make(map[int]routeStep, n+1)
	route[n] = routeStep{score: 0.0, end: 0}

	total := lx.Total()
	if total == 0 {
		total = 1
	}
	logTotal := math.Log(float64(total))

	for k := n - 1; k >= 0; k-- {
		best := routeStep{score: math.Inf(-1), end: -1}
		for _, e := range dag[k] {
			freq, ok := lx.Freq(string(run[k : e+1]))
			tf := float64(freq)
			if !ok || freq == 0 {
				tf = 1
			}
			score := math.Log(tf) - logTotal + route[e+1].score
			if score > best.score {
				best = routeStep{score: score, end: e}
			}
		}
		route[k] = best
	}
	return route
}
