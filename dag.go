package jieba

// buildDAG constructs the directed-acyclic-graph of candidate splits over
// run, per spec §4.2. dag[k] lists, in ascending order, every end index e
// (inclusive, code-point indexed) such that run[k:e+1] is a lexicon word
// with positive frequency; if the lexicon has no hit starting at k at all,
// dag[k] is the single-character fallback []int{k} (invariant D2).
func buildDAG(lx *Lexicon, run []rune) map[int][]int {
	n := len(run)
	dag := make(map[int][]int, n)
	for k := 0; k < n; k++ {
		ends := make([]int, 0, 1)
		i := k
		frag := string(run[k : k+1])
		for i < n && lx.HasPrefix(frag) {
			if freq, ok := lx.Freq(frag); ok && freq > 0 {
				ends = append(ends, i)
			}
			i++
			if i < n {
				frag = string(run[k : i+1])
			}
		}
		if len(ends) == 0 {
			ends = append(ends, k)
		}
		dag[k] = ends
	}
	return dag
}
