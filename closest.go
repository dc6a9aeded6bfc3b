package alconna

// levenshtein and closestChoice back the fuzzy header-match suggestion
// and the FuzzySuggestion error: the nearest known command name on an
// unknown-command error.
func levenshtein(str, tgt string) int {
	src, dst := []rune(str), []rune(tgt)

	if len(src) == 0 {
		return len(dst)
	}

	if len(dst) == 0 {
		return len(src)
	}

	dists := make([][]int, len(src)+1)
	for i := range dists {
		dists[i] = make([]int, len(dst)+1)
		dists[i][0] = i
	}

	for j := range dists[0] {
		dists[0][j] = j
	}

	for sidx, sc := range src {
		for tidx, tc := range dst {
			if sc == tc {
				dists[sidx+1][tidx+1] = dists[sidx][tidx]
			} else {
				dists[sidx+1][tidx+1] = dists[sidx][tidx] + 1
				if dists[sidx+1][tidx] < dists[sidx+1][tidx+1] {
					dists[sidx+1][tidx+1] = dists[sidx+1][tidx] + 1
				}
				if dists[sidx][tidx+1] < dists[sidx+1][tidx+1] {
					dists[sidx+1][tidx+1] = dists[sidx][tidx+1] + 1
				}
			}
		}
	}

	return dists[len(src)][len(dst)]
}

// minDistanceClosest is the ratio (edit distance / candidate length)
// below which a fuzzy suggestion is considered close enough to offer.
const minDistanceClosest = 0.6

func closestChoice(cmd string, choices []string) (string, int) {
	if len(choices) == 0 {
		return "", 0
	}

	mincmd := -1
	mindist := -1

	for i, c := range choices {
		l := levenshtein(cmd, c)

		if mincmd < 0 || l < mindist {
			mindist = l
			mincmd = i
		}
	}

	return choices[mincmd], mindist
}

// fuzzyMatch reports a near-miss candidate for cmd among choices within
// the threshold, or ("", false) if none is close enough.
func fuzzyMatch(cmd string, choices []string) (string, bool) {
	closest, dist := closestChoice(cmd, choices)
	if closest == "" {
		return "", false
	}

	ratio := float32(dist) / float32(len(closest))
	if ratio >= minDistanceClosest {
		return "", false
	}

	return closest, true
}
