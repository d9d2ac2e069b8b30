package matchfinder

import "math"

// computeOptimalRun chooses the single ZeroRun length L in [MinRLE, 255]
// maximizing count(L) * L^1.1, where count(L) is the number of maximal
// zero-byte runs in src at least L bytes long, runs longer than 256
// clipped to 256 (spec.md §4.1). If src has no zero run of length >=
// MinRLE, the encoder gets no benefit from ZeroRun tokens at all, so this
// falls back to LongestRLE (64) as the spec requires.
func computeOptimalRun(src []byte) int {
	const (
		minRLE    = 2
		clipAt    = 256
		longestRL = 64
	)

	var hist [clipAt + 1]int // hist[n] = number of runs whose clipped length == n
	n := len(src)
	for i := 0; i < n; {
		if src[i] != 0 {
			i++
			continue
		}
		j := i
		for j < n && src[j] == 0 {
			j++
		}
		runLen := j - i
		if runLen > clipAt {
			runLen = clipAt
		}
		if runLen >= minRLE {
			hist[runLen]++
		}
		i = j
	}

	// suffix[L] = number of runs with clipped length >= L
	var suffix [clipAt + 2]int
	for l := clipAt; l >= minRLE; l-- {
		suffix[l] = suffix[l+1] + hist[l]
	}

	bestL := 0
	bestScore := -1.0
	for l := minRLE; l <= 255 && l <= clipAt; l++ {
		count := suffix[l]
		if count == 0 {
			continue
		}
		score := float64(count) * math.Pow(float64(l), 1.1)
		if score > bestScore {
			bestScore = score
			bestL = l
		}
	}

	if bestL == 0 {
		return longestRL
	}
	return bestL
}
