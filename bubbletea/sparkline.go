package bubbletea

// sparkRunes are the eight block-element levels used to draw a series.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkRow maps values onto one rune per output column, downsampling by
// bucket mean when the series is wider than the available columns. The second
// return value holds the source index where each column's bucket starts,
// so callers can align per-column styling with the dates array.
func sparkRow(values []float64, width int) ([]rune, []int) {
	if len(values) == 0 || width <= 0 {
		return nil, nil
	}
	cols := width
	if len(values) < cols {
		cols = len(values)
	}

	sampled := make([]float64, cols)
	starts := make([]int, cols)
	for c := 0; c < cols; c++ {
		lo := c * len(values) / cols
		hi := (c + 1) * len(values) / cols
		if hi <= lo {
			hi = lo + 1
		}
		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}
		sampled[c] = sum / float64(hi-lo)
		starts[c] = lo
	}

	lo, hi := sampled[0], sampled[0]
	for _, v := range sampled[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	runes := make([]rune, cols)
	for c, v := range sampled {
		level := 3 // flat series sits mid-height
		if hi > lo {
			level = int((v-lo)/(hi-lo)*float64(len(sparkRunes)-1) + 0.5)
		}
		runes[c] = sparkRunes[level]
	}
	return runes, starts
}

// Sparkline renders values as a single-row block-rune chart at most
// width columns wide.
func Sparkline(values []float64, width int) string {
	runes, _ := sparkRow(values, width)
	return string(runes)
}
