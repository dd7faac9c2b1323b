package tornado

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// PrintableIntList compacts a list of realization numbers into a range
// string, e.g. [1 2 5 6 9 8 19] -> "1-2, 5-6, 8-9, 19". Empty input is
// rendered as "None".
func PrintableIntList(reals []int) string {
	if len(reals) == 0 {
		return "None"
	}

	sorted := make([]int, len(reals))
	copy(sorted, reals)
	sort.Ints(sorted)

	parts := []string{}
	start := sorted[0]
	prev := sorted[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, real := range sorted[1:] {
		if real == prev || real == prev+1 {
			prev = real
			continue
		}
		flush()
		start = real
		prev = real
	}
	flush()
	return strings.Join(parts, ", ")
}

// SIFormat renders a value with an SI prefix picked from its magnitude,
// rounded to two decimals: 1500000 -> "1.5 M", -2500 -> "-2.5 k", 15 -> "15".
func SIFormat(value float64) string {
	prefixes := []struct {
		factor float64
		symbol string
	}{
		{1e12, "T"},
		{1e9, "G"},
		{1e6, "M"},
		{1e3, "k"},
	}
	for _, prefix := range prefixes {
		if math.Abs(value) >= prefix.factor {
			return formatRounded(value/prefix.factor) + " " + prefix.symbol
		}
	}
	return formatRounded(value)
}

func formatRounded(value float64) string {
	return strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64)
}
