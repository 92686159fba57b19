package scoring

import "strconv"

// Round rounds x to the given number of decimal places using the shortest
// correctly rounded decimal form, ties to even. Negative zero becomes zero.
func Round(x float64, places int) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	if v == 0 {
		return 0
	}
	return v
}
