package sky

// rampEpsilon guards the ramp divisors against degenerate configuration
// where a fade's start and end boundaries coincide.
const rampEpsilon = 1e-6

// rampSpan is one region of a piecewise-linear ramp: while x lies in
// [start, end) the value runs linearly from `from` to `to`.
type rampSpan struct {
	start, end float64
	from, to   float64
}

// evalRamp walks the spans in order and returns the first one containing x,
// or fallback when none does. The moon fades (angle- and hour-domain) are
// all instances of this shape.
func evalRamp(x float64, spans []rampSpan, fallback float64) float64 {
	for _, s := range spans {
		if x >= s.start && x < s.end {
			width := s.end - s.start
			if width < rampEpsilon {
				return s.to
			}
			factor := (x - s.start) / width
			return s.from + (s.to-s.from)*factor
		}
	}
	return fallback
}
