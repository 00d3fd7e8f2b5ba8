package legend

// LinearScale maps a numeric domain [D0, D1] onto a range [R0, R1].
type LinearScale struct {
	D0, D1 float64
	R0, R1 float64
}

func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map returns the range position of v. Values outside the domain extrapolate.
// A zero-width domain maps everything to the middle of the range.
func (s LinearScale) Map(v float64) float64 {
	span := s.D1 - s.D0
	if span == 0 {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (v-s.D0)/span*(s.R1-s.R0)
}

// Invert returns the domain value at range position px.
func (s LinearScale) Invert(px float64) float64 {
	span := s.R1 - s.R0
	if span == 0 {
		return (s.D0 + s.D1) / 2
	}
	return s.D0 + (px-s.R0)/span*(s.D1-s.D0)
}
