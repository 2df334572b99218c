package field

import (
	"testing"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/geom"
)

func benchSet(n int) charge.Set {
	set := make(charge.Set, n)
	for i := range set {
		sign := charge.Positive
		if i%2 == 1 {
			sign = charge.Negative
		}
		set[i] = charge.New(geom.Pt(float64(i%8)-3.5, float64(i/8)-1), sign)
	}
	return set
}

func BenchmarkEvaluate(b *testing.B) {
	set := benchSet(32)
	p := geom.Pt(0.25, 0.125)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Evaluate(p, set)
	}
}

func BenchmarkMoved(b *testing.B) {
	set := benchSet(32)
	s := Evaluate(geom.Pt(0.25, 0.125), set)
	from, to := set[0].Position, set[0].Position.Add(geom.Pt(0.01, 0))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s = s.Moved(from, to, set[0].Sign)
		from, to = to, from
	}
}
