package solver

import "testing"

func BenchmarkSolve(b *testing.B) {
	s := New(fixtureIndex(b))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Solve("leapt")
	}
}

func BenchmarkSolveGrouped(b *testing.B) {
	s := New(fixtureIndex(b))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GroupByLength(s.Solve("acelpt"))
	}
}
