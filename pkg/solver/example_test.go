package solver_test

import (
	"fmt"
	"strings"

	"github.com/bastiangx/wordsolve/pkg/dictionary"
	"github.com/bastiangx/wordsolve/pkg/solver"
)

func ExampleSolver_Solve() {
	b := dictionary.NewBuilder()
	_, _ = b.AddFrom(strings.NewReader("ale\nella\npale\nleap\nplate\ntrap\n"))
	ix, _ := b.Build()

	s := solver.New(ix)
	fmt.Println(s.Solve("leapt"))
	// Output: [ale pale leap plate]
}

func ExampleGroupByLength() {
	g := solver.GroupByLength(solver.Matches{"hat", "tan", "than", "nathan"})
	for _, n := range g.Lengths() {
		fmt.Println(n, g.Words(n))
	}
	// Output:
	// 3 [hat tan]
	// 4 [than]
	// 6 [nathan]
}
