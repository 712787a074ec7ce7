package flow_test

import (
	"fmt"

	"github.com/matzehuels/dutyflow/pkg/flow"
)

func ExampleGraph_MinCostMaxFlow() {
	// Two workers, two jobs. Worker 1 is cheap on job 3, worker 2 on job 4.
	g := flow.New(6)
	g.AddEdge(0, 1, 1, 0)
	g.AddEdge(0, 2, 1, 0)
	g.AddEdge(1, 3, 1, 2)
	g.AddEdge(1, 4, 1, 9)
	g.AddEdge(2, 3, 1, 8)
	g.AddEdge(2, 4, 1, 3)
	g.AddEdge(3, 5, 1, 0)
	g.AddEdge(4, 5, 1, 0)

	res, err := g.MinCostMaxFlow(0, 5)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("flow:", res.Flow)
	fmt.Println("cost:", res.Cost)
	// Output:
	// flow: 2
	// cost: 5
}

func ExampleGraph_MinCostMaxFlow_negativeCosts() {
	// A negative cost acts as a bonus; potentials keep Dijkstra exact.
	g := flow.New(4)
	g.AddEdge(0, 1, 1, 0)
	g.AddEdge(0, 2, 1, 0)
	g.AddEdge(1, 3, 1, -4)
	g.AddEdge(2, 3, 1, 1)

	res, _ := g.MinCostMaxFlow(0, 3)
	fmt.Println("flow:", res.Flow, "cost:", res.Cost)
	// Output:
	// flow: 2 cost: -3
}
