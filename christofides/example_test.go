package christofides_test

import (
	"fmt"

	"github.com/katalvlaran/cvrp/christofides"
	"github.com/katalvlaran/cvrp/distance"
	"github.com/katalvlaran/cvrp/matching"
)

// ExampleTour builds a closed tour over the corners of a unit square.
func ExampleTour() {
	g := distance.New([]distance.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	})
	tour, err := christofides.Tour(g, matching.Blossom{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(len(tour), tour[0], tour[len(tour)-1], christofides.Covers(tour, g.Len()))
	// Output: 5 0 0 true
}
