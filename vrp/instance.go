package vrp

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/cvrp/distance"
)

// Depot is the id of the depot client.
const Depot = 0

var (
	// ErrMalformedInstance is returned (wrapped with a line number) for
	// instance files that cannot be parsed.
	ErrMalformedInstance = errors.New("vrp: malformed instance")

	// ErrInvalidInstance is returned by NewInstance for inconsistent inputs.
	ErrInvalidInstance = errors.New("vrp: invalid instance")
)

// Client is a location with a demand. Client 0 is the depot.
type Client struct {
	ID     int
	X, Y   float64
	Demand int
}

// Point returns the client's coordinates.
func (c Client) Point() distance.Point { return distance.Point{X: c.X, Y: c.Y} }

// Instance is an immutable CVRP instance. It is shared by pointer for the
// whole solve and never mutated after NewInstance.
type Instance struct {
	Name         string
	NumCustomers int // excludes the depot
	NumVehicles  int
	Capacity     int
	Clients      []Client // indexed by id, Clients[0] is the depot
	Graph        *distance.Graph
}

// NewInstance validates clients and builds the distance graph.
//
// Contracts:
//   - clients[i].ID == i and len(clients) ≥ 1 (the depot).
//   - vehicles ≥ 1, capacity ≥ 0, every demand ≥ 0.
func NewInstance(name string, vehicles, capacity int, clients []Client) (*Instance, error) {
	if len(clients) == 0 {
		return nil, fmt.Errorf("%w: no depot", ErrInvalidInstance)
	}
	if vehicles < 1 {
		return nil, fmt.Errorf("%w: %d vehicles", ErrInvalidInstance, vehicles)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: negative capacity %d", ErrInvalidInstance, capacity)
	}
	for i, c := range clients {
		if c.ID != i {
			return nil, fmt.Errorf("%w: client at index %d has id %d", ErrInvalidInstance, i, c.ID)
		}
		if c.Demand < 0 {
			return nil, fmt.Errorf("%w: client %d has negative demand", ErrInvalidInstance, i)
		}
	}

	owned := append([]Client(nil), clients...)

	return &Instance{
		Name:         name,
		NumCustomers: len(owned) - 1,
		NumVehicles:  vehicles,
		Capacity:     capacity,
		Clients:      owned,
		Graph:        distance.New(lo.Map(owned, func(c Client, _ int) distance.Point { return c.Point() })),
	}, nil
}

// Demand returns the demand of client c.
func (in *Instance) Demand(c int) int { return in.Clients[c].Demand }

// Distance returns the Euclidean distance between clients a and b.
func (in *Instance) Distance(a, b int) float64 { return in.Graph.Distance(a, b) }

// Customers returns the customer ids 1..NumCustomers.
func (in *Instance) Customers() []int { return lo.RangeFrom(1, in.NumCustomers) }

// TotalDemand sums the demand of every customer.
func (in *Instance) TotalDemand() int {
	return lo.SumBy(in.Clients[1:], func(c Client) int { return c.Demand })
}

// IsCustomer reports whether c is a valid non-depot client id.
func (in *Instance) IsCustomer(c int) bool { return c >= 1 && c <= in.NumCustomers }
