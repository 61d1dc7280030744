package search

// Acceptance decides when the reference plan is abandoned in favour of the
// best plan found so far.
type Acceptance interface {
	// Restart is called after every iteration with the number of iterations
	// since the last improvement; true resets the reference to the best plan.
	Restart(stale int) bool
}

// RandomWalk never restarts: the reference wanders freely.
type RandomWalk struct{}

// Restart implements Acceptance.
func (RandomWalk) Restart(int) bool { return false }

// RestartOnStagnation resets the reference after Window iterations without
// an improvement. A non-positive Window never restarts.
type RestartOnStagnation struct {
	Window int
}

// Restart implements Acceptance.
func (r RestartOnStagnation) Restart(stale int) bool {
	return r.Window > 0 && stale >= r.Window
}
