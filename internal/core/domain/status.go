package domain

// Transition decides whether an order may move from current to next.
// A same-status transition is a no-op (changed == false, no error).
// CANCELLED is terminal: once cancelled, an order cannot leave that state.
// Every other transition between the known states is allowed.
func Transition(current, next OrderStatus) (changed bool, err error) {
	if current == next {
		return false, nil
	}
	if current == OrderStatusCancelled {
		return false, &ForbiddenTransitionError{From: current, To: next}
	}
	return true, nil
}
