package cluster

import (
	"errors"
	"fmt"
)

var (
	// ErrInput is wrapped by every error caused by malformed arguments.
	ErrInput = errors.New("cluster: invalid input")
	// ErrCapacity matches any *CapacityError.
	ErrCapacity = errors.New("cluster: too many contacts")
)

// CapacityError is returned when recording a contact would push a node past
// the contact capacity of its Graph.
type CapacityError struct {
	Node, Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf(
		"cluster: node %d already has the maximum of %d contacts",
		e.Node, e.Capacity,
	)
}

// Is lets errors.Is(err, ErrCapacity) identify capacity overflows.
func (e *CapacityError) Is(target error) bool { return target == ErrCapacity }
