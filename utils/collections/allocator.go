package collections

import "fmt"

// Allocator returns a zeroed buffer of exactly n slots. Failures should
// wrap ErrAllocation; other errors are wrapped by the stack.
type Allocator[V any] func(n int) ([]V, error)

func MakeAllocator[V any](n int) ([]V, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrAllocation, n)
	}
	return make([]V, n), nil
}
