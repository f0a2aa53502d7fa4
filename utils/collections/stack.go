package collections

import (
	"errors"
	"fmt"

	"github.com/tuannh982/boundedstack/utils/math"

	log "github.com/sirupsen/logrus"
)

const (
	InitialCapacity = 16
	MaxCapacity     = 32768
)

// Stack is a LIFO container holding at most MaxCapacity elements.
// Implementations are not safe for concurrent use.
type Stack[V any] interface {
	Push(V) error
	Pop() (V, error)
	Peek() (V, error)
	Size() int
	Capacity() int
	IsEmpty() bool
	IsFull() bool
	Destroy()
}

// Options configures a stack built by New. The zero value gives a plain
// value stack backed by make.
type Options[V any] struct {
	// Owner, when set, copies elements in on push, out on pop and releases
	// the stored copies.
	Owner     ElementOwner[V]
	Allocator Allocator[V]
	Logger    *log.Entry
}

type boundedStack[V any] struct {
	entries   []V
	count     int
	owner     ElementOwner[V]
	alloc     Allocator[V]
	log       *log.Entry
	destroyed bool
}

func New[V any](opts Options[V]) (Stack[V], error) {
	alloc := opts.Allocator
	if alloc == nil {
		alloc = MakeAllocator[V]
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.WithFields(log.Fields{"component": "stack"})
	}
	s := &boundedStack[V]{
		owner: opts.Owner,
		alloc: alloc,
		log:   logger,
	}
	entries, err := s.allocate(InitialCapacity)
	if err != nil {
		return nil, err
	}
	s.entries = entries
	return s, nil
}

// NewBoundedStack returns a value stack. The default allocator cannot
// fail, so neither can construction.
func NewBoundedStack[V any]() Stack[V] {
	s, _ := New(Options[V]{})
	return s
}

func NewOwnedStack[V any](owner ElementOwner[V]) Stack[V] {
	s, _ := New(Options[V]{Owner: owner})
	return s
}

func (s *boundedStack[V]) Push(v V) error {
	if s.destroyed {
		return ErrStackDestroyed
	}
	if s.owner != nil {
		if err := s.owner.Check(v); err != nil {
			return err
		}
	}
	if s.IsFull() {
		return ErrStackFull
	}
	item := v
	if s.owner != nil {
		cloned, err := s.owner.Clone(v)
		if err != nil {
			return allocationError(err)
		}
		item = cloned
	}
	if s.count >= len(s.entries) {
		from := len(s.entries)
		to := math.Min(from*2, MaxCapacity)
		if err := s.resize(to); err != nil {
			if s.owner != nil {
				s.owner.Release(item)
			}
			return err
		}
		s.log.WithFields(log.Fields{"from": from, "to": to, "size": s.count}).Debug("stack grown")
	}
	s.entries[s.count] = item
	s.count++
	return nil
}

func (s *boundedStack[V]) Pop() (v V, err error) {
	if s.destroyed {
		return v, ErrStackDestroyed
	}
	if s.count == 0 {
		return v, ErrStackEmpty
	}
	top := s.entries[s.count-1]
	if s.owner != nil {
		out, err := s.owner.Clone(top)
		if err != nil {
			return v, allocationError(err)
		}
		s.owner.Release(top)
		top = out
	}
	var zero V
	s.entries[s.count-1] = zero
	s.count--
	s.maybeShrink()
	return top, nil
}

func (s *boundedStack[V]) Peek() (v V, err error) {
	if s.destroyed {
		return v, ErrStackDestroyed
	}
	if s.count == 0 {
		return v, ErrStackEmpty
	}
	top := s.entries[s.count-1]
	if s.owner != nil {
		out, err := s.owner.Clone(top)
		if err != nil {
			return v, allocationError(err)
		}
		return out, nil
	}
	return top, nil
}

func (s *boundedStack[V]) Size() int {
	return s.count
}

func (s *boundedStack[V]) Capacity() int {
	return len(s.entries)
}

func (s *boundedStack[V]) IsEmpty() bool {
	return s.count == 0
}

func (s *boundedStack[V]) IsFull() bool {
	return s.count >= MaxCapacity
}

// Destroy releases every live element and drops the buffer. It is a no-op
// on a nil or already destroyed stack.
func (s *boundedStack[V]) Destroy() {
	if s == nil || s.destroyed {
		return
	}
	if s.owner != nil {
		for i := 0; i < s.count; i++ {
			s.owner.Release(s.entries[i])
		}
	}
	s.entries = nil
	s.count = 0
	s.destroyed = true
}

func (s *boundedStack[V]) String() string {
	return fmt.Sprint(s.entries[:s.count])
}

// maybeShrink halves the buffer once utilization drops below a quarter.
// Failure keeps the larger buffer: the element is already out.
func (s *boundedStack[V]) maybeShrink() {
	from := len(s.entries)
	if from <= InitialCapacity || s.count >= math.DivFloor(from, 4) {
		return
	}
	to := math.Max(math.DivFloor(from, 2), InitialCapacity)
	if err := s.resize(to); err != nil {
		s.log.WithError(err).WithFields(log.Fields{"from": from, "to": to, "size": s.count}).Warn("stack shrink failed")
		return
	}
	s.log.WithFields(log.Fields{"from": from, "to": to, "size": s.count}).Debug("stack shrunk")
}

// resize swaps in a buffer of exactly n slots holding the live elements.
// The current buffer is untouched on failure.
func (s *boundedStack[V]) resize(n int) error {
	if n > MaxCapacity {
		return fmt.Errorf("%w: capacity %d exceeds %d", ErrStackFull, n, MaxCapacity)
	}
	entries, err := s.allocate(n)
	if err != nil {
		return err
	}
	copy(entries, s.entries[:s.count])
	s.entries = entries
	return nil
}

func (s *boundedStack[V]) allocate(n int) ([]V, error) {
	entries, err := s.alloc(n)
	if err != nil {
		return nil, fmt.Errorf("allocate %d slots: %w", n, allocationError(err))
	}
	if len(entries) != n {
		return nil, fmt.Errorf("%w: allocator returned %d slots, want %d", ErrAllocation, len(entries), n)
	}
	return entries, nil
}

func allocationError(err error) error {
	if errors.Is(err, ErrAllocation) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrAllocation, err)
}
