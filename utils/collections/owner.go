package collections

import (
	"fmt"

	"github.com/tuannh982/boundedstack/utils/math"
)

// MaxElementByteSize bounds the elements of a string stack. A pushed
// element must be strictly shorter.
const MaxElementByteSize = 1024

// ElementOwner manages elements that live in their own allocation. The
// stack checks and clones on push, clones then releases on pop, and
// releases whatever is left on Destroy.
type ElementOwner[V any] interface {
	Check(v V) error
	Clone(v V) (V, error)
	Release(v V)
}

type byteOwner struct {
	maxSize int
}

// NewByteOwner returns an owner for byte strings shorter than maxSize.
// maxSize is clamped to [1, MaxElementByteSize].
func NewByteOwner(maxSize int) ElementOwner[[]byte] {
	return byteOwner{maxSize: math.Clamp(maxSize, 1, MaxElementByteSize)}
}

func (o byteOwner) Check(v []byte) error {
	if len(v) >= o.maxSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrElementTooLarge, len(v), o.maxSize)
	}
	return nil
}

func (o byteOwner) Clone(v []byte) ([]byte, error) {
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (o byteOwner) Release(v []byte) {
	clear(v)
}

// NewStringStack returns a stack of byte strings. Push stores a private
// copy of its argument and Pop hands the caller a fresh copy.
func NewStringStack() Stack[[]byte] {
	return NewOwnedStack(NewByteOwner(MaxElementByteSize))
}
