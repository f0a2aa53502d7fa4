package collections

import "errors"

var (
	ErrStackFull       = errors.New("stack full")
	ErrStackEmpty      = errors.New("stack empty")
	ErrElementTooLarge = errors.New("element too large")
	ErrAllocation      = errors.New("allocation failed")
	ErrStackDestroyed  = errors.New("stack destroyed")
)
