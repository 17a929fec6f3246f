package state

import "errors"

// Sentinel errors surfaced by the register file and memory, per the error
// kinds required of the engine's collaborators.
var (
	ErrNullDependency = errors.New("null dependency")
	ErrUnaligned      = errors.New("unaligned memory access")
	ErrOutOfBounds    = errors.New("memory access out of bounds")
)
