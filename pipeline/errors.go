package pipeline

import "errors"

// Sentinel errors the engine itself can raise once constructed.
var (
	ErrInvalidOpcode       = errors.New("invalid opcode")
	ErrUnexpectedStallRead = errors.New("unexpected stall read")
)
