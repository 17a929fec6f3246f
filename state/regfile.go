package state

// RegisterFile holds the 32 general-purpose registers. Register 0 is
// hardwired to zero: reads always yield 0 and writes are discarded.
type RegisterFile struct {
	regs [32]uint32
}

// NewRegisterFile returns a register file with every register, including
// the zero register, initialized to 0.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{}
}

// Read returns the value held at index. Index 0 always reads as 0.
func (r *RegisterFile) Read(index uint8) uint32 {
	if index == 0 {
		return 0
	}
	return r.regs[index]
}

// Write stores value at index. A write to index 0 is a no-op and is not
// reported back to the caller as having occurred — callers that need to
// track modifications should check index != 0 themselves before recording it.
func (r *RegisterFile) Write(index uint8, value uint32) {
	if index == 0 {
		return
	}
	r.regs[index] = value
}
