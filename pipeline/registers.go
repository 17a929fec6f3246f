package pipeline

import "github.com/nkanderson/MIPS-lite/isa"

// Slot is a pipeline stage's occupant: either empty (Valid == false, a
// bubble) or the in-flight state of one instruction as it moves through
// Fetch, Decode, Execute, Memory, and Writeback. The same record shape is
// reused for every stage; fields are populated incrementally as the
// instruction advances.
type Slot struct {
	Valid bool
	Inst  *isa.Instruction
	PC    uint32

	RsValue uint32
	RtValue uint32

	ALUResult int32
	MemLoad   uint32

	HasDest bool
	Dest    uint8
}

// Clear resets the slot to empty.
func (s *Slot) Clear() {
	*s = Slot{}
}
