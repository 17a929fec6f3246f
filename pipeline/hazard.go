package pipeline

import (
	"github.com/nkanderson/MIPS-lite/isa"
	"github.com/nkanderson/MIPS-lite/state"
)

// sourceRegisters returns the registers Decode must resolve for inst: rs
// always, plus rt when the opcode reads it as a second source.
func sourceRegisters(inst *isa.Instruction) []uint8 {
	regs := []uint8{inst.Rs}
	if inst.ReadsRtSource {
		regs = append(regs, inst.Rt)
	}
	return regs
}

// ComputeStall is a pure function of the decode-stage source registers and
// the current occupants of Execute and Memory. It reports whether the
// pipeline must stall this cycle, and separately whether any hazard was
// found at all, independent of whether forwarding resolved it without a
// stall.
//
// A source register causes a hazard against a later stage iff it is
// nonzero, that stage is occupied, and the stage's destination equals it.
// Re-evaluating this every cycle against the slots' current occupants is
// what produces the two-cycle stall for a non-forwarded hazard against
// Execute: the same producer is seen first in Execute, then in Memory,
// on the following cycle.
func ComputeStall(srcRegs []uint8, execute, memory Slot, forwardingEnabled bool) (stall bool, hazardDetected bool) {
	for _, r := range srcRegs {
		if r == 0 {
			continue
		}
		if execute.Valid && execute.HasDest && execute.Dest == r {
			hazardDetected = true
			if execute.Inst.IsLoad || !forwardingEnabled {
				stall = true
			}
			continue
		}
		if memory.Valid && memory.HasDest && memory.Dest == r {
			hazardDetected = true
			if !forwardingEnabled {
				stall = true
			}
		}
	}
	return stall, hazardDetected
}

// ResolveSource returns the value Decode should use for source register
// reg, applying the forwarding priority: Execute's ALU result when Execute
// is occupied, its destination matches, and it is not a load; otherwise
// Memory's committed value (its load result for LDW, its ALU result
// otherwise); otherwise the register file. When forwarding is disabled the
// register file is always used — the hazard unit stalls in every case that
// would otherwise require forwarding, so this is equivalent.
func ResolveSource(reg uint8, execute, memory Slot, forwardingEnabled bool, regs *state.RegisterFile) uint32 {
	if reg == 0 {
		return 0
	}
	if forwardingEnabled {
		if execute.Valid && execute.HasDest && execute.Dest == reg && !execute.Inst.IsLoad {
			return uint32(execute.ALUResult)
		}
		if memory.Valid && memory.HasDest && memory.Dest == reg {
			if memory.Inst.IsLoad {
				return memory.MemLoad
			}
			return uint32(memory.ALUResult)
		}
	}
	return regs.Read(reg)
}
