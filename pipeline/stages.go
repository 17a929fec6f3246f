package pipeline

import (
	"fmt"

	"github.com/nkanderson/MIPS-lite/isa"
)

// doWriteback commits the Writeback slot's result to the register file.
func (e *Engine) doWriteback() error {
	slot := e.writeback
	if !slot.Valid || !slot.HasDest {
		return nil
	}

	value := uint32(slot.ALUResult)
	if slot.Inst.IsLoad {
		value = slot.MemLoad
	}

	e.regs.Write(slot.Dest, value)
	if slot.Dest != 0 {
		e.stats.RecordRegisterWrite(slot.Dest, value)
	}
	return nil
}

// doMemory performs the Memory slot's load or store, if any.
func (e *Engine) doMemory() error {
	slot := &e.memory
	if !slot.Valid {
		return nil
	}

	addr := uint32(slot.ALUResult)
	switch {
	case slot.Inst.IsLoad:
		v, err := e.mem.ReadData(addr)
		if err != nil {
			return err
		}
		slot.MemLoad = v
	case slot.Inst.IsStore:
		if err := e.mem.WriteData(addr, slot.RtValue); err != nil {
			return err
		}
		e.stats.RecordMemoryWrite(addr, slot.RtValue)
	}
	return nil
}

// doExecute computes the Execute slot's ALU result and reports whether it
// resolved a taken branch, per the opcode table.
func (e *Engine) doExecute() (branchTaken bool, branchTarget uint32, err error) {
	slot := &e.execute
	if !slot.Valid {
		return false, 0, nil
	}

	inst := slot.Inst
	rs := int32(slot.RsValue)
	rt := int32(slot.RtValue)
	imm := inst.Imm

	switch inst.Op {
	case isa.OpADD:
		slot.ALUResult = rs + rt
	case isa.OpADDI:
		slot.ALUResult = rs + imm
	case isa.OpSUB:
		slot.ALUResult = rs - rt
	case isa.OpSUBI:
		slot.ALUResult = rs - imm
	case isa.OpMUL:
		slot.ALUResult = rs * rt
	case isa.OpMULI:
		slot.ALUResult = rs * imm
	case isa.OpOR:
		slot.ALUResult = int32(uint32(rs) | uint32(rt))
	case isa.OpORI:
		slot.ALUResult = int32(uint32(rs) | uint32(imm))
	case isa.OpAND:
		slot.ALUResult = int32(uint32(rs) & uint32(rt))
	case isa.OpANDI:
		slot.ALUResult = int32(uint32(rs) & uint32(imm))
	case isa.OpXOR:
		slot.ALUResult = int32(uint32(rs) ^ uint32(rt))
	case isa.OpXORI:
		slot.ALUResult = int32(uint32(rs) ^ uint32(imm))
	case isa.OpLDW, isa.OpSTW:
		slot.ALUResult = rs + imm
	case isa.OpBZ:
		if rs == 0 {
			slot.ALUResult = int32(slot.PC) + imm*4
			branchTaken = true
		}
	case isa.OpBEQ:
		if rs == rt {
			slot.ALUResult = int32(slot.PC) + imm*4
			branchTaken = true
		}
	case isa.OpJR:
		slot.ALUResult = rs
		branchTaken = true
	case isa.OpHALT:
		e.haltLatched = true
	default:
		return false, 0, fmt.Errorf("%w: %d", ErrInvalidOpcode, inst.Op)
	}

	if branchTaken {
		branchTarget = uint32(slot.ALUResult)
	}
	return branchTaken, branchTarget, nil
}

// decodeSourceValue resolves one of Decode's source registers, failing
// with ErrUnexpectedStallRead if called while the engine is stalled — an
// invariant violation that normal operation never triggers, since Decode
// itself is skipped while stalled.
func (e *Engine) decodeSourceValue(reg uint8) (uint32, error) {
	if e.stall {
		return 0, fmt.Errorf("%w: register %d", ErrUnexpectedStallRead, reg)
	}
	return ResolveSource(reg, e.execute, e.memory, e.forwardingEnabled, e.regs), nil
}

// doDecode records the decoded instruction's category, resolves its
// source register values, and determines its destination register.
func (e *Engine) doDecode() error {
	if !e.decode.Valid || e.stall {
		return nil
	}
	slot := &e.decode
	inst := slot.Inst

	e.stats.IncrementCategory(inst.Category)

	rs, err := e.decodeSourceValue(inst.Rs)
	if err != nil {
		return err
	}
	slot.RsValue = rs

	if inst.ReadsRtSource {
		rt, err := e.decodeSourceValue(inst.Rt)
		if err != nil {
			return err
		}
		slot.RtValue = rt
	}

	if dest, ok := inst.DestReg(); ok {
		slot.HasDest = true
		slot.Dest = dest
	} else {
		slot.HasDest = false
	}
	return nil
}

// doFetch reads and decodes the next instruction word, if Fetch is empty
// and halt has not been latched.
func (e *Engine) doFetch() error {
	if e.fetch.Valid || e.haltLatched {
		return nil
	}

	word, err := e.mem.ReadInstruction(e.pc)
	if err != nil {
		return err
	}
	inst := isa.Decode(word)

	e.fetch = Slot{Valid: true, Inst: inst, PC: e.pc}

	// HALT latches here rather than advancing the program counter past it,
	// so previously-fetched instructions still drain but the counter is
	// left pointing at HALT's own address for the rest of the run.
	if inst.IsHalt {
		e.haltLatched = true
	} else {
		e.pc += 4
	}
	return nil
}
