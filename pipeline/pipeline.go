// Package pipeline implements the five-stage in-order engine: the
// per-cycle state machine, the hazard/forwarding unit, and the statistics
// it feeds.
package pipeline

import (
	"github.com/nkanderson/MIPS-lite/state"
	"github.com/nkanderson/MIPS-lite/stats"
)

// Stage indices for Engine.Stage.
const (
	StageFetch = iota
	StageDecode
	StageExecute
	StageMemory
	StageWriteback
)

// Engine holds the five pipeline stage slots and the control state that
// governs their advancement: the program counter, the forwarding policy
// fixed at construction, the stall flag recomputed each cycle, and the
// halt/finished flags, which stay set once latched.
type Engine struct {
	regs  *state.RegisterFile
	mem   state.MemoryAccessor
	stats *stats.Collector

	forwardingEnabled bool

	pc uint32

	fetch, decode, execute, memory, writeback Slot

	stall           bool
	haltLatched     bool
	programFinished bool

	hazardCounted bool
}

// NewEngine constructs an Engine with an empty pipeline, program counter
// at 0, and the given forwarding policy. All three collaborators are
// required; a nil one fails with state.ErrNullDependency.
func NewEngine(regs *state.RegisterFile, mem state.MemoryAccessor, statsCollector *stats.Collector, forwardingEnabled bool) (*Engine, error) {
	if regs == nil || mem == nil || statsCollector == nil {
		return nil, state.ErrNullDependency
	}
	return &Engine{
		regs:              regs,
		mem:               mem,
		stats:             statsCollector,
		forwardingEnabled: forwardingEnabled,
	}, nil
}

// ProgramCounter returns the address of the next instruction to be fetched.
func (e *Engine) ProgramCounter() uint32 {
	return e.pc
}

// ForwardingEnabled reports the forwarding policy fixed at construction.
func (e *Engine) ForwardingEnabled() bool {
	return e.forwardingEnabled
}

// IsProgramFinished reports whether HALT has been observed and every
// stage slot has drained.
func (e *Engine) IsProgramFinished() bool {
	return e.programFinished
}

// Stage returns a copy of the slot at the given stage index (one of the
// Stage* constants); an out-of-range index returns an empty slot.
func (e *Engine) Stage(i int) Slot {
	switch i {
	case StageFetch:
		return e.fetch
	case StageDecode:
		return e.decode
	case StageExecute:
		return e.execute
	case StageMemory:
		return e.memory
	case StageWriteback:
		return e.writeback
	default:
		return Slot{}
	}
}

func (e *Engine) isEmpty() bool {
	return !e.fetch.Valid && !e.decode.Valid && !e.execute.Valid &&
		!e.memory.Valid && !e.writeback.Valid
}

// Cycle advances the machine by exactly one pipeline tick. It is a no-op
// once the program has finished.
func (e *Engine) Cycle() error {
	if e.programFinished {
		return nil
	}
	e.stats.IncrementCycles()

	if err := e.doWriteback(); err != nil {
		return err
	}
	if err := e.doMemory(); err != nil {
		return err
	}
	branchTaken, branchTarget, err := e.doExecute()
	if err != nil {
		return err
	}

	if branchTaken {
		e.resolveBranch(branchTarget)
		e.checkFinished()
		return nil
	}

	stall, hazardDetected := e.computeStall()
	e.stall = stall
	e.trackHazard(stall, hazardDetected)

	if err := e.doDecode(); err != nil {
		return err
	}
	if err := e.doFetch(); err != nil {
		return err
	}

	e.advance()
	e.checkFinished()
	return nil
}

// computeStall evaluates the hazard unit against Decode's current
// occupant, if any.
func (e *Engine) computeStall() (stall bool, hazardDetected bool) {
	if !e.decode.Valid {
		return false, false
	}
	return ComputeStall(sourceRegisters(e.decode.Inst), e.execute, e.memory, e.forwardingEnabled)
}

// trackHazard increments the data-hazard counter once per distinct hazard
// episode rather than once per stall cycle it produces: a non-forwarded
// hazard against Execute persists into a second stall cycle against
// Memory once its producer advances, and that is the same episode, not a
// new one. An episode ends the cycle Decode stops being stalled, whether
// because the hazard resolved via forwarding or because its source
// cleared, so the next stall (if any) belongs to a new occupant of Decode.
func (e *Engine) trackHazard(stall, hazardDetected bool) {
	if hazardDetected && !e.hazardCounted {
		e.stats.IncrementDataHazards()
	}
	e.hazardCounted = stall
}

// resolveBranch handles a taken branch resolved at Execute: it redirects
// the program counter, flushes Fetch and Decode, and performs the advance
// step with those two slots treated as empty, per the branch-resolution
// design (branches resolve at Execute, not Decode, costing a two-stage
// flush with no speculation).
func (e *Engine) resolveBranch(target uint32) {
	e.pc = target
	e.fetch.Clear()
	e.decode.Clear()
	e.stall = false
	e.hazardCounted = false
	e.advance()
}

// advance performs step 10 of the cycle: Memory moves to Writeback and
// Execute moves to Memory unconditionally; if stalled, Execute receives a
// bubble and Decode/Fetch are frozen in place, otherwise Decode moves to
// Execute and Fetch moves to Decode, leaving Fetch empty.
func (e *Engine) advance() {
	e.writeback = e.memory
	e.memory = e.execute

	if e.stall {
		e.execute = Slot{}
		e.stats.IncrementStalls()
		return
	}

	e.execute = e.decode
	e.decode = e.fetch
	e.fetch = Slot{}
}

func (e *Engine) checkFinished() {
	if e.haltLatched && e.isEmpty() {
		e.programFinished = true
	}
}
