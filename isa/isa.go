// Package isa defines the MIPS-lite instruction set: opcodes, instruction
// categories, encoding formats, and the decoder that turns a raw 32-bit
// word into a decoded instruction record.
package isa

// Op identifies one of the eighteen MIPS-lite opcodes.
type Op uint8

// MIPS-lite opcodes, in decimal per spec §3.
const (
	OpADD  Op = 0
	OpADDI Op = 1
	OpSUB  Op = 2
	OpSUBI Op = 3
	OpMUL  Op = 4
	OpMULI Op = 5
	OpOR   Op = 6
	OpORI  Op = 7
	OpAND  Op = 8
	OpANDI Op = 9
	OpXOR  Op = 10
	OpXORI Op = 11
	OpLDW  Op = 12
	OpSTW  Op = 13
	OpBZ   Op = 14
	OpBEQ  Op = 15
	OpJR   Op = 16
	OpHALT Op = 17
)

// Category groups opcodes by the ALU/memory/control effect they have.
type Category uint8

// Instruction categories.
const (
	CategoryArithmetic  Category = iota
	CategoryLogical
	CategoryMemoryAccess
	CategoryControlFlow
)

// String names a category for diagnostics and reports.
func (c Category) String() string {
	switch c {
	case CategoryArithmetic:
		return "arithmetic"
	case CategoryLogical:
		return "logical"
	case CategoryMemoryAccess:
		return "memory"
	case CategoryControlFlow:
		return "control_flow"
	default:
		return "unknown"
	}
}

// Format distinguishes the two MIPS-lite encodings.
type Format uint8

// Instruction formats.
const (
	FormatRType Format = iota
	FormatIType
)

// categoryOf classifies an opcode into one of the four instruction
// categories, per spec §3 ("Category assignment").
func categoryOf(op Op) Category {
	switch {
	case op <= OpMULI:
		return CategoryArithmetic
	case op <= OpXORI:
		return CategoryLogical
	case op <= OpSTW:
		return CategoryMemoryAccess
	default:
		return CategoryControlFlow
	}
}

// formatOf returns the encoding format for an opcode. Only the six
// register-register ALU opcodes are R-type; everything else is I-type.
func formatOf(op Op) Format {
	switch op {
	case OpADD, OpSUB, OpMUL, OpOR, OpAND, OpXOR:
		return FormatRType
	default:
		return FormatIType
	}
}

// readsRtAsSource reports whether the decode stage must resolve rt as a
// second operand, per spec §4.5 ("Decode's relevant source registers").
func readsRtAsSource(op Op, format Format) bool {
	if format == FormatRType {
		return true
	}
	return op == OpBEQ || op == OpSTW
}

// writesRegister reports whether an opcode commits a register write at
// Writeback, per spec §3's "Register-write rule".
func writesRegister(op Op) bool {
	switch op {
	case OpADD, OpSUB, OpMUL, OpOR, OpAND, OpXOR:
		return true // R-type
	case OpADDI, OpSUBI, OpMULI, OpORI, OpANDI, OpXORI, OpLDW:
		return true
	default:
		return false
	}
}

// Instruction is an immutable decoded record. Rd and Imm are present only
// for the formats that carry them; HasRd/HasImm report which.
type Instruction struct {
	Raw      uint32
	Op       Op
	Category Category
	Format   Format

	Rs uint8
	Rt uint8

	Rd    uint8
	HasRd bool

	Imm    int32
	HasImm bool

	WritesRegister bool
	ReadsRtSource  bool
	IsLoad         bool
	IsStore        bool
	IsBranch       bool
	IsJump         bool
	IsHalt         bool
}

// DestReg returns the instruction's destination register and whether it
// writes one at all, per spec §3's "Register-write rule": rd for R-type,
// rt for the listed I-type writers.
func (i *Instruction) DestReg() (reg uint8, ok bool) {
	if !i.WritesRegister {
		return 0, false
	}
	if i.HasRd {
		return i.Rd, true
	}
	return i.Rt, true
}

// extractBits returns length bits of value starting at bit position start
// (counting from the LSB), mirroring mips_lite_defs.h's extract_bits.
func extractBits(value uint32, start, length int) uint32 {
	return (value >> start) & ((1 << length) - 1)
}

// signExtend16 sign-extends a 16-bit two's-complement field to int32.
func signExtend16(v uint16) int32 {
	return int32(int16(v))
}

// Decode decodes a raw 32-bit instruction word into its fields and derived
// flags per spec §3 and §4.1. Decode never fails: an opcode value outside
// [0,17] simply produces an Instruction whose Op does not match any case
// handled downstream, and the fault surfaces as InvalidOpcode only if that
// instruction reaches Execute (spec §4.1).
func Decode(word uint32) *Instruction {
	opcode := Op(extractBits(word, 26, 6))
	format := formatOf(opcode)

	inst := &Instruction{
		Raw:      word,
		Op:       opcode,
		Category: categoryOf(opcode),
		Format:   format,
		Rs:       uint8(extractBits(word, 21, 5)),
		Rt:       uint8(extractBits(word, 16, 5)),
	}

	if format == FormatRType {
		inst.Rd = uint8(extractBits(word, 11, 5))
		inst.HasRd = true
	} else {
		inst.Imm = signExtend16(uint16(extractBits(word, 0, 16)))
		inst.HasImm = true
	}

	inst.WritesRegister = writesRegister(opcode)
	inst.ReadsRtSource = readsRtAsSource(opcode, format)
	inst.IsLoad = opcode == OpLDW
	inst.IsStore = opcode == OpSTW
	inst.IsBranch = opcode == OpBZ || opcode == OpBEQ
	inst.IsJump = opcode == OpJR
	inst.IsHalt = opcode == OpHALT

	return inst
}

// Encode re-assembles a raw 32-bit word from a decoded instruction's field
// positions, the inverse of Decode. Used by the round-trip property test in
// spec §8.
func Encode(i *Instruction) uint32 {
	word := uint32(i.Op)<<26 | uint32(i.Rs)<<21 | uint32(i.Rt)<<16

	if i.Format == FormatRType {
		word |= uint32(i.Rd) << 11
	} else {
		word |= uint32(uint16(i.Imm))
	}

	return word
}
