package pipeline

import (
	"testing"

	"github.com/nkanderson/MIPS-lite/isa"
	"github.com/nkanderson/MIPS-lite/state"
)

func writerSlot(dest uint8, isLoad bool) Slot {
	op := isa.OpADD
	if isLoad {
		op = isa.OpLDW
	}
	return Slot{
		Valid:   true,
		Inst:    &isa.Instruction{Op: op, IsLoad: isLoad, WritesRegister: true},
		HasDest: true,
		Dest:    dest,
	}
}

func TestComputeStall(t *testing.T) {
	cases := []struct {
		name              string
		srcRegs           []uint8
		execute           Slot
		memory            Slot
		forwardingEnabled bool
		wantStall         bool
		wantHazard        bool
	}{
		{
			name:      "no hazard when neither stage writes a source register",
			srcRegs:   []uint8{1, 2},
			execute:   Slot{},
			memory:    Slot{},
			wantStall: false, wantHazard: false,
		},
		{
			name:              "hazard against Execute non-load, no forwarding, stalls",
			srcRegs:           []uint8{5},
			execute:           writerSlot(5, false),
			forwardingEnabled: false,
			wantStall:         true, wantHazard: true,
		},
		{
			name:              "hazard against Execute non-load, forwarding, no stall",
			srcRegs:           []uint8{5},
			execute:           writerSlot(5, false),
			forwardingEnabled: true,
			wantStall:         false, wantHazard: true,
		},
		{
			name:              "load-use hazard stalls even with forwarding",
			srcRegs:           []uint8{5},
			execute:           writerSlot(5, true),
			forwardingEnabled: true,
			wantStall:         true, wantHazard: true,
		},
		{
			name:              "load-use hazard stalls without forwarding",
			srcRegs:           []uint8{5},
			execute:           writerSlot(5, true),
			forwardingEnabled: false,
			wantStall:         true, wantHazard: true,
		},
		{
			name:              "hazard against Memory, no forwarding, stalls",
			srcRegs:           []uint8{9},
			memory:            writerSlot(9, false),
			forwardingEnabled: false,
			wantStall:         true, wantHazard: true,
		},
		{
			name:              "hazard against Memory, forwarding, no stall",
			srcRegs:           []uint8{9},
			memory:            writerSlot(9, false),
			forwardingEnabled: true,
			wantStall:         false, wantHazard: true,
		},
		{
			name:      "register 0 never causes a hazard",
			srcRegs:   []uint8{0},
			execute:   writerSlot(0, false),
			wantStall: false, wantHazard: false,
		},
		{
			name:              "Execute takes priority over Memory for the same register",
			srcRegs:           []uint8{7},
			execute:           writerSlot(7, true),
			memory:            writerSlot(7, false),
			forwardingEnabled: true,
			wantStall:         true, wantHazard: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stall, hazard := ComputeStall(tc.srcRegs, tc.execute, tc.memory, tc.forwardingEnabled)
			if stall != tc.wantStall {
				t.Errorf("stall = %v, want %v", stall, tc.wantStall)
			}
			if hazard != tc.wantHazard {
				t.Errorf("hazardDetected = %v, want %v", hazard, tc.wantHazard)
			}
		})
	}
}

func TestResolveSource(t *testing.T) {
	regs := state.NewRegisterFile()
	regs.Write(3, 111)

	cases := []struct {
		name              string
		reg               uint8
		execute           Slot
		memory            Slot
		forwardingEnabled bool
		want              uint32
	}{
		{
			name: "register 0 always resolves to 0",
			reg:  0,
			want: 0,
		},
		{
			name:              "forwards Execute's ALU result when not a load",
			reg:               3,
			execute:           Slot{Valid: true, HasDest: true, Dest: 3, ALUResult: 42, Inst: &isa.Instruction{}},
			forwardingEnabled: true,
			want:              42,
		},
		{
			name: "does not forward an Execute load's ALU result (effective address)",
			reg:  3,
			execute: Slot{Valid: true, HasDest: true, Dest: 3, ALUResult: 999,
				Inst: &isa.Instruction{IsLoad: true}},
			forwardingEnabled: true,
			want:              111, // falls through to the register file
		},
		{
			name: "forwards Memory's load result for LDW",
			reg:  3,
			memory: Slot{Valid: true, HasDest: true, Dest: 3, MemLoad: 77,
				Inst: &isa.Instruction{IsLoad: true}},
			forwardingEnabled: true,
			want:              77,
		},
		{
			name:              "forwards Memory's ALU result for a non-load writer",
			reg:               3,
			memory:            Slot{Valid: true, HasDest: true, Dest: 3, ALUResult: 55, Inst: &isa.Instruction{}},
			forwardingEnabled: true,
			want:              55,
		},
		{
			name:              "falls back to the register file with forwarding disabled",
			reg:               3,
			execute:           Slot{Valid: true, HasDest: true, Dest: 3, ALUResult: 42, Inst: &isa.Instruction{}},
			forwardingEnabled: false,
			want:              111,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveSource(tc.reg, tc.execute, tc.memory, tc.forwardingEnabled, regs)
			if got != tc.want {
				t.Errorf("ResolveSource() = %d, want %d", got, tc.want)
			}
		})
	}
}
