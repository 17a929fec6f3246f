package state_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nkanderson/MIPS-lite/state"
)

func TestState(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "State Suite")
}

var _ = Describe("RegisterFile", func() {
	var rf *state.RegisterFile

	BeforeEach(func() {
		rf = state.NewRegisterFile()
	})

	It("initializes every register to zero", func() {
		for i := uint8(0); i < 32; i++ {
			Expect(rf.Read(i)).To(Equal(uint32(0)))
		}
	})

	It("reads back a written value", func() {
		rf.Write(5, 0xDEADBEEF)
		Expect(rf.Read(5)).To(Equal(uint32(0xDEADBEEF)))
	})

	It("always reads register 0 as zero", func() {
		rf.Write(0, 123)
		Expect(rf.Read(0)).To(Equal(uint32(0)))
	})

	It("discards writes to register 0", func() {
		rf.Write(1, 7)
		rf.Write(0, 999)
		Expect(rf.Read(1)).To(Equal(uint32(7)))
	})
})

var _ = Describe("Memory", func() {
	var mem *state.Memory

	BeforeEach(func() {
		mem = state.NewMemory()
	})

	It("reads a value back after writing it", func() {
		Expect(mem.WriteData(64, 42)).To(Succeed())
		v, err := mem.ReadData(64)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint32(42)))
	})

	It("reads zero before any write beyond the loaded image", func() {
		v, err := mem.ReadData(400)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint32(0)))
	})

	It("serves a loaded image on reads before any write", func() {
		mem.LoadImage([]uint32{0x11111111, 0x22222222})
		v, err := mem.ReadInstruction(4)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint32(0x22222222)))
	})

	It("fails with Unaligned on a non-multiple-of-4 address", func() {
		_, err := mem.ReadData(3)
		Expect(errors.Is(err, state.ErrUnaligned)).To(BeTrue())
	})

	It("fails with OutOfBounds at or beyond 4 KiB", func() {
		_, err := mem.ReadData(state.MemSize)
		Expect(errors.Is(err, state.ErrOutOfBounds)).To(BeTrue())
	})

	It("fails a write the same way as a read on a bad address", func() {
		err := mem.WriteData(4097, 1)
		Expect(errors.Is(err, state.ErrUnaligned)).To(BeTrue())
	})

	It("shares one address space between instruction and data accesses", func() {
		Expect(mem.WriteData(8, 99)).To(Succeed())
		v, err := mem.ReadInstruction(8)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint32(99)))
	})
})
