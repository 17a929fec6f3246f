package state

import "fmt"

// MemSize is the size of the addressable memory in bytes (4 KiB), per the
// word-addressable 1,024-entry space the engine requires.
const MemSize = 4096

// MemoryAccessor is the contract the pipeline engine depends on, mirroring
// the original's IMemoryParser boundary: it lets tests inject a fake memory
// in place of the real word-addressable store.
type MemoryAccessor interface {
	ReadInstruction(address uint32) (uint32, error)
	ReadData(address uint32) (uint32, error)
	WriteData(address uint32, value uint32) error
}

// Memory is a word-addressable 4 KiB store shared by instruction and data
// accesses. Reads before any write return the loaded program image,
// conceptually zero-extended to the full 4 KiB.
type Memory struct {
	words [MemSize / 4]uint32
}

// NewMemory returns an empty (all-zero) memory.
func NewMemory() *Memory {
	return &Memory{}
}

// LoadImage copies words into the start of memory, one word per address
// 4*i, leaving the remainder zeroed. It does not validate length against
// MemSize; callers (the image loader) enforce the 1,024-word limit before
// calling this.
func (m *Memory) LoadImage(words []uint32) {
	for i, w := range words {
		m.words[i] = w
	}
}

// Snapshot returns the full 1,024-word image, for the output trace writer.
func (m *Memory) Snapshot() [MemSize / 4]uint32 {
	return m.words
}

func checkAddress(address uint32) error {
	if address%4 != 0 {
		return fmt.Errorf("%w: address 0x%08X", ErrUnaligned, address)
	}
	if address >= MemSize {
		return fmt.Errorf("%w: address 0x%08X", ErrOutOfBounds, address)
	}
	return nil
}

// ReadInstruction reads the word at address for instruction fetch.
func (m *Memory) ReadInstruction(address uint32) (uint32, error) {
	if err := checkAddress(address); err != nil {
		return 0, err
	}
	return m.words[address/4], nil
}

// ReadData reads the word at address for a data (LDW) access.
func (m *Memory) ReadData(address uint32) (uint32, error) {
	if err := checkAddress(address); err != nil {
		return 0, err
	}
	return m.words[address/4], nil
}

// WriteData writes value to address for a data (STW) access.
func (m *Memory) WriteData(address uint32, value uint32) error {
	if err := checkAddress(address); err != nil {
		return err
	}
	m.words[address/4] = value
	return nil
}
