// Package stats collects the run-time statistics the engine reports:
// instruction counts by category, the sets of registers and memory
// addresses actually modified, and cycle/stall counters.
package stats

import (
	"sort"

	"github.com/nkanderson/MIPS-lite/isa"
)

// Collector is a dependency-injected statistics sink, passed into the
// engine at construction rather than owned internally, mirroring the
// original's Stats collaborator.
type Collector struct {
	categoryCounts [4]uint64
	registers      map[uint8]uint32
	addresses      map[uint32]uint32
	cycles         uint64
	stalls         uint64
	dataHazards    uint64
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		registers: make(map[uint8]uint32),
		addresses: make(map[uint32]uint32),
	}
}

// IncrementCategory records one decoded instruction of the given category.
func (c *Collector) IncrementCategory(cat isa.Category) {
	c.categoryCounts[cat]++
}

// CategoryCount returns the running count for one category.
func (c *Collector) CategoryCount(cat isa.Category) uint64 {
	return c.categoryCounts[cat]
}

// TotalInstructions returns the sum of all category counts.
func (c *Collector) TotalInstructions() uint64 {
	var total uint64
	for _, n := range c.categoryCounts {
		total += n
	}
	return total
}

// RecordRegisterWrite records a committed register write and its final
// value. Callers must not call this for register 0; it never appears in
// the modified set.
func (c *Collector) RecordRegisterWrite(index uint8, value uint32) {
	c.registers[index] = value
}

// RecordMemoryWrite records a committed memory write and its final value.
func (c *Collector) RecordMemoryWrite(address uint32, value uint32) {
	c.addresses[address] = value
}

// ModifiedRegisters returns the indices of every register ever committed
// to, sorted ascending. RegisterValue returns each one's final value.
func (c *Collector) ModifiedRegisters() []uint8 {
	indices := make([]uint8, 0, len(c.registers))
	for idx := range c.registers {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	return indices
}

// RegisterValue returns the final committed value for a modified register.
func (c *Collector) RegisterValue(index uint8) uint32 {
	return c.registers[index]
}

// ModifiedAddresses returns every address ever written, sorted ascending.
func (c *Collector) ModifiedAddresses() []uint32 {
	addrs := make([]uint32, 0, len(c.addresses))
	for a := range c.addresses {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

// AddressValue returns the final committed value at a modified address.
func (c *Collector) AddressValue(address uint32) uint32 {
	return c.addresses[address]
}

// IncrementCycles advances the cycle counter by one.
func (c *Collector) IncrementCycles() {
	c.cycles++
}

// Cycles returns the total cycle count.
func (c *Collector) Cycles() uint64 {
	return c.cycles
}

// IncrementStalls advances the stall counter by one.
func (c *Collector) IncrementStalls() {
	c.stalls++
}

// Stalls returns the total stall count.
func (c *Collector) Stalls() uint64 {
	return c.stalls
}

// IncrementDataHazards advances the data-hazard counter by one. This is
// tracked separately from stalls because a single hazard against Execute,
// without forwarding, costs two stall cycles.
func (c *Collector) IncrementDataHazards() {
	c.dataHazards++
}

// DataHazards returns the total count of detected data hazards.
func (c *Collector) DataHazards() uint64 {
	return c.dataHazards
}

// AverageStallsPerHazard returns stalls/dataHazards, or 0 if no hazard was
// ever detected.
func (c *Collector) AverageStallsPerHazard() float64 {
	if c.dataHazards == 0 {
		return 0
	}
	return float64(c.stalls) / float64(c.dataHazards)
}
