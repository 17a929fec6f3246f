// Command mipslite runs a MIPS-lite program image through the five-stage
// pipeline simulator and reports instruction counts, modified state, and
// optional timing information.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nkanderson/MIPS-lite/image"
	"github.com/nkanderson/MIPS-lite/isa"
	"github.com/nkanderson/MIPS-lite/pipeline"
	"github.com/nkanderson/MIPS-lite/state"
	"github.com/nkanderson/MIPS-lite/stats"
)

// cycleBudget bounds how long a run may go without halting, so a
// malformed program that never reaches HALT cannot hang the process.
const cycleBudget = 100000

const defaultImagePath = "program.txt"

func main() {
	inputPath := flag.String("i", defaultImagePath, "input program image path")
	outputPath := flag.String("o", "", "output trace path (enables writing the trace on exit)")
	printImage := flag.Bool("m", false, "print the loaded memory image")
	printTiming := flag.Bool("t", false, "print timing information (cycles, stalls)")
	forwarding := flag.Bool("f", false, "enable operand forwarding")
	flag.Parse()

	if err := run(*inputPath, *outputPath, *printImage, *printTiming, *forwarding); err != nil {
		fmt.Fprintf(os.Stderr, "mipslite: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath string, printImage, printTiming, forwarding bool) error {
	words, err := image.Load(inputPath)
	if err != nil {
		return err
	}

	mem := state.NewMemory()
	mem.LoadImage(words)

	if printImage {
		printLoadedImage(words)
	}

	regs := state.NewRegisterFile()
	sc := stats.NewCollector()
	engine, err := pipeline.NewEngine(regs, mem, sc, forwarding)
	if err != nil {
		return err
	}

	cycles := 0
	for !engine.IsProgramFinished() {
		if cycles >= cycleBudget {
			return fmt.Errorf("exceeded cycle budget of %d without halting", cycleBudget)
		}
		if err := engine.Cycle(); err != nil {
			return err
		}
		cycles++
	}

	printReport(sc, engine, printTiming)

	if outputPath != "" && len(sc.ModifiedAddresses()) > 0 {
		if err := image.WriteTrace(outputPath, mem.Snapshot()); err != nil {
			return err
		}
	}
	return nil
}

func printLoadedImage(words []uint32) {
	for i, w := range words {
		fmt.Printf("%4d: %08X\n", i*4, w)
	}
}

var categoryLabels = []struct {
	category isa.Category
	label    string
}{
	{isa.CategoryArithmetic, "arithmetic"},
	{isa.CategoryLogical, "logical"},
	{isa.CategoryMemoryAccess, "memory"},
	{isa.CategoryControlFlow, "control flow"},
}

func printReport(sc *stats.Collector, engine *pipeline.Engine, printTiming bool) {
	for _, c := range categoryLabels {
		fmt.Printf("%s: %d\n", c.label, sc.CategoryCount(c.category))
	}
	fmt.Printf("total: %d\n", sc.TotalInstructions())

	fmt.Printf("PC: %d\n", engine.ProgramCounter())

	for _, reg := range sc.ModifiedRegisters() {
		fmt.Printf("r%d: %d\n", reg, sc.RegisterValue(reg))
	}

	if printTiming {
		fmt.Printf("stalls: %d\n", sc.Stalls())
	}

	for _, addr := range sc.ModifiedAddresses() {
		fmt.Printf("mem[%d]: %d\n", addr, sc.AddressValue(addr))
	}

	if printTiming {
		fmt.Printf("cycles: %d\n", sc.Cycles())
	}
}
