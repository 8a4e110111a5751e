// main.go - entry point for the Z80/8080 system simulator

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

func main() {
	confPath := flag.String("c", "", "alternate system.conf path")
	loadPath := flag.String("x", "", "load raw/Intel-hex file, PC=0 unless file specifies entry")
	fillByte := flag.Int("m", 0, "memory fill byte, -1 = pseudo-random")
	freqHz := flag.Float64("f", 0, "CPU frequency cap in Hz, 0 = unthrottled")
	allowUndoc := flag.Bool("u", false, "allow undocumented opcodes")
	savePath := flag.String("s", "", "save CPU+memory state on exit")
	listMode := flag.Bool("l", false, "print a disassembly listing instead of running")
	use8080 := flag.Bool("8080", false, "boot in 8080 decode mode instead of Z80")
	iceMode := flag.Bool("ice", false, "drop straight into the ICE REPL instead of free-run")
	flag.Parse()

	cfg := DefaultConfig()
	if *confPath != "" {
		loaded, err := LoadConfig(*confPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	m := NewMachine(!*use8080)
	m.Mem.Sections = cfg.Sections
	m.UndocumentedOpcodes = *allowUndoc
	m.FreqHz = *freqHz
	if err := m.Mem.Init(*fillByte, 0); err != nil {
		fmt.Fprintf(os.Stderr, "memory init: %v\n", err)
		os.Exit(1)
	}

	if *loadPath != "" {
		if err := loadProgram(m, *loadPath); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	switch {
	case *listMode:
		runListing(m)
		os.Exit(int(m.CPUErr))
	case *iceMode:
		runICE(m)
		os.Exit(int(m.CPUErr))
	default:
		runInteractive(m)
	}

	if *savePath != "" {
		if err := saveState(m, *savePath); err != nil {
			fmt.Fprintf(os.Stderr, "save: %v\n", err)
		}
	}
	os.Exit(int(m.CPUErr))
}

// loadProgram loads path as an Intel HEX file when it looks like one
// (starts with ':'), otherwise as a raw binary, both bypassing page
// attributes, and positions PC per spec.md §6.
func loadProgram(m *Machine, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), ":") {
		entry, hasEntry, err := loadIntelHex(m.Mem, path)
		if err != nil {
			return err
		}
		if hasEntry {
			m.core.SetPC(entry)
		}
		return nil
	}
	if err := m.Mem.LoadFile(path, 0, 65536); err != nil {
		return err
	}
	m.core.SetPC(0)
	return nil
}

// runListing implements -l: disassembles the first 64 bytes of memory,
// starting at address 0 whatever PC holds, without executing. main then
// exits with the numeric cpu_error value, which stays 0 (NONE) since
// nothing ran.
func runListing(m *Machine) {
	ice := NewICE(m, strings.NewReader(""), os.Stdout)
	for i := 0; i < 64; i++ {
		lines := ice.disasmLines(uint16(i), 1)
		if len(lines) == 0 {
			break
		}
		fmt.Printf("%04X: %-24s %s\n", lines[0].Address, lines[0].HexBytes, lines[0].Mnemonic)
		i += lines[0].Size - 1
	}
}

func runICE(m *Machine) {
	NewOperator(m) // wires WaitStep/WaitIntStep even in ICE-only sessions
	m.PowerOn()
	ice := NewICE(m, os.Stdin, os.Stdout)
	ice.Run()
}

// runInteractive drives the front panel's cooperating threads
// (spec.md §5) until power-off or SIGINT/SIGTERM.
func runInteractive(m *Machine) {
	op := NewOperator(m)
	m.PowerOn()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := op.Run(ctx); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "operator: %v\n", err)
	}
}

func saveState(m *Machine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	snap := m.Core().Snapshot()
	fmt.Fprintf(f, "PC=%04X SP=%04X AF=%04X BC=%04X DE=%04X HL=%04X IX=%04X IY=%04X\n",
		snap.PC, snap.SP, snap.AF, snap.BC, snap.DE, snap.HL, snap.IX, snap.IY)
	_, err = f.Write(m.Mem.data[:])
	return err
}
