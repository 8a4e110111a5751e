package main

// DisassembledLine represents one disassembled instruction, produced by
// both disassembleZ80 (z80Dec.decode) and disassemble8080
// (decode8080Instruction) for the ICE l/trace commands.
type DisassembledLine struct {
	Address      uint64
	HexBytes     string
	Mnemonic     string
	Size         int
	IsPC         bool
	IsBranch     bool
	BranchTarget uint64
}
