package main

import (
	"fmt"
	"strings"
)

// disassemble8080 mirrors disassembleZ80's shape for the 8080 decoder,
// so the ICE debugger can treat both cores identically.
func disassemble8080(readMem func(addr uint64, size int) []byte, addr uint64, count int) []DisassembledLine {
	var lines []DisassembledLine
	for range count {
		data := readMem(addr, 3)
		if len(data) < 1 {
			break
		}
		size, mnemonic := decode8080Instruction(data, uint16(addr))
		var hexParts []string
		for j := 0; j < size && j < len(data); j++ {
			hexParts = append(hexParts, fmt.Sprintf("%02X", data[j]))
		}
		line := DisassembledLine{
			Address:  addr,
			HexBytes: strings.Join(hexParts, " "),
			Mnemonic: mnemonic,
			Size:     size,
		}
		op := data[0]
		switch {
		case op == 0xC3 || op&0xC7 == 0xC2:
			line.IsBranch = true
			if len(data) >= 3 {
				line.BranchTarget = uint64(uint16(data[1]) | uint16(data[2])<<8)
			}
		case op == 0xCD || op&0xC7 == 0xC4:
			line.IsBranch = true
			if len(data) >= 3 {
				line.BranchTarget = uint64(uint16(data[1]) | uint16(data[2])<<8)
			}
		}
		lines = append(lines, line)
		addr += uint64(size)
	}
	return lines
}

// regName8080 maps the reg8 encoding (B=0,C=1,D=2,E=3,H=4,L=5,M=6,A=7)
// to its mnemonic, matching cpu_8080.go's regs8 layout.
var regName8080 = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

var condName8080 = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

// decode8080Instruction disassembles one Intel 8080 instruction starting
// at pc, returning its size in bytes and its mnemonic. Mirrors
// z80Dec.decode's shape so the ICE debugger can share call sites across
// both decoders.
func decode8080Instruction(data []byte, pc uint16) (int, string) {
	if len(data) == 0 {
		return 1, "?"
	}
	op := data[0]
	b1 := func() byte {
		if len(data) > 1 {
			return data[1]
		}
		return 0
	}
	w1 := func() uint16 {
		if len(data) > 2 {
			return uint16(data[1]) | uint16(data[2])<<8
		}
		return 0
	}

	switch {
	case op == 0x00 || op == 0x08 || op == 0x10 || op == 0x18 || op == 0x20 || op == 0x28 || op == 0x30 || op == 0x38:
		return 1, "NOP"
	case op == 0x76:
		return 1, "HLT"
	case op >= 0x40 && op <= 0x7F:
		dst, src := (op>>3)&7, op&7
		return 1, fmt.Sprintf("MOV %s,%s", regName8080[dst], regName8080[src])
	case op >= 0x80 && op <= 0xBF:
		src := regName8080[op&7]
		names := [8]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}
		return 1, fmt.Sprintf("%s %s", names[(op>>3)&7], src)
	case op&0xC7 == 0x04:
		return 1, fmt.Sprintf("INR %s", regName8080[(op>>3)&7])
	case op&0xC7 == 0x05:
		return 1, fmt.Sprintf("DCR %s", regName8080[(op>>3)&7])
	case op&0xC7 == 0x06:
		return 2, fmt.Sprintf("MVI %s,%02X", regName8080[(op>>3)&7], b1())
	case op&0xC7 == 0xC0:
		return 1, fmt.Sprintf("RET %s", condName8080[(op>>3)&7])
	case op&0xC7 == 0xC2:
		return 3, fmt.Sprintf("JMP %s,%04X", condName8080[(op>>3)&7], w1())
	case op&0xC7 == 0xC4:
		return 3, fmt.Sprintf("CALL %s,%04X", condName8080[(op>>3)&7], w1())
	case op&0xC7 == 0xC7:
		return 1, fmt.Sprintf("RST %d", (op>>3)&7)
	case op&0xCF == 0x01:
		return 3, fmt.Sprintf("LXI %s,%04X", rpName8080((op>>4)&3), w1())
	case op&0xCF == 0x02:
		return 1, fmt.Sprintf("STAX %s", rpName8080((op>>4)&3))
	case op&0xCF == 0x0A:
		return 1, fmt.Sprintf("LDAX %s", rpName8080((op>>4)&3))
	case op&0xCF == 0x03:
		return 1, fmt.Sprintf("INX %s", rpName8080((op>>4)&3))
	case op&0xCF == 0x0B:
		return 1, fmt.Sprintf("DCX %s", rpName8080((op>>4)&3))
	case op&0xCF == 0x09:
		return 1, fmt.Sprintf("DAD %s", rpName8080((op>>4)&3))
	case op&0xCF == 0xC5:
		return 1, fmt.Sprintf("PUSH %s", pushPopName8080((op>>4)&3))
	case op&0xCF == 0xC1:
		return 1, fmt.Sprintf("POP %s", pushPopName8080((op>>4)&3))
	}

	switch op {
	case 0x07:
		return 1, "RLC"
	case 0x0F:
		return 1, "RRC"
	case 0x17:
		return 1, "RAL"
	case 0x1F:
		return 1, "RAR"
	case 0x22:
		return 3, fmt.Sprintf("SHLD %04X", w1())
	case 0x2A:
		return 3, fmt.Sprintf("LHLD %04X", w1())
	case 0x27:
		return 1, "DAA"
	case 0x2F:
		return 1, "CMA"
	case 0x32:
		return 3, fmt.Sprintf("STA %04X", w1())
	case 0x37:
		return 1, "STC"
	case 0x3A:
		return 3, fmt.Sprintf("LDA %04X", w1())
	case 0x3F:
		return 1, "CMC"
	case 0xC3:
		return 3, fmt.Sprintf("JMP %04X", w1())
	case 0xC9:
		return 1, "RET"
	case 0xCD:
		return 3, fmt.Sprintf("CALL %04X", w1())
	case 0xC6:
		return 2, fmt.Sprintf("ADI %02X", b1())
	case 0xCE:
		return 2, fmt.Sprintf("ACI %02X", b1())
	case 0xD6:
		return 2, fmt.Sprintf("SUI %02X", b1())
	case 0xDE:
		return 2, fmt.Sprintf("SBI %02X", b1())
	case 0xE6:
		return 2, fmt.Sprintf("ANI %02X", b1())
	case 0xEE:
		return 2, fmt.Sprintf("XRI %02X", b1())
	case 0xF6:
		return 2, fmt.Sprintf("ORI %02X", b1())
	case 0xFE:
		return 2, fmt.Sprintf("CPI %02X", b1())
	case 0xD3:
		return 2, fmt.Sprintf("OUT %02X", b1())
	case 0xDB:
		return 2, fmt.Sprintf("IN %02X", b1())
	case 0xE3:
		return 1, "XTHL"
	case 0xE9:
		return 1, "PCHL"
	case 0xEB:
		return 1, "XCHG"
	case 0xF3:
		return 1, "DI"
	case 0xF9:
		return 1, "SPHL"
	case 0xFB:
		return 1, "EI"
	case 0xCB, 0xDD, 0xED, 0xFD:
		return 1, "NOP*"
	case 0xD9:
		return 1, "RET*"
	}

	return 1, fmt.Sprintf("DB %02X", op)
}

func rpName8080(rp byte) string {
	return [4]string{"B", "D", "H", "SP"}[rp]
}

func pushPopName8080(rp byte) string {
	return [4]string{"B", "D", "H", "PSW"}[rp]
}
