package main

import "testing"

func step8080(r *cpu8080TestRig) {
	r.cpu.Step()
}

func TestCPU8080_MOV(t *testing.T) {
	r := newCPU8080TestRig()
	r.load(0x0000, []byte{0x41}) // MOV B,C
	r.cpu.C = 0x42
	step8080(r)
	require8080EqualU8(t, "B", r.cpu.B, 0x42)
	require8080EqualU16(t, "PC", r.cpu.PC, 0x0001)
}

func TestCPU8080_MOV_MemoryOperand(t *testing.T) {
	r := newCPU8080TestRig()
	r.load(0x0000, []byte{0x77}) // MOV M,A
	r.cpu.A = 0x99
	r.cpu.SetHL(0x2000)
	step8080(r)
	require8080EqualU8(t, "(HL)", r.bus.mem[0x2000], 0x99)
}

func TestCPU8080_ADI_SetsCarryAndZero(t *testing.T) {
	r := newCPU8080TestRig()
	r.load(0x0000, []byte{0xC6, 0x01}) // ADI 1
	r.cpu.A = 0xFF
	step8080(r)
	require8080EqualU8(t, "A", r.cpu.A, 0x00)
	if !r.cpu.Flag(f8080C) {
		t.Fatal("expected carry set")
	}
	if !r.cpu.Flag(f8080Z) {
		t.Fatal("expected zero set")
	}
}

func TestCPU8080_DAA(t *testing.T) {
	r := newCPU8080TestRig()
	r.load(0x0000, []byte{0x27}) // DAA
	r.cpu.A = 0x9B
	r.cpu.F = f8080Fixed1
	step8080(r)
	require8080EqualU8(t, "A", r.cpu.A, 0x01)
	if !r.cpu.Flag(f8080C) {
		t.Fatal("expected carry set")
	}
	if !r.cpu.Flag(f8080AC) {
		t.Fatal("expected aux-carry set")
	}
}

func TestCPU8080_HLT_SetsHalted(t *testing.T) {
	r := newCPU8080TestRig()
	r.load(0x0000, []byte{0x76}) // HLT
	step8080(r)
	if !r.cpu.IsHalted() {
		t.Fatal("expected halted")
	}
}

func TestCPU8080_ConditionalJump(t *testing.T) {
	r := newCPU8080TestRig()
	r.load(0x0000, []byte{0xC2, 0x00, 0x10}) // JNZ 0x1000
	r.cpu.F = f8080Fixed1                    // Z clear
	step8080(r)
	require8080EqualU16(t, "PC", r.cpu.PC, 0x1000)
}

func TestCPU8080_PushPop(t *testing.T) {
	r := newCPU8080TestRig()
	r.load(0x0000, []byte{0xC5, 0xC1}) // PUSH B / POP B
	r.cpu.SP = 0x2000
	r.cpu.SetBC(0x1234)
	step8080(r)
	require8080EqualU16(t, "SP", r.cpu.SP, 0x1FFE)
	r.cpu.SetBC(0)
	step8080(r)
	require8080EqualU16(t, "BC", r.cpu.BC(), 0x1234)
	require8080EqualU16(t, "SP", r.cpu.SP, 0x2000)
}

func TestCPU8080_RST(t *testing.T) {
	r := newCPU8080TestRig()
	r.load(0x0000, []byte{0xCF}) // RST 1
	r.cpu.SP = 0x2000
	step8080(r)
	require8080EqualU16(t, "PC", r.cpu.PC, 0x0008)
}

func TestCPU8080_InterruptAcknowledge(t *testing.T) {
	r := newCPU8080TestRig()
	r.load(0x0000, []byte{0xFB, 0x00}) // EI, NOP
	step8080(r)                        // EI
	r.cpu.SetIntData(0xCF)              // RST 1
	r.cpu.irqLine = true
	r.cpu.SP = 0x2000
	step8080(r)
	require8080EqualU16(t, "PC", r.cpu.PC, 0x0008)
}
