package main

import "testing"

func TestMachine_StepAdvancesAndStops(t *testing.T) {
	m := NewMachine(true)
	m.Mem.Put(0x0000, 0x00, false) // NOP
	m.Step()
	if m.CPUState.base() != StateStopped {
		t.Fatalf("expected STOPPED after Step, got %v", m.CPUState)
	}
	if m.Core().GetPC() != 0x0001 {
		t.Fatalf("expected PC=1, got %04X", m.Core().GetPC())
	}
}

func TestMachine_RunStopsOnOpHalt(t *testing.T) {
	m := NewMachine(true)
	m.Mem.Put(0x0000, 0x00, false) // NOP
	m.Mem.Put(0x0001, 0x76, false) // HALT
	m.Run()
	if m.CPUErr != ErrOpHalt {
		t.Fatalf("expected OPHALT, got %v", m.CPUErr)
	}
}

func TestMachine_SoftwareBreakpointTrampoline(t *testing.T) {
	m := NewMachine(true)
	m.Mem.Put(0x0000, 0x00, false) // NOP
	m.Mem.Put(0x0001, 0x00, false) // NOP (breakpoint target, will become 0x76)
	m.Mem.Put(0x0002, 0x00, false) // NOP

	m.SetBreakpoint(0, 0x0001, 1)
	if got := m.Mem.Get(0x0001); got != 0x76 {
		t.Fatalf("expected HALT trampoline installed, got %02X", got)
	}

	m.Run()
	if m.CPUErr != ErrOpHalt {
		t.Fatalf("expected OPHALT at breakpoint, got %v", m.CPUErr)
	}
	stop, slot, addr := m.HandleBreak()
	if !stop || slot != 0 || addr != 0x0001 {
		t.Fatalf("expected breakpoint 0 hit at 0x0001, got stop=%v slot=%d addr=%04X", stop, slot, addr)
	}
	if got := m.Mem.Get(0x0001); got != 0x76 {
		t.Fatalf("expected trampoline reinstated after single-step-over, got %02X", got)
	}
	if m.Core().GetPC() != 0x0002 {
		t.Fatalf("expected PC past the breakpoint instruction, got %04X", m.Core().GetPC())
	}
}

func TestMachine_BreakpointPassCounter(t *testing.T) {
	m := NewMachine(true)
	for i := uint16(0); i < 4; i++ {
		m.Mem.Put(i, 0x00, false) // NOP x4, loop body simulated linearly
	}
	m.SetBreakpoint(0, 0x0002, 2)

	m.Run()
	stop, _, _ := m.HandleBreak()
	if stop {
		t.Fatal("expected first pass to not stop (pass target is 2)")
	}

	m.CPUErr = ErrNone
	m.Core().SetPC(0x0000)
	m.Run()
	stop, _, _ = m.HandleBreak()
	if !stop {
		t.Fatal("expected second pass to stop")
	}
}

func TestMachine_RaiseInterruptRejectsNonRSTDataInIM0(t *testing.T) {
	m := NewMachine(true)
	m.RaiseInterrupt(0x00) // not an RST opcode
	if m.CPUErr != ErrIntError {
		t.Fatalf("expected INTERROR, got %v", m.CPUErr)
	}
}

func TestMachine_RaiseInterruptAcceptsRSTInIM0(t *testing.T) {
	m := NewMachine(true)
	m.RaiseInterrupt(0xFF) // 0xFF & 0xC7 == 0xC7: RST 7
	if m.CPUErr == ErrIntError {
		t.Fatal("expected RST-encoded int_data to be accepted")
	}
}

func TestMachine_PowerOffSetsError(t *testing.T) {
	m := NewMachine(true)
	m.PowerOn()
	m.PowerOff()
	if m.Powered() {
		t.Fatal("expected machine powered off")
	}
	if m.CPUErr != ErrPowerOff {
		t.Fatalf("expected POWEROFF, got %v", m.CPUErr)
	}
}

func TestMachine_SwitchModelCarriesCommonRegisters(t *testing.T) {
	m := NewMachine(true)
	m.zCore.SetBC(0x1234)
	m.zCore.PC = 0x5678
	m.SwitchModel("8080")
	m.Mem.Put(m.zCore.PC, 0x00, false)
	m.Step() // model switch applies at the next instruction boundary
	if _, ok := m.Core().(*CPU_8080); !ok {
		t.Fatal("expected active core to be 8080 after switch")
	}
	if m.eCore.BC() != 0x1234 {
		t.Fatalf("expected BC carried over, got %04X", m.eCore.BC())
	}
}
