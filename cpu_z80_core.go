package main

// CPUCore adapter methods for CPU_Z80 (see machine.go's CPUCore interface):
// these translate the decoder's own field names and locking discipline into
// the narrower, machine-agnostic surface Machine drives both cores through.
// Split from cpu_z80.go because nothing here touches opcode dispatch.

func (c *CPU_Z80) ModelName() string {
	return "Z80"
}

func (c *CPU_Z80) GetPC() uint16 {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.PC
}

func (c *CPU_Z80) SetPC(pc uint16) {
	c.mutex.Lock()
	c.PC = pc
	c.mutex.Unlock()
}

func (c *CPU_Z80) IsHalted() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.Halted
}

// InterruptsEnabled reports IFF1: whether a maskable interrupt would be
// accepted right now.
func (c *CPU_Z80) InterruptsEnabled() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.IFF1
}

// PendingInterrupt reports whether an NMI or asserted INT line is
// currently latched, independent of whether IFF1 would accept it.
func (c *CPU_Z80) PendingInterrupt() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.nmiPending || c.nmiLine || c.irqLine
}

func (c *CPU_Z80) GetIM() byte {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.IM
}

// IllegalOpcodeTrapped always reports false: cpu_z80.go's decode tables
// are fully populated (a production Z80 core), so there is no
// unimplemented-opcode sentinel to surface here.
func (c *CPU_Z80) IllegalOpcodeTrapped() bool { return false }

func (c *CPU_Z80) TStates() uint64 {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.Cycles
}

// BusStatus reports the cpu_bus bitfield (spec.md §3) as of the most
// recently completed machine cycle: which kind of access it was (M1,
// MEMR, INP, OUT, WO) plus the HLTA/STACK/INTA context bits the decoder
// widens it with in pushWord/popWord/opHALT/serviceIRQ/serviceNMI.
func (c *CPU_Z80) BusStatus() byte {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.busStatus
}

// MEMPTR reports WZ, the internal address latch spec.md §9's glossary
// describes as the source of the undocumented Y/X flag bits after a
// memory-indirect operation (e.g. BIT n,(HL)).
func (c *CPU_Z80) MEMPTR() uint16 {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.WZ
}

// SetIntData latches the byte the interrupting device places on the data
// bus for the next INT acknowledge. In IM0 it is taken as an RST opcode
// and the CPU jumps to that RST's target (any other byte vectors to
// 0x0038; no other opcode is executed); in IM2 it is the low byte of the
// vector-table address; IM1 ignores it. A negative value drops the INT
// line instead of latching a byte.
func (c *CPU_Z80) SetIntData(data int) {
	c.mutex.Lock()
	if data < 0 {
		c.irqLine = false
	} else {
		c.irqVector = byte(data)
	}
	c.mutex.Unlock()
}

// RegisterSnapshot captures the fields the history ring and ICE debugger
// need without taking a lock per field.
type RegisterSnapshot struct {
	PC, SP, AF, BC, DE, HL, IX, IY, WZ uint16
}

func (c *CPU_Z80) Snapshot() RegisterSnapshot {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return RegisterSnapshot{
		PC: c.PC, SP: c.SP,
		AF: c.AF(), BC: c.BC(), DE: c.DE(), HL: c.HL(),
		IX: c.IX, IY: c.IY, WZ: c.WZ,
	}
}
