package main

// machineBus adapts a Machine's memory and I/O port table to the Bus
// interface both CPU_Z80 and CPU_8080 depend on.
type machineBus struct {
	m *Machine
}

func (b *machineBus) Read(addr uint16) byte {
	return b.m.Mem.Get(addr)
}

func (b *machineBus) Write(addr uint16, value byte) {
	b.m.Mem.Put(addr, value, true)
}

func (b *machineBus) In(port uint16) byte {
	p := port & 0xFF
	h := b.m.ports[p]
	if h == nil {
		if b.m.IOTrapUnmapped {
			b.m.CPUErr = ErrIOTrapIn
		}
		return 0xFF
	}
	return h.In()
}

func (b *machineBus) Out(port uint16, value byte) {
	p := port & 0xFF
	h := b.m.ports[p]
	if h == nil {
		if b.m.IOTrapUnmapped {
			b.m.CPUErr = ErrIOTrapOut
		}
		return
	}
	h.Out(value)
}

func (b *machineBus) Tick(cycles int) {
	// No cycle-accurate peripheral ticking at the bus layer; consumers
	// needing sub-instruction timing observe TStates() directly.
}
