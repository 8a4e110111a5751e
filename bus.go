package main

import "sync"

// Bus status bits, matching spec.md §3's cpu_bus bitfield (itself modeled
// on the real 8080/Z80 SYNC status byte): every CPUCore implementation
// updates its own copy at each machine-cycle boundary so the operator LEDs
// and ICE can report what kind of cycle is in flight without polling the
// decoder's internals.
const (
	BusM1    byte = 0x80 // opcode fetch in progress
	BusMEMR  byte = 0x40 // memory read cycle
	BusINP   byte = 0x20 // I/O input cycle
	BusOUT   byte = 0x10 // I/O output cycle
	BusHLTA  byte = 0x08 // halt acknowledge: CPU is in the halt loop
	BusSTACK byte = 0x04 // cycle touches the stack (push/pop/call/ret)
	BusWO    byte = 0x02 // write-output: this cycle is a memory or I/O write
	BusINTA  byte = 0x01 // interrupt acknowledge cycle
)

// BusMaster is the DMA master callback contract from spec.md §4.3:
// invoked with bus_ack=1 while a bus request is outstanding, returning
// the T-states it consumed. Returning 0 signals completion.
type BusMaster func(busAck bool) int

// BusArbiter tracks bus_request and the single registered DMA master,
// matching spec.md §4.3 ("only one master at a time; contention is the
// caller's responsibility").
type BusArbiter struct {
	mu        sync.Mutex
	requested bool
	mode      int
	master    BusMaster
}

func NewBusArbiter() *BusArbiter {
	return &BusArbiter{}
}

// StartBusRequest registers the DMA master and raises bus_request.
func (b *BusArbiter) StartBusRequest(mode int, master BusMaster) {
	b.mu.Lock()
	b.requested = true
	b.mode = mode
	b.master = master
	b.mu.Unlock()
}

func (b *BusArbiter) EndBusRequest() {
	b.mu.Lock()
	b.requested = false
	b.master = nil
	b.mu.Unlock()
}

func (b *BusArbiter) Requested() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requested
}

// Drain runs the registered master repeatedly, between CPU instructions,
// until it returns 0 (implicit end of request) or no request is pending.
// Returns the total T-states yielded to the master.
func (b *BusArbiter) Drain() int {
	total := 0
	for {
		b.mu.Lock()
		master := b.master
		requested := b.requested
		b.mu.Unlock()
		if !requested || master == nil {
			return total
		}
		consumed := master(true)
		total += consumed
		if consumed == 0 {
			b.EndBusRequest()
			return total
		}
	}
}
