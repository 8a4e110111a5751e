package main

import (
	"fmt"
	"math/rand"
	"os"
)

// PageAttr is the per-page access mode of the 64 KiB address space.
type PageAttr int

const (
	MemRW PageAttr = iota
	MemRO
	MemWProt
	MemNone
)

const (
	pageSize  = 256
	pageCount = 256
	memSize   = pageSize * pageCount
)

// MaxMemSections bounds the configurable [MEMORY n] banks (grounds
// config.c's MAXMEMSECT).
const MaxMemSections = 4

// MemSegment is one `ram`/`rom` directive inside a [MEMORY n] block.
type MemSegment struct {
	Attr     PageAttr
	StartPg  int // first page, 0..255
	SizePg   int // page count, >=1
	ROMFile  string
}

// MemSection is one [MEMORY n] configuration bank: its own segment list
// and its own boot-switch address (config.c's per-section memconf/
// _boot_switch).
type MemSection struct {
	Segments   []MemSegment
	BootSwitch uint16
}

// Memory is the 64 KiB linear address space plus its page-attribute
// table, modeled on picosim/memsim.c's flat array and config.c's
// section/segment configuration, generalized with the paging spec.md
// §3/§4.1 adds.
type Memory struct {
	data  [memSize]byte
	pTab  [pageCount]PageAttr
	wProt bool // write-protect indicator, latched for the front panel LED

	Sections       [MaxMemSections]MemSection
	activeSection  int
	InhibitBoot    bool // R-flag: skip loading boot_switch into PC on cold reset
}

func NewMemory() *Memory {
	m := &Memory{}
	for i := range m.pTab {
		m.pTab[i] = MemRW
	}
	return m
}

// Get reads one byte, returning 0xFF for a NONE page per spec.md §3.
func (m *Memory) Get(addr uint16) byte {
	if m.pTab[addr>>8] == MemNone {
		return 0xFF
	}
	return m.data[addr]
}

// Put writes one byte. Writes to RO/WPROT pages are silently dropped.
// raiseIndicator should be true only when the call originates from the
// operator deposit path (spec.md §4.1), so the write-protect LED is set.
func (m *Memory) Put(addr uint16, value byte, raiseIndicator bool) {
	attr := m.pTab[addr>>8]
	if attr == MemRO || attr == MemWProt {
		if raiseIndicator {
			m.wProt = true
		}
		return
	}
	if raiseIndicator {
		m.wProt = false
	}
	m.data[addr] = value
}

// DMARead/DMAWrite bypass the write-protect indicator latch (the DMA
// master is not the operator deposit path) but still honor page
// attributes, matching spec.md §4.1's get/put vs dma_read/dma_write split.
func (m *Memory) DMARead(addr uint16) byte {
	return m.Get(addr)
}

func (m *Memory) DMAWrite(addr uint16, value byte) {
	m.Put(addr, value, false)
}

func (m *Memory) PageAttrOf(page int) PageAttr {
	return m.pTab[page&0xFF]
}

func (m *Memory) SetAttr(page int, attr PageAttr) {
	m.pTab[page&0xFF] = attr
}

func (m *Memory) WriteProtectIndicator() bool {
	return m.wProt
}

func (m *Memory) ActiveSection() int {
	return m.activeSection
}

// SelectSection switches the active RAM/ROM layout and the boot_switch
// that a cold reset will use, reapplying that section's segments.
func (m *Memory) SelectSection(i int) error {
	if i < 0 || i >= MaxMemSections {
		return fmt.Errorf("memory section %d out of range", i)
	}
	m.activeSection = i
	return m.applySection(i)
}

func (m *Memory) BootSwitch() uint16 {
	return m.Sections[m.activeSection].BootSwitch
}

// Init fills memory with a configured byte, or a seeded pseudo-random
// pattern when fillByte < 0, then applies the active section's ROM/RAM
// segment layout (spec.md §4.1).
func (m *Memory) Init(fillByte int, seed int64) error {
	if fillByte < 0 {
		rng := rand.New(rand.NewSource(seed))
		rng.Read(m.data[:])
	} else {
		b := byte(fillByte)
		for i := range m.data {
			m.data[i] = b
		}
	}
	for i := range m.pTab {
		m.pTab[i] = MemRW
	}
	return m.applySection(m.activeSection)
}

func (m *Memory) applySection(i int) error {
	for _, seg := range m.Sections[i].Segments {
		for p := seg.StartPg; p < seg.StartPg+seg.SizePg; p++ {
			m.pTab[p] = seg.Attr
		}
		if seg.Attr == MemRO && seg.ROMFile != "" {
			if err := m.LoadFile(seg.ROMFile, uint16(seg.StartPg)*pageSize, seg.SizePg*pageSize); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadFile reads up to maxlen bytes of path into memory starting at
// addr, bypassing page attributes (this is how ROM images and -x
// payloads land in otherwise read-only pages).
func (m *Memory) LoadFile(path string, addr uint16, maxlen int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, maxlen)
	total := 0
	for total < maxlen {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			break
		}
	}
	for i := 0; i < total; i++ {
		m.data[int(addr)+i] = buf[i]
	}
	return nil
}
