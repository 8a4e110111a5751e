package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// regKind classifies how a register-table entry's value is sized and
// stored, per spec.md §4.5's {name, printed-name, Z80-only, kind,
// accessor} dispatch table.
type regKind int

const (
	kindR8 regKind = iota
	kindR16
	kindFlagByte
	kindFlagBit
)

// regEntry is one row of the register-modify dispatch table. get/set
// close over the concrete core so cmdReg never needs its own type
// switch per register.
type regEntry struct {
	name    string
	z80Only bool
	kind    regKind
	get     func() uint64
	set     func(uint64)
}

// regTable builds the dispatch table for whichever core is active.
// Scanning must prefer longer names first (spec.md §4.5: "bc'" before
// "bc"; "pc" before "p") so the table is sorted by name length,
// descending, once built.
func (ice *ICE) regTable() []regEntry {
	var t []regEntry

	if z, ok := ice.M.Core().(*CPU_Z80); ok {
		t = append(t,
			regEntry{"a", false, kindR8, func() uint64 { return uint64(z.A) }, func(v uint64) { z.A = byte(v) }},
			regEntry{"f", false, kindFlagByte, func() uint64 { return uint64(z.F) }, func(v uint64) { z.F = byte(v) }},
			regEntry{"b", false, kindR8, func() uint64 { return uint64(z.B) }, func(v uint64) { z.B = byte(v) }},
			regEntry{"c", false, kindR8, func() uint64 { return uint64(z.C) }, func(v uint64) { z.C = byte(v) }},
			regEntry{"d", false, kindR8, func() uint64 { return uint64(z.D) }, func(v uint64) { z.D = byte(v) }},
			regEntry{"e", false, kindR8, func() uint64 { return uint64(z.E) }, func(v uint64) { z.E = byte(v) }},
			regEntry{"h", false, kindR8, func() uint64 { return uint64(z.H) }, func(v uint64) { z.H = byte(v) }},
			regEntry{"l", false, kindR8, func() uint64 { return uint64(z.L) }, func(v uint64) { z.L = byte(v) }},
			regEntry{"a'", true, kindR8, func() uint64 { return uint64(z.A2) }, func(v uint64) { z.A2 = byte(v) }},
			regEntry{"f'", true, kindFlagByte, func() uint64 { return uint64(z.F2) }, func(v uint64) { z.F2 = byte(v) }},
			regEntry{"bc'", true, kindR16, func() uint64 { return uint64(z.BC2()) }, func(v uint64) { z.SetBC2(uint16(v)) }},
			regEntry{"de'", true, kindR16, func() uint64 { return uint64(z.DE2()) }, func(v uint64) { z.SetDE2(uint16(v)) }},
			regEntry{"hl'", true, kindR16, func() uint64 { return uint64(z.HL2()) }, func(v uint64) { z.SetHL2(uint16(v)) }},
			regEntry{"bc", false, kindR16, func() uint64 { return uint64(z.BC()) }, func(v uint64) { z.SetBC(uint16(v)) }},
			regEntry{"de", false, kindR16, func() uint64 { return uint64(z.DE()) }, func(v uint64) { z.SetDE(uint16(v)) }},
			regEntry{"hl", false, kindR16, func() uint64 { return uint64(z.HL()) }, func(v uint64) { z.SetHL(uint16(v)) }},
			regEntry{"ix", true, kindR16, func() uint64 { return uint64(z.IX) }, func(v uint64) { z.IX = uint16(v) }},
			regEntry{"iy", true, kindR16, func() uint64 { return uint64(z.IY) }, func(v uint64) { z.IY = uint16(v) }},
			regEntry{"i", true, kindR8, func() uint64 { return uint64(z.I) }, func(v uint64) { z.I = byte(v) }},
			regEntry{"r", true, kindR8, func() uint64 { return uint64(z.R) }, func(v uint64) { z.R = byte(v) }},
			regEntry{"im", true, kindR8, func() uint64 { return uint64(z.IM) }, func(v uint64) { z.IM = byte(v) }},
			regEntry{"wz", true, kindR16, func() uint64 { return uint64(z.WZ) }, func(v uint64) { z.WZ = uint16(v) }},
		)
	} else if e, ok := ice.M.Core().(*CPU_8080); ok {
		t = append(t,
			regEntry{"a", false, kindR8, func() uint64 { return uint64(e.A) }, func(v uint64) { e.A = byte(v) }},
			regEntry{"f", false, kindFlagByte, func() uint64 { return uint64(e.F) }, func(v uint64) { e.F = byte(v) }},
			regEntry{"b", false, kindR8, func() uint64 { return uint64(e.B) }, func(v uint64) { e.B = byte(v) }},
			regEntry{"c", false, kindR8, func() uint64 { return uint64(e.C) }, func(v uint64) { e.C = byte(v) }},
			regEntry{"d", false, kindR8, func() uint64 { return uint64(e.D) }, func(v uint64) { e.D = byte(v) }},
			regEntry{"e", false, kindR8, func() uint64 { return uint64(e.E) }, func(v uint64) { e.E = byte(v) }},
			regEntry{"h", false, kindR8, func() uint64 { return uint64(e.H) }, func(v uint64) { e.H = byte(v) }},
			regEntry{"l", false, kindR8, func() uint64 { return uint64(e.L) }, func(v uint64) { e.L = byte(v) }},
			regEntry{"bc", false, kindR16, func() uint64 { return uint64(e.BC()) }, func(v uint64) { e.SetBC(uint16(v)) }},
			regEntry{"de", false, kindR16, func() uint64 { return uint64(e.DE()) }, func(v uint64) { e.SetDE(uint16(v)) }},
			regEntry{"hl", false, kindR16, func() uint64 { return uint64(e.HL()) }, func(v uint64) { e.SetHL(uint16(v)) }},
		)
	}

	t = append(t,
		regEntry{"pc", false, kindR16, func() uint64 { return uint64(ice.M.Core().GetPC()) }, func(v uint64) { ice.M.Core().SetPC(uint16(v)) }},
		regEntry{"sp", false, kindR16, ice.spGet, ice.spSet},
	)

	sort.Slice(t, func(i, j int) bool { return len(t[i].name) > len(t[j].name) })
	return t
}

func (ice *ICE) spGet() uint64 {
	if z, ok := ice.M.Core().(*CPU_Z80); ok {
		return uint64(z.SP)
	}
	return uint64(ice.M.Core().(*CPU_8080).SP)
}

func (ice *ICE) spSet(v uint64) {
	if z, ok := ice.M.Core().(*CPU_Z80); ok {
		z.SP = uint16(v)
		return
	}
	ice.M.Core().(*CPU_8080).SP = uint16(v)
}

// z80FlagBits names the S Z - H - P/V N C bit layout top to bottom so
// "x fz" reads naturally as "flag Z".
var z80FlagBits = map[byte]byte{
	's': 0x80, 'z': 0x40, 'h': 0x10, 'p': 0x04, 'v': 0x04, 'n': 0x02, 'c': 0x01,
}

var i8080FlagBits = map[byte]byte{
	's': f8080S, 'z': f8080Z, 'h': f8080AC, 'p': f8080P, 'c': f8080C,
}

// cmdReg is the `x` command: with no argument, dump every register;
// with "name" show one; with "name=value" or "name value" set it;
// "f<flag>" toggles a single flag bit.
func (ice *ICE) cmdReg(rest string) {
	table := ice.regTable()
	if rest == "" {
		for _, e := range table {
			fmt.Fprintf(ice.out, "%-4s = %X\n", e.name, e.get())
		}
		return
	}

	if strings.HasPrefix(rest, "f") && len(rest) >= 2 {
		bit := rest[1]
		bits := z80FlagBits
		isZ80 := true
		if _, ok := ice.M.Core().(*CPU_8080); ok {
			bits = i8080FlagBits
			isZ80 = false
		}
		mask, ok := bits[bit]
		if !ok {
			fmt.Fprintf(ice.out, "unknown flag %q\n", string(bit))
			return
		}
		for _, e := range table {
			if e.name != "f" {
				continue
			}
			cur := byte(e.get())
			e.set(uint64(cur ^ mask))
			fmt.Fprintf(ice.out, "f = %02X\n", cur^mask)
			return
		}
		_ = isZ80
		return
	}

	name, valueStr, hasValue := rest, "", false
	if idx := strings.IndexAny(rest, "= "); idx >= 0 {
		name = rest[:idx]
		valueStr = strings.TrimSpace(rest[idx+1:])
		hasValue = valueStr != ""
	}

	for _, e := range table {
		if e.name != name {
			continue
		}
		if !hasValue {
			fmt.Fprintf(ice.out, "%s = %X\n", e.name, e.get())
			return
		}
		v, err := strconv.ParseUint(valueStr, 16, 32)
		if err != nil {
			fmt.Fprintf(ice.out, "bad value %q\n", valueStr)
			return
		}
		e.set(v)
		fmt.Fprintf(ice.out, "%s = %X\n", e.name, v)
		return
	}
	fmt.Fprintf(ice.out, "unknown register %q\n", name)
}
