package main

// Opcode table construction for the 8080 decoder. Register-to-register
// MOV and the A,r ALU group are generated by loop (64 entries apiece,
// same idea as cpu_z80.go's regs8 array) rather than written out by
// hand; everything else gets its own named opXxx method, matching the
// teacher's per-opcode function style.

func (c *CPU_8080) condition(cc int) bool {
	switch cc {
	case 0:
		return !c.Flag(f8080Z) // NZ
	case 1:
		return c.Flag(f8080Z) // Z
	case 2:
		return !c.Flag(f8080C) // NC
	case 3:
		return c.Flag(f8080C) // C
	case 4:
		return !c.Flag(f8080P) // PO
	case 5:
		return c.Flag(f8080P) // PE
	case 6:
		return !c.Flag(f8080S) // P
	case 7:
		return c.Flag(f8080S) // M
	}
	return false
}

func (c *CPU_8080) initBaseOps() {
	for i := range c.baseOps {
		c.baseOps[i] = (*CPU_8080).opUnimplemented
	}

	// MOV r,r' (0x40-0x7F), with 0x76 = HLT instead of MOV M,M.
	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			opcode := byte(0x40 + dst*8 + src)
			if dst == 6 && src == 6 {
				c.baseOps[opcode] = (*CPU_8080).opHLT
				continue
			}
			d, s := dst, src
			c.baseOps[opcode] = func(c *CPU_8080) {
				v := c.reg8(s)
				c.setReg8(d, v)
				if d == 6 || s == 6 {
					c.tick(7)
				} else {
					c.tick(5)
				}
			}
		}
	}

	// ALU A,r (0x80-0xBF): ADD,ADC,SUB,SBB,ANA,XRA,ORA,CMP.
	aluFns := []func(*CPU_8080, byte){
		func(c *CPU_8080, v byte) { c.add8(v, false) },
		func(c *CPU_8080, v byte) { c.add8(v, true) },
		func(c *CPU_8080, v byte) { c.sub8(v, false) },
		func(c *CPU_8080, v byte) { c.sub8(v, true) },
		func(c *CPU_8080, v byte) { c.and8(v) },
		func(c *CPU_8080, v byte) { c.xor8(v) },
		func(c *CPU_8080, v byte) { c.or8(v) },
		func(c *CPU_8080, v byte) { c.cmp8(v) },
	}
	for op := 0; op < 8; op++ {
		for src := 0; src < 8; src++ {
			opcode := byte(0x80 + op*8 + src)
			fn, s := aluFns[op], src
			c.baseOps[opcode] = func(c *CPU_8080) {
				v := c.reg8(s)
				fn(c, v)
				if s == 6 {
					c.tick(7)
				} else {
					c.tick(4)
				}
			}
		}
	}

	// INR/DCR r (00DDD100 / 00DDD101), MVI r,d8 (00DDD110).
	for d := 0; d < 8; d++ {
		dst := d
		c.baseOps[byte(0x04+dst*8)] = func(c *CPU_8080) {
			c.setReg8(dst, c.inr(c.reg8(dst)))
			if dst == 6 {
				c.tick(10)
			} else {
				c.tick(5)
			}
		}
		c.baseOps[byte(0x05+dst*8)] = func(c *CPU_8080) {
			c.setReg8(dst, c.dcr(c.reg8(dst)))
			if dst == 6 {
				c.tick(10)
			} else {
				c.tick(5)
			}
		}
		c.baseOps[byte(0x06+dst*8)] = func(c *CPU_8080) {
			v := c.fetchByte()
			c.setReg8(dst, v)
			if dst == 6 {
				c.tick(10)
			} else {
				c.tick(7)
			}
		}
	}

	c.baseOps[0x00] = (*CPU_8080).opNOP
	c.baseOps[0x01] = func(c *CPU_8080) { c.SetBC(c.fetchWord()); c.tick(10) }
	c.baseOps[0x11] = func(c *CPU_8080) { c.SetDE(c.fetchWord()); c.tick(10) }
	c.baseOps[0x21] = func(c *CPU_8080) { c.SetHL(c.fetchWord()); c.tick(10) }
	c.baseOps[0x31] = func(c *CPU_8080) { c.SP = c.fetchWord(); c.tick(10) }

	c.baseOps[0x02] = func(c *CPU_8080) { c.write(c.BC(), c.A); c.tick(7) }
	c.baseOps[0x12] = func(c *CPU_8080) { c.write(c.DE(), c.A); c.tick(7) }
	c.baseOps[0x0A] = func(c *CPU_8080) { c.A = c.read(c.BC()); c.tick(7) }
	c.baseOps[0x1A] = func(c *CPU_8080) { c.A = c.read(c.DE()); c.tick(7) }

	c.baseOps[0x03] = func(c *CPU_8080) { c.SetBC(c.BC() + 1); c.tick(5) }
	c.baseOps[0x13] = func(c *CPU_8080) { c.SetDE(c.DE() + 1); c.tick(5) }
	c.baseOps[0x23] = func(c *CPU_8080) { c.SetHL(c.HL() + 1); c.tick(5) }
	c.baseOps[0x33] = func(c *CPU_8080) { c.SP++; c.tick(5) }
	c.baseOps[0x0B] = func(c *CPU_8080) { c.SetBC(c.BC() - 1); c.tick(5) }
	c.baseOps[0x1B] = func(c *CPU_8080) { c.SetDE(c.DE() - 1); c.tick(5) }
	c.baseOps[0x2B] = func(c *CPU_8080) { c.SetHL(c.HL() - 1); c.tick(5) }
	c.baseOps[0x3B] = func(c *CPU_8080) { c.SP--; c.tick(5) }

	c.baseOps[0x09] = func(c *CPU_8080) { c.dad(c.BC()); c.tick(10) }
	c.baseOps[0x19] = func(c *CPU_8080) { c.dad(c.DE()); c.tick(10) }
	c.baseOps[0x29] = func(c *CPU_8080) { c.dad(c.HL()); c.tick(10) }
	c.baseOps[0x39] = func(c *CPU_8080) { c.dad(c.SP); c.tick(10) }

	c.baseOps[0x07] = func(c *CPU_8080) { c.rlc(); c.tick(4) }
	c.baseOps[0x0F] = func(c *CPU_8080) { c.rrc(); c.tick(4) }
	c.baseOps[0x17] = func(c *CPU_8080) { c.ral(); c.tick(4) }
	c.baseOps[0x1F] = func(c *CPU_8080) { c.rar(); c.tick(4) }
	c.baseOps[0x27] = func(c *CPU_8080) { c.daa(); c.tick(4) }
	c.baseOps[0x2F] = func(c *CPU_8080) { c.A = ^c.A; c.tick(4) }
	c.baseOps[0x37] = func(c *CPU_8080) { c.SetFlag(f8080C, true); c.tick(4) }
	c.baseOps[0x3F] = func(c *CPU_8080) { c.SetFlag(f8080C, !c.Flag(f8080C)); c.tick(4) }

	c.baseOps[0x22] = func(c *CPU_8080) {
		addr := c.fetchWord()
		c.write(addr, c.L)
		c.write(addr+1, c.H)
		c.tick(16)
	}
	c.baseOps[0x2A] = func(c *CPU_8080) {
		addr := c.fetchWord()
		c.L = c.read(addr)
		c.H = c.read(addr + 1)
		c.tick(16)
	}
	c.baseOps[0x32] = func(c *CPU_8080) { c.write(c.fetchWord(), c.A); c.tick(13) }
	c.baseOps[0x3A] = func(c *CPU_8080) { c.A = c.read(c.fetchWord()); c.tick(13) }

	for cc := 0; cc < 8; cc++ {
		ccv := cc
		c.baseOps[byte(0xC2+ccv*8)] = func(c *CPU_8080) {
			target := c.fetchWord()
			if c.condition(ccv) {
				c.PC = target
			}
			c.tick(10)
		}
		c.baseOps[byte(0xC4+ccv*8)] = func(c *CPU_8080) {
			target := c.fetchWord()
			if c.condition(ccv) {
				c.push(c.PC)
				c.PC = target
				c.tick(17)
			} else {
				c.tick(11)
			}
		}
		c.baseOps[byte(0xC0+ccv*8)] = func(c *CPU_8080) {
			if c.condition(ccv) {
				c.PC = c.pop()
				c.tick(11)
			} else {
				c.tick(5)
			}
		}
	}

	c.baseOps[0xC3] = func(c *CPU_8080) { c.PC = c.fetchWord(); c.tick(10) }
	c.baseOps[0xCB] = c.baseOps[0xC3] // undocumented JMP alias
	c.baseOps[0xCD] = func(c *CPU_8080) {
		target := c.fetchWord()
		c.push(c.PC)
		c.PC = target
		c.tick(17)
	}
	c.baseOps[0xDD] = c.baseOps[0xCD] // undocumented CALL aliases
	c.baseOps[0xED] = c.baseOps[0xCD]
	c.baseOps[0xFD] = c.baseOps[0xCD]
	c.baseOps[0xC9] = func(c *CPU_8080) { c.PC = c.pop(); c.tick(10) }
	c.baseOps[0xD9] = c.baseOps[0xC9] // undocumented RET alias

	for rst := 0; rst < 8; rst++ {
		addr := uint16(rst * 8)
		c.baseOps[byte(0xC7+rst*8)] = func(c *CPU_8080) {
			c.push(c.PC)
			c.PC = addr
			c.tick(11)
		}
	}

	// PUSH/POP: BC, DE, HL, PSW (A+F).
	c.baseOps[0xC5] = func(c *CPU_8080) { c.push(c.BC()); c.tick(11) }
	c.baseOps[0xD5] = func(c *CPU_8080) { c.push(c.DE()); c.tick(11) }
	c.baseOps[0xE5] = func(c *CPU_8080) { c.push(c.HL()); c.tick(11) }
	c.baseOps[0xF5] = func(c *CPU_8080) { c.push(c.AF()); c.tick(11) }
	c.baseOps[0xC1] = func(c *CPU_8080) { c.SetBC(c.pop()); c.tick(10) }
	c.baseOps[0xD1] = func(c *CPU_8080) { c.SetDE(c.pop()); c.tick(10) }
	c.baseOps[0xE1] = func(c *CPU_8080) { c.SetHL(c.pop()); c.tick(10) }
	c.baseOps[0xF1] = func(c *CPU_8080) { c.SetAF(c.pop()); c.tick(10) }

	// Immediate ALU forms (0xC6,0xCE,0xD6,0xDE,0xE6,0xEE,0xF6,0xFE).
	for op := 0; op < 8; op++ {
		fn := aluFns[op]
		c.baseOps[byte(0xC6+op*8)] = func(c *CPU_8080) {
			v := c.fetchByte()
			fn(c, v)
			c.tick(7)
		}
	}

	c.baseOps[0xE3] = func(c *CPU_8080) { // XTHL
		lo, hi := c.read(c.SP), c.read(c.SP+1)
		c.write(c.SP, c.L)
		c.write(c.SP+1, c.H)
		c.L, c.H = lo, hi
		c.tick(18)
	}
	c.baseOps[0xE9] = func(c *CPU_8080) { c.PC = c.HL(); c.tick(5) }     // PCHL
	c.baseOps[0xEB] = func(c *CPU_8080) { // XCHG
		c.H, c.L, c.D, c.E = c.D, c.E, c.H, c.L
		c.tick(4)
	}
	c.baseOps[0xF9] = func(c *CPU_8080) { c.SP = c.HL(); c.tick(5) } // SPHL

	c.baseOps[0xD3] = func(c *CPU_8080) { c.out(uint16(c.fetchByte()), c.A); c.tick(10) }
	c.baseOps[0xDB] = func(c *CPU_8080) { c.A = c.in(uint16(c.fetchByte())); c.tick(10) }

	c.baseOps[0xF3] = func(c *CPU_8080) { c.IFF1 = false; c.tick(4) }
	c.baseOps[0xFB] = func(c *CPU_8080) { c.IFF1 = true; c.tick(4) }

	// Undocumented NOP aliases.
	for _, op := range []byte{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		c.baseOps[op] = (*CPU_8080).opNOP
	}
}

func (c *CPU_8080) opNOP() { c.tick(4) }

func (c *CPU_8080) opHLT() {
	c.Halted = true
	c.busStatus |= BusHLTA
	c.tick(7)
}

// opUnimplemented should be unreachable once initBaseOps fills every
// entry; kept as a guard against a gap in the table. Marks the trap so
// Machine can surface OPTRAP1.
func (c *CPU_8080) opUnimplemented() {
	c.illegalTrap = true
	c.tick(4)
}

// IllegalOpcodeTrapped reports and clears a pending opUnimplemented hit.
func (c *CPU_8080) IllegalOpcodeTrapped() bool {
	if c.illegalTrap {
		c.illegalTrap = false
		return true
	}
	return false
}
