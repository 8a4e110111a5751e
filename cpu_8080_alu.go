package main

// Flag and arithmetic helpers for the 8080 decoder. parity8 is shared
// with cpu_z80.go.

func (c *CPU_8080) updateSZP(result byte) {
	c.F &^= f8080S | f8080Z | f8080P
	if result&0x80 != 0 {
		c.F |= f8080S
	}
	if result == 0 {
		c.F |= f8080Z
	}
	if parity8(result) {
		c.F |= f8080P
	}
	c.F = c.F&^0x28 | f8080Fixed1
}

func (c *CPU_8080) add8(value byte, withCarry bool) {
	carryIn := byte(0)
	if withCarry && c.Flag(f8080C) {
		carryIn = 1
	}
	result := uint16(c.A) + uint16(value) + uint16(carryIn)
	ac := (c.A&0x0F)+(value&0x0F)+carryIn > 0x0F
	c.A = byte(result)
	c.updateSZP(c.A)
	c.SetFlag(f8080AC, ac)
	c.SetFlag(f8080C, result > 0xFF)
}

func (c *CPU_8080) sub8(value byte, withBorrow bool) {
	borrowIn := byte(0)
	if withBorrow && c.Flag(f8080C) {
		borrowIn = 1
	}
	result := int16(c.A) - int16(value) - int16(borrowIn)
	ac := int16(c.A&0x0F)-int16(value&0x0F)-int16(borrowIn) >= 0
	c.A = byte(result)
	c.updateSZP(c.A)
	c.SetFlag(f8080AC, ac)
	c.SetFlag(f8080C, result < 0)
}

func (c *CPU_8080) cmp8(value byte) {
	saved := c.A
	c.sub8(value, false)
	c.A = saved
}

func (c *CPU_8080) and8(value byte) {
	ac := (c.A|value)&0x08 != 0
	c.A &= value
	c.updateSZP(c.A)
	c.SetFlag(f8080AC, ac)
	c.SetFlag(f8080C, false)
}

func (c *CPU_8080) xor8(value byte) {
	c.A ^= value
	c.updateSZP(c.A)
	c.SetFlag(f8080AC, false)
	c.SetFlag(f8080C, false)
}

func (c *CPU_8080) or8(value byte) {
	c.A |= value
	c.updateSZP(c.A)
	c.SetFlag(f8080AC, false)
	c.SetFlag(f8080C, false)
}

func (c *CPU_8080) inr(value byte) byte {
	result := value + 1
	ac := value&0x0F == 0x0F
	c.updateSZP(result)
	c.SetFlag(f8080AC, ac)
	return result
}

func (c *CPU_8080) dcr(value byte) byte {
	result := value - 1
	ac := value&0x0F != 0
	c.updateSZP(result)
	c.SetFlag(f8080AC, ac)
	return result
}

func (c *CPU_8080) dad(value uint16) {
	result := uint32(c.HL()) + uint32(value)
	c.SetHL(uint16(result))
	c.SetFlag(f8080C, result > 0xFFFF)
}

// daa implements the standard 8080 decimal-adjust rule.
func (c *CPU_8080) daa() {
	lsb := c.A & 0x0F
	msb := c.A >> 4
	correction := byte(0)
	cy := c.Flag(f8080C)

	if lsb > 9 || c.Flag(f8080AC) {
		correction |= 0x06
	}
	if msb > 9 || cy || (msb == 9 && lsb > 9) {
		correction |= 0x60
		cy = true
	}

	old := c.A
	c.A += correction
	ac := (old&0x0F)+(correction&0x0F) > 0x0F
	c.updateSZP(c.A)
	c.SetFlag(f8080AC, ac)
	c.SetFlag(f8080C, cy)
}

func (c *CPU_8080) rlc() {
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | c.A>>7
	c.SetFlag(f8080C, carry)
}

func (c *CPU_8080) rrc() {
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | c.A<<7
	c.SetFlag(f8080C, carry)
}

func (c *CPU_8080) ral() {
	carryIn := byte(0)
	if c.Flag(f8080C) {
		carryIn = 1
	}
	carryOut := c.A&0x80 != 0
	c.A = c.A<<1 | carryIn
	c.SetFlag(f8080C, carryOut)
}

func (c *CPU_8080) rar() {
	carryIn := byte(0)
	if c.Flag(f8080C) {
		carryIn = 0x80
	}
	carryOut := c.A&0x01 != 0
	c.A = c.A>>1 | carryIn
	c.SetFlag(f8080C, carryOut)
}
