package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// SwitchState is a three-position front-panel switch reading, matching
// simctl.c's FP_SW_UP/FP_SW_CENTER/FP_SW_DOWN.
type SwitchState int

const (
	SwitchUp SwitchState = iota
	SwitchCenter
	SwitchDown
)

// Operator is the front-panel-driven Mealy machine from spec.md §4.4,
// ground-truthed line for line against altairsim/srcsim/simctl.c. It
// owns the address switch register and panel LED mirrors; the actual
// LED/switch renderer is an external collaborator (spec.md §1) that
// calls these methods and reads the LED fields back.
type Operator struct {
	M *Machine

	AddressSwitch uint16
	PowerSwitch   bool

	LEDAddress uint16
	LEDData    byte
	LEDWait    bool

	// BusStatus mirrors the active core's cpu_bus bitfield (spec.md §3),
	// sampled once per mainLoop tick so EXAMINE/DEPOSIT can gate on HLTA
	// without reaching into the core directly.
	BusStatus byte

	// DisplayRefresh, when set, is invoked at ~30Hz by Run's display
	// thread (spec.md §5 item 3); it must be cancel-safe.
	DisplayRefresh func()
}

func NewOperator(m *Machine) *Operator {
	op := &Operator{M: m}
	m.WaitStep = op.waitStep
	m.WaitIntStep = op.waitIntStep
	return op
}

// waitStep suspends the CPU inside a machine cycle until cpu_switch
// leaves the wait-at-M1 state, so examine/deposit/reset can observe
// M1 without tearing (simctl.c's wait_step). Since the decoders here
// execute whole instructions atomically, this models the M1 boundary
// as the per-instruction boundary — the cycle-level wait is a Non-goal
// (spec.md §1).
func (op *Operator) waitStep() {
	if op.M.CPUState.base() != StateSingleStep || !op.M.M1Step {
		return
	}
	op.M.CPUSwitch = SwitchWaitM1
	for op.M.CPUSwitch == SwitchWaitM1 && op.M.Reset == ResetNone {
		time.Sleep(time.Millisecond)
	}
	op.M.M1Step = false
}

func (op *Operator) waitIntStep() {
	if op.M.CPUState.base() != StateSingleStep {
		return
	}
	op.M.CPUSwitch = SwitchWaitM1
	for op.M.CPUSwitch == SwitchWaitM1 && op.M.Reset == ResetNone {
		time.Sleep(10 * time.Millisecond)
	}
}

// RunClicked is the RUN/STOP switch callback.
func (op *Operator) RunClicked(state SwitchState) {
	if !op.M.Powered() {
		return
	}
	switch state {
	case SwitchDown:
		if op.M.CPUState.base() != StateContinRun {
			op.M.CPUState = StateContinRun
			op.LEDWait = false
			op.M.CPUSwitch = SwitchRun
		}
	case SwitchUp:
		if op.M.CPUState.base() == StateContinRun {
			op.M.CPUState = StateStopped
			op.LEDWait = true
			op.M.CPUSwitch = SwitchIdle
		}
	}
}

// StepClicked is the STEP switch callback.
func (op *Operator) StepClicked(state SwitchState) {
	if !op.M.Powered() || op.M.CPUState.base() == StateContinRun {
		return
	}
	if state == SwitchUp {
		op.M.CPUSwitch = SwitchStep
	}
}

// ResetClicked is the three-position RESET switch callback.
func (op *Operator) ResetClicked(state SwitchState) {
	if !op.M.Powered() {
		return
	}
	switch state {
	case SwitchUp:
		op.M.Reset = ResetCPU
		op.M.CPUState |= StateReset
		op.M.core.SetIRQLine(false)
		op.M.M1Step = false
		op.LEDAddress = 0xFFFF
		op.LEDData = 0xFF
	case SwitchCenter:
		if op.M.Reset != ResetNone {
			op.M.core.Reset()
			if op.M.Reset == ResetCold && !op.M.Mem.InhibitBoot {
				op.M.core.SetPC(op.M.Mem.BootSwitch())
			}
			op.M.Reset = ResetNone
			op.M.CPUState &^= StateReset
			op.refreshLEDsFromPC()
		}
	case SwitchDown:
		op.M.Reset = ResetCold
		op.M.CPUState |= StateReset
		op.M.M1Step = false
		op.M.core.SetIRQLine(false)
		op.resetIO()
	}
}

// resetIO is the collaborator hook for peripheral reset (spec.md §1
// places I/O peripherals out of scope); ports that implement a Reset
// method get one.
func (op *Operator) resetIO() {
	for _, p := range op.M.ports {
		if r, ok := p.(interface{ Reset() }); ok {
			r.Reset()
		}
	}
}

func (op *Operator) refreshLEDsFromPC() {
	pc := op.M.core.GetPC()
	op.LEDAddress = pc
	op.LEDData = op.M.Mem.Get(pc)
}

// ExamineClicked is the EXAMINE/EXAMINE-NEXT switch callback.
func (op *Operator) ExamineClicked(state SwitchState) {
	if !op.M.Powered() || op.haltedOrRunning() {
		return
	}
	switch state {
	case SwitchUp:
		op.LEDAddress = op.AddressSwitch
		op.LEDData = op.M.Mem.Get(op.AddressSwitch)
		op.M.core.SetPC(op.AddressSwitch)
	case SwitchDown:
		op.LEDAddress++
		op.LEDData = op.M.Mem.Get(op.LEDAddress)
		op.M.core.SetPC(op.LEDAddress)
	}
}

// DepositClicked is the DEPOSIT/DEPOSIT-NEXT switch callback.
func (op *Operator) DepositClicked(state SwitchState) {
	if !op.M.Powered() || op.haltedOrRunning() {
		return
	}
	pc := op.M.core.GetPC()
	if attr := op.M.Mem.PageAttrOf(int(pc >> 8)); attr == MemRO || attr == MemWProt {
		return
	}
	switch state {
	case SwitchUp:
		op.LEDData = byte(op.AddressSwitch)
		op.M.Mem.Put(pc, op.LEDData, true)
	case SwitchDown:
		op.M.core.SetPC(pc + 1)
		op.LEDAddress++
		op.LEDData = byte(op.AddressSwitch)
		op.M.Mem.Put(op.M.core.GetPC(), op.LEDData, true)
	}
}

// haltedOrRunning matches spec.md §5's EXAMINE/DEPOSIT guard: disallowed
// while CONTIN_RUN or while cpu_bus & HLTA.
func (op *Operator) haltedOrRunning() bool {
	return op.M.CPUState.base() == StateContinRun || op.BusStatus&BusHLTA != 0
}

// ProtectClicked is the PROTECT/UNPROTECT switch callback.
func (op *Operator) ProtectClicked(state SwitchState) {
	if !op.M.Powered() || op.M.CPUState.base() == StateContinRun {
		return
	}
	page := int(op.M.core.GetPC() >> 8)
	switch state {
	case SwitchUp:
		if op.M.Mem.PageAttrOf(page) == MemRW {
			op.M.Mem.SetAttr(page, MemWProt)
		}
	case SwitchDown:
		if op.M.Mem.PageAttrOf(page) == MemWProt {
			op.M.Mem.SetAttr(page, MemRW)
		}
	}
}

// IntClicked is the INT/BOOT switch callback.
func (op *Operator) IntClicked(state SwitchState) {
	if !op.M.Powered() {
		return
	}
	switch state {
	case SwitchUp:
		op.M.RaiseInterrupt(-1)
	case SwitchDown:
		boot := op.M.Mem.BootSwitch()
		op.LEDAddress = boot
		op.LEDData = op.M.Mem.Get(boot)
		op.M.core.SetPC(boot)
	}
}

// PowerClicked is the POWER switch callback.
func (op *Operator) PowerClicked(state SwitchState) {
	switch state {
	case SwitchDown:
		if op.M.Powered() {
			return
		}
		op.M.PowerOn()
		op.LEDAddress = op.M.core.GetPC()
		op.LEDData = op.M.Mem.Get(op.LEDAddress)
		op.LEDWait = true
		op.BusStatus = BusWO | BusM1 | BusMEMR
	case SwitchUp:
		if !op.M.Powered() {
			return
		}
		op.M.PowerOff()
	}
}

// QuitCallback mirrors simctl.c's window-close handler: equivalent to
// a POWER-up event.
func (op *Operator) QuitCallback() {
	op.M.PowerOff()
}

// Run starts mainLoop, and displayLoop when DisplayRefresh is set, under
// one errgroup until the machine powers off or the context is cancelled;
// an error from either cancels the other. There is no separate CPU
// goroutine: mainLoop runs the CPU itself between ticks, and front-panel
// input arrives through the *Clicked callbacks, not a goroutine of its own.
func (op *Operator) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return op.mainLoop(ctx) })
	if op.DisplayRefresh != nil {
		g.Go(func() error { return op.displayLoop(ctx) })
	}

	return g.Wait()
}

// mainLoop is the ~10ms operator tick (simctl.c's mon() while loop):
// each tick refreshes the LED mirror from PC, then dispatches at most
// one CPU activity.
func (op *Operator) mainLoop(ctx context.Context) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if op.M.CPUErr == ErrPowerOff {
			return nil
		}

		if op.M.Reset != ResetNone {
			op.LEDAddress = 0xFFFF
			op.LEDData = 0xFF
		} else if op.M.Powered() {
			op.refreshLEDsFromPC()
			op.BusStatus = op.M.core.BusStatus()
		}

		switch op.M.CPUSwitch {
		case SwitchRun:
			if op.M.Reset == ResetNone {
				op.M.Run()
				for op.M.CPUErr == ErrOpHalt {
					stop, _, _ := op.M.HandleBreak()
					if stop {
						break
					}
					op.M.CPUErr = ErrNone
					op.M.Run()
				}
				if op.M.CPUState.base() != StateContinRun {
					op.M.CPUSwitch = SwitchIdle
				}
			}
		case SwitchStep:
			op.M.Step()
			if op.M.CPUErr == ErrOpHalt {
				op.M.HandleBreak()
			}
			op.M.CPUSwitch = SwitchIdle
		}

		if op.M.CPUErr == ErrPowerOff {
			return nil
		}
	}
}

// displayLoop invokes DisplayRefresh at ~30Hz until the context is
// cancelled. It reads no memory itself and holds no lock across the
// wait; any sampling of video memory is done by the callback.
func (op *Operator) displayLoop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			op.DisplayRefresh()
		}
	}
}
