// This file is part of Wanwan.
//
// Wanwan is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Wanwan is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Wanwan.  If not, see <https://www.gnu.org/licenses/>.

package simulated

import (
	"encoding/binary"
	"time"

	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/debuggee"
)

// Sentinal error patterns.
const (
	ProtocolError = "simulated: %s"
	RegisterError = "simulated: registers: %s"
)

// Fixed values used by the simulated target.
const (
	ProcessID     = 4000
	ThreadID      = 4004
	LoaderAddress = 0x77f01234
	FaultAddress  = 0x00401000
	StackTop      = 0x0019ff00
)

// ExceptionAccessViolation is the exception code of the fault raised when the
// Fault field of the Config is set.
const ExceptionAccessViolation uint32 = 0xc0000005

// the INT3 instruction
const trapByte = 0xcc

// Config for a simulated target.
type Config struct {
	// the number of frames before the target exits
	Frames int

	// the address reached once per frame
	Checkpoint uint32

	// frames per second. zero means as fast as possible
	FPS int

	// exit code of the process
	ExitCode uint32

	// raise an access violation before the checkpoint of this frame. zero
	// means no fault is raised
	Fault int
}

// Stats records how the target was treated by the debugger.
type Stats struct {
	Continues      int
	NotHandled     int
	RegisterWrites int
	MemoryWrites   int

	// the frame number of every checkpoint exception raised
	Traps []int

	// the value at the top of the stack each time the target is continued
	// from a checkpoint exception
	Inputs []uint32
}

type stage int

const (
	stageCreate stage = iota
	stageLoader
	stageMessage
	stageFrames
	stageExit
	stageEnded
)

// Target implements the debuggee.Debuggee interface.
type Target struct {
	cfg Config

	stage stage
	frame int

	mem  map[uint32]byte
	regs debuggee.Registers

	// the event that has been raised and not yet continued
	pending   bool
	lastEvent debuggee.Event

	closed  bool
	faulted bool

	failGet bool
	failSet bool

	lastFrame time.Time

	stats Stats
}

// New is the preferred method of initialisation for the Target type.
func New(cfg Config) *Target {
	return &Target{
		cfg: cfg,
		mem: make(map[uint32]byte),
	}
}

// Load bytes into the address space of the target. Load should be used to
// set up the target before debugging begins and does not count as a memory
// write in the Stats.
func (tgt *Target) Load(addr uint32, data []byte) {
	for i, b := range data {
		tgt.mem[addr+uint32(i)] = b
	}
}

// FailRegisters causes future calls to Registers() and SetRegisters() to fail.
func (tgt *Target) FailRegisters(get bool, set bool) {
	tgt.failGet = get
	tgt.failSet = set
}

// Stats returns a copy of the statistics for the target.
func (tgt *Target) Stats() Stats {
	s := tgt.stats
	s.Traps = append([]int{}, tgt.stats.Traps...)
	s.Inputs = append([]uint32{}, tgt.stats.Inputs...)
	return s
}

// Frame returns the current frame number of the target. The first frame is
// frame one.
func (tgt *Target) Frame() int {
	return tgt.frame
}

// Closed returns true if Close() has been called.
func (tgt *Target) Closed() bool {
	return tgt.closed
}

func (tgt *Target) word(addr uint32) uint32 {
	var b [4]byte
	for i := range b {
		b[i] = tgt.mem[addr+uint32(i)]
	}
	return binary.LittleEndian.Uint32(b[:])
}

// pace the frames if an FPS value has been set.
func (tgt *Target) pace() {
	if tgt.cfg.FPS <= 0 {
		return
	}
	d := time.Second / time.Duration(tgt.cfg.FPS)
	if w := d - time.Since(tgt.lastFrame); w > 0 {
		time.Sleep(w)
	}
	tgt.lastFrame = time.Now()
}

// registers at the checkpoint of the frame. EBX and EDX depend on the frame
// number so that the value pushed by the emulated instruction can be told
// apart from the value substituted for it.
func (tgt *Target) frameRegisters() debuggee.Registers {
	var regs debuggee.Registers
	regs.Set(debuggee.EIP, tgt.cfg.Checkpoint+1)
	regs.Set(debuggee.ESP, StackTop)
	regs.Set(debuggee.EBP, StackTop+0x20)
	regs.Set(debuggee.EBX, uint32(tgt.frame))
	regs.Set(debuggee.EDX, 0x00010000|uint32(tgt.frame))
	regs.Set(debuggee.EFLAGS, 0x00000246)
	return regs
}

func (tgt *Target) raise(ev debuggee.Event) debuggee.Event {
	ev.ProcessID = ProcessID
	ev.ThreadID = ThreadID
	tgt.pending = true
	tgt.lastEvent = ev
	return ev
}

// WaitEvent implements the debuggee.Debuggee interface.
func (tgt *Target) WaitEvent() (debuggee.Event, error) {
	if tgt.closed {
		return debuggee.Event{}, curated.Errorf(ProtocolError, "target is closed")
	}
	if tgt.pending {
		return debuggee.Event{}, curated.Errorf(ProtocolError, "previous event has not been continued")
	}

	switch tgt.stage {
	case stageCreate:
		tgt.stage = stageLoader
		return tgt.raise(debuggee.Event{Kind: debuggee.CreateProcess}), nil

	case stageLoader:
		tgt.stage = stageMessage
		return tgt.raise(debuggee.Event{
			Kind:        debuggee.Exception,
			Address:     LoaderAddress,
			Code:        debuggee.ExceptionBreakpoint,
			FirstChance: true,
		}), nil

	case stageMessage:
		tgt.stage = stageFrames
		return tgt.raise(debuggee.Event{
			Kind:    debuggee.OutputDebugString,
			Message: "simulated target running",
		}), nil

	case stageFrames:
		for tgt.frame < tgt.cfg.Frames {
			if tgt.cfg.Fault == tgt.frame+1 && !tgt.faulted {
				tgt.faulted = true
				return tgt.raise(debuggee.Event{
					Kind:        debuggee.Exception,
					Address:     FaultAddress,
					Code:        ExceptionAccessViolation,
					FirstChance: true,
				}), nil
			}
			tgt.pace()
			tgt.frame++
			if tgt.mem[tgt.cfg.Checkpoint] == trapByte {
				tgt.regs = tgt.frameRegisters()
				tgt.stats.Traps = append(tgt.stats.Traps, tgt.frame)
				return tgt.raise(debuggee.Event{
					Kind:        debuggee.Exception,
					Address:     tgt.cfg.Checkpoint,
					Code:        debuggee.ExceptionBreakpoint,
					FirstChance: true,
				}), nil
			}
		}
		tgt.stage = stageExit
		fallthrough

	case stageExit:
		tgt.stage = stageEnded
		return tgt.raise(debuggee.Event{
			Kind:     debuggee.ExitProcess,
			ExitCode: tgt.cfg.ExitCode,
		}), nil
	}

	return debuggee.Event{}, curated.Errorf(ProtocolError, "process has exited")
}

// Continue implements the debuggee.Debuggee interface.
func (tgt *Target) Continue(ev debuggee.Event, disp debuggee.Disposition) error {
	if !tgt.pending {
		return curated.Errorf(ProtocolError, "no event to continue")
	}
	if ev.ThreadID != tgt.lastEvent.ThreadID || ev.ProcessID != tgt.lastEvent.ProcessID {
		return curated.Errorf(ProtocolError, "continue for wrong thread")
	}

	tgt.pending = false
	tgt.stats.Continues++
	if disp == debuggee.NotHandled {
		tgt.stats.NotHandled++
	}

	// the target consumes the value at the top of the stack
	if tgt.lastEvent.Kind == debuggee.Exception && tgt.lastEvent.Address == tgt.cfg.Checkpoint {
		tgt.stats.Inputs = append(tgt.stats.Inputs, tgt.word(tgt.regs.Get(debuggee.ESP)))
	}

	return nil
}

// ReadMemory implements the debuggee.Debuggee interface.
func (tgt *Target) ReadMemory(addr uint32, data []byte) error {
	for i := range data {
		data[i] = tgt.mem[addr+uint32(i)]
	}
	return nil
}

// WriteMemory implements the debuggee.Debuggee interface.
func (tgt *Target) WriteMemory(addr uint32, data []byte) error {
	if !tgt.pending {
		return curated.Errorf(ProtocolError, "memory written while target is running")
	}
	tgt.Load(addr, data)
	tgt.stats.MemoryWrites++
	return nil
}

// Registers implements the debuggee.Debuggee interface. There is only one
// thread so the thread argument is ignored.
func (tgt *Target) Registers(_ uint32) (debuggee.Registers, error) {
	if tgt.failGet {
		return debuggee.Registers{}, curated.Errorf(RegisterError, "get failed")
	}
	return tgt.regs, nil
}

// SetRegisters implements the debuggee.Debuggee interface. There is only one
// thread so the thread argument is ignored.
func (tgt *Target) SetRegisters(_ uint32, regs debuggee.Registers) error {
	if tgt.failSet {
		return curated.Errorf(RegisterError, "set failed")
	}
	if !tgt.pending {
		return curated.Errorf(ProtocolError, "registers written while target is running")
	}
	tgt.regs = regs
	tgt.stats.RegisterWrites++
	return nil
}

// Close implements the debuggee.Debuggee interface.
func (tgt *Target) Close() error {
	if tgt.closed {
		return curated.Errorf(ProtocolError, "target already closed")
	}
	tgt.closed = true
	return nil
}
