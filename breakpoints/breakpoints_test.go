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

package breakpoints_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Armonte/wanwan/breakpoints"
	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/debuggee"
	"github.com/Armonte/wanwan/logger"
	"github.com/Armonte/wanwan/test"
)

// sparse memory for testing
type memory struct {
	data       map[uint32]byte
	failWrites bool
	writes     int
}

func newMemory() *memory {
	return &memory{data: make(map[uint32]byte)}
}

func (mem *memory) ReadMemory(addr uint32, data []byte) error {
	for i := range data {
		data[i] = mem.data[addr+uint32(i)]
	}
	return nil
}

func (mem *memory) WriteMemory(addr uint32, data []byte) error {
	if mem.failWrites {
		return fmt.Errorf("write failed")
	}
	mem.writes++
	for i, b := range data {
		mem.data[addr+uint32(i)] = b
	}
	return nil
}

func (mem *memory) word(addr uint32) uint32 {
	return uint32(mem.data[addr]) | uint32(mem.data[addr+1])<<8 | uint32(mem.data[addr+2])<<16 | uint32(mem.data[addr+3])<<24
}

func TestFM2K(t *testing.T) {
	tab := breakpoints.FM2K()
	test.DemandEquality(t, len(tab.Specs()), 3)

	armed := tab.Armed()
	test.DemandEquality(t, len(armed), 1)
	test.ExpectEquality(t, armed[0].Address, breakpoints.FM2KInputRead)
	test.ExpectEquality(t, armed[0].Action, breakpoints.RedirectInput)
	test.ExpectSuccess(t, armed[0].Checkpoint)

	// specs are returned in address order
	specs := tab.Specs()
	test.ExpectEquality(t, specs[0].Address, breakpoints.FM2KInputCall)
	test.ExpectEquality(t, specs[1].Address, breakpoints.FM2KInputRead)
	test.ExpectEquality(t, specs[2].Address, breakpoints.FM2KInputStore)

	s, ok := tab.Lookup(breakpoints.FM2KInputRead)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s.Name, "input read")
	test.ExpectEquality(t, s.Original[0], 0x53)
	test.ExpectEquality(t, s.Patch[0], breakpoints.TrapByte)

	_, ok = tab.Lookup(0x00401000)
	test.ExpectFailure(t, ok)

	// every patch fits into the instruction it overwrites
	for _, s := range specs {
		test.ExpectSuccess(t, len(s.Patch) <= len(s.Original), s.Name)
	}
}

func TestNewTable(t *testing.T) {
	valid := breakpoints.Spec{
		Name:     "valid",
		Address:  0x1000,
		Original: []byte{0x53},
		Patch:    []byte{breakpoints.TrapByte},
		Action:   breakpoints.PatchOnly,
	}

	_, err := breakpoints.NewTable(valid)
	test.ExpectSuccess(t, err)

	// two specs at the same address
	_, err = breakpoints.NewTable(valid, valid)
	test.ExpectSuccess(t, curated.Is(err, breakpoints.DuplicateSpec))

	invalid := valid
	invalid.Patch = []byte{}
	_, err = breakpoints.NewTable(invalid)
	test.ExpectSuccess(t, curated.Is(err, breakpoints.InvalidSpec), "empty patch")

	invalid = valid
	invalid.Patch = []byte{breakpoints.NopByte}
	_, err = breakpoints.NewTable(invalid)
	test.ExpectSuccess(t, curated.Is(err, breakpoints.InvalidSpec), "no trap byte")

	invalid = valid
	invalid.Patch = []byte{breakpoints.TrapByte, breakpoints.NopByte}
	_, err = breakpoints.NewTable(invalid)
	test.ExpectSuccess(t, curated.Is(err, breakpoints.InvalidSpec), "patch too long")

	invalid = valid
	invalid.Action = breakpoints.RedirectInput
	invalid.Ops = []breakpoints.Op{
		breakpoints.AdjustRegister{Reg: debuggee.ESP, Delta: -4},
		breakpoints.StoreRegister{AddrReg: debuggee.ESP, Src: debuggee.EBX},
	}
	_, err = breakpoints.NewTable(invalid)
	test.ExpectSuccess(t, curated.Is(err, breakpoints.InvalidSpec), "nothing to substitute")
}

func TestArm(t *testing.T) {
	tab := breakpoints.FM2K()

	err := tab.Arm(breakpoints.FM2KInputStore, 0x00401000)
	test.ExpectSuccess(t, curated.Is(err, breakpoints.UnknownAddress))
	test.ExpectEquality(t, len(tab.Armed()), 1)

	err = tab.Arm(breakpoints.FM2KInputStore)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(tab.Armed()), 2)
	test.ExpectSuccess(t, tab.IsArmed(breakpoints.FM2KInputStore))

	// arming twice is fine
	err = tab.Arm(breakpoints.FM2KInputStore)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(tab.Armed()), 2)

	err = tab.Disarm(breakpoints.FM2KInputRead)
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, len(tab.Armed()), 1)
	test.ExpectEquality(t, tab.Armed()[0].Address, breakpoints.FM2KInputStore)

	err = tab.Disarm(0x00401000)
	test.ExpectSuccess(t, curated.Is(err, breakpoints.UnknownAddress))
}

func TestInstall(t *testing.T) {
	tab := breakpoints.FM2K()
	s, _ := tab.Lookup(breakpoints.FM2KInputStore)

	mem := newMemory()
	mem.WriteMemory(s.Address, s.Original)

	logger.Clear()
	err := breakpoints.Install(mem, s, true)
	test.ExpectSuccess(t, err)

	b := make([]byte, len(s.Patch))
	mem.ReadMemory(s.Address, b)
	test.ExpectEquality(t, string(b), string(s.Patch))

	// installing over unexpected bytes writes the patch but logs a warning
	w := &strings.Builder{}
	logger.Clear()
	mem = newMemory()
	err = breakpoints.Install(mem, s, true)
	test.ExpectSuccess(t, err)
	mem.ReadMemory(s.Address, b)
	test.ExpectEquality(t, string(b), string(s.Patch))
	logger.Write(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "expected [89 1d 04 fa 4c 00]"))

	// nothing is checked if verify is false
	w.Reset()
	logger.Clear()
	err = breakpoints.Install(newMemory(), s, false)
	test.ExpectSuccess(t, err)
	logger.Write(w)
	test.ExpectFailure(t, strings.Contains(w.String(), "expected"))

	mem = newMemory()
	mem.failWrites = true
	err = breakpoints.Install(mem, s, false)
	test.ExpectSuccess(t, curated.Is(err, breakpoints.InstallError))
}

func TestEmulateInputRead(t *testing.T) {
	tab := breakpoints.FM2K()
	s, _ := tab.Lookup(breakpoints.FM2KInputRead)

	var regs debuggee.Registers
	regs.Set(debuggee.ESP, 0x0019ff00)
	regs.Set(debuggee.EBX, 0x00000010)
	regs.Set(debuggee.EDX, 0x44332211)

	mem := newMemory()
	err := breakpoints.Emulate(s, &regs, mem, debuggee.EDX)
	test.ExpectSuccess(t, err)

	// the push decrements the stack pointer and writes the redirect register
	// to the new top of stack
	test.ExpectEquality(t, regs.Get(debuggee.ESP), 0x0019fefc)
	test.ExpectEquality(t, mem.word(0x0019fefc), 0x44332211)
	test.ExpectEquality(t, mem.data[0x0019fefc], 0x11)

	// nothing else changes
	test.ExpectEquality(t, regs.Get(debuggee.EBX), 0x00000010)
	test.ExpectEquality(t, regs.Get(debuggee.EDX), 0x44332211)
	test.ExpectEquality(t, mem.writes, 1)

	// redirecting from the register that was originally pushed is the same as
	// running the original instruction
	regs.Set(debuggee.ESP, 0x0019ff00)
	err = breakpoints.Emulate(s, &regs, mem, debuggee.EBX)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, mem.word(0x0019fefc), 0x00000010)
}

func TestEmulatePatchOnly(t *testing.T) {
	s := breakpoints.Spec{
		Name:     "push",
		Address:  0x1000,
		Original: []byte{0x53},
		Patch:    []byte{breakpoints.TrapByte},
		Action:   breakpoints.PatchOnly,
		Ops: []breakpoints.Op{
			breakpoints.AdjustRegister{Reg: debuggee.ESP, Delta: -4},
			breakpoints.StoreRegister{AddrReg: debuggee.ESP, Src: debuggee.EBX, Substitute: true},
		},
	}

	var regs debuggee.Registers
	regs.Set(debuggee.ESP, 0x0019ff00)
	regs.Set(debuggee.EBX, 0x10)
	regs.Set(debuggee.EDX, 0x20)

	// the substitute flag is ignored for the PatchOnly action
	mem := newMemory()
	err := breakpoints.Emulate(s, &regs, mem, debuggee.EDX)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, mem.word(0x0019fefc), 0x10)
}

func TestEmulateAlternatives(t *testing.T) {
	tab := breakpoints.FM2K()

	var regs debuggee.Registers
	regs.Set(debuggee.EBX, 0x0000ffff)
	regs.Set(debuggee.EDX, 0x00000102)

	// LEA ESI, [EBX+1]
	s, _ := tab.Lookup(breakpoints.FM2KInputCall)
	err := breakpoints.Emulate(s, &regs, newMemory(), debuggee.EDX)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, regs.Get(debuggee.ESI), 0x00010000)

	// MOV [004cfa04], EBX
	s, _ = tab.Lookup(breakpoints.FM2KInputStore)
	mem := newMemory()
	err = breakpoints.Emulate(s, &regs, mem, debuggee.EDX)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, mem.word(0x004cfa04), 0x00000102)
}

func TestEmulateFailure(t *testing.T) {
	tab := breakpoints.FM2K()
	s, _ := tab.Lookup(breakpoints.FM2KInputRead)

	var regs debuggee.Registers
	regs.Set(debuggee.ESP, 0x0019ff00)

	mem := newMemory()
	mem.failWrites = true
	err := breakpoints.Emulate(s, &regs, mem, debuggee.EDX)
	test.ExpectSuccess(t, curated.Is(err, breakpoints.EmulateError))

	// the register snapshot is unchanged after a failure
	test.ExpectEquality(t, regs.Get(debuggee.ESP), 0x0019ff00)
}

func TestOpString(t *testing.T) {
	tab := breakpoints.FM2K()

	s, _ := tab.Lookup(breakpoints.FM2KInputRead)
	test.ExpectEquality(t, s.Ops[0].String(), "ESP -= 4")
	test.ExpectEquality(t, s.Ops[1].String(), "[ESP] = EBX*")

	s, _ = tab.Lookup(breakpoints.FM2KInputCall)
	test.ExpectEquality(t, s.Ops[0].String(), "ESI = EBX + 1")

	s, _ = tab.Lookup(breakpoints.FM2KInputStore)
	test.ExpectEquality(t, s.Ops[0].String(), "[0x004cfa04] = EBX*")
}

func TestParseAction(t *testing.T) {
	a, err := breakpoints.ParseAction("REDIRECT")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, breakpoints.RedirectInput)

	a, err = breakpoints.ParseAction("patch")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, breakpoints.PatchOnly)

	_, err = breakpoints.ParseAction("restore")
	test.ExpectSuccess(t, curated.Is(err, breakpoints.UnknownAction))
}
