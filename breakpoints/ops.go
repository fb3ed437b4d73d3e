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

package breakpoints

import (
	"encoding/binary"
	"fmt"

	"github.com/Armonte/wanwan/debuggee"
)

// execution is the state used by a single call to Emulate().
type execution struct {
	regs *debuggee.Registers
	mem  debuggee.Memory

	// substitute source operands marked as substitutable with the redirect
	// register
	redirect bool
	with     debuggee.Register
}

func (x *execution) source(reg debuggee.Register, substitute bool) uint32 {
	if x.redirect && substitute {
		return x.regs.Get(x.with)
	}
	return x.regs.Get(reg)
}

func (x *execution) store(addr uint32, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return x.mem.WriteMemory(addr, b[:])
}

// Op is a single micro-operation. A list of them reproduces the effect of one
// overwritten instruction.
type Op interface {
	fmt.Stringer
	exec(x *execution) error
	substitutable() bool
}

// AdjustRegister adds Delta to the register. Negative values of delta
// subtract.
type AdjustRegister struct {
	Reg   debuggee.Register
	Delta int32
}

func (op AdjustRegister) exec(x *execution) error {
	x.regs.Set(op.Reg, x.regs.Get(op.Reg)+uint32(op.Delta))
	return nil
}

func (op AdjustRegister) substitutable() bool {
	return false
}

func (op AdjustRegister) String() string {
	if op.Delta < 0 {
		return fmt.Sprintf("%s -= %d", op.Reg, -int64(op.Delta))
	}
	return fmt.Sprintf("%s += %d", op.Reg, op.Delta)
}

// StoreRegister writes the 32-bit value of Src to the memory addressed by the
// AddrReg register.
type StoreRegister struct {
	AddrReg    debuggee.Register
	Src        debuggee.Register
	Substitute bool
}

func (op StoreRegister) exec(x *execution) error {
	return x.store(x.regs.Get(op.AddrReg), x.source(op.Src, op.Substitute))
}

func (op StoreRegister) substitutable() bool {
	return op.Substitute
}

func (op StoreRegister) String() string {
	return fmt.Sprintf("[%s] = %s", op.AddrReg, operand(op.Src, op.Substitute))
}

// StoreAbsolute writes the 32-bit value of Src to a fixed memory address.
type StoreAbsolute struct {
	Addr       uint32
	Src        debuggee.Register
	Substitute bool
}

func (op StoreAbsolute) exec(x *execution) error {
	return x.store(op.Addr, x.source(op.Src, op.Substitute))
}

func (op StoreAbsolute) substitutable() bool {
	return op.Substitute
}

func (op StoreAbsolute) String() string {
	return fmt.Sprintf("[0x%08x] = %s", op.Addr, operand(op.Src, op.Substitute))
}

// LoadEffective sets Dst to the value of Base plus Disp. It does not access
// memory.
type LoadEffective struct {
	Dst        debuggee.Register
	Base       debuggee.Register
	Disp       int32
	Substitute bool
}

func (op LoadEffective) exec(x *execution) error {
	x.regs.Set(op.Dst, x.source(op.Base, op.Substitute)+uint32(op.Disp))
	return nil
}

func (op LoadEffective) substitutable() bool {
	return op.Substitute
}

func (op LoadEffective) String() string {
	switch {
	case op.Disp < 0:
		return fmt.Sprintf("%s = %s - %d", op.Dst, operand(op.Base, op.Substitute), -int64(op.Disp))
	case op.Disp > 0:
		return fmt.Sprintf("%s = %s + %d", op.Dst, operand(op.Base, op.Substitute), op.Disp)
	}
	return fmt.Sprintf("%s = %s", op.Dst, operand(op.Base, op.Substitute))
}

// substitutable operands are marked with an asterisk.
func operand(reg debuggee.Register, substitute bool) string {
	if substitute {
		return fmt.Sprintf("%s*", reg)
	}
	return reg.String()
}
