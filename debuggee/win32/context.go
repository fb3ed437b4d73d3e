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

package win32

import "github.com/Armonte/wanwan/debuggee"

// context flags for the control, integer and segment registers
const wow64ContextFull = 0x00010007

type wow64FloatingSaveArea struct {
	ControlWord   uint32
	StatusWord    uint32
	TagWord       uint32
	ErrorOffset   uint32
	ErrorSelector uint32
	DataOffset    uint32
	DataSelector  uint32
	RegisterArea  [80]byte
	Cr0NpxState   uint32
}

// wow64Context is the WOW64_CONTEXT structure. It has no pointer sized fields
// and so is the same on every platform.
type wow64Context struct {
	ContextFlags uint32

	Dr0 uint32
	Dr1 uint32
	Dr2 uint32
	Dr3 uint32
	Dr6 uint32
	Dr7 uint32

	FloatSave wow64FloatingSaveArea

	SegGs uint32
	SegFs uint32
	SegEs uint32
	SegDs uint32

	Edi uint32
	Esi uint32
	Ebx uint32
	Edx uint32
	Ecx uint32
	Eax uint32

	Ebp    uint32
	Eip    uint32
	SegCs  uint32
	EFlags uint32
	Esp    uint32
	SegSs  uint32

	ExtendedRegisters [512]byte
}

// fields of the context in the order of the debuggee.Register values
func (ctx *wow64Context) fields() [debuggee.NumRegisters]*uint32 {
	return [debuggee.NumRegisters]*uint32{
		debuggee.EAX:    &ctx.Eax,
		debuggee.ECX:    &ctx.Ecx,
		debuggee.EDX:    &ctx.Edx,
		debuggee.EBX:    &ctx.Ebx,
		debuggee.ESP:    &ctx.Esp,
		debuggee.EBP:    &ctx.Ebp,
		debuggee.ESI:    &ctx.Esi,
		debuggee.EDI:    &ctx.Edi,
		debuggee.EIP:    &ctx.Eip,
		debuggee.EFLAGS: &ctx.EFlags,
	}
}

func (ctx *wow64Context) registers() debuggee.Registers {
	var regs debuggee.Registers
	for r, f := range ctx.fields() {
		regs.Set(debuggee.Register(r), *f)
	}
	return regs
}

// update the context with the register values. fields of the context that
// have no equivalent register are unchanged.
func (ctx *wow64Context) update(regs debuggee.Registers) {
	for r, f := range ctx.fields() {
		*f = regs.Get(debuggee.Register(r))
	}
}
