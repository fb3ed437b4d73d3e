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

import "github.com/Armonte/wanwan/debuggee"

// Addresses of the breakpoints in the FM2K table.
const (
	// start of the function that reads the game inputs, before the keyboard
	// state is read
	FM2KInputRead uint32 = 0x004146d0

	// directly before the call to the input reading function
	FM2KInputCall uint32 = 0x00405be4

	// near the end of the input reading function, while the stack and
	// registers are being restored
	FM2KInputStore uint32 = 0x00414837
)

// address written to by the instruction at FM2KInputStore.
const fm2kInputState uint32 = 0x004cfa04

// FM2K returns the breakpoint table for the supported game binary.
//
// Only the breakpoint at FM2KInputRead is armed. It is the per-frame
// checkpoint. The two alternative breakpoints are included so that they can be
// armed from the command line.
func FM2K() *Table {
	tab, err := NewTable(
		Spec{
			Name:       "input read",
			Address:    FM2KInputRead,
			Original:   []byte{0x53}, // PUSH EBX
			Patch:      []byte{TrapByte},
			Action:     RedirectInput,
			Arm:        true,
			Checkpoint: true,
			Ops: []Op{
				AdjustRegister{Reg: debuggee.ESP, Delta: -4},
				StoreRegister{AddrReg: debuggee.ESP, Src: debuggee.EBX, Substitute: true},
			},
		},
		Spec{
			Name:       "input call",
			Address:    FM2KInputCall,
			Original:   []byte{0x8d, 0x73, 0x01}, // LEA ESI, [EBX+1]
			Patch:      []byte{TrapByte, NopByte, NopByte},
			Action:     PatchOnly,
			Checkpoint: true,
			Ops: []Op{
				LoadEffective{Dst: debuggee.ESI, Base: debuggee.EBX, Disp: 1},
			},
		},
		Spec{
			Name:     "input store",
			Address:  FM2KInputStore,
			Original: []byte{0x89, 0x1d, 0x04, 0xfa, 0x4c, 0x00}, // MOV [004cfa04], EBX
			Patch:    []byte{TrapByte, NopByte, NopByte, NopByte, NopByte, NopByte},
			Action:   RedirectInput,
			Ops: []Op{
				StoreAbsolute{Addr: fm2kInputState, Src: debuggee.EBX, Substitute: true},
			},
		},
	)

	// the table is fixed. an error here is a programming error
	if err != nil {
		panic(err)
	}

	return tab
}
