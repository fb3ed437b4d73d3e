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
	"fmt"
	"strings"

	"github.com/Armonte/wanwan/curated"
)

// TrapByte is the INT3 instruction. Every patch begins with it.
const TrapByte = 0xcc

// NopByte is the NOP instruction. Used to pad patches that overwrite
// instructions longer than one byte.
const NopByte = 0x90

// Action is what should happen when a breakpoint traps.
type Action int

// List of valid Action values.
const (
	// emulate the overwritten instruction, substituting the marked source
	// operand with the redirect register
	RedirectInput Action = iota

	// emulate the overwritten instruction as it is
	PatchOnly
)

func (a Action) String() string {
	switch a {
	case RedirectInput:
		return "redirect"
	case PatchOnly:
		return "patch"
	}
	return ""
}

// Sentinal error returned by ParseAction().
const UnknownAction = "breakpoints: unknown action (%s)"

// ParseAction converts the string representation of an action, as returned by
// Action.String(), into an Action. The comparison is case insensitive.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "redirect":
		return RedirectInput, nil
	case "patch":
		return PatchOnly, nil
	}
	return PatchOnly, curated.Errorf(UnknownAction, s)
}

// Spec describes a single breakpoint.
type Spec struct {
	Name    string
	Address uint32

	// the bytes of the instruction at Address and the bytes that replace it
	// when the breakpoint is installed
	Original []byte
	Patch    []byte

	Action Action

	// the breakpoint is armed when the table is created
	Arm bool

	// the breakpoint is the per-frame checkpoint. reaching it consults the
	// pause state
	Checkpoint bool

	// micro-operations that emulate the overwritten instruction
	Ops []Op
}

func (s Spec) String() string {
	ops := make([]string, len(s.Ops))
	for i, op := range s.Ops {
		ops[i] = op.String()
	}
	return fmt.Sprintf("0x%08x %s [% 02x] -> [% 02x] %s: %s", s.Address, s.Name, s.Original, s.Patch, s.Action, strings.Join(ops, "; "))
}

// validate the invariants of a single spec. the Address is not checked, any
// 32-bit value is a valid address.
func (s Spec) validate() error {
	if len(s.Patch) == 0 {
		return fmt.Errorf("patch is empty")
	}
	if s.Patch[0] != TrapByte {
		return fmt.Errorf("patch does not begin with the trap byte")
	}
	if len(s.Original) == 0 {
		return fmt.Errorf("original instruction is empty")
	}
	if len(s.Patch) > len(s.Original) {
		return fmt.Errorf("patch is longer than the original instruction")
	}
	if s.Action == RedirectInput {
		var ok bool
		for _, op := range s.Ops {
			if op.substitutable() {
				ok = true
				break // for loop
			}
		}
		if !ok {
			return fmt.Errorf("redirect action has no substitutable operand")
		}
	}
	return nil
}
