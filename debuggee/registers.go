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

package debuggee

import (
	"fmt"
	"strings"

	"github.com/Armonte/wanwan/curated"
)

// Register identifies a 32-bit register of the target thread.
type Register int

// List of registers that can be read and written with a Registers snapshot.
const (
	EAX Register = iota
	ECX
	EDX
	EBX
	ESP
	EBP
	ESI
	EDI
	EIP
	EFLAGS

	NumRegisters
)

var registerNames = [NumRegisters]string{
	"EAX", "ECX", "EDX", "EBX", "ESP", "EBP", "ESI", "EDI", "EIP", "EFLAGS",
}

func (r Register) String() string {
	if r < 0 || r >= NumRegisters {
		return fmt.Sprintf("R%d", int(r))
	}
	return registerNames[r]
}

// Sentinal error returned by ParseRegister().
const UnknownRegister = "debuggee: unknown register (%s)"

// ParseRegister converts a register name into a Register. The comparison is
// case insensitive.
func ParseRegister(s string) (Register, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range registerNames {
		if n == s {
			return Register(i), nil
		}
	}
	return EAX, curated.Errorf(UnknownRegister, s)
}

// Registers is a snapshot of the register context of a thread. A snapshot is
// only valid for the trap it was taken at.
type Registers struct {
	values [NumRegisters]uint32
}

// Get value of register. Invalid registers always return zero.
func (r Registers) Get(reg Register) uint32 {
	if reg < 0 || reg >= NumRegisters {
		return 0
	}
	return r.values[reg]
}

// Set value of register. Invalid registers are ignored.
func (r *Registers) Set(reg Register, v uint32) {
	if reg < 0 || reg >= NumRegisters {
		return
	}
	r.values[reg] = v
}

func (r Registers) String() string {
	s := strings.Builder{}
	for i, v := range r.values {
		if i > 0 {
			s.WriteRune(' ')
		}
		s.WriteString(fmt.Sprintf("%s=%08x", Register(i), v))
	}
	return s.String()
}
