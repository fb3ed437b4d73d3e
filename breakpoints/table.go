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
	"bytes"
	"fmt"
	"sort"

	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/debuggee"
	"github.com/Armonte/wanwan/logger"
)

// Sentinal error patterns.
const (
	InvalidSpec    = "breakpoints: invalid spec (%s): %v"
	DuplicateSpec  = "breakpoints: duplicate address (0x%08x)"
	UnknownAddress = "breakpoints: unknown address (0x%08x)"
	InstallError   = "breakpoints: install (%s): %v"
	EmulateError   = "breakpoints: emulate (%s): %v"
)

// Table is the set of breakpoints known for a game binary and the subset that
// is armed. Only armed breakpoints are installed.
//
// The Table is not safe for concurrent use.
type Table struct {
	specs  []Spec
	lookup map[uint32]int
	armed  map[uint32]bool
}

// NewTable is the preferred method of initialisation for the Table type. The
// Spec values are validated and an error is returned if any of them is
// invalid or if two of them share an address.
func NewTable(specs ...Spec) (*Table, error) {
	tab := &Table{
		lookup: make(map[uint32]int),
		armed:  make(map[uint32]bool),
	}

	for _, s := range specs {
		if err := s.validate(); err != nil {
			return nil, curated.Errorf(InvalidSpec, s.Name, err)
		}
		if _, ok := tab.lookup[s.Address]; ok {
			return nil, curated.Errorf(DuplicateSpec, s.Address)
		}
		tab.lookup[s.Address] = len(tab.specs)
		tab.specs = append(tab.specs, s)
		if s.Arm {
			tab.armed[s.Address] = true
		}
	}

	return tab, nil
}

// Lookup the Spec for the address. Returns false if there is no breakpoint
// at the address.
func (tab *Table) Lookup(addr uint32) (Spec, bool) {
	if i, ok := tab.lookup[addr]; ok {
		return tab.specs[i], true
	}
	return Spec{}, false
}

// Specs returns every Spec in the table in address order.
func (tab *Table) Specs() []Spec {
	s := make([]Spec, len(tab.specs))
	copy(s, tab.specs)
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Address < s[j].Address
	})
	return s
}

// Armed returns the Spec of every armed breakpoint in address order.
func (tab *Table) Armed() []Spec {
	var s []Spec
	for _, sp := range tab.Specs() {
		if tab.armed[sp.Address] {
			s = append(s, sp)
		}
	}
	return s
}

// IsArmed returns true if there is an armed breakpoint at the address.
func (tab *Table) IsArmed(addr uint32) bool {
	return tab.armed[addr]
}

// Arm the breakpoints at the listed addresses. No breakpoints are armed if
// any of the addresses are not in the table.
func (tab *Table) Arm(addrs ...uint32) error {
	for _, a := range addrs {
		if _, ok := tab.lookup[a]; !ok {
			return curated.Errorf(UnknownAddress, a)
		}
	}
	for _, a := range addrs {
		tab.armed[a] = true
	}
	return nil
}

// Disarm the breakpoints at the listed addresses. No breakpoints are disarmed
// if any of the addresses are not in the table.
func (tab *Table) Disarm(addrs ...uint32) error {
	for _, a := range addrs {
		if _, ok := tab.lookup[a]; !ok {
			return curated.Errorf(UnknownAddress, a)
		}
	}
	for _, a := range addrs {
		delete(tab.armed, a)
	}
	return nil
}

// Install the breakpoint by writing the patch bytes to the target.
//
// If verify is true then the bytes at the address are compared with the
// expected original bytes first. A mismatch is logged but does not prevent
// the patch being written.
func Install(mem debuggee.Memory, spec Spec, verify bool) error {
	if verify {
		b := make([]byte, len(spec.Original))
		if err := mem.ReadMemory(spec.Address, b); err != nil {
			return curated.Errorf(InstallError, spec.Name, err)
		}
		if !bytes.Equal(b, spec.Original) {
			logger.Logf(logger.Allow, "breakpoints", "%s: expected [% 02x] at 0x%08x, found [% 02x]", spec.Name, spec.Original, spec.Address, b)
		}
	}

	if err := mem.WriteMemory(spec.Address, spec.Patch); err != nil {
		return curated.Errorf(InstallError, spec.Name, err)
	}

	logger.Logf(logger.Allow, "breakpoints", "installed %s at 0x%08x", spec.Name, spec.Address)

	return nil
}

// Emulate the instruction overwritten by the breakpoint. The micro-operations
// are run in order against the register snapshot. Memory stores are written
// to the target immediately. The register snapshot should be stored in the
// target thread by the caller.
//
// For the RedirectInput action, substitutable source operands are read from
// the redirect register.
//
// If an operation fails the remaining operations are not run. The register
// snapshot will not have been changed in that case but memory stores made by
// earlier operations will have been.
func Emulate(spec Spec, regs *debuggee.Registers, mem debuggee.Memory, redirect debuggee.Register) error {
	work := *regs
	x := &execution{
		regs:     &work,
		mem:      mem,
		redirect: spec.Action == RedirectInput,
		with:     redirect,
	}

	for _, op := range spec.Ops {
		if err := op.exec(x); err != nil {
			return curated.Errorf(EmulateError, spec.Name, fmt.Errorf("%s: %w", op, err))
		}
	}

	*regs = work

	return nil
}
