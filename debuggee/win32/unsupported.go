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

//go:build !windows

package win32

import (
	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/debuggee"
)

// Process is a target launched under the debugger. Not available on this
// platform.
type Process struct{}

// Launch always fails on this platform.
func Launch(path string) (*Process, error) {
	return nil, curated.Errorf(UnsupportedPlatform)
}

// WaitEvent implements the debuggee.Debuggee interface.
func (p *Process) WaitEvent() (debuggee.Event, error) {
	return debuggee.Event{}, curated.Errorf(UnsupportedPlatform)
}

// Continue implements the debuggee.Debuggee interface.
func (p *Process) Continue(_ debuggee.Event, _ debuggee.Disposition) error {
	return curated.Errorf(UnsupportedPlatform)
}

// ReadMemory implements the debuggee.Debuggee interface.
func (p *Process) ReadMemory(_ uint32, _ []byte) error {
	return curated.Errorf(UnsupportedPlatform)
}

// WriteMemory implements the debuggee.Debuggee interface.
func (p *Process) WriteMemory(_ uint32, _ []byte) error {
	return curated.Errorf(UnsupportedPlatform)
}

// Registers implements the debuggee.Debuggee interface.
func (p *Process) Registers(_ uint32) (debuggee.Registers, error) {
	return debuggee.Registers{}, curated.Errorf(UnsupportedPlatform)
}

// SetRegisters implements the debuggee.Debuggee interface.
func (p *Process) SetRegisters(_ uint32, _ debuggee.Registers) error {
	return curated.Errorf(UnsupportedPlatform)
}

// Close implements the debuggee.Debuggee interface.
func (p *Process) Close() error {
	return nil
}
