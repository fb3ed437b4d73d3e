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

import "fmt"

// Kind is the type of a debug event.
type Kind int

// List of valid Kind values. The values do not correspond to the values used
// by any operating system.
const (
	Unknown Kind = iota
	CreateProcess
	CreateThread
	Exception
	ExitThread
	ExitProcess
	LoadDLL
	UnloadDLL
	OutputDebugString
	RIP
)

func (k Kind) String() string {
	switch k {
	case CreateProcess:
		return "create process"
	case CreateThread:
		return "create thread"
	case Exception:
		return "exception"
	case ExitThread:
		return "exit thread"
	case ExitProcess:
		return "exit process"
	case LoadDLL:
		return "load dll"
	case UnloadDLL:
		return "unload dll"
	case OutputDebugString:
		return "output debug string"
	case RIP:
		return "rip"
	}
	return "unknown"
}

// Event is a single debug event raised by the target.
type Event struct {
	Kind      Kind
	ProcessID uint32
	ThreadID  uint32

	// only meaningful for the Exception kind
	Address     uint32
	Code        uint32
	FirstChance bool

	// only meaningful for the ExitProcess and ExitThread kinds
	ExitCode uint32

	// only meaningful for the OutputDebugString kind
	Message string
}

func (ev Event) String() string {
	switch ev.Kind {
	case Exception:
		return fmt.Sprintf("%s 0x%08x at 0x%08x (thread %d)", ev.Kind, ev.Code, ev.Address, ev.ThreadID)
	case ExitProcess, ExitThread:
		return fmt.Sprintf("%s with code %d (thread %d)", ev.Kind, ev.ExitCode, ev.ThreadID)
	case OutputDebugString:
		return fmt.Sprintf("%s: %s", ev.Kind, ev.Message)
	}
	return fmt.Sprintf("%s (thread %d)", ev.Kind, ev.ThreadID)
}

// Disposition indicates how the target should treat the event it is being
// continued from. It is only meaningful for Exception events.
type Disposition int

// List of valid Disposition values.
const (
	// the exception has been dealt with by the debugger
	Handled Disposition = iota

	// the exception should be passed on to the target's own handlers
	NotHandled
)

func (d Disposition) String() string {
	if d == NotHandled {
		return "not handled"
	}
	return "handled"
}

// Exception codes raised by a trap instruction. The WOW64 variant is raised
// by the loader breakpoint of a 32-bit process running on a 64-bit system.
const (
	ExceptionBreakpoint     uint32 = 0x80000003
	ExceptionWx86Breakpoint uint32 = 0x4000001f
)

// IsBreakpoint returns true if the exception code is raised by a trap
// instruction.
func IsBreakpoint(code uint32) bool {
	return code == ExceptionBreakpoint || code == ExceptionWx86Breakpoint
}

// Memory gives access to the address space of the target. Addresses are 32
// bits wide.
type Memory interface {
	ReadMemory(addr uint32, data []byte) error
	WriteMemory(addr uint32, data []byte) error
}

// Debuggee is the process being debugged. None of the functions should be
// called concurrently.
type Debuggee interface {
	Memory

	// WaitEvent blocks until the next debug event. There is no timeout.
	WaitEvent() (Event, error)

	// Continue resumes the thread that raised the event.
	Continue(ev Event, disp Disposition) error

	// Registers returns a snapshot of the registers of the thread. Unknown
	// thread IDs refer to the primary thread.
	Registers(thread uint32) (Registers, error)

	// SetRegisters stores the register snapshot in the thread.
	SetRegisters(thread uint32, regs Registers) error

	// Close releases any resources held for the target. It should be called
	// after the ExitProcess event has been continued.
	Close() error
}
