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

//go:build windows

package win32

import (
	"fmt"
	"path/filepath"
	"runtime"
	"unsafe"

	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/debuggee"
	"github.com/Armonte/wanwan/logger"
	"golang.org/x/sys/windows"
)

// process creation flag. only the launched process is debugged and not any
// child processes it creates
const debugOnlyThisProcess = 0x00000002

// values for the dwContinueStatus argument of ContinueDebugEvent
const (
	dbgExceptionHandled    = 0x00010001
	dbgExceptionNotHandled = 0x80010001
)

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procWaitForDebugEvent     = kernel32.NewProc("WaitForDebugEvent")
	procContinueDebugEvent    = kernel32.NewProc("ContinueDebugEvent")
	procWow64GetThreadContext = kernel32.NewProc("Wow64GetThreadContext")
	procWow64SetThreadContext = kernel32.NewProc("Wow64SetThreadContext")
	procFlushInstructionCache = kernel32.NewProc("FlushInstructionCache")
)

// Process is a target launched under the debugger. Implements the
// debuggee.Debuggee interface.
type Process struct {
	path string

	pid     uint32
	process windows.Handle

	// the primary thread as returned by CreateProcess()
	primaryID uint32
	primary   windows.Handle

	// thread handles from debug events indexed by thread id. these handles
	// are owned by the system and are not closed by the debugger
	threads map[uint32]windows.Handle

	closed bool
}

// Launch the executable with the debugger attached. The working directory of
// the target is the directory containing the executable.
func Launch(path string) (*Process, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, curated.Errorf(LaunchError, path, err)
	}

	app, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, curated.Errorf(LaunchError, path, err)
	}

	dir, err := windows.UTF16PtrFromString(filepath.Dir(path))
	if err != nil {
		return nil, curated.Errorf(LaunchError, path, err)
	}

	runtime.LockOSThread()

	si := &windows.StartupInfo{}
	si.Cb = uint32(unsafe.Sizeof(*si))
	pi := &windows.ProcessInformation{}

	err = windows.CreateProcess(app, nil, nil, nil, false, debugOnlyThisProcess, nil, dir, si, pi)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, curated.Errorf(LaunchError, path, err)
	}

	logger.Logf(logger.Allow, "win32", "launched %s with process id %d", filepath.Base(path), pi.ProcessId)

	return &Process{
		path:      path,
		pid:       pi.ProcessId,
		process:   pi.Process,
		primaryID: pi.ThreadId,
		primary:   pi.Thread,
		threads:   make(map[uint32]windows.Handle),
	}, nil
}

func (p *Process) String() string {
	return fmt.Sprintf("%s (%d)", filepath.Base(p.path), p.pid)
}

// WaitEvent implements the debuggee.Debuggee interface. Blocks until the next
// debug event.
func (p *Process) WaitEvent() (debuggee.Event, error) {
	var raw debugEvent
	r, _, err := procWaitForDebugEvent.Call(uintptr(unsafe.Pointer(&raw)), uintptr(windows.INFINITE))
	if r == 0 {
		return debuggee.Event{}, curated.Errorf(WaitError, err)
	}
	return p.decode(&raw), nil
}

// Continue implements the debuggee.Debuggee interface.
func (p *Process) Continue(ev debuggee.Event, disp debuggee.Disposition) error {
	status := uintptr(dbgExceptionHandled)
	if disp == debuggee.NotHandled {
		status = dbgExceptionNotHandled
	}

	r, _, err := procContinueDebugEvent.Call(uintptr(ev.ProcessID), uintptr(ev.ThreadID), status)
	if r == 0 {
		return curated.Errorf(ContinueError, err)
	}
	return nil
}

// ReadMemory implements the debuggee.Debuggee interface.
func (p *Process) ReadMemory(addr uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	var n uintptr
	err := windows.ReadProcessMemory(p.process, uintptr(addr), &data[0], uintptr(len(data)), &n)
	if err != nil {
		return curated.Errorf(MemoryError, "read", addr, err)
	}
	if int(n) != len(data) {
		return curated.Errorf(MemoryError, "read", addr, fmt.Errorf("%d of %d bytes", n, len(data)))
	}

	return nil
}

// WriteMemory implements the debuggee.Debuggee interface. The instruction
// cache is flushed after the write.
func (p *Process) WriteMemory(addr uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	var n uintptr
	err := windows.WriteProcessMemory(p.process, uintptr(addr), &data[0], uintptr(len(data)), &n)
	if err != nil {
		return curated.Errorf(MemoryError, "write", addr, err)
	}
	if int(n) != len(data) {
		return curated.Errorf(MemoryError, "write", addr, fmt.Errorf("%d of %d bytes", n, len(data)))
	}

	r, _, err := procFlushInstructionCache.Call(uintptr(p.process), uintptr(addr), uintptr(len(data)))
	if r == 0 {
		return curated.Errorf(MemoryError, "flush", addr, err)
	}

	return nil
}

// thread handle for the thread id. threads that have not been seen in a
// debug event use the primary thread.
func (p *Process) thread(id uint32) windows.Handle {
	if h, ok := p.threads[id]; ok {
		return h
	}
	return p.primary
}

func (p *Process) getContext(thread uint32) (wow64Context, error) {
	ctx := wow64Context{ContextFlags: wow64ContextFull}
	r, _, err := procWow64GetThreadContext.Call(uintptr(p.thread(thread)), uintptr(unsafe.Pointer(&ctx)))
	if r == 0 {
		return ctx, curated.Errorf(ContextError, "get", thread, err)
	}
	return ctx, nil
}

// Registers implements the debuggee.Debuggee interface.
func (p *Process) Registers(thread uint32) (debuggee.Registers, error) {
	ctx, err := p.getContext(thread)
	if err != nil {
		return debuggee.Registers{}, err
	}
	return ctx.registers(), nil
}

// SetRegisters implements the debuggee.Debuggee interface. The context is
// read before it is written so that fields without an equivalent register are
// preserved.
func (p *Process) SetRegisters(thread uint32, regs debuggee.Registers) error {
	ctx, err := p.getContext(thread)
	if err != nil {
		return err
	}

	ctx.update(regs)
	ctx.ContextFlags = wow64ContextFull

	r, _, err := procWow64SetThreadContext.Call(uintptr(p.thread(thread)), uintptr(unsafe.Pointer(&ctx)))
	if r == 0 {
		return curated.Errorf(ContextError, "set", thread, err)
	}

	return nil
}

// Close implements the debuggee.Debuggee interface. The handles returned by
// CreateProcess() are closed and the goroutine is unlocked from its OS
// thread.
func (p *Process) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	defer runtime.UnlockOSThread()

	var errs []error
	if err := windows.CloseHandle(p.primary); err != nil {
		errs = append(errs, err)
	}
	if err := windows.CloseHandle(p.process); err != nil {
		errs = append(errs, err)
	}
	p.threads = nil

	if len(errs) > 0 {
		return curated.Errorf(CloseError, errs[0])
	}

	return nil
}
