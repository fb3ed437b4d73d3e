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
	"encoding/binary"
	"unsafe"

	"github.com/Armonte/wanwan/debuggee"
	"golang.org/x/sys/windows"
)

// values of the dwDebugEventCode field of the DEBUG_EVENT structure
const (
	exceptionDebugEvent     = 1
	createThreadDebugEvent  = 2
	createProcessDebugEvent = 3
	exitThreadDebugEvent    = 4
	exitProcessDebugEvent   = 5
	loadDLLDebugEvent       = 6
	unloadDLLDebugEvent     = 7
	outputDebugStringEvent  = 8
	ripEvent                = 9
)

// debugEvent is the DEBUG_EVENT structure. The union is large enough for the
// largest member on both 32-bit and 64-bit platforms.
type debugEvent struct {
	Code      uint32
	ProcessID uint32
	ThreadID  uint32
	U         [21]uintptr
}

// EXCEPTION_DEBUG_INFO with the EXCEPTION_RECORD flattened
type exceptionDebugInfo struct {
	Code             uint32
	Flags            uint32
	Record           uintptr
	Address          uintptr
	NumberParameters uint32
	Information      [15]uintptr
	FirstChance      uint32
}

type createProcessDebugInfo struct {
	File                windows.Handle
	Process             windows.Handle
	Thread              windows.Handle
	BaseOfImage         uintptr
	DebugInfoFileOffset uint32
	DebugInfoSize       uint32
	ThreadLocalBase     uintptr
	StartAddress        uintptr
	ImageName           uintptr
	Unicode             uint16
}

type createThreadDebugInfo struct {
	Thread          windows.Handle
	ThreadLocalBase uintptr
	StartAddress    uintptr
}

type exitDebugInfo struct {
	ExitCode uint32
}

type loadDLLDebugInfo struct {
	File                windows.Handle
	BaseOfDLL           uintptr
	DebugInfoFileOffset uint32
	DebugInfoSize       uint32
	ImageName           uintptr
	Unicode             uint16
}

type outputDebugStringInfo struct {
	Data    uintptr
	Unicode uint16
	Length  uint16
}

type ripInfo struct {
	Error uint32
	Type  uint32
}

// the longest debug string that will be read from the target
const maxDebugString = 1024

// decode the raw event. the process is updated with any thread handles in the
// event and any file handles are closed.
func (p *Process) decode(raw *debugEvent) debuggee.Event {
	ev := debuggee.Event{
		ProcessID: raw.ProcessID,
		ThreadID:  raw.ThreadID,
	}

	u := unsafe.Pointer(&raw.U[0])

	switch raw.Code {
	case exceptionDebugEvent:
		info := (*exceptionDebugInfo)(u)
		ev.Kind = debuggee.Exception
		ev.Address = uint32(info.Address)
		ev.Code = info.Code
		ev.FirstChance = info.FirstChance != 0

	case createProcessDebugEvent:
		info := (*createProcessDebugInfo)(u)
		ev.Kind = debuggee.CreateProcess
		ev.Address = uint32(info.StartAddress)
		if info.File != 0 {
			windows.CloseHandle(info.File)
		}
		p.threads[raw.ThreadID] = info.Thread

	case createThreadDebugEvent:
		info := (*createThreadDebugInfo)(u)
		ev.Kind = debuggee.CreateThread
		ev.Address = uint32(info.StartAddress)
		p.threads[raw.ThreadID] = info.Thread

	case exitThreadDebugEvent:
		info := (*exitDebugInfo)(u)
		ev.Kind = debuggee.ExitThread
		ev.ExitCode = info.ExitCode
		delete(p.threads, raw.ThreadID)

	case exitProcessDebugEvent:
		info := (*exitDebugInfo)(u)
		ev.Kind = debuggee.ExitProcess
		ev.ExitCode = info.ExitCode

	case loadDLLDebugEvent:
		info := (*loadDLLDebugInfo)(u)
		ev.Kind = debuggee.LoadDLL
		ev.Address = uint32(info.BaseOfDLL)
		if info.File != 0 {
			windows.CloseHandle(info.File)
		}

	case unloadDLLDebugEvent:
		ev.Kind = debuggee.UnloadDLL

	case outputDebugStringEvent:
		info := (*outputDebugStringInfo)(u)
		ev.Kind = debuggee.OutputDebugString
		ev.Message = p.debugString(info)

	case ripEvent:
		info := (*ripInfo)(u)
		ev.Kind = debuggee.RIP
		ev.Code = info.Error

	default:
		ev.Kind = debuggee.Unknown
	}

	return ev
}

// read the debug string from the memory of the target. an unreadable string
// is returned as the empty string.
func (p *Process) debugString(info *outputDebugStringInfo) string {
	n := int(info.Length)
	if n > maxDebugString {
		n = maxDebugString
	}

	if info.Unicode == 0 {
		b := make([]byte, n)
		if err := p.ReadMemory(uint32(info.Data), b); err != nil {
			return ""
		}
		return windows.ByteSliceToString(b)
	}

	b := make([]byte, n*2)
	if err := p.ReadMemory(uint32(info.Data), b); err != nil {
		return ""
	}
	s := make([]uint16, n)
	for i := range s {
		s[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return windows.UTF16ToString(s)
}
