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

// Package win32 implements the debuggee.Debuggee interface with the Windows
// debugging API.
//
// The target must be a 32-bit executable and the debugger a 64-bit Windows
// program. Registers are accessed through the WOW64 thread context.
//
// The Windows debugging API requires that every call is made from the thread
// that created the process. Launch() locks the calling goroutine to its OS
// thread and the lock is released by Close(). All methods of the Process
// type must be called from the same goroutine that called Launch().
//
// On platforms other than Windows, Launch() always fails with the
// UnsupportedPlatform error.
package win32
