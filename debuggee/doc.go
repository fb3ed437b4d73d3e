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

// Package debuggee defines the contract between the framestep session and the
// process being debugged.
//
// A Debuggee delivers debug events one at a time with WaitEvent(). Between
// WaitEvent() and Continue() the target is stopped and its memory and thread
// registers can be read and written freely. Once Continue() has been called
// the target owns its state again and nothing should be read or written until
// the next event.
//
// There are two implementations. The win32 package launches a real process
// under the Windows debug API. The simulated package scripts a synthetic target
// for tests and for the SIMULATE mode.
package debuggee
