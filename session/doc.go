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

// Package session runs the debug event loop for a single target.
//
// The Session waits for debug events from the target, one at a time, and
// continues the target after each event has been handled. When the process
// is created the armed breakpoints of the breakpoints.Table are installed.
// When the target traps at one of the installed breakpoints, the trap handler
// fetches the thread registers, emulates the overwritten instruction and
// stores the registers again. If the breakpoint is the per-frame checkpoint
// the pause.Gate is consulted before the target is continued.
//
// The loop ends when the target exits. There is no other way to end a
// session, except as a result of an error when the error policy is FATAL.
//
// Failures of the calls made to the target inside the loop are treated
// according to the error policy. See the ErrorPolicy type.
package session
