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

// Package simulated implements a synthetic debuggee. It is used for testing
// and for the SIMULATE mode.
//
// The simulated target has a single thread and a sparse address space in
// which every address is readable. It raises the same sequence of events as
// the real game does under the Windows debugger: the process is created, the
// loader breakpoint is raised, and then the game runs frame by frame until it
// exits.
//
// Each frame the target reaches the checkpoint address. If the checkpoint
// address holds the trap byte, because a breakpoint was installed there, an
// exception event is raised. Otherwise the frame passes without an event.
//
// When the target is continued from a checkpoint exception it reads the value
// at the top of its stack. This is the input value that the game consumes and
// it is recorded in the Stats for the target.
package simulated
