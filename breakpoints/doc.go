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

// Package breakpoints is the table of software breakpoints installed in the
// target and the small interpreter that emulates the instructions the
// breakpoints overwrite.
//
// Each breakpoint is described by a Spec. The Spec gives the address of the
// instruction, the bytes that are expected to be there, the bytes that replace
// them (the first of which is always the INT3 trap byte) and a list of
// micro-operations that reproduce the effect of the overwritten instruction.
// There is no general instruction decoder. When the target traps at the
// address the micro-operations are run in order against a snapshot of the
// thread registers and the target's memory.
//
// A Spec with the RedirectInput action has at least one source operand marked
// as substitutable. When the Spec is emulated the substitutable operand is read
// from the redirect register rather than the register the original instruction
// used. This is how the input value consumed by the target is replaced.
//
// The table for the supported game binary is returned by FM2K(). Tables for
// other builds of the game can be loaded from JSON with LoadJSON().
package breakpoints
