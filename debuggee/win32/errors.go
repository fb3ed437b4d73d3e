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

package win32

// Sentinal error patterns.
const (
	LaunchError         = "win32: launch: %s: %v"
	WaitError           = "win32: wait: %v"
	ContinueError       = "win32: continue: %v"
	MemoryError         = "win32: %s memory at 0x%08x: %v"
	ContextError        = "win32: %s context for thread %d: %v"
	CloseError          = "win32: close: %v"
	UnsupportedPlatform = "win32: debugging is only supported on windows"
)
