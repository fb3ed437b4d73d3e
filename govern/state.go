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

package govern

// State indicates whether the debuggee is allowed to run freely between
// checkpoints.
type State int

// List of possible session states. Running is the initial state.
//
// Paused has two meanings depending on where the session is. Inside a
// checkpoint it means the debuggee is halted waiting for controller input.
// Between checkpoints it means the debuggee has been released for exactly one
// frame (a frame-step) and will halt again at the next checkpoint.
const (
	Running State = iota
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	}

	return ""
}
