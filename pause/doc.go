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

// Package pause implements the gate that halts the target between frames.
//
// The Gate is consulted once per frame, when the target traps at the
// checkpoint breakpoint. While the target is trapped it cannot run, so holding
// the trap is the same as pausing the game.
//
// In the Running state pending controller events are drained without
// blocking. A press of the pause button moves the gate to the Paused state.
// In the Paused state the gate blocks on controller events. Another press of
// the pause button releases the target for a single frame (a frame-step) and
// the gate remains Paused. A press of the continue button returns the gate to
// Running.
//
// A press of the pause button is only honoured if the pause button has been
// released since the last press that was honoured. By default the continue
// button is only honoured while the pause button is held down. This "chord"
// requirement can be turned off, in which case the continue button is honoured
// whenever the gate is paused.
package pause
