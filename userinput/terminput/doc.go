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

// Package terminput is a userinput.Source that reads key presses from a
// terminal. It can be used when no game controller is available, for example
// in the SIMULATE mode.
//
// The terminal is put into cbreak mode so that key presses are available
// without waiting for a newline. Each key press produces a button press
// followed immediately by a button release:
//
//	p or space	BACK (the default pause button)
//	c or enter	A (the default continue button)
//
// Other keys are ignored. The package is not available on Windows.
package terminput
