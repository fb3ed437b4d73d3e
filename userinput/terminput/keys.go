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

package terminput

import "github.com/Armonte/wanwan/userinput"

// terminal key presses are reported as coming from this controller ID.
const keyboardID = -1

// keyEvents converts a key into the events it produces. Returns nil if the
// key is not used.
func keyEvents(key byte) []userinput.Event {
	var b userinput.Button

	switch key {
	case 'p', 'P', ' ':
		b = userinput.ButtonBack
	case 'c', 'C', '\n', '\r':
		b = userinput.ButtonA
	default:
		return nil
	}

	return []userinput.Event{
		userinput.EventButton{ID: keyboardID, Button: b, Down: true},
		userinput.EventButton{ID: keyboardID, Button: b, Down: false},
	}
}
