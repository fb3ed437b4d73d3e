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

import (
	"os"

	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/userinput"
)

// Sentinal error patterns.
const (
	TerminalError = "terminput: %v"
	ReadError     = "terminput: read: %v"
)

// Terminal is not available on Windows.
type Terminal struct{}

// New always returns an error on Windows.
func New(_ *os.File) (*Terminal, error) {
	return nil, curated.Errorf(TerminalError, "not available on windows")
}

// Restore does nothing on Windows.
func (trm *Terminal) Restore() {
}

// Poll implements the userinput.Source interface.
func (trm *Terminal) Poll() (userinput.Event, bool) {
	return nil, false
}

// Wait implements the userinput.Source interface.
func (trm *Terminal) Wait() (userinput.Event, error) {
	return nil, curated.Errorf(ReadError, "not available on windows")
}
