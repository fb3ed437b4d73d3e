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

//go:build !windows
// +build !windows

package terminput

import (
	"os"

	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/userinput"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Sentinal error patterns.
const (
	TerminalError = "terminput: %v"
	ReadError     = "terminput: read: %v"
)

// Terminal implements the userinput.Source interface.
type Terminal struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	// bytes read by the reader goroutine. the goroutine ends on the first
	// read error, which is sent on the errs channel
	keys chan byte
	errs chan error

	// events produced by a key that have not been returned yet
	pending []userinput.Event
}

// New puts the terminal into cbreak mode and starts reading from it. Restore()
// should be called to put the terminal back into canonical mode.
func New(input *os.File) (*Terminal, error) {
	trm := &Terminal{
		input: input,
		keys:  make(chan byte, 64),
		errs:  make(chan error, 1),
	}

	if err := termios.Tcgetattr(trm.input.Fd(), &trm.canAttr); err != nil {
		return nil, curated.Errorf(TerminalError, err)
	}

	trm.cbreakAttr = trm.canAttr
	termios.Cfmakecbreak(&trm.cbreakAttr)

	if err := termios.Tcsetattr(trm.input.Fd(), termios.TCIFLUSH, &trm.cbreakAttr); err != nil {
		return nil, curated.Errorf(TerminalError, err)
	}

	go func() {
		b := make([]byte, 1)
		for {
			n, err := trm.input.Read(b)
			if err != nil {
				trm.errs <- err
				return
			}
			if n > 0 {
				trm.keys <- b[0]
			}
		}
	}()

	return trm, nil
}

// Restore puts the terminal back into canonical mode.
func (trm *Terminal) Restore() {
	termios.Tcsetattr(trm.input.Fd(), termios.TCIFLUSH, &trm.canAttr)
}

func (trm *Terminal) pop() userinput.Event {
	ev := trm.pending[0]
	trm.pending = trm.pending[1:]
	return ev
}

// Poll implements the userinput.Source interface.
func (trm *Terminal) Poll() (userinput.Event, bool) {
	for len(trm.pending) == 0 {
		select {
		case k := <-trm.keys:
			trm.pending = keyEvents(k)
		default:
			return nil, false
		}
	}
	return trm.pop(), true
}

// Wait implements the userinput.Source interface.
func (trm *Terminal) Wait() (userinput.Event, error) {
	for len(trm.pending) == 0 {
		select {
		case k := <-trm.keys:
			trm.pending = keyEvents(k)
		case err := <-trm.errs:
			return nil, curated.Errorf(ReadError, err)
		}
	}
	return trm.pop(), nil
}
