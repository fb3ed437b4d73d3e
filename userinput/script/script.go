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

// Package script is a userinput.Source that replays a predefined list of
// controller events. It is intended for testing.
//
// Each event is tagged with the frame at which it becomes available. The
// current frame is supplied by a clock function, usually the checkpoint count
// of the pause gate.
package script

import (
	"fmt"

	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/userinput"
)

// Entry is a single scripted event.
type Entry struct {
	Frame int
	Event userinput.Event
}

func (e Entry) String() string {
	return fmt.Sprintf("%d: %v", e.Frame, e.Event)
}

// Press creates an Entry for the button being pressed at the frame.
func Press(frame int, button userinput.Button) Entry {
	return Entry{Frame: frame, Event: userinput.EventButton{Button: button, Down: true}}
}

// Release creates an Entry for the button being released at the frame.
func Release(frame int, button userinput.Button) Entry {
	return Entry{Frame: frame, Event: userinput.EventButton{Button: button, Down: false}}
}

// Sentinal error returned by Wait() when there are no events remaining.
const Exhausted = "script: no more events"

// Script implements the userinput.Source interface.
type Script struct {
	entries []Entry
	next    int
	clock   func() int
}

// New is the preferred method of initialisation for the Script type. The
// entries should be in frame order.
func New(entries ...Entry) *Script {
	return &Script{
		entries: entries,
		clock:   func() int { return 0 },
	}
}

// SetClock sets the function that returns the current frame. Until a clock is
// set the current frame is always zero.
func (sc *Script) SetClock(clock func() int) {
	sc.clock = clock
}

// Poll implements the userinput.Source interface. Only events for the current
// frame or earlier are returned.
func (sc *Script) Poll() (userinput.Event, bool) {
	if sc.next >= len(sc.entries) {
		return nil, false
	}
	if sc.entries[sc.next].Frame > sc.clock() {
		return nil, false
	}
	ev := sc.entries[sc.next].Event
	sc.next++
	return ev, true
}

// Wait implements the userinput.Source interface. The next event is returned
// whatever its frame. Returns an error if there are no more events.
func (sc *Script) Wait() (userinput.Event, error) {
	if sc.next >= len(sc.entries) {
		return nil, curated.Errorf(Exhausted)
	}
	ev := sc.entries[sc.next].Event
	sc.next++
	return ev, nil
}

// Remaining returns the number of events that have not been consumed.
func (sc *Script) Remaining() int {
	return len(sc.entries) - sc.next
}
