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

package script_test

import (
	"testing"

	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/test"
	"github.com/Armonte/wanwan/userinput"
	"github.com/Armonte/wanwan/userinput/script"
)

func TestPoll(t *testing.T) {
	var frame int

	sc := script.New(
		script.Press(1, userinput.ButtonBack),
		script.Release(1, userinput.ButtonBack),
		script.Press(3, userinput.ButtonA),
	)
	sc.SetClock(func() int { return frame })

	// nothing is available before frame 1
	_, ok := sc.Poll()
	test.ExpectFailure(t, ok)

	frame = 1
	ev, ok := sc.Poll()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, ev.(userinput.EventButton), userinput.EventButton{Button: userinput.ButtonBack, Down: true})

	ev, ok = sc.Poll()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, ev.(userinput.EventButton), userinput.EventButton{Button: userinput.ButtonBack, Down: false})

	_, ok = sc.Poll()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, sc.Remaining(), 1)

	// events for earlier frames are still delivered
	frame = 5
	ev, ok = sc.Poll()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, ev.(userinput.EventButton).Button, userinput.ButtonA)

	_, ok = sc.Poll()
	test.ExpectFailure(t, ok)
}

func TestWait(t *testing.T) {
	sc := script.New(
		script.Press(10, userinput.ButtonBack),
		script.Entry{Frame: 20, Event: userinput.EventDeviceAdded{ID: 0}},
	)

	// wait ignores the frame
	ev, err := sc.Wait()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ev.(userinput.EventButton).Button, userinput.ButtonBack)

	ev, err = sc.Wait()
	test.DemandSuccess(t, err)
	_, ok := ev.(userinput.EventDeviceAdded)
	test.ExpectSuccess(t, ok)

	_, err = sc.Wait()
	test.ExpectSuccess(t, curated.Is(err, script.Exhausted))
}
