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

package userinput

import (
	"fmt"
	"strings"

	"github.com/Armonte/wanwan/curated"
)

// Event represents all the different type of events that can occur in the
// user input stream.
type Event interface{}

// Button is a logical game controller button. The naming follows the layout
// of an Xbox controller.
type Button int

// List of valid Button values.
const (
	ButtonNone Button = iota
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonBack
	ButtonGuide
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonDPadUp
	ButtonDPadDown
	ButtonDPadLeft
	ButtonDPadRight
)

var buttonNames = map[Button]string{
	ButtonA:             "A",
	ButtonB:             "B",
	ButtonX:             "X",
	ButtonY:             "Y",
	ButtonBack:          "BACK",
	ButtonGuide:         "GUIDE",
	ButtonStart:         "START",
	ButtonLeftStick:     "LEFTSTICK",
	ButtonRightStick:    "RIGHTSTICK",
	ButtonLeftShoulder:  "LEFTSHOULDER",
	ButtonRightShoulder: "RIGHTSHOULDER",
	ButtonDPadUp:        "DPADUP",
	ButtonDPadDown:      "DPADDOWN",
	ButtonDPadLeft:      "DPADLEFT",
	ButtonDPadRight:     "DPADRIGHT",
}

func (b Button) String() string {
	if s, ok := buttonNames[b]; ok {
		return s
	}
	return "NONE"
}

// Sentinal error returned by ParseButton().
const UnknownButton = "userinput: unknown button (%s)"

// ParseButton converts the name of a button, as returned by Button.String(),
// into a Button. The comparison is case insensitive.
func ParseButton(s string) (Button, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for b, n := range buttonNames {
		if n == s {
			return b, nil
		}
	}
	return ButtonNone, curated.Errorf(UnknownButton, s)
}

// EventButton is a press or release of a controller button. The ID is the
// instance ID of the controller that raised the event.
type EventButton struct {
	ID     int32
	Button Button
	Down   bool
}

func (ev EventButton) String() string {
	if ev.Down {
		return fmt.Sprintf("%s pressed (controller %d)", ev.Button, ev.ID)
	}
	return fmt.Sprintf("%s released (controller %d)", ev.Button, ev.ID)
}

// EventDeviceAdded is sent when a controller is connected. The ID is the
// device index of the controller, to be used with Registry.Add().
type EventDeviceAdded struct {
	ID int
}

func (ev EventDeviceAdded) String() string {
	return fmt.Sprintf("controller added (device %d)", ev.ID)
}

// EventDeviceRemoved is sent when a controller is disconnected. The ID is the
// instance ID of the controller, to be used with Registry.Remove().
type EventDeviceRemoved struct {
	ID int32
}

func (ev EventDeviceRemoved) String() string {
	return fmt.Sprintf("controller removed (controller %d)", ev.ID)
}

// Source supplies controller events.
type Source interface {
	// Poll returns the next pending event without blocking. The boolean
	// return value is false if there are no pending events.
	Poll() (Event, bool)

	// Wait blocks until the next event is available. There is no timeout.
	Wait() (Event, error)
}
