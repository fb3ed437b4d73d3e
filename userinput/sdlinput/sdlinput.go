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

// Package sdlinput is a userinput.Source for game controllers, implemented
// with SDL.
//
// Only the game controller and events subsystems of SDL are initialised. No
// window is opened, so controller events must be allowed to arrive while the
// debugger process does not have focus. This is done with the
// SDL_JOYSTICK_ALLOW_BACKGROUND_EVENTS hint.
package sdlinput

import (
	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/logger"
	"github.com/Armonte/wanwan/userinput"
	"github.com/veandco/go-sdl2/sdl"
)

// Sentinal error patterns.
const (
	InitError = "sdlinput: %v"
	WaitError = "sdlinput: wait: %v"
)

// SDL implements the userinput.Source and userinput.Opener interfaces.
type SDL struct{}

// New initialises SDL. Only one instance should exist at any one time.
func New() (*SDL, error) {
	// the hints must be set before the subsystems are initialised
	sdl.SetHint("SDL_JOYSTICK_THREAD", "1")
	sdl.SetHint(sdl.HINT_JOYSTICK_ALLOW_BACKGROUND_EVENTS, "1")

	err := sdl.Init(sdl.INIT_GAMECONTROLLER | sdl.INIT_EVENTS)
	if err != nil {
		return nil, curated.Errorf(InitError, err)
	}

	logger.Logf(logger.Allow, "sdlinput", "%d joysticks connected", sdl.NumJoysticks())

	return &SDL{}, nil
}

// Destroy shuts down SDL. Controllers should be closed before calling.
func (s *SDL) Destroy() {
	sdl.Quit()
}

// convert returns nil for SDL events that have no userinput equivalent.
func (s *SDL) convert(ev sdl.Event) userinput.Event {
	switch ev := ev.(type) {
	case *sdl.ControllerButtonEvent:
		b := button(sdl.GameControllerButton(ev.Button))
		if b == userinput.ButtonNone {
			return nil
		}
		return userinput.EventButton{
			ID:     int32(ev.Which),
			Button: b,
			Down:   ev.State == sdl.PRESSED,
		}

	case *sdl.ControllerDeviceEvent:
		switch ev.Type {
		case sdl.CONTROLLERDEVICEADDED:
			// for the added event the Which field is the device index
			return userinput.EventDeviceAdded{ID: int(ev.Which)}
		case sdl.CONTROLLERDEVICEREMOVED:
			return userinput.EventDeviceRemoved{ID: int32(ev.Which)}
		}
	}

	return nil
}

// Poll implements the userinput.Source interface. SDL events with no
// userinput equivalent are discarded.
func (s *SDL) Poll() (userinput.Event, bool) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if uev := s.convert(ev); uev != nil {
			return uev, true
		}
	}
	return nil, false
}

// Wait implements the userinput.Source interface. SDL events with no
// userinput equivalent are discarded.
func (s *SDL) Wait() (userinput.Event, error) {
	for {
		ev := sdl.WaitEvent()
		if ev == nil {
			return nil, curated.Errorf(WaitError, sdl.GetError())
		}
		if uev := s.convert(ev); uev != nil {
			return uev, nil
		}
	}
}

// controller is an open SDL game controller.
type controller struct {
	pad *sdl.GameController
	id  int32
}

func (c *controller) InstanceID() int32 {
	return c.id
}

func (c *controller) Close() {
	c.pad.Close()
}

// Open implements the userinput.Opener interface.
func (s *SDL) Open(index int) (userinput.Device, error) {
	pad := sdl.GameControllerOpen(index)
	if pad == nil {
		return nil, sdl.GetError()
	}

	c := &controller{
		pad: pad,
		id:  int32(pad.Joystick().InstanceID()),
	}

	logger.Logf(logger.Allow, "sdlinput", "opened %s (controller %d)", pad.Name(), c.id)

	return c, nil
}
