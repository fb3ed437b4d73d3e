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

package sdlinput

import (
	"github.com/Armonte/wanwan/userinput"
	"github.com/veandco/go-sdl2/sdl"
)

func button(b sdl.GameControllerButton) userinput.Button {
	switch b {
	case sdl.CONTROLLER_BUTTON_A:
		return userinput.ButtonA
	case sdl.CONTROLLER_BUTTON_B:
		return userinput.ButtonB
	case sdl.CONTROLLER_BUTTON_X:
		return userinput.ButtonX
	case sdl.CONTROLLER_BUTTON_Y:
		return userinput.ButtonY
	case sdl.CONTROLLER_BUTTON_BACK:
		return userinput.ButtonBack
	case sdl.CONTROLLER_BUTTON_GUIDE:
		return userinput.ButtonGuide
	case sdl.CONTROLLER_BUTTON_START:
		return userinput.ButtonStart
	case sdl.CONTROLLER_BUTTON_LEFTSTICK:
		return userinput.ButtonLeftStick
	case sdl.CONTROLLER_BUTTON_RIGHTSTICK:
		return userinput.ButtonRightStick
	case sdl.CONTROLLER_BUTTON_LEFTSHOULDER:
		return userinput.ButtonLeftShoulder
	case sdl.CONTROLLER_BUTTON_RIGHTSHOULDER:
		return userinput.ButtonRightShoulder
	case sdl.CONTROLLER_BUTTON_DPAD_UP:
		return userinput.ButtonDPadUp
	case sdl.CONTROLLER_BUTTON_DPAD_DOWN:
		return userinput.ButtonDPadDown
	case sdl.CONTROLLER_BUTTON_DPAD_LEFT:
		return userinput.ButtonDPadLeft
	case sdl.CONTROLLER_BUTTON_DPAD_RIGHT:
		return userinput.ButtonDPadRight
	}
	return userinput.ButtonNone
}
