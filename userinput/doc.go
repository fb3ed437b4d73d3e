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

// Package userinput defines the controller events consumed by the pause gate
// and the Source interface that supplies them.
//
// The events are independent of the library used to read the physical
// controller. The sdlinput package translates SDL game controller events, the
// terminput package translates key presses from a terminal and the script
// package replays a predefined list of events for testing.
//
// The Registry type tracks the controllers that have been opened in response
// to EventDeviceAdded events. With SDL a controller must be opened before its
// button events are reported.
package userinput
