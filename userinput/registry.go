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
	"github.com/Armonte/wanwan/curated"
)

// Device is an open controller.
type Device interface {
	// the instance ID used in button and removal events
	InstanceID() int32

	Close()
}

// Opener opens the controller at the device index.
type Opener interface {
	Open(index int) (Device, error)
}

// Sentinal error returned by Registry.Add().
const OpenError = "userinput: open device (%d): %v"

// Registry is the set of controllers opened in response to EventDeviceAdded
// events. Each open controller occupies a slot. Slots are reused after a
// controller has been removed.
//
// Adding a device index that is already open opens the device a second time
// and occupies a second slot. Whether this is harmful depends on the Opener.
type Registry struct {
	opener Opener
	slots  []Device
}

// NewRegistry is the preferred method of initialisation for the Registry type.
func NewRegistry(opener Opener) *Registry {
	return &Registry{
		opener: opener,
	}
}

// Add opens the controller at the device index and stores it in the first free
// slot. Returns the slot number.
func (reg *Registry) Add(index int) (int, error) {
	dev, err := reg.opener.Open(index)
	if err != nil {
		return -1, curated.Errorf(OpenError, index, err)
	}

	for i := range reg.slots {
		if reg.slots[i] == nil {
			reg.slots[i] = dev
			return i, nil
		}
	}

	reg.slots = append(reg.slots, dev)
	return len(reg.slots) - 1, nil
}

// Remove closes every controller with the instance ID and frees its slot.
// Returns false if no controller with the ID was open.
func (reg *Registry) Remove(instanceID int32) bool {
	var removed bool
	for i, d := range reg.slots {
		if d != nil && d.InstanceID() == instanceID {
			d.Close()
			reg.slots[i] = nil
			removed = true
		}
	}
	return removed
}

// Len returns the number of open controllers.
func (reg *Registry) Len() int {
	var n int
	for _, d := range reg.slots {
		if d != nil {
			n++
		}
	}
	return n
}

// CloseAll closes every open controller.
func (reg *Registry) CloseAll() {
	for i, d := range reg.slots {
		if d != nil {
			d.Close()
			reg.slots[i] = nil
		}
	}
	reg.slots = reg.slots[:0]
}
