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

package userinput_test

import (
	"fmt"
	"testing"

	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/test"
	"github.com/Armonte/wanwan/userinput"
)

func TestParseButton(t *testing.T) {
	b, err := userinput.ParseButton("back")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, userinput.ButtonBack)

	b, err = userinput.ParseButton(" A ")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, userinput.ButtonA)

	_, err = userinput.ParseButton("select")
	test.ExpectSuccess(t, curated.Is(err, userinput.UnknownButton))

	test.ExpectEquality(t, userinput.ButtonDPadLeft.String(), "DPADLEFT")
	test.ExpectEquality(t, userinput.ButtonNone.String(), "NONE")
}

func TestEventString(t *testing.T) {
	ev := userinput.EventButton{ID: 1, Button: userinput.ButtonBack, Down: true}
	test.ExpectEquality(t, ev.String(), "BACK pressed (controller 1)")
	ev.Down = false
	test.ExpectEquality(t, ev.String(), "BACK released (controller 1)")
}

type device struct {
	id     int32
	closed bool
}

func (d *device) InstanceID() int32 {
	return d.id
}

func (d *device) Close() {
	d.closed = true
}

// opener creates devices with an instance ID equal to the device index
type opener struct {
	opened []*device
	fail   bool
}

func (o *opener) Open(index int) (userinput.Device, error) {
	if o.fail {
		return nil, fmt.Errorf("no such device")
	}
	d := &device{id: int32(index)}
	o.opened = append(o.opened, d)
	return d, nil
}

func TestRegistry(t *testing.T) {
	o := &opener{}
	reg := userinput.NewRegistry(o)

	slot, err := reg.Add(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, slot, 0)

	slot, err = reg.Add(1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, slot, 1)
	test.ExpectEquality(t, reg.Len(), 2)

	// adding a device that is already open opens it again
	slot, err = reg.Add(1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, slot, 2)
	test.ExpectEquality(t, reg.Len(), 3)

	// removal closes every device with the instance ID
	test.ExpectSuccess(t, reg.Remove(1))
	test.ExpectEquality(t, reg.Len(), 1)
	test.ExpectSuccess(t, o.opened[1].closed)
	test.ExpectSuccess(t, o.opened[2].closed)
	test.ExpectFailure(t, o.opened[0].closed)

	test.ExpectFailure(t, reg.Remove(7))

	// free slots are reused
	slot, err = reg.Add(3)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, slot, 1)

	reg.CloseAll()
	test.ExpectEquality(t, reg.Len(), 0)
	test.ExpectSuccess(t, o.opened[0].closed)
	test.ExpectSuccess(t, o.opened[3].closed)
}

func TestRegistryOpenError(t *testing.T) {
	reg := userinput.NewRegistry(&opener{fail: true})
	_, err := reg.Add(0)
	test.ExpectSuccess(t, curated.Is(err, userinput.OpenError))
	test.ExpectEquality(t, reg.Len(), 0)
}
