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

package breakpoints_test

import (
	"strings"
	"testing"

	"github.com/Armonte/wanwan/breakpoints"
	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/debuggee"
	"github.com/Armonte/wanwan/test"
)

func TestExportJSON(t *testing.T) {
	tab := breakpoints.FM2K()
	tab.Arm(breakpoints.FM2KInputStore)

	data, err := breakpoints.ExportJSON(tab)
	test.DemandSuccess(t, err)

	ld, err := breakpoints.LoadJSON(data)
	test.DemandSuccess(t, err)

	exp := tab.Specs()
	got := ld.Specs()
	test.DemandEquality(t, len(got), len(exp))
	for i := range exp {
		test.ExpectEquality(t, got[i].String(), exp[i].String())
		test.ExpectEquality(t, got[i].Checkpoint, exp[i].Checkpoint)
		test.ExpectEquality(t, ld.IsArmed(got[i].Address), tab.IsArmed(exp[i].Address))
	}
}

func TestLoadJSON(t *testing.T) {
	data := []byte(`{
  "breakpoints": [
    {
      "name": "input read",
      "address": 4277968,
      "original": "53",
      "patch": "cc",
      "action": "redirect",
      "arm": true,
      "checkpoint": true,
      "ops": [
        { "op": "adjust", "reg": "esp", "delta": -4 },
        { "op": "store", "addr": "esp", "src": "ebx", "substitute": true }
      ]
    },
    {
      "address": "0x00405be4",
      "original": "8d 73 01",
      "patch": "cc 90 90",
      "ops": [
        { "op": "lea", "dst": "ESI", "base": "EBX", "disp": 1 }
      ]
    }
  ]
}`)

	tab, err := breakpoints.LoadJSON(data)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(tab.Specs()), 2)
	test.DemandEquality(t, len(tab.Armed()), 1)

	s, ok := tab.Lookup(breakpoints.FM2KInputRead)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, s.Checkpoint)
	test.ExpectEquality(t, s.Action, breakpoints.RedirectInput)
	test.DemandEquality(t, len(s.Ops), 2)
	test.ExpectEquality(t, s.Ops[1].String(), "[ESP] = EBX*")

	// missing name and action fields have defaults
	s, ok = tab.Lookup(breakpoints.FM2KInputCall)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, s.Name, "0x00405be4")
	test.ExpectEquality(t, s.Action, breakpoints.PatchOnly)
	test.ExpectFailure(t, s.Checkpoint)
	test.ExpectEquality(t, len(s.Patch), 3)

	var regs debuggee.Registers
	regs.Set(debuggee.EBX, 9)
	err = breakpoints.Emulate(s, &regs, nil, debuggee.EDX)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, regs.Get(debuggee.ESI), 10)
}

func TestLoadJSONErrors(t *testing.T) {
	_, err := breakpoints.LoadJSON([]byte(`{"breakpoints": [`))
	test.ExpectSuccess(t, curated.Is(err, breakpoints.JSONError), "invalid json")

	_, err = breakpoints.LoadJSON([]byte(`{"specs": []}`))
	test.ExpectSuccess(t, curated.Is(err, breakpoints.JSONError), "no array")

	_, err = breakpoints.LoadJSON([]byte(`{"breakpoints": [{"address": "0x1000", "original": "zz", "patch": "cc"}]}`))
	test.ExpectSuccess(t, curated.Is(err, breakpoints.JSONError), "bad hex")

	_, err = breakpoints.LoadJSON([]byte(`{"breakpoints": [{"address": "0x1000", "original": "53", "patch": "cc",
		"ops": [{"op": "jmp"}]}]}`))
	test.ExpectSuccess(t, curated.Is(err, breakpoints.JSONError), "unknown op")

	_, err = breakpoints.LoadJSON([]byte(`{"breakpoints": [{"address": "0x1000", "original": "53", "patch": "cc",
		"ops": [{"op": "adjust", "reg": "RAX"}]}]}`))
	test.ExpectSuccess(t, curated.Is(err, breakpoints.JSONError), "unknown register")
	test.ExpectSuccess(t, strings.Contains(err.Error(), "unknown register (RAX)"))

	// valid json but the breakpoint is invalid
	_, err = breakpoints.LoadJSON([]byte(`{"breakpoints": [{"address": "0x1000", "original": "53", "patch": "90"}]}`))
	test.ExpectSuccess(t, curated.Is(err, breakpoints.InvalidSpec), "no trap byte")
}
