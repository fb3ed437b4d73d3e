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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Armonte/wanwan/breakpoints"
	"github.com/Armonte/wanwan/test"
	"github.com/Armonte/wanwan/version"
)

func TestParseAddresses(t *testing.T) {
	addrs, err := parseAddresses("0x004146d0, 0x00405be4,")
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(addrs), 2)
	test.ExpectEquality(t, addrs[0], breakpoints.FM2KInputRead)
	test.ExpectEquality(t, addrs[1], breakpoints.FM2KInputCall)

	addrs, err = parseAddresses("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(addrs), 0)

	_, err = parseAddresses("0x1ffffffff")
	test.ExpectFailure(t, err)
}

func TestLoadTable(t *testing.T) {
	tab, err := loadTable("", "0x00414837", "0x004146d0")
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, tab.IsArmed(breakpoints.FM2KInputRead))
	test.ExpectSuccess(t, tab.IsArmed(breakpoints.FM2KInputStore))

	_, err = loadTable("", "0x00001000", "")
	test.ExpectFailure(t, err)
}

func TestTableMode(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch([]string{"TABLE"}, w), 0)
	test.ExpectSuccess(t, strings.Contains(w.String(), "* 0x004146d0 input read"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "  0x00405be4 input call"))

	// the exported table can be loaded again
	w.Clear()
	test.DemandEquality(t, launch([]string{"TABLE", "-json"}, w), 0)
	pth := filepath.Join(t.TempDir(), "table.json")
	test.DemandSuccess(t, os.WriteFile(pth, []byte(w.String()), 0600))

	w.Clear()
	dot := filepath.Join(t.TempDir(), "table.dot")
	test.ExpectEquality(t, launch([]string{"TABLE", "-table", pth, "-dot", dot}, w), 0)
	test.ExpectSuccess(t, strings.Contains(w.String(), "input store"))

	data, err := os.ReadFile(dot)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), "digraph"))
}

func TestSimulateMode(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch([]string{"SIMULATE", "-frames", "5", "-fps", "0", "-input", "NONE"}, w), 0)
	test.ExpectSuccess(t, strings.Contains(w.String(), "simulation ended after 5 frames"))

	w.Clear()
	test.ExpectEquality(t, launch([]string{"SIMULATE", "-input", "JOYSTICK"}, w), exitMode)
	test.ExpectSuccess(t, strings.HasPrefix(w.LastLine(), "* error in SIMULATE mode"))
}

func TestUnknownFlag(t *testing.T) {
	// unknown flags are passed to the default mode
	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch([]string{"-nosuchflag"}, w), exitMode)
	test.ExpectSuccess(t, strings.HasPrefix(w.LastLine(), "* error in FRAMESTEP mode"))
}

func TestVersionMode(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch([]string{"VERSION"}, w), 0)
	test.ExpectEquality(t, w.LastLine(), version.String())
}
