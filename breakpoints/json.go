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

package breakpoints

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/Armonte/wanwan/curated"
	"github.com/Armonte/wanwan/debuggee"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Sentinal error pattern for LoadJSON() and ExportJSON().
const JSONError = "breakpoints: json: %v"

// names of the micro-operations in the JSON representation.
const (
	opAdjust   = "adjust"
	opStore    = "store"
	opStoreAbs = "storeabs"
	opLEA      = "lea"
)

// LoadJSON creates a new Table from its JSON representation. For example:
//
//	{
//	  "breakpoints": [
//	    {
//	      "name": "input read",
//	      "address": "0x004146d0",
//	      "original": "53",
//	      "patch": "cc",
//	      "action": "redirect",
//	      "arm": true,
//	      "checkpoint": true,
//	      "ops": [
//	        { "op": "adjust", "reg": "ESP", "delta": -4 },
//	        { "op": "store", "addr": "ESP", "src": "EBX", "substitute": true }
//	      ]
//	    }
//	  ]
//	}
//
// Addresses can be numbers or strings. Strings are parsed with the usual Go
// prefixes for base. The byte sequences are hex strings, spaces are allowed.
// The other micro-operations are "storeabs" (with a numeric "addr") and "lea"
// (with "dst", "base" and "disp" fields).
func LoadJSON(data []byte) (*Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, curated.Errorf(JSONError, "invalid json")
	}

	bps := gjson.GetBytes(data, "breakpoints")
	if !bps.IsArray() {
		return nil, curated.Errorf(JSONError, "no breakpoints array")
	}

	var specs []Spec
	var err error

	bps.ForEach(func(_, bp gjson.Result) bool {
		var s Spec
		s, err = specFromJSON(bp)
		if err != nil {
			return false
		}
		specs = append(specs, s)
		return true
	})

	if err != nil {
		return nil, curated.Errorf(JSONError, err)
	}

	return NewTable(specs...)
}

func specFromJSON(bp gjson.Result) (Spec, error) {
	s := Spec{
		Name:       bp.Get("name").String(),
		Arm:        bp.Get("arm").Bool(),
		Checkpoint: bp.Get("checkpoint").Bool(),
	}

	var err error

	s.Address, err = addressFromJSON(bp.Get("address"))
	if err != nil {
		return Spec{}, fmt.Errorf("%s: address: %w", s.Name, err)
	}

	if s.Name == "" {
		s.Name = fmt.Sprintf("0x%08x", s.Address)
	}

	s.Original, err = bytesFromJSON(bp.Get("original"))
	if err != nil {
		return Spec{}, fmt.Errorf("%s: original: %w", s.Name, err)
	}

	s.Patch, err = bytesFromJSON(bp.Get("patch"))
	if err != nil {
		return Spec{}, fmt.Errorf("%s: patch: %w", s.Name, err)
	}

	act := bp.Get("action")
	if act.Exists() {
		s.Action, err = ParseAction(act.String())
		if err != nil {
			return Spec{}, fmt.Errorf("%s: %w", s.Name, err)
		}
	} else {
		s.Action = PatchOnly
	}

	for i, o := range bp.Get("ops").Array() {
		op, err := opFromJSON(o)
		if err != nil {
			return Spec{}, fmt.Errorf("%s: op %d: %w", s.Name, i, err)
		}
		s.Ops = append(s.Ops, op)
	}

	return s, nil
}

func opFromJSON(o gjson.Result) (Op, error) {
	reg := func(field string) (debuggee.Register, error) {
		r := o.Get(field)
		if !r.Exists() {
			return debuggee.EAX, fmt.Errorf("missing %s field", field)
		}
		return debuggee.ParseRegister(r.String())
	}

	sub := o.Get("substitute").Bool()

	switch o.Get("op").String() {
	case opAdjust:
		r, err := reg("reg")
		if err != nil {
			return nil, err
		}
		return AdjustRegister{Reg: r, Delta: int32(o.Get("delta").Int())}, nil

	case opStore:
		a, err := reg("addr")
		if err != nil {
			return nil, err
		}
		src, err := reg("src")
		if err != nil {
			return nil, err
		}
		return StoreRegister{AddrReg: a, Src: src, Substitute: sub}, nil

	case opStoreAbs:
		a, err := addressFromJSON(o.Get("addr"))
		if err != nil {
			return nil, err
		}
		src, err := reg("src")
		if err != nil {
			return nil, err
		}
		return StoreAbsolute{Addr: a, Src: src, Substitute: sub}, nil

	case opLEA:
		dst, err := reg("dst")
		if err != nil {
			return nil, err
		}
		base, err := reg("base")
		if err != nil {
			return nil, err
		}
		return LoadEffective{Dst: dst, Base: base, Disp: int32(o.Get("disp").Int()), Substitute: sub}, nil
	}

	return nil, fmt.Errorf("unknown op (%s)", o.Get("op").String())
}

func addressFromJSON(r gjson.Result) (uint32, error) {
	switch r.Type {
	case gjson.Number:
		if r.Num < 0 || r.Num > 0xffffffff {
			return 0, fmt.Errorf("out of range (%s)", r.Raw)
		}
		return uint32(r.Uint()), nil
	case gjson.String:
		v, err := strconv.ParseUint(strings.TrimSpace(r.Str), 0, 32)
		if err != nil {
			return 0, err
		}
		return uint32(v), nil
	}
	return 0, fmt.Errorf("missing or not a number")
}

func bytesFromJSON(r gjson.Result) ([]byte, error) {
	if r.Type != gjson.String {
		return nil, fmt.Errorf("missing or not a string")
	}
	return hex.DecodeString(strings.ReplaceAll(r.Str, " ", ""))
}

// ExportJSON creates the JSON representation of the Table. The output can be
// loaded with LoadJSON(). Breakpoints are exported in address order and the
// output is indented.
func ExportJSON(tab *Table) ([]byte, error) {
	data := []byte(`{"breakpoints":[]}`)

	var err error
	set := func(path string, v interface{}) {
		if err != nil {
			return
		}
		data, err = sjson.SetBytes(data, path, v)
	}
	setRaw := func(path string, raw string) {
		if err != nil {
			return
		}
		data, err = sjson.SetRawBytes(data, path, []byte(raw))
	}

	for i, s := range tab.Specs() {
		p := fmt.Sprintf("breakpoints.%d", i)
		setRaw(p, "{}")
		set(p+".name", s.Name)
		set(p+".address", fmt.Sprintf("0x%08x", s.Address))
		set(p+".original", hex.EncodeToString(s.Original))
		set(p+".patch", hex.EncodeToString(s.Patch))
		set(p+".action", s.Action.String())
		set(p+".arm", tab.IsArmed(s.Address))
		set(p+".checkpoint", s.Checkpoint)

		setRaw(p+".ops", "[]")

		for j, op := range s.Ops {
			q := fmt.Sprintf("%s.ops.%d", p, j)
			setRaw(q, "{}")
			switch op := op.(type) {
			case AdjustRegister:
				set(q+".op", opAdjust)
				set(q+".reg", op.Reg.String())
				set(q+".delta", op.Delta)
			case StoreRegister:
				set(q+".op", opStore)
				set(q+".addr", op.AddrReg.String())
				set(q+".src", op.Src.String())
				set(q+".substitute", op.Substitute)
			case StoreAbsolute:
				set(q+".op", opStoreAbs)
				set(q+".addr", fmt.Sprintf("0x%08x", op.Addr))
				set(q+".src", op.Src.String())
				set(q+".substitute", op.Substitute)
			case LoadEffective:
				set(q+".op", opLEA)
				set(q+".dst", op.Dst.String())
				set(q+".base", op.Base.String())
				set(q+".disp", op.Disp)
				set(q+".substitute", op.Substitute)
			}
		}
	}

	if err != nil {
		return nil, curated.Errorf(JSONError, err)
	}

	return pretty.Pretty(data), nil
}
