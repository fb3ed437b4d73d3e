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

package session

import (
	"github.com/Armonte/wanwan/debuggee"
	"github.com/Armonte/wanwan/pause"
	"github.com/Armonte/wanwan/paths"
	"github.com/Armonte/wanwan/prefs"
	"github.com/Armonte/wanwan/userinput"
)

// Preferences defines and collates all the preference values used by the
// session.
type Preferences struct {
	dsk *prefs.Disk

	// buttons used by the pause gate
	PauseButton    prefs.String
	ContinueButton prefs.String
	Chord          prefs.Bool

	// register substituted at RedirectInput breakpoints
	Redirect prefs.String

	// see ErrorPolicy
	Errors prefs.String

	// foreign exceptions that are not breakpoints are passed back to the
	// target as unhandled
	Foreign prefs.Bool

	// compare the original bytes before installing a breakpoint
	Verify prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. If path is empty the default preferences file is used.
//
// Preferences are loaded from disk. Values on the command line stack take
// priority.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	// values are validated before they are stored
	p.PauseButton.SetHookPre(func(v prefs.Value) error {
		_, err := userinput.ParseButton(v.(string))
		return err
	})
	p.ContinueButton.SetHookPre(func(v prefs.Value) error {
		_, err := userinput.ParseButton(v.(string))
		return err
	})
	p.Redirect.SetHookPre(func(v prefs.Value) error {
		_, err := debuggee.ParseRegister(v.(string))
		return err
	})
	p.Errors.SetHookPre(func(v prefs.Value) error {
		_, err := ParsePolicy(v.(string))
		return err
	})

	if path == "" {
		var err error
		path, err = paths.MakeResourceDir("", prefs.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	entries := []struct {
		key string
		p   prefs.Pref
	}{
		{"framestep.pause", &p.PauseButton},
		{"framestep.continue", &p.ContinueButton},
		{"framestep.chord", &p.Chord},
		{"framestep.redirect", &p.Redirect},
		{"framestep.errors", &p.Errors},
		{"framestep.foreign", &p.Foreign},
		{"framestep.verify", &p.Verify},
	}
	for _, e := range entries {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.PauseButton.Set(userinput.ButtonBack.String())
	p.ContinueButton.Set(userinput.ButtonA.String())
	p.Chord.Set(true)
	p.Redirect.Set(debuggee.EDX.String())
	p.Errors.Set(PolicyLog.String())
	p.Foreign.Set(false)
	p.Verify.Set(true)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Controls returns the pause gate controls described by the preferences.
func (p *Preferences) Controls() pause.Controls {
	// the values have been validated by the pre hooks
	pb, _ := userinput.ParseButton(p.PauseButton.String())
	cb, _ := userinput.ParseButton(p.ContinueButton.String())
	return pause.Controls{
		Pause:    pb,
		Continue: cb,
		Chord:    p.Chord.Get().(bool),
	}
}

// RedirectRegister returns the register named by the Redirect preference.
func (p *Preferences) RedirectRegister() debuggee.Register {
	r, _ := debuggee.ParseRegister(p.Redirect.String())
	return r
}

// Policy returns the error policy named by the Errors preference.
func (p *Preferences) Policy() ErrorPolicy {
	e, _ := ParsePolicy(p.Errors.String())
	return e
}
