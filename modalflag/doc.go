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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas, with flag.FlagSet you call Parse() with the array of strings as the
// only argument, with modalflag you first call NewArgs() with the array of
// arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("FRAMESTEP", "SIMULATE", "TABLE")
//	_, _ = md.Parse()
//
// After a successful Parse(), the Mode() function returns the selected mode.
// The first sub-mode in the list is the default mode and is selected if the
// first argument is not one of the listed sub-modes. The selected mode can
// then define its own flags by calling NewMode() and then the AddBool(),
// AddString(), etc. functions before calling Parse() again:
//
//	md.NewMode()
//	verbose := md.AddBool("verbose", false, "log every frame")
//	_, _ = md.Parse()
//
// Non-flag arguments can be retrieved with the RemainingArgs() or GetArg()
// functions.
//
// Help messages are printed automatically when the -help flag is given. The
// help message includes the list of sub-modes when there are any.
package modalflag
