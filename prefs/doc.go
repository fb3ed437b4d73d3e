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

// Package prefs facilitates the storage of preferential values in the
// program. Preference values are typed (Bool, String and Int) and are
// registered with a Disk instance to be loaded from and saved to a file.
//
// Each preference type can have a pre and post hook. The pre hook is useful
// for validating a value before it is stored:
//
//	var policy prefs.String
//	policy.SetHookPre(func(v prefs.Value) error {
//		...
//	})
//
// Preference values can also be specified on the command line. See
// PushCommandLineStack().
package prefs
