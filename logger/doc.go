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

// Package logger is the central log for the application. There is only one
// central log and package level functions write to it. Entries are tagged to
// indicate the area of the program they come from. For example:
//
//	logger.Logf(logger.Allow, "session", "breakpoint armed at %#08x", addr)
//
// The first argument is a Permission. Prefer logger.Allow unless the entry
// is created very frequently, in which case a Verbosity value can be used to
// turn the entries on and off.
//
// Identical consecutive entries are not repeated in the log. Instead the
// existing entry is marked as having been repeated.
//
// The log is bounded and the oldest entries are dropped when the maximum
// number of entries is reached.
package logger
