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
	"strings"

	"github.com/Armonte/wanwan/curated"
)

// ErrorPolicy decides what happens when a call to the target fails inside
// the event loop.
//
// A failure to wait for the next event is always fatal. There is no event to
// acknowledge and so no way to continue.
type ErrorPolicy int

// List of valid ErrorPolicy values.
const (
	// log the failure and continue. a failure to read the registers means the
	// instruction is not emulated
	PolicyLog ErrorPolicy = iota

	// the first failure ends the session
	PolicyFatal

	// as PolicyLog but a failure to read or write the registers at a
	// breakpoint also pauses the session
	PolicyPause
)

func (p ErrorPolicy) String() string {
	switch p {
	case PolicyLog:
		return "LOG"
	case PolicyFatal:
		return "FATAL"
	case PolicyPause:
		return "PAUSE"
	}
	return ""
}

// Sentinal error returned by ParsePolicy().
const UnknownPolicy = "session: unknown error policy (%s)"

// ParsePolicy converts the string representation of a policy, as returned by
// ErrorPolicy.String(), into an ErrorPolicy. The comparison is case
// insensitive.
func ParsePolicy(s string) (ErrorPolicy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOG":
		return PolicyLog, nil
	case "FATAL":
		return PolicyFatal, nil
	case "PAUSE":
		return PolicyPause, nil
	}
	return PolicyLog, curated.Errorf(UnknownPolicy, s)
}
