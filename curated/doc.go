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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific Errorf() pattern. The pattern is used to differentiate curated
// errors. For example:
//
//	e := curated.Errorf("breakpoint: unknown address %#08x", addr)
//
//	if curated.Is(e, "breakpoint: unknown address %#08x") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	e := curated.Errorf("breakpoint: unknown address %#08x", addr)
//	f := curated.Errorf("table: %v", e)
//
//	if curated.Has(f, "breakpoint: unknown address %#08x") {
//		fmt.Println("true")
//	}
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We can think of the difference as being 'expected' and
// 'unexpected' depending on how we choose to handle the result of the
// function call.
//
// The Error() function implementation for curated errors ensures that the
// error chain does not contain duplicate adjacent parts. For the purposes of
// this package we think of chains as being composed of parts separated by the
// sub-string ': '. So, an error created like this:
//
//	curated.Errorf("launch: %v", curated.Errorf("launch: file not found"))
//
// will be printed as:
//
//	launch: file not found
//
// Curated errors also implement Unwrap(). The first error value in the list
// of values given to Errorf() is the wrapped error. This means that errors
// from lower level packages (the operating system for example) can still be
// inspected with errors.Is() and errors.As() from the standard library.
//
// Sentinel patterns should be stored as a const string, suitably named and
// commented.
package curated
