/*
fixmsg — FIX protocol message construction library
Copyright (C) 2025 Steve Clarke <stephenlclarke@mac.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.

In accordance with section 13 of the AGPL, if you modify this program,
your modified version must prominently offer all users interacting with it
remotely through a computer network an opportunity to receive the source
code of your version.
*/
package dictionary

import "fmt"

// ProtocolVersion identifies one of the dictionaries this library can load.
type ProtocolVersion int

const (
	FIX40 ProtocolVersion = iota
	FIX41
	FIX42
	FIX43
	FIX44
	FIX50
	FIX50SP1
	FIX50SP2
	unknownVersion
)

// versionFromAttrs maps the dictionary root's major/minor/servicepack
// attributes (the spelling the retrieved dictionaries actually carry) to a
// ProtocolVersion. An unrecognised combination is a fatal load error.
func versionFromAttrs(major, minor, servicepack string) (ProtocolVersion, bool) {
	switch major + "." + minor {
	case "4.0":
		return FIX40, true
	case "4.1":
		return FIX41, true
	case "4.2":
		return FIX42, true
	case "4.3":
		return FIX43, true
	case "4.4":
		return FIX44, true
	case "5.0":
		switch servicepack {
		case "", "0":
			return FIX50, true
		case "1":
			return FIX50SP1, true
		case "2":
			return FIX50SP2, true
		}
	}
	return unknownVersion, false
}

// BeginString renders the literal value of tag 8 for this version.
func (v ProtocolVersion) BeginString() string {
	switch v {
	case FIX40:
		return "FIX.4.0"
	case FIX41:
		return "FIX.4.1"
	case FIX42:
		return "FIX.4.2"
	case FIX43:
		return "FIX.4.3"
	case FIX44:
		return "FIX.4.4"
	case FIX50, FIX50SP1, FIX50SP2:
		return "FIXT.1.1"
	default:
		return ""
	}
}

func (v ProtocolVersion) String() string {
	switch v {
	case FIX40:
		return "FIX.4.0"
	case FIX41:
		return "FIX.4.1"
	case FIX42:
		return "FIX.4.2"
	case FIX43:
		return "FIX.4.3"
	case FIX44:
		return "FIX.4.4"
	case FIX50:
		return "FIX.5.0"
	case FIX50SP1:
		return "FIX.5.0SP1"
	case FIX50SP2:
		return "FIX.5.0SP2"
	default:
		return fmt.Sprintf("ProtocolVersion(%d)", int(v))
	}
}
