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
package message

import (
	"github.com/relayfix/fixmsg/fixerr"
	"github.com/relayfix/fixmsg/tagtable"
)

func (m *Message) rawValue(parent *GroupHandle, tag int) (tagtable.Value, error) {
	v, ok := m.tableFor(parent).Get(tag)
	if !ok {
		return tagtable.Value{}, fixerr.New(fixerr.NotFound, "tag %d not set", tag)
	}
	return v, nil
}

// GetInt64 returns the value stored at tag, which must hold a KindLong
// value (every integer-family setter stores KindLong).
func (m *Message) GetInt64(parent *GroupHandle, tag int) (int64, error) {
	v, err := m.rawValue(parent, tag)
	if err != nil {
		return 0, err
	}
	if v.Kind != tagtable.KindLong {
		return 0, fixerr.New(fixerr.WrongType, "tag %d is not an integer", tag)
	}
	return v.Long, nil
}

// GetInt32 returns the value stored at tag, truncated to int32.
func (m *Message) GetInt32(parent *GroupHandle, tag int) (int32, error) {
	v, err := m.GetInt64(parent, tag)
	return int32(v), err
}

// GetDouble returns the numeric value stored at tag.
func (m *Message) GetDouble(parent *GroupHandle, tag int) (float64, error) {
	v, err := m.rawValue(parent, tag)
	if err != nil {
		return 0, err
	}
	if v.Kind != tagtable.KindDouble {
		return 0, fixerr.New(fixerr.WrongType, "tag %d is not a double", tag)
	}
	return v.Double, nil
}

// GetChar returns the char value stored at tag.
func (m *Message) GetChar(parent *GroupHandle, tag int) (byte, error) {
	v, err := m.rawValue(parent, tag)
	if err != nil {
		return 0, err
	}
	if v.Kind != tagtable.KindChar {
		return 0, fixerr.New(fixerr.WrongType, "tag %d is not a char", tag)
	}
	return v.Char, nil
}

// GetString returns the textual value stored at tag.
func (m *Message) GetString(parent *GroupHandle, tag int) (string, error) {
	v, err := m.rawValue(parent, tag)
	if err != nil {
		return "", err
	}
	if v.Kind != tagtable.KindString {
		return "", fixerr.New(fixerr.WrongType, "tag %d is not a string", tag)
	}
	return string(v.Bytes), nil
}

// GetData returns the binary value stored at tag.
func (m *Message) GetData(parent *GroupHandle, tag int) ([]byte, error) {
	v, err := m.rawValue(parent, tag)
	if err != nil {
		return nil, err
	}
	if v.Kind != tagtable.KindData {
		return nil, fixerr.New(fixerr.WrongType, "tag %d is not data", tag)
	}
	return v.Bytes, nil
}

// Del removes tag, reporting whether it was present.
func (m *Message) Del(parent *GroupHandle, tag int) bool {
	return m.tableFor(parent).Del(tag)
}
