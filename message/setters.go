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
	"strconv"

	"github.com/relayfix/fixmsg/dictionary"
	"github.com/relayfix/fixmsg/fixerr"
	"github.com/relayfix/fixmsg/tagtable"
)

// checkKind resolves tag's FieldDescr (when validating) and rejects it
// with WrongType unless accept reports true for its FieldKind. With
// validation off it is a no-op: unvalidated messages accept any tag.
func (m *Message) checkKind(parent *GroupHandle, tag int, accept func(dictionary.FieldKind) bool) error {
	if !m.validating() {
		return nil
	}
	fd, err := m.resolveField(parent, tag)
	if err != nil {
		return err
	}
	if !accept(fd.Type.Kind) {
		return fixerr.New(fixerr.WrongType, "tag %d (%s) is %s", tag, fd.Type.Name, fd.Type.Kind)
	}
	return nil
}

// SetInt32 writes an integer-family tag (Int, Length, NumInGroup, SeqNum).
func (m *Message) SetInt32(parent *GroupHandle, tag int, value int32) error {
	return m.SetInt64(parent, tag, int64(value))
}

// SetInt64 writes an integer-family tag (Int, Length, NumInGroup, SeqNum).
func (m *Message) SetInt64(parent *GroupHandle, tag int, value int64) error {
	if err := m.checkKind(parent, tag, dictionary.FieldKind.IsIntegral); err != nil {
		return err
	}
	m.tableFor(parent).Set(tag, tagtable.LongValue(value))
	return nil
}

// SetDouble writes a numeric-with-fraction tag (Float, Price, Qty, Amt,
// Percentage). precision is the number of digits after the decimal point
// to render, giving the caller exact control over the wire text — the
// "pre-formatted text" escape hatch the design notes call for.
func (m *Message) SetDouble(parent *GroupHandle, tag int, value float64, precision int) error {
	if err := m.checkKind(parent, tag, dictionary.FieldKind.IsNumeric); err != nil {
		return err
	}
	text := strconv.FormatFloat(value, 'f', precision, 64)
	m.tableFor(parent).Set(tag, tagtable.DoubleValue(value, []byte(text)))
	return nil
}

// SetChar writes a Char or Boolean tag.
func (m *Message) SetChar(parent *GroupHandle, tag int, value byte) error {
	if err := m.checkKind(parent, tag, dictionary.FieldKind.IsCharLike); err != nil {
		return err
	}
	m.tableFor(parent).Set(tag, tagtable.CharValue(value))
	return nil
}

// SetString writes any textual tag other than Data.
func (m *Message) SetString(parent *GroupHandle, tag int, value string) error {
	if err := m.checkKind(parent, tag, dictionary.FieldKind.IsTextual); err != nil {
		return err
	}
	m.tableFor(parent).Set(tag, tagtable.StringValue([]byte(value)))
	return nil
}

// SetData writes a length-prefixed binary tag. lengthTag is the companion
// Length field's tag number; it is written first so the table's insertion
// order always places Length immediately before Data, regardless of which
// the caller declares first, matching the design note in section 9.
func (m *Message) SetData(parent *GroupHandle, lengthTag, tag int, data []byte) error {
	if err := m.checkKind(parent, lengthTag, dictionary.FieldKind.IsIntegral); err != nil {
		return err
	}
	if err := m.checkKind(parent, tag, dictionary.FieldKind.IsData); err != nil {
		return err
	}
	table := m.tableFor(parent)
	table.Set(lengthTag, tagtable.LongValue(int64(len(data))))
	table.Set(tag, tagtable.DataValue(data))
	return nil
}
