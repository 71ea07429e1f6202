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
	"github.com/relayfix/fixmsg/dictionary"
	"github.com/relayfix/fixmsg/fixerr"
)

// groupDescr resolves tag's FieldDescr when validating and checks it
// actually introduces a repeating group. With validation off it returns
// (nil, nil): AddGroup then falls through to the Tag Table's own KindGroup
// check, which is the chosen resolution of the open question on
// add_group/non-group behaviour on an unvalidated message — rather than
// a blanket InvalidArgument, the table itself reports NotGroup if tag
// already holds an incompatible scalar value.
func (m *Message) groupDescr(parent *GroupHandle, tag int) (*dictionary.FieldDescr, error) {
	if !m.validating() {
		return nil, nil
	}
	fd, err := m.resolveField(parent, tag)
	if err != nil {
		return nil, err
	}
	if !fd.IsGroup() {
		return nil, fixerr.New(fixerr.NotGroup, "tag %d (%s) has no subfields", tag, fd.Type.Name)
	}
	return fd, nil
}

// AddGroup appends a fresh occurrence to the repeating group at tag and
// returns a handle bound to it.
func (m *Message) AddGroup(parent *GroupHandle, tag int) (*GroupHandle, error) {
	fd, err := m.groupDescr(parent, tag)
	if err != nil {
		return nil, err
	}

	child, err := m.tableFor(parent).AddGroupOccurrence(tag)
	if err != nil {
		return nil, err
	}

	return &GroupHandle{table: child, descr: fd}, nil
}

// GetGroup returns a handle to the zero-based occurrence at tag.
func (m *Message) GetGroup(parent *GroupHandle, tag int, index int) (*GroupHandle, error) {
	fd, err := m.groupDescr(parent, tag)
	if err != nil {
		return nil, err
	}

	child, ok := m.tableFor(parent).GetGroupOccurrence(tag, index)
	if !ok {
		return nil, fixerr.New(fixerr.NotFound, "tag %d has no occurrence %d", tag, index)
	}

	return &GroupHandle{table: child, descr: fd}, nil
}

// GroupCount returns the number of occurrences currently stored at tag.
func (m *Message) GroupCount(parent *GroupHandle, tag int) int {
	return m.tableFor(parent).GroupOccurrenceCount(tag)
}

// DelGroup removes the zero-based occurrence at tag, reporting whether it
// existed.
func (m *Message) DelGroup(parent *GroupHandle, tag int, index int) (bool, error) {
	if _, err := m.groupDescr(parent, tag); err != nil {
		return false, err
	}
	return m.tableFor(parent).DelGroupOccurrence(tag, index), nil
}
