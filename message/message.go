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

// Package message represents one FIX message as a MessageDescr reference
// plus a root tagtable.Table, exposing typed setters that consult the
// descriptor for validation (when enabled) before touching the table, and
// typed getters that read the table directly.
package message

import (
	"github.com/relayfix/fixmsg/dictionary"
	"github.com/relayfix/fixmsg/fixerr"
	"github.com/relayfix/fixmsg/tagtable"
)

// Flags is a bitset of per-message behaviours.
type Flags uint8

const (
	// Validate turns on descriptor lookup for every setter and for
	// AddGroup, GetGroup and DelGroup; getters and GroupCount never consult
	// the descriptor. With it off, a Message is a bare tag/value store:
	// setters write arbitrary tag/value pairs with no schema guarantees.
	Validate Flags = 1 << iota
)

// GroupHandle identifies one repeating-group occurrence — its tag table and
// the FieldDescr governing its member fields — returned by AddGroup and
// GetGroup and accepted as the "parent" argument of every setter, getter
// and nested group operation.
type GroupHandle struct {
	table *tagtable.Table
	descr *dictionary.FieldDescr
}

// Message is a descriptor reference plus the root Tag Table it validates
// and mutates through. It is not safe for concurrent use.
type Message struct {
	Protocol *dictionary.ProtocolDescr
	Descr    *dictionary.MessageDescr
	Root     *tagtable.Table
	Flags    Flags
}

// Create resolves msgType against protocol's messages_by_type index and
// returns a new Message bound to the resulting MessageDescr. When Validate
// is set, tag 35 (MsgType) is installed on the root table immediately, as
// the source does.
func Create(protocol *dictionary.ProtocolDescr, msgType string, flags Flags) (*Message, error) {
	descr, ok := protocol.LookupMessage(msgType)
	if !ok {
		return nil, fixerr.New(fixerr.UnknownMsg, "unknown MsgType %q", msgType)
	}

	m := &Message{
		Protocol: protocol,
		Descr:    descr,
		Root:     tagtable.New(),
		Flags:    flags,
	}

	if m.validating() {
		m.Root.Set(tagMsgType, tagtable.StringValue([]byte(msgType)))
	}

	return m, nil
}

const (
	tagBeginString = 8
	tagBodyLength  = 9
	tagMsgType     = 35
	tagCheckSum    = 10
)

func (m *Message) validating() bool {
	return m.Flags&Validate != 0
}

// tableFor resolves the Tag Table a setter/getter should touch: the
// group occurrence's table when parent is non-nil, otherwise the root.
func (m *Message) tableFor(parent *GroupHandle) *tagtable.Table {
	if parent != nil {
		return parent.table
	}
	return m.Root
}

// resolveField performs the descriptor lookup setters and group operations
// share: a group-member tag resolves against its parent's subfield_index,
// a root-level tag resolves against the message's own field_index, falling
// back to the dictionary's common header/trailer fields (8, 9, 35, 10, 49,
// 56, ... are declared there, not on any one message).
func (m *Message) resolveField(parent *GroupHandle, tag int) (*dictionary.FieldDescr, error) {
	if parent != nil {
		fd, ok := parent.descr.Subfield(tag)
		if !ok {
			return nil, fixerr.New(fixerr.UnknownField, "tag %d not declared in group %s", tag, parent.descr.Type.Name)
		}
		return fd, nil
	}

	if fd, ok := m.Descr.Field(tag); ok {
		return fd, nil
	}
	if fd, ok := m.Protocol.HeaderField(tag); ok {
		return fd, nil
	}
	if fd, ok := m.Protocol.TrailerField(tag); ok {
		return fd, nil
	}
	return nil, fixerr.New(fixerr.UnknownField, "tag %d not declared on message %s", tag, m.Descr.Name)
}
