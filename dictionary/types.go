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

// Package dictionary loads a FIX protocol XML specification into an
// in-memory, index-optimised descriptor graph: one FieldType per declared
// tag number, one FieldDescr per field reference a message or group makes
// to it, and one MessageDescr per declared message, with <component>
// references expanded inline at load time. A ProtocolDescr is built once
// and is immutable and safely shareable thereafter.
package dictionary

// FieldFlag is a bitset of per-field-reference properties.
type FieldFlag uint8

const (
	// Required marks a field reference as mandatory for its containing
	// message or group.
	Required FieldFlag = 1 << iota
)

// FieldType is one declared <field> entry: a tag number, its canonical
// name, and its primitive kind. One instance exists per tag number for the
// lifetime of the owning ProtocolDescr.
type FieldType struct {
	Num   int
	Name  string
	Kind  FieldKind
	Enums map[string]string // wire value -> description, e.g. "1" -> "BUY"
}

// FieldDescr is one field reference inside a message or component body.
// When Subfields is non-empty, this reference introduces a repeating
// group: Type is the NumInGroup field governing the group's occurrence
// count, and Subfields/subfieldIndex describe one occurrence's layout.
type FieldDescr struct {
	Type      *FieldType
	Flags     FieldFlag
	Subfields []*FieldDescr

	subfieldIndex *numIndex[*FieldDescr]
}

// IsRequired reports whether this reference carries the Required flag.
func (fd *FieldDescr) IsRequired() bool {
	return fd.Flags&Required != 0
}

// IsGroup reports whether this reference introduces a repeating group.
func (fd *FieldDescr) IsGroup() bool {
	return len(fd.Subfields) > 0
}

// Subfield resolves a tag number against this group's own field index. It
// is only meaningful when IsGroup reports true.
func (fd *FieldDescr) Subfield(tag int) (*FieldDescr, bool) {
	if fd.subfieldIndex == nil {
		return nil, false
	}
	return fd.subfieldIndex.lookup(tag)
}

// MessageDescr is one declared <message>, its component and group
// references fully expanded in source order.
type MessageDescr struct {
	Name    string
	MsgType string
	Fields  []*FieldDescr

	fieldIndex *numIndex[*FieldDescr]
}

// Field resolves a root-level tag number against this message's field
// index.
func (md *MessageDescr) Field(tag int) (*FieldDescr, bool) {
	if md.fieldIndex == nil {
		return nil, false
	}
	return md.fieldIndex.lookup(tag)
}

// ProtocolDescr is the fully loaded, immutable descriptor graph for one FIX
// dictionary. It is created once by Load and is safe for unsynchronised
// concurrent reads — Message construction and wire encoding never mutate
// it.
type ProtocolDescr struct {
	Version ProtocolVersion

	// Header and Trailer are the dictionary's common <header>/<trailer>
	// component fields, expanded the same way a message's own fields are.
	// They apply to every message, which is why they live on ProtocolDescr
	// rather than on any one MessageDescr.
	Header  []*FieldDescr
	Trailer []*FieldDescr

	fieldTypesByName *nameIndex[*FieldType]
	typesByNum       *numIndex[*FieldType]
	messagesByType   *nameIndex[*MessageDescr]
	headerIndex      *numIndex[*FieldDescr]
	trailerIndex     *numIndex[*FieldDescr]
}

// LookupFieldType resolves a field's declared name to its FieldType. This
// is the operation P1 (lookup determinism) exercises.
func (p *ProtocolDescr) LookupFieldType(name string) (*FieldType, bool) {
	return p.fieldTypesByName.lookup(name)
}

// LookupMessage resolves a MsgType wire value (tag 35) to its
// MessageDescr.
func (p *ProtocolDescr) LookupMessage(msgType string) (*MessageDescr, bool) {
	return p.messagesByType.lookup(msgType)
}

// FieldTypeCount returns the number of distinct field types loaded, mostly
// useful for diagnostics and tests.
func (p *ProtocolDescr) FieldTypeCount() int {
	return p.fieldTypesByName.len()
}

// MessageCount returns the number of distinct messages loaded.
func (p *ProtocolDescr) MessageCount() int {
	return p.messagesByType.len()
}

// FieldTypeByNum resolves a tag number to its FieldType, independent of any
// one message's field references — the lookup fixdump uses to print a raw
// tag's name without first knowing which message it belongs to.
func (p *ProtocolDescr) FieldTypeByNum(tag int) (*FieldType, bool) {
	if p.typesByNum == nil {
		return nil, false
	}
	return p.typesByNum.lookup(tag)
}

// EnumDescription resolves tag's wire value against its FieldType's
// declared enum values, if any.
func (p *ProtocolDescr) EnumDescription(tag int, value string) (string, bool) {
	ft, ok := p.FieldTypeByNum(tag)
	if !ok || ft.Enums == nil {
		return "", false
	}
	desc, ok := ft.Enums[value]
	return desc, ok
}

// HeaderField resolves a root-level tag number against the dictionary's
// common header fields (e.g. 49/SenderCompID, 56/TargetCompID).
func (p *ProtocolDescr) HeaderField(tag int) (*FieldDescr, bool) {
	if p.headerIndex == nil {
		return nil, false
	}
	return p.headerIndex.lookup(tag)
}

// TrailerField resolves a root-level tag number against the dictionary's
// common trailer fields (e.g. 89/Signature).
func (p *ProtocolDescr) TrailerField(tag int) (*FieldDescr, bool) {
	if p.trailerIndex == nil {
		return nil, false
	}
	return p.trailerIndex.lookup(tag)
}
