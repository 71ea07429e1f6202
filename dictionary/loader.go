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

import (
	"encoding/xml"
	"os"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/relayfix/fixmsg/fixerr"
)

// rawField is one <fields><field> entry.
type rawField struct {
	Name   string         `xml:"name,attr"`
	Number int            `xml:"number,attr"`
	Type   string         `xml:"type,attr"`
	Values []rawFieldEnum `xml:"value"`
}

// rawFieldEnum is one <value enum= description=> child of a <field>.
type rawFieldEnum struct {
	Enum        string `xml:"enum,attr"`
	Description string `xml:"description,attr"`
}

// rawFieldRef is a <field name required> reference inside a message,
// component or group body.
type rawFieldRef struct {
	Name     string `xml:"name,attr"`
	Required string `xml:"required,attr"`
}

// rawComponentRef is a <component name required> reference.
type rawComponentRef struct {
	Name     string `xml:"name,attr"`
	Required string `xml:"required,attr"`
}

// rawGroup is a <group> body: a field reference that also carries nested
// field/component/group children describing one occurrence's layout.
type rawGroup struct {
	Name       string            `xml:"name,attr"`
	Required   string            `xml:"required,attr"`
	Fields     []rawFieldRef     `xml:"field"`
	Groups     []rawGroup        `xml:"group"`
	Components []rawComponentRef `xml:"component"`
}

// rawComponent is a <components><component> definition, inlined wherever
// referenced and never exposed as a runtime entity.
type rawComponent struct {
	Name       string            `xml:"name,attr"`
	Fields     []rawFieldRef     `xml:"field"`
	Groups     []rawGroup        `xml:"group"`
	Components []rawComponentRef `xml:"component"`
}

// rawMessage is a <messages><message> definition.
type rawMessage struct {
	Name       string            `xml:"name,attr"`
	MsgType    string            `xml:"msgtype,attr"`
	MsgCat     string            `xml:"msgcat,attr"`
	Fields     []rawFieldRef     `xml:"field"`
	Groups     []rawGroup        `xml:"group"`
	Components []rawComponentRef `xml:"component"`
}

// rawDictionary is the root <fix> element.
type rawDictionary struct {
	XMLName     xml.Name       `xml:"fix"`
	Major       string         `xml:"major,attr"`
	Minor       string         `xml:"minor,attr"`
	ServicePack string         `xml:"servicepack,attr"`
	Fields      []rawField     `xml:"fields>field"`
	Messages    []rawMessage   `xml:"messages>message"`
	Components  []rawComponent `xml:"components>component"`
	Header      rawComponent   `xml:"header"`
	Trailer     rawComponent   `xml:"trailer"`
}

// loadState carries the tables the loader threads through component
// expansion; it is discarded once Load returns.
type loadState struct {
	fieldTypesByName *nameIndex[*FieldType]
	componentsByName map[string]rawComponent
}

// LoadFile reads and parses the dictionary XML at path. See Load.
func LoadFile(path string, reporter fixerr.Reporter) (*ProtocolDescr, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		report(reporter, fixerr.LibraryXML, "read %s: %v", path, err)
		return nil, fixerr.New(fixerr.LibraryXML, "read %s: %v", path, err)
	}
	return Load(data, reporter)
}

// Load parses dictionary XML bytes into a ProtocolDescr: field types, then
// messages (and the shared header/trailer components) with component and
// group references expanded inline, then the per-message and per-group
// hashed field indices used by every later lookup. reporter may be nil.
func Load(xmlData []byte, reporter fixerr.Reporter) (*ProtocolDescr, error) {
	dec := xml.NewDecoder(strings.NewReader(string(xmlData)))
	dec.CharsetReader = charset.NewReaderLabel

	var raw rawDictionary
	if err := dec.Decode(&raw); err != nil {
		report(reporter, fixerr.LibraryXML, "decode dictionary: %v", err)
		return nil, fixerr.New(fixerr.LibraryXML, "decode dictionary: %v", err)
	}

	version, ok := versionFromAttrs(raw.Major, raw.Minor, raw.ServicePack)
	if !ok {
		report(reporter, fixerr.ProtocolXMLLoadFailed, "unknown version %s.%s servicepack=%s", raw.Major, raw.Minor, raw.ServicePack)
		return nil, fixerr.New(fixerr.ProtocolXMLLoadFailed, "unknown version %s.%s servicepack=%s", raw.Major, raw.Minor, raw.ServicePack)
	}

	state := &loadState{
		fieldTypesByName: newNameIndex[*FieldType](),
		componentsByName: make(map[string]rawComponent, len(raw.Components)),
	}

	typesByNum := newNumIndex[*FieldType]()

	for _, f := range raw.Fields {
		ft := &FieldType{Num: f.Number, Name: f.Name, Kind: parseFieldKind(f.Type)}
		if len(f.Values) > 0 {
			ft.Enums = make(map[string]string, len(f.Values))
			for _, v := range f.Values {
				ft.Enums[v.Enum] = v.Description
			}
		}
		if !state.fieldTypesByName.insert(f.Name, ft) {
			report(reporter, fixerr.ProtocolXMLLoadFailed, "duplicate field name %s", f.Name)
			return nil, fixerr.New(fixerr.ProtocolXMLLoadFailed, "duplicate field name %s", f.Name)
		}
		typesByNum.insert(f.Number, ft)
	}

	for _, c := range raw.Components {
		state.componentsByName[c.Name] = c
	}

	protocol := &ProtocolDescr{
		Version:          version,
		fieldTypesByName: state.fieldTypesByName,
		typesByNum:       typesByNum,
		messagesByType:   newNameIndex[*MessageDescr](),
	}

	header, err := state.loadFields(raw.Header.Fields, raw.Header.Groups, raw.Header.Components)
	if err != nil {
		report(reporter, fixerr.UnknownField, "%v", err)
		return nil, err
	}
	protocol.Header = header
	protocol.headerIndex = buildFieldIndex(header)

	trailer, err := state.loadFields(raw.Trailer.Fields, raw.Trailer.Groups, raw.Trailer.Components)
	if err != nil {
		report(reporter, fixerr.UnknownField, "%v", err)
		return nil, err
	}
	protocol.Trailer = trailer
	protocol.trailerIndex = buildFieldIndex(trailer)

	for _, m := range raw.Messages {
		fields, err := state.loadFields(m.Fields, m.Groups, m.Components)
		if err != nil {
			report(reporter, fixerr.UnknownField, "message %s: %v", m.Name, err)
			return nil, err
		}

		md := &MessageDescr{
			Name:       m.Name,
			MsgType:    m.MsgType,
			Fields:     fields,
			fieldIndex: buildFieldIndex(fields),
		}

		if !protocol.messagesByType.insert(m.MsgType, md) {
			report(reporter, fixerr.ProtocolXMLLoadFailed, "duplicate msgtype %s", m.MsgType)
			return nil, fixerr.New(fixerr.ProtocolXMLLoadFailed, "duplicate msgtype %s", m.MsgType)
		}
	}

	return protocol, nil
}

// loadFields is the load_fields algorithm from the component-expansion
// design: field references resolve directly, component references are
// located and recursively flattened into the same list in source order,
// and group references become a FieldDescr whose Subfields are this
// group's own recursively loaded children.
func (s *loadState) loadFields(fields []rawFieldRef, groups []rawGroup, components []rawComponentRef) ([]*FieldDescr, error) {
	var out []*FieldDescr

	for _, fref := range fields {
		ft, ok := s.fieldTypesByName.lookup(fref.Name)
		if !ok {
			return nil, fixerr.New(fixerr.UnknownField, "unknown field %q", fref.Name)
		}
		out = append(out, &FieldDescr{Type: ft, Flags: requiredFlag(fref.Required)})
	}

	for _, cref := range components {
		comp, ok := s.componentsByName[cref.Name]
		if !ok {
			return nil, fixerr.New(fixerr.UnknownField, "unknown component %q", cref.Name)
		}
		expanded, err := s.loadFields(comp.Fields, comp.Groups, comp.Components)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}

	for _, g := range groups {
		fd, err := s.loadGroup(g)
		if err != nil {
			return nil, err
		}
		out = append(out, fd)
	}

	return out, nil
}

func (s *loadState) loadGroup(g rawGroup) (*FieldDescr, error) {
	ft, ok := s.fieldTypesByName.lookup(g.Name)
	if !ok {
		return nil, fixerr.New(fixerr.UnknownField, "unknown group field %q", g.Name)
	}

	subfields, err := s.loadFields(g.Fields, g.Groups, g.Components)
	if err != nil {
		return nil, err
	}

	return &FieldDescr{
		Type:          ft,
		Flags:         requiredFlag(g.Required),
		Subfields:     subfields,
		subfieldIndex: buildFieldIndex(subfields),
	}, nil
}

func requiredFlag(required string) FieldFlag {
	if required == "Y" {
		return Required
	}
	return 0
}

func buildFieldIndex(fields []*FieldDescr) *numIndex[*FieldDescr] {
	idx := newNumIndex[*FieldDescr]()
	for _, fd := range fields {
		// A field referenced twice within one body (legal for some 5.0
		// component patterns) keeps its first occurrence's descriptor;
		// lookup is purely about resolving a tag to its governing
		// FieldDescr, not about counting references.
		idx.insert(fd.Type.Num, fd)
	}
	return idx
}

func report(reporter fixerr.Reporter, kind fixerr.ErrorKind, format string, args ...any) {
	if reporter == nil {
		return
	}
	reporter.Report(kind, format, args...)
}
