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
	"errors"
	"os"
	"testing"

	"github.com/relayfix/fixmsg/fixerr"
)

func loadTestProtocol(t *testing.T) *ProtocolDescr {
	t.Helper()
	data, err := os.ReadFile("../testdata/mini.xml")
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	protocol, err := Load(data, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return protocol
}

func TestLoadResolvesVersion(t *testing.T) {
	protocol := loadTestProtocol(t)
	if protocol.Version != FIX44 {
		t.Errorf("Version = %v, want FIX44", protocol.Version)
	}
	if got := protocol.Version.BeginString(); got != "FIX.4.4" {
		t.Errorf("BeginString() = %q, want %q", got, "FIX.4.4")
	}
}

func TestLookupMessageByType(t *testing.T) {
	protocol := loadTestProtocol(t)
	descr, ok := protocol.LookupMessage("D")
	if !ok {
		t.Fatal("expected NewOrderSingle to resolve")
	}
	if descr.Name != "NewOrderSingle" {
		t.Errorf("Name = %q, want NewOrderSingle", descr.Name)
	}
}

func TestLookupMessageUnknown(t *testing.T) {
	protocol := loadTestProtocol(t)
	if _, ok := protocol.LookupMessage("ZZ"); ok {
		t.Error("expected unknown MsgType to miss")
	}
}

func TestGroupFieldIntroducesSubfields(t *testing.T) {
	protocol := loadTestProtocol(t)
	descr, ok := protocol.LookupMessage("V")
	if !ok {
		t.Fatal("expected MarketDataRequest to resolve")
	}

	fd, ok := descr.Field(267)
	if !ok {
		t.Fatal("expected tag 267 (NoMDEntryTypes) on MarketDataRequest")
	}
	if !fd.IsGroup() {
		t.Fatal("expected NoMDEntryTypes to introduce a repeating group")
	}

	sub, ok := fd.Subfield(269)
	if !ok || sub.Type.Name != "MDEntryType" {
		t.Fatalf("expected subfield 269 (MDEntryType), got %v, ok=%v", sub, ok)
	}
}

func TestHeaderAndTrailerFieldsShared(t *testing.T) {
	protocol := loadTestProtocol(t)
	if _, ok := protocol.HeaderField(49); !ok {
		t.Error("expected tag 49 (SenderCompID) in header fields")
	}
	if _, ok := protocol.TrailerField(10); !ok {
		t.Error("expected tag 10 (CheckSum) in trailer fields")
	}
}

func TestEnumDescription(t *testing.T) {
	protocol := loadTestProtocol(t)
	desc, ok := protocol.EnumDescription(54, "1")
	if !ok || desc != "BUY" {
		t.Errorf("EnumDescription(54, \"1\") = (%q, %v), want (\"BUY\", true)", desc, ok)
	}
	if _, ok := protocol.EnumDescription(54, "9"); ok {
		t.Error("expected no enum description for undeclared value")
	}
}

func TestComponentFieldsAreInlinedInOrder(t *testing.T) {
	protocol := loadTestProtocol(t)
	descr, ok := protocol.LookupMessage("D")
	if !ok {
		t.Fatal("expected NewOrderSingle to resolve")
	}

	// Source order: ClOrdID, then <component name="Instrument"> expands to
	// Symbol, SecurityID and the nested SecurityIDSourceGrp component's own
	// SecurityIDSource, before the message's own Side/OrderQty/OrdType/Price.
	wantTags := []int{11, 55, 48, 22, 54, 38, 40, 44}
	if got := len(descr.Fields); got != len(wantTags) {
		t.Fatalf("len(Fields) = %d, want %d (fields: %v)", got, len(wantTags), fieldTags(descr.Fields))
	}
	for i, tag := range wantTags {
		if got := descr.Fields[i].Type.Num; got != tag {
			t.Errorf("Fields[%d] tag = %d, want %d (full order: %v)", i, got, tag, fieldTags(descr.Fields))
		}
	}

	symbol, ok := descr.Field(55)
	if !ok || symbol.Type.Name != "Symbol" || !symbol.IsRequired() {
		t.Fatalf("expected required Symbol field from Instrument component, got %v, ok=%v", symbol, ok)
	}

	securityID, ok := descr.Field(48)
	if !ok || securityID.Type.Name != "SecurityID" || securityID.IsRequired() {
		t.Fatalf("expected optional SecurityID field from Instrument component, got %v, ok=%v", securityID, ok)
	}

	securityIDSource, ok := descr.Field(22)
	if !ok || securityIDSource.Type.Name != "SecurityIDSource" {
		t.Fatalf("expected SecurityIDSource inlined from the nested SecurityIDSourceGrp component, got %v, ok=%v", securityIDSource, ok)
	}
}

func fieldTags(fields []*FieldDescr) []int {
	tags := make([]int, len(fields))
	for i, fd := range fields {
		tags[i] = fd.Type.Num
	}
	return tags
}

func TestLoadUndefinedComponentFails(t *testing.T) {
	badXML := []byte(`<fix major="4" minor="4">
  <messages>
    <message name="Broken" msgtype="B" msgcat="app">
      <component name="Missing" required="Y"/>
    </message>
  </messages>
  <fields>
    <field number="35" name="MsgType" type="STRING"/>
  </fields>
</fix>`)

	protocol, err := Load(badXML, nil)
	if protocol != nil {
		t.Error("expected no ProtocolDescr on load failure")
	}
	var fe *fixerr.Error
	if !errors.As(err, &fe) || fe.Kind != fixerr.UnknownField {
		t.Fatalf("expected UnknownField, got %v", err)
	}
}
