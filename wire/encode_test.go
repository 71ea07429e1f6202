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
package wire

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/relayfix/fixmsg/dictionary"
	"github.com/relayfix/fixmsg/fixerr"
	"github.com/relayfix/fixmsg/message"
)

func loadTestProtocol(t *testing.T) *dictionary.ProtocolDescr {
	t.Helper()
	data, err := os.ReadFile("../testdata/mini.xml")
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	protocol, err := dictionary.Load(data, nil)
	if err != nil {
		t.Fatalf("load testdata: %v", err)
	}
	return protocol
}

func TestEncodeNewOrderSingle(t *testing.T) {
	protocol := loadTestProtocol(t)

	msg, err := message.Create(protocol, "D", message.Validate)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, tc := range []struct {
		tag int
		val string
	}{
		{49, "SENDER"}, {56, "TARGET"}, {11, "ORD1"}, {55, "MSFT"},
	} {
		if err := msg.SetString(nil, tc.tag, tc.val); err != nil {
			t.Fatalf("SetString(%d): %v", tc.tag, err)
		}
	}
	if err := msg.SetInt32(nil, 34, 1); err != nil {
		t.Fatalf("SetInt32(34): %v", err)
	}
	if err := msg.SetChar(nil, 54, '1'); err != nil {
		t.Fatalf("SetChar(54): %v", err)
	}
	if err := msg.SetDouble(nil, 38, 100, 0); err != nil {
		t.Fatalf("SetDouble(38): %v", err)
	}
	if err := msg.SetChar(nil, 40, '2'); err != nil {
		t.Fatalf("SetChar(40): %v", err)
	}
	if err := msg.SetDouble(nil, 44, 42.50, 2); err != nil {
		t.Fatalf("SetDouble(44): %v", err)
	}
	// BeginString must be present before encoding; Create installs only MsgType.
	if err := msg.SetString(nil, 8, protocol.Version.BeginString()); err != nil {
		t.Fatalf("SetString(8): %v", err)
	}

	dst := make([]byte, 256)
	n, required, err := Encode(msg, '|', dst)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	out := string(dst[:n])
	if !strings.HasPrefix(out, "8=FIX.4.4|9=") {
		t.Fatalf("expected BeginString/BodyLength prefix, got %q", out)
	}
	if !strings.Contains(out, "|35=D|") {
		t.Fatalf("expected MsgType D, got %q", out)
	}
	if !strings.HasSuffix(out, "|") {
		t.Fatalf("expected trailing delimiter, got %q", out)
	}
	if required != n {
		t.Fatalf("required = %d, want %d", required, n)
	}

	checkBodyLength(t, out)
	checkChecksumField(t, out)
}

func checkBodyLength(t *testing.T, out string) {
	t.Helper()
	fields := Split(out, '|')
	var bodyLen int
	var sawBodyLength bool
	for _, fv := range fields {
		if fv.Tag == 9 {
			n, err := strconv.Atoi(fv.Value)
			if err != nil {
				t.Fatalf("BodyLength not numeric: %q", fv.Value)
			}
			bodyLen = n
			sawBodyLength = true
			break
		}
	}
	if !sawBodyLength {
		t.Fatal("no BodyLength field found")
	}

	afterBodyLength := out[strings.Index(out, "|9="+strconv.Itoa(bodyLen)+"|")+len("|9="+strconv.Itoa(bodyLen)+"|"):]
	checksumIdx := strings.Index(afterBodyLength, "10=")
	if checksumIdx == -1 {
		t.Fatal("no CheckSum field found")
	}
	if got := len(afterBodyLength[:checksumIdx]); got != bodyLen {
		t.Errorf("BodyLength = %d, actual span = %d", bodyLen, got)
	}
}

func checkChecksumField(t *testing.T, out string) {
	t.Helper()
	idx := strings.LastIndex(out, "10=")
	if idx == -1 {
		t.Fatal("no CheckSum field found")
	}
	want := Checksum([]byte(out[:idx]))
	got := out[idx+3 : idx+6]
	if wantText := checksumText(want); got != wantText {
		t.Errorf("CheckSum = %s, want %s", got, wantText)
	}
}

func TestEncodeNoMoreSpace(t *testing.T) {
	protocol := loadTestProtocol(t)
	msg, err := message.Create(protocol, "A", message.Validate)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := msg.SetString(nil, 8, protocol.Version.BeginString()); err != nil {
		t.Fatalf("SetString(8): %v", err)
	}
	if err := msg.SetInt32(nil, 98, 0); err != nil {
		t.Fatalf("SetInt32(98): %v", err)
	}
	if err := msg.SetInt32(nil, 108, 30); err != nil {
		t.Fatalf("SetInt32(108): %v", err)
	}

	dst := make([]byte, 5)
	n, required, err := Encode(msg, '|', dst)
	if err == nil {
		t.Fatal("expected NoMoreSpace error")
	}
	var fe *fixerr.Error
	if !errors.As(err, &fe) || fe.Kind != fixerr.NoMoreSpace {
		t.Fatalf("expected NoMoreSpace, got %v", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
	if required <= len(dst) {
		t.Errorf("required = %d, want > %d", required, len(dst))
	}
}

func TestEncodeGroupFlattening(t *testing.T) {
	protocol := loadTestProtocol(t)
	msg, err := message.Create(protocol, "V", message.Validate)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := msg.SetString(nil, 8, protocol.Version.BeginString()); err != nil {
		t.Fatalf("SetString(8): %v", err)
	}
	if err := msg.SetString(nil, 262, "REQ1"); err != nil {
		t.Fatalf("SetString(262): %v", err)
	}
	if err := msg.SetChar(nil, 263, '1'); err != nil {
		t.Fatalf("SetChar(263): %v", err)
	}
	if err := msg.SetInt32(nil, 264, 0); err != nil {
		t.Fatalf("SetInt32(264): %v", err)
	}

	g0, err := msg.AddGroup(nil, 267)
	if err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	if err := msg.SetChar(g0, 269, '0'); err != nil {
		t.Fatalf("SetChar in group[0]: %v", err)
	}
	g1, err := msg.AddGroup(nil, 267)
	if err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	if err := msg.SetChar(g1, 269, '1'); err != nil {
		t.Fatalf("SetChar in group[1]: %v", err)
	}

	dst := make([]byte, 512)
	n, _, err := Encode(msg, '|', dst)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if got := string(dst[:n]); !strings.Contains(got, "267=2|269=0|269=1|") {
		t.Errorf("expected flattened group fields, got %q", got)
	}
}
