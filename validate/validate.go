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

// Package validate checks a wire-form FIX message against a
// dictionary.ProtocolDescr without ever constructing a message.Message: it
// consumes wire.Split's flat field list directly, the same inspection path
// fixdump uses for its -validate flag.
package validate

import (
	"fmt"
	"strconv"
	"time"

	"github.com/relayfix/fixmsg/dictionary"
	"github.com/relayfix/fixmsg/wire"
)

const (
	tagMsgType  = 35
	tagCheckSum = 10
)

// Check runs the unknown-MsgType, required-field, value-format, field-order
// and checksum checks against one wire message, and returns one
// human-readable finding per problem. Values are not checked against a
// field's declared enum values. A nil slice means the message is clean.
func Check(protocol *dictionary.ProtocolDescr, msg string, delim byte) []string {
	fields := wire.Split(msg, delim)
	fieldMap, seenTags := buildFieldMap(fields)

	var findings []string

	descr, typeFindings := checkMsgType(fieldMap, protocol)
	findings = append(findings, typeFindings...)
	if descr == nil {
		return findings
	}

	expectedOrder := fieldOrder(protocol, descr)

	findings = append(findings, checkRequired(protocol, descr, seenTags)...)
	findings = append(findings, checkTypes(fields, protocol, descr)...)
	findings = append(findings, checkOrder(fields, expectedOrder)...)
	findings = append(findings, checkChecksum(msg, fieldMap, delim)...)

	return findings
}

func buildFieldMap(fields []wire.FieldValue) (map[int]string, map[int]bool) {
	fieldMap := make(map[int]string, len(fields))
	seenTags := make(map[int]bool, len(fields))
	for _, fv := range fields {
		fieldMap[fv.Tag] = fv.Value
		seenTags[fv.Tag] = true
	}
	return fieldMap, seenTags
}

func checkMsgType(fieldMap map[int]string, protocol *dictionary.ProtocolDescr) (*dictionary.MessageDescr, []string) {
	msgType, ok := fieldMap[tagMsgType]
	if !ok {
		return nil, []string{fmt.Sprintf("missing required tag %d (MsgType)", tagMsgType)}
	}
	descr, ok := protocol.LookupMessage(msgType)
	if !ok {
		return nil, []string{fmt.Sprintf("unknown MsgType %q", msgType)}
	}
	return descr, nil
}

// fieldOrder lists the root-level tags in the order a well-formed message
// of this type should present them: header, then body, then trailer.
func fieldOrder(protocol *dictionary.ProtocolDescr, descr *dictionary.MessageDescr) []int {
	order := make([]int, 0, len(protocol.Header)+len(descr.Fields)+len(protocol.Trailer))
	for _, fd := range protocol.Header {
		order = append(order, fd.Type.Num)
	}
	for _, fd := range descr.Fields {
		order = append(order, fd.Type.Num)
	}
	for _, fd := range protocol.Trailer {
		order = append(order, fd.Type.Num)
	}
	return order
}

func checkRequired(protocol *dictionary.ProtocolDescr, descr *dictionary.MessageDescr, seenTags map[int]bool) []string {
	var findings []string
	all := make([]*dictionary.FieldDescr, 0, len(protocol.Header)+len(descr.Fields)+len(protocol.Trailer))
	all = append(all, protocol.Header...)
	all = append(all, descr.Fields...)
	all = append(all, protocol.Trailer...)

	for _, fd := range all {
		if fd.IsRequired() && !seenTags[fd.Type.Num] {
			findings = append(findings, fmt.Sprintf("missing required tag %d (%s)", fd.Type.Num, fd.Type.Name))
		}
	}
	return findings
}

func checkTypes(fields []wire.FieldValue, protocol *dictionary.ProtocolDescr, descr *dictionary.MessageDescr) []string {
	var findings []string
	for _, fv := range fields {
		fd, ok := lookupField(protocol, descr, fv.Tag)
		if !ok {
			continue
		}
		if !matchesFormat(fd.Type.Kind, fv.Value) {
			findings = append(findings, fmt.Sprintf("invalid value for tag %d (%s): %q is not a valid %s",
				fv.Tag, fd.Type.Name, fv.Value, fd.Type.Kind))
		}
	}
	return findings
}

func lookupField(protocol *dictionary.ProtocolDescr, descr *dictionary.MessageDescr, tag int) (*dictionary.FieldDescr, bool) {
	if fd, ok := descr.Field(tag); ok {
		return fd, true
	}
	if fd, ok := protocol.HeaderField(tag); ok {
		return fd, true
	}
	if fd, ok := protocol.TrailerField(tag); ok {
		return fd, true
	}
	return nil, false
}

func checkOrder(fields []wire.FieldValue, expectedOrder []int) []string {
	orderIndex := make(map[int]int, len(expectedOrder))
	for i, tag := range expectedOrder {
		orderIndex[tag] = i
	}

	var findings []string
	lastIdx := -1
	for _, fv := range fields {
		idx, ok := orderIndex[fv.Tag]
		if !ok {
			continue
		}
		if idx < lastIdx {
			findings = append(findings, fmt.Sprintf("tag %d out of order", fv.Tag))
		}
		lastIdx = idx
	}
	return findings
}

func checkChecksum(msg string, fieldMap map[int]string, delim byte) []string {
	got, ok := fieldMap[tagCheckSum]
	if !ok {
		return []string{fmt.Sprintf("missing required tag %d (CheckSum)", tagCheckSum)}
	}

	prefix := checksumPrefix(msg, delim)
	if prefix == "" {
		return []string{"checksum cannot be validated: no CheckSum field found"}
	}
	expected := fmt.Sprintf("%03d", wire.Checksum([]byte(prefix))%256)
	if got != expected {
		return []string{fmt.Sprintf("checksum mismatch: got %s, expected %s", got, expected)}
	}
	return nil
}

// checksumPrefix returns everything up to and including the delimiter that
// precedes the CheckSum field, the span the checksum is computed over.
func checksumPrefix(msg string, delim byte) string {
	marker := string(delim) + strconv.Itoa(tagCheckSum) + "="
	idx := indexOf(msg, marker)
	if idx == -1 {
		return ""
	}
	return msg[:idx+1]
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// matchesFormat reports whether val is well-formed wire text for kind,
// mirroring the per-type checks the source validator ran.
func matchesFormat(kind dictionary.FieldKind, val string) bool {
	switch kind {
	case dictionary.KindInt, dictionary.KindLength, dictionary.KindNumInGroup, dictionary.KindSeqNum:
		_, err := strconv.Atoi(val)
		return err == nil
	case dictionary.KindFloat, dictionary.KindPrice, dictionary.KindQty, dictionary.KindAmt, dictionary.KindPercentage:
		_, err := strconv.ParseFloat(val, 64)
		return err == nil
	case dictionary.KindBoolean:
		return val == "Y" || val == "N"
	case dictionary.KindChar:
		return len(val) == 1
	case dictionary.KindUTCTimestamp:
		return parsesAs(val, "20060102-15:04:05", "20060102-15:04:05.000")
	case dictionary.KindUTCDateOnly, dictionary.KindLocalMktDate:
		return parsesAs(val, "20060102")
	case dictionary.KindUTCTimeOnly:
		return parsesAs(val, "15:04", "15:04:05", "15:04:05.000")
	default:
		return true
	}
}

func parsesAs(val string, layouts ...string) bool {
	for _, layout := range layouts {
		if _, err := time.Parse(layout, val); err == nil {
			return true
		}
	}
	return false
}
