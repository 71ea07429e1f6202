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

// Package wire renders a message.Message to FIX tag-value wire bytes and
// offers a minimal flat splitter, wire.Split, for tools that need to
// inspect a wire-form message without reconstructing a full Message.
package wire

import (
	"strconv"

	"github.com/relayfix/fixmsg/fixerr"
	"github.com/relayfix/fixmsg/message"
	"github.com/relayfix/fixmsg/tagtable"
)

const (
	tagBeginString = 8
	tagBodyLength  = 9
	tagMsgType     = 35
	tagCheckSum    = 10
)

// Encode renders msg into dst using delim as the field separator, returning
// the number of bytes written. Output order is fixed by FIX regardless of
// insertion order: BeginString, BodyLength, MsgType, then every remaining
// header/body/trailer tag in the message's own insertion order (repeating
// groups flattened — NumInGroup followed by each occurrence's fields, in
// that occurrence's insertion order), then CheckSum.
//
// If dst is too small, Encode returns fixerr.NoMoreSpace and the exact byte
// length required via the second return value; dst is left untouched.
func Encode(msg *message.Message, delim byte, dst []byte) (n int, required int, err error) {
	beginString, ok := msg.Root.Get(tagBeginString)
	if !ok {
		return 0, 0, fixerr.New(fixerr.InvalidArgument, "tag %d (BeginString) not set", tagBeginString)
	}
	msgType, ok := msg.Root.Get(tagMsgType)
	if !ok {
		return 0, 0, fixerr.New(fixerr.InvalidArgument, "tag %d (MsgType) not set", tagMsgType)
	}

	var body []byte
	for _, tag := range msg.Root.Order() {
		switch tag {
		case tagBeginString, tagBodyLength, tagMsgType, tagCheckSum:
			continue
		}
		v, _ := msg.Root.Get(tag)
		body = appendField(body, tag, v, delim)
	}

	head := appendField(nil, tagBeginString, beginString, delim)
	head = appendField(head, tagBodyLength, tagtable.LongValue(int64(len(body)+lenField(tagMsgType, msgType, delim))), delim)
	head = appendField(head, tagMsgType, msgType, delim)

	payload := append(head, body...)

	sum := Checksum(payload)
	tail := appendField(nil, tagCheckSum, tagtable.StringValue([]byte(checksumText(sum))), delim)

	total := len(payload) + len(tail)
	if total > len(dst) {
		return 0, total, fixerr.New(fixerr.NoMoreSpace, "need %d bytes, have %d", total, len(dst))
	}

	n = copy(dst, payload)
	n += copy(dst[n:], tail)
	return n, total, nil
}

func checksumText(sum byte) string {
	s := strconv.Itoa(int(sum))
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

// appendField renders one tag=value<delim> field, recursing into a
// KindGroup value's occurrences, flattened with no extra separation beyond
// each member field's own trailing delimiter.
func appendField(dst []byte, tag int, v tagtable.Value, delim byte) []byte {
	dst = strconv.AppendInt(dst, int64(tag), 10)
	dst = append(dst, '=')

	if v.Kind == tagtable.KindGroup {
		dst = strconv.AppendInt(dst, int64(len(v.Groups)), 10)
		dst = append(dst, delim)
		for _, occ := range v.Groups {
			for _, t := range occ.Order() {
				ov, _ := occ.Get(t)
				dst = appendField(dst, t, ov, delim)
			}
		}
		return dst
	}

	dst = append(dst, renderScalar(v)...)
	dst = append(dst, delim)
	return dst
}

func lenField(tag int, v tagtable.Value, delim byte) int {
	return len(appendField(nil, tag, v, delim))
}

func renderScalar(v tagtable.Value) []byte {
	switch v.Kind {
	case tagtable.KindLong:
		return strconv.AppendInt(nil, v.Long, 10)
	case tagtable.KindULong:
		return strconv.AppendUint(nil, v.ULong, 10)
	case tagtable.KindChar:
		return []byte{v.Char}
	case tagtable.KindDouble:
		return v.Text
	case tagtable.KindString, tagtable.KindData:
		return v.Bytes
	default:
		return nil
	}
}
