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

// Package tagtable implements the storage primitive shared by every
// Message and every repeating-group occurrence: a flat tag→value map with
// insertion-order tracking (so the encoder reproduces the caller's field
// order) and a bucket-chained index for O(1) average lookup by tag number.
package tagtable

// Kind discriminates the variant a Value currently holds.
type Kind int

const (
	KindLong Kind = iota
	KindULong
	KindChar
	KindDouble
	KindString
	KindData
	KindGroup
)

// Value is the tagged union a Table entry holds. Exactly one set of fields
// is meaningful per Kind:
//   - KindLong:   Long
//   - KindULong:  ULong
//   - KindChar:   Char
//   - KindDouble: Double (the numeric value) and Text (its exact rendering)
//   - KindString: Bytes
//   - KindData:   Bytes
//   - KindGroup:  Groups, one *Table per occurrence, in order
type Value struct {
	Kind   Kind
	Long   int64
	ULong  uint64
	Char   byte
	Double float64
	Text   []byte
	Bytes  []byte
	Groups []*Table
}

// LongValue constructs a KindLong Value.
func LongValue(v int64) Value { return Value{Kind: KindLong, Long: v} }

// ULongValue constructs a KindULong Value.
func ULongValue(v uint64) Value { return Value{Kind: KindULong, ULong: v} }

// CharValue constructs a KindChar Value.
func CharValue(v byte) Value { return Value{Kind: KindChar, Char: v} }

// DoubleValue constructs a KindDouble Value; text is the exact bytes to
// render on the wire, preserving the caller's precision.
func DoubleValue(v float64, text []byte) Value {
	return Value{Kind: KindDouble, Double: v, Text: text}
}

// StringValue constructs a KindString Value.
func StringValue(v []byte) Value { return Value{Kind: KindString, Bytes: v} }

// DataValue constructs a KindData Value.
func DataValue(v []byte) Value { return Value{Kind: KindData, Bytes: v} }

// groupValue constructs an empty KindGroup Value; occurrences are appended
// by Table.AddGroupOccurrence.
func groupValue() Value { return Value{Kind: KindGroup} }
