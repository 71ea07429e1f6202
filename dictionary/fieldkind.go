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

import "strings"

// FieldKind enumerates the FIX primitive types a FieldType can carry.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindLength
	KindNumInGroup
	KindSeqNum
	KindChar
	KindBoolean
	KindFloat
	KindPrice
	KindQty
	KindAmt
	KindPercentage
	KindMultipleValueString
	KindCountry
	KindCurrency
	KindExchange
	KindMonthYear
	KindUTCTimestamp
	KindUTCTimeOnly
	KindUTCDateOnly
	KindLocalMktDate
	KindData
)

// fieldKindByName maps the dictionary's "type" attribute spelling to a
// FieldKind. An unrecognised spelling (custom/vendor types) falls back to
// KindString, mirroring the teacher's IsValidType default: "assume valid
// for unknown/custom types".
var fieldKindByName = map[string]FieldKind{
	"STRING":              KindString,
	"INT":                 KindInt,
	"LENGTH":              KindLength,
	"NUMINGROUP":          KindNumInGroup,
	"SEQNUM":              KindSeqNum,
	"DAYOFMONTH":          KindInt,
	"CHAR":                KindChar,
	"BOOLEAN":             KindBoolean,
	"FLOAT":               KindFloat,
	"PRICE":               KindPrice,
	"PRICEOFFSET":         KindPrice,
	"QTY":                 KindQty,
	"AMT":                 KindAmt,
	"PERCENTAGE":          KindPercentage,
	"MULTIPLEVALUESTRING": KindMultipleValueString,
	"MULTIPLESTRINGVALUE": KindMultipleValueString,
	"COUNTRY":             KindCountry,
	"CURRENCY":            KindCurrency,
	"EXCHANGE":            KindExchange,
	"MONTHYEAR":           KindMonthYear,
	"UTCTIMESTAMP":        KindUTCTimestamp,
	"UTCTIMEONLY":         KindUTCTimeOnly,
	"UTCDATEONLY":         KindUTCDateOnly,
	"LOCALMKTDATE":        KindLocalMktDate,
	"DATA":                KindData,
}

func parseFieldKind(typeAttr string) FieldKind {
	if k, ok := fieldKindByName[strings.ToUpper(typeAttr)]; ok {
		return k
	}
	return KindString
}

// IsIntegral reports whether kind is accepted by the integer-family setters
// (set_int32/set_int64): Int, Length, NumInGroup and SeqNum.
func (k FieldKind) IsIntegral() bool {
	switch k {
	case KindInt, KindLength, KindNumInGroup, KindSeqNum:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether kind is accepted by the double setter: Float,
// Price, Qty, Amt and Percentage.
func (k FieldKind) IsNumeric() bool {
	switch k {
	case KindFloat, KindPrice, KindQty, KindAmt, KindPercentage:
		return true
	default:
		return false
	}
}

// IsCharLike reports whether kind is accepted by the char setter: Char and
// Boolean (a FIX Boolean is a single 'Y'/'N' char on the wire).
func (k FieldKind) IsCharLike() bool {
	return k == KindChar || k == KindBoolean
}

// IsTextual reports whether kind is accepted by the string setter — every
// textual kind except Data, which carries its own companion-length setter.
func (k FieldKind) IsTextual() bool {
	switch k {
	case KindString, KindMultipleValueString, KindCountry, KindCurrency, KindExchange,
		KindMonthYear, KindUTCTimestamp, KindUTCTimeOnly, KindUTCDateOnly, KindLocalMktDate:
		return true
	default:
		return false
	}
}

// IsData reports whether kind is the length-prefixed binary kind.
func (k FieldKind) IsData() bool {
	return k == KindData
}

func (k FieldKind) String() string {
	for name, kind := range fieldKindByName {
		if kind == k {
			return name
		}
	}
	return "UNKNOWN"
}
