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
package tagtable

import (
	"errors"
	"testing"

	"github.com/relayfix/fixmsg/fixerr"
)

func TestSetGet(t *testing.T) {
	tbl := New()
	tbl.Set(55, StringValue([]byte("MSFT")))

	v, ok := tbl.Get(55)
	if !ok {
		t.Fatal("expected tag 55 to be present")
	}
	if v.Kind != KindString || string(v.Bytes) != "MSFT" {
		t.Errorf("Get(55) = %+v, want KindString MSFT", v)
	}
}

func TestSetReplacesInPlaceWithoutReordering(t *testing.T) {
	tbl := New()
	tbl.Set(1, LongValue(1))
	tbl.Set(2, LongValue(2))
	tbl.Set(1, LongValue(100))

	if got := tbl.Order(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Order() = %v, want [1 2]", got)
	}
	v, _ := tbl.Get(1)
	if v.Long != 100 {
		t.Errorf("Get(1).Long = %d, want 100", v.Long)
	}
}

func TestDelIsIdempotent(t *testing.T) {
	tbl := New()
	tbl.Set(44, LongValue(42))

	if !tbl.Del(44) {
		t.Fatal("expected first Del to report true")
	}
	if tbl.Del(44) {
		t.Error("expected second Del to report false")
	}
	if tbl.Has(44) {
		t.Error("expected tag 44 to be gone")
	}
}

func TestOrderPreservesInsertionSequence(t *testing.T) {
	tbl := New()
	for _, tag := range []int{55, 11, 267, 44} {
		tbl.Set(tag, LongValue(int64(tag)))
	}
	want := []int{55, 11, 267, 44}
	got := tbl.Order()
	if len(got) != len(want) {
		t.Fatalf("Order() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Order()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestGroupOccurrences(t *testing.T) {
	tbl := New()

	occ0, err := tbl.AddGroupOccurrence(267)
	if err != nil {
		t.Fatalf("AddGroupOccurrence: %v", err)
	}
	occ0.Set(269, CharValue('0'))

	occ1, err := tbl.AddGroupOccurrence(267)
	if err != nil {
		t.Fatalf("AddGroupOccurrence: %v", err)
	}
	occ1.Set(269, CharValue('1'))

	if got := tbl.GroupOccurrenceCount(267); got != 2 {
		t.Fatalf("GroupOccurrenceCount() = %d, want 2", got)
	}

	occ, ok := tbl.GetGroupOccurrence(267, 1)
	if !ok {
		t.Fatal("expected occurrence 1 to exist")
	}
	v, _ := occ.Get(269)
	if v.Char != '1' {
		t.Errorf("occurrence[1].Get(269).Char = %c, want '1'", v.Char)
	}

	if !tbl.DelGroupOccurrence(267, 0) {
		t.Fatal("expected DelGroupOccurrence(0) to succeed")
	}
	if got := tbl.GroupOccurrenceCount(267); got != 1 {
		t.Errorf("GroupOccurrenceCount() after delete = %d, want 1", got)
	}
}

func TestAddGroupOccurrenceOnScalarTagFails(t *testing.T) {
	tbl := New()
	tbl.Set(55, StringValue([]byte("MSFT")))

	_, err := tbl.AddGroupOccurrence(55)
	var fe *fixerr.Error
	if !errors.As(err, &fe) || fe.Kind != fixerr.NotGroup {
		t.Fatalf("expected NotGroup, got %v", err)
	}
}

func TestLen(t *testing.T) {
	tbl := New()
	if tbl.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tbl.Len())
	}
	tbl.Set(1, LongValue(1))
	tbl.Set(2, LongValue(2))
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
}
