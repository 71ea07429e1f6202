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

// bucketCount is a small prime; tables are not dynamically resized, per the
// design note — a FIX message body rarely carries more than a few dozen
// distinct tags, so chain lengths stay short without re-hashing.
const bucketCount = 61

type slot struct {
	tag    int
	value  Value
	next   int // index into entries, -1 terminates the chain
	inUse bool
}

// Table is the flat tag→value store backing both a Message's root and
// every repeating-group occurrence. The zero value is not usable; use New.
type Table struct {
	buckets [bucketCount]int
	entries []slot
	free    []int // indices of deleted slots, recycled on the next Set
	order   []int // tags in first-set order
}

// New returns an empty Table ready for use.
func New() *Table {
	t := &Table{}
	for i := range t.buckets {
		t.buckets[i] = -1
	}
	return t
}

func bucketFor(tag int) int {
	b := tag % bucketCount
	if b < 0 {
		b += bucketCount
	}
	return b
}

func (t *Table) find(tag int) int {
	for i := t.buckets[bucketFor(tag)]; i != -1; i = t.entries[i].next {
		if t.entries[i].inUse && t.entries[i].tag == tag {
			return i
		}
	}
	return -1
}

// Set stores value at tag. If tag was already present its value is
// replaced in place and insertion order is untouched; otherwise tag is
// appended to the insertion order.
func (t *Table) Set(tag int, value Value) {
	if i := t.find(tag); i != -1 {
		t.entries[i].value = value
		return
	}

	b := bucketFor(tag)

	var i int
	if n := len(t.free); n > 0 {
		i = t.free[n-1]
		t.free = t.free[:n-1]
		t.entries[i] = slot{tag: tag, value: value, next: t.buckets[b], inUse: true}
	} else {
		i = len(t.entries)
		t.entries = append(t.entries, slot{tag: tag, value: value, next: t.buckets[b], inUse: true})
	}
	t.buckets[b] = i
	t.order = append(t.order, tag)
}

// Get returns the value stored at tag, if any.
func (t *Table) Get(tag int) (Value, bool) {
	if i := t.find(tag); i != -1 {
		return t.entries[i].value, true
	}
	return Value{}, false
}

// Has reports whether tag is present.
func (t *Table) Has(tag int) bool {
	return t.find(tag) != -1
}

// Del removes tag, returning whether it was present. A second call with the
// same tag returns false (P4, delete idempotence).
func (t *Table) Del(tag int) bool {
	b := bucketFor(tag)

	prev := -1
	for i := t.buckets[b]; i != -1; i = t.entries[i].next {
		if t.entries[i].inUse && t.entries[i].tag == tag {
			if prev == -1 {
				t.buckets[b] = t.entries[i].next
			} else {
				t.entries[prev].next = t.entries[i].next
			}
			t.entries[i] = slot{next: -1}
			t.free = append(t.free, i)
			t.removeFromOrder(tag)
			return true
		}
		prev = i
	}
	return false
}

func (t *Table) removeFromOrder(tag int) {
	for i, v := range t.order {
		if v == tag {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

// Order returns the tags in the order they were first set. The returned
// slice must not be mutated by the caller.
func (t *Table) Order() []int {
	return t.order
}

// Len returns the number of distinct tags currently stored.
func (t *Table) Len() int {
	return len(t.order)
}

// AddGroupOccurrence requires the entry at tag to be (or become) a
// KindGroup value, appends a fresh empty child Table to its occurrence
// sequence, and returns it. The group's occurrence count is always
// len(Groups); no separate NumInGroup scalar is stored (message.Message
// keeps none, and the wire encoder renders len(Groups) as the count).
func (t *Table) AddGroupOccurrence(tag int) (*Table, error) {
	i := t.find(tag)
	if i == -1 {
		t.Set(tag, groupValue())
		i = t.find(tag)
	}
	if t.entries[i].value.Kind != KindGroup {
		return nil, errNotGroup
	}

	child := New()
	t.entries[i].value.Groups = append(t.entries[i].value.Groups, child)
	return child, nil
}

// GetGroupOccurrence returns the zero-based occurrence at tag, if present.
func (t *Table) GetGroupOccurrence(tag int, index int) (*Table, bool) {
	i := t.find(tag)
	if i == -1 || t.entries[i].value.Kind != KindGroup {
		return nil, false
	}
	occ := t.entries[i].value.Groups
	if index < 0 || index >= len(occ) {
		return nil, false
	}
	return occ[index], true
}

// GroupOccurrenceCount returns the number of occurrences stored at tag.
func (t *Table) GroupOccurrenceCount(tag int) int {
	i := t.find(tag)
	if i == -1 || t.entries[i].value.Kind != KindGroup {
		return 0
	}
	return len(t.entries[i].value.Groups)
}

// DelGroupOccurrence removes the zero-based occurrence at tag, returning
// whether it existed. Deleting the last occurrence removes tag entirely.
func (t *Table) DelGroupOccurrence(tag int, index int) bool {
	i := t.find(tag)
	if i == -1 || t.entries[i].value.Kind != KindGroup {
		return false
	}
	occ := t.entries[i].value.Groups
	if index < 0 || index >= len(occ) {
		return false
	}

	occ = append(occ[:index], occ[index+1:]...)
	if len(occ) == 0 {
		t.Del(tag)
		return true
	}
	t.entries[i].value.Groups = occ
	return true
}
