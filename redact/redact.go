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

// Package redact replaces the values of caller-designated sensitive tags
// with stable, deterministic aliases before a message reaches fixdump's
// output or any other shared log, so repeated runs against the same input
// produce the same aliases without ever printing the real value twice.
package redact

import (
	"fmt"
	"io"
	"maps"
	"strconv"
	"strings"
	"sync"
)

// Redactor rewrites the values of a fixed set of sensitive tags. It is safe
// for concurrent use.
type Redactor struct {
	enabled bool
	tags    map[int]string // tag -> display name

	mu       sync.Mutex
	aliasMap map[string]string // "tag=value" -> alias
	counter  map[int]int       // per-tag alias suffix
}

// New constructs a Redactor over tags (tag number -> display name used in
// the generated alias). If enabled is false, Line returns its input
// unchanged.
func New(tags map[int]string, enabled bool) *Redactor {
	cp := make(map[int]string, len(tags))
	maps.Copy(cp, tags)

	return &Redactor{
		enabled:  enabled,
		tags:     cp,
		aliasMap: make(map[string]string),
		counter:  make(map[int]int),
	}
}

// Line rewrites one delim-separated wire message, replacing the value of
// every sensitive tag with a stable alias. On first occurrence of any
// tag=value pair it reports the mapping to log, if non-nil.
func (r *Redactor) Line(line string, delim byte, log io.Writer) string {
	if !r.enabled {
		return line
	}

	sep := string(delim)
	fields := strings.Split(line, sep)

	for i, f := range fields {
		tagStr, val, ok := splitOnce(f)
		if !ok {
			continue
		}

		tagNum, err := strconv.Atoi(tagStr)
		if err != nil {
			continue
		}

		name, sensitive := r.tags[tagNum]
		if !sensitive {
			continue
		}

		fields[i] = tagStr + "=" + r.alias(tagNum, tagStr, val, name, log)
	}

	return strings.Join(fields, sep)
}

func (r *Redactor) alias(tagNum int, tagStr, val, name string, log io.Writer) string {
	key := tagStr + "=" + val

	r.mu.Lock()
	defer r.mu.Unlock()

	alias, exists := r.aliasMap[key]
	if exists {
		return alias
	}

	r.counter[tagNum]++
	alias = fmt.Sprintf("%s%04d", name, r.counter[tagNum])
	r.aliasMap[key] = alias

	if log != nil {
		fmt.Fprintf(log, "first use: tag %d (%s) value [%s] -> [%s]\n", tagNum, name, val, alias)
	}

	return alias
}

func splitOnce(s string) (left, right string, ok bool) {
	idx := strings.IndexByte(s, '=')
	if idx < 0 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}
