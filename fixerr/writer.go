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
package fixerr

import (
	"fmt"
	"io"
)

// WriterReporter writes one formatted line per report to an io.Writer, in
// the same spirit as the errOut io.Writer threaded through the dump tool's
// streaming helpers.
type WriterReporter struct {
	W io.Writer
}

// Report implements Reporter.
func (r WriterReporter) Report(kind ErrorKind, format string, args ...any) {
	if r.W == nil {
		return
	}
	fmt.Fprintf(r.W, "%s: %s\n", kind, fmt.Sprintf(format, args...))
}
