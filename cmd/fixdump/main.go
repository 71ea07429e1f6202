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
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/relayfix/fixmsg/dictionary"
	"github.com/relayfix/fixmsg/fixerr"
	"github.com/relayfix/fixmsg/redact"
	"github.com/relayfix/fixmsg/validate"
	"github.com/relayfix/fixmsg/wire"
)

type options struct {
	dictPath string
	delim    string
	inPath   string
	validate bool
	redact   string
}

func parseFlags(args []string) options {
	fs := flag.NewFlagSet("fixdump", flag.ContinueOnError)
	dictPath := fs.String("dict", "", "path to a FIX dictionary XML file")
	delim := fs.String("delim", "\x01", "wire field delimiter (single byte, SOH by default)")
	in := fs.String("in", "-", "path to a wire message file, - or omitted for stdin")
	doValidate := fs.Bool("validate", false, "run the validator and print findings")
	doRedact := fs.String("redact", "", "comma-separated tag:name pairs whose values are replaced with stable aliases (e.g. 554:Password,925:NewPassword)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: fixdump -dict FIX44.xml [-delim '|'] [-in file] [-validate] [-redact 554:Password]")
		fs.PrintDefaults()
	}

	fs.Parse(args)

	return options{dictPath: *dictPath, delim: *delim, inPath: *in, validate: *doValidate, redact: *doRedact}
}

// parseRedactTags parses a "-redact" value of the form "554:Password,925:NewPassword"
// into the tag->name map redact.New expects. Malformed entries are skipped.
func parseRedactTags(spec string) map[int]string {
	tags := make(map[int]string)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		tag, name, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		num, err := strconv.Atoi(strings.TrimSpace(tag))
		if err != nil {
			continue
		}
		tags[num] = strings.TrimSpace(name)
	}
	return tags
}

var (
	colourReset = "\033[0m"
	colourLine  = "\033[38;5;244m"
	colourTag   = "\033[38;5;81m"
	colourName  = "\033[38;5;151m"
	colourValue = "\033[38;5;228m"
	colourEnum  = "\033[38;5;214m"
	colourError = "\033[31m"
	colourTitle = "\033[31m"
)

func disableColours() {
	colourReset, colourLine, colourTag, colourName, colourValue, colourEnum, colourError, colourTitle =
		"", "", "", "", "", "", "", ""
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	opts := parseFlags(args)
	if opts.dictPath == "" {
		fmt.Fprintln(errOut, colourError+"missing required -dict flag"+colourReset)
		return 1
	}

	protocol, err := dictionary.LoadFile(opts.dictPath, fixerr.Func(func(kind fixerr.ErrorKind, format string, a ...any) {
		fmt.Fprintf(errOut, "%s: %s\n", kind, fmt.Sprintf(format, a...))
	}))
	if err != nil {
		fmt.Fprintf(errOut, "%sfailed to load dictionary: %v%s\n", colourError, err, colourReset)
		return 1
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		disableColours()
	}

	delim := byte('\x01')
	if len(opts.delim) > 0 {
		delim = opts.delim[0]
	}

	in, closer, err := openInput(opts.inPath)
	if err != nil {
		fmt.Fprintf(errOut, "%scannot open %s: %v%s\n", colourError, opts.inPath, err, colourReset)
		return 1
	}
	if closer != nil {
		defer closer.Close()
	}

	var redactor *redact.Redactor
	if opts.redact != "" {
		redactor = redact.New(parseRedactTags(opts.redact), true)
	}

	termWidth := terminalWidth()
	dump(in, out, errOut, protocol, delim, opts.validate, redactor, termWidth)
	return 0
}

func openInput(path string) (io.Reader, io.Closer, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w
	}
	return 80
}

// fixMessagePattern matches one embedded FIX message starting at "8=FIX"
// and ending at its CheckSum field, built fresh per delimiter since -delim
// lets callers pick anything from SOH to a printable separator like '|'.
func fixMessagePattern(delim byte) *regexp.Regexp {
	d := regexp.QuoteMeta(string(delim))
	return regexp.MustCompile(`8=FIX[^` + d + `]*` + d + `(?:[^` + d + `]*` + d + `)*?10=\d{3}` + d)
}

func dump(in io.Reader, out, errOut io.Writer, protocol *dictionary.ProtocolDescr, delim byte, doValidate bool, redactor *redact.Redactor, termWidth int) {
	separator := colourTitle + strings.Repeat("=", termWidth) + colourReset + "\n"
	pattern := fixMessagePattern(delim)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		matches := pattern.FindAllString(line, -1)
		if len(matches) == 0 {
			fmt.Fprintln(out, colourLine+line+colourReset)
			continue
		}
		for _, msg := range matches {
			printMessage(msg, out, errOut, protocol, delim, doValidate, redactor, separator)
		}
	}
}

func printMessage(msg string, out, errOut io.Writer, protocol *dictionary.ProtocolDescr, delim byte, doValidate bool, redactor *redact.Redactor, separator string) {
	display := msg
	if redactor != nil {
		display = redactor.Line(msg, delim, errOut)
	}

	for _, fv := range wire.Split(display, delim) {
		name := strconv.Itoa(fv.Tag)
		if ft, ok := protocol.FieldTypeByNum(fv.Tag); ok {
			name = ft.Name
		}

		fmt.Fprintf(out, "    %s%4d%s (%s%s%s): %s%s%s",
			colourTag, fv.Tag, colourReset,
			colourName, name, colourReset,
			colourValue, fv.Value, colourReset,
		)

		if desc, ok := protocol.EnumDescription(fv.Tag, fv.Value); ok && desc != "" {
			fmt.Fprintf(out, " (%s%s%s)", colourEnum, desc, colourReset)
		}
		fmt.Fprintln(out)
	}

	if doValidate {
		// Validated against the original bytes: redaction rewrites field
		// values, which would make the CheckSum comparison meaningless.
		findings := validate.Check(protocol, msg, delim)
		if len(findings) > 0 {
			fmt.Fprint(out, separator)
			for _, f := range findings {
				fmt.Fprintf(out, "%s== %s%s\n", colourError, f, colourReset)
			}
		}
	}

	fmt.Fprint(out, separator)
}
