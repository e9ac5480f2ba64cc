// This file is part of Gopher6502.
//
// Gopher6502 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher6502 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher6502.  If not, see <https://www.gnu.org/licenses/>.

// Package memfile reads the line oriented hexadecimal files used to describe
// memory images and test plans.
//
// A file is a sequence of hexadecimal records separated by white space. Each
// record is given the address of the record before it plus one, starting at
// zero. The address can be set with a directive of the form @hex. For
// example:
//
//	@fffc
//	00 02      // reset vector
//	@0200
//	a9 42      /* LDA #$42 */
//
// The underscore character can be used anywhere in a record to make it easier
// to read. The record is split into fields according to a list of bit widths,
// counted from the least significant bit. For example, with the widths 8, 8,
// 16, 4 the record 1_0200_a9_03 has the fields 0x03, 0xa9, 0x0200 and 0x1.
package memfile

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/jetsetilly/gopher6502/curated"
)

// SyntaxError is returned when a file cannot be parsed.
const SyntaxError = "memfile: syntax error at line %d: %v"

// Sentinel errors wrapped by SyntaxError.
var (
	errEmptyDirective = errors.New("address directive has no value")
	errTooWide        = errors.New("record is wider than its fields")
	errBadWidths      = errors.New("field widths must be between 1 and 64 bits in total")
)

// Record is a single entry in the file.
type Record struct {
	Address uint64

	// the line number of the record, counting from one
	Line int

	// one entry for each field width given to NewReader()
	Fields []uint64

	// the text of any single line comment on the same line as the record
	Comment string
}

// Reader reads records from a file.
type Reader struct {
	scanner *bufio.Scanner
	widths  []int
	total   int

	line      int
	address   uint64
	inComment bool

	// records from the current line not yet returned
	queue []Record
}

// NewReader is the preferred method of initialisation for the Reader type.
// Each record is split into fields of the specified widths.
func NewReader(r io.Reader, widths ...int) (*Reader, error) {
	rdr := &Reader{
		scanner: bufio.NewScanner(r),
		widths:  widths,
	}

	for _, w := range widths {
		if w <= 0 {
			return nil, curated.Errorf(SyntaxError, 0, errBadWidths)
		}
		rdr.total += w
	}

	if rdr.total == 0 || rdr.total > 64 {
		return nil, curated.Errorf(SyntaxError, 0, errBadWidths)
	}

	return rdr, nil
}

// Next returns the next record in the file. Returns io.EOF when there are no
// more records.
func (rdr *Reader) Next() (Record, error) {
	for len(rdr.queue) == 0 {
		if !rdr.scanner.Scan() {
			if err := rdr.scanner.Err(); err != nil {
				return Record{}, err
			}
			return Record{}, io.EOF
		}

		rdr.line++
		if err := rdr.parseLine(rdr.scanner.Text()); err != nil {
			return Record{}, curated.Errorf(SyntaxError, rdr.line, err)
		}
	}

	rec := rdr.queue[0]
	rdr.queue = rdr.queue[1:]
	return rec, nil
}

// LineNumber returns the number of the most recently read line.
func (rdr *Reader) LineNumber() int {
	return rdr.line
}

// ReadAll returns every record in the file.
func ReadAll(r io.Reader, widths ...int) ([]Record, error) {
	rdr, err := NewReader(r, widths...)
	if err != nil {
		return nil, err
	}

	var recs []Record
	for {
		rec, err := rdr.Next()
		if errors.Is(err, io.EOF) {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
}

func (rdr *Reader) parseLine(line string) error {
	tokens, comment := rdr.tokenise(line)

	for _, tok := range tokens {
		if v, ok := strings.CutPrefix(tok, "@"); ok {
			if v == "" {
				return errEmptyDirective
			}
			a, err := parseHex(v)
			if err != nil {
				return err
			}
			rdr.address = a
			continue
		}

		v, err := parseHex(tok)
		if err != nil {
			return err
		}

		if rdr.total < 64 && v>>rdr.total != 0 {
			return errTooWide
		}

		rec := Record{
			Address: rdr.address,
			Line:    rdr.line,
			Fields:  make([]uint64, len(rdr.widths)),
			Comment: comment,
		}

		for i, w := range rdr.widths {
			if w == 64 {
				rec.Fields[i] = v
				break
			}
			rec.Fields[i] = v & (1<<w - 1)
			v >>= w
		}

		rdr.queue = append(rdr.queue, rec)
		rdr.address++
	}

	return nil
}

// tokenise splits the line into directives and records. comments are
// removed. the text of a single line comment is returned separately.
func (rdr *Reader) tokenise(line string) ([]string, string) {
	var tokens []string

	for len(line) > 0 {
		if rdr.inComment {
			end := strings.Index(line, "*/")
			if end == -1 {
				return tokens, ""
			}
			rdr.inComment = false
			line = line[end+2:]
			continue
		}

		switch {
		case unicode.IsSpace(rune(line[0])):
			line = line[1:]
		case strings.HasPrefix(line, "//"):
			return tokens, strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "/*"):
			rdr.inComment = true
			line = line[2:]
		default:
			n := strings.IndexFunc(line, func(r rune) bool {
				return unicode.IsSpace(r) || r == '/'
			})
			if n == -1 {
				n = len(line)
			} else if n == 0 {
				// a lone slash
				n = 1
			}
			tokens = append(tokens, line[:n])
			line = line[n:]
		}
	}

	return tokens, ""
}

// parseHex parses a hexadecimal number that may contain underscores. the
// first character must be a digit.
func parseHex(s string) (uint64, error) {
	if s == "" || s[0] == '_' {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 16, 64)
	if err != nil {
		var nerr *strconv.NumError
		if errors.As(err, &nerr) {
			return 0, nerr.Err
		}
		return 0, err
	}
	return v, nil
}
