// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package procedural

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// ErrIDSFormat indicates a malformed ideographic description table.
var ErrIDSFormat = errors.New("malformed ideographic description table")

//go:embed data/ids.txt
var defaultIDS string

// DefaultIDS returns the embedded table of common characters.
var DefaultIDS = sync.OnceValue(func() *IDS {
	ids, err := ParseIDS(strings.NewReader(defaultIDS))
	if err != nil {
		panic(err)
	}
	return ids
})

// IDS maps characters to ideographic description sequences, which describe
// a character as a layout of its components. For example 好 is ⿰女子: 女
// beside 子.
type IDS struct {
	seqs map[rune]string
}

// ParseIDS reads a table in the CHISE / cjkvi-ids format: one character per
// line as "U+XXXX<TAB>character<TAB>sequence...". Only the first sequence of
// a line is used and its source annotations ("[GTJ]", "(G)", "^" and "$")
// are removed. Lines starting with '#' or ';' are comments. Characters whose
// sequence is the character itself have no components and are omitted.
func ParseIDS(r io.Reader) (*IDS, error) {
	ids := &IDS{seqs: map[rune]string{}}

	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" || text[0] == '#' || text[0] == ';' {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: line %d: want at least 3 fields, got %d", ErrIDSFormat, line, len(fields))
		}
		hex, ok := strings.CutPrefix(fields[0], "U+")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: invalid code point %q", ErrIDSFormat, line, fields[0])
		}
		cp, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(cp)) {
			return nil, fmt.Errorf("%w: line %d: invalid code point %q", ErrIDSFormat, line, fields[0])
		}
		r := rune(cp)
		if fields[1] != string(r) {
			return nil, fmt.Errorf("%w: line %d: character %q is not %s", ErrIDSFormat, line, fields[1], fields[0])
		}

		seq := cleanSequence(fields[2])
		if seq == "" {
			return nil, fmt.Errorf("%w: line %d: empty sequence", ErrIDSFormat, line)
		}
		if seq == string(r) {
			continue
		}
		if _, ok := ids.seqs[r]; !ok {
			ids.seqs[r] = seq
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading ideographic descriptions: %w", err)
	}
	return ids, nil
}

// LoadIDS reads the table at path.
func LoadIDS(path string) (*IDS, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	ids, err := ParseIDS(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return ids, nil
}

// cleanSequence removes source annotations from a sequence.
func cleanSequence(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "^")
	if i := strings.IndexAny(s, "$[("); i >= 0 {
		s = s[:i]
	}
	return s
}

// Lookup returns the description sequence of r.
func (ids *IDS) Lookup(r rune) (string, bool) {
	seq, ok := ids.seqs[r]
	return seq, ok
}

// Len returns the number of characters with components.
func (ids *IDS) Len() int {
	return len(ids.seqs)
}

// isDescriptionChar reports whether r is an ideographic description
// character such as ⿰.
func isDescriptionChar(r rune) bool {
	return (r >= 0x2FF0 && r <= 0x2FFF) || r == 0x31EF
}

// Components returns the components named in seq, in order. Entity
// references such as "&CDP-8B7C;" and "{1}" are single components.
func Components(seq string) []string {
	var comps []string
	for i := 0; i < len(seq); {
		r, size := utf8.DecodeRuneInString(seq[i:])
		switch {
		case isDescriptionChar(r):
			i += size
			continue
		case r == '&' || r == '{':
			end := byte(';')
			if r == '{' {
				end = '}'
			}
			if j := strings.IndexByte(seq[i:], end); j > 0 {
				comps = append(comps, seq[i:i+j+1])
				i += j + 1
				continue
			}
		}
		comps = append(comps, seq[i:i+size])
		i += size
	}
	return comps
}
