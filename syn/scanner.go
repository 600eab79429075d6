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

package syn

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrFormat indicates that synonym data does not match the expected entry
// encoding.
var ErrFormat = errors.New("malformed synonym index")

// maxWordSize is the maximum size of a synonym entry.
const maxWordSize = 64 * 1024

// Scanner scans synonym entries from a .syn file.
type Scanner struct {
	s *bufio.Scanner

	pos  int64
	word *Word
	err  error
}

// NewScanner returns a new Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	s := &Scanner{
		s: bufio.NewScanner(r),
	}
	s.s.Buffer(make([]byte, 0, 4096), maxWordSize)
	s.s.Split(s.splitIndex)
	return s
}

// Scan advances to the next entry.
func (s *Scanner) Scan() bool {
	if s.err != nil || !s.s.Scan() {
		return false
	}

	b := s.s.Bytes()
	i := bytes.IndexByte(b, 0)
	w := &Word{
		Word:              string(b[:i]),
		OriginalWordIndex: binary.BigEndian.Uint32(b[i+1:]),
	}
	switch {
	case i == 0:
		s.err = fmt.Errorf("%w: empty synonym at byte %d", ErrFormat, s.pos)
	case !utf8.ValidString(w.Word):
		s.err = fmt.Errorf("%w: synonym at byte %d is not valid utf-8", ErrFormat, s.pos)
	}
	if s.err != nil {
		return false
	}

	s.pos += int64(len(b))
	s.word = w
	return true
}

// Err returns the first error encountered by the Scanner.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	err := s.s.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		return fmt.Errorf("%w: synonym at byte %d exceeds %d bytes", ErrFormat, s.pos, maxWordSize)
	}
	//nolint:wrapcheck // errors from the split func are already wrapped.
	return err
}

// Word returns the most recently scanned entry.
func (s *Scanner) Word() *Word {
	return s.word
}

func (s *Scanner) splitIndex(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		// The zero byte is followed by the 32 bit original_word_index.
		tokenSize := i + 5
		if len(data) >= tokenSize {
			return tokenSize, data[:tokenSize], nil
		}
	}

	if atEOF {
		return 0, nil, fmt.Errorf("%w: truncated entry at byte %d", ErrFormat, s.pos)
	}

	// Request more data.
	return 0, nil, nil
}
