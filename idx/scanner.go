// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package idx

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var (
	// ErrInvalidIdxOffset indicates that the OffsetBits is an invalid value.
	ErrInvalidIdxOffset = errors.New("invalid idxoffsetbits")

	// ErrFormat indicates that index data does not match the expected entry
	// encoding or ordering.
	ErrFormat = errors.New("malformed index")
)

// maxWordSize bounds a single headword. StarDict limits headwords to 256
// bytes; anything near this size is a corrupt file rather than a word.
const maxWordSize = 64 * 1024

// Scanner scans an index from start to end.
type Scanner struct {
	r             io.Reader
	s             *bufio.Scanner
	idxoffsetbits int

	// pos is the byte position of the next entry.
	pos  int64
	word *Word
	err  error
}

// ScannerOptions are options for scanning an .idx file.
type ScannerOptions struct {
	// OffsetBits are the number of bits in the offset fields. Valid values for
	// OffsetBits are either 32 or 64.
	OffsetBits int
}

// DefaultScannerOptions is the default options for a Scanner.
var DefaultScannerOptions = &ScannerOptions{
	OffsetBits: 32,
}

// NewScanner return a new index scanner that scans the index from start to
// end. If r is an io.Closer the Scanner assumes ownership of it and it should
// be closed with the Close method.
func NewScanner(r io.Reader, options *ScannerOptions) (*Scanner, error) {
	if options == nil {
		options = DefaultScannerOptions
	}

	if options.OffsetBits != 32 && options.OffsetBits != 64 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdxOffset, options.OffsetBits)
	}
	s := &Scanner{
		r:             r,
		s:             bufio.NewScanner(r),
		idxoffsetbits: options.OffsetBits,
	}
	s.s.Buffer(make([]byte, 0, 4096), maxWordSize)
	s.s.Split(s.splitIndex)
	return s, nil
}

// NewScannerFromIfoPath returns a new Scanner over the index file belonging
// to the dictionary at ifoPath.
func NewScannerFromIfoPath(ifoPath string, options *ScannerOptions) (*Scanner, error) {
	r, err := OpenReader(ifoPath)
	if err != nil {
		return nil, err
	}
	return NewScanner(r, options)
}

// Scan advances the index to the next index entry. It returns false if the
// scan stops either by reaching the end of the index or an error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if !s.s.Scan() {
		return false
	}

	b := s.s.Bytes()
	i := bytes.IndexByte(b, 0)
	w := &Word{
		Word: string(b[:i]),
	}
	if s.idxoffsetbits == 64 {
		w.Offset = binary.BigEndian.Uint64(b[i+1:])
	} else {
		w.Offset = uint64(binary.BigEndian.Uint32(b[i+1:]))
	}
	w.Size = binary.BigEndian.Uint32(b[i+1+s.idxoffsetbits/8:])

	switch {
	case i == 0:
		s.err = fmt.Errorf("%w: empty headword at byte %d", ErrFormat, s.pos)
	case !utf8.ValidString(w.Word):
		s.err = fmt.Errorf("%w: headword at byte %d is not valid utf-8", ErrFormat, s.pos)
	}
	if s.err != nil {
		return false
	}

	s.pos += int64(len(b))
	s.word = w
	return true
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	err := s.s.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		return fmt.Errorf("%w: headword at byte %d exceeds %d bytes", ErrFormat, s.pos, maxWordSize)
	}
	//nolint:wrapcheck // errors from the split func are already wrapped.
	return err
}

// Close closes the underlying reader if it is an io.Closer.
func (s *Scanner) Close() error {
	c, ok := s.r.(io.Closer)
	if !ok {
		return nil
	}
	if err := c.Close(); err != nil {
		return fmt.Errorf("closing idx file: %w", err)
	}
	return nil
}

// Word gets the current entry in the index.
func (s *Scanner) Word() *Word {
	return s.word
}

// splitIndex splits an index entry in the index file.
func (s *Scanner) splitIndex(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		// Found zero byte.
		tokenSize := i + 1 + s.idxoffsetbits/8 + 4
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
