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

// Package dict implements decoding of StarDict definition data.
package dict

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/k3a/html2text"

	"github.com/ianlewis/go-glosser/idx"
	"github.com/ianlewis/go-glosser/store"
)

// ErrInvalidType indicates an unknown data type.
var ErrInvalidType = errors.New("invalid type")

// dictExts are the extensions searched for next to the .ifo file, in order.
var dictExts = []string{".dict.dz", ".dict", ".DICT.DZ", ".DICT", ".dict.DZ"}

// Dict reads definitions from a store.
type Dict struct {
	s                store.Store
	sametypesequence []DataType
}

// Word is a full dictionary entry.
type Word struct {
	Data []*Data
}

// String returns the textual data of the word joined by newlines.
func (w *Word) String() string {
	var parts []string
	for _, d := range w.Data {
		if !d.Type.IsText() {
			continue
		}
		if s := d.String(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// DataType is a type of data in a word. Data types are specified by a single
// byte at the beginning of a word. Lower case characters represent string-like
// data that is terminated by a null terminator ('\0'). Upper case characters
// represent file-like data that starts with a 32-bit size followed by file
// data.
type DataType byte

const (
	// UTFTextType is utf-8 text.
	UTFTextType = DataType('m')

	// LocaleTextType is text in a locale encoding.
	LocaleTextType = DataType('l')

	// PangoTextType is utf-8 text in the Pango text format.
	PangoTextType = DataType('g')

	// PhoneticType is utf-8 text representing an English phonetic string.
	PhoneticType = DataType('t')

	// XDXFType is utf-8 encoded xml in XDXF format.
	XDXFType = DataType('x')

	// YinBiaoOrKataType is utf-8 encoded Yin Biao or Kana phonetic string.
	YinBiaoOrKataType = DataType('y')

	// PowerWordType is a utf-8 encoded KingSoft PowerWord XML format.
	PowerWordType = DataType('k')

	// MediaWikiType is utf-8 encoded text in MediaWiki format.
	MediaWikiType = DataType('w')

	// HTMLType is utf-8 encoded HTML text.
	HTMLType = DataType('h')

	// WordNetType is WordNet data.
	WordNetType = DataType('n')

	// ResourceFileListType is a list of files in resource storage.
	ResourceFileListType = DataType('r')

	// WavType is .wav sound file data.
	WavType = DataType('W')

	// PictureType is image file data.
	PictureType = DataType('P')

	// ExperimentalType is reserved for experimental features.
	ExperimentalType = DataType('X')
)

// ParseDataType returns the DataType for the type byte c.
func ParseDataType(c byte) (DataType, error) {
	switch t := DataType(c); t {
	case UTFTextType,
		LocaleTextType,
		PangoTextType,
		PhoneticType,
		XDXFType,
		YinBiaoOrKataType,
		PowerWordType,
		MediaWikiType,
		HTMLType,
		WordNetType,
		ResourceFileListType,
		WavType,
		PictureType,
		ExperimentalType:
		return t, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidType, c)
	}
}

// ParseSameTypeSequence parses the sametypesequence .ifo option.
func ParseSameTypeSequence(s string) ([]DataType, error) {
	var seq []DataType
	for i := range len(s) {
		t, err := ParseDataType(s[i])
		if err != nil {
			return nil, err
		}
		seq = append(seq, t)
	}
	return seq, nil
}

// isString reports whether data of type t is NUL-terminated.
func (t DataType) isString() bool {
	return 'a' <= t && t <= 'z'
}

// IsText reports whether data of type t holds a readable definition.
func (t DataType) IsText() bool {
	return t.isString() && t != ResourceFileListType
}

// Data is a data entry in a Word.
type Data struct {
	Type DataType
	Data []byte
}

// String returns the data as plain text. Markup formats are rendered to
// text. Invalid UTF-8 is replaced with U+FFFD.
func (d *Data) String() string {
	s := strings.ToValidUTF8(string(d.Data), "�")
	switch d.Type {
	case HTMLType, XDXFType, PangoTextType, PowerWordType:
		s = html2text.HTML2Text(s)
	}
	return strings.TrimSpace(s)
}

// New returns a new Dict reading from s.
func New(s store.Store, sametypesequence []DataType) (*Dict, error) {
	for _, t := range sametypesequence {
		if _, err := ParseDataType(byte(t)); err != nil {
			return nil, err
		}
	}

	return &Dict{
		s:                s,
		sametypesequence: sametypesequence,
	}, nil
}

// NewFromIfoPath opens the .dict or .dict.dz file next to the .ifo file at
// ifoPath.
func NewFromIfoPath(ctx context.Context, ifoPath string, sametypesequence []DataType, options *store.Options) (*Dict, error) {
	base := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))
	for _, ext := range dictExts {
		path := base + ext
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %q: %w", path, err)
		}

		s, err := store.Open(ctx, path, options)
		if err != nil {
			return nil, err
		}
		d, err := New(s, sametypesequence)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		return d, nil
	}
	return nil, fmt.Errorf("dict file for %q: %w", ifoPath, fs.ErrNotExist)
}

// Store returns the store the definitions are read from.
func (d *Dict) Store() store.Store {
	return d.s
}

// Close closes the underlying store if it holds resources.
func (d *Dict) Close() error {
	if c, ok := d.s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Word retrieves the word stored at the given location.
func (d *Dict) Word(loc idx.Location) (*Word, error) {
	b, err := d.s.Fetch(loc.Offset, loc.Size)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}

	var wordData []*Data
	if len(d.sametypesequence) > 0 {
		// When sametypesequence is specified, that determines the type of the
		// word's data. The final item has no terminator or size and takes the
		// rest of the entry.
		for i, t := range d.sametypesequence {
			last := i == len(d.sametypesequence)-1
			var data []byte
			switch {
			case last:
				data, b = b, nil
			case t.isString():
				data, b, err = splitString(b)
			default:
				data, b, err = splitFile(b)
			}
			if err != nil {
				return nil, fmt.Errorf("entry at %d: %w", loc.Offset, err)
			}
			wordData = append(wordData, &Data{
				Type: t,
				Data: data,
			})
		}
	} else {
		for len(b) > 0 {
			t, err := ParseDataType(b[0])
			if err != nil {
				return nil, fmt.Errorf("%w: entry at %d: %w", store.ErrCorruptData, loc.Offset, err)
			}
			b = b[1:]

			var data []byte
			if t.isString() {
				data, b, err = splitString(b)
				// The final string may omit its terminator.
				if err != nil {
					data, b, err = b, nil, nil
				}
			} else {
				data, b, err = splitFile(b)
			}
			if err != nil {
				return nil, fmt.Errorf("entry at %d: %w", loc.Offset, err)
			}
			wordData = append(wordData, &Data{
				Type: t,
				Data: data,
			})
		}
	}

	return &Word{
		Data: wordData,
	}, nil
}

// splitString splits a NUL-terminated string from b.
func splitString(b []byte) ([]byte, []byte, error) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return nil, nil, fmt.Errorf("%w: unterminated string", store.ErrCorruptData)
	}
	return b[:i], b[i+1:], nil
}

// splitFile splits size-prefixed file data from b.
func splitFile(b []byte) ([]byte, []byte, error) {
	if len(b) < 4 {
		return nil, nil, fmt.Errorf("%w: truncated data size", store.ErrCorruptData)
	}
	size := binary.BigEndian.Uint32(b)
	b = b[4:]
	if uint64(size) > uint64(len(b)) {
		return nil, nil, fmt.Errorf("%w: data size %d exceeds entry", store.ErrCorruptData, size)
	}
	return b[:size], b[size:], nil
}
