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

// Package ifo implements parsing of StarDict .ifo metadata files.
package ifo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	// ErrMissingVersion indicates the first key is not the version.
	ErrMissingVersion = errors.New("missing version")

	// ErrInvalidKey indicates a malformed key.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidLine indicates a line without a key=value pair.
	ErrInvalidLine = errors.New("invalid line")
)

var keyRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// maxLineSize bounds a single metadata line.
const maxLineSize = 1 << 20

// Ifo is the metadata of a dictionary. The first line of the file is a magic
// string and the remaining lines are key=value pairs, the first of which must
// be the version.
type Ifo struct {
	magic    string
	keys     []string
	metadata map[string]string
}

// New parses the .ifo data in r.
func New(r io.Reader) (*Ifo, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLineSize)

	i := &Ifo{
		metadata: map[string]string{},
	}
	if s.Scan() {
		// Tolerate a UTF-8 byte order mark.
		i.magic = strings.TrimPrefix(strings.TrimRight(s.Text(), "\r"), "\ufeff")
	}

	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLine, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !keyRegex.MatchString(key) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
		if len(i.keys) == 0 && key != "version" {
			return nil, ErrMissingVersion
		}
		if _, ok := i.metadata[key]; !ok {
			i.keys = append(i.keys, key)
		}
		i.metadata[key] = value
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading ifo: %w", err)
	}
	if len(i.keys) == 0 {
		return nil, ErrMissingVersion
	}

	return i, nil
}

// Magic returns the magic string on the first line.
func (i *Ifo) Magic() string {
	return i.magic
}

// Value returns the value for key or an empty string.
func (i *Ifo) Value(key string) string {
	return i.metadata[key]
}

// Keys returns the keys in file order.
func (i *Ifo) Keys() []string {
	return append([]string(nil), i.keys...)
}
