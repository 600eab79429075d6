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

package store

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Flat is a store over an uncompressed byte region, either held in memory or
// memory-mapped from a file.
type Flat struct {
	b []byte

	m mmap.MMap
	f *os.File
}

// NewFlat returns a store over b. The store does not copy b.
func NewFlat(b []byte) *Flat {
	return &Flat{b: b}
}

// OpenFlat memory-maps the file at path. The returned store must be closed
// to release the mapping.
func OpenFlat(path string) (*Flat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	// Empty files cannot be mapped.
	if info.Size() == 0 {
		_ = f.Close()
		return NewFlat(nil), nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mapping %q: %w", path, err)
	}
	return &Flat{
		b: m,
		m: m,
		f: f,
	}, nil
}

// ReadFlat reads the whole file at path into memory.
func ReadFlat(path string) (*Flat, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return NewFlat(b), nil
}

// Fetch implements Store.Fetch. The returned slice aliases the store.
func (s *Flat) Fetch(offset uint64, size uint32) ([]byte, error) {
	if err := checkRange(offset, size, s.Size()); err != nil {
		return nil, err
	}
	end := offset + uint64(size)
	return s.b[offset:end:end], nil
}

// Size implements Store.Size.
func (s *Flat) Size() uint64 {
	return uint64(len(s.b))
}

// Close releases the memory mapping, if any. Slices returned by Fetch must not
// be used after Close.
func (s *Flat) Close() error {
	var err error
	if s.m != nil {
		if uerr := s.m.Unmap(); uerr != nil {
			err = fmt.Errorf("unmapping: %w", uerr)
		}
		s.m = nil
	}
	if s.f != nil {
		if cerr := s.f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing: %w", cerr)
		}
		s.f = nil
	}
	s.b = nil
	return err
}
