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
	"context"
	"fmt"
	"os"
	"strings"
)

// Options are options for opening a store from a file.
type Options struct {
	// Mmap memory-maps uncompressed files instead of reading them into
	// memory.
	Mmap bool

	// CacheChunks is the number of inflated chunks cached by dictzip stores.
	CacheChunks int

	// Verify checks the CRC-32 of dictzip stores when they are opened.
	Verify bool
}

// DefaultOptions is the default options for opening a store.
var DefaultOptions = &Options{
	Mmap:        true,
	CacheChunks: DefaultChunkedOptions.CacheChunks,
}

// ReadCloser is a Store that holds a file open.
type ReadCloser interface {
	Store
	Close() error
}

// Open opens the store at path. Files ending in ".dz" are opened as dictzip
// containers and all other files as flat stores.
func Open(ctx context.Context, path string, options *Options) (ReadCloser, error) {
	if options == nil {
		options = DefaultOptions
	}

	if !strings.HasSuffix(strings.ToLower(path), ".dz") {
		var (
			s   *Flat
			err error
		)
		if options.Mmap {
			s, err = OpenFlat(path)
		} else {
			s, err = ReadFlat(path)
		}
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}
	c, err := NewChunked(ctx, f, info.Size(), &ChunkedOptions{
		CacheChunks: options.CacheChunks,
		Verify:      options.Verify,
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return c, nil
}
