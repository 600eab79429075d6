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

package idx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// idxExts are the recognized index file extensions in search order.
var idxExts = []string{
	".idx",
	".idx.gz",
	".IDX",
	".IDX.gz",
	".IDX.GZ",
}

// Open opens the .idx file given the path to the .ifo file.
func Open(ifoPath string) (*os.File, error) {
	baseName := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))

	var f *os.File
	var err error
	for _, ext := range idxExts {
		f, err = os.Open(baseName + ext)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("opening .idx file: %w", err)
		}
	}

	// Catch the case when no .idx file was found.
	if err != nil {
		return nil, fmt.Errorf("opening .idx file: %w", err)
	}

	return f, nil
}

// OpenReader opens the .idx file for the .ifo file at ifoPath and returns a
// reader over its uncompressed contents.
func OpenReader(ifoPath string) (io.ReadCloser, error) {
	f, err := Open(ifoPath)
	if err != nil {
		return nil, err
	}
	if strings.ToLower(filepath.Ext(f.Name())) != ".gz" {
		return f, nil
	}

	z, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: creating .idx gzip reader: %w", ErrFormat, err)
	}
	return &gzipFile{Reader: z, f: f}, nil
}

// NewFromIfoPath reads the index belonging to the .ifo file at ifoPath.
func NewFromIfoPath(ctx context.Context, ifoPath string, options *Options) (*Idx, error) {
	r, err := OpenReader(ifoPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return NewContext(ctx, r, options)
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	ferr := g.f.Close()
	return errors.Join(zerr, ferr)
}
