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

// Package syn implements reading StarDict .syn synonym files. A synonym
// file maps alternate headwords to entries of the .idx file by position.
package syn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-glosser/internal/index"
)

// checkEvery is how many synonyms are read between context checks.
const checkEvery = 4096

var synExts = []string{
	".syn",
	".syn.gz",
	".syn.GZ",
	".syn.dz",
	".syn.DZ",
	".SYN",
	".SYN.gz",
	".SYN.GZ",
	".SYN.dz",
	".SYN.DZ",
}

// Word is a synonym entry.
type Word struct {
	// Word is the synonym word.
	Word string

	// OriginalWordIndex is the index into the .idx index.
	OriginalWordIndex uint32
}

type foldedWord struct {
	folded string
	word   *Word
}

func (w *foldedWord) String() string {
	return w.folded
}

// Options are options for the synonym index.
type Options struct {
	// Folder returns a [transform.Transformer] that performs folding (e.g.
	// whitespace folding, normalization, etc.) on synonyms and queries. A nil
	// Folder matches synonyms exactly.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for the synonym index.
var DefaultOptions = &Options{}

// Syn is a synonym index.
type Syn struct {
	// index is sorted by the folded word value.
	index *index.Index[*foldedWord]

	// folder performs folding on text.
	folder func() transform.Transformer
}

// New returns a new synonym index read from r.
func New(r io.Reader, options *Options) (*Syn, error) {
	return NewContext(context.Background(), r, options)
}

// NewContext is like New but stops reading when ctx is done.
func NewContext(ctx context.Context, r io.Reader, options *Options) (*Syn, error) {
	if options == nil {
		options = DefaultOptions
	}

	syn := &Syn{
		folder: options.Folder,
	}

	s := NewScanner(r)
	var words []*foldedWord
	for s.Scan() {
		if len(words)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("scanning synonym index: %w", err)
			}
		}
		word := s.Word()
		folded, err := syn.fold(word.Word)
		if err != nil {
			return nil, err
		}
		words = append(words, &foldedWord{
			folded: folded,
			word:   word,
		})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning synonym index: %w", err)
	}

	// Synonym files are sorted by the StarDict collation and keys may be
	// folded, so the index is re-sorted byte-wise.
	syn.index = index.NewIndex(words, strings.Compare)

	return syn, nil
}

// NewFromIfoPath reads the .syn file next to the .ifo file at ifoPath.
func NewFromIfoPath(ctx context.Context, ifoPath string, options *Options) (*Syn, error) {
	f, err := Open(ifoPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	ext := strings.ToLower(filepath.Ext(f.Name()))
	if ext == ".gz" || ext == ".dz" {
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: creating .syn gzip reader: %w", ErrFormat, err)
		}
		defer z.Close()
		r = z
	}

	return NewContext(ctx, r, options)
}

// Open opens the .syn file next to the .ifo file at ifoPath.
func Open(ifoPath string) (*os.File, error) {
	baseName := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))

	var f *os.File
	var err error
	for _, ext := range synExts {
		f, err = os.Open(baseName + ext)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("opening .syn file: %w", err)
		}
	}

	// Catch the case when no .syn file was found.
	if err != nil {
		return nil, fmt.Errorf("opening .syn file: %w", err)
	}

	return f, nil
}

func (syn *Syn) fold(s string) (string, error) {
	if syn.folder == nil {
		return s, nil
	}
	folded, _, err := transform.String(syn.folder(), s)
	if err != nil {
		return "", fmt.Errorf("folding word %q: %w", s, err)
	}
	return folded, nil
}

// Search returns the synonyms matching query in file order.
func (syn *Syn) Search(query string) []*Word {
	folded, err := syn.fold(query)
	if err != nil {
		return nil
	}

	var words []*Word
	for _, w := range syn.index.Search(folded) {
		words = append(words, w.word)
	}
	return words
}

// Len returns the number of synonyms.
func (syn *Syn) Len() int {
	return syn.index.Len()
}

// At returns the i'th synonym in sorted order.
func (syn *Syn) At(i int) *Word {
	return syn.index.At(i).word
}
