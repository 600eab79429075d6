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

package glosser

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-glosser/dict"
	"github.com/ianlewis/go-glosser/idx"
	"github.com/ianlewis/go-glosser/ifo"
	"github.com/ianlewis/go-glosser/store"
	"github.com/ianlewis/go-glosser/syn"
)

const ifoMagic = "StarDict's dict ifo file"

// OpenOptions are options for opening a StarDict dictionary.
type OpenOptions struct {
	// Store are the options for the definition store.
	Store *store.Options

	// Order is the collation the index is expected to be sorted by.
	Order idx.Order

	// Folder optionally folds headwords, synonyms and queries. A nil Folder
	// matches words exactly.
	Folder func() transform.Transformer

	// IgnoreSynonyms skips loading the .syn file.
	IgnoreSynonyms bool
}

// DefaultOpenOptions is the default options for opening a dictionary.
// StarDict tools sort the index with their own collation, so either order is
// accepted.
var DefaultOpenOptions = &OpenOptions{
	Store: store.DefaultOptions,
	Order: idx.OrderAuto,
}

// Stardict is a StarDict dictionary.
type Stardict struct {
	*IndexedResource

	ifo *ifo.Ifo

	ifoPath string

	version          string
	bookname         string
	wordcount        int64
	synwordcount     int64
	idxfilesize      int64
	idxoffsetbits    int64
	author           string
	email            string
	website          string
	description      string
	date             string
	sametypesequence []dict.DataType
}

// OpenAll opens all dictionaries under a directory. This function will return
// all successfully opened dictionaries along with any errors that occurred.
func OpenAll(ctx context.Context, path string, options *OpenOptions) ([]*Stardict, []error) {
	var dicts []*Stardict
	var errs []error
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(info.Name()), ".ifo") {
			dict, err := Open(ctx, path, options)
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			dicts = append(dicts, dict)
		}
		return nil
	}); err != nil {
		errs = append(errs, err)
	}
	return dicts, errs
}

// Open opens a StarDict dictionary from the given .ifo file path. The index
// and synonyms are read into memory. Definitions are read from the store on
// lookup.
func Open(ctx context.Context, path string, options *OpenOptions) (*Stardict, error) {
	if options == nil {
		options = DefaultOpenOptions
	}

	s := &Stardict{
		ifoPath:       path,
		idxoffsetbits: 32,
	}

	if !strings.EqualFold(filepath.Ext(s.ifoPath), ".ifo") {
		return nil, fmt.Errorf("%w: bad extension: %v", ErrFormat, filepath.Ext(s.ifoPath))
	}

	if err := s.readIfo(); err != nil {
		return nil, fmt.Errorf("%q: %w", s.ifoPath, err)
	}

	index, err := idx.NewFromIfoPath(ctx, s.ifoPath, &idx.Options{
		OffsetBits: int(s.idxoffsetbits),
		Order:      options.Order,
		Folder:     options.Folder,
	})
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s.ifoPath, err)
	}

	var synonyms *syn.Syn
	if !options.IgnoreSynonyms {
		synonyms, err = syn.NewFromIfoPath(ctx, s.ifoPath, &syn.Options{
			Folder: options.Folder,
		})
		switch {
		case errors.Is(err, fs.ErrNotExist):
			synonyms = nil
		case errors.Is(err, syn.ErrFormat):
			return nil, fmt.Errorf("%q: %w: %w", s.ifoPath, ErrFormat, err)
		case err != nil:
			return nil, fmt.Errorf("%q: %w", s.ifoPath, err)
		}
	}
	if synonyms != nil {
		for i := range synonyms.Len() {
			if w := synonyms.At(i); int(w.OriginalWordIndex) >= index.Len() {
				return nil, fmt.Errorf("%q: %w: synonym %q refers to entry %d of %d",
					s.ifoPath, ErrFormat, w.Word, w.OriginalWordIndex, index.Len())
			}
		}
	}

	d, err := dict.NewFromIfoPath(ctx, s.ifoPath, s.sametypesequence, options.Store)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s.ifoPath, err)
	}

	s.IndexedResource = NewIndexedResource(index, d, synonyms)
	return s, nil
}

func (s *Stardict) readIfo() error {
	f, err := os.Open(s.ifoPath)
	if err != nil {
		return fmt.Errorf("opening ifo: %w", err)
	}
	defer f.Close()

	s.ifo, err = ifo.New(f)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}

	if s.ifo.Magic() != ifoMagic {
		return fmt.Errorf("%w: bad magic data", ErrFormat)
	}

	// Validate the version
	s.version = s.ifo.Value("version")
	switch s.version {
	case "2.4.2":
	case "3.0.0":
	default:
		return fmt.Errorf("%w: invalid version: %v", ErrFormat, s.version)
	}

	s.bookname = s.ifo.Value("bookname")
	if s.bookname == "" {
		return fmt.Errorf("%w: missing bookname", ErrFormat)
	}

	s.wordcount, err = strconv.ParseInt(s.ifo.Value("wordcount"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad wordcount: %w", ErrFormat, err)
	}

	s.idxfilesize, err = strconv.ParseInt(s.ifo.Value("idxfilesize"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad idxfilesize: %w", ErrFormat, err)
	}

	idxoffsetbits := s.ifo.Value("idxoffsetbits")
	if idxoffsetbits != "" && s.version == "3.0.0" {
		s.idxoffsetbits, err = strconv.ParseInt(idxoffsetbits, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: invalid idxoffsetbits: %w", ErrFormat, err)
		}
		if s.idxoffsetbits != 32 && s.idxoffsetbits != 64 {
			return fmt.Errorf("%w: invalid idxoffsetbits: %d", ErrFormat, s.idxoffsetbits)
		}
	}

	synwordcount := s.ifo.Value("synwordcount")
	if synwordcount != "" {
		s.synwordcount, err = strconv.ParseInt(synwordcount, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: bad synwordcount: %w", ErrFormat, err)
		}
	}

	s.sametypesequence, err = dict.ParseSameTypeSequence(s.ifo.Value("sametypesequence"))
	if err != nil {
		return fmt.Errorf("%w: bad sametypesequence: %w", ErrFormat, err)
	}

	s.author = s.ifo.Value("author")
	s.email = s.ifo.Value("email")
	s.description = s.ifo.Value("description")
	s.website = s.ifo.Value("website")
	s.date = s.ifo.Value("date")

	return nil
}

// Path returns the path of the .ifo file.
func (s *Stardict) Path() string {
	return s.ifoPath
}

// Bookname returns the dictionary name.
func (s *Stardict) Bookname() string {
	return s.bookname
}

// Description returns the dictionary description.
func (s *Stardict) Description() string {
	return s.description
}

// Author returns the dictionary author.
func (s *Stardict) Author() string {
	return s.author
}

// Email returns the dictionary contact email.
func (s *Stardict) Email() string {
	return s.email
}

// Website returns the dictionary website url.
func (s *Stardict) Website() string {
	return s.website
}

// Date returns the dictionary creation date.
func (s *Stardict) Date() string {
	return s.date
}

// WordCount returns the dictionary word count.
func (s *Stardict) WordCount() int64 {
	return s.wordcount
}

// SynWordCount returns the dictionary synonym count.
func (s *Stardict) SynWordCount() int64 {
	return s.synwordcount
}

// Version returns the dictionary format version.
func (s *Stardict) Version() string {
	return s.version
}

// IdxOffsetBits returns the size of index offsets in bits.
func (s *Stardict) IdxOffsetBits() int64 {
	return s.idxoffsetbits
}

// SameTypeSequence returns the data types shared by every entry, if any.
func (s *Stardict) SameTypeSequence() []dict.DataType {
	return append([]dict.DataType(nil), s.sametypesequence...)
}

// Value returns the raw value of an .ifo key.
func (s *Stardict) Value(key string) string {
	return s.ifo.Value(key)
}
