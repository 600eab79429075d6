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
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-glosser/internal/index"
)

// checkEvery is how many entries are read between context checks.
const checkEvery = 4096

// Word is an .idx file entry.
type Word struct {
	Word   string
	Offset uint64
	Size   uint32
}

// String implements fmt.Stringer and returns the headword.
func (w *Word) String() string {
	return w.Word
}

// Location returns the word's location in the definition store.
func (w *Word) Location() Location {
	return Location{
		Offset: w.Offset,
		Size:   w.Size,
	}
}

// Location is the offset and size of one definition in the definition store.
type Location struct {
	Offset uint64
	Size   uint32
}

// Entry is a headword and all of its locations in file order. Multiple
// locations occur when a headword has several senses stored separately.
type Entry struct {
	// Word is the headword. If the index was built with a Folder this is the
	// folded headword.
	Word      string
	Locations []Location
}

// String implements fmt.Stringer and returns the sort key.
func (e *Entry) String() string {
	return e.Word
}

// Order is the collation that the index file is sorted by.
type Order int

const (
	// OrderBytewise requires entries sorted by the byte value of the
	// headword.
	OrderBytewise Order = iota

	// OrderStardict requires entries sorted by the StarDict collation:
	// ASCII case-insensitive comparison with ties broken byte-wise.
	OrderStardict

	// OrderAuto accepts either OrderBytewise or OrderStardict.
	OrderAuto
)

// ParseOrder parses the name of an Order as returned by Order.String.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bytewise":
		return OrderBytewise, nil
	case "stardict":
		return OrderStardict, nil
	case "auto", "":
		return OrderAuto, nil
	default:
		return 0, fmt.Errorf("unknown order %q", s)
	}
}

// String implements fmt.Stringer.
func (o Order) String() string {
	switch o {
	case OrderBytewise:
		return "bytewise"
	case OrderStardict:
		return "stardict"
	case OrderAuto:
		return "auto"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// Options are options for the idx data.
type Options struct {
	// OffsetBits are the number of bits in the offset fields. Valid values for
	// OffsetBits are either 32 or 64.
	OffsetBits int

	// Order is the collation the index file is expected to be sorted by. It
	// is ignored when Folder is set because folded keys are re-sorted.
	Order Order

	// Folder returns a [transform.Transformer] that performs folding (e.g.
	// whitespace folding or normalization) on index entries and queries. A
	// nil Folder performs no folding and lookups match headwords exactly.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for an Idx.
var DefaultOptions = &Options{
	OffsetBits: 32,
	Order:      OrderBytewise,
}

// Idx is an in-memory lexicon index. An Idx is frozen once built and is safe
// for concurrent use.
type Idx struct {
	// words are the raw entries in file order.
	words []*Word

	// index holds one entry per distinct key.
	index *index.Index[*Entry]

	order  Order
	folder func() transform.Transformer
}

// New reads an index from r. The reader is read until EOF but not closed.
func New(r io.Reader, options *Options) (*Idx, error) {
	return NewContext(context.Background(), r, options)
}

// NewContext reads an index from r, checking ctx periodically so that a huge
// or hostile file can be abandoned.
func NewContext(ctx context.Context, r io.Reader, options *Options) (*Idx, error) {
	if options == nil {
		options = DefaultOptions
	}

	s, err := NewScanner(r, &ScannerOptions{
		OffsetBits: options.OffsetBits,
	})
	if err != nil {
		return nil, err
	}

	var words []*Word
	for s.Scan() {
		if len(words)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("reading index: %w", err)
			}
		}
		words = append(words, s.Word())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}

	return Build(words, options)
}

// Build builds an index from words given in file order. Without a Folder the
// words must already be sorted according to options.Order; this is verified
// in a single pass. With a Folder, the folded keys are sorted.
func Build(words []*Word, options *Options) (*Idx, error) {
	if options == nil {
		options = DefaultOptions
	}

	idx := &Idx{
		words:  words,
		order:  options.Order,
		folder: options.Folder,
	}

	if idx.folder != nil {
		folded := make([]*Word, 0, len(words))
		for _, w := range words {
			key, err := idx.fold(w.Word)
			if err != nil {
				return nil, err
			}
			folded = append(folded, &Word{Word: key, Offset: w.Offset, Size: w.Size})
		}
		sorted := index.NewIndex(folded, strings.Compare)
		entries := make([]*Entry, 0, sorted.Len())
		for i := range sorted.Len() {
			entries = appendWord(entries, sorted.At(i))
		}
		// Sorted above; verification cannot fail.
		idx.order = OrderBytewise
		idx.index, _ = index.NewSortedIndex(entries, strings.Compare)
		return idx, nil
	}

	var entries []*Entry
	for _, w := range words {
		entries = appendWord(entries, w)
	}

	var err error
	switch options.Order {
	case OrderBytewise:
		idx.index, err = index.NewSortedIndex(entries, strings.Compare)
	case OrderStardict:
		idx.index, err = index.NewSortedIndex(entries, StardictCompare)
	case OrderAuto:
		idx.order = OrderBytewise
		idx.index, err = index.NewSortedIndex(entries, strings.Compare)
		if err != nil {
			idx.order = OrderStardict
			idx.index, err = index.NewSortedIndex(entries, StardictCompare)
		}
	default:
		return nil, fmt.Errorf("%w: unknown order %v", ErrFormat, options.Order)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s order: %w", ErrFormat, options.Order, err)
	}

	return idx, nil
}

// appendWord appends w to entries, merging it into the last entry when the
// headwords are identical.
func appendWord(entries []*Entry, w *Word) []*Entry {
	if n := len(entries); n > 0 && entries[n-1].Word == w.Word {
		entries[n-1].Locations = append(entries[n-1].Locations, w.Location())
		return entries
	}
	return append(entries, &Entry{
		Word:      w.Word,
		Locations: []Location{w.Location()},
	})
}

func (idx *Idx) fold(s string) (string, error) {
	if idx.folder == nil {
		return s, nil
	}
	folded, _, err := transform.String(idx.folder(), s)
	if err != nil {
		return "", fmt.Errorf("folding word %q: %w", s, err)
	}
	return folded, nil
}

// Search returns the entry for word or nil if the word is not in the index.
func (idx *Idx) Search(word string) *Entry {
	key, err := idx.fold(word)
	if err != nil {
		// A query that cannot be folded cannot match any folded key.
		return nil
	}
	result := idx.index.Search(key)
	if len(result) == 0 {
		return nil
	}
	return result[0]
}

// Lookup returns the locations of word in file order. It returns nil when the
// word is absent.
func (idx *Idx) Lookup(word string) []Location {
	e := idx.Search(word)
	if e == nil {
		return nil
	}
	return slices.Clone(e.Locations)
}

// Len returns the number of raw entries in the index file.
func (idx *Idx) Len() int {
	return len(idx.words)
}

// At returns the i-th raw entry in file order.
func (idx *Idx) At(i int) *Word {
	return idx.words[i]
}

// Entries returns the number of distinct headwords.
func (idx *Idx) Entries() int {
	return idx.index.Len()
}

// Order returns the collation the index was verified against.
func (idx *Idx) Order() Order {
	return idx.order
}

// StardictCompare compares two headwords using the StarDict collation: ASCII
// case-insensitive comparison with ties broken by byte value. Non-ASCII bytes
// compare by value.
func StardictCompare(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		ca, cb := lowerASCII(a[i]), lowerASCII(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return strings.Compare(a, b)
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
