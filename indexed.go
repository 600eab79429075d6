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
	"fmt"

	"github.com/ianlewis/go-glosser/dict"
	"github.com/ianlewis/go-glosser/idx"
	"github.com/ianlewis/go-glosser/syn"
)

// IndexedResource is a resource backed by a word index and a definition
// store.
type IndexedResource struct {
	idx  *idx.Idx
	dict *dict.Dict
	syn  *syn.Syn
}

// NewIndexedResource returns a resource reading definitions for the entries
// of index from d. Synonyms are optional and may be nil.
func NewIndexedResource(index *idx.Idx, d *dict.Dict, synonyms *syn.Syn) *IndexedResource {
	return &IndexedResource{
		idx:  index,
		dict: d,
		syn:  synonyms,
	}
}

// Lookup implements Resource.Lookup. Definitions of the headword come first,
// in index order, followed by those reached through synonyms. A definition
// stored at a location already returned is not repeated. If any location
// cannot be read the lookup fails.
func (r *IndexedResource) Lookup(ctx context.Context, word string) ([]string, error) {
	locs, err := r.Locations(word)
	if err != nil {
		return nil, err
	}

	var defs []string
	for _, loc := range locs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w, err := r.dict.Word(loc)
		if err != nil {
			return nil, fmt.Errorf("looking up %q: %w", word, err)
		}
		if s := w.String(); s != "" {
			defs = append(defs, s)
		}
	}
	return defs, nil
}

// Locations returns the definition locations for word, including those
// reached through synonyms, without duplicates.
func (r *IndexedResource) Locations(word string) ([]idx.Location, error) {
	locs := r.idx.Lookup(word)
	if r.syn == nil {
		return locs, nil
	}

	for _, s := range r.syn.Search(word) {
		i := int(s.OriginalWordIndex)
		if i >= r.idx.Len() {
			return nil, fmt.Errorf("%w: synonym %q refers to entry %d of %d", ErrCorruptData, s.Word, i, r.idx.Len())
		}
		locs = appendLocation(locs, r.idx.At(i).Location())
	}
	return locs, nil
}

func appendLocation(locs []idx.Location, loc idx.Location) []idx.Location {
	for _, l := range locs {
		if l == loc {
			return locs
		}
	}
	return append(locs, loc)
}

// Len returns the number of headwords in the index.
func (r *IndexedResource) Len() int {
	return r.idx.Len()
}

// Close releases the definition store.
func (r *IndexedResource) Close() error {
	return r.dict.Close()
}
