// Copyright 2025 Ian Lewis
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

package index

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrUnsorted indicates that presorted input was not in order.
var ErrUnsorted = errors.New("index not sorted")

// Index is a generic sorted array index. An Index is frozen after it is
// created and is safe for concurrent use.
type Index[V fmt.Stringer] struct {
	// index is sorted by the key returned by V.String.
	index []V

	cmp func(string, string) int
}

// NewIndex creates an index from the given slice and comparison function.
// cmp(a, b) should return a negative number when a < b, a positive number when
// a > b and zero when a == b or a and b are incomparable in the sense of a
// strict weak ordering. The values are sorted stably so that values with equal
// keys retain their relative order.
func NewIndex[V fmt.Stringer](index []V, cmp func(string, string) int) *Index[V] {
	sorted := make([]V, len(index))
	copy(sorted, index)
	slices.SortStableFunc(sorted, func(a, b V) int {
		return cmp(a.String(), b.String())
	})

	return &Index[V]{
		index: sorted,
		cmp:   cmp,
	}
}

// NewSortedIndex creates an index from a slice that is expected to already be
// sorted by cmp. The order is verified in a single pass and ErrUnsorted is
// returned, along with the position of the first out-of-order value, if it
// does not hold.
func NewSortedIndex[V fmt.Stringer](index []V, cmp func(string, string) int) (*Index[V], error) {
	for i := 1; i < len(index); i++ {
		if cmp(index[i-1].String(), index[i].String()) > 0 {
			return nil, fmt.Errorf("%w: %q before %q at entry %d", ErrUnsorted, index[i-1].String(), index[i].String(), i)
		}
	}

	sorted := make([]V, len(index))
	copy(sorted, index)
	return &Index[V]{
		index: sorted,
		cmp:   cmp,
	}, nil
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.index)
}

// At returns the value at position i in sorted order.
func (idx *Index[V]) At(i int) V {
	return idx.index[i]
}

// Search performs a binary search over the index and returns matching words.
func (idx *Index[V]) Search(query string) []V {
	i, found := sort.Find(len(idx.index), func(i int) int {
		return idx.cmp(query, idx.index[i].String())
	})

	if !found {
		return nil
	}

	j := i
	//nolint:revive // This block increments j.
	for ; j < len(idx.index) && idx.cmp(query, idx.index[j].String()) == 0; j++ {
	}
	return idx.index[i:j]
}
