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
	"unicode/utf8"
)

// ProceduralFunc computes the definitions of a word.
type ProceduralFunc func(word string) []string

// ProceduralResource is a resource whose definitions are computed rather than
// stored.
type ProceduralResource struct {
	fn ProceduralFunc
}

// NewProceduralResource returns a resource answering lookups with fn. fn must
// be safe for concurrent use.
func NewProceduralResource(fn ProceduralFunc) *ProceduralResource {
	return &ProceduralResource{fn: fn}
}

// Lookup implements Resource.Lookup. It fails only when ctx is done. Words
// that are empty or not valid UTF-8 have no definitions.
func (r *ProceduralResource) Lookup(ctx context.Context, word string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if word == "" || !utf8.ValidString(word) {
		return nil, nil
	}
	return r.fn(word), nil
}
