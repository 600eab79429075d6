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
	"slices"
	"strings"
)

// Resource answers exact-surface-form lookups. Implementations are safe for
// concurrent use.
type Resource interface {
	// Lookup returns the definitions of word in order. A word without
	// definitions yields an empty result and a nil error.
	Lookup(ctx context.Context, word string) ([]string, error)
}

// FormatKind is the kind of a resource.
type FormatKind int

const (
	// FormatSortedIndex is a resource backed by a sorted word index and a
	// definition store.
	FormatSortedIndex FormatKind = iota

	// FormatProcedural is a resource that computes definitions.
	FormatProcedural
)

// ParseFormatKind parses the name of a format kind.
func ParseFormatKind(s string) (FormatKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sorted-index", "stardict":
		return FormatSortedIndex, nil
	case "procedural":
		return FormatProcedural, nil
	default:
		return 0, fmt.Errorf("unknown format kind %q", s)
	}
}

func (k FormatKind) String() string {
	switch k {
	case FormatSortedIndex:
		return "sorted-index"
	case FormatProcedural:
		return "procedural"
	default:
		return fmt.Sprintf("FormatKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k FormatKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *FormatKind) UnmarshalText(b []byte) error {
	parsed, err := ParseFormatKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Descriptor describes a registered resource.
type Descriptor struct {
	// ID is the unique, stable identifier of the resource.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Language is the language of the headwords.
	Language LanguageCode `json:"language"`

	// SecondaryLanguages are the languages of the definitions.
	SecondaryLanguages []LanguageCode `json:"secondary_languages,omitempty"`

	// Format is the kind of the resource.
	Format FormatKind `json:"format"`

	// Source is the location the resource was loaded from.
	Source string `json:"source,omitempty"`

	// EntryCount is the number of headwords, or zero if unknown.
	EntryCount int `json:"entry_count,omitempty"`
}

func (d Descriptor) clone() Descriptor {
	d.SecondaryLanguages = slices.Clone(d.SecondaryLanguages)
	return d
}
