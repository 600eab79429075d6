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
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

var languageRegex = regexp.MustCompile(`^([a-z]{2,3})(?:-([A-Za-z]{2}|[0-9]{3}))?$`)

// LanguageCode is an ISO 639 language code with an optional region, such as
// "sa" or "en-GB". The zero value is the empty code.
type LanguageCode struct {
	base   string
	region string
}

// ParseLanguageCode parses and validates a language code.
func ParseLanguageCode(s string) (LanguageCode, error) {
	m := languageRegex.FindStringSubmatch(s)
	if m == nil {
		return LanguageCode{}, fmt.Errorf("%w: %q", ErrInvalidLanguage, s)
	}

	base, err := language.ParseBase(m[1])
	if err != nil {
		return LanguageCode{}, fmt.Errorf("%w: %q: %w", ErrInvalidLanguage, s, err)
	}
	l := LanguageCode{base: base.String()}

	if m[2] != "" {
		region, err := language.ParseRegion(m[2])
		if err != nil {
			return LanguageCode{}, fmt.Errorf("%w: %q: %w", ErrInvalidLanguage, s, err)
		}
		l.region = region.String()
	}
	return l, nil
}

// MustParseLanguageCode is like ParseLanguageCode but panics on error.
func MustParseLanguageCode(s string) LanguageCode {
	l, err := ParseLanguageCode(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Base returns the language subtag.
func (l LanguageCode) Base() string {
	return l.base
}

// Region returns the region subtag or an empty string.
func (l LanguageCode) Region() string {
	return l.region
}

// IsZero reports whether l is the empty code.
func (l LanguageCode) IsZero() bool {
	return l.base == ""
}

// Matches reports whether l matches other. A code without a region matches
// every region of the same language.
func (l LanguageCode) Matches(other LanguageCode) bool {
	if l.base != other.base {
		return false
	}
	return l.region == "" || l.region == other.region
}

func (l LanguageCode) String() string {
	if l.region == "" {
		return l.base
	}
	return l.base + "-" + l.region
}

// MarshalText implements encoding.TextMarshaler.
func (l LanguageCode) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *LanguageCode) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*l = LanguageCode{}
		return nil
	}
	parsed, err := ParseLanguageCode(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
