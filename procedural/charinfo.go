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

package procedural

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

// Hangul syllable block.
const (
	hangulBase = 0xAC00
	hangulLast = 0xD7A3
	vCount     = 21
	tCount     = 28
)

// Short jamo names used to build Hangul syllable names.
var (
	jamoL = []string{"G", "GG", "N", "D", "DD", "R", "M", "B", "BB", "S", "SS", "", "J", "JJ", "C", "K", "T", "P", "H"}
	jamoV = []string{"A", "AE", "YA", "YAE", "EO", "E", "YEO", "YE", "O", "WA", "WAE", "OE", "YO", "U", "WEO", "WE", "WI", "YU", "EU", "YI", "I"}
	jamoT = []string{"", "G", "GG", "GS", "N", "NJ", "NH", "D", "L", "LG", "LM", "LB", "LS", "LT", "LP", "LH", "M", "B", "BS", "S", "SS", "NG", "J", "C", "K", "T", "P", "H"}
)

// CharInfo describes Han and Hangul characters.
type CharInfo struct {
	ids *IDS
}

// NewCharInfo returns a CharInfo that breaks Han characters into components
// using ids. If ids is nil the embedded table is used.
func NewCharInfo(ids *IDS) *CharInfo {
	if ids == nil {
		ids = DefaultIDS()
	}
	return &CharInfo{ids: ids}
}

// Define describes each Han or Hangul character of word: its name, code
// point, components, compatibility mapping and, for Hangul syllables, its
// jamo. Other characters are ignored.
func (c *CharInfo) Define(word string) []string {
	var defs []string
	for _, r := range word {
		switch {
		case unicode.Is(unicode.Han, r):
			defs = append(defs, c.hanInfo(r))
		case unicode.Is(unicode.Hangul, r):
			defs = append(defs, hangulInfo(r))
		}
	}
	return defs
}

func (c *CharInfo) hanInfo(r rune) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Character: %c (U+%04X), Name: %s", r, r, charName(r))

	compat := norm.NFKD.String(string(r))
	seq, ok := c.ids.Lookup(r)
	if !ok {
		// Compatibility ideographs share the components of their mapping.
		if m, size := utf8.DecodeRuneInString(compat); size == len(compat) && m != r {
			seq, ok = c.ids.Lookup(m)
		}
	}
	if ok {
		fmt.Fprintf(&b, ", Decomposition: %s (%s)", seq, strings.Join(Components(seq), " + "))
	}
	if compat != string(r) {
		fmt.Fprintf(&b, ", Compatibility: %s", compat)
	}
	return b.String()
}

func hangulInfo(r rune) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Character: %c (U+%04X), Name: %s", r, r, charName(r))
	if r < hangulBase || r > hangulLast {
		return b.String()
	}

	var jamo []string
	for _, j := range norm.NFD.String(string(r)) {
		jamo = append(jamo, fmt.Sprintf("%c %s", j, charName(j)))
	}
	fmt.Fprintf(&b, ", Jamo: %s", strings.Join(jamo, " + "))
	return b.String()
}

// charName returns the Unicode name of r. Names of ideographs and syllables
// that the name table only lists as ranges are derived from the code point.
func charName(r rune) string {
	if r >= hangulBase && r <= hangulLast {
		s := int(r - hangulBase)
		l, v, t := s/(vCount*tCount), s%(vCount*tCount)/tCount, s%tCount
		return "HANGUL SYLLABLE " + jamoL[l] + jamoV[v] + jamoT[t]
	}
	name := runenames.Name(r)
	if name == "" || strings.HasPrefix(name, "<") {
		if unicode.Is(unicode.Ideographic, r) {
			return fmt.Sprintf("CJK UNIFIED IDEOGRAPH-%04X", r)
		}
		return fmt.Sprintf("U+%04X", r)
	}
	return name
}
