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

package tokenize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestUnicode_Tokenize tests Unicode.Tokenize.
func TestUnicode_Tokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want []Token
	}{
		{
			name: "empty",
			line: "",
			want: nil,
		},
		{
			name: "spaces",
			line: "   \t ",
			want: nil,
		},
		{
			name: "ascii",
			line: "karma is dharma",
			want: []Token{
				{Surface: "karma", Start: 0, End: 5},
				{Surface: "is", Start: 6, End: 8},
				{Surface: "dharma", Start: 9, End: 15},
			},
		},
		{
			name: "punctuation",
			line: "Hello, world!",
			want: []Token{
				{Surface: "Hello", Start: 0, End: 5},
				{Surface: "world", Start: 7, End: 12},
			},
		},
		{
			name: "contraction and number",
			line: "don't in 1999.",
			want: []Token{
				{Surface: "don't", Start: 0, End: 5},
				{Surface: "in", Start: 6, End: 8},
				{Surface: "1999", Start: 9, End: 13},
			},
		},
		{
			name: "arabic with harakat",
			line: "كَتَبَ الوَلَدُ.",
			want: []Token{
				{Surface: "كَتَبَ", Start: 0, End: 6},
				{Surface: "الوَلَدُ", Start: 7, End: 15},
			},
		},
		{
			name: "devanagari",
			line: "धर्म क्षेत्र",
			want: []Token{
				{Surface: "धर्म", Start: 0, End: 4},
				{Surface: "क्षेत्र", Start: 5, End: 12},
			},
		},
		{
			name: "iast",
			line: "dharmaḥ, karma",
			want: []Token{
				{Surface: "dharmaḥ", Start: 0, End: 7},
				{Surface: "karma", Start: 9, End: 14},
			},
		},
		{
			name: "ideographs",
			line: "水火",
			want: []Token{
				{Surface: "水", Start: 0, End: 1},
				{Surface: "火", Start: 1, End: 2},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Collect(Unicode{}, tc.line)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Tokenize(%q) (-want, +got):\n%s", tc.line, diff)
			}
		})
	}
}

// TestUnicode_restart tests that token sequences can be iterated more than
// once and stopped early.
func TestUnicode_restart(t *testing.T) {
	t.Parallel()

	seq := Unicode{}.Tokenize("karma is dharma")

	var first []Token
	for tok := range seq {
		first = append(first, tok)
	}
	var second []Token
	for tok := range seq {
		second = append(second, tok)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second iteration (-first, +second):\n%s", diff)
	}

	var n int
	for range seq {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("early stop: got %d tokens", n)
	}
}

// TestIsWord tests IsWord.
func TestIsWord(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"":     false,
		" ":    false,
		",":    false,
		"«»":   false,
		"a":    true,
		"٣":    true,
		"ْ":    false,
		"水":    true,
		"--a-": true,
	}
	for s, want := range tests {
		if got := IsWord(s); got != want {
			t.Errorf("IsWord(%q): want %v, got %v", s, want, got)
		}
	}
}

// TestJapanese_Tokenize tests Japanese.Tokenize.
func TestJapanese_Tokenize(t *testing.T) {
	t.Parallel()

	j, err := NewJapanese()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		line string
		want []Token
	}{
		{
			line: "",
			want: nil,
		},
		{
			line: "私は猫です。",
			want: []Token{
				{Surface: "私", Start: 0, End: 1},
				{Surface: "は", Start: 1, End: 2},
				{Surface: "猫", Start: 2, End: 3},
				{Surface: "です", Start: 3, End: 5},
			},
		},
		{
			line: "「猫」",
			want: []Token{
				{Surface: "猫", Start: 1, End: 2},
			},
		},
	}
	for _, tc := range tests {
		got := Collect(j, tc.line)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Tokenize(%q) (-want, +got):\n%s", tc.line, diff)
		}
	}
}
