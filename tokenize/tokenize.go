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

// Package tokenize splits lines of text into word tokens.
//
// Offsets are logical rune offsets into the line. Right-to-left text is
// tokenized in storage order; visual reordering is left to callers.
package tokenize

import (
	"iter"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Token is a word in a line of text.
type Token struct {
	// Surface is the word as it appears in the line.
	Surface string `json:"surface"`

	// Start is the rune offset of the first rune of the word.
	Start int `json:"start"`

	// End is the rune offset just past the last rune of the word.
	End int `json:"end"`
}

// Tokenizer splits a line into word tokens. The returned sequence may be
// iterated any number of times and yields the same tokens each time.
// Implementations must be safe for concurrent use.
type Tokenizer interface {
	Tokenize(line string) iter.Seq[Token]
}

// Unicode is a Tokenizer that splits lines at the default Unicode word
// boundaries (UAX #29). Segments without a letter or number, such as
// punctuation and whitespace, are skipped.
type Unicode struct{}

// Tokenize implements Tokenizer.Tokenize.
func (Unicode) Tokenize(line string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		rest := line
		state := -1
		pos := 0
		for len(rest) > 0 {
			var word string
			word, rest, state = uniseg.FirstWordInString(rest, state)
			n := utf8.RuneCountInString(word)
			if IsWord(word) {
				if !yield(Token{Surface: word, Start: pos, End: pos + n}) {
					return
				}
			}
			pos += n
		}
	}
}

// IsWord reports whether s contains a letter or a number.
func IsWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// Collect returns the tokens of line as a slice.
func Collect(t Tokenizer, line string) []Token {
	var tokens []Token
	for tok := range t.Tokenize(line) {
		tokens = append(tokens, tok)
	}
	return tokens
}
