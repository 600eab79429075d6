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
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Japanese is a Tokenizer that segments Japanese text, which is written
// without spaces, with a morphological analyzer.
type Japanese struct {
	t *tokenizer.Tokenizer
}

// NewJapanese returns a Japanese tokenizer using the IPA dictionary. Loading
// the dictionary is expensive; create one tokenizer and share it.
func NewJapanese() (*Japanese, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("creating Japanese tokenizer: %w", err)
	}
	return &Japanese{t: t}, nil
}

// Tokenize implements Tokenizer.Tokenize.
func (j *Japanese) Tokenize(line string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		// Byte and rune cursors into line.
		b, pos := 0, 0
		for _, kt := range j.t.Tokenize(line) {
			if kt.Surface == "" {
				continue
			}
			i := strings.Index(line[b:], kt.Surface)
			if i < 0 {
				// The analyzer does not rewrite its input.
				continue
			}
			pos += utf8.RuneCountInString(line[b : b+i])
			b += i
			n := utf8.RuneCountInString(kt.Surface)
			if IsWord(kt.Surface) {
				if !yield(Token{Surface: kt.Surface, Start: pos, End: pos + n}) {
					return
				}
			}
			b += len(kt.Surface)
			pos += n
		}
	}
}
