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
	"sync"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Japanese describes the morphemes of Japanese words: reading, part of
// speech and base form. The dictionary is loaded on first use.
type Japanese struct {
	tokenizer func() (*tokenizer.Tokenizer, error)
}

// NewJapanese returns a Japanese procedure.
func NewJapanese() *Japanese {
	return &Japanese{
		tokenizer: sync.OnceValues(func() (*tokenizer.Tokenizer, error) {
			return tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
		}),
	}
}

// Define returns one definition per known morpheme of word. Words the
// dictionary does not know have no definitions.
func (j *Japanese) Define(word string) []string {
	t, err := j.tokenizer()
	if err != nil {
		return nil
	}

	var defs []string
	for _, tok := range t.Tokenize(word) {
		if tok.Class != tokenizer.KNOWN {
			continue
		}
		var b strings.Builder
		b.WriteString(tok.Surface)
		if reading, ok := tok.Reading(); ok && reading != "*" {
			fmt.Fprintf(&b, " 【%s】", reading)
		}
		if pos := partOfSpeech(tok.POS()); pos != "" {
			fmt.Fprintf(&b, " %s", pos)
		}
		if base, ok := tok.BaseForm(); ok && base != "*" && base != tok.Surface {
			fmt.Fprintf(&b, " (base form: %s)", base)
		}
		defs = append(defs, b.String())
	}
	return defs
}

func partOfSpeech(features []string) string {
	var pos []string
	for _, f := range features {
		if f != "" && f != "*" {
			pos = append(pos, f)
		}
	}
	return strings.Join(pos, "-")
}
