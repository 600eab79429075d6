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

package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// WhitespaceFolder trims leading and trailing whitespace and collapses every
// internal whitespace span into a single ASCII space. Headwords in some
// dictionaries carry stray tabs or ideographic spaces; folding them lets a
// query match regardless of how the span was written.
type WhitespaceFolder struct {
	// seenText is set once the first non-whitespace rune has been emitted.
	seenText bool

	// pending is set while inside a whitespace span that follows text.
	pending bool
}

// Transform implements [transform.Transformer.Transform].
func (w *WhitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && !atEOF {
			// Possibly a rune split across buffers.
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(r) {
			nSrc += size
			if w.seenText {
				w.pending = true
			}
			continue
		}

		if w.pending {
			if nDst+1 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = ' '
			nDst++
			w.pending = false
		}

		// utf8.RuneError is re-encoded at its full width so size cannot be
		// used here.
		if nDst+utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		w.seenText = true
		nSrc += size
		nDst += utf8.EncodeRune(dst[nDst:], r)
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *WhitespaceFolder) Reset() {
	*w = WhitespaceFolder{}
}
