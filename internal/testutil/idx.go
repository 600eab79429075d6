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

// Package testutil builds StarDict fixtures for tests.
package testutil

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ianlewis/go-glosser/idx"
	"github.com/ianlewis/go-glosser/syn"
)

// MakeIndex makes a test index given a list of words.
func MakeIndex(words []*idx.Word, offsetBits int) []byte {
	b := []byte{}
	for _, w := range words {
		b = append(b, []byte(w.Word)...)
		b = append(b, 0) // Add the zero byte terminator.
		switch offsetBits {
		case 32:
			if w.Offset > math.MaxUint32 {
				panic(fmt.Sprintf("word offset too large %d > %d", w.Offset, offsetBits))
			}
			b = binary.BigEndian.AppendUint32(b, uint32(w.Offset))
		case 64:
			b = binary.BigEndian.AppendUint64(b, w.Offset)
		default:
			panic(fmt.Sprintf("unsupported offset bits: %d", offsetBits))
		}
		b = binary.BigEndian.AppendUint32(b, w.Size)
	}
	return b
}

// MakeSyn makes a test .syn file given a list of synonyms.
func MakeSyn(words []*syn.Word) []byte {
	b := []byte{}
	for _, w := range words {
		b = append(b, []byte(w.Word)...)
		b = append(b, 0)
		b = binary.BigEndian.AppendUint32(b, w.OriginalWordIndex)
	}
	return b
}
