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

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ianlewis/go-glosser/idx"
	"github.com/ianlewis/go-glosser/syn"
)

// Entry is a headword and its definition.
type Entry struct {
	Word       string
	Definition string
}

// Synonym links Word to the first entry for Target.
type Synonym struct {
	Word   string
	Target string
}

// Dictionary describes a StarDict dictionary to write.
type Dictionary struct {
	// Name is the base file name. Defaults to "dictionary".
	Name string

	// BookName defaults to Name.
	BookName string

	// Entries are sorted byte-wise before writing. Definitions are stored
	// with sametypesequence=m.
	Entries []Entry

	Synonyms []Synonym

	// DictZip compresses the .dict file. ChunkLen selects the dictzip chunk
	// length. Zero uses the dictzip writer's default.
	DictZip  bool
	ChunkLen int

	// OffsetBits defaults to 32.
	OffsetBits int

	// ExtraIfo is appended to the .ifo file.
	ExtraIfo string
}

// WriteStardict writes the dictionary to dir and returns the path of its .ifo
// file.
func WriteStardict(t *testing.T, dir string, d *Dictionary) string {
	t.Helper()

	name := d.Name
	if name == "" {
		name = "dictionary"
	}
	bookname := d.BookName
	if bookname == "" {
		bookname = name
	}
	offsetBits := d.OffsetBits
	if offsetBits == 0 {
		offsetBits = 32
	}

	entries := slices.Clone(d.Entries)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Word, b.Word)
	})

	var data []byte
	words := make([]*idx.Word, 0, len(entries))
	for _, e := range entries {
		words = append(words, &idx.Word{
			Word:   e.Word,
			Offset: uint64(len(data)),
			Size:   uint32(len(e.Definition)),
		})
		data = append(data, e.Definition...)
	}

	var syns []*syn.Word
	for _, s := range d.Synonyms {
		i := slices.IndexFunc(entries, func(e Entry) bool { return e.Word == s.Target })
		if i < 0 {
			t.Fatalf("synonym %q: no entry for %q", s.Word, s.Target)
		}
		syns = append(syns, &syn.Word{Word: s.Word, OriginalWordIndex: uint32(i)})
	}
	slices.SortStableFunc(syns, func(a, b *syn.Word) int {
		return strings.Compare(a.Word, b.Word)
	})

	index := MakeIndex(words, offsetBits)

	var ifo strings.Builder
	fmt.Fprintln(&ifo, "StarDict's dict ifo file")
	fmt.Fprintln(&ifo, "version=3.0.0")
	fmt.Fprintf(&ifo, "bookname=%s\n", bookname)
	fmt.Fprintf(&ifo, "wordcount=%d\n", len(words))
	fmt.Fprintf(&ifo, "idxfilesize=%d\n", len(index))
	fmt.Fprintf(&ifo, "idxoffsetbits=%d\n", offsetBits)
	fmt.Fprintln(&ifo, "sametypesequence=m")
	if len(syns) > 0 {
		fmt.Fprintf(&ifo, "synwordcount=%d\n", len(syns))
	}
	ifo.WriteString(d.ExtraIfo)

	dictExt := ".dict"
	if d.DictZip {
		dictExt = ".dict.dz"
		if d.ChunkLen > 0 {
			data = MakeChunked(t, data, d.ChunkLen, name+".dict")
		} else {
			data = MakeDictzip(t, data)
		}
	}

	base := filepath.Join(dir, name)
	files := map[string][]byte{
		base + ".ifo":  []byte(ifo.String()),
		base + ".idx":  index,
		base + dictExt: data,
	}
	if len(syns) > 0 {
		files[base+".syn"] = MakeSyn(syns)
	}
	for path, b := range files {
		if err := os.WriteFile(path, b, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	return base + ".ifo"
}
