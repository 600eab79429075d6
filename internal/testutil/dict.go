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
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"
	"github.com/klauspost/compress/flate"

	"github.com/ianlewis/go-glosser/dict"
)

// MakeDict creates a test .dict file. When sametypesequence is given, the
// type bytes are omitted and the last item of each word carries neither a
// terminator nor a size.
func MakeDict(t *testing.T, words []*dict.Word, sametypesequence []dict.DataType) []byte {
	t.Helper()

	b := []byte{}
	for _, w := range words {
		for i, d := range w.Data {
			last := i == len(w.Data)-1
			if len(sametypesequence) == 0 {
				b = append(b, byte(d.Type))
			} else if last {
				b = append(b, d.Data...)
				continue
			}

			if 'a' <= d.Type && d.Type <= 'z' {
				// Data is a string like sequence.
				b = append(b, d.Data...)
				b = append(b, 0)
			} else {
				// Data is a file like sequence.
				if len(d.Data) > math.MaxUint32 {
					t.Fatalf("word data too long: %d", len(d.Data))
				}
				b = binary.BigEndian.AppendUint32(b, uint32(len(d.Data)))
				b = append(b, d.Data...)
			}
		}
	}

	return b
}

// MakeDictzip compresses data with the dictzip writer.
func MakeDictzip(t *testing.T, data []byte) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.dict.dz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// MakeChunked builds a dictzip container with the given uncompressed chunk
// length. If name is not empty it is stored in the gzip header.
func MakeChunked(t *testing.T, data []byte, chunkLen int, name string) []byte {
	t.Helper()

	if chunkLen <= 0 || chunkLen > math.MaxUint16 {
		t.Fatalf("invalid chunk length: %d", chunkLen)
	}

	var chunks [][]byte
	for off := 0; off < len(data); off += chunkLen {
		end := min(off+chunkLen, len(data))

		var buf bytes.Buffer
		fw, err := flate.NewWriter(&buf, flate.BestCompression)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(data[off:end]); err != nil {
			t.Fatal(err)
		}
		// Every chunk but the last ends on a sync flush.
		if end == len(data) {
			err = fw.Close()
		} else {
			err = fw.Flush()
		}
		if err != nil {
			t.Fatal(err)
		}
		if buf.Len() > math.MaxUint16 {
			t.Fatalf("compressed chunk too large: %d", buf.Len())
		}
		chunks = append(chunks, buf.Bytes())
	}

	flags := byte(1 << 2)
	if name != "" {
		flags |= 1 << 3
	}

	b := []byte{0x1f, 0x8b, 8, flags, 0, 0, 0, 0, 2, 0xff}

	ra := []byte{'R', 'A'}
	ra = binary.LittleEndian.AppendUint16(ra, uint16(6+2*len(chunks)))
	ra = binary.LittleEndian.AppendUint16(ra, 1)
	ra = binary.LittleEndian.AppendUint16(ra, uint16(chunkLen))
	ra = binary.LittleEndian.AppendUint16(ra, uint16(len(chunks)))
	for _, c := range chunks {
		ra = binary.LittleEndian.AppendUint16(ra, uint16(len(c)))
	}
	b = binary.LittleEndian.AppendUint16(b, uint16(len(ra)))
	b = append(b, ra...)

	if name != "" {
		b = append(b, name...)
		b = append(b, 0)
	}
	for _, c := range chunks {
		b = append(b, c...)
	}
	b = binary.LittleEndian.AppendUint32(b, crc32.ChecksumIEEE(data))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(data)))
	return b
}
