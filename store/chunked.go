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

package store

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ianlewis/go-dictzip"
	"github.com/klauspost/compress/flate"
)

const (
	// trailerSize is the size of the gzip CRC-32 and ISIZE trailer.
	trailerSize = 8

	// verifyCheckEvery is how many chunks are inflated between context
	// checks during verification.
	verifyCheckEvery = 64
)

// ChunkedOptions are options for a Chunked store.
type ChunkedOptions struct {
	// CacheChunks is the number of inflated chunks kept in an LRU cache. Zero
	// disables caching.
	CacheChunks int

	// Verify inflates every chunk when the store is opened and checks the
	// CRC-32 and size recorded in the gzip trailer.
	Verify bool
}

// DefaultChunkedOptions is the default options for a Chunked store.
var DefaultChunkedOptions = &ChunkedOptions{
	CacheChunks: 16,
}

// Chunked is a store over a dictzip container. A dictzip container is a gzip
// member whose deflate stream is flushed at fixed intervals of uncompressed
// data. The "RA" extra field of the gzip header records the uncompressed chunk
// length and the compressed size of every chunk, which allows any chunk to be
// inflated on its own.
type Chunked struct {
	r      io.ReaderAt
	closer io.Closer

	chunkLen int

	// offsets[i] is the position of chunk i in the container. The final
	// element is the end of the last chunk.
	offsets []int64

	size uint64
	crc  uint32

	// cache holds inflated chunks. It is nil when caching is disabled.
	cache *lru.Cache[int, []byte]
}

// NewChunked parses the dictzip header and trailer of the container in r,
// which is size bytes long. If r implements io.Closer it is closed by Close.
func NewChunked(ctx context.Context, r io.ReaderAt, size int64, options *ChunkedOptions) (*Chunked, error) {
	if options == nil {
		options = DefaultChunkedOptions
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunkLen, sizes, dataOffset, err := readHeader(r, size)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := &Chunked{
		r:        r,
		chunkLen: chunkLen,
		offsets:  make([]int64, len(sizes)+1),
	}
	if closer, ok := r.(io.Closer); ok {
		c.closer = closer
	}

	c.offsets[0] = dataOffset
	for i, s := range sizes {
		if s == 0 {
			return nil, fmt.Errorf("%w: chunk %d has zero compressed size", ErrCorruptData, i)
		}
		c.offsets[i+1] = c.offsets[i] + int64(s)
	}
	if end := c.offsets[len(sizes)]; end+trailerSize > size {
		return nil, fmt.Errorf("%w: truncated stream: chunks end at %d, container is %d bytes", ErrCorruptData, end, size)
	}

	var trailer [trailerSize]byte
	if err := readAt(r, trailer[:], size-trailerSize); err != nil {
		return nil, fmt.Errorf("%w: reading trailer: %w", ErrCorruptData, err)
	}
	c.crc = binary.LittleEndian.Uint32(trailer[:4])
	c.size = uint64(binary.LittleEndian.Uint32(trailer[4:]))

	// The chunk table bounds the uncompressed size to at most 65535 chunks of
	// at most 65535 bytes, which is always below 2^32, so ISIZE is exact.
	n := uint64(len(sizes))
	cl := uint64(chunkLen)
	switch {
	case n == 0 && c.size != 0:
		return nil, fmt.Errorf("%w: empty chunk table for %d bytes", ErrCorruptData, c.size)
	case n > 0 && (c.size <= (n-1)*cl || c.size > n*cl):
		return nil, fmt.Errorf("%w: %d chunks of %d bytes cannot hold %d bytes", ErrCorruptData, n, cl, c.size)
	}

	if options.CacheChunks > 0 {
		// lru.New only fails for a non-positive size.
		c.cache, _ = lru.New[int, []byte](options.CacheChunks)
	}

	if options.Verify {
		if err := c.Verify(ctx); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// readHeader parses the dictzip header and returns the chunk length, the
// compressed chunk sizes and the offset of the first chunk.
func readHeader(r io.ReaderAt, size int64) (int, []int, int64, error) {
	sr := io.NewSectionReader(r, 0, size)
	z, err := dictzip.NewReader(sr)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	defer func() { _ = z.Close() }()

	// The header is read unbuffered so sr is left at the first chunk.
	dataOffset, err := sr.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}

	chunkLen := z.ChunkSize()
	if chunkLen == 0 {
		return 0, nil, 0, fmt.Errorf("%w: zero chunk length", ErrCorruptData)
	}
	return chunkLen, z.Sizes(), dataOffset, nil
}

// Fetch implements Store.Fetch. Only the chunks covering the range are
// inflated. If any of them cannot be inflated the whole fetch fails.
func (c *Chunked) Fetch(offset uint64, size uint32) ([]byte, error) {
	if err := checkRange(offset, size, c.size); err != nil {
		return nil, err
	}
	if size == 0 {
		return []byte{}, nil
	}

	cl := uint64(c.chunkLen)
	end := offset + uint64(size)
	first := int(offset / cl)
	last := int((end - 1) / cl)

	out := make([]byte, 0, size)
	for i := first; i <= last; i++ {
		b, err := c.chunk(i)
		if err != nil {
			return nil, fmt.Errorf("fetching [%d, %d): %w", offset, end, err)
		}
		start := uint64(i) * cl
		lo := max(offset, start) - start
		hi := min(end, start+uint64(len(b))) - start
		out = append(out, b[lo:hi]...)
	}
	return out, nil
}

// Size implements Store.Size.
func (c *Chunked) Size() uint64 {
	return c.size
}

// ChunkLen returns the uncompressed length of every chunk but the last.
func (c *Chunked) ChunkLen() int {
	return c.chunkLen
}

// Chunks returns the number of chunks in the container.
func (c *Chunked) Chunks() int {
	return len(c.offsets) - 1
}

// Verify inflates every chunk and compares the CRC-32 and size of the result
// with the gzip trailer.
func (c *Chunked) Verify(ctx context.Context) error {
	h := crc32.NewIEEE()
	var n uint64
	for i := range c.Chunks() {
		if i%verifyCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		b, err := c.inflate(i)
		if err != nil {
			return err
		}
		_, _ = h.Write(b)
		n += uint64(len(b))
	}
	if n != c.size {
		return fmt.Errorf("%w: size mismatch: inflated %d bytes, trailer records %d", ErrCorruptData, n, c.size)
	}
	if sum := h.Sum32(); sum != c.crc {
		return fmt.Errorf("%w: checksum mismatch: %08x != %08x", ErrCorruptData, sum, c.crc)
	}
	return nil
}

// Close closes the underlying reader if it is an io.Closer.
func (c *Chunked) Close() error {
	if c.closer == nil {
		return nil
	}
	if err := c.closer.Close(); err != nil {
		return fmt.Errorf("closing dictzip container: %w", err)
	}
	return nil
}

// chunk returns the inflated chunk i, consulting the cache first. Cached
// chunks are shared and never modified.
func (c *Chunked) chunk(i int) ([]byte, error) {
	if c.cache != nil {
		if b, ok := c.cache.Get(i); ok {
			return b, nil
		}
	}
	b, err := c.inflate(i)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Add(i, b)
	}
	return b, nil
}

// chunkSize returns the uncompressed size of chunk i.
func (c *Chunked) chunkSize(i int) int {
	if i == c.Chunks()-1 {
		return int(c.size - uint64(i)*uint64(c.chunkLen))
	}
	return c.chunkLen
}

// inflate reads and inflates chunk i.
func (c *Chunked) inflate(i int) ([]byte, error) {
	comp := make([]byte, c.offsets[i+1]-c.offsets[i])
	if err := readAt(c.r, comp, c.offsets[i]); err != nil {
		return nil, fmt.Errorf("%w: reading chunk %d: %w", ErrCorruptData, i, err)
	}

	fr := flate.NewReader(bytes.NewReader(comp))
	defer fr.Close()

	out := make([]byte, c.chunkSize(i))
	if _, err := io.ReadFull(fr, out); err != nil {
		return nil, fmt.Errorf("%w: inflating chunk %d: %w", ErrCorruptData, i, err)
	}
	var extra [1]byte
	if n, _ := fr.Read(extra[:]); n > 0 {
		return nil, fmt.Errorf("%w: chunk %d inflates past %d bytes", ErrCorruptData, i, len(out))
	}
	return out, nil
}

// readAt fills b from r at off. A short read at the end of r is an error.
func readAt(r io.ReaderAt, b []byte, off int64) error {
	n, err := r.ReadAt(b, off)
	if n == len(b) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return err
}
