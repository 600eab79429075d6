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

// Package store implements the block stores that hold dictionary definition
// bytes. A store is either a flat byte region or a dictzip container whose
// chunks can be inflated independently, so that any byte range can be read
// without inflating the whole container.
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptData indicates that a container is malformed, truncated or
	// fails its checksum.
	ErrCorruptData = errors.New("corrupt data")

	// ErrRange indicates a fetch beyond the end of the store. A range error
	// always means the index and the store disagree, so every ErrRange error
	// also matches ErrCorruptData.
	ErrRange = errors.New("range out of bounds")
)

// Store is a read-only region of definition bytes. Implementations are safe
// for concurrent use.
type Store interface {
	// Fetch returns size bytes starting at offset. The returned slice must
	// not be modified.
	Fetch(offset uint64, size uint32) ([]byte, error)

	// Size returns the number of bytes in the store.
	Size() uint64
}

// checkRange returns a range error if [offset, offset+size) does not lie
// within a store of the given total size.
func checkRange(offset uint64, size uint32, total uint64) error {
	if offset <= total && uint64(size) <= total-offset {
		return nil
	}
	err := fmt.Errorf("%w: %w: offset %d size %d, store size %d", ErrCorruptData, ErrRange, offset, size, total)
	if assertRanges {
		panic(err)
	}
	return err
}
