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

package glosser

import (
	"errors"

	"github.com/ianlewis/go-glosser/idx"
	"github.com/ianlewis/go-glosser/store"
)

var (
	// ErrFormat indicates malformed dictionary metadata or index data. A
	// resource that fails with ErrFormat cannot be loaded.
	ErrFormat = idx.ErrFormat

	// ErrCorruptData indicates that definition data could not be read
	// because its container is corrupt.
	ErrCorruptData = store.ErrCorruptData

	// ErrNotFound indicates an unknown resource identifier.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateID indicates that a resource identifier is already
	// registered.
	ErrDuplicateID = errors.New("duplicate resource id")

	// ErrInvalidLanguage indicates a malformed language code.
	ErrInvalidLanguage = errors.New("invalid language code")
)
