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

// Package folding provides transformers that fold index keys and queries
// into a canonical form. Folding never changes case or removes combining
// marks; headwords stay diacritic sensitive.
package folding

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownFolder indicates that a folder name is not recognized.
var ErrUnknownFolder = errors.New("unknown folder")

// Named folder names.
const (
	// None performs no folding. Keys must match byte for byte.
	None = "none"

	// Whitespace trims and collapses whitespace.
	Whitespace = "whitespace"

	// NFC normalizes to Unicode Normalization Form C.
	NFC = "nfc"

	// NFCWhitespace applies NFC followed by whitespace folding.
	NFCWhitespace = "nfc+whitespace"
)

// ByName returns a folder constructor for the given name. An empty name or
// None returns nil, meaning no folding is performed.
func ByName(name string) (func() transform.Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", None:
		return nil, nil
	case Whitespace:
		return func() transform.Transformer {
			return &WhitespaceFolder{}
		}, nil
	case NFC:
		return func() transform.Transformer {
			return norm.NFC
		}, nil
	case NFCWhitespace:
		return func() transform.Transformer {
			return transform.Chain(norm.NFC, &WhitespaceFolder{})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFolder, name)
	}
}
