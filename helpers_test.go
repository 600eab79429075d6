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

package glosser_test

import (
	"encoding/binary"
	"os"
	"strings"
	"testing"
)

// rewrite replaces old with new in the file at path.
func rewrite(t *testing.T, path, old, new string) {
	t.Helper()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), old) {
		t.Fatalf("%s does not contain %q", path, old)
	}
	if err := os.WriteFile(path, []byte(replaceLine(string(b), old, new)), 0o600); err != nil {
		t.Fatal(err)
	}
}

func replaceLine(s, old, new string) string {
	return strings.Replace(s, old, new, 1)
}

// corruptFirstChunk overwrites the first deflate block header of a dictzip
// container with an invalid block type.
func corruptFirstChunk(t *testing.T, path string) {
	t.Helper()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Header, XLEN and the extra field, then the optional file name.
	pos := 12 + int(binary.LittleEndian.Uint16(b[10:12]))
	if b[3]&(1<<3) != 0 {
		for b[pos] != 0 {
			pos++
		}
		pos++
	}
	b[pos] = 0xff
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
}
