// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package idx implements the lexicon index: reading .idx files into a frozen,
// sorted table that maps headwords to locations in the definition store.
//
// Each .idx file entry (word) comes in three parts:
//  1. The headword: a utf-8 string terminated by a null terminator ('\0').
//  2. The offset: a 32 or 64 bit integer offset of the definition in the
//     .dict file in network byte order.
//  3. The size: a 32 bit integer size of the definition in the .dict file in
//     network byte order.
//
// Entries must be sorted. The order is verified while the index is built and
// an unsorted or truncated file is rejected with ErrFormat rather than
// producing an index that silently fails to find words. Entries that share a
// headword are collapsed into a single Entry whose locations keep file order.
package idx
