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

// Package glosser looks up dictionary definitions across a catalogue of
// lexicon resources.
//
// A resource answers exact-surface-form lookups. Two kinds of resource are
// provided:
//  1. [IndexedResource] reads a sorted word index and a store of definition
//     blobs. [Open] builds one from a StarDict dictionary, which consists of
//     an .ifo metadata file, an .idx index (optionally gzipped), a .dict
//     definition file (optionally compressed with dictzip) and an optional
//     .syn synonym file.
//  2. [ProceduralResource] computes definitions with a function.
//
// Resources are registered in a [Catalogue] together with a [Descriptor]
// and are read concurrently once registration is complete.
//
// More info on on the dictionary format can be found at this URL:
// https://github.com/huzheng001/stardict-3/blob/master/dict/doc/StarDictFileFormat
package glosser
