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

// Package procedural provides resources whose definitions are computed from
// the word itself.
package procedural

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ianlewis/go-glosser"
)

var (
	// ErrUnknownProcedure indicates that a procedure name is not recognized.
	ErrUnknownProcedure = errors.New("unknown procedure")

	// ErrNoDataFile indicates that a data file was given to a procedure that
	// does not read one.
	ErrNoDataFile = errors.New("procedure takes no data file")
)

// Procedure names accepted by Builtin.
const (
	CharInfoName = "charinfo"
	JapaneseName = "japanese"
)

// aliases maps alternate names to procedure names.
var aliases = map[string]string{
	"hanzi":   CharInfoName,
	"hanzipy": CharInfoName,
	"hangul":  CharInfoName,
	"kagome":  JapaneseName,
}

// Builtin returns the procedure with the given name using its embedded data.
func Builtin(name string) (glosser.ProceduralFunc, error) {
	return Load(name, "")
}

// Load returns the procedure with the given name. If path is not empty it
// names the data file of the procedure. Only charinfo reads one: an
// ideographic description table in the format read by ParseIDS.
func Load(name, path string) (glosser.ProceduralFunc, error) {
	n := Canonical(name)
	switch n {
	case CharInfoName:
		var ids *IDS
		if path != "" {
			var err error
			if ids, err = LoadIDS(path); err != nil {
				return nil, err
			}
		}
		return NewCharInfo(ids).Define, nil
	case JapaneseName:
		if path != "" {
			return nil, fmt.Errorf("%w: %q", ErrNoDataFile, name)
		}
		return NewJapanese().Define, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProcedure, name)
	}
}

// Canonical returns the procedure name that name refers to, resolving
// aliases. Unknown names are returned normalized but otherwise unchanged.
func Canonical(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if a, ok := aliases[n]; ok {
		return a
	}
	return n
}

// Names returns the names accepted by Builtin, sorted.
func Names() []string {
	names := []string{CharInfoName, JapaneseName}
	for a := range aliases {
		names = append(names, a)
	}
	slices.Sort(names)
	return names
}
