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

// Package analysis looks up every word of a text in a set of resources and
// collects the definitions, and the words and resources that failed, into a
// TextAnalysis.
package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ianlewis/go-glosser/tokenize"
)

// ErrNoResources indicates that an analysis was requested without any
// resource to consult.
var ErrNoResources = errors.New("no resources available")

// Source is a text to analyze.
type Source struct {
	// ID identifies the text. It is copied to the analysis unchanged.
	ID string

	// Name is an optional display name.
	Name string

	// Lines are the lines of the text without line terminators.
	Lines []string
}

// SplitLines splits text into lines at "\n", dropping a trailing "\r" from
// each line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// TextAnalysis is the result of analyzing a Source. It is not modified after
// it is returned.
type TextAnalysis struct {
	SourceID   string `json:"source_id"`
	SourceName string `json:"source_name,omitempty"`

	// LineCount is the number of lines in the source.
	LineCount int `json:"line_count"`

	// WordCount is the number of tokens in the analyzed lines.
	WordCount int `json:"word_count"`

	// Lines are the analyzed lines in order.
	Lines []*LineAnalysis `json:"lines"`

	// Resources are the ids of the resources consulted, in registration
	// order.
	Resources []string `json:"resources"`

	// Errors summarize the run.
	Errors []string `json:"errors"`
}

// LineAnalysis is the analysis of one line.
type LineAnalysis struct {
	// Number is the 1-based line number.
	Number int `json:"number"`

	Text string `json:"text"`

	// WordCount is the number of tokens in the line.
	WordCount int `json:"word_count"`

	// Words are the tokens that have at least one definition, in line
	// order.
	Words []*WordAnalysis `json:"words"`

	// Errors are the words without definitions and the failed lookups, in
	// line order.
	Errors []*WordError `json:"errors"`
}

// WordAnalysis holds the definitions of one token.
type WordAnalysis struct {
	Token tokenize.Token `json:"token"`

	// Position is the index of the token in the line.
	Position int `json:"position"`

	// Definitions hold one group per resource with a hit, in registration
	// order.
	Definitions []*WordDefinition `json:"definitions"`
}

// WordDefinition is the definitions of a word in one resource.
type WordDefinition struct {
	Word        string   `json:"word"`
	Definitions []string `json:"definitions"`
	ResourceID  string   `json:"resource_id"`
}

// ErrorKind classifies a WordError.
type ErrorKind int

const (
	// WordNotFound means no consulted resource defines the word.
	WordNotFound ErrorKind = iota + 1

	// ResourceFailure means a resource failed to look up the word.
	ResourceFailure
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case WordNotFound:
		return "word_not_found"
	case ResourceFailure:
		return "resource_failure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ErrorKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "word_not_found":
		*k = WordNotFound
	case "resource_failure":
		*k = ResourceFailure
	default:
		return fmt.Errorf("unknown error kind %q", b)
	}
	return nil
}

// WordError records a word that has no definitions or whose lookup failed.
// WordErrors are results, not failures of the analysis.
type WordError struct {
	Kind     ErrorKind `json:"kind"`
	Word     string    `json:"word"`
	Position int       `json:"position"`

	// Resources are the resources that were consulted without failure. Set
	// for WordNotFound.
	Resources []string `json:"resources,omitempty"`

	// ResourceID is the resource that failed. Set for ResourceFailure.
	ResourceID string `json:"resource_id,omitempty"`

	// Reason describes the failure. Set for ResourceFailure.
	Reason string `json:"reason,omitempty"`

	err error
}

// Error implements error.
func (e *WordError) Error() string {
	if e.Kind == ResourceFailure {
		return fmt.Sprintf("%s: %q in %q: %s", e.Kind, e.Word, e.ResourceID, e.Reason)
	}
	return fmt.Sprintf("%s: %q in %s", e.Kind, e.Word, strings.Join(e.Resources, ", "))
}

// Unwrap returns the lookup error of a ResourceFailure.
func (e *WordError) Unwrap() error {
	return e.err
}
