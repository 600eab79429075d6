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

package analysis_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/ianlewis/go-glosser"
	"github.com/ianlewis/go-glosser/analysis"
	"github.com/ianlewis/go-glosser/dict"
	"github.com/ianlewis/go-glosser/idx"
	"github.com/ianlewis/go-glosser/internal/testutil"
	"github.com/ianlewis/go-glosser/store"
	"github.com/ianlewis/go-glosser/tokenize"
)

// mapResource answers lookups from a map.
type mapResource map[string][]string

func (r mapResource) Lookup(ctx context.Context, word string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r[word], nil
}

// brokenResource fails every lookup with corrupt data.
type brokenResource struct{}

func (brokenResource) Lookup(context.Context, string) ([]string, error) {
	return nil, fmt.Errorf("%w: checksum mismatch", glosser.ErrCorruptData)
}

// slowResource delays each lookup.
type slowResource struct {
	mapResource
	delay time.Duration
}

func (r slowResource) Lookup(ctx context.Context, word string) ([]string, error) {
	time.Sleep(r.delay)
	return r.mapResource.Lookup(ctx, word)
}

// cancelingResource cancels the run when it sees a word.
type cancelingResource struct {
	mapResource
	word   string
	cancel context.CancelFunc
}

func (r cancelingResource) Lookup(ctx context.Context, word string) ([]string, error) {
	if word == r.word {
		r.cancel()
		return nil, ctx.Err()
	}
	return r.mapResource.Lookup(ctx, word)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCatalogue(t *testing.T, resources ...any) *glosser.Catalogue {
	t.Helper()

	c := glosser.NewCatalogue()
	for i := 0; i < len(resources); i += 2 {
		id := resources[i].(string)
		r := resources[i+1].(glosser.Resource)
		err := c.Register(glosser.Descriptor{
			ID:       id,
			Name:     id,
			Language: glosser.MustParseLanguageCode("sa"),
		}, r)
		require.NoError(t, err)
	}
	return c
}

func newAnalyzer(c *glosser.Catalogue, workers int) *analysis.Analyzer {
	return analysis.New(c, &analysis.Options{
		Workers:           workers,
		ParallelResources: true,
		Logger:            testLogger(),
	})
}

var ignoreUnexported = cmpopts.IgnoreUnexported(analysis.WordError{})

// TestAnalyze tests a line with defined and undefined words.
func TestAnalyze(t *testing.T) {
	t.Parallel()

	c := newCatalogue(t, "mw", mapResource{
		"karma":  {"action"},
		"dharma": {"duty"},
	})

	got, err := newAnalyzer(c, 2).Analyze(context.Background(), analysis.Source{
		ID:    "src",
		Lines: []string{"karma is dharma"},
	}, []string{"mw"})
	require.NoError(t, err)

	want := &analysis.TextAnalysis{
		SourceID:  "src",
		LineCount: 1,
		WordCount: 3,
		Resources: []string{"mw"},
		Lines: []*analysis.LineAnalysis{
			{
				Number:    1,
				Text:      "karma is dharma",
				WordCount: 3,
				Words: []*analysis.WordAnalysis{
					{
						Token:    tokenize.Token{Surface: "karma", Start: 0, End: 5},
						Position: 0,
						Definitions: []*analysis.WordDefinition{
							{Word: "karma", Definitions: []string{"action"}, ResourceID: "mw"},
						},
					},
					{
						Token:    tokenize.Token{Surface: "dharma", Start: 9, End: 15},
						Position: 2,
						Definitions: []*analysis.WordDefinition{
							{Word: "dharma", Definitions: []string{"duty"}, ResourceID: "mw"},
						},
					},
				},
				Errors: []*analysis.WordError{
					{
						Kind:      analysis.WordNotFound,
						Word:      "is",
						Position:  1,
						Resources: []string{"mw"},
					},
				},
			},
		},
		Errors: []string{"no definitions found for 1 unique words: is"},
	}
	if diff := cmp.Diff(want, got, ignoreUnexported); diff != "" {
		t.Fatalf("Analyze (-want, +got):\n%s", diff)
	}
}

// TestAnalyze_emptyLine tests that empty lines have no words and no errors.
func TestAnalyze_emptyLine(t *testing.T) {
	t.Parallel()

	c := newCatalogue(t, "mw", mapResource{"karma": {"action"}})

	got, err := newAnalyzer(c, 1).Analyze(context.Background(), analysis.Source{
		Lines: []string{"", "  ,;  "},
	}, []string{"mw"})
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)
	for _, line := range got.Lines {
		require.Empty(t, line.Words)
		require.Empty(t, line.Errors)
		require.Zero(t, line.WordCount)
	}
	require.Empty(t, got.Errors)
}

// TestAnalyze_notFoundOnce tests that a word absent from every resource is
// reported once.
func TestAnalyze_notFoundOnce(t *testing.T) {
	t.Parallel()

	c := newCatalogue(t,
		"mw", mapResource{"karma": {"action"}},
		"apte", mapResource{"dharma": {"law"}},
		"bohtlingk", mapResource{},
	)

	got, err := newAnalyzer(c, 1).Analyze(context.Background(), analysis.Source{
		Lines: []string{"yoga"},
	}, []string{"mw", "apte", "bohtlingk"})
	require.NoError(t, err)

	want := []*analysis.WordError{
		{
			Kind:      analysis.WordNotFound,
			Word:      "yoga",
			Position:  0,
			Resources: []string{"mw", "apte", "bohtlingk"},
		},
	}
	if diff := cmp.Diff(want, got.Lines[0].Errors, ignoreUnexported); diff != "" {
		t.Fatalf("Errors (-want, +got):\n%s", diff)
	}
}

// TestAnalyze_corruptResource tests that a failing resource does not hide the
// definitions of a healthy one.
func TestAnalyze_corruptResource(t *testing.T) {
	t.Parallel()

	c := newCatalogue(t,
		"broken", brokenResource{},
		"healthy", mapResource{"karma": {"action"}},
	)

	got, err := newAnalyzer(c, 1).Analyze(context.Background(), analysis.Source{
		Lines: []string{"karma yoga"},
	}, []string{"healthy", "broken"})
	require.NoError(t, err)

	line := got.Lines[0]
	require.Len(t, line.Words, 1)
	wantDefs := []*analysis.WordDefinition{
		{Word: "karma", Definitions: []string{"action"}, ResourceID: "healthy"},
	}
	if diff := cmp.Diff(wantDefs, line.Words[0].Definitions); diff != "" {
		t.Fatalf("Definitions (-want, +got):\n%s", diff)
	}

	var kinds []string
	for _, e := range line.Errors {
		kinds = append(kinds, fmt.Sprintf("%s %s %s", e.Kind, e.Word, e.ResourceID))
		if e.Kind == analysis.ResourceFailure {
			require.ErrorIs(t, e, glosser.ErrCorruptData)
		}
	}
	wantKinds := []string{
		"resource_failure karma broken",
		"word_not_found yoga ",
		"resource_failure yoga broken",
	}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("Errors (-want, +got):\n%s", diff)
	}
	require.Equal(t, []string{"healthy"}, line.Errors[1].Resources)

	require.Equal(t, []string{
		"no definitions found for 1 unique words: yoga",
		`resource "broken" failed 2 lookups`,
	}, got.Errors)
}

// dictzipResource builds an IndexedResource over a dictzip store holding the
// definitions back to back. If corrupt is set the first chunk is damaged.
func dictzipResource(t *testing.T, entries []testutil.Entry, chunkLen int, corrupt bool) *glosser.IndexedResource {
	t.Helper()

	var words []*idx.Word
	var data []byte
	for _, e := range entries {
		words = append(words, &idx.Word{
			Word:   e.Word,
			Offset: uint64(len(data)),
			Size:   uint32(len(e.Definition)),
		})
		data = append(data, e.Definition...)
	}
	index, err := idx.Build(words, nil)
	require.NoError(t, err)

	b := testutil.MakeChunked(t, data, chunkLen, "")
	if corrupt {
		chunks := (len(data) + chunkLen - 1) / chunkLen
		// The first deflate block header now names the reserved block type.
		b[10+2+4+6+2*chunks] = 0xff
	}
	s, err := store.NewChunked(context.Background(), bytes.NewReader(b), int64(len(b)), nil)
	require.NoError(t, err)

	d, err := dict.New(s, []dict.DataType{dict.UTFTextType})
	require.NoError(t, err)
	return glosser.NewIndexedResource(index, d, nil)
}

// TestAnalyze_corruptDictzip tests a damaged dictzip resource next to a
// healthy one.
func TestAnalyze_corruptDictzip(t *testing.T) {
	t.Parallel()

	c := newCatalogue(t,
		"mw", dictzipResource(t, []testutil.Entry{{Word: "karma", Definition: "deed"}}, 8, true),
		"apte", dictzipResource(t, []testutil.Entry{
			{Word: "dharma", Definition: "duty"},
			{Word: "karma", Definition: "action"},
		}, 4, false),
	)

	got, err := newAnalyzer(c, 1).Analyze(context.Background(), analysis.Source{
		Lines: []string{"karma yoga"},
	}, []string{"mw", "apte"})
	require.NoError(t, err)

	line := got.Lines[0]
	require.Len(t, line.Words, 1)
	wantDefs := []*analysis.WordDefinition{
		{Word: "karma", Definitions: []string{"action"}, ResourceID: "apte"},
	}
	if diff := cmp.Diff(wantDefs, line.Words[0].Definitions); diff != "" {
		t.Fatalf("Definitions (-want, +got):\n%s", diff)
	}

	want := []*analysis.WordError{
		{
			Kind:       analysis.ResourceFailure,
			Word:       "karma",
			Position:   0,
			ResourceID: "mw",
		},
		{
			Kind:      analysis.WordNotFound,
			Word:      "yoga",
			Position:  1,
			Resources: []string{"mw", "apte"},
		},
	}
	opts := cmp.Options{ignoreUnexported, cmpopts.IgnoreFields(analysis.WordError{}, "Reason")}
	if diff := cmp.Diff(want, line.Errors, opts); diff != "" {
		t.Fatalf("Errors (-want, +got):\n%s", diff)
	}
	require.ErrorIs(t, line.Errors[0], glosser.ErrCorruptData)
	require.NotEmpty(t, line.Errors[0].Reason)
}

// TestAnalyze_allResourcesFail tests a word whose every lookup failed.
func TestAnalyze_allResourcesFail(t *testing.T) {
	t.Parallel()

	c := newCatalogue(t, "broken", brokenResource{})

	got, err := newAnalyzer(c, 1).Analyze(context.Background(), analysis.Source{
		Lines: []string{"karma"},
	}, []string{"broken"})
	require.NoError(t, err)

	errs := got.Lines[0].Errors
	require.Len(t, errs, 1)
	require.Equal(t, analysis.ResourceFailure, errs[0].Kind)
	require.Equal(t, 1, got.WordCount)
}

// TestAnalyze_order tests that definitions are merged in registration order
// regardless of completion order.
func TestAnalyze_order(t *testing.T) {
	t.Parallel()

	c := newCatalogue(t,
		"slow", slowResource{mapResource: mapResource{"karma": {"slow"}}, delay: 20 * time.Millisecond},
		"fast", mapResource{"karma": {"fast"}},
	)

	got, err := newAnalyzer(c, 4).Analyze(context.Background(), analysis.Source{
		Lines: []string{"karma", "karma karma"},
	}, []string{"fast", "slow"})
	require.NoError(t, err)
	require.Equal(t, []string{"slow", "fast"}, got.Resources)

	for _, line := range got.Lines {
		for _, w := range line.Words {
			var ids []string
			for _, d := range w.Definitions {
				ids = append(ids, d.ResourceID)
			}
			require.Equal(t, []string{"slow", "fast"}, ids)
		}
	}
}

// TestAnalyze_idempotent tests that repeated runs produce identical trees.
func TestAnalyze_idempotent(t *testing.T) {
	t.Parallel()

	c := newCatalogue(t,
		"mw", mapResource{"karma": {"action", "deed"}, "dharma": {"duty"}},
		"broken", brokenResource{},
		"apte", mapResource{"dharma": {"law"}, "yoga": {"union"}},
	)
	src := analysis.Source{
		ID: "gita",
		Lines: analysis.SplitLines(strings.Join([]string{
			"karma yoga",
			"",
			"dharma, karma; bhakti!",
			"yoga\r",
			"jnana dharma yoga karma",
		}, "\n")),
	}

	a := newAnalyzer(c, 3)
	first, err := a.Analyze(context.Background(), src, []string{"mw", "broken", "apte"})
	require.NoError(t, err)
	for range 5 {
		again, err := a.Analyze(context.Background(), src, []string{"apte", "broken", "mw"})
		require.NoError(t, err)
		if diff := cmp.Diff(first, again, ignoreUnexported); diff != "" {
			t.Fatalf("Analyze (-first, +again):\n%s", diff)
		}
	}
	require.Equal(t, 5, first.LineCount)
	require.Equal(t, 10, first.WordCount)
}

// TestAnalyze_resources tests resource resolution failures.
func TestAnalyze_resources(t *testing.T) {
	t.Parallel()

	c := newCatalogue(t, "mw", mapResource{})
	a := newAnalyzer(c, 1)
	src := analysis.Source{Lines: []string{"karma"}}

	_, err := a.Analyze(context.Background(), src, nil)
	require.ErrorIs(t, err, analysis.ErrNoResources)

	_, err = a.Analyze(context.Background(), src, []string{"mw", "nope"})
	require.ErrorIs(t, err, glosser.ErrNotFound)
}

// TestAnalyze_canceled tests that a canceled run returns the completed lines.
func TestAnalyze_canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := newCatalogue(t, "mw", cancelingResource{
		mapResource: mapResource{"karma": {"action"}},
		word:        "stop",
		cancel:      cancel,
	})

	got, err := newAnalyzer(c, 1).Analyze(ctx, analysis.Source{
		Lines: []string{"karma", "stop", "karma", "karma"},
	}, []string{"mw"})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, got)
	require.Equal(t, 4, got.LineCount)
	require.Len(t, got.Lines, 1)
	require.Equal(t, 1, got.Lines[0].Number)
	require.Len(t, got.Lines[0].Words, 1)
}

// TestAnalyze_summary tests that the run summary lists at most ten words.
func TestAnalyze_summary(t *testing.T) {
	t.Parallel()

	c := newCatalogue(t, "mw", mapResource{})

	got, err := newAnalyzer(c, 2).Analyze(context.Background(), analysis.Source{
		Lines: []string{"l k j i h", "g f e d c b a", "a b"},
	}, []string{"mw"})
	require.NoError(t, err)
	require.Equal(t, []string{
		"no definitions found for 12 unique words: a, b, c, d, e, f, g, h, i, j...",
	}, got.Errors)
}

// TestAnalyze_tokenizer tests a custom tokenizer.
func TestAnalyze_tokenizer(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newCatalogue(t, "mw", mapResource{"karma is": {"phrase"}})
	a := analysis.New(c, &analysis.Options{
		Tokenizer: lineTokenizer{calls: &calls},
		Logger:    testLogger(),
	})

	got, err := a.Analyze(context.Background(), analysis.Source{
		Lines: []string{"karma is"},
	}, []string{"mw"})
	require.NoError(t, err)
	require.Len(t, got.Lines[0].Words, 1)
	require.Equal(t, int32(1), calls.Load())
}

// lineTokenizer returns the whole line as one token.
type lineTokenizer struct {
	calls *atomic.Int32
}

func (l lineTokenizer) Tokenize(line string) iter.Seq[tokenize.Token] {
	l.calls.Add(1)
	return func(yield func(tokenize.Token) bool) {
		if line != "" {
			yield(tokenize.Token{Surface: line, End: len([]rune(line))})
		}
	}
}

// TestWordError_JSON tests the JSON encoding of word errors.
func TestWordError_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(&analysis.WordError{
		Kind:     analysis.WordNotFound,
		Word:     "is",
		Position: 1,
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"word_not_found","word":"is","position":1}`, string(b))

	e := &analysis.WordError{Kind: analysis.ResourceFailure, Word: "karma", ResourceID: "mw", Reason: "boom"}
	require.Equal(t, `resource_failure: "karma" in "mw": boom`, e.Error())
	require.False(t, errors.Is(e, glosser.ErrCorruptData))
}

// TestSplitLines tests SplitLines.
func TestSplitLines(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"a", "b", "", "c"}, analysis.SplitLines("a\r\nb\n\nc"))
	require.Equal(t, []string{""}, analysis.SplitLines(""))
}
