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

package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-glosser"
	"github.com/ianlewis/go-glosser/tokenize"
)

// maxSummaryWords is the number of words listed in the run summary.
const maxSummaryWords = 10

// Options are options for an Analyzer.
type Options struct {
	// Workers is the number of lines analyzed in parallel. Values less than
	// one use GOMAXPROCS.
	Workers int

	// ParallelResources looks up each token in all resources concurrently.
	ParallelResources bool

	// Tokenizer splits lines into tokens. Nil uses tokenize.Unicode.
	Tokenizer tokenize.Tokenizer

	// Logger receives progress and failure events. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultOptions are the default Analyzer options.
var DefaultOptions = &Options{
	ParallelResources: true,
}

// Analyzer analyzes texts against the resources of a catalogue. An Analyzer
// is safe for concurrent use; it only reads the catalogue.
type Analyzer struct {
	catalogue *glosser.Catalogue
	workers   int
	parallel  bool
	tokenizer tokenize.Tokenizer
	logger    *slog.Logger
}

// New returns an Analyzer reading resources from c.
func New(c *glosser.Catalogue, options *Options) *Analyzer {
	if options == nil {
		options = DefaultOptions
	}

	a := &Analyzer{
		catalogue: c,
		workers:   options.Workers,
		parallel:  options.ParallelResources,
		tokenizer: options.Tokenizer,
		logger:    options.Logger,
	}
	if a.workers < 1 {
		a.workers = runtime.GOMAXPROCS(0)
	}
	if a.tokenizer == nil {
		a.tokenizer = tokenize.Unicode{}
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Analyze looks up every token of src in the resources named by ids.
// Unknown ids fail with glosser.ErrNotFound and an empty id set fails with
// ErrNoResources before any line is analyzed. Missing words and failed
// lookups are recorded in the analysis rather than returned.
//
// Lines are analyzed concurrently. If ctx is done before every line is
// analyzed, Analyze returns the lines completed so far along with the
// context's error.
func (a *Analyzer) Analyze(ctx context.Context, src Source, ids []string) (*TextAnalysis, error) {
	if len(ids) == 0 {
		return nil, ErrNoResources
	}
	handles, err := a.catalogue.Resolve(ids)
	if err != nil {
		return nil, fmt.Errorf("resolving resources: %w", err)
	}
	if len(handles) == 0 {
		return nil, ErrNoResources
	}

	start := time.Now()
	logger := a.logger.With("source", src.ID)
	logger.InfoContext(ctx, "analyzing text", "lines", len(src.Lines), "resources", len(handles))

	lines := make([]*LineAnalysis, len(src.Lines))
	var g errgroup.Group
	g.SetLimit(a.workers)
	for i, text := range src.Lines {
		// Lines are not started once ctx is done.
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			line, err := a.analyzeLine(ctx, handles, i+1, text)
			if err != nil {
				// Abandoned; the line is incomplete.
				return nil
			}
			lines[i] = line
			logger.DebugContext(ctx, "analyzed line", "line", i+1, "words", len(line.Words), "errors", len(line.Errors))
			return nil
		})
	}
	_ = g.Wait()

	ta := &TextAnalysis{
		SourceID:   src.ID,
		SourceName: src.Name,
		LineCount:  len(src.Lines),
		Lines:      []*LineAnalysis{},
		Resources:  make([]string, 0, len(handles)),
		Errors:     []string{},
	}
	for _, h := range handles {
		ta.Resources = append(ta.Resources, h.Descriptor.ID)
	}
	for _, line := range lines {
		if line == nil {
			continue
		}
		ta.Lines = append(ta.Lines, line)
		ta.WordCount += line.WordCount
	}
	ta.Errors = summarize(ta)

	if err := ctx.Err(); err != nil {
		logger.WarnContext(ctx, "analysis canceled",
			"completed", len(ta.Lines),
			"lines", len(src.Lines),
			"error", err,
		)
		return ta, err
	}

	logger.InfoContext(ctx, "analyzed text",
		"lines", ta.LineCount,
		"words", ta.WordCount,
		"errors", len(ta.Errors),
		"duration", time.Since(start),
	)
	return ta, nil
}

// lookupResult is the answer of one resource for one token.
type lookupResult struct {
	defs []string
	err  error
}

// analyzeLine analyzes one line. It fails only when ctx is done.
func (a *Analyzer) analyzeLine(ctx context.Context, handles []glosser.Handle, number int, text string) (*LineAnalysis, error) {
	line := &LineAnalysis{
		Number: number,
		Text:   text,
		Words:  []*WordAnalysis{},
		Errors: []*WordError{},
	}

	pos := 0
	for tok := range a.tokenizer.Tokenize(text) {
		results, err := a.lookup(ctx, handles, tok.Surface)
		if err != nil {
			return nil, err
		}

		w := &WordAnalysis{
			Token:    tok,
			Position: pos,
		}
		var tried []string
		var failures []*WordError
		for i, r := range results {
			id := handles[i].Descriptor.ID
			if r.err != nil {
				failures = append(failures, &WordError{
					Kind:       ResourceFailure,
					Word:       tok.Surface,
					Position:   pos,
					ResourceID: id,
					Reason:     r.err.Error(),
					err:        r.err,
				})
				a.logger.WarnContext(ctx, "lookup failed",
					"resource", id,
					"word", tok.Surface,
					"line", number,
					"error", r.err,
				)
				continue
			}
			tried = append(tried, id)
			if len(r.defs) > 0 {
				w.Definitions = append(w.Definitions, &WordDefinition{
					Word:        tok.Surface,
					Definitions: r.defs,
					ResourceID:  id,
				})
			}
		}

		switch {
		case len(w.Definitions) > 0:
			line.Words = append(line.Words, w)
		case len(tried) > 0:
			line.Errors = append(line.Errors, &WordError{
				Kind:      WordNotFound,
				Word:      tok.Surface,
				Position:  pos,
				Resources: tried,
			})
		}
		line.Errors = append(line.Errors, failures...)
		pos++
	}
	line.WordCount = pos
	return line, nil
}

// lookup looks up word in every resource. Results are in handle order. It
// fails only when ctx is done.
func (a *Analyzer) lookup(ctx context.Context, handles []glosser.Handle, word string) ([]lookupResult, error) {
	results := make([]lookupResult, len(handles))
	if a.parallel && len(handles) > 1 {
		var g errgroup.Group
		for i, h := range handles {
			g.Go(func() error {
				defs, err := h.Resource.Lookup(ctx, word)
				results[i] = lookupResult{defs: defs, err: err}
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, h := range handles {
			defs, err := h.Resource.Lookup(ctx, word)
			results[i] = lookupResult{defs: defs, err: err}
		}
	}

	if err := ctx.Err(); err != nil {
		for _, r := range results {
			if errors.Is(r.err, err) {
				return nil, err
			}
		}
	}
	return results, nil
}

// summarize returns the run level errors: the unique words without
// definitions and the number of failed lookups per resource.
func summarize(ta *TextAnalysis) []string {
	notFound := map[string]bool{}
	failures := map[string]int{}
	for _, line := range ta.Lines {
		for _, e := range line.Errors {
			switch e.Kind {
			case WordNotFound:
				notFound[e.Word] = true
			case ResourceFailure:
				failures[e.ResourceID]++
			}
		}
	}

	errs := []string{}
	if len(notFound) > 0 {
		words := make([]string, 0, len(notFound))
		for w := range notFound {
			words = append(words, w)
		}
		slices.Sort(words)
		more := ""
		if len(words) > maxSummaryWords {
			words = words[:maxSummaryWords]
			more = "..."
		}
		errs = append(errs, fmt.Sprintf("no definitions found for %d unique words: %s%s",
			len(notFound), strings.Join(words, ", "), more))
	}
	for _, id := range ta.Resources {
		if n := failures[id]; n > 0 {
			errs = append(errs, fmt.Sprintf("resource %q failed %d lookups", id, n))
		}
	}
	return errs
}

