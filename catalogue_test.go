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
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-glosser"
)

// staticResource answers lookups from a map.
type staticResource map[string][]string

func (r staticResource) Lookup(_ context.Context, word string) ([]string, error) {
	return r[word], nil
}

// closingResource records whether it was closed.
type closingResource struct {
	staticResource
	closed bool
	err    error
}

func (r *closingResource) Close() error {
	r.closed = true
	return r.err
}

func descriptor(id, lang string, secondary ...string) glosser.Descriptor {
	d := glosser.Descriptor{
		ID:       id,
		Name:     strings.ToUpper(id),
		Language: glosser.MustParseLanguageCode(lang),
	}
	for _, l := range secondary {
		d.SecondaryLanguages = append(d.SecondaryLanguages, glosser.MustParseLanguageCode(l))
	}
	return d
}

func ids(ds []glosser.Descriptor) []string {
	var out []string
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}

func newTestCatalogue(t *testing.T) *glosser.Catalogue {
	t.Helper()

	c := glosser.NewCatalogue()
	for _, r := range []struct {
		d glosser.Descriptor
		r glosser.Resource
	}{
		{descriptor("mw", "sa", "en"), staticResource{"karma": {"action"}}},
		{descriptor("lane", "ar", "en"), staticResource{}},
		{descriptor("apte", "sa", "en-GB"), staticResource{}},
		{descriptor("hanzi", "zh", "en"), glosser.NewProceduralResource(func(string) []string { return nil })},
	} {
		if err := c.Register(r.d, r.r); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

// TestCatalogue_Register tests Catalogue.Register.
func TestCatalogue_Register(t *testing.T) {
	t.Parallel()

	c := newTestCatalogue(t)

	err := c.Register(descriptor("mw", "sa"), staticResource{})
	if !errors.Is(err, glosser.ErrDuplicateID) {
		t.Fatalf("Register duplicate: want %v, got %v", glosser.ErrDuplicateID, err)
	}
	if err := c.Register(glosser.Descriptor{ID: "nolang"}, staticResource{}); !errors.Is(err, glosser.ErrInvalidLanguage) {
		t.Fatalf("Register without language: want %v, got %v", glosser.ErrInvalidLanguage, err)
	}
	if err := c.Register(descriptor("", "sa"), staticResource{}); err == nil {
		t.Fatal("Register without id: expected failure")
	}
	if err := c.Register(descriptor("nil", "sa"), nil); err == nil {
		t.Fatal("Register nil resource: expected failure")
	}
	if got, want := c.Len(), 4; got != want {
		t.Fatalf("Len: want %d, got %d", want, got)
	}
}

// TestCatalogue_List tests Catalogue.List.
func TestCatalogue_List(t *testing.T) {
	t.Parallel()

	c := newTestCatalogue(t)

	tests := []struct {
		lang string
		want []string
	}{
		{lang: "", want: []string{"mw", "lane", "apte", "hanzi"}},
		{lang: "sa", want: []string{"mw", "apte"}},
		{lang: "ar", want: []string{"lane"}},
		{lang: "ja", want: nil},
	}
	for _, test := range tests {
		var lang glosser.LanguageCode
		if test.lang != "" {
			lang = glosser.MustParseLanguageCode(test.lang)
		}
		if diff := cmp.Diff(test.want, ids(c.List(lang))); diff != "" {
			t.Errorf("List(%q) (-want, +got):\n%s", test.lang, diff)
		}
	}
}

// TestCatalogue_Get tests Catalogue.Get and Catalogue.Descriptor.
func TestCatalogue_Get(t *testing.T) {
	t.Parallel()

	c := newTestCatalogue(t)

	r, err := c.Get("mw")
	if err != nil {
		t.Fatal(err)
	}
	defs, err := r.Lookup(context.Background(), "karma")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"action"}, defs); diff != "" {
		t.Fatalf("Lookup (-want, +got):\n%s", diff)
	}

	d, err := c.Descriptor("lane")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(descriptor("lane", "ar", "en"), d, cmp.Comparer(langEqual)); diff != "" {
		t.Fatalf("Descriptor (-want, +got):\n%s", diff)
	}

	// Descriptors are copies.
	d.SecondaryLanguages[0] = glosser.MustParseLanguageCode("fr")
	d2, _ := c.Descriptor("lane")
	if got := d2.SecondaryLanguages[0].String(); got != "en" {
		t.Fatalf("Descriptor modified through copy: %q", got)
	}

	if _, err := c.Get("nope"); !errors.Is(err, glosser.ErrNotFound) {
		t.Fatalf("Get: want %v, got %v", glosser.ErrNotFound, err)
	}
	if _, err := c.Descriptor("nope"); !errors.Is(err, glosser.ErrNotFound) {
		t.Fatalf("Descriptor: want %v, got %v", glosser.ErrNotFound, err)
	}
}

func langEqual(a, b glosser.LanguageCode) bool {
	return a == b
}

// TestCatalogue_Resolve tests Catalogue.Resolve.
func TestCatalogue_Resolve(t *testing.T) {
	t.Parallel()

	c := newTestCatalogue(t)

	handles, err := c.Resolve([]string{"hanzi", "mw", "hanzi", "apte"})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, h := range handles {
		got = append(got, h.Descriptor.ID)
	}
	if diff := cmp.Diff([]string{"mw", "apte", "hanzi"}, got); diff != "" {
		t.Fatalf("Resolve (-want, +got):\n%s", diff)
	}

	if _, err := c.Resolve([]string{"mw", "nope"}); !errors.Is(err, glosser.ErrNotFound) {
		t.Fatalf("Resolve: want %v, got %v", glosser.ErrNotFound, err)
	}

	handles, err = c.Resolve(nil)
	if err != nil || len(handles) != 0 {
		t.Fatalf("Resolve(nil): want no handles, got %v, %v", handles, err)
	}
}

// TestCatalogue_Languages tests Catalogue.Languages and Catalogue.Grouped.
func TestCatalogue_Languages(t *testing.T) {
	t.Parallel()

	c := newTestCatalogue(t)

	var langs []string
	for _, l := range c.Languages() {
		langs = append(langs, l.String())
	}
	if diff := cmp.Diff([]string{"ar", "en", "en-GB", "sa", "zh"}, langs); diff != "" {
		t.Fatalf("Languages (-want, +got):\n%s", diff)
	}

	grouped := c.Grouped()
	if diff := cmp.Diff([]string{"mw", "apte"}, ids(grouped[glosser.MustParseLanguageCode("sa")])); diff != "" {
		t.Fatalf("Grouped[sa] (-want, +got):\n%s", diff)
	}
	if got := len(grouped); got != 3 {
		t.Fatalf("Grouped: want 3 groups, got %d", got)
	}
}

// TestCatalogue_Close tests Catalogue.Close.
func TestCatalogue_Close(t *testing.T) {
	t.Parallel()

	c := glosser.NewCatalogue()
	ok := &closingResource{}
	failing := &closingResource{err: errors.New("boom")}
	if err := c.Register(descriptor("ok", "sa"), ok); err != nil {
		t.Fatal(err)
	}
	if err := c.Register(descriptor("failing", "sa"), failing); err != nil {
		t.Fatal(err)
	}

	err := c.Close()
	if err == nil || !strings.Contains(err.Error(), "failing") {
		t.Fatalf("Close: want error naming the failing resource, got %v", err)
	}
	if !ok.closed || !failing.closed {
		t.Fatal("Close: not every resource was closed")
	}
	if got := c.Len(); got != 0 {
		t.Fatalf("Len after Close: want 0, got %d", got)
	}
}

// TestCatalogue_concurrent tests concurrent reads.
func TestCatalogue_concurrent(t *testing.T) {
	t.Parallel()

	c := newTestCatalogue(t)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if _, err := c.Resolve([]string{"mw", "lane"}); err != nil {
					t.Error(err)
					return
				}
				_ = c.List(glosser.MustParseLanguageCode("sa"))
				_ = c.Languages()
			}
		}()
	}
	wg.Wait()
}
