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
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// Handle is a registered resource together with its descriptor.
type Handle struct {
	Descriptor Descriptor
	Resource   Resource
}

// Catalogue is a collection of resources keyed by identifier. Resources are
// registered at startup and then read concurrently. A Catalogue is safe for
// concurrent use.
type Catalogue struct {
	mu sync.RWMutex

	// handles are in registration order.
	handles []*Handle
	byID    map[string]int
}

// NewCatalogue returns an empty catalogue.
func NewCatalogue() *Catalogue {
	return &Catalogue{
		byID: map[string]int{},
	}
}

// Register adds a resource to the catalogue.
func (c *Catalogue) Register(d Descriptor, r Resource) error {
	if d.ID == "" {
		return errors.New("registering resource: empty id")
	}
	if r == nil {
		return fmt.Errorf("registering resource %q: nil resource", d.ID)
	}
	if d.Language.IsZero() {
		return fmt.Errorf("registering resource %q: %w: missing language", d.ID, ErrInvalidLanguage)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[d.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, d.ID)
	}
	c.byID[d.ID] = len(c.handles)
	c.handles = append(c.handles, &Handle{
		Descriptor: d.clone(),
		Resource:   r,
	})
	return nil
}

// List returns the descriptors of resources whose language matches lang, in
// registration order. The zero LanguageCode lists every resource.
func (c *Catalogue) List(lang LanguageCode) []Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var ds []Descriptor
	for _, h := range c.handles {
		if lang.IsZero() || lang.Matches(h.Descriptor.Language) {
			ds = append(ds, h.Descriptor.clone())
		}
	}
	return ds
}

// Get returns the resource registered as id.
func (c *Catalogue) Get(id string) (Resource, error) {
	h, err := c.handle(id)
	if err != nil {
		return nil, err
	}
	return h.Resource, nil
}

// Descriptor returns the descriptor of the resource registered as id.
func (c *Catalogue) Descriptor(id string) (Descriptor, error) {
	h, err := c.handle(id)
	if err != nil {
		return Descriptor{}, err
	}
	return h.Descriptor.clone(), nil
}

func (c *Catalogue) handle(id string) (*Handle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.handles[i], nil
}

// Resolve returns the handles for ids in registration order. Repeated ids
// are resolved once. Any unknown id fails the whole call.
func (c *Catalogue) Resolve(ids []string) ([]Handle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	positions := make([]int, 0, len(ids))
	for _, id := range ids {
		i, ok := c.byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		if !slices.Contains(positions, i) {
			positions = append(positions, i)
		}
	}
	slices.Sort(positions)

	handles := make([]Handle, 0, len(positions))
	for _, i := range positions {
		h := *c.handles[i]
		h.Descriptor = h.Descriptor.clone()
		handles = append(handles, h)
	}
	return handles, nil
}

// Len returns the number of registered resources.
func (c *Catalogue) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handles)
}

// Languages returns every primary and secondary language of the registered
// resources, sorted and without duplicates.
func (c *Catalogue) Languages() []LanguageCode {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := map[LanguageCode]bool{}
	var langs []LanguageCode
	add := func(l LanguageCode) {
		if !l.IsZero() && !seen[l] {
			seen[l] = true
			langs = append(langs, l)
		}
	}
	for _, h := range c.handles {
		add(h.Descriptor.Language)
		for _, l := range h.Descriptor.SecondaryLanguages {
			add(l)
		}
	}
	slices.SortFunc(langs, func(a, b LanguageCode) int {
		return strings.Compare(a.String(), b.String())
	})
	return langs
}

// Grouped returns the descriptors grouped by primary language. Each group is
// in registration order.
func (c *Catalogue) Grouped() map[LanguageCode][]Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	grouped := map[LanguageCode][]Descriptor{}
	for _, h := range c.handles {
		l := h.Descriptor.Language
		grouped[l] = append(grouped[l], h.Descriptor.clone())
	}
	return grouped
}

// Close closes every resource that implements io.Closer and empties the
// catalogue.
func (c *Catalogue) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for _, h := range c.handles {
		if closer, ok := h.Resource.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %q: %w", h.Descriptor.ID, err))
			}
		}
	}
	c.handles = nil
	c.byID = map[string]int{}
	return errors.Join(errs...)
}
