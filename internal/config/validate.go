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

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ianlewis/go-glosser"
	"github.com/ianlewis/go-glosser/idx"
	"github.com/ianlewis/go-glosser/internal/folding"
	"github.com/ianlewis/go-glosser/procedural"
)

// Validate performs validation on the loaded configuration. Load calls it
// automatically.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Analysis.validate(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if c.LoadTimeout <= 0 {
		return fmt.Errorf("load_timeout must be > 0 (got %v)", c.LoadTimeout)
	}

	seen := map[string]bool{}
	var errs []error
	for i := range c.Resources {
		r := &c.Resources[i]
		if err := r.validate(); err != nil {
			errs = append(errs, fmt.Errorf("resources[%d]: %w", i, err))
			continue
		}
		if seen[r.ID] {
			errs = append(errs, fmt.Errorf("resources[%d]: duplicate id %q", i, r.ID))
		}
		seen[r.ID] = true
	}
	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown format %q", l.Format)
	}
	return nil
}

func (a *AnalysisConfig) validate() error {
	if a.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", a.Workers)
	}
	switch strings.ToLower(a.Tokenizer) {
	case TokenizerUnicode, TokenizerJapanese:
	default:
		return fmt.Errorf("unknown tokenizer %q", a.Tokenizer)
	}
	return nil
}

func (s *StoreConfig) validate() error {
	if _, err := idx.ParseOrder(s.Order); err != nil {
		return err
	}
	if _, err := folding.ByName(s.Fold); err != nil {
		return err
	}
	return nil
}

func (r *ResourceConfig) validate() error {
	if r.ID == "" {
		return errors.New("missing id")
	}
	if _, err := glosser.ParseLanguageCode(r.Language); err != nil {
		return fmt.Errorf("%q: language: %w", r.ID, err)
	}
	for _, l := range r.SecondaryLanguages {
		if _, err := glosser.ParseLanguageCode(l); err != nil {
			return fmt.Errorf("%q: secondary_languages: %w", r.ID, err)
		}
	}
	if _, err := folding.ByName(r.Fold); err != nil {
		return fmt.Errorf("%q: %w", r.ID, err)
	}

	kind, err := glosser.ParseFormatKind(r.Format)
	if err != nil {
		return fmt.Errorf("%q: %w", r.ID, err)
	}
	switch kind {
	case glosser.FormatSortedIndex:
		if r.Path == "" {
			return fmt.Errorf("%q: stardict resource without path", r.ID)
		}
	case glosser.FormatProcedural:
		if !slices.Contains(procedural.Names(), strings.ToLower(strings.TrimSpace(r.Procedure))) {
			return fmt.Errorf("%q: %w: %q", r.ID, procedural.ErrUnknownProcedure, r.Procedure)
		}
		if r.Path != "" && procedural.Canonical(r.Procedure) != procedural.CharInfoName {
			return fmt.Errorf("%q: %w: %q", r.ID, procedural.ErrNoDataFile, r.Procedure)
		}
	}
	return nil
}
