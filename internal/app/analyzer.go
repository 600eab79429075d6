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

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ianlewis/go-glosser"
	"github.com/ianlewis/go-glosser/analysis"
	"github.com/ianlewis/go-glosser/internal/config"
	"github.com/ianlewis/go-glosser/tokenize"
)

// ErrUnknownTokenizer indicates that a tokenizer name is not recognized.
var ErrUnknownTokenizer = errors.New("unknown tokenizer")

// NewTokenizer returns the tokenizer with the given name.
func NewTokenizer(name string) (tokenize.Tokenizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", config.TokenizerUnicode:
		return tokenize.Unicode{}, nil
	case config.TokenizerJapanese:
		j, err := tokenize.NewJapanese()
		if err != nil {
			return nil, err
		}
		return j, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTokenizer, name)
	}
}

// NewAnalyzer returns an analyzer over c configured by cfg.
func NewAnalyzer(c *glosser.Catalogue, cfg config.AnalysisConfig, logger *slog.Logger) (*analysis.Analyzer, error) {
	t, err := NewTokenizer(cfg.Tokenizer)
	if err != nil {
		return nil, err
	}
	return analysis.New(c, &analysis.Options{
		Workers:           cfg.Workers,
		ParallelResources: !cfg.SequentialLookups,
		Tokenizer:         t,
		Logger:            logger,
	}), nil
}
