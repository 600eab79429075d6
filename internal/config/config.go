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

// Package config loads the glosser configuration from a YAML file and the
// environment.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Log         LogConfig        `yaml:"log"`
	Analysis    AnalysisConfig   `yaml:"analysis"`
	Store       StoreConfig      `yaml:"store"`
	LoadTimeout time.Duration    `yaml:"load_timeout" env:"GLOSSER_LOAD_TIMEOUT" env-default:"30s"`
	DataDirs    []string         `yaml:"data_dirs"    env:"GLOSSER_DATA_DIRS"    env-separator:","`
	Resources   []ResourceConfig `yaml:"resources"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"GLOSSER_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"GLOSSER_LOG_FORMAT" env-default:"text"`
}

// AnalysisConfig holds analysis pipeline settings. Booleans default to
// false since env-default also replaces values set to false in the file.
type AnalysisConfig struct {
	// Workers is the number of lines analyzed in parallel. Zero uses
	// GOMAXPROCS.
	Workers int `yaml:"workers" env:"GLOSSER_WORKERS" env-default:"0"`

	// SequentialLookups looks up each token in one resource at a time.
	SequentialLookups bool `yaml:"sequential_lookups" env:"GLOSSER_SEQUENTIAL_LOOKUPS" env-default:"false"`

	Tokenizer string `yaml:"tokenizer" env:"GLOSSER_TOKENIZER" env-default:"unicode"`
}

// StoreConfig holds dictionary loading settings.
type StoreConfig struct {
	// CacheChunks is the number of inflated dictzip chunks cached per
	// dictionary. Negative values disable the cache.
	CacheChunks    int    `yaml:"cache_chunks"    env:"GLOSSER_CACHE_CHUNKS"    env-default:"16"`
	VerifyChecksum bool   `yaml:"verify_checksum" env:"GLOSSER_VERIFY_CHECKSUM" env-default:"false"`
	NoMmap         bool   `yaml:"no_mmap"         env:"GLOSSER_NO_MMAP"         env-default:"false"`
	Order          string `yaml:"order"           env:"GLOSSER_ORDER"           env-default:"auto"`
	Fold           string `yaml:"fold"            env:"GLOSSER_FOLD"            env-default:"none"`
}

// ResourceConfig declares one resource.
type ResourceConfig struct {
	ID                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	Language           string   `yaml:"language"`
	SecondaryLanguages []string `yaml:"secondary_languages"`

	// Format is "stardict" or "procedural".
	Format string `yaml:"format"`

	// Path is the .ifo file of a stardict resource, or the ideographic
	// description table of a charinfo resource.
	Path string `yaml:"path"`

	// Procedure names the built-in procedure of a procedural resource.
	Procedure string `yaml:"procedure"`

	// Fold overrides the store fold setting.
	Fold string `yaml:"fold"`
}

// Tokenizer names.
const (
	TokenizerUnicode  = "unicode"
	TokenizerJapanese = "japanese"
)
