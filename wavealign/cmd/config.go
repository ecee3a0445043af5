// Copyright © 2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/shenwei356/WaveAlign/wavealign/align"
	"github.com/shenwei356/util/pathutil"
)

// DefaultConfigFile is loaded if it exists and no config file is given.
var DefaultConfigFile = "~/.wavealign.toml"

// Config holds the alignment parameters in a TOML file, e.g.,
//
//	method   = "local"
//	backend  = "cpu"
//	match    = 2
//	mismatch = -1
//	gap      = -1
type Config struct {
	Method  string `toml:"method"`
	Backend string `toml:"backend"`

	Match    *int `toml:"match"`
	Mismatch *int `toml:"mismatch"`
	Gap      *int `toml:"gap"`
}

// loadConfig reads a config file. A missing file is an error only when
// the file is explicitly given, otherwise a nil Config is returned.
func loadConfig(file string, explicit bool) (*Config, error) {
	file, err := homedir.Expand(file)
	if err != nil {
		return nil, align.WrapError(align.IOFailure, err, "expanding path: %s", file)
	}

	exists, err := pathutil.Exists(file)
	if err != nil {
		return nil, align.WrapError(align.IOFailure, err, "checking config file: %s", file)
	}
	if !exists {
		if explicit {
			return nil, align.NewError(align.IOFailure, "config file not found: %s", file)
		}
		return nil, nil
	}

	fh, err := os.Open(file)
	if err != nil {
		return nil, align.WrapError(align.IOFailure, err, "reading config file: %s", file)
	}
	defer fh.Close()

	var cfg Config
	decoder := toml.NewDecoder(fh)
	decoder.DisallowUnknownFields()
	if err = decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file: %s", file)
	}
	return &cfg, nil
}

// alignParams are the resolved alignment parameters.
type alignParams struct {
	Method  string
	Backend string
	Scoring align.Scoring
}

var defaultAlignParams = alignParams{
	Method:  "global",
	Backend: align.BackendCPU,
	Scoring: align.DefaultScoring,
}

// apply overrides params with values in the config file,
// except for these explicitly set by flags.
func (cfg *Config) apply(params *alignParams, changed func(flag string) bool) {
	if cfg == nil {
		return
	}
	if cfg.Method != "" && !changed("method") {
		params.Method = cfg.Method
	}
	if cfg.Backend != "" && !changed("backend") {
		params.Backend = cfg.Backend
	}
	if cfg.Match != nil && !changed("match") {
		params.Scoring.Match = *cfg.Match
	}
	if cfg.Mismatch != nil && !changed("mismatch") {
		params.Scoring.Mismatch = *cfg.Mismatch
	}
	if cfg.Gap != nil && !changed("gap") {
		params.Scoring.Gap = *cfg.Gap
	}
}
