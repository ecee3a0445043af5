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
	"path/filepath"
	"testing"

	"github.com/shenwei356/WaveAlign/wavealign/align"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "wavealign.toml")
	err := os.WriteFile(file, []byte("method = \"local\"\nmatch = 3\ngap = -2\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(file, true)
	if err != nil {
		t.Fatalf("loading config: %s", err)
	}

	params := defaultAlignParams
	cfg.apply(&params, func(flag string) bool { return flag == "gap" })

	if params.Method != "local" {
		t.Errorf("method: expected local, returned %s", params.Method)
	}
	if params.Backend != align.BackendCPU {
		t.Errorf("backend: expected %s, returned %s", align.BackendCPU, params.Backend)
	}
	expected := align.Scoring{Match: 3, Mismatch: -1, Gap: -1} // gap set by flag
	if params.Scoring != expected {
		t.Errorf("scoring: expected %s, returned %s", expected, params.Scoring)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-exist.toml")

	cfg, err := loadConfig(file, false)
	if err != nil || cfg != nil {
		t.Errorf("a missing default config file should be ignored, returned: %v, %v", cfg, err)
	}

	// nil Config changes nothing
	params := defaultAlignParams
	cfg.apply(&params, func(string) bool { return false })
	if params != defaultAlignParams {
		t.Errorf("params changed by a nil config: %v", params)
	}

	_, err = loadConfig(file, true)
	if align.KindOf(err) != align.IOFailure {
		t.Errorf("a missing explicit config file should be an IO failure, returned: %v", err)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.toml")
	err := os.WriteFile(file, []byte("methd = \"local\"\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	if _, err = loadConfig(file, true); err == nil {
		t.Errorf("unknown keys should be rejected")
	}
}
