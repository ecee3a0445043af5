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
	"testing"
	"time"

	"github.com/shenwei356/WaveAlign/wavealign/align"
	"github.com/spf13/cobra"
)

func TestGetFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntP("min-chunk", "", align.DefaultMinChunkSize, "")
	cmd.Flags().IntP("gap", "", -1, "")
	cmd.Flags().StringArrayP("input", "i", []string{}, "")
	cmd.Flags().DurationP("timeout", "", 0, "")

	err := cmd.Flags().Parse([]string{"--min-chunk", "16", "--gap=-2", "-i", "a.fa", "-i", "b.fa", "--timeout", "3s"})
	if err != nil {
		t.Fatal(err)
	}

	if v := getFlagPositiveInt(cmd, "min-chunk"); v != 16 {
		t.Errorf("min-chunk: expected 16, returned %d", v)
	}
	if v := getFlagInt(cmd, "gap"); v != -2 {
		t.Errorf("gap: expected -2, returned %d", v)
	}
	if v := getFlagStringArray(cmd, "input"); len(v) != 2 || v[0] != "a.fa" || v[1] != "b.fa" {
		t.Errorf("input: expected [a.fa b.fa], returned %v", v)
	}
	if v := getFlagDuration(cmd, "timeout"); v != 3*time.Second {
		t.Errorf("timeout: expected 3s, returned %s", v)
	}
	if !cmd.Flags().Changed("gap") || cmd.Flags().Changed("match") {
		t.Errorf("unexpected changed flags")
	}
}
