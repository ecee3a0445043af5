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

package align

import "fmt"

// Scoring is the linear-gap scoring model shared by both alignment modes.
type Scoring struct {
	Match    int // score for a match
	Mismatch int // score for a mismatch
	Gap      int // score for every gap position, no open/extension distinction
}

// DefaultScoring is the default Scoring.
var DefaultScoring = Scoring{
	Match:    2,
	Mismatch: -1,
	Gap:      -1,
}

// Score returns the score of aligning residue a against residue b.
func (s *Scoring) Score(a, b byte) int {
	if a == b {
		return s.Match
	}
	return s.Mismatch
}

func (s Scoring) String() string {
	return fmt.Sprintf("match: %d, mismatch: %d, gap: %d", s.Match, s.Mismatch, s.Gap)
}
