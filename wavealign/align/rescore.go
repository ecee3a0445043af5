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

// Rescore computes the score of an aligned pair column by column.
// A column of two gaps is not allowed.
func Rescore(alignA, alignB []byte, s *Scoring) (int, error) {
	if len(alignA) != len(alignB) {
		return 0, NewError(MalformedRecord, "aligned sequences have different lengths: %d != %d",
			len(alignA), len(alignB))
	}

	var score int
	var a, b byte
	for k := range alignA {
		a, b = alignA[k], alignB[k]
		switch {
		case a == Gap && b == Gap:
			return 0, NewError(MalformedRecord, "column %d: gaps in both sequences", k+1)
		case a == Gap || b == Gap:
			score += s.Gap
		default:
			score += s.Score(a, b)
		}
	}
	return score, nil
}
