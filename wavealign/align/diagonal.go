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

// Diagonal returns the interior cells of anti-diagonal d (cells with i+j == d)
// of the matrix for sequences of length m and n.
//
// Interior cells have 1 <= i <= m and 1 <= j <= n, so with j = d-i:
//
//	iBegin = max(1, d-n)
//	iEnd   = min(m, d-1)
//	count  = iEnd - iBegin + 1
//
// Diagonals outside [2, m+n] have no interior cells and count is 0.
func Diagonal(d, m, n int) (iBegin, iEnd, count int) {
	if m <= 0 || n <= 0 || d < 2 || d > m+n {
		return 0, -1, 0
	}
	iBegin = max(1, d-n)
	iEnd = min(m, d-1)
	return iBegin, iEnd, iEnd - iBegin + 1
}

// NumDiagonals returns the number of diagonals the scheduler dispatches.
func NumDiagonals(m, n int) int {
	if m <= 0 || n <= 0 {
		return 0
	}
	return m + n - 1
}
