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

import (
	"bytes"
	"fmt"
)

// Matrix is the (m+1) x (n+1) score matrix of an alignment run.
// Cells are stored in row-major order: cell (i, j) is at i*(n+1)+j,
// where i indexes sequence A and j indexes sequence B.
type Matrix struct {
	rows int // m+1
	cols int // n+1

	data []int
}

// NewMatrix returns a zeroed matrix for sequences of length m and n.
func NewMatrix(m, n int) *Matrix {
	mat := &Matrix{}
	mat.resize(m, n)
	return mat
}

// resize reuses the underlying slice when it is large enough.
func (mat *Matrix) resize(m, n int) {
	mat.rows = m + 1
	mat.cols = n + 1
	size := mat.rows * mat.cols
	if size <= cap(mat.data) {
		mat.data = mat.data[:size]
		clear(mat.data)
	} else {
		mat.data = make([]int, size)
	}
}

// Rows returns m+1.
func (mat *Matrix) Rows() int { return mat.rows }

// Cols returns n+1.
func (mat *Matrix) Cols() int { return mat.cols }

// At returns the value of cell (i, j).
func (mat *Matrix) At(i, j int) int {
	return mat.data[idx(i, j, mat.cols)]
}

// Set sets the value of cell (i, j).
func (mat *Matrix) Set(i, j, v int) {
	mat.data[idx(i, j, mat.cols)] = v
}

// initBoundary fills row 0 and column 0.
// Global alignment charges a gap for every consumed residue, local alignment never scores below zero.
func (mat *Matrix) initBoundary(gap int, local bool) {
	var i, j int
	if local {
		for i = 0; i < mat.rows; i++ {
			mat.data[idx(i, 0, mat.cols)] = 0
		}
		for j = 0; j < mat.cols; j++ {
			mat.data[idx(0, j, mat.cols)] = 0
		}
		return
	}

	// topleft most cell
	mat.data[0] = 0
	// the first column
	for i = 1; i < mat.rows; i++ {
		mat.data[idx(i, 0, mat.cols)] = gap * i
	}
	// the first row
	for j = 1; j < mat.cols; j++ {
		mat.data[idx(0, j, mat.cols)] = gap * j
	}
}

// Clone returns a deep copy of the matrix.
func (mat *Matrix) Clone() *Matrix {
	m2 := &Matrix{rows: mat.rows, cols: mat.cols, data: make([]int, len(mat.data))}
	copy(m2.data, mat.data)
	return m2
}

// Equal tells whether two matrices have the same shape and values.
func (mat *Matrix) Equal(m2 *Matrix) bool {
	if mat.rows != m2.rows || mat.cols != m2.cols {
		return false
	}
	for k, v := range mat.data {
		if m2.data[k] != v {
			return false
		}
	}
	return true
}

// Format returns a text table of the matrix. Every cell shows the traceback
// move that would be taken from it and its score.
func (mat *Matrix) Format(a, b []byte, s *Scoring, local bool) []byte {
	var i, j int
	var buf bytes.Buffer

	// b
	buf.WriteString(fmt.Sprintf("%c  %s%-3s", ' ', " ", " "))
	for j = 0; j < len(b); j++ {
		buf.WriteString(fmt.Sprintf("  %s%3c", " ", b[j]))
	}
	buf.WriteByte('\n')

	for i = 0; i < mat.rows; i++ {
		if i == 0 {
			buf.WriteString(fmt.Sprintf("%c", ' '))
		} else {
			buf.WriteString(fmt.Sprintf("%c", a[i-1]))
		}

		for j = 0; j < mat.cols; j++ {
			buf.WriteString(fmt.Sprintf("  %s%3d", nextMove(mat, a, b, s, local, i, j), mat.At(i, j)))
		}
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

func idx(i, j, w int) int {
	return (i * w) + j
}
