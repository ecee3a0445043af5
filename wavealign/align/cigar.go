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
	"strconv"
)

// CIGAR represents the operations of an alignment, with sequence A as the
// query and sequence B as the reference:
//
//	M    match or mismatch
//	I    a residue of A against a gap
//	D    a gap against a residue of B
type CIGAR struct {
	Ops []CIGARRecord
}

// CIGARRecord records the operation and the number.
type CIGARRecord struct {
	N  uint32
	Op byte
}

// NewCIGAR builds a CIGAR from traceback moves in alignment order.
func NewCIGAR(moves []Move) *CIGAR {
	cigar := &CIGAR{Ops: make([]CIGARRecord, 0, 8)}
	for _, mv := range moves {
		switch mv {
		case MoveDiag:
			cigar.Add('M')
		case MoveUp:
			cigar.Add('I')
		case MoveLeft:
			cigar.Add('D')
		}
	}
	return cigar
}

// Add adds an operation, extending the last record if it has the same operation.
func (cigar *CIGAR) Add(op byte) {
	l := len(cigar.Ops)
	if l > 0 && cigar.Ops[l-1].Op == op {
		cigar.Ops[l-1].N++
		return
	}
	cigar.Ops = append(cigar.Ops, CIGARRecord{N: 1, Op: op})
}

// String returns the CIGAR string.
func (cigar *CIGAR) String() string {
	var buf bytes.Buffer
	for _, op := range cigar.Ops {
		buf.WriteString(strconv.Itoa(int(op.N)))
		buf.WriteByte(op.Op)
	}
	return buf.String()
}
