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
	"strings"
	"testing"
)

// a 2x2 matrix of A="A", B="A"
func tieMatrix(m00, m01, m10, m11 int) *Matrix {
	mat := NewMatrix(1, 1)
	mat.Set(0, 0, m00)
	mat.Set(0, 1, m01)
	mat.Set(1, 0, m10)
	mat.Set(1, 1, m11)
	return mat
}

func TestTracebackPriority(t *testing.T) {
	s := &Scoring{Match: 1, Mismatch: -1, Gap: -1}
	a, b := []byte("A"), []byte("A")

	tests := []struct {
		name string
		mat  *Matrix
		move Move
	}{
		// 1 == 0+1 == 2-1 == 2-1
		{"diagonal, up and left", tieMatrix(0, 2, 2, 1), MoveDiag},
		// 1 != 5+1, 1 == 2-1 == 2-1
		{"up and left", tieMatrix(5, 2, 2, 1), MoveUp},
		// 1 != 5+1, 1 != 7-1 (up), 1 == 2-1 (left)
		{"left only", tieMatrix(5, 7, 2, 1), MoveLeft},
		{"none", tieMatrix(0, 2, 2, 100), MoveNone},
	}

	for _, test := range tests {
		if mv := nextMove(test.mat, a, b, s, false, 1, 1); mv != test.move {
			t.Errorf("%s: expected %s, returned %s", test.name, test.move, mv)
		}

		tracer := NewTracer()
		tracer.Reset(test.mat, a, b, s, false, 1, 1)
		mv := tracer.Step()
		if mv != test.move {
			t.Errorf("%s: expected %s, returned %s", test.name, test.move, mv)
		}
		if test.move == MoveNone {
			if tracer.State() != Done {
				t.Errorf("%s: expected state %s, returned %s", test.name, Done, tracer.State())
			}
			if i, j := tracer.Pos(); i != 1 || j != 1 {
				t.Errorf("%s: the tracer should stay at (1, 1), returned (%d, %d)", test.name, i, j)
			}
		}
	}
}

func TestTracerLocalStopsAtZero(t *testing.T) {
	s := &Scoring{Match: 2, Mismatch: -1, Gap: -1}
	a := []byte("TTACG")
	b := []byte("GACG")

	mat, best := sequentialFill(a, b, s, true)

	tracer := NewTracer()
	tracer.Reset(mat, a, b, s, true, best.I, best.J)
	steps := tracer.Run()

	if tracer.State() != Done {
		t.Errorf("expected state %s, returned %s", Done, tracer.State())
	}
	i, j := tracer.Pos()
	if i != 0 && j != 0 && mat.At(i, j) != 0 {
		t.Errorf("local traceback stopped at a non-zero cell (%d, %d): %d", i, j, mat.At(i, j))
	}
	if steps != len(tracer.Moves()) || steps > len(a)+len(b) {
		t.Errorf("unexpected number of steps: %d", steps)
	}
	if string(tracer.AlignA()) != "ACG" || string(tracer.AlignB()) != "ACG" {
		t.Errorf("expected ACG/ACG, returned %s/%s", tracer.AlignA(), tracer.AlignB())
	}

	// no more moves once done
	if mv := tracer.Step(); mv != MoveNone {
		t.Errorf("expected %s after done, returned %s", MoveNone, mv)
	}
}

func TestMatrixFormat(t *testing.T) {
	s := &Scoring{Match: 2, Mismatch: -1, Gap: -1}
	a := []byte("ACG")
	b := []byte("AG")
	mat, _ := sequentialFill(a, b, s, false)

	text := string(mat.Format(a, b, s, false))
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != len(a)+2 {
		t.Errorf("expected %d lines, returned %d:\n%s", len(a)+2, len(lines), text)
	}
	if !strings.Contains(text, MoveDiag.String()) || !strings.Contains(text, MoveNone.String()) {
		t.Errorf("moves missing in the matrix text:\n%s", text)
	}
	t.Logf("\n%s", text)
}
