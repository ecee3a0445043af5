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

// Move is a transition of the traceback, i.e., where the score of a cell comes from.
type Move uint8

const (
	MoveNone Move = iota // No consistent predecessor, the traceback stops.
	MoveUp               // From the top cell, residue of A against a gap.
	MoveLeft             // From the left cell, a gap against residue of B.
	MoveDiag             // From the topleft cell, match or mismatch.
)

func (mv Move) String() string {
	switch mv {
	case MoveDiag:
		return "↘︎"
	case MoveUp:
		return "↓"
	case MoveLeft:
		return "→"
	case MoveNone:
		return "×"
	}
	return "■"
}

// State is the state of a Tracer.
type State uint8

const (
	Walking State = iota
	Done
)

func (s State) String() string {
	if s == Done {
		return "done"
	}
	return "walking"
}

// Gap is the gap symbol in aligned sequences.
const Gap = '-'

// terminal tells whether the traceback stops at cell (i, j).
// Global alignment ends at the topleft corner, local alignment ends at the
// first zero cell or the matrix boundary.
func terminal(mat *Matrix, local bool, i, j int) bool {
	if local {
		return i == 0 || j == 0 || mat.At(i, j) == 0
	}
	return i == 0 && j == 0
}

// nextMove returns the move to take from cell (i, j).
// Candidates are checked in the order of diagonal, up and left.
func nextMove(mat *Matrix, a, b []byte, s *Scoring, local bool, i, j int) Move {
	if terminal(mat, local, i, j) {
		return MoveNone
	}
	v := mat.At(i, j)
	if i > 0 && j > 0 && v == mat.At(i-1, j-1)+s.Score(a[i-1], b[j-1]) {
		return MoveDiag
	}
	if i > 0 && v == mat.At(i-1, j)+s.Gap {
		return MoveUp
	}
	if j > 0 && v == mat.At(i, j-1)+s.Gap {
		return MoveLeft
	}
	return MoveNone
}

// Tracer walks a filled matrix backward from a cell and
// reconstructs the aligned sequences.
type Tracer struct {
	mat   *Matrix
	a, b  []byte
	s     *Scoring
	local bool

	i, j  int
	state State

	// in reversed order until the walk is done
	alignA []byte
	alignB []byte
	alignM []byte
	moves  []Move

	matches    int
	mismatches int
	gaps       int
}

// NewTracer returns a new Tracer.
func NewTracer() *Tracer {
	return &Tracer{
		alignA: make([]byte, 0, 1024),
		alignB: make([]byte, 0, 1024),
		alignM: make([]byte, 0, 1024),
		moves:  make([]Move, 0, 1024),
	}
}

// Reset prepares a walk from cell (i, j) of mat.
func (t *Tracer) Reset(mat *Matrix, a, b []byte, s *Scoring, local bool, i, j int) {
	t.mat, t.a, t.b, t.s, t.local = mat, a, b, s, local
	t.i, t.j = i, j
	t.state = Walking

	t.alignA = t.alignA[:0]
	t.alignB = t.alignB[:0]
	t.alignM = t.alignM[:0]
	t.moves = t.moves[:0]
	t.matches, t.mismatches, t.gaps = 0, 0, 0
}

// State returns the current state.
func (t *Tracer) State() State { return t.state }

// Pos returns the current cell. After the walk is done, it's the cell
// where the alignment starts.
func (t *Tracer) Pos() (int, int) { return t.i, t.j }

// Step makes one transition and returns the move taken.
// MoveNone means the walk is done.
func (t *Tracer) Step() Move {
	if t.state == Done {
		return MoveNone
	}

	mv := nextMove(t.mat, t.a, t.b, t.s, t.local, t.i, t.j)
	switch mv {
	case MoveDiag:
		a, b := t.a[t.i-1], t.b[t.j-1]
		t.alignA = append(t.alignA, a)
		t.alignB = append(t.alignB, b)
		if a == b {
			t.alignM = append(t.alignM, '|')
			t.matches++
		} else {
			t.alignM = append(t.alignM, ' ')
			t.mismatches++
		}
		t.i--
		t.j--
	case MoveUp:
		t.alignA = append(t.alignA, t.a[t.i-1])
		t.alignB = append(t.alignB, Gap)
		t.alignM = append(t.alignM, ' ')
		t.gaps++
		t.i--
	case MoveLeft:
		t.alignA = append(t.alignA, Gap)
		t.alignB = append(t.alignB, t.b[t.j-1])
		t.alignM = append(t.alignM, ' ')
		t.gaps++
		t.j--
	default:
		t.state = Done
		reverse(t.alignA)
		reverse(t.alignB)
		reverse(t.alignM)
		for i, j := 0, len(t.moves)-1; i < j; i, j = i+1, j-1 {
			t.moves[i], t.moves[j] = t.moves[j], t.moves[i]
		}
		return MoveNone
	}

	t.moves = append(t.moves, mv)
	return mv
}

// Run walks until the state is Done and returns the number of moves.
func (t *Tracer) Run() int {
	var n int
	for t.Step() != MoveNone {
		n++
	}
	return n
}

// AlignA returns the aligned sequence A. It's only valid after the walk is done
// and is reused by the next walk.
func (t *Tracer) AlignA() []byte { return t.alignA }

// AlignB returns the aligned sequence B.
func (t *Tracer) AlignB() []byte { return t.alignB }

// AlignM returns the matching symbols, "|" for match, " " for others.
func (t *Tracer) AlignM() []byte { return t.alignM }

// Moves returns the moves from the start of the alignment to the end.
func (t *Tracer) Moves() []Move { return t.moves }

func reverse(s []byte) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
