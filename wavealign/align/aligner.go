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
	"context"
	"sync"
	"time"
)

// Mode is the alignment mode.
type Mode uint8

const (
	Global Mode = iota // Needleman-Wunsch
	Local              // Smith-Waterman
)

func (m Mode) String() string {
	if m == Local {
		return "local"
	}
	return "global"
}

// Entry returns the name of the kernel entry point of the mode.
func (m Mode) Entry() string {
	if m == Local {
		return EntryLocal
	}
	return EntryGlobal
}

// ParseMode parses "global" or "local".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "global":
		return Global, nil
	case "local":
		return Local, nil
	}
	return Global, NewError(InvalidMode, `alignment method should be "global" or "local", given: "%s"`, s)
}

// AlignOptions contains all alignment options.
type AlignOptions struct {
	Mode    Mode
	Scoring Scoring

	// save matrix text in AlignResult, only for debugging
	SaveMatrix bool
}

// DefaultAlignOptions is the default AlignOptions.
var DefaultAlignOptions = AlignOptions{
	Mode:    Global,
	Scoring: DefaultScoring,

	SaveMatrix: false,
}

// AlignResult holds the details of the alignment.
type AlignResult struct {
	Mode Mode

	Score int // best score
	I, J  int // cell of the best score, the end of the alignment

	StartI, StartJ int // cell where the traceback stopped

	Len        int // length of alignment
	Matches    int // number of matches
	Mismatches int // number of mismatches
	Gaps       int // number of gaps

	AlignA []byte // Alignment string for seq A
	AlignM []byte // Matching symbols, "|" for match, " " for others
	AlignB []byte // Alignment string for seq B

	CIGAR string

	Matrix []byte // Matrix text, only for debugging.
}

// Reset resets all the values.
func (r *AlignResult) Reset() {
	r.Mode = Global
	r.Score = 0
	r.I, r.J = 0, 0
	r.StartI, r.StartJ = 0, 0
	r.Len = 0
	r.Matches = 0
	r.Mismatches = 0
	r.Gaps = 0

	r.AlignA = r.AlignA[:0]
	r.AlignM = r.AlignM[:0]
	r.AlignB = r.AlignB[:0]
	r.CIGAR = ""
	r.Matrix = nil
}

// Identity returns the percentage of matches in the alignment.
func (r *AlignResult) Identity() float64 {
	if r.Len == 0 {
		return 0
	}
	return float64(r.Matches) / float64(r.Len) * 100
}

var poolAlignResult = &sync.Pool{New: func() interface{} {
	r := &AlignResult{}
	r.AlignA = make([]byte, 0, 1024)
	r.AlignB = make([]byte, 0, 1024)
	r.AlignM = make([]byte, 0, 1024)
	return r
}}

// RecycleAlignResult recycles an alignment result.
func RecycleAlignResult(r *AlignResult) {
	if r != nil {
		poolAlignResult.Put(r)
	}
}

// Aligner fills the score matrix of two sequences anti-diagonal by
// anti-diagonal with a Backend, and traces back the best alignment.
// An Aligner is not safe for concurrent use.
type Aligner struct {
	Options *AlignOptions

	// OnDiagonal, if not nil, is called after every diagonal is computed.
	OnDiagonal func(d, cells int, elapsed time.Duration)

	backend Backend
	kernel  Kernel

	// reusable variables
	matrix *Matrix
	best   Best
	batch  Batch
	tracer *Tracer
	filled bool
}

// NewAligner returns an aligner computing with the given backend.
// The kernel of the alignment mode is built once here.
func NewAligner(options *AlignOptions, backend Backend) (*Aligner, error) {
	if options.Mode != Global && options.Mode != Local {
		return nil, NewError(InvalidMode, "unknown alignment mode: %d", options.Mode)
	}
	kernel, err := backend.Build(options.Mode.Entry())
	if err != nil {
		return nil, err
	}
	return &Aligner{
		Options: options,
		backend: backend,
		kernel:  kernel,
		matrix:  NewMatrix(0, 0),
		tracer:  NewTracer(),
	}, nil
}

// Backend returns the backend.
func (alg *Aligner) Backend() Backend { return alg.backend }

// Matrix returns the score matrix of the last successful alignment,
// or nil if the last alignment failed. It's reused by the next alignment.
func (alg *Aligner) Matrix() *Matrix {
	if !alg.filled {
		return nil
	}
	return alg.matrix
}

// Align aligns two sequences. ctx is checked between diagonals, a cancelled
// ctx aborts the run.
// Please remember to recycle the result after using
// by calling RecycleAlignResult.
func (alg *Aligner) Align(ctx context.Context, a, b []byte) (*AlignResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := alg.fill(ctx, a, b); err != nil {
		alg.filled = false
		return nil, err
	}
	alg.filled = true

	local := alg.Options.Mode == Local
	s := &alg.Options.Scoring

	r := poolAlignResult.Get().(*AlignResult)
	r.Reset()

	r.Mode = alg.Options.Mode
	r.Score = alg.best.Score
	r.I, r.J = alg.best.I, alg.best.J

	// ---------------------------------------------------
	// traceback

	t := alg.tracer
	t.Reset(alg.matrix, a, b, s, local, r.I, r.J)
	r.Len = t.Run()
	r.StartI, r.StartJ = t.Pos()
	r.Matches = t.matches
	r.Mismatches = t.mismatches
	r.Gaps = t.gaps

	r.AlignA = append(r.AlignA, t.AlignA()...)
	r.AlignB = append(r.AlignB, t.AlignB()...)
	r.AlignM = append(r.AlignM, t.AlignM()...)
	r.CIGAR = NewCIGAR(t.Moves()).String()

	if alg.Options.SaveMatrix {
		r.Matrix = alg.matrix.Format(a, b, s, local)
	}

	return r, nil
}

// fill computes all cells of the matrix.
func (alg *Aligner) fill(ctx context.Context, a, b []byte) error {
	m, n := len(a), len(b)
	local := alg.Options.Mode == Local

	// ---------------------------------------------------
	// initialize

	alg.matrix.resize(m, n)
	alg.matrix.initBoundary(alg.Options.Scoring.Gap, local)
	alg.best.Reset()

	batch := &alg.batch
	*batch = Batch{
		A:       a,
		B:       b,
		Matrix:  alg.matrix,
		Scoring: alg.Options.Scoring,
	}
	if local {
		batch.Best = &alg.best
	}

	// ---------------------------------------------------
	// compute, one diagonal after another

	var iBegin, count int
	var t time.Time
	var err error
	if NumDiagonals(m, n) > 0 {
		for d := 2; d <= m+n; d++ {
			select {
			case <-ctx.Done():
				return WrapError(BackendDispatchFailure, ctx.Err(), "aborted before diagonal %d", d)
			default:
			}

			iBegin, _, count = Diagonal(d, m, n)
			batch.Diagonal = d
			batch.IBegin = iBegin
			batch.N = count

			t = time.Now()
			// returns after all cells of the diagonal are written
			err = alg.backend.Dispatch(alg.kernel, batch)
			if err != nil {
				if KindOf(err) == KindUnknown {
					err = WrapError(BackendDispatchFailure, err, "diagonal %d", d)
				}
				return err
			}

			if alg.OnDiagonal != nil {
				alg.OnDiagonal(d, count, time.Since(t))
			}
		}
	}

	if !local {
		alg.best = Best{Score: alg.matrix.At(m, n), I: m, J: n, set: true}
	}

	return nil
}
