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
	"runtime"
	"testing"

	"github.com/pkg/errors"
)

func TestNewBackend(t *testing.T) {
	for _, name := range BackendNames() {
		backend, err := NewBackend(name, 2)
		if err != nil {
			t.Error(err)
			continue
		}
		if backend.Name() != name {
			t.Errorf("expected backend %s, returned %s", name, backend.Name())
		}
		if cpu, ok := backend.(*CPUBackend); ok && cpu.Threads() != 2 {
			t.Errorf("expected 2 threads, returned %d", cpu.Threads())
		}
		for _, entry := range []string{EntryGlobal, EntryLocal} {
			if _, err = backend.Build(entry); err != nil {
				t.Errorf("%s: %s", name, err)
			}
		}
		if _, err = backend.Build("needleman_wunsch"); !errors.Is(err, ErrBackendBuildFailure) {
			t.Errorf("%s: expected a build failure, returned: %v", name, err)
		}
		if err = backend.Close(); err != nil {
			t.Error(err)
		}
	}

	if _, err := NewBackend("opencl", 0); !errors.Is(err, ErrBackendBuildFailure) {
		t.Errorf("expected a build failure, returned: %v", err)
	}

	// 0 for all CPUs
	if cpu := NewCPUBackend(0, 1); cpu.Threads() != runtime.NumCPU() {
		t.Errorf("expected %d threads, returned %d", runtime.NumCPU(), cpu.Threads())
	}
}

func TestBestReductionOrder(t *testing.T) {
	// all cells of diagonal 5: (1,4)=2, (2,3)=4, (3,2)=4, (4,1)=2
	a := []byte("AAAA")
	b := []byte("AAAA")
	mat, _ := sequentialFill(a, b, &testScoring, true)

	iBegin, _, count := Diagonal(5, len(a), len(b))
	for _, backend := range testBackends() {
		kernel, err := backend.Build(EntryLocal)
		if err != nil {
			t.Error(err)
			return
		}

		var best Best
		best.Reset()
		batch := &Batch{
			Diagonal: 5,
			IBegin:   iBegin,
			N:        count,
			A:        a,
			B:        b,
			Matrix:   mat.Clone(),
			Scoring:  testScoring,
			Best:     &best,
		}
		if err = backend.Dispatch(kernel, batch); err != nil {
			t.Error(err)
			return
		}
		if best.Score != 4 || best.I != 2 || best.J != 3 {
			t.Errorf("%s: expected 4 at (2, 3), returned %s", backend.Name(), best)
		}

		// a larger score from an earlier diagonal is kept
		best.Update(10, 1, 1)
		if err = backend.Dispatch(kernel, batch); err != nil {
			t.Error(err)
			return
		}
		if best.Score != 10 || best.I != 1 || best.J != 1 {
			t.Errorf("%s: expected 10 at (1, 1), returned %s", backend.Name(), best)
		}
	}
}

func TestInvalidBatch(t *testing.T) {
	a := []byte("ACGT")
	b := []byte("ACG")
	mat := NewMatrix(len(a), len(b))

	batches := []*Batch{
		{Diagonal: 3, IBegin: 1, N: 3, A: a, B: b, Matrix: mat},     // too many cells
		{Diagonal: 3, IBegin: 0, N: 1, A: a, B: b, Matrix: mat},     // boundary cell
		{Diagonal: 9, IBegin: 4, N: 1, A: a, B: b, Matrix: mat},     // out of matrix
		{Diagonal: 3, IBegin: 1, N: 2, A: a, B: b[:2], Matrix: mat}, // size mismatch
		{Diagonal: 3, IBegin: 1, N: 2, A: a, B: b, Matrix: nil},     // no matrix
	}

	for _, backend := range []Backend{NewSerialBackend(), NewCPUBackend(2, 1)} {
		kernel, _ := backend.Build(EntryGlobal)
		for k, batch := range batches {
			if err := backend.Dispatch(kernel, batch); !errors.Is(err, ErrBackendDispatchFailure) {
				t.Errorf("%s: batch %d: expected a dispatch failure, returned: %v", backend.Name(), k, err)
			}
		}
	}
}

func TestPanickingKernel(t *testing.T) {
	a := []byte("ACGTACGT")
	b := []byte("ACGTACGT")
	kernel := func(b *Batch, k int) int {
		if k == 2 {
			panic("bad cell")
		}
		return 0
	}

	iBegin, _, count := Diagonal(8, len(a), len(b))
	for _, backend := range []Backend{NewSerialBackend(), NewCPUBackend(4, 1)} {
		batch := &Batch{Diagonal: 8, IBegin: iBegin, N: count, A: a, B: b, Matrix: NewMatrix(len(a), len(b))}
		err := backend.Dispatch(kernel, batch)
		if KindOf(err) != BackendDispatchFailure {
			t.Errorf("%s: expected a dispatch failure, returned: %v", backend.Name(), err)
		}
	}
}

func TestClosedBackend(t *testing.T) {
	for _, backend := range []Backend{NewSerialBackend(), NewCPUBackend(2, 1)} {
		kernel, _ := backend.Build(EntryGlobal)
		backend.Close()

		a := []byte("AC")
		batch := &Batch{Diagonal: 2, IBegin: 1, N: 1, A: a, B: a, Matrix: NewMatrix(2, 2)}
		if err := backend.Dispatch(kernel, batch); !errors.Is(err, ErrBackendDispatchFailure) {
			t.Errorf("%s: expected a dispatch failure, returned: %v", backend.Name(), err)
		}
	}
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("no such file")
	err := errors.Wrap(WrapError(IOFailure, cause, "open %s", "a.fa"), "reading inputs")

	if KindOf(err) != IOFailure {
		t.Errorf("expected kind %s, returned %s", IOFailure, KindOf(err))
	}
	if !errors.Is(err, ErrIOFailure) || errors.Is(err, ErrMissingInput) {
		t.Errorf("unexpected errors.Is results for %s", err)
	}
	if errors.Cause(err) != cause && !errors.Is(err, cause) {
		t.Errorf("the cause is lost: %s", err)
	}
	if WrapError(IOFailure, nil, "nothing") != nil {
		t.Errorf("wrapping a nil error should return nil")
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Errorf("plain errors have no kind")
	}

	// the kind appears once, at the start
	msg := NewError(MissingInput, "two sequence files needed, %d given", 1).Error()
	if msg != "missing input: two sequence files needed, 1 given" {
		t.Errorf("unexpected error message: %s", msg)
	}
	msg = err.Error()
	if msg != "reading inputs: io failure: open a.fa: no such file" {
		t.Errorf("unexpected error message: %s", msg)
	}
}

func TestRescore(t *testing.T) {
	s := &Scoring{Match: 2, Mismatch: -1, Gap: -1}
	tests := []struct {
		a, b  string
		score int
		ok    bool
	}{
		{"ACGT", "ACGT", 8, true},
		{"AC-T", "ACGA", 2, true},
		{"A-", "-A", -2, true},
		{"", "", 0, true},
		{"A-", "A-", 0, false},
		{"ACG", "AC", 0, false},
	}
	for _, test := range tests {
		score, err := Rescore([]byte(test.a), []byte(test.b), s)
		if test.ok != (err == nil) {
			t.Errorf("%s/%s: unexpected error status: %v", test.a, test.b, err)
			continue
		}
		if err != nil {
			if KindOf(err) != MalformedRecord {
				t.Errorf("%s/%s: expected kind %s, returned %s", test.a, test.b, MalformedRecord, KindOf(err))
			}
			continue
		}
		if score != test.score {
			t.Errorf("%s/%s: expected %d, returned %d", test.a, test.b, test.score, score)
		}
	}
}

func TestCIGAR(t *testing.T) {
	moves := []Move{MoveDiag, MoveDiag, MoveUp, MoveUp, MoveDiag, MoveLeft}
	if s := NewCIGAR(moves).String(); s != "2M2I1M1D" {
		t.Errorf("expected 2M2I1M1D, returned %s", s)
	}
	if s := NewCIGAR(nil).String(); s != "" {
		t.Errorf("expected empty CIGAR, returned %s", s)
	}
}
