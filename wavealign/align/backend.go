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
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// Names of the kernel entry points, one per alignment mode.
const (
	EntryGlobal = "needleman_wunsch_wavefront"
	EntryLocal  = "smith_waterman_wavefront"
)

// Batch describes the cells of one anti-diagonal handed to a Backend.
// Cell k of the batch is (IBegin+k, Diagonal-IBegin-k).
type Batch struct {
	Diagonal int
	IBegin   int
	N        int // number of cells

	A, B    []byte
	Matrix  *Matrix
	Scoring Scoring

	// Best is the running best-score holder, nil if it's not needed (global alignment).
	Best *Best
}

// Best records the best score and its cell.
type Best struct {
	Score int
	I, J  int

	set bool
}

// Update replaces the record if score is strictly larger,
// so the first cell producing the maximum wins ties.
func (b *Best) Update(score, i, j int) bool {
	if b.set && score <= b.Score {
		return false
	}
	b.Score, b.I, b.J, b.set = score, i, j, true
	return true
}

// Reset sets the record to score 0 at (0, 0).
func (b *Best) Reset() {
	b.Score, b.I, b.J = 0, 0, 0
	b.set = true
}

func (b Best) String() string {
	return fmt.Sprintf("%d at (%d, %d)", b.Score, b.I, b.J)
}

// Kernel computes and writes cell k of a batch, and returns the cell value.
// Cells of a batch are independent, so a Kernel can be called concurrently
// for different k of the same batch.
type Kernel func(b *Batch, k int) int

// Backend executes batches of cells.
type Backend interface {
	// Name is the name of the backend.
	Name() string
	// Build returns the kernel of an entry point.
	Build(entry string) (Kernel, error)
	// Dispatch computes all cells of the batch, in any order, and returns
	// only after all of them are written. The best-score holder of the batch,
	// if present, is updated with a max reduction in the scan order of the
	// batch (increasing i).
	Dispatch(kernel Kernel, b *Batch) error
	// Close releases the resources.
	Close() error
}

var kernels = map[string]Kernel{
	EntryGlobal: needlemanWunschWavefront,
	EntryLocal:  smithWatermanWavefront,
}

func needlemanWunschWavefront(b *Batch, k int) int {
	i := b.IBegin + k
	j := b.Diagonal - i
	mat := b.Matrix
	w := mat.cols

	max := recurrence(mat.data, w, i, j, b.A[i-1], b.B[j-1], &b.Scoring)
	mat.data[idx(i, j, w)] = max
	return max
}

func smithWatermanWavefront(b *Batch, k int) int {
	i := b.IBegin + k
	j := b.Diagonal - i
	mat := b.Matrix
	w := mat.cols

	max := recurrence(mat.data, w, i, j, b.A[i-1], b.B[j-1], &b.Scoring)
	if max < 0 {
		max = 0
	}
	mat.data[idx(i, j, w)] = max
	return max
}

// recurrence returns the best of the diagonal, top and left candidates of cell (i, j).
func recurrence(data []int, w, i, j int, a, b byte, s *Scoring) int {
	max := data[idx(i-1, j-1, w)] + s.Score(a, b)
	if v := data[idx(i-1, j, w)] + s.Gap; v > max {
		max = v
	}
	if v := data[idx(i, j-1, w)] + s.Gap; v > max {
		max = v
	}
	return max
}

func buildKernel(backend, entry string) (Kernel, error) {
	kernel, ok := kernels[entry]
	if !ok {
		return nil, NewError(BackendBuildFailure, "%s: entry point not found: %s", backend, entry)
	}
	return kernel, nil
}

// checkBatch makes sure all cells of a batch are interior cells of the
// matrix on the same diagonal.
func checkBatch(b *Batch) error {
	if b.Matrix == nil {
		return NewError(BackendDispatchFailure, "diagonal %d: nil matrix", b.Diagonal)
	}
	m, n := b.Matrix.rows-1, b.Matrix.cols-1
	if len(b.A) != m || len(b.B) != n {
		return NewError(BackendDispatchFailure,
			"diagonal %d: matrix of %dx%d does not fit sequences of %d and %d",
			b.Diagonal, m+1, n+1, len(b.A), len(b.B))
	}
	iBegin, _, count := Diagonal(b.Diagonal, m, n)
	if b.N < 0 || b.N > count || (b.N > 0 && (b.IBegin < iBegin || b.IBegin+b.N > iBegin+count)) {
		return NewError(BackendDispatchFailure,
			"diagonal %d: invalid batch of %d cells from row %d", b.Diagonal, b.N, b.IBegin)
	}
	return nil
}

// ---------------------------------------------------------------

// SerialBackend evaluates the cells of a batch one by one on the calling goroutine.
type SerialBackend struct {
	closed bool
}

// NewSerialBackend returns a SerialBackend.
func NewSerialBackend() *SerialBackend {
	return &SerialBackend{}
}

// Name returns "serial".
func (s *SerialBackend) Name() string { return BackendSerial }

// Build returns the kernel of an entry point.
func (s *SerialBackend) Build(entry string) (Kernel, error) {
	return buildKernel(BackendSerial, entry)
}

// Dispatch computes all cells of the batch in order.
func (s *SerialBackend) Dispatch(kernel Kernel, b *Batch) error {
	if s.closed {
		return NewError(BackendDispatchFailure, "%s: backend closed", BackendSerial)
	}
	if err := checkBatch(b); err != nil {
		return err
	}
	return runChunk(kernel, b, 0, b.N, b.Best)
}

// Close closes the backend.
func (s *SerialBackend) Close() error {
	s.closed = true
	return nil
}

// runChunk computes cells [begin, end) of a batch, tracking the best cell
// in best if it's not nil. A panicking kernel is reported as a dispatch failure.
func runChunk(kernel Kernel, b *Batch, begin, end int, best *Best) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewError(BackendDispatchFailure, "diagonal %d: %v", b.Diagonal, r)
		}
	}()

	var v int
	for k := begin; k < end; k++ {
		v = kernel(b, k)
		if best != nil {
			i := b.IBegin + k
			best.Update(v, i, b.Diagonal-i)
		}
	}
	return nil
}

// ---------------------------------------------------------------

// CPUBackend splits a batch into contiguous chunks computed by concurrent goroutines.
type CPUBackend struct {
	threads  int
	minChunk int

	// reusable variables
	bests []Best
	errs  []error

	closed bool
}

// DefaultMinChunkSize is the minimum number of cells computed by one goroutine.
var DefaultMinChunkSize = 256

// NewCPUBackend returns a CPUBackend with at most threads goroutines per batch.
func NewCPUBackend(threads int, minChunk int) *CPUBackend {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if minChunk <= 0 {
		minChunk = 1
	}
	return &CPUBackend{
		threads:  threads,
		minChunk: minChunk,
		bests:    make([]Best, threads),
		errs:     make([]error, threads),
	}
}

// Name returns "cpu".
func (c *CPUBackend) Name() string { return BackendCPU }

// Threads returns the maximum number of goroutines.
func (c *CPUBackend) Threads() int { return c.threads }

// Build returns the kernel of an entry point.
func (c *CPUBackend) Build(entry string) (Kernel, error) {
	return buildKernel(BackendCPU, entry)
}

// Dispatch computes all cells of the batch concurrently and waits for all of them.
//
// Every chunk keeps its own best cell, and chunk results are merged
// in chunk order after all goroutines return, which gives the same result
// as a sequential scan of the batch.
func (c *CPUBackend) Dispatch(kernel Kernel, b *Batch) error {
	if c.closed {
		return NewError(BackendDispatchFailure, "%s: backend closed", BackendCPU)
	}
	if err := checkBatch(b); err != nil {
		return err
	}
	if b.N == 0 {
		return nil
	}

	chunkSize := max((b.N+c.threads-1)/c.threads, c.minChunk)
	nChunks := (b.N + chunkSize - 1) / chunkSize
	if nChunks == 1 {
		return runChunk(kernel, b, 0, b.N, b.Best)
	}

	bests := c.bests[:nChunks]
	errs := c.errs[:nChunks]

	var wg sync.WaitGroup
	var ci int
	for begin := 0; begin < b.N; begin += chunkSize {
		end := min(begin+chunkSize, b.N)

		bests[ci] = Best{}
		errs[ci] = nil

		var best *Best
		if b.Best != nil {
			best = &bests[ci]
		}

		wg.Add(1)
		go func(ci, begin, end int, best *Best) {
			defer wg.Done()
			errs[ci] = runChunk(kernel, b, begin, end, best)
		}(ci, begin, end, best)

		ci++
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	if b.Best != nil {
		for _, best := range bests {
			if best.set {
				b.Best.Update(best.Score, best.I, best.J)
			}
		}
	}

	return nil
}

// Close closes the backend.
func (c *CPUBackend) Close() error {
	c.closed = true
	return nil
}

// ---------------------------------------------------------------

// Names of backends.
const (
	BackendSerial = "serial"
	BackendCPU    = "cpu"
)

// BackendNames returns names of all available backends.
func BackendNames() []string {
	names := []string{BackendSerial, BackendCPU}
	sort.Strings(names)
	return names
}

// NewBackend returns a backend by name.
// threads is the maximum number of goroutines of the cpu backend, 0 for all CPUs.
func NewBackend(name string, threads int) (Backend, error) {
	switch strings.ToLower(name) {
	case BackendSerial:
		return NewSerialBackend(), nil
	case BackendCPU:
		return NewCPUBackend(threads, DefaultMinChunkSize), nil
	}
	return nil, NewError(BackendBuildFailure, "unknown backend: %s, available: %s",
		name, strings.Join(BackendNames(), ", "))
}
