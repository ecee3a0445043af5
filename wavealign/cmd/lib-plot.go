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

package cmd

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/WaveAlign/wavealign/align"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// matrixGrid is a score matrix as plotter.GridXYZ,
// columns are positions of sequence B and rows are positions of sequence A.
type matrixGrid struct {
	mat *align.Matrix
}

func (g matrixGrid) Dims() (c, r int)   { return g.mat.Cols(), g.mat.Rows() }
func (g matrixGrid) Z(c, r int) float64 { return float64(g.mat.At(r, c)) }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

// alignmentPath returns cells on the traceback path, from the start to the end.
func alignmentPath(r *align.AlignResult) plotter.XYs {
	path := make(plotter.XYs, 0, len(r.AlignA)+1)
	i, j := r.StartI, r.StartJ
	path = append(path, plotter.XY{X: float64(j), Y: float64(i)})
	for k := range r.AlignA {
		if r.AlignA[k] != align.Gap {
			i++
		}
		if r.AlignB[k] != align.Gap {
			j++
		}
		path = append(path, plotter.XY{X: float64(j), Y: float64(i)})
	}
	return path
}

var plotFormats = []string{".png", ".svg", ".pdf", ".jpg", ".jpeg", ".tif", ".tiff", ".eps"}

func checkPlotFile(file string) error {
	_, ext, gz := filepathTrimExtension(file, nil)
	if gz != "" {
		return fmt.Errorf("compressed plot file is not supported: %s", file)
	}
	ext = strings.ToLower(ext)
	for _, e := range plotFormats {
		if ext == e {
			return nil
		}
	}
	return fmt.Errorf("unsupported plot format: %s, available: %s", file, strings.Join(plotFormats, ", "))
}

// plotMatrix plots the score matrix as a heat map with the alignment path.
func plotMatrix(mat *align.Matrix, r *align.AlignResult, title string, file string) error {
	if mat.Rows() < 2 || mat.Cols() < 2 {
		return fmt.Errorf("the score matrix (%d x %d) is too small to plot", mat.Rows(), mat.Cols())
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "sequence B"
	p.Y.Label.Text = "sequence A"

	hm := plotter.NewHeatMap(matrixGrid{mat: mat}, palette.Heat(16, 1))
	p.Add(hm)

	line, err := plotter.NewLine(alignmentPath(r))
	if err != nil {
		return errors.Wrap(err, "plotting alignment path")
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(line)

	size := vg.Length(mat.Cols()) * vg.Points(8)
	size = min(max(size, 4*vg.Inch), 20*vg.Inch)
	height := size * vg.Length(mat.Rows()) / vg.Length(mat.Cols())
	height = min(max(height, 4*vg.Inch), 20*vg.Inch)

	if err = p.Save(size, height, file); err != nil {
		return align.WrapError(align.IOFailure, err, "saving plot: %s", file)
	}
	return nil
}
