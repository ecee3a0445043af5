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
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/WaveAlign/wavealign/align"
	"github.com/shenwei356/WaveAlign/wavealign/seqs"
	"github.com/shenwei356/bio/seq"
	"github.com/spf13/cobra"
)

// parseAlphabet returns the alphabet of a sequence type, nil for guessing.
func parseAlphabet(seqType string) (*seq.Alphabet, error) {
	switch strings.ToLower(seqType) {
	case "auto":
		return nil, nil
	case "dna":
		return seq.DNAredundant, nil
	case "rna":
		return seq.RNAredundant, nil
	case "protein":
		return seq.Protein, nil
	case "unlimit":
		return seq.Unlimit, nil
	}
	return nil, fmt.Errorf("invalid sequence type: %s, available: auto, dna, rna, protein, unlimit", seqType)
}

// getInputFiles collects input files from the flag -i/--input, positional
// arguments and the directory given by -I/--in-dir, in this order.
func getInputFiles(cmd *cobra.Command, args []string, threads int) []string {
	files := getFlagStringArray(cmd, "input")
	files = append(files, args...)

	inDir := getFlagString(cmd, "in-dir")
	if inDir == "" {
		return files
	}

	reFileStr := getFlagString(cmd, "file-regexp")
	if !reIgnoreCase.MatchString(reFileStr) {
		reFileStr = reIgnoreCaseStr + reFileStr
	}
	reFile, err := regexp.Compile(reFileStr)
	checkError(errors.Wrapf(err, "failed to parse regular expression for matching file: %s", reFileStr))

	dirFiles, err := getFileListFromDir(inDir, reFile, threads)
	checkError(errors.Wrapf(err, "err on walking dir: %s", inDir))
	if len(dirFiles) == 0 {
		log.Warningf("no files matching regular expression: %s in %s", reFileStr, inDir)
	}

	return append(files, dirFiles...)
}

// checkOutFiles makes sure no output file overwrites an input file.
func checkOutFiles(inFiles []string, outFiles ...string) error {
	for _, outFile := range outFiles {
		if outFile == "" || isStdin(outFile) {
			continue
		}
		outFileClean := filepath.Clean(outFile)
		for _, file := range inFiles {
			if !isStdin(file) && filepath.Clean(file) == outFileClean {
				return align.NewError(align.IOFailure, "out file should not be one of the input file: %s", outFile)
			}
		}
	}
	return nil
}

var summaryHeader = "seqA\tseqB\tmethod\tbackend\tscore\tstartA\tendA\tstartB\tendB\tlen\tmatches\tmismatches\tgaps\tidentity\tcigar\n"

// writeSummary writes a line of alignment summary, positions are 1-based.
func writeSummary(w io.Writer, recA, recB *seqs.Record, backend string, r *align.AlignResult) error {
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.2f\t%s\n",
		recA.ID, recB.ID, r.Mode, backend, r.Score,
		r.StartI+1, r.I, r.StartJ+1, r.J,
		r.Len, r.Matches, r.Mismatches, r.Gaps, r.Identity(), r.CIGAR)
	return err
}
