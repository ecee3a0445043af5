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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shenwei356/WaveAlign/wavealign/align"
	"github.com/shenwei356/WaveAlign/wavealign/seqs"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"gonum.org/v1/gonum/stat"
)

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Align two sequences",
	Long: `Align two sequences

Input:
  1. Two sequence files in FASTA/Q format, plain or gzipped, each with
     exactly one record. Files can be given via the flag -i/--input
     (repeatable), positional arguments, or -I/--in-dir.
  2. If more than two files are given, only the first two are aligned.

Scoring:
  1. Match and mismatch scores are for a pair of residues, the gap score
     is linear, i.e., a gap of length k scores k * gap.
  2. Values in the config file (-c/--config, or ~/.wavealign.toml if it
     exists) override the defaults, and flags override the config file.

Output:
  1. The aligned sequences as two FASTA records, "-" is a gap.
  2. An optional summary line in tab-delimited format (--tsv), positions
     are 1-based:

      seqA, seqB, method, backend, score, startA, endA, startB, endB,
      len, matches, mismatches, gaps, identity, cigar

Backends:
  serial   All cells of a diagonal are computed in the calling goroutine.
  cpu      Cells of a diagonal are split into chunks and computed by
           -j/--threads goroutines.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		seq.ValidateSeq = getFlagBool(cmd, "validate-seq")

		outFile := getFlagString(cmd, "out-file")

		var fhLog *os.File
		if opt.Log2File {
			ro, err := filepath.Abs(outFile)
			if err != nil {
				checkError(fmt.Errorf("failed to check output file: %s", err))
			}
			rl, err := filepath.Abs(opt.LogFile)
			if err != nil {
				checkError(fmt.Errorf("failed to check log file: %s", err))
			}
			if ro == rl {
				checkError(fmt.Errorf("output file and log file should not be the same: %s", outFile))
			}
			fhLog = addLog(opt.LogFile, opt.Verbose)
		}

		verbose := opt.Verbose
		outputLog := opt.Verbose || opt.Log2File

		timeStart := time.Now()
		defer func() {
			if outputLog {
				log.Info()
				log.Infof("elapsed time: %s", time.Since(timeStart))
				log.Info()
			}
			if opt.Log2File {
				fhLog.Close()
			}
		}()

		var err error

		// ---------------------------------------------------------------
		// parameters

		params := defaultAlignParams
		params.Method = getFlagString(cmd, "method")
		params.Backend = getFlagString(cmd, "backend")
		params.Scoring.Match = getFlagInt(cmd, "match")
		params.Scoring.Mismatch = getFlagInt(cmd, "mismatch")
		params.Scoring.Gap = getFlagInt(cmd, "gap")

		configFile := getFlagString(cmd, "config")
		explicit := configFile != ""
		if !explicit {
			configFile = DefaultConfigFile
		}
		cfg, err := loadConfig(configFile, explicit)
		checkError(err)
		cfg.apply(&params, cmd.Flags().Changed)

		mode, err := align.ParseMode(params.Method)
		checkError(err)

		lineWidth := getFlagNonNegativeInt(cmd, "line-width")
		caseSensitive := getFlagBool(cmd, "case-sensitive")
		matrixFile := getFlagString(cmd, "save-matrix")
		plotFile := getFlagString(cmd, "plot-matrix")
		tsvFile := getFlagString(cmd, "tsv")
		timeout := getFlagDuration(cmd, "timeout")
		if timeout < 0 {
			checkError(fmt.Errorf("value of flag --timeout should not be negative"))
		}

		alphabet, err := parseAlphabet(getFlagString(cmd, "seq-type"))
		checkError(err)

		if plotFile != "" {
			checkError(checkPlotFile(plotFile))
		}

		// ---------------------------------------------------------------
		// input files

		files := getInputFiles(cmd, args, opt.NumCPUs)
		if len(files) < 2 {
			checkError(align.NewError(align.MissingInput,
				"two sequence files needed, %d given. type \"wavealign align -h\" for help", len(files)))
		}
		if len(files) > 2 {
			log.Warningf("%d sequence files given, only the first two are aligned: %s, %s",
				len(files), files[0], files[1])
		}
		checkError(checkOutFiles(files[:2], outFile, matrixFile, plotFile, tsvFile))

		recA, recB, err := seqs.ReadPair(files, alphabet)
		checkError(err)

		a, b := recA.Seq, recB.Seq
		if !caseSensitive {
			a = bytes.ToUpper(a)
			b = bytes.ToUpper(b)
		}

		// ---------------------------------------------------------------
		// aligner

		align.DefaultMinChunkSize = getFlagPositiveInt(cmd, "min-chunk")
		backend, err := align.NewBackend(params.Backend, opt.NumCPUs)
		checkError(err)
		defer backend.Close()

		alg, err := align.NewAligner(&align.AlignOptions{
			Mode:       mode,
			Scoring:    params.Scoring,
			SaveMatrix: matrixFile != "",
		}, backend)
		checkError(err)

		nDiags := align.NumDiagonals(len(a), len(b))

		if outputLog {
			log.Infof("WaveAlign v%s", VERSION)
			log.Info("  https://github.com/shenwei356/WaveAlign")
			log.Info()
			log.Infof("sequence A: %s (%s bp) from %s", recA.ID, humanize.Comma(int64(len(a))), files[0])
			log.Infof("sequence B: %s (%s bp) from %s", recB.ID, humanize.Comma(int64(len(b))), files[1])
			log.Infof("method: %s, scoring: %s", mode, params.Scoring)
			if cpu, ok := backend.(*align.CPUBackend); ok {
				log.Infof("backend: %s, threads: %d, minimum cells per goroutine: %d",
					backend.Name(), cpu.Threads(), align.DefaultMinChunkSize)
			} else {
				log.Infof("backend: %s", backend.Name())
			}
			log.Infof("score matrix: %d x %d = %s cells, %s diagonals",
				len(a)+1, len(b)+1, humanize.Comma(int64(len(a)+1)*int64(len(b)+1)),
				humanize.Comma(int64(nDiags)))
			log.Info()
		}

		// ---------------------------------------------------------------
		// process bar and timing

		durations := make([]float64, 0, nDiags)

		var pbs *mpb.Progress
		var bar *mpb.Bar
		var chDuration chan time.Duration
		var doneDuration chan int
		showBar := verbose && nDiags > 0
		if showBar {
			pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
			bar = pbs.AddBar(int64(nDiags),
				mpb.PrependDecorators(
					decor.Name("computed diagonals: ", decor.WC{W: len("computed diagonals: "), C: decor.DindentRight}),
					decor.Name("", decor.WCSyncSpaceR),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
					decor.EwmaETA(decor.ET_STYLE_GO, 3),
					decor.OnComplete(decor.Name(""), ". done"),
				),
			)

			chDuration = make(chan time.Duration, opt.NumCPUs)
			doneDuration = make(chan int)
			go func() {
				for t := range chDuration {
					bar.EwmaIncrBy(1, t)
				}
				doneDuration <- 1
			}()
		}

		alg.OnDiagonal = func(d, cells int, elapsed time.Duration) {
			durations = append(durations, float64(elapsed.Nanoseconds())/1000)
			if showBar {
				chDuration <- elapsed
			}
		}

		// ---------------------------------------------------------------
		// align

		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		r, err := alg.Align(ctx, a, b)

		if showBar {
			if err != nil {
				bar.Abort(false)
			}
			close(chDuration)
			<-doneDuration
			pbs.Wait()
		}
		checkError(err)
		defer align.RecycleAlignResult(r)

		if outputLog {
			log.Infof("max score: %d at (%d, %d)", r.Score, r.I, r.J)
			log.Infof("alignment: %d columns, %d matches (%.2f%%), %d mismatches, %d gaps, CIGAR: %s",
				r.Len, r.Matches, r.Identity(), r.Mismatches, r.Gaps, r.CIGAR)
			if len(durations) > 1 {
				mean, std := stat.MeanStdDev(durations, nil)
				log.Infof("time per diagonal: %.2f ± %.2f µs", mean, std)
			}
		}

		// ---------------------------------------------------------------
		// output

		outfh, gw, w, err := outStream(outFile, strings.HasSuffix(outFile, ".gz"), opt.CompressionLevel)
		checkError(err)
		err = seqs.WriteAlignment(outfh, recA.Label, r.AlignA, recB.Label, r.AlignB, lineWidth)
		checkError(err)
		checkError(outfh.Flush())
		if gw != nil {
			checkError(gw.Close())
		}
		if !isStdin(outFile) {
			checkError(w.Close())
		}
		if outputLog {
			log.Infof("alignment saved to: %s", outFile)
		}

		if tsvFile != "" {
			fh, err := xopen.Wopen(tsvFile)
			checkError(align.WrapError(align.IOFailure, err, "writing summary: %s", tsvFile))
			_, err = fh.WriteString(summaryHeader)
			checkError(align.WrapError(align.IOFailure, err, "writing summary: %s", tsvFile))
			err = writeSummary(fh, recA, recB, backend.Name(), r)
			checkError(align.WrapError(align.IOFailure, err, "writing summary: %s", tsvFile))
			checkError(fh.Close())
			if outputLog {
				log.Infof("summary saved to: %s", tsvFile)
			}
		}

		if matrixFile != "" {
			fh, err := xopen.Wopen(matrixFile)
			checkError(align.WrapError(align.IOFailure, err, "writing matrix: %s", matrixFile))
			_, err = fh.Write(r.Matrix)
			checkError(align.WrapError(align.IOFailure, err, "writing matrix: %s", matrixFile))
			checkError(fh.Close())
			if outputLog {
				log.Infof("score matrix saved to: %s", matrixFile)
			}
		}

		if plotFile != "" {
			title := fmt.Sprintf("%s vs %s (%s, score: %d)", recA.ID, recB.ID, mode, r.Score)
			checkError(plotMatrix(alg.Matrix(), r, title, plotFile))
			if outputLog {
				log.Infof("score matrix plot saved to: %s", plotFile)
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(alignCmd)

	alignCmd.Flags().StringArrayP("input", "i", []string{},
		formatFlagUsage(`Input sequence file, repeatable. Positional arguments are also accepted.`))

	alignCmd.Flags().StringP("in-dir", "I", "",
		formatFlagUsage(`Input directory containing sequence files. Files matching -r/--file-regexp are sorted by path and appended to the inputs.`))

	alignCmd.Flags().StringP("file-regexp", "r", defaultFileRegexp,
		formatFlagUsage(`Regular expression for matching sequence files in -I/--in-dir, case ignored.`))

	alignCmd.Flags().StringP("out-file", "o", "output.fasta",
		formatFlagUsage(`Out file of aligned sequences, supports a ".gz" suffix ("-" for stdout).`))

	alignCmd.Flags().StringP("method", "m", defaultAlignParams.Method,
		formatFlagUsage(`Alignment method, available: global, local.`))

	alignCmd.Flags().IntP("match", "", defaultAlignParams.Scoring.Match,
		formatFlagUsage(`Score of a match.`))

	alignCmd.Flags().IntP("mismatch", "", defaultAlignParams.Scoring.Mismatch,
		formatFlagUsage(`Score of a mismatch.`))

	alignCmd.Flags().IntP("gap", "", defaultAlignParams.Scoring.Gap,
		formatFlagUsage(`Score of a gap of length 1.`))

	alignCmd.Flags().StringP("backend", "b", defaultAlignParams.Backend,
		formatFlagUsage(fmt.Sprintf(`Compute backend, available: %s.`, strings.Join(align.BackendNames(), ", "))))

	alignCmd.Flags().IntP("min-chunk", "", align.DefaultMinChunkSize,
		formatFlagUsage(`Minimum number of cells of a diagonal computed by one goroutine in the cpu backend. Short diagonals are computed by fewer goroutines.`))

	alignCmd.Flags().StringP("config", "c", "",
		formatFlagUsage(fmt.Sprintf(`Config file in TOML format. By default, %s is used if it exists.`, DefaultConfigFile)))

	alignCmd.Flags().StringP("seq-type", "t", "auto",
		formatFlagUsage(`Sequence type, available: auto, dna, rna, protein, unlimit.`))

	alignCmd.Flags().BoolP("validate-seq", "", false,
		formatFlagUsage(`Validate residues with the alphabet of -t/--seq-type.`))

	alignCmd.Flags().BoolP("case-sensitive", "", false,
		formatFlagUsage(`Compare residues case-sensitively. By default, sequences are converted to upper case.`))

	alignCmd.Flags().IntP("line-width", "w", 60,
		formatFlagUsage(`Line width of output sequences (0 for no wrap).`))

	alignCmd.Flags().StringP("save-matrix", "", "",
		formatFlagUsage(`Save the score matrix with traceback arrows to a text file. Only for short sequences.`))

	alignCmd.Flags().StringP("plot-matrix", "", "",
		formatFlagUsage(fmt.Sprintf(`Plot the score matrix with the alignment path, formats: %s.`, strings.Join(plotFormats, ", "))))

	alignCmd.Flags().StringP("tsv", "", "",
		formatFlagUsage(`Save a summary of the alignment in tab-delimited format.`))

	alignCmd.Flags().DurationP("timeout", "", 0,
		formatFlagUsage(`Abort the alignment after the given time, e.g., 30s, 5m (0 for no limit).`))

	alignCmd.SetUsageTemplate(usageTemplate("[-i <seqA> -i <seqB>] [<seqA> <seqB>] [-o output.fasta]"))
}
