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
	"fmt"

	"github.com/shenwei356/WaveAlign/wavealign/align"
	"github.com/shenwei356/WaveAlign/wavealign/seqs"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Compute the score of an existing alignment",
	Long: `Compute the score of an existing alignment

Input:
  A FASTA file with exactly two aligned sequences of the same length,
  e.g., the output of "wavealign align". "-" is a gap, and a column
  with gaps in both sequences is not allowed.

Output (tab-delimited):
  seqA, seqB, len, score

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		seq.ValidateSeq = false

		params := defaultAlignParams
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

		caseSensitive := getFlagBool(cmd, "case-sensitive")
		outFile := getFlagString(cmd, "out-file")

		files := getFlagStringArray(cmd, "input")
		files = append(files, args...)
		if len(files) == 0 {
			files = []string{"-"}
		}

		outfh, err := xopen.Wopen(outFile)
		checkError(align.WrapError(align.IOFailure, err, "writing file: %s", outFile))
		defer outfh.Close()

		fmt.Fprintf(outfh, "seqA\tseqB\tlen\tscore\n")

		var score int
		for _, file := range files {
			records, err := seqs.ReadRecords(file, seq.Unlimit)
			checkError(err)
			if len(records) != 2 {
				checkError(align.NewError(align.MalformedRecord,
					"two aligned sequences expected, %d found in %s", len(records), file))
			}

			a, b := records[0].Seq, records[1].Seq
			if !caseSensitive {
				a = bytes.ToUpper(a)
				b = bytes.ToUpper(b)
			}

			score, err = align.Rescore(a, b, &params.Scoring)
			checkError(align.WrapError(align.KindOf(err), err, "file: %s", file))

			fmt.Fprintf(outfh, "%s\t%s\t%d\t%d\n", records[0].ID, records[1].ID, len(a), score)

			if opt.Verbose && len(files) > 1 {
				log.Infof("%s: %d", file, score)
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(rescoreCmd)

	rescoreCmd.Flags().StringArrayP("input", "i", []string{},
		formatFlagUsage(`Aligned sequence file, repeatable. Positional arguments are also accepted ("-" for stdin, the default).`))

	rescoreCmd.Flags().StringP("out-file", "o", "-",
		formatFlagUsage(`Out file, supports a ".gz" suffix ("-" for stdout).`))

	rescoreCmd.Flags().IntP("match", "", defaultAlignParams.Scoring.Match,
		formatFlagUsage(`Score of a match.`))

	rescoreCmd.Flags().IntP("mismatch", "", defaultAlignParams.Scoring.Mismatch,
		formatFlagUsage(`Score of a mismatch.`))

	rescoreCmd.Flags().IntP("gap", "", defaultAlignParams.Scoring.Gap,
		formatFlagUsage(`Score of a gap of length 1.`))

	rescoreCmd.Flags().StringP("config", "c", "",
		formatFlagUsage(fmt.Sprintf(`Config file in TOML format. By default, %s is used if it exists.`, DefaultConfigFile)))

	rescoreCmd.Flags().BoolP("case-sensitive", "", false,
		formatFlagUsage(`Compare residues case-sensitively.`))

	rescoreCmd.SetUsageTemplate(usageTemplate("[<aligned.fasta> ...]"))
}
