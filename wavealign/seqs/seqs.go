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

// Package seqs reads sequence records for alignment and writes aligned sequences.
package seqs

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/shenwei356/WaveAlign/wavealign/align"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/util/pathutil"
)

// Record is a labeled sequence.
type Record struct {
	ID    []byte // sequence identifier
	Label []byte // the whole header line without ">"
	Seq   []byte
}

func isStdin(file string) bool {
	return file == "-"
}

// ReadRecords reads all records of a FASTA/Q file, plain or gzipped.
// "-" for stdin. alphabet could be nil for guessing from the first record.
func ReadRecords(file string, alphabet *seq.Alphabet) ([]*Record, error) {
	records := make([]*Record, 0, 2)

	if !isStdin(file) {
		exists, err := pathutil.Exists(file)
		if err != nil {
			return nil, align.WrapError(align.IOFailure, err, "checking file: %s", file)
		}
		if !exists {
			return nil, align.NewError(align.IOFailure, "file not found: %s", file)
		}

		info, err := os.Stat(file)
		if err != nil {
			return nil, align.WrapError(align.IOFailure, err, "checking file: %s", file)
		}
		if info.Size() == 0 {
			return records, nil
		}
	}

	reader, err := fastx.NewReader(alphabet, file, "")
	if err != nil {
		return nil, align.WrapError(align.IOFailure, err, "reading file: %s", file)
	}
	defer reader.Close()

	var record *fastx.Record
	for {
		record, err = reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, align.WrapError(align.MalformedRecord, err, "reading file: %s", file)
		}

		records = append(records, &Record{
			ID:    append([]byte{}, record.ID...),
			Label: append([]byte{}, record.Name...),
			Seq:   append([]byte{}, record.Seq.Seq...),
		})
	}

	return records, nil
}

// ReadRecord reads the only record of a file.
func ReadRecord(file string, alphabet *seq.Alphabet) (*Record, error) {
	records, err := ReadRecords(file, alphabet)
	if err != nil {
		return nil, err
	}

	switch len(records) {
	case 0:
		return nil, align.NewError(align.MalformedRecord,
			"%s: no sequence record with a header line starting with '>' found", file)
	case 1:
	default:
		return nil, align.NewError(align.MalformedRecord,
			"%s: only one sequence per file is supported, %d found", file, len(records))
	}

	if len(bytes.TrimSpace(records[0].Label)) == 0 {
		return nil, align.NewError(align.MalformedRecord, "%s: empty header line", file)
	}
	return records[0], nil
}

// ReadPair reads the records of the first two files. Files after them are ignored.
func ReadPair(files []string, alphabet *seq.Alphabet) (*Record, *Record, error) {
	if len(files) < 2 {
		return nil, nil, align.NewError(align.MissingInput,
			"at least two input files required, %d given", len(files))
	}

	var pair [2]*Record
	var err error
	for i, file := range files[:2] {
		pair[i], err = ReadRecord(file, alphabet)
		if err != nil {
			return nil, nil, err
		}
	}
	return pair[0], pair[1], nil
}

// WriteRecord writes a FASTA record with sequence wrapped by width, 0 for no wrap.
func WriteRecord(w io.Writer, label []byte, s []byte, width int, buf *bytes.Buffer) (*bytes.Buffer, error) {
	var err error
	if _, err = w.Write(_mark_fasta); err != nil {
		return buf, errors.Wrap(err, "writing record")
	}
	if _, err = w.Write(label); err != nil {
		return buf, errors.Wrap(err, "writing record")
	}
	if _, err = w.Write(_mark_newline); err != nil {
		return buf, errors.Wrap(err, "writing record")
	}

	var text []byte
	text, buf = wrapByteSlice(s, width, buf)
	if _, err = w.Write(text); err != nil {
		return buf, errors.Wrap(err, "writing record")
	}
	if _, err = w.Write(_mark_newline); err != nil {
		return buf, errors.Wrap(err, "writing record")
	}
	return buf, nil
}

// WriteAlignment writes the aligned sequences as two FASTA records.
func WriteAlignment(w io.Writer, labelA, alignA, labelB, alignB []byte, width int) error {
	var buf *bytes.Buffer
	var err error
	buf, err = WriteRecord(w, labelA, alignA, width, buf)
	if err != nil {
		return align.WrapError(align.IOFailure, err, "")
	}
	_, err = WriteRecord(w, labelB, alignB, width, buf)
	return align.WrapError(align.IOFailure, err, "")
}

func wrapByteSlice(s []byte, width int, buffer *bytes.Buffer) ([]byte, *bytes.Buffer) {
	if width < 1 {
		return s, buffer
	}
	l := len(s)
	if l == 0 {
		return s, buffer
	}

	var lines int
	if l%width == 0 {
		lines = l/width - 1
	} else {
		lines = int(l / width)
	}

	if buffer == nil {
		buffer = bytes.NewBuffer(make([]byte, 0, l+lines))
	} else {
		buffer.Reset()
	}

	var start, end int
	for i := 0; i <= lines; i++ {
		start = i * width
		end = (i + 1) * width
		if end > l {
			end = l
		}

		buffer.Write(s[start:end])
		if i < lines {
			buffer.Write(_mark_newline)
		}
	}
	return buffer.Bytes(), buffer
}

var _mark_fasta = []byte{'>'}
var _mark_newline = []byte{'\n'}
