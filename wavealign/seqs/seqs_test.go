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

package seqs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shenwei356/WaveAlign/wavealign/align"
	"github.com/shenwei356/bio/seq"
)

func writeFile(t *testing.T, dir, name, content string) string {
	file := filepath.Join(dir, name)
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestReadRecord(t *testing.T) {
	dir := t.TempDir()

	file := writeFile(t, dir, "a.fasta", ">seq1 a test sequence\nGATT\nACA\n")
	record, err := ReadRecord(file, seq.Unlimit)
	if err != nil {
		t.Error(err)
		return
	}
	if string(record.ID) != "seq1" || string(record.Label) != "seq1 a test sequence" || string(record.Seq) != "GATTACA" {
		t.Errorf("unexpected record: %s, %s, %s", record.ID, record.Label, record.Seq)
	}

	// empty sequence is allowed
	file = writeFile(t, dir, "empty.fasta", ">empty\n")
	record, err = ReadRecord(file, seq.Unlimit)
	if err != nil {
		t.Error(err)
		return
	}
	if len(record.Seq) != 0 {
		t.Errorf("expected an empty sequence, returned %s", record.Seq)
	}
}

func TestReadRecordErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		kind    align.Kind
	}{
		{"two.fasta", ">s1\nACGT\n>s2\nACGT\n", align.MalformedRecord},
		{"noheader.fasta", "ACGTACGT\n", align.MalformedRecord},
		{"blank.fasta", "", align.MalformedRecord},
	}
	for _, test := range tests {
		file := writeFile(t, dir, test.name, test.content)
		_, err := ReadRecord(file, seq.Unlimit)
		if align.KindOf(err) != test.kind {
			t.Errorf("%s: expected kind %s, returned: %v", test.name, test.kind, err)
		}
	}

	_, err := ReadRecord(filepath.Join(dir, "not-existed.fasta"), seq.Unlimit)
	if align.KindOf(err) != align.IOFailure {
		t.Errorf("expected kind %s, returned: %v", align.IOFailure, err)
	}
}

func TestReadPair(t *testing.T) {
	dir := t.TempDir()
	f1 := writeFile(t, dir, "1.fa", ">s1\nGATTACA\n")
	f2 := writeFile(t, dir, "2.fa", ">s2\nGCATGCU\n")
	f3 := writeFile(t, dir, "3.fa", ">s3\nTTT\n")

	_, _, err := ReadPair([]string{f1}, seq.Unlimit)
	if align.KindOf(err) != align.MissingInput {
		t.Errorf("expected kind %s, returned: %v", align.MissingInput, err)
	}

	a, b, err := ReadPair([]string{f1, f2, f3}, seq.Unlimit)
	if err != nil {
		t.Error(err)
		return
	}
	if string(a.Label) != "s1" || string(b.Label) != "s2" {
		t.Errorf("expected s1 and s2, returned %s and %s", a.Label, b.Label)
	}
}

func TestWriteAlignment(t *testing.T) {
	var buf bytes.Buffer
	err := WriteAlignment(&buf, []byte("s1 desc"), []byte("AC-GTA"), []byte("s2"), []byte("ACAGT-"), 4)
	if err != nil {
		t.Error(err)
		return
	}
	expected := ">s1 desc\nAC-G\nTA\n>s2\nACAG\nT-\n"
	if buf.String() != expected {
		t.Errorf("expected:\n%s\nreturned:\n%s", expected, buf.String())
	}

	buf.Reset()
	err = WriteAlignment(&buf, []byte("s1"), []byte("ACGT"), []byte("s2"), []byte("ACGT"), 0)
	if err != nil {
		t.Error(err)
		return
	}
	if buf.String() != ">s1\nACGT\n>s2\nACGT\n" {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
