//go:build fuzz
// +build fuzz

package dsv

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tabkit/tabrec/pkg/schema"
)

// FuzzReadHeader feeds arbitrary bytes to the header scanner. Any error is
// acceptable; panics and empty fieldname lists are not.
func FuzzReadHeader(f *testing.F) {
	f.Add([]byte("foo\tbar\nabc\t1\n"))
	f.Add([]byte("# comment\n\nfoo\n"))
	f.Add([]byte(""))
	f.Add([]byte("no newline at all"))
	f.Add([]byte{0xff, 0xfe, 0x00})

	f.Fuzz(func(t *testing.T, data []byte) {
		header, err := ReadHeader(bufio.NewReader(bytes.NewReader(data)), Format{})
		if err != nil {
			return
		}
		if len(header.Fieldnames) == 0 {
			t.Fatalf("header with no fieldnames from %q", data)
		}
	})
}

// FuzzRoundTrip writes a two-field record and reads it back. Values that
// the format cannot represent are skipped: the delimiter and line breaks
// are forbidden inside tokens, and a row of whitespace-only tokens reads
// back as a blank line.
func FuzzRoundTrip(f *testing.F) {
	f.Add("rex", "dog")
	f.Add("", "x")
	f.Add("white space", " padded ")
	f.Add("émoji 🐕", "unicode")

	f.Fuzz(func(t *testing.T, name, species string) {
		for _, s := range []string{name, species} {
			if strings.ContainsAny(s, "\t\n\r") {
				t.Skip("not representable inside a token")
			}
		}
		if strings.TrimSpace(name+species) == "" {
			t.Skip("whitespace-only rows read back as blank lines")
		}

		sch, err := schema.New("pair", []schema.Field{
			{Name: "name", Kind: schema.KindString},
			{Name: "species", Kind: schema.KindString},
		})
		if err != nil {
			t.Fatal(err)
		}

		path := filepath.Join(t.TempDir(), "pair.tsv")
		w, err := NewDynamicWriter(path, sch, WriterConfig{})
		if err != nil {
			t.Fatal(err)
		}
		rec := schema.Record{"name": name, "species": species}
		if err := w.Write(rec); err != nil {
			t.Fatalf("write %q/%q: %v", name, species, err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}

		r, err := NewDynamicReader(path, sch, ReaderConfig{})
		if err != nil {
			t.Fatal(err)
		}
		defer r.Close()

		got, err := r.Read()
		if err != nil {
			t.Fatalf("read back %q/%q: %v", name, species, err)
		}
		if got["name"] != name || got["species"] != species {
			t.Errorf("round trip changed the row: got %v, want %q/%q", got, name, species)
		}

		if _, err := r.Read(); !errors.Is(err, io.EOF) {
			t.Errorf("expected one row, second read returned %v", err)
		}
	})
}
