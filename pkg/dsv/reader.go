package dsv

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strings"

	"github.com/tabkit/tabrec/pkg/fsx"
	"github.com/tabkit/tabrec/pkg/schema"
)

// RaggedPolicy decides what happens when a data row's token count differs
// from the header's field count.
type RaggedPolicy int

const (
	// RaggedStrict fails the row with a *ShapeError wrapped in a *RowError.
	RaggedStrict RaggedPolicy = iota
	// RaggedFlexible pads short rows with empty tokens and drops extra
	// tokens.
	RaggedFlexible
)

// ReaderConfig holds the options shared by all readers. The zero value reads
// tab-separated files with "#" comments and strict row shapes.
type ReaderConfig struct {
	Format Format
	Ragged RaggedPolicy
}

// rawReader is the schema-driven line reader underneath Reader and
// DynamicReader. It owns the file handle and the position bookkeeping.
type rawReader struct {
	path   string
	sch    *schema.Schema
	format Format
	ragged RaggedPolicy

	file   *os.File
	br     *bufio.Reader
	header *Header
	line   int // physical line number of the last line consumed
	closed bool
}

// openRaw validates the path, reads the header, and checks it against the
// schema. A nil schema is replaced by an all-string schema built from the
// file's own header.
func openRaw(path string, sch *schema.Schema, cfg ReaderConfig) (*rawReader, error) {
	format, err := cfg.Format.normalize()
	if err != nil {
		return nil, err
	}

	file, err := fsx.OpenRead(path)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(file)
	header, err := ReadHeader(br, format)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if sch == nil {
		fields := make([]schema.Field, len(header.Fieldnames))
		for i, name := range header.Fieldnames {
			fields[i] = schema.Field{Name: name, Kind: schema.KindString}
		}
		sch, err = schema.New("row", fields)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	} else if !slices.Equal(header.Fieldnames, sch.Fieldnames()) {
		file.Close()
		return nil, &FieldMismatchError{
			Path:   path,
			Schema: sch.Name(),
			Want:   sch.Fieldnames(),
			Got:    header.Fieldnames,
		}
	}

	return &rawReader{
		path:   path,
		sch:    sch,
		format: format,
		ragged: cfg.Ragged,
		file:   file,
		br:     br,
		header: header,
		line:   len(header.Preface) + 1,
	}, nil
}

// read returns the next record, skipping lines that contain only
// whitespace. io.EOF signals a cleanly exhausted file. Failures on a data
// row come back as *RowError and do not advance past recovery: the next
// read continues with the following line.
func (r *rawReader) read() (any, error) {
	if r.closed {
		return nil, fmt.Errorf("%s: %w", r.path, ErrClosed)
	}

	want := len(r.header.Fieldnames)
	for {
		line, err := readLine(r.br)
		if err != nil {
			return nil, err
		}
		r.line++

		if strings.TrimSpace(line) == "" {
			continue
		}

		tokens := strings.Split(line, r.format.Delimiter)
		if len(tokens) != want {
			if r.ragged != RaggedFlexible {
				return nil, &RowError{
					Path: r.path,
					Line: r.line,
					Err:  &ShapeError{Got: len(tokens), Want: want},
				}
			}
			for len(tokens) < want {
				tokens = append(tokens, "")
			}
			tokens = tokens[:want]
		}

		row := make(map[string]string, want)
		for i, name := range r.header.Fieldnames {
			row[name] = tokens[i]
		}

		rec, err := r.sch.Build(row)
		if err != nil {
			return nil, &RowError{Path: r.path, Line: r.line, Err: err}
		}
		return rec, nil
	}
}

func (r *rawReader) headerCopy() Header {
	return Header{
		Preface:    slices.Clone(r.header.Preface),
		Fieldnames: slices.Clone(r.header.Fieldnames),
	}
}

func (r *rawReader) close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

// Reader reads records of type T from a delimited file. It is a single
// forward pass over the file: records already read cannot be revisited.
type Reader[T any] struct {
	raw *rawReader
}

// NewReader derives a schema from T and opens path for reading. The file
// must begin with a header naming exactly T's fields, in declaration order.
func NewReader[T any](path string, cfg ReaderConfig) (*Reader[T], error) {
	sch, err := schema.For[T]()
	if err != nil {
		return nil, err
	}
	raw, err := openRaw(path, sch, cfg)
	if err != nil {
		return nil, err
	}
	return &Reader[T]{raw: raw}, nil
}

// Read returns the next record. io.EOF signals the end of the file. A
// *RowError leaves the reader usable; the next Read continues below the
// failed line.
func (r *Reader[T]) Read() (T, error) {
	rec, err := r.raw.read()
	if err != nil {
		var zero T
		return zero, err
	}
	return rec.(T), nil
}

// All reads every remaining record.
func (r *Reader[T]) All() ([]T, error) {
	var out []T
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

// Iter returns a single-use iterator over the remaining records. The first
// error ends the iteration; io.EOF itself is not yielded.
func (r *Reader[T]) Iter() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			rec, err := r.Read()
			if err == io.EOF {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Header returns a copy of the file's header, including its preface lines.
func (r *Reader[T]) Header() Header { return r.raw.headerCopy() }

// Close releases the underlying file. It is safe to call more than once.
func (r *Reader[T]) Close() error { return r.raw.close() }

// DynamicReader reads rows as schema.Record values, for callers that only
// know the schema at runtime.
type DynamicReader struct {
	raw *rawReader
}

// NewDynamicReader opens path using a schema built with schema.New. A nil
// schema reads every field as a string, taking fieldnames from the file's
// own header.
func NewDynamicReader(path string, sch *schema.Schema, cfg ReaderConfig) (*DynamicReader, error) {
	if sch != nil && !sch.Dynamic() {
		return nil, fmt.Errorf("dynamic reader requires a schema built with schema.New, got %s", sch.Name())
	}
	raw, err := openRaw(path, sch, cfg)
	if err != nil {
		return nil, err
	}
	return &DynamicReader{raw: raw}, nil
}

// Read returns the next row. io.EOF signals the end of the file.
func (r *DynamicReader) Read() (schema.Record, error) {
	rec, err := r.raw.read()
	if err != nil {
		return nil, err
	}
	return rec.(schema.Record), nil
}

// All reads every remaining row.
func (r *DynamicReader) All() ([]schema.Record, error) {
	var out []schema.Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

// Iter returns a single-use iterator over the remaining rows.
func (r *DynamicReader) Iter() iter.Seq2[schema.Record, error] {
	return func(yield func(schema.Record, error) bool) {
		for {
			rec, err := r.Read()
			if err == io.EOF {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Schema returns the schema rows are decoded with. When the reader was
// opened without one, this is the all-string schema inferred from the file.
func (r *DynamicReader) Schema() *schema.Schema { return r.raw.sch }

// Header returns a copy of the file's header, including its preface lines.
func (r *DynamicReader) Header() Header { return r.raw.headerCopy() }

// Close releases the underlying file. It is safe to call more than once.
func (r *DynamicReader) Close() error { return r.raw.close() }
