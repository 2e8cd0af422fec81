package dsv

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/tabkit/tabrec/pkg/fsx"
	"github.com/tabkit/tabrec/pkg/schema"
)

// WriteMode selects how a writer opens its file.
type WriteMode int

const (
	// Write creates or truncates the file and starts it with a header.
	Write WriteMode = iota
	// Append adds rows to an existing file. The file's header must match
	// the fields being written, so no new header is emitted.
	Append
)

func (m WriteMode) String() string {
	switch m {
	case Write:
		return "write"
	case Append:
		return "append"
	default:
		return fmt.Sprintf("WriteMode(%d)", int(m))
	}
}

// ParseWriteMode maps the mode names and their single-letter forms to a
// WriteMode.
func ParseWriteMode(s string) (WriteMode, error) {
	switch s {
	case "write", "w":
		return Write, nil
	case "append", "a":
		return Append, nil
	default:
		return 0, fmt.Errorf("mode must be either 'write' or 'append': %s", s)
	}
}

// WriterConfig holds the options shared by all writers. The zero value
// writes tab-separated output to a new or truncated file with no
// projection.
type WriterConfig struct {
	Format Format
	Mode   WriteMode

	// FailIfExists refuses to replace an existing file in Write mode.
	FailIfExists bool

	// Include emits only the named fields, in the order given. Exclude
	// emits all but the named fields, in schema order. Setting both is an
	// error.
	Include []string
	Exclude []string

	// Preface lines are written before the header in Write mode. Lines
	// that do not already start with the comment prefix get it prepended.
	Preface []string

	// BufferSize for the underlying buffered writer. Zero picks the
	// bufio default.
	BufferSize int
}

// rawWriter is the schema-driven row writer underneath Writer and
// DynamicWriter.
type rawWriter struct {
	path       string
	sch        *schema.Schema
	format     Format
	fieldnames []string

	file   *os.File
	bw     *bufio.Writer
	closed bool
}

// openRawWriter validates the configuration and path in order: projection
// first, since a conflicting projection is a caller bug that should surface
// before any file is touched; then the mode's filesystem checks; then, for
// appends, the header of the existing file.
func openRawWriter(path string, sch *schema.Schema, cfg WriterConfig) (*rawWriter, error) {
	format, err := cfg.Format.normalize()
	if err != nil {
		return nil, err
	}

	fieldnames, err := projectFieldnames(sch, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	switch cfg.Mode {
	case Write:
		if err := fsx.CheckWritable(path, !cfg.FailIfExists); err != nil {
			return nil, err
		}
	case Append:
		if err := fsx.CheckAppendable(path); err != nil {
			return nil, err
		}
		if err := checkHeaderMatches(path, format, sch.Name(), fieldnames); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown write mode %d", int(cfg.Mode))
	}

	var file *os.File
	if cfg.Mode == Append {
		file, err = os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	} else {
		file, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	}
	if err != nil {
		return nil, err
	}

	w := &rawWriter{
		path:       path,
		sch:        sch,
		format:     format,
		fieldnames: fieldnames,
		file:       file,
		bw:         bufio.NewWriterSize(file, cfg.BufferSize),
	}

	if cfg.Mode == Write {
		if err := w.writeHeader(cfg.Preface); err != nil {
			file.Close()
			return nil, err
		}
	}
	return w, nil
}

// checkHeaderMatches re-reads the header of an existing file and compares
// its fieldnames, in order, against the fields about to be appended.
func checkHeaderMatches(path string, format Format, schemaName string, fieldnames []string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	header, err := ReadHeader(bufio.NewReader(file), format)
	if err != nil {
		if errors.Is(err, ErrNoHeader) {
			return fmt.Errorf("%s: %w", path, err)
		}
		return err
	}

	if !slices.Equal(header.Fieldnames, fieldnames) {
		return &FieldMismatchError{
			Path:   path,
			Schema: schemaName,
			Want:   fieldnames,
			Got:    header.Fieldnames,
		}
	}
	return nil
}

func (w *rawWriter) writeHeader(preface []string) error {
	for _, line := range preface {
		if line != "" && !strings.HasPrefix(line, w.format.Comment) {
			line = w.format.Comment + " " + line
		}
		if _, err := w.bw.WriteString(line); err != nil {
			return err
		}
		if err := w.bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if _, err := w.bw.WriteString(strings.Join(w.fieldnames, w.format.Delimiter)); err != nil {
		return err
	}
	return w.bw.WriteByte('\n')
}

func (w *rawWriter) write(rec any) error {
	if w.closed {
		return fmt.Errorf("%s: %w", w.path, ErrClosed)
	}
	tokens, err := w.sch.Row(rec, w.fieldnames)
	if err != nil {
		return err
	}
	if _, err := w.bw.WriteString(strings.Join(tokens, w.format.Delimiter)); err != nil {
		return err
	}
	return w.bw.WriteByte('\n')
}

func (w *rawWriter) flush() error {
	if w.closed {
		return fmt.Errorf("%s: %w", w.path, ErrClosed)
	}
	return w.bw.Flush()
}

func (w *rawWriter) sync() error {
	if err := w.flush(); err != nil {
		return err
	}
	return w.file.Sync()
}

func (w *rawWriter) close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	flushErr := w.bw.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Writer writes records of type T to a delimited file.
type Writer[T any] struct {
	raw *rawWriter
}

// NewWriter derives a schema from T and opens path for writing according to
// cfg.Mode. In Write mode the header goes out immediately, so a writer that
// is closed without any Write calls still leaves a valid, readable file.
func NewWriter[T any](path string, cfg WriterConfig) (*Writer[T], error) {
	sch, err := schema.For[T]()
	if err != nil {
		return nil, err
	}
	raw, err := openRawWriter(path, sch, cfg)
	if err != nil {
		return nil, err
	}
	return &Writer[T]{raw: raw}, nil
}

// Write emits one record as a single line.
func (w *Writer[T]) Write(rec T) error { return w.raw.write(rec) }

// WriteAll emits the records in order, stopping at the first failure.
func (w *Writer[T]) WriteAll(recs []T) error {
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Fieldnames returns the projected fieldnames this writer emits, in output
// order.
func (w *Writer[T]) Fieldnames() []string { return slices.Clone(w.raw.fieldnames) }

// Flush pushes buffered rows to the operating system.
func (w *Writer[T]) Flush() error { return w.raw.flush() }

// Sync flushes buffered rows and asks the operating system to commit them
// to stable storage.
func (w *Writer[T]) Sync() error { return w.raw.sync() }

// Close flushes any buffered rows and releases the file. It is safe to call
// more than once.
func (w *Writer[T]) Close() error { return w.raw.close() }

// DynamicWriter writes schema.Record rows, for callers that only know the
// schema at runtime.
type DynamicWriter struct {
	raw *rawWriter
}

// NewDynamicWriter opens path for writing rows of a schema built with
// schema.New.
func NewDynamicWriter(path string, sch *schema.Schema, cfg WriterConfig) (*DynamicWriter, error) {
	if sch == nil {
		return nil, fmt.Errorf("dynamic writer requires a schema")
	}
	if !sch.Dynamic() {
		return nil, fmt.Errorf("dynamic writer requires a schema built with schema.New, got %s", sch.Name())
	}
	raw, err := openRawWriter(path, sch, cfg)
	if err != nil {
		return nil, err
	}
	return &DynamicWriter{raw: raw}, nil
}

// Write emits one row as a single line.
func (w *DynamicWriter) Write(rec schema.Record) error { return w.raw.write(rec) }

// WriteAll emits the rows in order, stopping at the first failure.
func (w *DynamicWriter) WriteAll(recs []schema.Record) error {
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Fieldnames returns the projected fieldnames this writer emits, in output
// order.
func (w *DynamicWriter) Fieldnames() []string { return slices.Clone(w.raw.fieldnames) }

// Flush pushes buffered rows to the operating system.
func (w *DynamicWriter) Flush() error { return w.raw.flush() }

// Sync flushes buffered rows and asks the operating system to commit them
// to stable storage.
func (w *DynamicWriter) Sync() error { return w.raw.sync() }

// Close flushes any buffered rows and releases the file. It is safe to call
// more than once.
func (w *DynamicWriter) Close() error { return w.raw.close() }
