// Package dsv reads and writes delimiter-separated files whose rows are
// typed records, validated against a schema before any data moves.
//
// # File Layout
//
// A file has three sections:
//
//	# optional preface: comment lines and blank lines
//	name	species	age_years
//	rex	dog	4
//	milo	cat	2
//
// The preface holds any number of lines that start with the comment prefix
// or contain only whitespace. The first line after the preface names the
// fields, and every line after that is one record. Tokens within a line are
// separated by the delimiter, tab by default. Values are written verbatim:
// a value that contains the delimiter or a line break is outside this
// format's contract, and quoting is not applied or interpreted.
//
// # Reading
//
// A Reader decodes each line into a struct:
//
//	type Pet struct {
//	    Name     string  `dsv:"name"`
//	    Species  string  `dsv:"species"`
//	    AgeYears int     `dsv:"age_years"`
//	}
//
//	r, err := dsv.NewReader[Pet]("pets.tsv", dsv.ReaderConfig{})
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for {
//	    pet, err := r.Read()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // use pet
//	}
//
// The file's header must name exactly the struct's fields, in declaration
// order; anything else fails at open with a *FieldMismatchError. Failures
// on an individual row (wrong token count, an unparseable value) come back
// as a *RowError carrying the path and line number, and the reader stays
// usable: the next Read picks up at the following line.
//
// # Writing
//
// A Writer does the reverse, emitting the header before the first record:
//
//	w, err := dsv.NewWriter[Pet]("pets.tsv", dsv.WriterConfig{})
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	if err := w.Write(Pet{Name: "rex", Species: "dog", AgeYears: 4}); err != nil {
//	    return err
//	}
//
// Append mode validates the existing file's header against the outgoing
// fields before the file is opened for writing, so a mismatched append
// fails without modifying anything. The Include and Exclude options project
// the output columns; Include also reorders them.
//
// # Dynamic Schemas
//
// DynamicReader and DynamicWriter work with schemas built at runtime from
// a field list instead of a struct type. Rows are schema.Record maps. A
// DynamicReader opened with a nil schema reads every field as a string,
// taking the fieldnames from the file itself.
//
// # Validation Order
//
// Opening a reader or writer validates in a fixed order: configuration and
// projection first (no I/O), then the path, then the file's header. The
// first failing layer wins, and nothing is created or truncated until every
// check has passed.
package dsv
