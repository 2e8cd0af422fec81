package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/tabkit/tabrec/pkg/dsv"
	"github.com/tabkit/tabrec/pkg/schema"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Load a file into a SQLite table",
	Long: `Read a delimited file and load its rows into a SQLite database.
The table is created when missing, with column types taken from the
schema: INTEGER for bools and integral fields, REAL for floats, TEXT
for everything else. All rows land in one transaction.

Examples:
  tabrec export pets.tsv --db pets.db
  tabrec export pets.tsv --schema pet.yaml --db pets.db --table pets`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		table, _ := cmd.Flags().GetString("table")

		sch, err := loadSchemaFlag()
		if err != nil {
			return err
		}

		n, err := exportFile(args[0], sch, dsv.ReaderConfig{Format: fileFormat()}, dbPath, table)
		if err != nil {
			return err
		}
		cmd.Printf("exported %d rows to %s\n", n, dbPath)
		return nil
	},
}

// exportFile loads every row of path into the named table, creating the
// table if needed. An empty table name falls back to the schema name.
func exportFile(path string, sch *schema.Schema, cfg dsv.ReaderConfig, dbPath, table string) (int64, error) {
	r, err := dsv.NewDynamicReader(path, sch, cfg)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	if table == "" {
		table = r.Schema().Name()
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return 0, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()
	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)

	fields := r.Schema().Fields()
	cols := make([]string, len(fields))
	names := make([]string, len(fields))
	params := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = fmt.Sprintf("%q %s", f.Name, sqlType(f.Kind))
		names[i] = fmt.Sprintf("%q", f.Name)
		params[i] = "?"
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (%s)", table, strings.Join(cols, ", "))
	if _, err := db.Exec(ddl); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	insert := fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(params, ", "))
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	fieldnames := r.Schema().Fieldnames()
	var n int64
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}

		vals := make([]any, len(fieldnames))
		for i, name := range fieldnames {
			vals[i] = sqlValue(rec[name])
		}
		if _, err := stmt.Exec(vals...); err != nil {
			return 0, fmt.Errorf("insert row: %w", err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// sqlType maps a field kind to a SQLite column type.
func sqlType(k schema.Kind) string {
	switch k {
	case schema.KindBool,
		schema.KindInt, schema.KindInt8, schema.KindInt16, schema.KindInt32, schema.KindInt64,
		schema.KindUint, schema.KindUint8, schema.KindUint16, schema.KindUint32, schema.KindUint64:
		return "INTEGER"
	case schema.KindFloat32, schema.KindFloat64:
		return "REAL"
	default:
		return "TEXT"
	}
}

// sqlValue converts a record value into one of the types database/sql
// accepts as a bind parameter.
func sqlValue(v any) any {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return x
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case time.Duration:
		return x.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func init() {
	exportCmd.Flags().String("db", "", "path of the SQLite database (created when missing)")
	exportCmd.Flags().String("table", "", "table name (defaults to the schema name)")
	exportCmd.MarkFlagRequired("db")
	rootCmd.AddCommand(exportCmd)
}
