package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tabkit/tabrec/pkg/dsv"
	"github.com/tabkit/tabrec/pkg/schema"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate files against a schema",
	Long: `Read every row of the given files and report the ones that do not
parse: wrong field counts, unparseable values, mismatched headers.

The exit status is non-zero when any file has invalid rows.

Examples:
  tabrec check pets.tsv
  tabrec check --schema pet.yaml pets.tsv visits.tsv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sch, err := loadSchemaFlag()
		if err != nil {
			return err
		}

		cfg := dsv.ReaderConfig{Format: fileFormat()}
		var invalid int
		for _, path := range args {
			report, err := checkFile(path, sch, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.Printf("%s: %d rows, %d invalid\n", path, report.rows, report.invalid)
			invalid += report.invalid
		}
		if invalid > 0 {
			return fmt.Errorf("%d invalid rows", invalid)
		}
		return nil
	},
}

// checkReport summarizes one file's validation pass.
type checkReport struct {
	rows    int
	invalid int
}

// checkFile reads every row of path, writing one line per invalid row to
// errw. Errors that prevent reading at all, like a missing file or a
// mismatched header, are returned instead of counted.
func checkFile(path string, sch *schema.Schema, cfg dsv.ReaderConfig, errw io.Writer) (checkReport, error) {
	var report checkReport

	r, err := dsv.NewDynamicReader(path, sch, cfg)
	if err != nil {
		return report, err
	}
	defer r.Close()

	for {
		_, err := r.Read()
		if errors.Is(err, io.EOF) {
			return report, nil
		}
		report.rows++

		var rowErr *dsv.RowError
		if errors.As(err, &rowErr) {
			report.invalid++
			fmt.Fprintln(errw, rowErr)
			continue
		}
		if err != nil {
			return report, err
		}
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
