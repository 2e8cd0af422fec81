package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabkit/tabrec/pkg/dsv"
	"github.com/tabkit/tabrec/pkg/fsx"
	"github.com/tabkit/tabrec/pkg/schema"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Rewrite a file with a new delimiter or field selection",
	Long: `Rewrite a delimited file: change its delimiter or comment prefix,
keep only some of its fields, or reorder them. The preface is carried
over. Exactly one of --out or --in-place must be given.

Examples:
  tabrec convert pets.tsv --out pets.csv --to-delimiter ,
  tabrec convert pets.tsv --in-place --exclude owner_email
  tabrec convert pets.tsv --out names.tsv --include name`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		inPlace, _ := cmd.Flags().GetBool("in-place")
		toDelimiter, _ := cmd.Flags().GetString("to-delimiter")
		toComment, _ := cmd.Flags().GetString("to-comment")
		include, _ := cmd.Flags().GetStringSlice("include")
		exclude, _ := cmd.Flags().GetStringSlice("exclude")
		force, _ := cmd.Flags().GetBool("force")

		if (out != "") == inPlace {
			return errors.New("exactly one of --out or --in-place is required")
		}

		sch, err := loadSchemaFlag()
		if err != nil {
			return err
		}

		outFormat := fileFormat()
		if toDelimiter != "" {
			outFormat.Delimiter = unescapeDelimiter(toDelimiter)
		}
		if toComment != "" {
			outFormat.Comment = toComment
		}

		inCfg := dsv.ReaderConfig{Format: fileFormat()}
		outCfg := dsv.WriterConfig{
			Format:       outFormat,
			FailIfExists: !force,
			Include:      include,
			Exclude:      exclude,
		}

		src := args[0]
		if inPlace {
			tmp := fsx.TempSibling(src)
			outCfg.FailIfExists = false
			if err := convertFile(src, tmp, sch, inCfg, outCfg); err != nil {
				os.Remove(tmp)
				return err
			}
			return os.Rename(tmp, src)
		}
		return convertFile(src, out, sch, inCfg, outCfg)
	},
}

// convertFile copies src to dst row by row, projecting fields and swapping
// the output format. The source preface is carried over ahead of any
// preface already present in out.
func convertFile(src, dst string, sch *schema.Schema, in dsv.ReaderConfig, out dsv.WriterConfig) error {
	r, err := dsv.NewDynamicReader(src, sch, in)
	if err != nil {
		return err
	}
	defer r.Close()

	out.Preface = append(r.Header().Preface, out.Preface...)
	w, err := dsv.NewDynamicWriter(dst, r.Schema(), out)
	if err != nil {
		return err
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			w.Close()
			return err
		}
		if err := w.Write(rec); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

func init() {
	convertCmd.Flags().String("out", "", "path of the converted file")
	convertCmd.Flags().Bool("in-place", false, "replace the input file with the converted output")
	convertCmd.Flags().String("to-delimiter", "", "delimiter for the output (defaults to the input delimiter)")
	convertCmd.Flags().String("to-comment", "", "comment prefix for the output (defaults to the input prefix)")
	convertCmd.Flags().StringSlice("include", nil, "emit only these fields, in the order given")
	convertCmd.Flags().StringSlice("exclude", nil, "emit all but these fields")
	convertCmd.Flags().Bool("force", false, "replace --out if it already exists")
	rootCmd.AddCommand(convertCmd)
}
