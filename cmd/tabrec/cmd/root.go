/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tabkit/tabrec/pkg/dsv"
)

// Flag values shared by every subcommand.
var (
	flagDelimiter string
	flagComment   string
	flagSchema    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tabrec",
	Short: "tabrec - typed delimited text files",
	Long: `tabrec inspects, validates, and rewrites header-first delimited text
files: an optional comment preface, one line of fieldnames, and one
record per line after that.

Rows are checked against a schema. Without --schema every field reads
as a string; with --schema each field is parsed into its declared type
and bad rows are reported with file and line.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDelimiter, "delimiter", "d", `\t`, "field delimiter (\\t for tab)")
	rootCmd.PersistentFlags().StringVar(&flagComment, "comment", "#", "comment prefix for preface lines")
	rootCmd.PersistentFlags().StringVarP(&flagSchema, "schema", "s", "", "YAML schema file; omit to read every field as a string")
}

// unescapeDelimiter lets shells pass the two-character sequence \t in place
// of a raw tab byte.
func unescapeDelimiter(s string) string {
	if s == `\t` {
		return "\t"
	}
	return s
}

// fileFormat builds the dsv.Format selected by the global flags.
func fileFormat() dsv.Format {
	return dsv.Format{
		Delimiter: unescapeDelimiter(flagDelimiter),
		Comment:   flagComment,
	}
}

// openInput opens path for reading with the schema and format selected by
// the global flags.
func openInput(path string) (*dsv.DynamicReader, error) {
	sch, err := loadSchemaFlag()
	if err != nil {
		return nil, err
	}
	return dsv.NewDynamicReader(path, sch, dsv.ReaderConfig{Format: fileFormat()})
}
