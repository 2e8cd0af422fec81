package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tabkit/tabrec/pkg/schema"
)

// schemaFile is the YAML form of a record schema:
//
//	name: pet
//	fields:
//	  - name: name
//	    type: string
//	  - name: age
//	    type: int
type schemaFile struct {
	Name   string            `yaml:"name"`
	Fields []schemaFileField `yaml:"fields"`
}

type schemaFileField struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// loadSchemaFile reads a YAML schema description and builds the schema it
// declares.
func loadSchemaFile(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var sf schemaFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	fields := make([]schema.Field, 0, len(sf.Fields))
	for _, f := range sf.Fields {
		kind, err := schema.ParseKind(f.Type)
		if err != nil {
			return nil, fmt.Errorf("schema file %s: field %s: %w", path, f.Name, err)
		}
		fields = append(fields, schema.Field{Name: f.Name, Kind: kind})
	}
	return schema.New(sf.Name, fields)
}

// loadSchemaFlag loads the --schema file, or returns nil when the flag is
// unset so readers infer an all-string schema from the file header.
func loadSchemaFlag() (*schema.Schema, error) {
	if flagSchema == "" {
		return nil, nil
	}
	return loadSchemaFile(flagSchema)
}
