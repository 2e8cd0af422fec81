package dsv

import (
	"github.com/tabkit/tabrec/pkg/schema"
)

// projectFieldnames resolves the Include/Exclude options of a writer into
// the concrete ordered list of fieldnames to emit.
//
//   - Include selects exactly the named fields, in the order given.
//   - Exclude keeps the schema's field order and drops the named fields.
//   - Setting both fails with ErrProjectionConflict; this is checked before
//     any file is touched.
//
// Every name in either list must be a schema field, and the result must
// select at least one field.
func projectFieldnames(s *schema.Schema, include, exclude []string) ([]string, error) {
	if len(include) > 0 && len(exclude) > 0 {
		return nil, ErrProjectionConflict
	}

	switch {
	case len(include) > 0:
		seen := make(map[string]bool, len(include))
		out := make([]string, 0, len(include))
		for _, name := range include {
			if !s.Has(name) {
				return nil, &schema.UnknownFieldError{Schema: s.Name(), Field: name}
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
		if len(out) == 0 {
			return nil, ErrEmptyProjection
		}
		return out, nil

	case len(exclude) > 0:
		drop := make(map[string]bool, len(exclude))
		for _, name := range exclude {
			if !s.Has(name) {
				return nil, &schema.UnknownFieldError{Schema: s.Name(), Field: name}
			}
			drop[name] = true
		}
		var out []string
		for _, name := range s.Fieldnames() {
			if !drop[name] {
				out = append(out, name)
			}
		}
		if len(out) == 0 {
			return nil, ErrEmptyProjection
		}
		return out, nil

	default:
		return s.Fieldnames(), nil
	}
}
