package validation

import "regexp"

// Field kinds. Text fields only carry requiredness; Date and Email add a
// format check that fires when the value is present.
type Kind int

const (
	Text Kind = iota
	Date
	Email
)

var (
	// DateRegex accepts DD/MM/YYYY with years 1900-2099.
	DateRegex  = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[012])/(19|20)\d\d$`)
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// FieldSpec describes validation for a single field of a row.
type FieldSpec struct {
	Name            string
	Required        bool
	RequiredMessage string
	Kind            Kind
	FormatMessage   string
	Enum            []string
	EnumMessage     string
}

// Schema is the ordered field list for one section's rows.
type Schema struct {
	Section string
	Fields  []FieldSpec
}

// Field returns the spec for a named field, or nil when the schema does
// not validate it.
func (s Schema) Field(name string) *FieldSpec {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// RowErrors maps field name to the first failing message for that field.
// An empty map means the row is valid.
type RowErrors map[string]string

// HasErrors reports whether any field of the row failed.
func (r RowErrors) HasErrors() bool {
	return len(r) > 0
}

// ValidateField checks one value against one field spec. Blank optional
// fields never error; format and enum checks only fire on present values.
func ValidateField(spec *FieldSpec, value string) string {
	if value == "" {
		if spec.Required {
			return spec.RequiredMessage
		}
		return ""
	}
	switch spec.Kind {
	case Date:
		if !DateRegex.MatchString(value) {
			return spec.FormatMessage
		}
	case Email:
		if !emailRegex.MatchString(value) {
			return spec.FormatMessage
		}
	}
	if len(spec.Enum) > 0 {
		for _, allowed := range spec.Enum {
			if value == allowed {
				return ""
			}
		}
		return spec.EnumMessage
	}
	return ""
}

// ValidateRow validates every field of one row and collects all failures
// (not fail-fast).
func ValidateRow(schema Schema, values map[string]string) RowErrors {
	errs := RowErrors{}
	for i := range schema.Fields {
		spec := &schema.Fields[i]
		if msg := ValidateField(spec, values[spec.Name]); msg != "" {
			errs[spec.Name] = msg
		}
	}
	return errs
}

// ValidateRows validates every row independently. The result has the same
// length and order as the input.
func ValidateRows(schema Schema, rows []map[string]string) []RowErrors {
	out := make([]RowErrors, len(rows))
	for i, row := range rows {
		out[i] = ValidateRow(schema, row)
	}
	return out
}

// Tree is the full validation result keyed by section name. Repeatable
// sections map to one RowErrors per row; singleton sections are length 1.
type Tree map[string][]RowErrors

// IsValid reports whether no section contributed any field error.
func (t Tree) IsValid() bool {
	for _, rows := range t {
		for _, row := range rows {
			if row.HasErrors() {
				return false
			}
		}
	}
	return true
}

// SectionHasErrors reports whether any row of the named section failed.
func (t Tree) SectionHasErrors(section string) bool {
	for _, row := range t[section] {
		if row.HasErrors() {
			return true
		}
	}
	return false
}

// FirstErrorSection scans sections in the given priority order and returns
// the first one containing any error, for focus/scroll purposes. Returns
// the empty string when the tree is clean.
func FirstErrorSection(t Tree, order []string) string {
	for _, section := range order {
		if t.SectionHasErrors(section) {
			return section
		}
	}
	return ""
}
