package engine

import (
	"strconv"

	"github.com/mukunda-/mdb-tools/internal/source"
)

// fieldAttribute pairs an attribute name with its accessor so the comparison
// loop stays declarative. Values are stringified up front; strict inequality
// on the strings is the comparison.
type fieldAttribute struct {
	name string
	get  func(source.FieldDescriptor) string
}

var comparedAttributes = []fieldAttribute{
	{"type", func(f source.FieldDescriptor) string { return f.Type }},
	{"size", func(f source.FieldDescriptor) string { return strconv.Itoa(f.Size) }},
	{"default", func(f source.FieldDescriptor) string {
		if !f.Default.Valid {
			return "NULL"
		}
		return f.Default.String
	}},
	{"required", func(f source.FieldDescriptor) string { return strconv.FormatBool(f.Required) }},
}

var allowEmptyAttribute = fieldAttribute{
	"allow-empty",
	func(f source.FieldDescriptor) string { return strconv.FormatBool(f.AllowEmpty) },
}

// DiffFieldSets compares the field lists of a table present in both sources.
// Each A field either pairs with a B field (emitting one attribute difference
// per differing attribute) or emits AdditionalField(A); B fields left
// unmatched emit AdditionalField(B) in B's original order. A field never
// produces both kinds of record.
func DiffFieldSets(table string, fieldsA, fieldsB []source.FieldDescriptor, opts Options) ([]AdditionalField, []FieldAttributeDifference) {
	opts = opts.withDefaults()

	attrs := comparedAttributes
	if opts.CompareAllowEmpty {
		attrs = append(append([]fieldAttribute{}, comparedAttributes...), allowEmptyAttribute)
	}

	lookupB := make(map[string]source.FieldDescriptor, len(fieldsB))
	for _, f := range fieldsB {
		lookupB[opts.nameKey(f.Name)] = f
	}
	remainingB := make(map[string]bool, len(fieldsB))
	for _, f := range fieldsB {
		remainingB[opts.nameKey(f.Name)] = true
	}

	var additional []AdditionalField
	var diffs []FieldAttributeDifference

	for _, fa := range fieldsA {
		key := opts.nameKey(fa.Name)
		fb, ok := lookupB[key]
		if !ok {
			additional = append(additional, AdditionalField{Source: SourceA, Table: table, Field: fa.Name})
			continue
		}
		delete(remainingB, key)
		for _, attr := range attrs {
			va, vb := attr.get(fa), attr.get(fb)
			if va != vb {
				diffs = append(diffs, FieldAttributeDifference{
					Table:     table,
					Field:     fa.Name,
					Attribute: attr.name,
					ValueA:    va,
					ValueB:    vb,
				})
			}
		}
	}

	for _, fb := range fieldsB {
		if remainingB[opts.nameKey(fb.Name)] {
			additional = append(additional, AdditionalField{Source: SourceB, Table: table, Field: fb.Name})
		}
	}

	return additional, diffs
}

// CommonFields returns the names present in both field lists, in A's order
// and A's spelling. This exact list is handed to the row cursors so the
// positional alignment downstream is well-defined.
func CommonFields(fieldsA, fieldsB []source.FieldDescriptor, opts Options) []string {
	opts = opts.withDefaults()

	keysB := make(map[string]bool, len(fieldsB))
	for _, f := range fieldsB {
		keysB[opts.nameKey(f.Name)] = true
	}

	var out []string
	for _, f := range fieldsA {
		if keysB[opts.nameKey(f.Name)] {
			out = append(out, f.Name)
		}
	}
	return out
}
