package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukunda-/mdb-tools/internal/engine"
	"github.com/mukunda-/mdb-tools/internal/source"
)

func TestDiffFieldSets_AdditionalFields(t *testing.T) {
	fieldsA := []source.FieldDescriptor{fld("ID", "int", 0), fld("Name", "varchar", 50), fld("Legacy", "text", 0)}
	fieldsB := []source.FieldDescriptor{fld("ID", "int", 0), fld("Name", "varchar", 50), fld("Created", "datetime", 0)}

	additional, diffs := engine.DiffFieldSets("Customers", fieldsA, fieldsB, engine.Options{})

	assert.Empty(t, diffs)
	require.Len(t, additional, 2)
	assert.Equal(t, engine.AdditionalField{Source: engine.SourceA, Table: "Customers", Field: "Legacy"}, additional[0])
	assert.Equal(t, engine.AdditionalField{Source: engine.SourceB, Table: "Customers", Field: "Created"}, additional[1])
}

func TestDiffFieldSets_AttributeDifferences(t *testing.T) {
	fa := fld("Amount", "int", 4)
	fa.Required = true
	fb := fld("Amount", "decimal", 8)

	additional, diffs := engine.DiffFieldSets("Orders",
		[]source.FieldDescriptor{fa}, []source.FieldDescriptor{fb}, engine.Options{})

	// A matched pair emits only attribute differences, never an
	// AdditionalField as well.
	assert.Empty(t, additional)
	require.Len(t, diffs, 3)

	byAttr := map[string]engine.FieldAttributeDifference{}
	for _, d := range diffs {
		byAttr[d.Attribute] = d
	}
	assert.Equal(t, "int", byAttr["type"].ValueA)
	assert.Equal(t, "decimal", byAttr["type"].ValueB)
	assert.Equal(t, "4", byAttr["size"].ValueA)
	assert.Equal(t, "8", byAttr["size"].ValueB)
	assert.Equal(t, "true", byAttr["required"].ValueA)
	assert.Equal(t, "false", byAttr["required"].ValueB)
}

func TestDiffFieldSets_DefaultValueComparison(t *testing.T) {
	fa := fld("Status", "varchar", 10)
	fa.Default = nullString("'new'")
	fb := fld("Status", "varchar", 10)

	_, diffs := engine.DiffFieldSets("Orders",
		[]source.FieldDescriptor{fa}, []source.FieldDescriptor{fb}, engine.Options{})

	require.Len(t, diffs, 1)
	assert.Equal(t, "default", diffs[0].Attribute)
	assert.Equal(t, "'new'", diffs[0].ValueA)
	assert.Equal(t, "NULL", diffs[0].ValueB)
}

func TestDiffFieldSets_AllowEmptyExcludedByDefault(t *testing.T) {
	fa := fld("Notes", "text", 0)
	fb := fld("Notes", "text", 0)
	fb.AllowEmpty = false

	_, diffs := engine.DiffFieldSets("T", []source.FieldDescriptor{fa}, []source.FieldDescriptor{fb}, engine.Options{})
	assert.Empty(t, diffs)

	_, diffs = engine.DiffFieldSets("T", []source.FieldDescriptor{fa}, []source.FieldDescriptor{fb},
		engine.Options{CompareAllowEmpty: true})
	require.Len(t, diffs, 1)
	assert.Equal(t, "allow-empty", diffs[0].Attribute)
}

func TestDiffFieldSets_CaseInsensitiveNameMatch(t *testing.T) {
	fieldsA := []source.FieldDescriptor{fld("CustomerID", "int", 0)}
	fieldsB := []source.FieldDescriptor{fld("customerid", "int", 0)}

	additional, diffs := engine.DiffFieldSets("T", fieldsA, fieldsB, engine.Options{})
	assert.Empty(t, additional)
	assert.Empty(t, diffs)
}

func TestCommonFields_OrderAndSpelling(t *testing.T) {
	fieldsA := []source.FieldDescriptor{fld("C", "int", 0), fld("A", "int", 0), fld("B", "int", 0)}
	fieldsB := []source.FieldDescriptor{fld("a", "int", 0), fld("b", "int", 0), fld("X", "int", 0)}

	// A's order and A's spelling.
	assert.Equal(t, []string{"A", "B"}, engine.CommonFields(fieldsA, fieldsB, engine.Options{}))
}
