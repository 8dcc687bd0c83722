package engine

// Label tags which of the two sources a record belongs to.
type Label string

const (
	SourceA = Label("A")
	SourceB = Label("B")
)

// AdditionalTable records a table present in one source only.
type AdditionalTable struct {
	Source Label
	Table  string
}

// AdditionalField records a field present in one source's table only.
type AdditionalField struct {
	Source Label
	Table  string
	Field  string
}

// FieldAttributeDifference records a common field whose compared attribute
// differs between the sources. Values are stringified for reporting.
type FieldAttributeDifference struct {
	Table     string
	Field     string
	Attribute string
	ValueA    string
	ValueB    string
}

// SchemaDiff is the output of the schema pass.
type SchemaDiff struct {
	AdditionalTables []AdditionalTable
	AdditionalFields []AdditionalField
	AttributeDiffs   []FieldAttributeDifference
}

// Empty reports whether the schema pass found no differences at all.
func (d *SchemaDiff) Empty() bool {
	return len(d.AdditionalTables) == 0 && len(d.AdditionalFields) == 0 && len(d.AttributeDiffs) == 0
}

// RowSnapshot captures one full row at its 1-based sequential position.
type RowSnapshot struct {
	Row    int
	Values []string
}

// RowPair holds the two aligned snapshots of a divergent row.
type RowPair struct {
	A RowSnapshot
	B RowSnapshot
}

// RowDivergence accumulates the divergent row pairs of a single table scan.
// Pairs never exceeds the stop threshold; Truncated is true iff the scan
// stopped early because of that limit.
type RowDivergence struct {
	Table     string
	Fields    []string
	Pairs     []RowPair
	Truncated bool
}

// TableScanError records a table whose data scan aborted on a cursor read
// failure. The run continues with the next table.
type TableScanError struct {
	Table string
	Err   error
}

// DataDiff is the output of the data pass over the common tables.
type DataDiff struct {
	Divergences []RowDivergence
	// CountMismatches lists tables whose cursors disagreed on end-of-data,
	// detected once per table at the point of discovery.
	CountMismatches []string
	Failures        []TableScanError
}

// MatchKind discriminates the Match variants.
type MatchKind int

const (
	MatchTableName MatchKind = iota
	MatchFieldName
	MatchFieldValue
)

func (k MatchKind) String() string {
	switch k {
	case MatchTableName:
		return "table"
	case MatchFieldName:
		return "field"
	case MatchFieldValue:
		return "value"
	default:
		return "unknown"
	}
}

// Match is one search hit. Field is set for field-name and field-value
// matches; Row and Value only for field-value matches. Value always carries
// the full cell content; display truncation belongs to the report layer.
type Match struct {
	Kind  MatchKind
	Table string
	Field string
	Row   int
	Value string
}
