package source

import "database/sql"

// TableDescriptor identifies a table in a data source's catalog.
type TableDescriptor struct {
	Name string
}

// FieldDescriptor describes one field of a table. Default is nullable because
// most catalogs distinguish "no default" from an empty default expression.
type FieldDescriptor struct {
	Name       string
	Type       string
	Size       int
	Default    sql.NullString
	Required   bool // NOT NULL
	AllowEmpty bool // zero-length strings accepted; connectors report this unreliably
}

// Source is a tabular data store exposing its catalog and queryable row cursors.
// Tables and fields are returned in catalog order, which is stable for the
// lifetime of the handle (sources are assumed static during a scan).
type Source interface {
	// ListTables returns every table in the catalog, in catalog order.
	ListTables() ([]TableDescriptor, error)

	// ListFields returns the fields of a table, in schema order.
	ListFields(table string) ([]FieldDescriptor, error)

	// OpenCursor opens a forward-only cursor over the named fields, in exactly
	// the given order. Row values come back stringified and positionally
	// aligned to that field list.
	OpenCursor(table string, fields []string) (Cursor, error)

	Close() error
}

// Cursor is a forward-only, single-pass row iterator.
type Cursor interface {
	// AtEnd reports whether the cursor has no more rows.
	AtEnd() bool

	// NextRow returns the next row as stringified values. Calling it once
	// AtEnd reports true is an error.
	NextRow() ([]string, error)

	Close() error
}
