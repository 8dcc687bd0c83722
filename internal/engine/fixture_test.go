package engine_test

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mukunda-/mdb-tools/internal/source"
)

// fakeSource is an in-memory Source for engine tests. Rows are stored
// positionally aligned to the field list; OpenCursor projects the requested
// columns by name.
type fakeSource struct {
	tables []fakeTable
}

type fakeTable struct {
	name   string
	fields []source.FieldDescriptor
	rows   [][]string

	// failAtRow, when > 0, makes cursors over this table fail on the fetch
	// of that 1-based row.
	failAtRow int
}

func fld(name, typ string, size int) source.FieldDescriptor {
	return source.FieldDescriptor{Name: name, Type: typ, Size: size, AllowEmpty: true}
}

// fields builds a varchar field list from names alone.
func fields(names ...string) []source.FieldDescriptor {
	out := make([]source.FieldDescriptor, len(names))
	for i, n := range names {
		out[i] = fld(n, "varchar", 50)
	}
	return out
}

func (s *fakeSource) find(table string) (*fakeTable, error) {
	for i := range s.tables {
		if s.tables[i].name == table {
			return &s.tables[i], nil
		}
	}
	return nil, errors.Errorf("no such table: %s", table)
}

func (s *fakeSource) ListTables() ([]source.TableDescriptor, error) {
	out := make([]source.TableDescriptor, len(s.tables))
	for i, t := range s.tables {
		out[i] = source.TableDescriptor{Name: t.name}
	}
	return out, nil
}

func (s *fakeSource) ListFields(table string) ([]source.FieldDescriptor, error) {
	t, err := s.find(table)
	if err != nil {
		return nil, err
	}
	return t.fields, nil
}

func (s *fakeSource) OpenCursor(table string, fields []string) (source.Cursor, error) {
	t, err := s.find(table)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(fields))
	for i, name := range fields {
		idx[i] = -1
		for j, f := range t.fields {
			if f.Name == name {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			return nil, errors.Errorf("no such field: %s.%s", table, name)
		}
	}
	rows := make([][]string, len(t.rows))
	for i, r := range t.rows {
		row := make([]string, len(idx))
		for j, k := range idx {
			row[j] = r[k]
		}
		rows[i] = row
	}
	return &fakeCursor{rows: rows, failAtRow: t.failAtRow}, nil
}

func (s *fakeSource) Close() error { return nil }

type fakeCursor struct {
	rows      []([]string)
	pos       int
	failAtRow int
	closed    bool
}

func (c *fakeCursor) AtEnd() bool {
	return c.pos >= len(c.rows) && !(c.failAtRow > 0 && c.failAtRow == c.pos+1)
}

func (c *fakeCursor) NextRow() ([]string, error) {
	if c.failAtRow > 0 && c.pos+1 == c.failAtRow {
		return nil, errors.New("simulated fetch failure")
	}
	if c.pos >= len(c.rows) {
		return nil, errors.New("read past end")
	}
	row := c.rows[c.pos]
	c.pos++
	return row, nil
}

func (c *fakeCursor) Close() error {
	c.closed = true
	return nil
}

// cursorOf builds a standalone cursor for direct ScanRows tests.
func cursorOf(rows ...[]string) *fakeCursor {
	return &fakeCursor{rows: rows}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
