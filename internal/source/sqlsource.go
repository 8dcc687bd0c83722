package source

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// catalog abstracts the driver-specific parts of schema introspection and
// identifier quoting. Everything else lives in SQLSource.
type catalog interface {
	DefaultSchema(db *sql.DB) (string, error)
	Tables(db *sql.DB, schema string) ([]TableDescriptor, error)
	Fields(db *sql.DB, schema, table string) ([]FieldDescriptor, error)
	QuoteIdent(name string) string
}

// SQLSource adapts a database/sql handle to the Source interface.
type SQLSource struct {
	db     *sql.DB
	cat    catalog
	schema string
	driver string
}

func (s *SQLSource) Driver() string { return s.driver }

func (s *SQLSource) ListTables() ([]TableDescriptor, error) {
	return s.cat.Tables(s.db, s.schema)
}

func (s *SQLSource) ListFields(table string) ([]FieldDescriptor, error) {
	fields, err := s.cat.Fields(s.db, s.schema, table)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errors.Errorf("table %q has no fields in catalog", table)
	}
	return fields, nil
}

func (s *SQLSource) OpenCursor(table string, fields []string) (Cursor, error) {
	if len(fields) == 0 {
		return nil, errors.Errorf("empty field list for table %q", table)
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = s.cat.QuoteIdent(f)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), s.cat.QuoteIdent(table))
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open cursor on %s", table)
	}
	return newSQLCursor(rows, len(fields)), nil
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}

// sqlCursor wraps *sql.Rows with a one-row lookahead so AtEnd can be answered
// without consuming a row the caller has not asked for yet.
type sqlCursor struct {
	rows    *sql.Rows
	width   int
	pending []string
	done    bool
	err     error
}

func newSQLCursor(rows *sql.Rows, width int) *sqlCursor {
	c := &sqlCursor{rows: rows, width: width}
	c.advance()
	return c
}

func (c *sqlCursor) advance() {
	if !c.rows.Next() {
		c.done = true
		c.pending = nil
		if err := c.rows.Err(); err != nil {
			c.err = errors.Wrap(err, "cursor fetch failed")
		}
		return
	}
	raw := make([]interface{}, c.width)
	ptrs := make([]interface{}, c.width)
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := c.rows.Scan(ptrs...); err != nil {
		c.done = true
		c.pending = nil
		c.err = errors.Wrap(err, "cursor scan failed")
		return
	}
	vals := make([]string, c.width)
	for i, v := range raw {
		vals[i] = Stringify(v)
	}
	c.pending = vals
}

// AtEnd reports end-of-data. A fetch failure is not end-of-data: it stays
// pending so the next NextRow call surfaces it.
func (c *sqlCursor) AtEnd() bool {
	return c.done && c.err == nil
}

func (c *sqlCursor) NextRow() ([]string, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.done {
		return nil, errors.New("cursor read past end of data")
	}
	row := c.pending
	c.advance()
	return row, nil
}

func (c *sqlCursor) Close() error {
	return c.rows.Close()
}

// Stringify converts a scanned cell into its canonical string form. Byte
// slices are the common case for text columns across drivers.
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", val)
	}
}
