package source

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type sqliteCatalog struct{}

func (c *sqliteCatalog) DefaultSchema(db *sql.DB) (string, error) {
	return "main", nil
}

func (c *sqliteCatalog) Tables(db *sql.DB, schema string) ([]TableDescriptor, error) {
	rows, err := db.Query(
		`SELECT name FROM sqlite_master
		 WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		 ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query tables")
	}
	defer rows.Close()

	var tables []TableDescriptor
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "failed to scan table name")
		}
		tables = append(tables, TableDescriptor{Name: name})
	}
	return tables, rows.Err()
}

func (c *sqliteCatalog) Fields(db *sql.DB, schema, table string) ([]FieldDescriptor, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", c.QuoteIdent(table)))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query columns of %s", table)
	}
	defer rows.Close()

	var fields []FieldDescriptor
	for rows.Next() {
		var cid, notNull, pk int
		var name, typeName string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &typeName, &notNull, &dflt, &pk); err != nil {
			return nil, errors.Wrapf(err, "failed to scan column of %s", table)
		}
		baseType, size := splitSqliteType(typeName)
		fields = append(fields, FieldDescriptor{
			Name:       name,
			Type:       baseType,
			Size:       size,
			Default:    dflt,
			Required:   notNull != 0,
			AllowEmpty: notNull == 0,
		})
	}
	return fields, rows.Err()
}

// splitSqliteType breaks "VARCHAR(50)" into its base type and declared size.
func splitSqliteType(declared string) (string, int) {
	t := strings.ToLower(strings.TrimSpace(declared))
	open := strings.Index(t, "(")
	if open < 0 {
		return t, 0
	}
	base := strings.TrimSpace(t[:open])
	var size int
	fmt.Sscanf(t[open:], "(%d", &size)
	return base, size
}

func (c *sqliteCatalog) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
