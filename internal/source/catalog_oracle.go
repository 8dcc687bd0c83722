package source

import (
	"database/sql"
	"strings"

	"github.com/pkg/errors"
)

type oracleCatalog struct{}

// Oracle scopes USER_TABLES to the connected user, so there is no separate
// schema to resolve.
func (c *oracleCatalog) DefaultSchema(db *sql.DB) (string, error) {
	return "", nil
}

func (c *oracleCatalog) Tables(db *sql.DB, schema string) ([]TableDescriptor, error) {
	rows, err := db.Query(`SELECT TABLE_NAME FROM USER_TABLES ORDER BY TABLE_NAME`)
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

func (c *oracleCatalog) Fields(db *sql.DB, schema, table string) ([]FieldDescriptor, error) {
	rows, err := db.Query(
		`SELECT COLUMN_NAME, DATA_TYPE, COALESCE(DATA_PRECISION, DATA_LENGTH, 0),
		        DATA_DEFAULT, NULLABLE
		 FROM USER_TAB_COLUMNS
		 WHERE TABLE_NAME = :1
		 ORDER BY COLUMN_ID`, table)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query columns of %s", table)
	}
	defer rows.Close()

	var fields []FieldDescriptor
	for rows.Next() {
		var name, dataType, nullable string
		var size int
		var dflt sql.NullString
		if err := rows.Scan(&name, &dataType, &size, &dflt, &nullable); err != nil {
			return nil, errors.Wrapf(err, "failed to scan column of %s", table)
		}
		required := nullable == "N"
		fields = append(fields, FieldDescriptor{
			Name:       name,
			Type:       strings.ToLower(dataType),
			Size:       size,
			Default:    dflt,
			Required:   required,
			AllowEmpty: !required,
		})
	}
	return fields, rows.Err()
}

func (c *oracleCatalog) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
