package source

import (
	"database/sql"
	"strings"

	"github.com/pkg/errors"
)

type mssqlCatalog struct{}

func (c *mssqlCatalog) DefaultSchema(db *sql.DB) (string, error) {
	return "dbo", nil
}

func (c *mssqlCatalog) Tables(db *sql.DB, schema string) ([]TableDescriptor, error) {
	rows, err := db.Query(
		`SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES
		 WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE'
		 ORDER BY TABLE_NAME`, schema)
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

func (c *mssqlCatalog) Fields(db *sql.DB, schema, table string) ([]FieldDescriptor, error) {
	rows, err := db.Query(
		`SELECT COLUMN_NAME, DATA_TYPE, COALESCE(CHARACTER_MAXIMUM_LENGTH, 0),
		        COLUMN_DEFAULT, IS_NULLABLE
		 FROM INFORMATION_SCHEMA.COLUMNS
		 WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2
		 ORDER BY ORDINAL_POSITION`, schema, table)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query columns of %s", table)
	}
	defer rows.Close()

	var fields []FieldDescriptor
	for rows.Next() {
		var name, dataType, isNullable string
		var size int
		var dflt sql.NullString
		if err := rows.Scan(&name, &dataType, &size, &dflt, &isNullable); err != nil {
			return nil, errors.Wrapf(err, "failed to scan column of %s", table)
		}
		required := isNullable == "NO"
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

func (c *mssqlCatalog) QuoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}
