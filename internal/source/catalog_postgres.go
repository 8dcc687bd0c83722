package source

import (
	"database/sql"
	"strings"

	"github.com/pkg/errors"
)

type postgresCatalog struct{}

func (c *postgresCatalog) DefaultSchema(db *sql.DB) (string, error) {
	return "public", nil
}

func (c *postgresCatalog) Tables(db *sql.DB, schema string) ([]TableDescriptor, error) {
	rows, err := db.Query(
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		 ORDER BY table_name`, schema)
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

func (c *postgresCatalog) Fields(db *sql.DB, schema, table string) ([]FieldDescriptor, error) {
	// udt_name carries the concrete type (int4, varchar) where data_type is
	// the verbose SQL standard name.
	rows, err := db.Query(
		`SELECT column_name, udt_name, COALESCE(character_maximum_length, 0),
		        column_default, is_nullable
		 FROM information_schema.columns
		 WHERE table_schema = $1 AND table_name = $2
		 ORDER BY ordinal_position`, schema, table)
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
			Type:       normalizePostgresType(dataType),
			Size:       size,
			Default:    dflt,
			Required:   required,
			AllowEmpty: !required,
		})
	}
	return fields, rows.Err()
}

func normalizePostgresType(udt string) string {
	switch t := strings.ToLower(udt); t {
	case "int4", "int2":
		return "int"
	case "int8":
		return "bigint"
	case "float4":
		return "float"
	case "float8":
		return "double"
	case "bpchar":
		return "char"
	default:
		return t
	}
}

func (c *postgresCatalog) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
