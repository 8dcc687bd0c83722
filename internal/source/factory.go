package source

import (
	"database/sql"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"
	"github.com/pkg/errors"
	_ "github.com/sijms/go-ora/v2"
)

// Open connects to a data source and verifies it is reachable. An empty
// driver triggers DSN-based detection.
func Open(driver, dsn string) (*SQLSource, error) {
	if driver == "" {
		driver = DetectDriver(dsn)
	}
	cat, sqlDriver, err := catalogFor(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(sqlDriver, TrimDSN(driver, dsn))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open data source")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to connect to data source")
	}
	schema, err := cat.DefaultSchema(db)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to resolve schema name")
	}
	return &SQLSource{db: db, cat: cat, schema: schema, driver: driver}, nil
}

func catalogFor(driver string) (catalog, string, error) {
	switch driver {
	case "mysql":
		return &mysqlCatalog{}, "mysql", nil
	case "postgres":
		return &postgresCatalog{}, "postgres", nil
	case "sqlite", "sqlite3":
		return &sqliteCatalog{}, "sqlite3", nil
	case "sqlserver", "mssql":
		return &mssqlCatalog{}, "sqlserver", nil
	case "oracle":
		return &oracleCatalog{}, "oracle", nil
	default:
		return nil, "", errors.Errorf("unsupported driver: %s", driver)
	}
}

// Ensure interface implementation
var _ catalog = (*mysqlCatalog)(nil)
var _ catalog = (*postgresCatalog)(nil)
var _ catalog = (*sqliteCatalog)(nil)
var _ catalog = (*mssqlCatalog)(nil)
var _ catalog = (*oracleCatalog)(nil)

// DetectDriver guesses the driver from DSN shape. File paths fall through to
// sqlite since that is the only file-backed store we speak.
func DetectDriver(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.Contains(dsn, "sslmode="):
		return "postgres"
	case strings.HasPrefix(dsn, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(dsn, "oracle://"):
		return "oracle"
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite"
	case strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"), strings.HasSuffix(dsn, ".sqlite3"):
		return "sqlite"
	default:
		return "mysql"
	}
}

// TrimDSN strips a scheme prefix that the underlying driver does not expect.
// Only sqlite needs this today.
func TrimDSN(driver, dsn string) string {
	if (driver == "sqlite" || driver == "sqlite3") && strings.HasPrefix(dsn, "sqlite://") {
		return dsn[len("sqlite://"):]
	}
	return dsn
}
