package engine

import "github.com/pkg/errors"

var (
	// ErrSourceUnavailable means a data source cannot be opened or read.
	// Fatal for the whole run; never retried.
	ErrSourceUnavailable = errors.New("data source unavailable")

	// ErrSchemaLookup means a table or field named by the catalog vanished
	// before its cursor could be opened. Sources are assumed static for the
	// duration of a scan, so this is surfaced immediately.
	ErrSchemaLookup = errors.New("schema lookup failed")

	// ErrInvalidPattern means the search pattern does not compile. Raised
	// before any scanning begins.
	ErrInvalidPattern = errors.New("invalid search pattern")
)

func (e TableScanError) Error() string {
	return "scan of table " + e.Table + " failed: " + e.Err.Error()
}

func (e TableScanError) Unwrap() error { return e.Err }
