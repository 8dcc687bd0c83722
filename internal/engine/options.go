package engine

import "strings"

const (
	// DefaultStopThreshold caps how many divergent row pairs a single table
	// scan collects before truncating.
	DefaultStopThreshold = 3

	// DefaultReservedPrefix marks internal system tables excluded from every
	// diff and search pass. The prefix check is case-sensitive.
	DefaultReservedPrefix = "MSys"
)

// Options configures a comparison run. The zero value plus withDefaults gives
// the documented behavior: case-insensitive name matching, case-sensitive
// value comparison, allow-empty excluded from attribute comparison.
type Options struct {
	// CaseSensitiveNames switches table and field name matching to exact
	// comparison. Historically this tool compared names both ways across
	// revisions, so it is an explicit knob rather than a fixed rule.
	CaseSensitiveNames bool

	// CompareAllowEmpty includes the allow-empty flag in field attribute
	// comparison. Off by default: some connectors report it unreliably.
	CompareAllowEmpty bool

	// StopThreshold is the maximum number of row pairs collected per table.
	StopThreshold int

	// ReservedPrefix excludes matching table names from all passes.
	ReservedPrefix string
}

func (o Options) withDefaults() Options {
	if o.StopThreshold <= 0 {
		o.StopThreshold = DefaultStopThreshold
	}
	if o.ReservedPrefix == "" {
		o.ReservedPrefix = DefaultReservedPrefix
	}
	return o
}

// nameKey folds a table or field name according to the configured case mode.
func (o Options) nameKey(name string) string {
	if o.CaseSensitiveNames {
		return name
	}
	return strings.ToLower(name)
}

func (o Options) isReserved(table string) bool {
	return strings.HasPrefix(table, o.ReservedPrefix)
}
