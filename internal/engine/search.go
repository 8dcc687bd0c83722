package engine

import (
	"regexp"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mukunda-/mdb-tools/internal/source"
)

// SearchScope selects which namespaces a search inspects.
type SearchScope struct {
	TableNames bool
	FieldNames bool
	Values     bool
}

// DefaultSearchScope enables everything.
func DefaultSearchScope() SearchScope {
	return SearchScope{TableNames: true, FieldNames: true, Values: true}
}

func (s SearchScope) empty() bool {
	return !s.TableNames && !s.FieldNames && !s.Values
}

// Searcher scans a single data source's table names, field names, and cell
// values against a pattern.
type Searcher struct {
	src   source.Source
	scope SearchScope
	opts  Options
	log   *zap.SugaredLogger
}

func NewSearcher(src source.Source, scope SearchScope, opts Options, log *zap.SugaredLogger) *Searcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Searcher{src: src, scope: scope, opts: opts.withDefaults(), log: log}
}

// Search emits matches in a single ordered stream: per table, the table-name
// match first, then that table's field-name matches in schema order, then its
// value matches row by row. Consumers rely on that interleaving to correlate
// matches with the table being scanned. emit returning false stops all
// further work. A cursor read failure aborts only that table's value scan and
// is returned in failures; the search continues with the next table.
func (s *Searcher) Search(pattern string, emit func(Match) bool) (failures []TableScanError, err error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPattern, "%q: %v", pattern, err)
	}
	if s.scope.empty() {
		return nil, nil
	}

	tables, err := s.src.ListTables()
	if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "%v", err)
	}

	for _, t := range tables {
		if s.opts.isReserved(t.Name) {
			continue
		}

		if s.scope.TableNames && re.MatchString(t.Name) {
			if !emit(Match{Kind: MatchTableName, Table: t.Name}) {
				return failures, nil
			}
		}
		if !s.scope.FieldNames && !s.scope.Values {
			continue
		}

		fields, err := s.src.ListFields(t.Name)
		if err != nil {
			return failures, errors.Wrapf(ErrSchemaLookup, "table %s: %v", t.Name, err)
		}

		if s.scope.FieldNames {
			for _, f := range fields {
				if re.MatchString(f.Name) {
					if !emit(Match{Kind: MatchFieldName, Table: t.Name, Field: f.Name}) {
						return failures, nil
					}
				}
			}
		}

		if !s.scope.Values {
			continue
		}
		stopped, scanErr := s.scanValues(t.Name, fields, re, emit)
		if scanErr != nil {
			s.log.Warnw("value scan aborted", "table", t.Name, "error", scanErr)
			failures = append(failures, TableScanError{Table: t.Name, Err: scanErr})
			continue
		}
		if stopped {
			return failures, nil
		}
	}

	return failures, nil
}

// scanValues searches every cell of a table. The cursor covers ALL fields in
// schema order, not a restricted list: search inspects the full schema.
// Matches carry the full cell value; the 200-char display cut happens in the
// report layer.
func (s *Searcher) scanValues(table string, fields []source.FieldDescriptor, re *regexp.Regexp, emit func(Match) bool) (stopped bool, err error) {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	cur, err := s.src.OpenCursor(table, names)
	if err != nil {
		return false, err
	}
	defer cur.Close()

	row := 0
	for !cur.AtEnd() {
		row++
		values, err := cur.NextRow()
		if err != nil {
			return false, err
		}
		for i, v := range values {
			if re.MatchString(v) {
				m := Match{Kind: MatchFieldValue, Table: table, Field: names[i], Row: row, Value: v}
				if !emit(m) {
					return true, nil
				}
			}
		}
	}
	return false, nil
}
