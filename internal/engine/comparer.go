package engine

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mukunda-/mdb-tools/internal/source"
)

// Comparer runs the schema pass and the data pass over two data sources.
type Comparer struct {
	a, b source.Source
	opts Options
	log  *zap.SugaredLogger
}

func NewComparer(a, b source.Source, opts Options, log *zap.SugaredLogger) *Comparer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Comparer{a: a, b: b, opts: opts.withDefaults(), log: log}
}

// CompareSchemas runs the schema pass: table set difference, then field set
// difference per common table. It returns the diff together with the common
// table list the data pass operates on. Idempotent on static sources.
func (c *Comparer) CompareSchemas() (*SchemaDiff, []string, error) {
	namesA, err := c.tableNames(c.a, SourceA)
	if err != nil {
		return nil, nil, err
	}
	namesB, err := c.tableNames(c.b, SourceB)
	if err != nil {
		return nil, nil, err
	}

	diff := &SchemaDiff{
		AdditionalTables: DiffTableSets(namesA, namesB, c.opts),
	}
	common := CommonTables(namesA, namesB, c.opts)

	for _, table := range common {
		fieldsA, fieldsB, err := c.fieldPair(table)
		if err != nil {
			return nil, nil, err
		}
		additional, attrDiffs := DiffFieldSets(table, fieldsA, fieldsB, c.opts)
		diff.AdditionalFields = append(diff.AdditionalFields, additional...)
		diff.AttributeDiffs = append(diff.AttributeDiffs, attrDiffs...)
	}

	return diff, common, nil
}

// CompareData runs the bounded row-wise data pass over the given tables,
// normally the common set from CompareSchemas. A cursor read failure aborts
// only that table's scan; the run continues. onTable, when non-nil, is called
// after each table finishes (progress reporting).
func (c *Comparer) CompareData(tables []string, onTable func(table string)) (*DataDiff, error) {
	out := &DataDiff{}

	for _, table := range tables {
		div, mismatch, err := c.scanTable(table)
		if err != nil {
			if scanErr, ok := err.(TableScanError); ok {
				c.log.Warnw("table scan aborted", "table", table, "error", scanErr.Err)
				out.Failures = append(out.Failures, scanErr)
				if onTable != nil {
					onTable(table)
				}
				continue
			}
			return nil, err
		}
		if mismatch {
			out.CountMismatches = append(out.CountMismatches, table)
		}
		if div != nil {
			out.Divergences = append(out.Divergences, *div)
		}
		if onTable != nil {
			onTable(table)
		}
	}

	return out, nil
}

// scanTable opens lockstep cursors over the common field list and runs the
// row diff scanner. Cursors are closed on every exit path.
func (c *Comparer) scanTable(table string) (*RowDivergence, bool, error) {
	fieldsA, fieldsB, err := c.fieldPair(table)
	if err != nil {
		return nil, false, err
	}
	fields := CommonFields(fieldsA, fieldsB, c.opts)
	if len(fields) == 0 {
		c.log.Debugw("no common fields, skipping", "table", table)
		return nil, false, nil
	}

	curA, err := c.a.OpenCursor(table, fields)
	if err != nil {
		return nil, false, errors.Wrapf(ErrSchemaLookup, "source A, table %s: %v", table, err)
	}
	defer curA.Close()

	curB, err := c.b.OpenCursor(table, fields)
	if err != nil {
		return nil, false, errors.Wrapf(ErrSchemaLookup, "source B, table %s: %v", table, err)
	}
	defer curB.Close()

	div, mismatch, err := ScanRows(table, fields, curA, curB, c.opts.StopThreshold)
	if err != nil {
		return nil, false, TableScanError{Table: table, Err: err}
	}
	return div, mismatch, nil
}

func (c *Comparer) tableNames(src source.Source, label Label) ([]string, error) {
	tables, err := src.ListTables()
	if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "source %s: %v", label, err)
	}
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names, nil
}

func (c *Comparer) fieldPair(table string) ([]source.FieldDescriptor, []source.FieldDescriptor, error) {
	fieldsA, err := c.a.ListFields(table)
	if err != nil {
		return nil, nil, errors.Wrapf(ErrSchemaLookup, "source A, table %s: %v", table, err)
	}
	fieldsB, err := c.b.ListFields(table)
	if err != nil {
		return nil, nil, errors.Wrapf(ErrSchemaLookup, "source B, table %s: %v", table, err)
	}
	return fieldsA, fieldsB, nil
}
