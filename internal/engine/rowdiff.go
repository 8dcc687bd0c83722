package engine

import (
	"github.com/pkg/errors"

	"github.com/mukunda-/mdb-tools/internal/source"
)

// ScanRows drives two cursors over the same field list in strict lockstep and
// collects divergent row pairs, up to the stop threshold. Alignment is purely
// by fetch order: neither cursor carries a key, so the pairing is only
// meaningful when the sources hand rows back in the same order.
//
// The returned divergence is nil when no row diverged. countMismatch reports
// that exactly one cursor ran out of rows; it fires once, at the row where
// the shorter cursor ended, and is independent of the divergence result.
// The caller owns cursor lifetime.
func ScanRows(table string, fields []string, curA, curB source.Cursor, stop int) (div *RowDivergence, countMismatch bool, err error) {
	if stop <= 0 {
		stop = DefaultStopThreshold
	}

	acc := RowDivergence{Table: table, Fields: fields}
	row := 0

	for {
		endA, endB := curA.AtEnd(), curB.AtEnd()
		if endA || endB {
			countMismatch = endA != endB
			break
		}

		row++
		rowA, err := curA.NextRow()
		if err != nil {
			return nil, false, errors.Wrapf(err, "source A, table %s, row %d", table, row)
		}
		rowB, err := curB.NextRow()
		if err != nil {
			return nil, false, errors.Wrapf(err, "source B, table %s, row %d", table, row)
		}

		if firstDifference(rowA, rowB) < 0 {
			continue
		}

		// The row diverges. Whole-row capture: snapshots carry every value,
		// not just the differing field.
		if len(acc.Pairs) == stop {
			acc.Truncated = true
			break
		}
		acc.Pairs = append(acc.Pairs, RowPair{
			A: RowSnapshot{Row: row, Values: rowA},
			B: RowSnapshot{Row: row, Values: rowB},
		})
	}

	if len(acc.Pairs) == 0 {
		return nil, countMismatch, nil
	}
	return &acc, countMismatch, nil
}

// firstDifference returns the index of the first positionally differing
// value, or -1 when the rows are identical. Values compare case-sensitively.
// Scanning stops at the first hit: divergence is reported per row, so the
// remaining fields of a divergent row need no inspection.
func firstDifference(a, b []string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
