package engine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukunda-/mdb-tools/internal/engine"
)

func TestScanRows_SingleDivergence(t *testing.T) {
	fields := []string{"A", "B", "C"}
	curA := cursorOf([]string{"Hello", "Kitty", "Goodbye"})
	curB := cursorOf([]string{"Hello1", "Kitty", "Goodbye"})

	div, mismatch, err := engine.ScanRows("tb_General", fields, curA, curB, 3)

	require.NoError(t, err)
	assert.False(t, mismatch)
	require.NotNil(t, div)
	assert.Equal(t, "tb_General", div.Table)
	assert.False(t, div.Truncated)
	require.Len(t, div.Pairs, 1)
	assert.Equal(t, 1, div.Pairs[0].A.Row)
	assert.Equal(t, []string{"Hello", "Kitty", "Goodbye"}, div.Pairs[0].A.Values)
	assert.Equal(t, []string{"Hello1", "Kitty", "Goodbye"}, div.Pairs[0].B.Values)
}

func TestScanRows_NoDivergenceYieldsNil(t *testing.T) {
	fields := []string{"A"}
	curA := cursorOf([]string{"x"}, []string{"y"})
	curB := cursorOf([]string{"x"}, []string{"y"})

	div, mismatch, err := engine.ScanRows("T", fields, curA, curB, 3)

	require.NoError(t, err)
	assert.False(t, mismatch)
	assert.Nil(t, div)
}

func TestScanRows_TruncationLaw(t *testing.T) {
	mkRows := func(prefix string, n int) [][]string {
		rows := make([][]string, n)
		for i := range rows {
			rows[i] = []string{fmt.Sprintf("%s%d", prefix, i)}
		}
		return rows
	}

	for _, tc := range []struct {
		differing int
		pairs     int
		truncated bool
	}{
		{differing: 2, pairs: 2, truncated: false},
		{differing: 3, pairs: 3, truncated: false},
		{differing: 4, pairs: 3, truncated: true},
		{differing: 10, pairs: 3, truncated: true},
	} {
		curA := &fakeCursor{rows: mkRows("a", tc.differing)}
		curB := &fakeCursor{rows: mkRows("b", tc.differing)}

		div, _, err := engine.ScanRows("T", []string{"V"}, curA, curB, 3)

		require.NoError(t, err)
		require.NotNil(t, div, "differing=%d", tc.differing)
		assert.Len(t, div.Pairs, tc.pairs, "differing=%d", tc.differing)
		assert.Equal(t, tc.truncated, div.Truncated, "differing=%d", tc.differing)
	}
}

func TestScanRows_TruncationStopsConsuming(t *testing.T) {
	rows := func(prefix string) [][]string {
		out := make([][]string, 6)
		for i := range out {
			out[i] = []string{fmt.Sprintf("%s%d", prefix, i)}
		}
		return out
	}
	curA := &fakeCursor{rows: rows("a")}
	curB := &fakeCursor{rows: rows("b")}

	div, _, err := engine.ScanRows("T", []string{"V"}, curA, curB, 3)

	require.NoError(t, err)
	assert.True(t, div.Truncated)
	// The fourth fetch discovers the over-threshold divergence; rows five
	// and six are never consumed.
	assert.Equal(t, 4, curA.pos)
	assert.Equal(t, 4, curB.pos)
}

func TestScanRows_WholeRowCapture(t *testing.T) {
	fields := []string{"F1", "F2", "F3", "F4", "F5"}
	same := []string{"a", "b", "c", "d", "e"}
	curA := cursorOf(same, same, []string{"a", "b", "c", "d", "e"})
	curB := cursorOf(same, same, []string{"a", "b", "X", "d", "e"})

	div, _, err := engine.ScanRows("T", fields, curA, curB, 3)

	require.NoError(t, err)
	require.Len(t, div.Pairs, 1)
	pair := div.Pairs[0]
	assert.Equal(t, 3, pair.A.Row)
	// The divergence is in field index 2 only, but both snapshots carry all
	// five values.
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, pair.A.Values)
	assert.Equal(t, []string{"a", "b", "X", "d", "e"}, pair.B.Values)
}

func TestScanRows_RecordCountMismatch(t *testing.T) {
	curA := cursorOf([]string{"x"}, []string{"y"}, []string{"z"})
	curB := cursorOf([]string{"x"})

	div, mismatch, err := engine.ScanRows("T", []string{"V"}, curA, curB, 3)

	require.NoError(t, err)
	assert.True(t, mismatch)
	// No value divergence was found before the shorter cursor ended, so no
	// divergence record is produced.
	assert.Nil(t, div)
	// Detection happens where the shorter cursor ends; the longer one is not
	// drained.
	assert.Equal(t, 1, curA.pos)
}

func TestScanRows_MismatchWithEarlierDivergence(t *testing.T) {
	curA := cursorOf([]string{"a"}, []string{"y"})
	curB := cursorOf([]string{"b"})

	div, mismatch, err := engine.ScanRows("T", []string{"V"}, curA, curB, 3)

	require.NoError(t, err)
	assert.True(t, mismatch)
	require.NotNil(t, div)
	assert.Len(t, div.Pairs, 1)
	assert.False(t, div.Truncated)
}

func TestScanRows_EqualEmptyCursors(t *testing.T) {
	div, mismatch, err := engine.ScanRows("T", []string{"V"}, cursorOf(), cursorOf(), 3)

	require.NoError(t, err)
	assert.False(t, mismatch)
	assert.Nil(t, div)
}

func TestScanRows_FetchFailure(t *testing.T) {
	curA := &fakeCursor{rows: [][]string{{"x"}, {"y"}}, failAtRow: 2}
	curB := cursorOf([]string{"x"}, []string{"y"})

	div, _, err := engine.ScanRows("T", []string{"V"}, curA, curB, 3)

	require.Error(t, err)
	assert.Nil(t, div)
	assert.Contains(t, err.Error(), "row 2")
}
