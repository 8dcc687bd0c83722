package seed_test

import (
	"database/sql"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukunda-/mdb-tools/internal/seed"
)

func seededDB(t *testing.T, opts seed.Options) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, seed.Run(db, opts))
	return db
}

type customer struct {
	name, email, city string
}

func customers(t *testing.T, db *sql.DB) []customer {
	t.Helper()
	rows, err := db.Query("SELECT Name, Email, City FROM Customers ORDER BY ID")
	require.NoError(t, err)
	defer rows.Close()

	var out []customer
	for rows.Next() {
		var c customer
		require.NoError(t, rows.Scan(&c.name, &c.email, &c.city))
		out = append(out, c)
	}
	require.NoError(t, rows.Err())
	return out
}

func count(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// A base/variant pair seeded identically must differ only in the intended
// places: one shifted city, the Notes column, and one missing order row.
func TestRun_VariantPairDivergence(t *testing.T) {
	opts := seed.Options{Rows: 5, Seed: 1}
	base := seededDB(t, opts)
	opts.Variant = true
	variant := seededDB(t, opts)

	baseRows := customers(t, base)
	variantRows := customers(t, variant)
	require.Len(t, baseRows, 5)
	require.Len(t, variantRows, 5)

	var divergent []int
	for i := range baseRows {
		if baseRows[i] != variantRows[i] {
			divergent = append(divergent, i)
		}
	}
	require.Len(t, divergent, 1, "exactly one customer row may diverge")

	i := divergent[0]
	assert.Equal(t, 3, i+1, "the shifted row sits at Rows/2+1")
	assert.Equal(t, baseRows[i].name, variantRows[i].name)
	assert.Equal(t, baseRows[i].email, variantRows[i].email)
	assert.Equal(t, baseRows[i].city+" East", variantRows[i].city)

	// Orders share the faker stream with Customers, so they stay identical
	// apart from the dropped last row.
	assert.Equal(t, 5, count(t, base, "Orders"))
	assert.Equal(t, 4, count(t, variant, "Orders"))
}

func TestRun_VariantAddsNotesColumn(t *testing.T) {
	base := seededDB(t, seed.Options{Rows: 3, Seed: 7})
	variant := seededDB(t, seed.Options{Rows: 3, Seed: 7, Variant: true})

	hasNotes := func(db *sql.DB) bool {
		rows, err := db.Query("PRAGMA table_info(Customers)")
		require.NoError(t, err)
		defer rows.Close()
		for rows.Next() {
			var cid, notNull, pk int
			var name, typ string
			var dflt sql.NullString
			require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
			if strings.EqualFold(name, "Notes") {
				return true
			}
		}
		return false
	}

	assert.False(t, hasNotes(base))
	assert.True(t, hasNotes(variant))
}

func TestRun_Deterministic(t *testing.T) {
	opts := seed.Options{Rows: 4, Seed: 42}
	first := customers(t, seededDB(t, opts))
	second := customers(t, seededDB(t, opts))
	assert.Equal(t, first, second)
}
