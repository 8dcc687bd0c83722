// Package seed builds small sqlite fixture databases for trying out the
// compare and search commands. Two databases seeded with the same seed value
// but different variants differ in a handful of known places.
package seed

import (
	"database/sql"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pkg/errors"
)

type Options struct {
	// Rows per table.
	Rows int

	// Variant produces the second database of a pair: an extra column on
	// Customers, a shifted city in one row, and one fewer order row.
	Variant bool

	// Seed keys the generated data. The same seed yields the same rows, so
	// a base/variant pair differs only where the variant intends to.
	Seed int64
}

func (o Options) withDefaults() Options {
	if o.Rows <= 0 {
		o.Rows = 25
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
	return o
}

// Run creates the fixture schema and fills it. The target must be an empty
// sqlite database; existing tables make the DDL fail.
func Run(db *sql.DB, opts Options) error {
	opts = opts.withDefaults()
	faker := gofakeit.New(opts.Seed)
	// Notes draws come from their own stream. Pulling them from the shared
	// faker would shift every later draw in the variant, diverging columns
	// that must stay identical across the pair.
	notes := gofakeit.New(opts.Seed + 1)

	if err := createSchema(db, opts); err != nil {
		return err
	}
	if err := fillCustomers(db, faker, notes, opts); err != nil {
		return err
	}
	return fillOrders(db, faker, opts)
}

func createSchema(db *sql.DB, opts Options) error {
	customers := `CREATE TABLE Customers (
		ID INTEGER PRIMARY KEY,
		Name VARCHAR(50) NOT NULL,
		Email VARCHAR(100),
		City VARCHAR(40)`
	if opts.Variant {
		customers += `,
		Notes TEXT`
	}
	customers += `)`

	stmts := []string{
		customers,
		`CREATE TABLE Orders (
			ID INTEGER PRIMARY KEY,
			CustomerID INTEGER NOT NULL,
			Item VARCHAR(80) NOT NULL,
			Amount REAL,
			FOREIGN KEY (CustomerID) REFERENCES Customers(ID)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "failed to create fixture schema")
		}
	}
	return nil
}

func fillCustomers(db *sql.DB, faker, notes *gofakeit.Faker, opts Options) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	query := "INSERT INTO Customers (ID, Name, Email, City) VALUES (?, ?, ?, ?)"
	if opts.Variant {
		query = "INSERT INTO Customers (ID, Name, Email, City, Notes) VALUES (?, ?, ?, ?, ?)"
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		return errors.Wrap(err, "failed to prepare insert")
	}
	defer stmt.Close()

	for i := 1; i <= opts.Rows; i++ {
		city := faker.City()
		if opts.Variant && i == opts.Rows/2+1 {
			// One known divergent row for the data pass to find.
			city = city + " East"
		}
		args := []interface{}{i, faker.Name(), faker.Email(), city}
		if opts.Variant {
			args = append(args, notes.Sentence(4))
		}
		if _, err := stmt.Exec(args...); err != nil {
			return errors.Wrapf(err, "failed to insert customer %d", i)
		}
	}
	return tx.Commit()
}

func fillOrders(db *sql.DB, faker *gofakeit.Faker, opts Options) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO Orders (ID, CustomerID, Item, Amount) VALUES (?, ?, ?, ?)")
	if err != nil {
		return errors.Wrap(err, "failed to prepare insert")
	}
	defer stmt.Close()

	count := opts.Rows
	if opts.Variant && count > 1 {
		// A record-count mismatch for the scanner to report.
		count--
	}
	for i := 1; i <= count; i++ {
		customer := faker.Number(1, opts.Rows)
		item := fmt.Sprintf("%s %s", faker.AdjectiveDescriptive(), faker.NounConcrete())
		if _, err := stmt.Exec(i, customer, item, faker.Price(0.99, 99.99)); err != nil {
			return errors.Wrapf(err, "failed to insert order %d", i)
		}
	}
	return tx.Commit()
}
