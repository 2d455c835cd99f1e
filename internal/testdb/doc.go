// Package testdb provides database helpers for tests.
//
// SQLite gives each test its own migrated database file, so those tests run
// anywhere. Postgres tests need a server: OpenPostgres reads DATABASE_URL
// (or PHYSREF_TEST_DB_URL) and WithTx skips the test when neither is set.
//
// Each test runs inside a transaction that is rolled back when it finishes,
// so tests can share one database and still run in parallel:
//
//	func TestSomething(t *testing.T) {
//		t.Parallel()
//		testdb.WithTx(t, testDB, func(t *testing.T, tx *sql.Tx) {
//			store := postgres.NewPostgresUserStore(tx, nil)
//			// ...
//		})
//	}
package testdb
