// Package postgres provides the PostgreSQL implementation of the credential
// store defined in internal/store, together with its embedded goose
// migrations and connection setup through the pgx stdlib driver.
package postgres
