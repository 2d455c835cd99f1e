// Package store defines interfaces for data persistence operations.
// These interfaces keep the authentication logic independent of the
// database engine; internal/platform holds the PostgreSQL and SQLite
// implementations.
package store
