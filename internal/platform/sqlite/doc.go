// Package sqlite is the default storage backend: a single-file SQLite
// database opened through mattn/go-sqlite3 and accessed with gorm.
//
// The pool is limited to one connection so writes are serialized in-process
// and the UNIQUE constraint on users.username decides concurrent
// registrations of the same name.
package sqlite
