// Package sqlite implements the governance storage interfaces on SQLite
// with embedded migrations and hand-written SQL.
package sqlite
