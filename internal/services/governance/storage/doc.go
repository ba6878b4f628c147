// Package storage defines the persistence records and store interfaces for
// the governance service. Implementations live in the sqlite subpackage.
package storage
