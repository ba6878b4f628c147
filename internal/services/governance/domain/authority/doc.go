// Package authority defines the circle authority model: the policy table
// keyed by authority level and the pure capability calculator consulted by
// every authorization decision in the governance engine.
package authority
