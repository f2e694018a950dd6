// Package memory provides in-memory implementations of driven ports.
// They back tests and dry runs where nothing should touch disk.
package memory
