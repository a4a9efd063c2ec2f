// Package application wires configuration, option sources and rendering
// together, keeping the main package focused on CLI parsing.
package application
