// Package types holds the small set of interfaces shared across xctinstall
// packages. It has no dependencies to avoid import cycles.
package types
