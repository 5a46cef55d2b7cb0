// Package registry provides a generic, thread-safe registry that keeps
// items in insertion order. It backs the addon registry and the catalog's
// kind and story indexes.
package registry
