// Package types defines the core types shared by the registration engine:
// render functions, decorators, story contexts, parameter bags, and the
// records produced when the catalog is exported.
package types
