// Package export turns a storybook into a Listing and encodes it.
//
// Structured formats (json, yaml, toml, xml) are meant for tools; text,
// term, table and markdown are meant for people. Bound renders are only
// invoked when a listing is built with render set, and their results are
// recorded with fmt's %v formatting.
package export
