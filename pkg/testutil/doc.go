// Package testutil provides test doubles for storyreg components.
//
//   - MockCatalog: testify mock of catalog.Catalog for interaction tests
//   - RecordingChannel: channel.Channel that records calls and dispatches
//     events to its listeners
//   - Trace: collects the order in which decorators and renders run
package testutil
