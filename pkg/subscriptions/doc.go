// Package subscriptions tracks side-effecting observers tied to the
// lifetime of a story render.
//
// Each render pass marks every tracked subscription as unused, lets the
// render re-register the ones it still needs, and tears down whatever was
// not re-registered:
//
//	tracker.MarkAllAsUnused()
//	result := render()          // calls tracker.Register(sub) for live subscriptions
//	tracker.ClearUnused()       // tears down the stale ones
//
// Subscriptions are keyed by pointer identity. A caller that builds a new
// *Subscription on every render gets a fresh setup/teardown cycle each
// time; reuse the same value to keep one alive across renders.
package subscriptions
