// Package channel defines the event channel the registration engine talks
// to and ships an in-memory implementation of it.
//
// Listeners are identified by interface equality, so they must be
// comparable values. Use NewListener to wrap a plain function; the returned
// pointer is the identity used by RemoveListener.
package channel
