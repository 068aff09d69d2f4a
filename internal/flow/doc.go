// Package flow implements the navigation core of an onboarding flow: an
// immutable step catalog, single-choice selection state, the completion gate
// and the navigator that moves between steps.
//
// All types are single-threaded. Callers that share a Flow across goroutines
// must serialize access themselves.
package flow
