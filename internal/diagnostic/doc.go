// Package diagnostic collects the findings of a manifest validation run.
//
// Validation keeps going after a problem so that one run reports all of
// them. Every finding has a stable code that tools can match on.
package diagnostic
