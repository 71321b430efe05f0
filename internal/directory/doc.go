// Package directory classifies organizer addresses against an identity
// directory.
//
// Classification answers one question per address: can this identity be
// confirmed as active? The answer is one of four closed states (Active,
// Disabled, NotFound, External) plus the supporting detail needed by
// reports. Addresses outside the configured organization suffix are run
// through an external-to-internal match heuristic before being declared
// External: the local part is transplanted onto the organization suffix
// and looked up, so "jane@gmail.example" can resolve to
// "jane@corp.example" when such an identity exists.
//
// Directory lookups are the slowest operation in the audit pipeline, so
// results are memoized per run through Cache, which guarantees at most
// one lookup per distinct address even under concurrent access.
package directory
