package directory

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Directory.Lookup when no identity exists
// for the queried address.
var ErrNotFound = errors.New("directory: no such identity")

// Status is the outcome of classifying one address.
type Status int

const (
	// StatusActive means the identity exists and is not disabled.
	StatusActive Status = iota
	// StatusDisabled means the identity exists but is disabled.
	StatusDisabled
	// StatusNotFound means the address belongs to the organization but
	// no identity exists for it.
	StatusNotFound
	// StatusExternal means the address is outside the organization and
	// could not be matched to an internal identity.
	StatusExternal
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDisabled:
		return "disabled"
	case StatusNotFound:
		return "not-found"
	case StatusExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Entry is one directory record as returned by a Directory backend.
type Entry struct {
	// Address is the canonical primary address of the identity.
	Address string
	// Type is the backend's classification, e.g. "user", "room",
	// "equipment", "shared". Free-form; only resource kinds get special
	// treatment during classification.
	Type string
	// Enabled reports whether the account can sign in. nil when the
	// enabled-state provider is unavailable or not applicable.
	Enabled *bool
}

// Directory is the narrow identity-provider surface the classifier
// needs. Implementations must not be mutated by Lookup.
type Directory interface {
	Lookup(ctx context.Context, address string) (Entry, error)
}

// IdentityState is the immutable result of classifying one address.
// States are computed once per distinct address per run and cached.
type IdentityState struct {
	// Address is the normalized (lowercased) input address.
	Address string
	Status  Status
	// Enabled mirrors the directory's enabled state; nil when unknown.
	Enabled *bool
	// DirectoryType is the backend's type classification for the
	// resolved identity, empty for External and NotFound states.
	DirectoryType string
	// ResolvedInternalAddress is set only when an address outside the
	// organization suffix was remapped to an internal identity by the
	// local-part heuristic.
	ResolvedInternalAddress string
	// MatchedInternal reports whether the remap happened.
	MatchedInternal bool
}

// Ghost reports whether this identity makes a meeting a ghost meeting:
// the organizer cannot be confirmed as active. External organizers are
// deliberately not ghosts; they are simply outside the directory.
func (s IdentityState) Ghost() bool {
	switch s.Status {
	case StatusDisabled, StatusNotFound:
		return true
	case StatusActive, StatusExternal:
		return false
	default:
		return false
	}
}

// resourceTypes are directory entry types representing non-human
// accounts, which are always treated as enabled.
var resourceTypes = map[string]bool{
	"room":      true,
	"equipment": true,
	"shared":    true,
	"resource":  true,
}

// IsResourceType reports whether a directory entry type denotes a
// non-human account.
func IsResourceType(entryType string) bool {
	return resourceTypes[entryType]
}
