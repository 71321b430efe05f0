package audit

import (
	"sort"

	"github.com/roomaudit/roomaudit/internal/directory"
)

// ParticipantSet is the distinct set of people on a meeting, excluding
// the booked resource itself.
type ParticipantSet struct {
	Count     int
	Addresses []string // deduplicated, lowercased, sorted
}

// Participants computes the distinct participant set from the organizer
// plus the required and optional attendee lists. Empty entries and the
// resource's own address are dropped; comparison is case-insensitive
// and the result is sorted for deterministic output. Pure function, no
// I/O.
func Participants(organizer string, required, optional []string, resourceAddr string) ParticipantSet {
	self := directory.Normalize(resourceAddr)
	seen := make(map[string]struct{}, 1+len(required)+len(optional))

	add := func(addr string) {
		a := directory.Normalize(addr)
		if a == "" || a == self {
			return
		}
		seen[a] = struct{}{}
	}

	add(organizer)
	for _, a := range required {
		add(a)
	}
	for _, a := range optional {
		add(a)
	}

	addresses := make([]string, 0, len(seen))
	for a := range seen {
		addresses = append(addresses, a)
	}
	sort.Strings(addresses)

	return ParticipantSet{Count: len(addresses), Addresses: addresses}
}
