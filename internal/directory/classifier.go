package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Classify determines the identity state of address against dir. The
// orgSuffix (e.g. "corp.example") decides whether an address is treated
// as internal; addresses outside it are run through the
// external-to-internal match heuristic before being declared External.
//
// Classify is deterministic for a fixed directory snapshot and never
// mutates dir. An error is returned only when the directory itself
// failed (unreachable, transport error); "no such identity" is a
// classification outcome, not an error.
func Classify(ctx context.Context, dir Directory, address, orgSuffix string) (IdentityState, error) {
	addr := Normalize(address)
	suffix := Normalize(orgSuffix)
	state := IdentityState{Address: addr}

	var entry Entry
	if suffix == "" || !strings.HasSuffix(addr, "@"+suffix) {
		// External-looking address: try transplanting the local part
		// onto the organization suffix.
		if suffix == "" {
			state.Status = StatusExternal
			return state, nil
		}
		candidate := localPart(addr) + "@" + suffix
		found, err := dir.Lookup(ctx, candidate)
		if errors.Is(err, ErrNotFound) {
			state.Status = StatusExternal
			return state, nil
		}
		if err != nil {
			return IdentityState{}, fmt.Errorf("lookup candidate %s: %w", candidate, err)
		}
		state.ResolvedInternalAddress = candidate
		state.MatchedInternal = true
		entry = found
	} else {
		found, err := dir.Lookup(ctx, addr)
		if errors.Is(err, ErrNotFound) {
			state.Status = StatusNotFound
			return state, nil
		}
		if err != nil {
			return IdentityState{}, fmt.Errorf("lookup %s: %w", addr, err)
		}
		entry = found
	}

	state.DirectoryType = entry.Type
	if IsResourceType(entry.Type) {
		// Not a human account; it cannot be "disabled" in any sense
		// that matters for ghost analysis.
		enabled := true
		state.Enabled = &enabled
	} else {
		state.Enabled = entry.Enabled
	}

	// Fail open: an unknown enabled state (nil) classifies as Active.
	if state.Enabled != nil && !*state.Enabled {
		state.Status = StatusDisabled
	} else {
		state.Status = StatusActive
	}
	return state, nil
}

// Normalize lowercases and trims an address for case-insensitive
// comparison.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

func localPart(addr string) string {
	if i := strings.Index(addr, "@"); i >= 0 {
		return addr[:i]
	}
	return addr
}
