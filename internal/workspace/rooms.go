package workspace

import (
	"context"
	"sort"
	"strings"

	"github.com/roomaudit/roomaudit/internal/calendar"
)

// ListRooms enumerates the customer's bookable calendar resources with
// at least minCapacity seats, sorted by address for stable iteration
// order. Resources without a known capacity are included only when
// minCapacity is zero.
func (d *DirectoryClient) ListRooms(ctx context.Context, minCapacity int) ([]calendar.ResourceRef, error) {
	byEmail, err := d.resourceIndex(ctx)
	if err != nil {
		return nil, err
	}

	rooms := make([]calendar.ResourceRef, 0, len(byEmail))
	for _, res := range byEmail {
		// Equipment mailboxes (projectors, bikes) are bookable but not
		// rooms. Uncategorized resources stay in, many tenants never
		// set the category.
		if resourceEntryType(res) == "equipment" {
			continue
		}
		capacity := int(res.Capacity)
		if capacity < minCapacity {
			continue
		}
		rooms = append(rooms, calendar.ResourceRef{
			Address:     strings.ToLower(res.ResourceEmail),
			DisplayName: res.ResourceName,
			Capacity:    capacity,
		})
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Address < rooms[j].Address })
	return rooms, nil
}
