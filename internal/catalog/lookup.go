package catalog

import (
	"context"
	"strings"

	"eventkernel/internal/adapters"
)

// FindRoom returns the room matching name (case-insensitive), or false if no
// room in the catalog matches.
func (c *Cache) FindRoom(ctx context.Context, name string) (adapters.Room, bool, error) {
	rooms, err := c.Rooms(ctx)
	if err != nil {
		return adapters.Room{}, false, err
	}
	name = strings.TrimSpace(strings.ToLower(name))
	for _, room := range rooms {
		if strings.ToLower(room.Name) == name {
			return room, true, nil
		}
	}
	return adapters.Room{}, false, nil
}

// RoomsWithCapacity returns every room whose capacity is at least
// participants and whose features are a superset of required.
func (c *Cache) RoomsWithCapacity(ctx context.Context, participants int, required []string) ([]adapters.Room, error) {
	rooms, err := c.Rooms(ctx)
	if err != nil {
		return nil, err
	}
	var out []adapters.Room
	for _, room := range rooms {
		if room.Capacity < participants {
			continue
		}
		if !hasAllFeatures(room.Features, required) {
			continue
		}
		out = append(out, room)
	}
	return out, nil
}

func hasAllFeatures(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, f := range have {
		set[strings.ToLower(f)] = struct{}{}
	}
	for _, f := range want {
		if _, ok := set[strings.ToLower(f)]; !ok {
			return false
		}
	}
	return true
}
