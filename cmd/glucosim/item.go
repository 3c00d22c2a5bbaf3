package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseItemFlag splits "id@position". Without a position the item keeps its
// default placement.
func parseItemFlag(raw string) (id string, position float64, placed bool, err error) {
	id, pos, found := strings.Cut(strings.TrimSpace(raw), "@")
	id = strings.TrimSpace(id)
	if id == "" {
		return "", 0, false, fmt.Errorf("invalid --item %q: missing id", raw)
	}
	if !found {
		return id, 0, false, nil
	}
	position, err = strconv.ParseFloat(strings.TrimSpace(pos), 64)
	if err != nil {
		return "", 0, false, fmt.Errorf("invalid --item %q: position: %w", raw, err)
	}
	return id, position, true, nil
}
