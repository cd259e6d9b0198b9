// Package tz resolves the club time zone. The IANA database is embedded so
// minimal containers without /usr/share/zoneinfo still work.
package tz

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Load returns the location named name, or UTC when name is empty.
func Load(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("tz: load %s: %w", name, err)
	}
	return loc, nil
}
