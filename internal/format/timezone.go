package format

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

var ErrUnknownTimezone = errors.New("unknown timezone")

// ResolveTimezone maps a zone name to a location. Empty and "Local" mean
// the host zone.
func ResolveTimezone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	switch name {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTimezone, name)
	}
	return loc, nil
}
