package format

import (
	"errors"
	"fmt"
	"time"
)

const (
	// LabelLayout renders as YYYY-MM-DD HH:mm.
	LabelLayout = "2006-01-02 15:04"

	DefaultInvalidLabel = "Invalid date"
)

var ErrInvalidDate = errors.New("invalid date")

// DateLabel turns date-like values into display labels.
// It is immutable once built and safe for concurrent use.
type DateLabel struct {
	loc          *time.Location
	invalidLabel string
}

type Option func(*DateLabel)

// WithLocation sets the zone labels are rendered in. nil means time.Local.
func WithLocation(loc *time.Location) Option {
	return func(d *DateLabel) {
		if loc != nil {
			d.loc = loc
		}
	}
}

// WithInvalidLabel replaces the placeholder returned for unparseable input.
func WithInvalidLabel(label string) Option {
	return func(d *DateLabel) {
		if label != "" {
			d.invalidLabel = label
		}
	}
}

func NewDateLabel(opts ...Option) *DateLabel {
	d := &DateLabel{
		loc:          time.Local,
		invalidLabel: DefaultInvalidLabel,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// In returns a copy of d that renders in loc.
func (d *DateLabel) In(loc *time.Location) *DateLabel {
	if loc == nil || loc == d.loc {
		return d
	}
	c := *d
	c.loc = loc
	return &c
}

func (d *DateLabel) Location() *time.Location { return d.loc }

func (d *DateLabel) InvalidLabel() string { return d.invalidLabel }

// Format renders value as a label. Unparseable input yields the invalid
// label instead of an error.
func (d *DateLabel) Format(value any) string {
	label, err := d.FormatE(value)
	if err != nil {
		return d.invalidLabel
	}
	return label
}

// FormatE is Format with the parse error surfaced.
func (d *DateLabel) FormatE(value any) (string, error) {
	t, err := d.Parse(value)
	if err != nil {
		return "", err
	}
	return t.In(d.loc).Format(LabelLayout), nil
}

// Parse coerces a date-like value into a time.Time. Numbers are epoch
// milliseconds; strings without a zone are read in d's location.
func (d *DateLabel) Parse(value any) (time.Time, error) {
	t, err := coerce(value, d.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return t, nil
}
