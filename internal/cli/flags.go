package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value for YYYY-MM-DD flags, parsed in the display
// timezone. The zero value means "not set".
type dateValue struct {
	loc *time.Location
	t   time.Time
	set bool
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(loc *time.Location) *dateValue {
	return &dateValue{loc: loc}
}

func (d *dateValue) Set(s string) error {
	t, err := time.ParseInLocation("2006-01-02", s, d.loc)
	if err != nil {
		return fmt.Errorf("expected YYYY-MM-DD: %w", err)
	}
	d.t = t
	d.set = true
	return nil
}

func (d *dateValue) String() string {
	if !d.set {
		return ""
	}
	return d.t.Format("2006-01-02")
}

func (d *dateValue) Type() string { return "date" }

// Or returns the flag's date, or fallback when the flag was not given.
func (d *dateValue) Or(fallback time.Time) time.Time {
	if d.set {
		return d.t
	}
	return fallback
}
