package timezone

import "time"

const DefaultTimezone = "UTC"

// FormLayout is the layout used to pre-fill and echo appointment times in forms.
const FormLayout = "2006-01-02 15:04"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to DefaultTimezone when it is unknown.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// Clock carries the clinic's configured zone through handlers and use cases.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(tz string) *Clock {
	return &Clock{loc: Location(tz), now: time.Now}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Local converts a stored (UTC) instant into clinic time.
func (c *Clock) Local(t time.Time) time.Time {
	return t.In(c.loc)
}

// FormDefault is the appointment time pre-filled on the create form.
func (c *Clock) FormDefault() string {
	return c.Now().Format(FormLayout)
}
