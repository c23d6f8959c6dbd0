package departures

import "time"

type civilTimeConverter struct {
	loc *time.Location
}

func newCivilTimeConverter(zone string) (*civilTimeConverter, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return &civilTimeConverter{
		loc: loc,
	}, nil
}

func (c *civilTimeConverter) convert(input time.Time) time.Time {
	return input.In(c.loc)
}

// navitiaDateTime renders t in the station's civil time using the compact API encoding.
func (c *civilTimeConverter) navitiaDateTime(t time.Time) string {
	return c.convert(t).Format("20060102T150405")
}

// minutesSinceMidnight is the station civil time-of-day used to locate a train on its journey.
func (c *civilTimeConverter) minutesSinceMidnight(t time.Time) int {
	local := c.convert(t)
	return local.Hour()*60 + local.Minute()
}
