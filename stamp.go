package departures

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	minutesPerDay = 24 * 60
	secondsPerDay = minutesPerDay * 60
	halfDay       = secondsPerDay / 2
)

// ClockPlaceholder is displayed wherever a time of day is not known.
const ClockPlaceholder = "--:--"

// Stamp is a timestamp in the API's compact encoding. Only its time of day is ever
// displayed or compared.
type Stamp struct {
	raw     string
	seconds int
	valid   bool
}

// ParseStamp accepts YYYYMMDDTHHMMSS, YYYYMMDDHHMMSS, YYYYMMDDTHHMM and the bare HHMMSS
// used by vehicle journey stop times. Anything else yields an invalid Stamp.
func ParseStamp(s string) Stamp {
	raw := strings.TrimSpace(s)
	digits := strings.Replace(raw, "T", "", 1)
	var clock string
	switch len(digits) {
	case 14:
		clock = digits[8:]
	case 12:
		clock = digits[8:] + "00"
	case 6:
		clock = digits
	case 4:
		clock = digits + "00"
	default:
		return Stamp{raw: raw}
	}
	if _, err := strconv.ParseUint(digits, 10, 64); err != nil {
		return Stamp{raw: raw}
	}
	hh, _ := strconv.Atoi(clock[0:2])
	mm, _ := strconv.Atoi(clock[2:4])
	ss, _ := strconv.Atoi(clock[4:6])
	if mm > 59 || ss > 59 {
		return Stamp{raw: raw}
	}
	// stop times past midnight are encoded as 24h+ on the service day
	hh = hh % 24
	return Stamp{
		raw:     raw,
		seconds: hh*3600 + mm*60 + ss,
		valid:   true,
	}
}

func (s Stamp) Valid() bool {
	return s.valid
}

func (s Stamp) Raw() string {
	return s.raw
}

func (s Stamp) SecondsOfDay() int {
	return s.seconds
}

func (s Stamp) MinutesOfDay() int {
	return s.seconds / 60
}

func (s Stamp) Clock() string {
	if !s.valid {
		return ClockPlaceholder
	}
	return formatClock(s.MinutesOfDay())
}

func formatClock(minutes int) string {
	minutes = wrapMinutes(minutes)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func wrapMinutes(minutes int) int {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return minutes
}

// timeOfDayDifference returns observed minus scheduled in seconds, corrected for trains
// crossing midnight: a raw difference beyond twelve hours is taken to be on the other day.
func timeOfDayDifference(scheduled, observed Stamp) int {
	diff := observed.seconds - scheduled.seconds
	if diff < -halfDay {
		diff += secondsPerDay
	}
	if diff > halfDay {
		diff -= secondsPerDay
	}
	return diff
}
