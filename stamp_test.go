package departures

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStamp(t *testing.T) {
	tests := []struct {
		input   string
		valid   bool
		clock   string
		seconds int
	}{
		{"20240301T081530", true, "08:15", 8*3600 + 15*60 + 30},
		{"20240301081530", true, "08:15", 8*3600 + 15*60 + 30},
		{"20240301T0815", true, "08:15", 8*3600 + 15*60},
		{"081500", true, "08:15", 8*3600 + 15*60},
		{"253000", true, "01:30", 3600 + 30*60},
		{"20240301T236100", false, ClockPlaceholder, 0},
		{"2024-03-01T08:15", false, ClockPlaceholder, 0},
		{"", false, ClockPlaceholder, 0},
		{"abc", false, ClockPlaceholder, 0},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			s := ParseStamp(tc.input)
			assert.Equal(t, tc.valid, s.Valid())
			assert.Equal(t, tc.clock, s.Clock())
			assert.Equal(t, tc.seconds, s.SecondsOfDay())
		})
	}
}

func TestTimeOfDayDifferenceWrapsAtMidnight(t *testing.T) {
	assert.Equal(t, 15*60, timeOfDayDifference(ParseStamp("20240301T235000"), ParseStamp("20240302T000500")))
	assert.Equal(t, -15*60, timeOfDayDifference(ParseStamp("20240302T000500"), ParseStamp("20240301T235000")))
	assert.Equal(t, 12*3600, timeOfDayDifference(ParseStamp("20240301T000000"), ParseStamp("20240301T120000")))
}

func TestFormatClockWraps(t *testing.T) {
	assert.Equal(t, "00:10", formatClock(24*60+10))
	assert.Equal(t, "23:50", formatClock(-10))
}
