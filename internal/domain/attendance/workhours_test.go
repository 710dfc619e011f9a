package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkHours(t *testing.T) {
	tests := []struct {
		input   string
		minutes int
		wantErr bool
	}{
		{input: "8.30", minutes: 8*60 + 30},
		{input: "1.05", minutes: 65},
		{input: "0.00", minutes: 0},
		{input: "12.59", minutes: 12*60 + 59},
		{input: "3", minutes: 180},
		{input: " 2.15 ", minutes: 135},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "1.x", wantErr: true},
	}

	for _, tt := range tests {
		wh, err := ParseWorkHours(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.minutes, wh.Minutes(), "input %q", tt.input)
	}
}

func TestWorkHoursString(t *testing.T) {
	assert.Equal(t, "1.05", NewWorkHours(1, 5).String())
	assert.Equal(t, "0.00", WorkHours{}.String())
	assert.Equal(t, "8.30", NewWorkHours(8, 30).String())

	// Excess minutes carry into hours.
	assert.Equal(t, "2.15", NewWorkHours(0, 135).String())
	assert.Equal(t, "3.00", NewWorkHours(1, 120).String())
}

func TestWorkHoursAdd(t *testing.T) {
	a, err := ParseWorkHours("1.30")
	require.NoError(t, err)
	b, err := ParseWorkHours("2.45")
	require.NoError(t, err)

	// 1h30m + 2h45m = 4h15m, not 1.30+2.45=3.75.
	assert.Equal(t, "4.15", a.Add(b).String())

	zero := WorkHours{}
	assert.Equal(t, "1.30", a.Add(zero).String())
}

func TestWorkHoursFromDuration(t *testing.T) {
	checkin := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	checkout := time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC)
	assert.Equal(t, "8.30", WorkHoursFromDuration(checkout.Sub(checkin)).String())

	// Partial minutes are floored.
	assert.Equal(t, "0.01", WorkHoursFromDuration(119*time.Second).String())
	assert.Equal(t, "0.00", WorkHoursFromDuration(59*time.Second).String())

	// Negative durations clamp to zero rather than going backwards.
	assert.Equal(t, "0.00", WorkHoursFromDuration(-time.Hour).String())
}
