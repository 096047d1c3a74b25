package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeString
		wantErr bool
	}{
		{"09:00", "09:00", false},
		{"00:00", "00:00", false},
		{"23:59", "23:59", false},
		{"24:00", "", true},
		{"12:60", "", true},
		{"9:00", "", true},
		{"12-30", "", true},
		{"", "", true},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 9*60+30, TimeString("09:30").Minutes())
	assert.Equal(t, 23*60+59, TimeString("23:59").Minutes())
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("17:00").IsAfter("09:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), got)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.Error(t, err)
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2026, 1, 5, 15, 47, 12, 0, time.UTC)
	got := TimeString("09:30").At(date, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC), got)
}

func TestTimeString_Scan(t *testing.T) {
	var fromString TimeString
	require.NoError(t, fromString.Scan("09:00"))
	assert.Equal(t, TimeString("09:00"), fromString)

	// Колонки TIME приходят от драйвера с секундами
	var fromSeconds TimeString
	require.NoError(t, fromSeconds.Scan("09:00:00"))
	assert.Equal(t, TimeString("09:00"), fromSeconds)

	var fromTime TimeString
	require.NoError(t, fromTime.Scan(time.Date(2026, 1, 5, 14, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:15"), fromTime)

	var fromBytes TimeString
	require.NoError(t, fromBytes.Scan([]byte("18:45")))
	assert.Equal(t, TimeString("18:45"), fromBytes)

	var invalid TimeString
	assert.Error(t, invalid.Scan("not a time"))
}
