package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid morning", "09:30", false},
		{"valid midnight", "00:00", false},
		{"valid late", "23:59", false},
		{"end of day", "24:00", false},
		{"past end of day", "24:01", true},
		{"empty", "", true},
		{"missing minutes", "10", true},
		{"out of range hour", "25:00", true},
		{"garbage", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	a := TimeString("10:00")
	b := TimeString("10:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeString_EndOfDay(t *testing.T) {
	end := TimeString("24:00")

	m, err := end.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 24*60, m)

	// Конец суток позже любого времени дня, интервалы до 24:00 не пустые
	assert.True(t, end.IsAfter(TimeString("23:59")))
	assert.True(t, TimeString("22:00").IsBefore(end))
	assert.False(t, end.IsBefore(end))
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("within day", func(t *testing.T) {
		got, err := TimeString("10:00").AddMinutes(90)
		require.NoError(t, err)
		assert.Equal(t, TimeString("11:30"), got)
	})

	t.Run("to end of day", func(t *testing.T) {
		got, err := TimeString("23:30").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("24:00"), got)
	})

	t.Run("past end of day", func(t *testing.T) {
		_, err := TimeString("23:30").AddMinutes(60)
		assert.ErrorIs(t, err, ErrTimeOutOfRange)
	})

	t.Run("negative below zero", func(t *testing.T) {
		_, err := TimeString("00:10").AddMinutes(-20)
		assert.ErrorIs(t, err, ErrTimeOutOfRange)
	})
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("14:45").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 14, 45, 0, 0, time.UTC), got)
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("from string with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:30:00"))
		assert.Equal(t, TimeString("10:30"), ts)
	})

	t.Run("from time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2025, 1, 1, 9, 15, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("09:15"), ts)
	})

	t.Run("from nil", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})
}
