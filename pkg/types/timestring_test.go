package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeString
		wantErr bool
	}{
		{"09:30", "09:30", false},
		{"09:30:45", "09:30", false},
		{"00:00", "00:00", false},
		{"23:59", "23:59", false},
		{"24:00", "", true},
		{"9:30", "", true},
		{"garbage", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeStringMinutes(t *testing.T) {
	assert.Equal(t, 0, MustTimeString("00:00").Minutes())
	assert.Equal(t, 9*60+30, MustTimeString("09:30").Minutes())
	assert.Equal(t, 23*60+59, MustTimeString("23:59").Minutes())
}

func TestTimeStringComparisons(t *testing.T) {
	a := MustTimeString("09:00")
	b := MustTimeString("10:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeStringAddMinutes(t *testing.T) {
	t.Run("within the day", func(t *testing.T) {
		got, err := MustTimeString("09:15").AddMinutes(105)
		require.NoError(t, err)
		assert.Equal(t, TimeString("11:00"), got)
	})

	t.Run("crossing midnight", func(t *testing.T) {
		_, err := MustTimeString("23:30").AddMinutes(45)
		require.ErrorIs(t, err, ErrTimeOutOfRange)
	})

	t.Run("negative below zero", func(t *testing.T) {
		_, err := MustTimeString("00:10").AddMinutes(-20)
		require.ErrorIs(t, err, ErrTimeOutOfRange)
	})
}

func TestFromMinutes(t *testing.T) {
	assert.Equal(t, TimeString("00:05"), FromMinutes(5))
	assert.Equal(t, TimeString("10:00"), FromMinutes(600))
	assert.Equal(t, TimeString("23:59"), FromMinutes(23*60+59))
}

func TestTimeStringScan(t *testing.T) {
	t.Run("from string with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("14:30:00"))
		assert.Equal(t, TimeString("14:30"), ts)
	})

	t.Run("from bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("08:00")))
		assert.Equal(t, TimeString("08:00"), ts)
	})

	t.Run("from time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 16, 45, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("16:45"), ts)
	})

	t.Run("nil resets the value", func(t *testing.T) {
		ts := MustTimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		require.Error(t, ts.Scan(42))
	})
}

func TestTimeStringValue(t *testing.T) {
	v, err := MustTimeString("12:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "12:00", v)
}
