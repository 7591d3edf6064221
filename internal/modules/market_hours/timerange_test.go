package market_hours

import (
	"testing"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	tr, err := ParseTimeRange("09:30-15:59")
	require.NoError(t, err)
	assert.Equal(t, TimeRange{StartHour: 9, StartMinute: 30, EndHour: 15, EndMinute: 59}, tr)
	assert.Equal(t, "09:30-15:59", tr.String())
}

func TestParseTimeRange_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", "9:30-15:59"},
		{"too long", "09:30-15:599"},
		{"dash misplaced", "09-30:15:59"},
		{"space instead of dash", "09:30 15:59"},
		{"letters", "ab:cd-ef:gh"},
		{"signed digits", "+9:30-15:59"},
		{"hour out of bounds", "24:00-25:00"},
		{"minute out of bounds", "09:60-15:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimeRange(tt.input)
			assert.ErrorIs(t, err, domain.ErrMalformedTimeRange)
		})
	}
}

func TestTimeRange_UnmarshalText_LeavesTargetOnError(t *testing.T) {
	tr := NewTimeRange(1, 2, 3, 4)
	err := tr.UnmarshalText([]byte("bad"))
	require.Error(t, err)
	assert.Equal(t, NewTimeRange(1, 2, 3, 4), tr)

	require.NoError(t, tr.UnmarshalText([]byte("04:00-09:29")))
	assert.Equal(t, NewTimeRange(4, 0, 9, 29), tr)
}

func TestTimeRange_Contains_OpenInterval(t *testing.T) {
	tr := NewTimeRange(9, 30, 15, 59)

	tests := []struct {
		name   string
		hour   int
		minute int
		want   bool
	}{
		{"exact start excluded", 9, 30, false},
		{"exact end excluded", 15, 59, false},
		{"one minute after start", 9, 31, true},
		{"midday", 12, 0, true},
		{"one minute before end", 15, 58, true},
		{"before start", 9, 29, false},
		{"after end", 16, 0, false},
		{"negative hour", -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Contains(tt.hour, tt.minute))
		})
	}
}

func TestTimeRange_Contains_EveryInteriorMinute(t *testing.T) {
	tr := NewTimeRange(4, 0, 9, 29)
	start, end := 4*60, 9*60+29

	for m := 0; m < 24*60; m++ {
		want := m > start && m < end
		assert.Equal(t, want, tr.Contains(m/60, m%60), "minute %d", m)
	}
}

func TestTimeRange_TotalSeconds(t *testing.T) {
	secs, err := NewTimeRange(9, 30, 15, 59).TotalSeconds()
	require.NoError(t, err)
	assert.Equal(t, uint32(23340), secs)

	secs, err = NewTimeRange(10, 0, 10, 0).TotalSeconds()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), secs)
}

func TestTimeRange_TotalSeconds_Wraparound(t *testing.T) {
	_, err := NewTimeRange(22, 0, 6, 0).TotalSeconds()
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestTimeRange_Validate(t *testing.T) {
	assert.NoError(t, DefaultSessions.Market.Validate())
	assert.ErrorIs(t, NewTimeRange(22, 0, 6, 0).Validate(), domain.ErrInvalidTimeRange)
	assert.ErrorIs(t, NewTimeRange(25, 0, 26, 0).Validate(), domain.ErrInvalidTimeRange)
}
