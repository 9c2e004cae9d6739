package service_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheeseshop/cheeseshop/internal/service"
)

func TestTimestampMarshal(t *testing.T) {
	t.Parallel()

	ts := service.NewTimestamp(time.Date(2019, 1, 1, 12, 30, 45, 0, time.UTC))
	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2019-01-01T12:30:45"`, string(data))

	// Non-UTC input is normalized.
	loc := time.FixedZone("CET", 3600)
	ts = service.NewTimestamp(time.Date(2019, 1, 1, 13, 30, 45, 0, loc))
	data, err = json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2019-01-01T12:30:45"`, string(data))
}

func TestTimestampUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{
			name: "iso form",
			in:   `"2019-01-01T12:30:45"`,
			want: time.Date(2019, 1, 1, 12, 30, 45, 0, time.UTC),
		},
		{
			name: "rfc3339 form",
			in:   `"2019-01-01T12:30:45Z"`,
			want: time.Date(2019, 1, 1, 12, 30, 45, 0, time.UTC),
		},
		{
			name: "date only",
			in:   `"2019-01-01"`,
			want: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "null",
			in:   `null`,
			want: time.Time{},
		},
		{
			name:    "garbage",
			in:      `"not a time"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var ts service.Timestamp
			err := json.Unmarshal([]byte(tt.in), &ts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time()), "got %v", ts.Time())
		})
	}
}
