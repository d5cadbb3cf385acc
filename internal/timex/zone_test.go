package timex

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offsetOf(t *testing.T, z *Zone) int {
	t.Helper()
	_, off := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).In(z.Location()).Zone()
	return off
}

func TestLoadZone(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		offset  int
		wantErr bool
	}{
		{name: "default", in: "", offset: 8 * 3600},
		{name: "utc plus hours", in: "UTC+8", offset: 8 * 3600},
		{name: "bare offset", in: "+05:30", offset: 5*3600 + 30*60},
		{name: "gmt minus", in: "GMT-3", offset: -3 * 3600},
		{name: "compact", in: "-0930", offset: -(9*3600 + 30*60)},
		{name: "utc", in: "UTC", offset: 0},
		{name: "out of range", in: "+25", wantErr: true},
		{name: "unknown", in: "Mars/Olympus_Mons", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, err := LoadZone(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.offset, offsetOf(t, z))
		})
	}
}

func TestZone_ConversionLaws(t *testing.T) {
	z, err := LoadZone("UTC+8")
	require.NoError(t, err)

	naive := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	asLocal := z.FromNaiveLocal(naive)
	utc := z.ToUTC(asLocal)
	assert.Equal(t, 4, utc.Hour(), "local noon is 04:00 UTC")
	assert.True(t, z.ToLocal(utc).Equal(asLocal))
	assert.Equal(t, 12, z.ToLocal(utc).Hour())

	asUTC := z.FromNaiveUTC(naive)
	local := z.ToLocal(asUTC)
	assert.Equal(t, 20, local.Hour(), "UTC noon is 20:00 local")
	assert.True(t, z.ToUTC(local).Equal(asUTC))
	assert.Equal(t, time.UTC, z.ToUTC(local).Location())
}

func TestZone_ParseTimestamp(t *testing.T) {
	z, err := LoadZone("UTC+8")
	require.NoError(t, err)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01T23:30:00", time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)},
		{"2024-01-01 23:30:00", time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)},
		{"2024-01-01T23:30", time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)},
		{"2024-01-01T23:30:00Z", time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)},
		{"2024-01-01T23:30:00.123456+08:00", time.Date(2024, 1, 1, 15, 30, 0, 123456000, time.UTC)},
		{"2024-01-01T10:00:00-05:00", time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := z.ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s want %s", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, err = z.ParseTimestamp("yesterday")
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestZone_DayBounds(t *testing.T) {
	z, err := LoadZone("UTC+8")
	require.NoError(t, err)

	start, err := z.ParseDate("2024-01-01")
	require.NoError(t, err)
	assert.True(t, z.ToUTC(start).Equal(time.Date(2023, 12, 31, 16, 0, 0, 0, time.UTC)))

	end := z.EndOfDay(start)
	assert.True(t, z.ToUTC(end).Equal(time.Date(2024, 1, 1, 15, 59, 59, 999999000, time.UTC)))

	_, err = z.ParseDate("01/02/2024")
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestZone_DateKeyAndFormat(t *testing.T) {
	z, err := LoadZone("UTC+8")
	require.NoError(t, err)

	lateEvening := time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)
	afterMidnight := time.Date(2024, 1, 1, 16, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-01", z.DateKey(lateEvening))
	assert.Equal(t, "2024-01-02", z.DateKey(afterMidnight))

	assert.Equal(t, "2024-01-01T23:30:00+08:00", z.Format(lateEvening))
	assert.Equal(t, "2024-01-02T00:30:00.5+08:00", z.Format(afterMidnight.Add(500*time.Millisecond)))
}
