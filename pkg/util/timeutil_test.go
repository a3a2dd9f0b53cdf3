package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	loc := LoadLocationOrUTC("America/New_York")
	ts := time.Date(2024, 6, 21, 3, 30, 0, 0, time.UTC) // 23:30 on the 20th in New York
	got := StartOfDay(ts, loc)
	require.Equal(t, time.Date(2024, 6, 20, 0, 0, 0, 0, loc), got)
}

func TestLoadLocationOrUTC(t *testing.T) {
	require.Equal(t, time.UTC, LoadLocationOrUTC(""))
	require.Equal(t, time.UTC, LoadLocationOrUTC("Nowhere/Invalid"))
	require.Equal(t, "America/Chicago", LoadLocationOrUTC("America/Chicago").String())
}
