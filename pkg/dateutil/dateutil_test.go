package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBeginningOfDay(t *testing.T) {
	at := time.Date(2024, 3, 15, 22, 45, 12, 0, time.UTC)
	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), BeginningOfDay(at))

	// A local time east of UTC can fall on the previous UTC day.
	east := time.Date(2024, 3, 16, 1, 0, 0, 0, time.FixedZone("dhaka", 6*3600))
	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), BeginningOfDay(east))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, 3, 15, 0, 1, 0, 0, time.UTC)
	c := time.Date(2024, 3, 16, 0, 1, 0, 0, time.UTC)

	require.True(t, SameDay(a, b))
	require.False(t, SameDay(a, c))
}

func TestSameWeek(t *testing.T) {
	// 2024-03-11 is a Monday, 2024-03-17 the following Sunday.
	monday := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 3, 17, 10, 0, 0, 0, time.UTC)
	nextMonday := time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC)

	require.True(t, SameWeek(monday, sunday))
	require.False(t, SameWeek(sunday, nextMonday))
}

func TestIsDayBefore(t *testing.T) {
	now := time.Date(2024, 3, 16, 8, 0, 0, 0, time.UTC)

	require.True(t, IsDayBefore("2024-03-15", now))
	require.False(t, IsDayBefore("2024-03-14", now))
	require.False(t, IsDayBefore("2024-03-16", now))
	require.False(t, IsDayBefore("", now))
}

func TestNextDay(t *testing.T) {
	at := time.Date(2024, 3, 15, 22, 45, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), NextDay(at))
}

func TestNextHour(t *testing.T) {
	at := time.Date(2024, 3, 15, 22, 45, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC), NextHour(at))
}
