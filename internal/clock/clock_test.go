package clock_test

import (
"testing"
"time"

"github.com/AndrewDonelson/zipstore/internal/clock"
"github.com/stretchr/testify/assert"
)

func TestMockClock_DefaultEpoch(t *testing.T) {
clk := clock.NewMock(time.Time{})
assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), clk.Now())
}

func TestMockClock_SetAndAdvance(t *testing.T) {
clk := clock.NewMock(time.Time{})
ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
clk.Set(ts)
clk.Advance(90 * time.Second)
assert.Equal(t, ts.Add(90*time.Second), clk.Now())
}

func TestRealClock(t *testing.T) {
clk := clock.Real{}
before := time.Now()
got := clk.Now()
assert.False(t, got.Before(before))
}

func TestDOSTime(t *testing.T) {
in := time.Date(2025, 1, 1, 10, 30, 7, 900, time.UTC)
assert.Equal(t, time.Date(2025, 1, 1, 10, 30, 6, 0, time.UTC), clock.DOSTime(in))
even := time.Date(2025, 1, 1, 10, 30, 8, 0, time.UTC)
assert.Equal(t, even, clock.DOSTime(even))
}
