package model_test

import (
	"rental/internal/domains/reservation/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func interval(t *testing.T, start, end int) model.Interval {
	t.Helper()

	i, err := model.NewInterval(day(start), day(end))
	require.NoError(t, err)

	return i
}

func TestNewInterval(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{name: "multi day", start: day(1), end: day(5)},
		{name: "single day", start: day(3), end: day(3)},
		{name: "end before start", start: day(5), end: day(4), wantErr: true},
		{
			name:  "time of day is dropped",
			start: time.Date(2025, time.June, 1, 18, 30, 0, 0, time.UTC),
			end:   time.Date(2025, time.June, 1, 6, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, err := model.NewInterval(tt.start, tt.end)

			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidInterval)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.Date(tt.start), i.Start)
			assert.Equal(t, model.Date(tt.end), i.End)
		})
	}
}

func TestParseInterval(t *testing.T) {
	i, err := model.ParseInterval("2025-06-01", "2025-06-05")
	require.NoError(t, err)
	assert.Equal(t, day(1), i.Start)
	assert.Equal(t, day(5), i.End)
	assert.Equal(t, "[2025-06-01, 2025-06-05]", i.String())

	_, err = model.ParseInterval("2025-06-05", "2025-06-01")
	assert.ErrorIs(t, err, model.ErrInvalidInterval)

	_, err = model.ParseInterval("06/01/2025", "2025-06-05")
	assert.Error(t, err)

	_, err = model.ParseInterval("2025-06-01", "")
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        [2]int
		b        [2]int
		expected bool
	}{
		{name: "identical", a: [2]int{1, 5}, b: [2]int{1, 5}, expected: true},
		{name: "shared last day", a: [2]int{1, 5}, b: [2]int{5, 8}, expected: true},
		{name: "shared first day", a: [2]int{5, 8}, b: [2]int{1, 5}, expected: true},
		{name: "adjacent", a: [2]int{1, 5}, b: [2]int{6, 8}, expected: false},
		{name: "contained", a: [2]int{1, 10}, b: [2]int{3, 4}, expected: true},
		{name: "single day inside", a: [2]int{1, 5}, b: [2]int{3, 3}, expected: true},
		{name: "single days apart", a: [2]int{3, 3}, b: [2]int{4, 4}, expected: false},
		{name: "disjoint", a: [2]int{1, 2}, b: [2]int{10, 12}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := interval(t, tt.a[0], tt.a[1])
			b := interval(t, tt.b[0], tt.b[1])

			assert.Equal(t, tt.expected, model.Overlaps(a, b))
			assert.Equal(t, tt.expected, model.Overlaps(b, a), "overlap must be symmetric")
			assert.Equal(t, tt.expected, a.Overlaps(b))
		})
	}
}

func TestIntersection(t *testing.T) {
	got, ok := model.Intersection(interval(t, 1, 5), interval(t, 4, 9))
	require.True(t, ok)
	assert.Equal(t, interval(t, 4, 5), got)

	got, ok = model.Intersection(interval(t, 1, 10), interval(t, 3, 4))
	require.True(t, ok)
	assert.Equal(t, interval(t, 3, 4), got)

	_, ok = model.Intersection(interval(t, 1, 5), interval(t, 6, 9))
	assert.False(t, ok)
}

func TestInterval_Days(t *testing.T) {
	i := interval(t, 1, 5)

	assert.Equal(t, 5, i.Days())
	assert.Equal(t, 1, interval(t, 3, 3).Days())
}
