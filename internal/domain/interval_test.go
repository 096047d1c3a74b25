package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interval(t *testing.T, startHour, startMin, endHour, endMin int) Interval {
	t.Helper()
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	return NewInterval(
		day.Add(time.Duration(startHour)*time.Hour+time.Duration(startMin)*time.Minute),
		day.Add(time.Duration(endHour)*time.Hour+time.Duration(endMin)*time.Minute),
	)
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        Interval
		b        Interval
		expected bool
	}{
		{
			name:     "partial overlap",
			a:        interval(t, 9, 0, 10, 0),
			b:        interval(t, 9, 30, 10, 30),
			expected: true,
		},
		{
			name:     "containment",
			a:        interval(t, 9, 0, 12, 0),
			b:        interval(t, 10, 0, 11, 0),
			expected: true,
		},
		{
			name:     "identical",
			a:        interval(t, 9, 0, 10, 0),
			b:        interval(t, 9, 0, 10, 0),
			expected: true,
		},
		{
			name:     "touching endpoints do not overlap",
			a:        interval(t, 9, 0, 10, 0),
			b:        interval(t, 10, 0, 11, 0),
			expected: false,
		},
		{
			name:     "disjoint",
			a:        interval(t, 9, 0, 10, 0),
			b:        interval(t, 11, 0, 12, 0),
			expected: false,
		},
		{
			name:     "zero-length interval overlaps nothing",
			a:        interval(t, 9, 30, 9, 30),
			b:        interval(t, 9, 0, 10, 0),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a))
		})
	}
}

func TestInterval_Contains(t *testing.T) {
	outer := interval(t, 9, 0, 12, 0)

	assert.True(t, outer.Contains(interval(t, 9, 0, 12, 0)))
	assert.True(t, outer.Contains(interval(t, 10, 0, 11, 0)))
	assert.True(t, outer.Contains(interval(t, 11, 30, 12, 0)))
	assert.False(t, outer.Contains(interval(t, 8, 30, 9, 30)))
	assert.False(t, outer.Contains(interval(t, 11, 30, 12, 30)))
}

func TestInterval_Expand(t *testing.T) {
	base := interval(t, 10, 0, 11, 0)
	expanded := base.Expand(15*time.Minute, 30*time.Minute)

	assert.Equal(t, interval(t, 9, 45, 11, 30), expanded)
	// Исходный интервал не меняется
	assert.Equal(t, interval(t, 10, 0, 11, 0), base)
}

func TestInterval_OverlapsAny(t *testing.T) {
	slot := interval(t, 9, 0, 9, 30)

	assert.False(t, slot.OverlapsAny(nil))
	assert.False(t, slot.OverlapsAny([]Interval{
		interval(t, 9, 30, 10, 0),
		interval(t, 11, 0, 12, 0),
	}))
	assert.True(t, slot.OverlapsAny([]Interval{
		interval(t, 11, 0, 12, 0),
		interval(t, 9, 15, 9, 45),
	}))
}

func TestInterval_IsEmpty(t *testing.T) {
	assert.True(t, interval(t, 9, 0, 9, 0).IsEmpty())
	assert.True(t, interval(t, 10, 0, 9, 0).IsEmpty())
	assert.False(t, interval(t, 9, 0, 9, 1).IsEmpty())
}
