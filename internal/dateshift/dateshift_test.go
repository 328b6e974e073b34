package dateshift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayOffset(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want int
	}{
		{
			name: "same instant",
			a:    date(2026, time.January, 8),
			b:    date(2026, time.January, 8),
			want: 0,
		},
		{
			name: "exact single day",
			a:    date(2026, time.January, 8),
			b:    date(2026, time.January, 9),
			want: 1,
		},
		{
			name: "exact multi day",
			a:    date(2026, time.January, 8),
			b:    date(2026, time.January, 18),
			want: 10,
		},
		{
			name: "one millisecond over rounds up",
			a:    date(2026, time.January, 8),
			b:    date(2026, time.January, 9).Add(time.Millisecond),
			want: 2,
		},
		{
			name: "partial day rounds up",
			a:    date(2026, time.January, 8),
			b:    date(2026, time.January, 8).Add(time.Hour),
			want: 1,
		},
		{
			name: "dst-shortened day still counts as one",
			a:    date(2026, time.March, 8),
			b:    date(2026, time.March, 8).Add(23 * time.Hour),
			want: 1,
		},
		{
			name: "negative exact day",
			a:    date(2026, time.January, 8),
			b:    date(2026, time.January, 6),
			want: -2,
		},
		{
			name: "negative partial truncates toward zero",
			a:    date(2026, time.January, 8),
			b:    date(2026, time.January, 7).Add(time.Hour),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayOffset(tt.a, tt.b))
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		n    int
		want time.Time
	}{
		{
			name: "plain three months",
			t:    date(2026, time.January, 8),
			n:    3,
			want: date(2026, time.April, 8),
		},
		{
			name: "day overflow rolls into next month",
			t:    date(2026, time.January, 30),
			n:    1,
			want: date(2026, time.March, 2),
		},
		{
			name: "leap february keeps day 29",
			t:    date(2024, time.January, 29),
			n:    1,
			want: date(2024, time.February, 29),
		},
		{
			name: "year boundary",
			t:    date(2026, time.November, 15),
			n:    3,
			want: date(2027, time.February, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.t, tt.n))
		})
	}
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, date(2026, time.January, 10), AddDays(date(2026, time.January, 8), 2))
	assert.Equal(t, date(2026, time.January, 6), AddDays(date(2026, time.January, 8), -2))
	assert.Equal(t, date(2026, time.February, 2), AddDays(date(2026, time.January, 31), 2))
}

func TestShifter(t *testing.T) {
	srcStart := date(2026, time.January, 8)
	newStart := date(2026, time.April, 8)

	t.Run("preserves day offset", func(t *testing.T) {
		sh := Shifter{SourceStart: &srcStart, NewStart: newStart}

		deadline := date(2026, time.January, 6)
		got := sh.Shift(&deadline)
		assert.NotNil(t, got)
		assert.Equal(t, date(2026, time.April, 6), *got)

		sameDay := date(2026, time.January, 8)
		got = sh.Shift(&sameDay)
		assert.NotNil(t, got)
		assert.Equal(t, newStart, *got)
	})

	t.Run("nil date stays nil", func(t *testing.T) {
		sh := Shifter{SourceStart: &srcStart, NewStart: newStart}
		assert.Nil(t, sh.Shift(nil))
	})

	t.Run("absent anchor makes every result nil", func(t *testing.T) {
		sh := Shifter{SourceStart: nil, NewStart: newStart}

		d := date(2026, time.January, 6)
		assert.Nil(t, sh.Shift(&d))
		assert.Nil(t, sh.Shift(nil))
	})
}
