package stats

import (
	"testing"
	"time"
)

var streakToday = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)

func day(offset int) time.Time {
	return streakToday.AddDate(0, 0, offset)
}

func TestComputeStreaksEmpty(t *testing.T) {
	s := ComputeStreaks(nil, streakToday)
	if s.Current != 0 || s.Longest != 0 {
		t.Fatalf("expected zero streaks, got %+v", s)
	}
}

func TestComputeStreaksSingleToday(t *testing.T) {
	s := ComputeStreaks([]time.Time{day(0)}, streakToday)
	if s.Current != 1 || s.Longest != 1 {
		t.Fatalf("expected {1,1}, got %+v", s)
	}
}

func TestComputeStreaksAnchoredAtYesterday(t *testing.T) {
	s := ComputeStreaks([]time.Time{day(-1)}, streakToday)
	if s.Current != 1 || s.Longest != 1 {
		t.Fatalf("expected {1,1}, got %+v", s)
	}
}

func TestComputeStreaksThreeConsecutiveDays(t *testing.T) {
	s := ComputeStreaks([]time.Time{day(0), day(-1), day(-2)}, streakToday)
	if s.Current != 3 || s.Longest != 3 {
		t.Fatalf("expected {3,3}, got %+v", s)
	}
}

func TestComputeStreaksStaleEntry(t *testing.T) {
	s := ComputeStreaks([]time.Time{day(-5)}, streakToday)
	if s.Current != 0 || s.Longest != 1 {
		t.Fatalf("expected {0,1}, got %+v", s)
	}
}

func TestComputeStreaksLongestBehindGap(t *testing.T) {
	days := []time.Time{
		day(0), day(-1), // current run of 2
		day(-4), day(-5), day(-6), day(-7), // historical run of 4
	}
	s := ComputeStreaks(days, streakToday)
	if s.Current != 2 {
		t.Fatalf("expected current 2, got %d", s.Current)
	}
	if s.Longest != 4 {
		t.Fatalf("expected longest 4, got %d", s.Longest)
	}
}

func TestComputeStreaksCurrentNotRevivedByLaterRun(t *testing.T) {
	// Newest entry is recent but alone; the long run further back must not
	// leak into the current streak.
	days := []time.Time{day(0), day(-3), day(-4), day(-5)}
	s := ComputeStreaks(days, streakToday)
	if s.Current != 1 {
		t.Fatalf("expected current 1, got %d", s.Current)
	}
	if s.Longest != 3 {
		t.Fatalf("expected longest 3, got %d", s.Longest)
	}
}

func TestComputeStreaksIgnoresTimeOfDayAndDuplicates(t *testing.T) {
	days := []time.Time{
		day(0).Add(9 * time.Hour),
		day(0).Add(22 * time.Hour),
		day(-1).Add(30 * time.Minute),
	}
	s := ComputeStreaks(days, streakToday)
	if s.Current != 2 || s.Longest != 2 {
		t.Fatalf("expected {2,2}, got %+v", s)
	}
}

func TestComputeStreaksLongestNeverBelowCurrent(t *testing.T) {
	sets := [][]time.Time{
		{day(0)},
		{day(0), day(-1)},
		{day(0), day(-1), day(-2), day(-6)},
		{day(-2), day(-3)},
		{day(-1), day(-2), day(-3), day(-4), day(-9), day(-10)},
	}
	for i, days := range sets {
		s := ComputeStreaks(days, streakToday)
		if s.Longest < s.Current {
			t.Fatalf("set %d: longest %d < current %d", i, s.Longest, s.Current)
		}
	}
}
