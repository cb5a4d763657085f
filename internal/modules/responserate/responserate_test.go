package responserate

import (
	"testing"
	"time"
)

func TestRate(t *testing.T) {
	if got := Rate(0, 3); got != 0 {
		t.Fatalf("Rate(0, 3) = %v, want 0", got)
	}
	if got := Rate(8, 2); got != 25 {
		t.Fatalf("Rate(8, 2) = %v, want 25", got)
	}
	if Rate(0, 0) >= DefaultThreshold {
		t.Fatalf("empty window should sit below the threshold")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		rates []float64
		want  Trend
	}{
		{"decreasing halves", []float64{10, 10, 10, 5, 5, 5}, TrendDecreasing},
		{"increasing halves", []float64{1, 1, 4, 4}, TrendIncreasing},
		{"within band", []float64{5, 5.2, 5.3, 5.4}, TrendStable},
		{"odd length second half larger", []float64{2, 4, 4}, TrendIncreasing},
		{"single value", []float64{9}, TrendStable},
		{"empty", nil, TrendStable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got, _, _ := Classify(tc.rates); got != tc.want {
				t.Fatalf("Classify(%v) = %s, want %s", tc.rates, got, tc.want)
			}
		})
	}
}

func TestClassifyHalvesAndAverage(t *testing.T) {
	rates := []float64{10, 10, 10, 5, 5, 5}
	_, first, second := Classify(rates)
	if first != 10 || second != 5 {
		t.Fatalf("halves = %v, %v; want 10, 5", first, second)
	}
	if got := Mean(rates); got != 7.5 {
		t.Fatalf("Mean = %v, want 7.5", got)
	}
}

func TestClampDays(t *testing.T) {
	for in, want := range map[int]int{0: 30, -4: 1, 1000: 365, 7: 7} {
		if got := ClampDays(in); got != want {
			t.Fatalf("ClampDays(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestDailyWindows(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	w := DailyWindows(now, 3)
	if len(w) != 3 {
		t.Fatalf("len = %d, want 3", len(w))
	}
	if want := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC); !w[0][0].Equal(want) {
		t.Fatalf("first start = %v, want %v", w[0][0], want)
	}
	if want := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC); !w[2][1].Equal(want) {
		t.Fatalf("last end = %v, want %v", w[2][1], want)
	}
	if !w[0][1].Equal(w[1][0]) {
		t.Fatalf("windows not contiguous: %v", w)
	}
}

func TestRollingWindowIsNotCalendarAligned(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.FixedZone("EST", -5*3600))
	start, end := RollingWindow(now, 3)
	if !end.Equal(now) || end.Location() != time.UTC {
		t.Fatalf("end = %v, want %v in UTC", end, now.UTC())
	}
	if got := end.Sub(start); got != 72*time.Hour {
		t.Fatalf("span = %v, want 72h", got)
	}
	daily := DailyWindows(now, 3)
	if start.Equal(daily[0][0]) || end.Equal(daily[2][1]) {
		t.Fatalf("rolling [%v, %v) should not match calendar days [%v, %v)", start, end, daily[0][0], daily[2][1])
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(100.0 / 3); got != 33.33 {
		t.Fatalf("Round2 = %v, want 33.33", got)
	}
}
