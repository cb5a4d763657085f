package responserate

import (
	"math"
	"time"
)

const (
	DefaultThreshold = 5.0
	StableBand       = 0.5
	DefaultDays      = 30
	MaxDays          = 365
)

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Rate is replies/sent*100, or 0 when nothing was sent.
func Rate(sent, replies int64) float64 {
	if sent <= 0 {
		return 0
	}
	return float64(replies) / float64(sent) * 100
}

// ClampDays maps 0 to the default window and bounds the rest to [1, MaxDays].
func ClampDays(days int) int {
	switch {
	case days == 0:
		return DefaultDays
	case days < 1:
		return 1
	case days > MaxDays:
		return MaxDays
	default:
		return days
	}
}

// RollingWindow is [now-days*24h, now), the span behind a single response rate.
// It is not aligned to UTC midnight, unlike DailyWindows, so the two differ by
// the partial days at either end.
func RollingWindow(now time.Time, days int) (start, end time.Time) {
	end = now.UTC()
	return end.AddDate(0, 0, -days), end
}

// DailyWindows returns [start, end) day windows, oldest first, ending with the
// UTC day containing now. The last window extends past now.
func DailyWindows(now time.Time, days int) [][2]time.Time {
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	out := make([][2]time.Time, 0, days)
	for i := days - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		out = append(out, [2]time.Time{start, start.AddDate(0, 0, 1)})
	}
	return out
}

// Classify compares the means of the two halves of rates. The first half holds
// floor(n/2) values. Fewer than two values is stable.
func Classify(rates []float64) (trend Trend, firstAvg, secondAvg float64) {
	if len(rates) < 2 {
		return TrendStable, Mean(rates), Mean(rates)
	}
	mid := len(rates) / 2
	firstAvg = Mean(rates[:mid])
	secondAvg = Mean(rates[mid:])
	delta := secondAvg - firstAvg
	switch {
	case math.Abs(delta) < StableBand:
		trend = TrendStable
	case delta > 0:
		trend = TrendIncreasing
	default:
		trend = TrendDecreasing
	}
	return trend, firstAvg, secondAvg
}

func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
