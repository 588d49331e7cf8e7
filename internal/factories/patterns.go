package factories

import "time"

// Hourly demand multipliers for the breakfast, lunch, dinner and late night
// rushes. Hours not listed fall back to offPeakWeight.
var rushHours = map[int]float64{
	7:  1.5,
	8:  2.0,
	9:  1.8,
	10: 1.2,
	11: 1.3,
	12: 2.0,
	13: 2.0,
	14: 1.5,
	17: 1.2,
	18: 1.8,
	19: 2.0,
	20: 1.7,
	21: 1.3,
	22: 1.4,
	23: 1.6,
	0:  1.3,
	1:  1.0,
	2:  0.8,
}

var weekdayDemand = map[time.Weekday]float64{
	time.Friday:   1.4,
	time.Saturday: 1.5,
	time.Sunday:   1.3,
}

const (
	offPeakWeight  = 0.3
	maxDemand      = 2.0 * 1.5
	maxTimeSamples = 20
)

func demandAt(t time.Time) float64 {
	hour, ok := rushHours[t.Hour()]
	if !ok {
		hour = offPeakWeight
	}
	day, ok := weekdayDemand[t.Weekday()]
	if !ok {
		day = 1.0
	}
	return hour * day
}

// orderTime samples a creation time in [start, end], favouring rush hours
// and weekends.
func (g *Generator) orderTime(start, end time.Time) time.Time {
	t := g.within(start, end)
	for i := 1; i < maxTimeSamples; i++ {
		if float64(fake.IntBetween(0, 1000))/1000*maxDemand <= demandAt(t) {
			return t
		}
		t = g.within(start, end)
	}
	return t
}
