package weather

import (
	"math"
	"sort"
	"time"
)

// hourTimeLayout is the timestamp format Open-Meteo uses for hourly
// entries (ISO 8601 without seconds or offset).
const hourTimeLayout = "2006-01-02T15:04"

// dayKey truncates an hourly timestamp to its UTC calendar date.
// Grouping by the UTC date can assign an hour near midnight to the
// wrong local day for locations far from UTC; this is a deliberate
// compatibility choice, not an oversight.
func dayKey(ts string) string {
	if t, err := time.Parse(hourTimeLayout, ts); err == nil {
		return t.UTC().Format("2006-01-02")
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.UTC().Format("2006-01-02")
	}
	// Unparseable timestamps keep their literal date prefix so the
	// entry is still grouped somewhere rather than dropped.
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// DailySummaries groups an hourly series into per-day aggregates sorted
// ascending by date. Within each day the hourly entries keep their
// original chronological order. The input series is not mutated.
//
// An empty series yields an empty result. A day with a single reading
// has max = min = that reading's temperature.
func DailySummaries(hourly HourlySeries) []DailySummary {
	grouped := make(map[string][]HourlyPoint)
	for i, ts := range hourly.Time {
		key := dayKey(ts)
		grouped[key] = append(grouped[key], HourlyPoint{
			Time:             ts,
			Temperature:      hourly.Temperature[i],
			RelativeHumidity: hourly.RelativeHumidity[i],
			WindSpeed:        hourly.WindSpeed[i],
		})
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	summaries := make([]DailySummary, 0, len(keys))
	for _, date := range keys {
		points := grouped[date]

		maxTemp := points[0].Temperature
		minTemp := points[0].Temperature
		maxWind := points[0].WindSpeed
		var humiditySum float64

		for _, p := range points {
			if p.Temperature > maxTemp {
				maxTemp = p.Temperature
			}
			if p.Temperature < minTemp {
				minTemp = p.Temperature
			}
			if p.WindSpeed > maxWind {
				maxWind = p.WindSpeed
			}
			humiditySum += p.RelativeHumidity
		}

		summaries = append(summaries, DailySummary{
			Date:         date,
			MaxTemp:      maxTemp,
			MinTemp:      minTemp,
			AvgHumidity:  int(math.Round(humiditySum / float64(len(points)))),
			MaxWindSpeed: maxWind,
			HourlyData:   points,
		})
	}

	return summaries
}
