package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSeries() HourlySeries {
	return HourlySeries{
		Time: []string{
			"2024-03-01T22:00", "2024-03-01T23:00",
			"2024-03-02T00:00", "2024-03-02T01:00", "2024-03-02T02:00",
		},
		Temperature:      []float64{5.5, 4.2, 3.1, 2.8, 3.9},
		RelativeHumidity: []float64{80, 85, 90, 92, 88},
		WindSpeed:        []float64{12.0, 15.5, 9.1, 20.3, 18.0},
	}
}

func TestDailySummariesGroupsByUTCDay(t *testing.T) {
	summaries := DailySummaries(sampleSeries())

	require.Len(t, summaries, 2)
	assert.Equal(t, "2024-03-01", summaries[0].Date)
	assert.Equal(t, "2024-03-02", summaries[1].Date)

	first := summaries[0]
	assert.Equal(t, 5.5, first.MaxTemp)
	assert.Equal(t, 4.2, first.MinTemp)
	assert.Equal(t, 83, first.AvgHumidity) // round(82.5)
	assert.Equal(t, 15.5, first.MaxWindSpeed)
	require.Len(t, first.HourlyData, 2)

	second := summaries[1]
	assert.Equal(t, 3.9, second.MaxTemp)
	assert.Equal(t, 2.8, second.MinTemp)
	assert.Equal(t, 90, second.AvgHumidity)
	assert.Equal(t, 20.3, second.MaxWindSpeed)
}

func TestDailySummariesPartitionsSeries(t *testing.T) {
	series := sampleSeries()
	summaries := DailySummaries(series)

	// Every hourly entry appears in exactly one summary, in its
	// original chronological order.
	var reassembled []string
	for _, s := range summaries {
		for _, p := range s.HourlyData {
			reassembled = append(reassembled, p.Time)
		}
	}
	assert.Equal(t, series.Time, reassembled)
}

func TestDailySummariesDoesNotMutateInput(t *testing.T) {
	series := sampleSeries()
	want := sampleSeries()

	DailySummaries(series)

	assert.Equal(t, want, series)
}

func TestDailySummariesEmptyInput(t *testing.T) {
	summaries := DailySummaries(HourlySeries{})
	assert.Empty(t, summaries)
}

func TestDailySummariesSingleReading(t *testing.T) {
	series := HourlySeries{
		Time:             []string{"2024-03-05T12:00"},
		Temperature:      []float64{7.3},
		RelativeHumidity: []float64{60},
		WindSpeed:        []float64{4.4},
	}

	summaries := DailySummaries(series)

	require.Len(t, summaries, 1)
	assert.Equal(t, 7.3, summaries[0].MaxTemp)
	assert.Equal(t, 7.3, summaries[0].MinTemp)
	assert.Equal(t, 60, summaries[0].AvgHumidity)
	assert.Equal(t, 4.4, summaries[0].MaxWindSpeed)
}

func TestLookupWeatherCode(t *testing.T) {
	clear := LookupWeatherCode(0, true)
	assert.Equal(t, "Clear sky", clear.Description)
	assert.Equal(t, "sun", clear.Icon)

	night := LookupWeatherCode(0, false)
	assert.Equal(t, "moon", night.Icon)

	unknown := LookupWeatherCode(42, true)
	assert.Equal(t, "Unknown", unknown.Description)
}
