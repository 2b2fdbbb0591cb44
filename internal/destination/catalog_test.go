package destination_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshita-as02/wanderwise/internal/destination"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type constRandom float64

func (c constRandom) Float64() float64 { return float64(c) }

func newTestCatalog(random destination.Random) *destination.Catalog {
	return destination.NewCatalog(destination.Config{
		Random: random,
		Clock:  func() time.Time { return fixedNow },
	})
}

func names(result *destination.Result) []string {
	out := make([]string, 0, len(result.Destinations))
	for _, d := range result.Destinations {
		out = append(out, d.Name)
	}
	return out
}

func TestCatalog_ListDefaults(t *testing.T) {
	result, err := newTestCatalog(constRandom(0)).List(destination.Query{})
	require.NoError(t, err)

	assert.Equal(t, 8, result.Total)
	assert.Equal(t, []string{
		"Tokyo", "Paris", "Bali", "Rome", "New York City", "Barcelona", "London", "Amsterdam",
	}, names(result))
	assert.Equal(t, []string{"All", "Asia", "Europe", "North America", "South America", "Africa", "Oceania"}, result.Continents)

	for _, d := range result.Destinations {
		assert.Equal(t, 50, d.TrendingScore)
		assert.True(t, d.LastUpdated.Equal(fixedNow))
		assert.Len(t, d.Highlights, 4)
	}
}

func TestCatalog_ListContinentFilter(t *testing.T) {
	catalog := newTestCatalog(constRandom(0.5))

	tests := []struct {
		continent string
		want      []string
	}{
		{"europe", []string{"Paris", "Rome", "Barcelona", "London", "Amsterdam"}},
		{"ASIA", []string{"Tokyo", "Bali"}},
		{"North America", []string{"New York City"}},
		{"Oceania", []string{}},
		{"all", []string{"Tokyo", "Paris", "Bali", "Rome", "New York City", "Barcelona", "London", "Amsterdam"}},
		{"All", []string{"Tokyo", "Paris", "Bali", "Rome", "New York City", "Barcelona", "London", "Amsterdam"}},
	}

	for _, tt := range tests {
		t.Run(tt.continent, func(t *testing.T) {
			result, err := catalog.List(destination.Query{Continent: tt.continent})
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(result))
			assert.Equal(t, len(tt.want), result.Total)
		})
	}
}

func TestCatalog_ListLimit(t *testing.T) {
	catalog := newTestCatalog(constRandom(0.5))

	result, err := catalog.List(destination.Query{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tokyo", "Paris", "Bali"}, names(result))
	assert.Equal(t, 3, result.Total)

	result, err = catalog.List(destination.Query{Continent: "europe", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Total)

	for _, limit := range []int{-1, 51, 1000} {
		_, err := catalog.List(destination.Query{Limit: limit})
		assert.ErrorIs(t, err, destination.ErrInvalidLimit, "limit %d", limit)
	}
}

func TestCatalog_TrendingScoreRange(t *testing.T) {
	catalog := newTestCatalog(rand.New(rand.NewPCG(7, 11)))

	for i := 0; i < 20; i++ {
		result, err := catalog.List(destination.Query{})
		require.NoError(t, err)
		for _, d := range result.Destinations {
			assert.GreaterOrEqual(t, d.TrendingScore, 50)
			assert.LessOrEqual(t, d.TrendingScore, 149)
		}
	}

	top, err := newTestCatalog(constRandom(0.999999)).List(destination.Query{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 149, top.Destinations[0].TrendingScore)
}

func TestWeatherFor(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		temp      int
	}{
		{"Bali", "Sunny", 25},
		{"Tokyo", "Partly Cloudy", 22},
		{"London", "Cloudy", 18},
		{"Lisbon", "Cloudy", 18},
		{"Reykjavik", "Partly Cloudy", 22},
		{"Kyiv", "Sunny", 25},
		{"Dubrovnik!", "Cloudy", 18},
		{"Nice", "Sunny", 25},
		{"Berlin", "Cloudy", 18},
		{"Oslo Norway", "Rainy", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := destination.WeatherFor(tt.name)
			assert.Equal(t, tt.condition, w.Condition)
			assert.Equal(t, tt.temp, w.Temp)
			assert.NotEmpty(t, w.Icon)
			assert.Equal(t, w, destination.WeatherFor(tt.name), "same name, same weather")
		})
	}
}

func TestCatalog_ListDoesNotMutateCatalog(t *testing.T) {
	catalog := newTestCatalog(constRandom(0.5))

	europe, err := catalog.List(destination.Query{Continent: "europe"})
	require.NoError(t, err)
	europe.Destinations[0].Highlights = nil

	all, err := catalog.List(destination.Query{})
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", all.Destinations[0].Name)
	assert.Equal(t, "Paris", all.Destinations[1].Name)
	assert.Len(t, all.Destinations[1].Highlights, 4)
}
