package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type site struct {
	name string
	lat  *float64
	lon  *float64
}

func f(v float64) *float64 { return &v }

func locateSite(s site) (Point, bool) { return PointFrom(s.lat, s.lon) }

func TestDistance(t *testing.T) {
	t.Parallel()

	seoulCityHall := Point{Lat: 37.5665, Lon: 126.9780}
	gangnam := Point{Lat: 37.4979, Lon: 127.0276}

	t.Run("same point is zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, Distance(seoulCityHall, seoulCityHall))
	})

	t.Run("symmetric", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, Distance(seoulCityHall, gangnam), Distance(gangnam, seoulCityHall), 1e-9)
	})

	t.Run("known distance", func(t *testing.T) {
		t.Parallel()
		// roughly 8.8km between city hall and Gangnam station
		assert.InDelta(t, 8780, Distance(seoulCityHall, gangnam), 150)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		t.Parallel()
		d := Distance(Point{Lat: 0, Lon: 0}, Point{Lat: 1, Lon: 0})
		assert.InDelta(t, EarthRadiusMeters*math.Pi/180, d, 1e-6)
	})
}

func TestPointFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lat  *float64
		lon  *float64
		ok   bool
	}{
		{"both present", f(37.5), f(127.0), true},
		{"missing latitude", nil, f(127.0), false},
		{"missing longitude", f(37.5), nil, false},
		{"NaN", f(math.NaN()), f(127.0), false},
		{"infinite", f(37.5), f(math.Inf(1)), false},
		{"latitude out of range", f(91), f(127.0), false},
		{"longitude out of range", f(37.5), f(-181), false},
		{"zero is a valid position", f(0), f(0), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, ok := PointFrom(tc.lat, tc.lon)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestSelectNearest(t *testing.T) {
	t.Parallel()

	origin := Point{Lat: 37.5665, Lon: 126.9780}

	t.Run("returns k nearest in ascending order", func(t *testing.T) {
		t.Parallel()

		pool := []site{
			{name: "far", lat: f(37.70), lon: f(127.10)},
			{name: "near", lat: f(37.5670), lon: f(126.9785)},
			{name: "mid", lat: f(37.58), lon: f(126.99)},
			{name: "farther", lat: f(37.90), lon: f(127.30)},
			{name: "close", lat: f(37.57), lon: f(126.98)},
			{name: "farthest", lat: f(38.50), lon: f(128.00)},
			{name: "midfar", lat: f(37.62), lon: f(127.02)},
		}

		got := SelectNearest(origin, pool, locateSite, 5)
		require.Len(t, got, 5)

		names := make([]string, len(got))
		for i, r := range got {
			names[i] = r.Item.name
			if i > 0 {
				assert.LessOrEqual(t, got[i-1].Distance, r.Distance)
			}
		}
		assert.Equal(t, []string{"near", "close", "mid", "midfar", "far"}, names)
	})

	t.Run("excludes entries without usable coordinates", func(t *testing.T) {
		t.Parallel()

		pool := []site{
			{name: "no-lat", lon: f(126.98)},
			{name: "nan", lat: f(math.NaN()), lon: f(126.98)},
			{name: "ok", lat: f(37.57), lon: f(126.98)},
			{name: "no-lon", lat: f(37.57)},
		}

		got := SelectNearest(origin, pool, locateSite, 5)
		require.Len(t, got, 1)
		assert.Equal(t, "ok", got[0].Item.name)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		t.Parallel()

		pool := []site{
			{name: "first", lat: f(37.57), lon: f(126.98)},
			{name: "second", lat: f(37.57), lon: f(126.98)},
			{name: "third", lat: f(37.57), lon: f(126.98)},
		}

		got := SelectNearest(origin, pool, locateSite, 2)
		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0].Item.name)
		assert.Equal(t, "second", got[1].Item.name)
	})

	t.Run("fewer than k returns all", func(t *testing.T) {
		t.Parallel()

		pool := []site{{name: "only", lat: f(37.57), lon: f(126.98)}}
		assert.Len(t, SelectNearest(origin, pool, locateSite, 5), 1)
	})

	t.Run("empty pool yields empty result", func(t *testing.T) {
		t.Parallel()

		got := SelectNearest(origin, nil, locateSite, 5)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("non-positive k yields empty result", func(t *testing.T) {
		t.Parallel()

		pool := []site{{name: "only", lat: f(37.57), lon: f(126.98)}}
		assert.Empty(t, SelectNearest(origin, pool, locateSite, 0))
	})
}
