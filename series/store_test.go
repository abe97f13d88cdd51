package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/tradechart/scale"
)

func TestStoreRejectsWrongShape(t *testing.T) {
	s := NewStore(Candlestick)
	err := s.Replace([]Point{BarPoint{Time: ts(1)}, LinePoint{Time: ts(2)}})
	assert.ErrorIs(t, err, ErrPointType)
	assert.Equal(t, 0, s.Len(), "nothing stored on failure")
	assert.ErrorIs(t, s.Upsert(HistogramPoint{Time: ts(1)}), ErrPointType)
	assert.ErrorIs(t, s.Upsert(nil), ErrPointType)

	assert.True(t, Area.Accepts(LinePoint{}))
	assert.False(t, Histogram.Accepts(LinePoint{}))
}

func TestStoreUpsert(t *testing.T) {
	s := NewStore(Line)
	require.NoError(t, s.Replace([]Point{
		LinePoint{Time: ts(10), Value: 1},
		LinePoint{Time: ts(20), Value: 2},
		LinePoint{Time: ts(30), Value: 3},
	}))

	require.NoError(t, s.Upsert(LinePoint{Time: ts(30), Value: 9}))
	require.NoError(t, s.Upsert(LinePoint{Time: ts(40), Value: 4}))
	require.NoError(t, s.Upsert(LinePoint{Time: ts(20), Value: 7}))
	require.NoError(t, s.Upsert(LinePoint{Time: ts(15), Value: 5}))
	require.NoError(t, s.Upsert(LinePoint{Time: ts(5), Value: 0}))

	assert.Equal(t, []Point{
		LinePoint{Time: ts(5), Value: 0},
		LinePoint{Time: ts(10), Value: 1},
		LinePoint{Time: ts(15), Value: 5},
		LinePoint{Time: ts(20), Value: 7},
		LinePoint{Time: ts(30), Value: 9},
		LinePoint{Time: ts(40), Value: 4},
	}, s.Points())
}

func TestStoreUpsertUnsorted(t *testing.T) {
	s := NewStore(Line)
	require.NoError(t, s.Replace([]Point{
		LinePoint{Time: ts(30), Value: 3},
		LinePoint{Time: ts(10), Value: 1},
		LinePoint{Time: ts(20), Value: 2},
	}))
	require.NoError(t, s.Upsert(LinePoint{Time: ts(30), Value: 8}))
	require.NoError(t, s.Upsert(LinePoint{Time: ts(5), Value: 0}))
	assert.Equal(t, []Point{
		LinePoint{Time: ts(30), Value: 8},
		LinePoint{Time: ts(10), Value: 1},
		LinePoint{Time: ts(20), Value: 2},
		LinePoint{Time: ts(5), Value: 0},
	}, s.Points())

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, LinePoint{Time: ts(30), Value: 8}, last)
}

func TestStoreReplaceCopies(t *testing.T) {
	s := NewStore(Line)
	points := []Point{LinePoint{Time: ts(1), Value: 1}}
	require.NoError(t, s.Replace(points))
	points[0] = LinePoint{Time: ts(2), Value: 2}
	assert.Equal(t, []Point{LinePoint{Time: ts(1), Value: 1}}, s.Points())
}

func TestStoreRanges(t *testing.T) {
	s := NewStore(Bar)
	_, ok := s.Domain()
	assert.False(t, ok)

	require.NoError(t, s.Replace([]Point{
		BarPoint{Time: ts(300), Open: 5, High: 9, Low: 4, Close: 6},
		BarPoint{Time: ts(100), Open: 2, High: 3, Low: 1, Close: 2},
		BarPoint{Time: ts(200), Open: 2, High: math.NaN(), Low: 1, Close: 2},
		BarPoint{Time: scale.Date("not-a-date"), Open: 100, High: 100, Low: 100, Close: 100},
	}))
	domain, ok := s.Domain()
	require.True(t, ok)
	assert.Equal(t, 100.0, domain.From.Seconds())
	assert.Equal(t, 300.0, domain.To.Seconds())

	prices, ok := s.ValueRange(domain)
	require.True(t, ok)
	assert.Equal(t, scale.PriceRange{Min: 1, Max: 9}, prices)

	prices, ok = s.ValueRange(scale.TimeRange{From: ts(50), To: ts(150)})
	require.True(t, ok)
	assert.Equal(t, scale.PriceRange{Min: 1, Max: 3}, prices)

	_, ok = s.ValueRange(scale.TimeRange{From: ts(400), To: ts(500)})
	assert.False(t, ok)

	assert.Equal(t, 100.0, s.MinInterval())
	near, ok := s.Nearest(ts(260))
	require.True(t, ok)
	assert.Equal(t, 300.0, near.When().Seconds())
}
