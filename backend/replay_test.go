package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/tradechart/scale"
	"git.sr.ht/~whereswaldon/tradechart/series"
)

func sampleDataset() Dataset {
	ds := NewDataset(Column{Name: BarsColumn, Bars: true}, Column{Name: "volume"})
	for i, price := range []float64{10, 12, 11} {
		t := scale.Timestamp(float64(60 * (i + 1)))
		ds.Append([]series.Point{
			series.BarPoint{Time: t, Open: price - 1, High: price + 1, Low: price - 2, Close: price},
			series.LinePoint{Time: t, Value: float64(100 * (i + 1))},
		})
	}
	return ds
}

func TestReplay(t *testing.T) {
	var states []ReplayState
	for s := range Replay(context.Background(), sampleDataset(), time.Millisecond) {
		states = append(states, s)
	}
	require.Len(t, states, 3)
	for i, s := range states {
		assert.Equal(t, i+1, s.Step)
		assert.Equal(t, 3, s.Total)
		assert.Equal(t, i == 2, s.Done)
		bars, _ := s.Data.Column(BarsColumn)
		assert.Len(t, bars.Points, i+1)
	}
}

func TestReplayEmpty(t *testing.T) {
	var states []ReplayState
	for s := range Replay(context.Background(), NewDataset(Column{Name: "close"}), time.Second) {
		states = append(states, s)
	}
	require.Len(t, states, 1)
	assert.True(t, states[0].Done)
}

func TestReplayStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := Replay(ctx, sampleDataset(), time.Hour)
	first := <-out
	assert.Equal(t, 1, first.Step)
	cancel()
	select {
	case _, ok := <-out:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("replay kept running after cancel")
	}
}
