package series

import (
	"math"
	"slices"
	"sort"
	"sync"

	"git.sr.ht/~whereswaldon/tradechart/scale"
)

// Store holds the points of one series in the order they were given.
// Points are not required to be sorted or unique in time; renderers sort
// their own copy.
type Store struct {
	lock   sync.RWMutex
	kind   Type
	points []Point
	sorted bool
}

func NewStore(kind Type) *Store {
	return &Store{kind: kind, sorted: true}
}

func (s *Store) Type() Type {
	return s.kind
}

func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.points)
}

// Points returns a copy of the stored points.
func (s *Store) Points() []Point {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return slices.Clone(s.points)
}

// Replace discards the stored points and keeps a copy of points. Nothing
// changes if any point has the wrong shape for the series.
func (s *Store) Replace(points []Point) error {
	for i, p := range points {
		if err := checkPoint(s.kind, i, p); err != nil {
			return err
		}
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.points = slices.Clone(points)
	s.sorted = slices.IsSortedFunc(s.points, func(a, b Point) int {
		return scale.Compare(a.When(), b.When())
	})
	return nil
}

// Upsert replaces the point with the same time as p, or adds p if there is
// none. When several stored points share that time the last one in time
// order is replaced.
func (s *Store) Upsert(p Point) error {
	if err := checkPoint(s.kind, 0, p); err != nil {
		return err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	n := len(s.points)
	if !s.sorted {
		for i := n - 1; i >= 0; i-- {
			if scale.Equal(s.points[i].When(), p.When()) {
				s.points[i] = p
				return nil
			}
		}
		s.points = append(s.points, p)
		return nil
	}
	if n == 0 || scale.Compare(p.When(), s.points[n-1].When()) > 0 {
		s.points = append(s.points, p)
		return nil
	}
	// First index strictly after p.
	i := sort.Search(n, func(i int) bool {
		return scale.Compare(s.points[i].When(), p.When()) > 0
	})
	if i > 0 && scale.Equal(s.points[i-1].When(), p.When()) {
		s.points[i-1] = p
		return nil
	}
	s.points = slices.Insert(s.points, i, p)
	return nil
}

// Last returns the latest point in time.
func (s *Store) Last() (Point, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	var last Point
	for _, p := range s.points {
		if !p.When().Valid() {
			continue
		}
		if last == nil || scale.Compare(p.When(), last.When()) >= 0 {
			last = p
		}
	}
	return last, last != nil
}

// Domain returns the range of valid times in the store.
func (s *Store) Domain() (scale.TimeRange, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	var r scale.TimeRange
	ok := false
	for _, p := range s.points {
		t := p.When()
		if !t.Valid() {
			continue
		}
		if !ok || scale.Compare(t, r.From) < 0 {
			r.From = t
		}
		if !ok || scale.Compare(t, r.To) > 0 {
			r.To = t
		}
		ok = true
	}
	return r, ok
}

// ValueRange returns the price extent of the points whose time lies within
// window. Non-finite prices are ignored.
func (s *Store) ValueRange(window scale.TimeRange) (scale.PriceRange, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	r := scale.PriceRange{Min: math.Inf(1), Max: math.Inf(-1)}
	ok := false
	for _, p := range s.points {
		if !window.Contains(p.When()) {
			continue
		}
		lo, hi := p.Extent()
		if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
			continue
		}
		r.Min, r.Max = min(r.Min, lo), max(r.Max, hi)
		ok = true
	}
	return r, ok
}

// MinInterval returns the smallest positive gap between consecutive
// distinct times, or 0 when there are fewer than two.
func (s *Store) MinInterval() float64 {
	s.lock.RLock()
	times := make([]float64, 0, len(s.points))
	for _, p := range s.points {
		if t := p.When(); t.Valid() {
			times = append(times, t.Seconds())
		}
	}
	s.lock.RUnlock()
	slices.Sort(times)
	gap := 0.0
	for i := 1; i < len(times); i++ {
		if d := times[i] - times[i-1]; d > 0 && (gap == 0 || d < gap) {
			gap = d
		}
	}
	return gap
}

// Nearest returns the point whose time is closest to t.
func (s *Store) Nearest(t scale.Time) (Point, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	var best Point
	bestDist := math.Inf(1)
	for _, p := range s.points {
		d := math.Abs(p.When().Seconds() - t.Seconds())
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, best != nil
}
