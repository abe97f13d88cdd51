package canvas

import "math"

type Point struct {
	X, Y float64
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Subpath is a connected run of points.
type Subpath struct {
	Points []Point
	Closed bool
}

// Path is a sequence of subpaths in device space.
type Path struct {
	Subpaths []Subpath
}

func (p *Path) Reset() {
	p.Subpaths = p.Subpaths[:0]
}

// Empty reports whether the path contains no points.
func (p *Path) Empty() bool {
	return len(p.Subpaths) == 0
}

func (p *Path) MoveTo(pt Point) {
	p.Subpaths = append(p.Subpaths, Subpath{Points: []Point{pt}})
}

// LineTo extends the current subpath. Without one it behaves like MoveTo.
func (p *Path) LineTo(pt Point) {
	if len(p.Subpaths) == 0 {
		p.MoveTo(pt)
		return
	}
	last := &p.Subpaths[len(p.Subpaths)-1]
	last.Points = append(last.Points, pt)
}

// Close marks the current subpath closed and starts a new one at its first
// point.
func (p *Path) Close() {
	if len(p.Subpaths) == 0 {
		return
	}
	last := &p.Subpaths[len(p.Subpaths)-1]
	if last.Closed {
		return
	}
	last.Closed = true
	p.Subpaths = append(p.Subpaths, Subpath{Points: []Point{last.Points[0]}})
}

// Clone returns a deep copy of p.
func (p *Path) Clone() Path {
	out := Path{Subpaths: make([]Subpath, len(p.Subpaths))}
	for i, s := range p.Subpaths {
		out.Subpaths[i] = Subpath{
			Points: append([]Point(nil), s.Points...),
			Closed: s.Closed,
		}
	}
	return out
}

// Each calls f for every subpath that has at least two points. Points that
// are not finite split a subpath in two, since no backend can place them.
func (p *Path) Each(f func(points []Point, closed bool)) {
	for _, s := range p.Subpaths {
		start := 0
		for i, pt := range s.Points {
			if pt.Finite() {
				continue
			}
			if i-start > 1 {
				f(s.Points[start:i], false)
			}
			start = i + 1
		}
		rest := s.Points[start:]
		if len(rest) > 1 {
			f(rest, s.Closed && start == 0)
		}
	}
}
