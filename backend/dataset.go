package backend

import (
	"slices"

	"git.sr.ht/~whereswaldon/tradechart/scale"
	"git.sr.ht/~whereswaldon/tradechart/series"
)

// Column is one plottable group of a CSV file: either the OHLC bars or a
// single numeric column.
type Column struct {
	Name string
	// Bars is set for the OHLC column, whose points are series.BarPoint.
	// Every other column holds series.LinePoint values.
	Bars   bool
	Points []series.Point
}

// Dataset holds the columns read from one source in file order.
type Dataset struct {
	Columns []Column
	// index maps column names to positions in Columns.
	index map[string]int
}

// NewDataset returns an empty dataset with the given columns.
func NewDataset(columns ...Column) Dataset {
	d := Dataset{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		d.index[c.Name] = len(d.Columns)
		d.Columns = append(d.Columns, c)
	}
	return d
}

// Initialized reports whether any column holds data.
func (d *Dataset) Initialized() bool {
	for _, c := range d.Columns {
		if len(c.Points) > 0 {
			return true
		}
	}
	return false
}

// Column returns the column with the given name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.Columns[i], true
}

// Names lists the column names in file order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Append adds one row. points is indexed like Columns; nil entries are
// skipped.
func (d *Dataset) Append(points []series.Point) {
	for i, p := range points {
		if p != nil && i < len(d.Columns) {
			d.Columns[i].Points = append(d.Columns[i].Points, p)
		}
	}
}

// Domain returns the earliest and latest time of any column.
func (d *Dataset) Domain() (scale.TimeRange, bool) {
	var out scale.TimeRange
	ok := false
	for _, c := range d.Columns {
		for _, p := range c.Points {
			t := p.When()
			if !t.Valid() {
				continue
			}
			if !ok || scale.Compare(t, out.From) < 0 {
				out.From = t
			}
			if !ok || scale.Compare(t, out.To) > 0 {
				out.To = t
			}
			ok = true
		}
	}
	return out, ok
}

// Clone returns a copy whose point slices can be extended without
// affecting d.
func (d Dataset) Clone() Dataset {
	out := Dataset{Columns: slices.Clone(d.Columns), index: d.index}
	for i := range out.Columns {
		out.Columns[i].Points = slices.Clone(out.Columns[i].Points)
	}
	return out
}

// Until returns the rows of d whose time is not after t.
func (d Dataset) Until(t scale.Time) Dataset {
	out := Dataset{Columns: slices.Clone(d.Columns), index: d.index}
	for i, c := range out.Columns {
		var kept []series.Point
		for _, p := range c.Points {
			if scale.Compare(p.When(), t) <= 0 {
				kept = append(kept, p)
			}
		}
		out.Columns[i].Points = kept
	}
	return out
}

// Times returns the distinct valid times of every column in ascending
// order.
func (d *Dataset) Times() []scale.Time {
	var times []scale.Time
	for _, c := range d.Columns {
		for _, p := range c.Points {
			if p.When().Valid() {
				times = append(times, p.When())
			}
		}
	}
	slices.SortFunc(times, scale.Compare)
	return slices.CompactFunc(times, scale.Equal)
}
