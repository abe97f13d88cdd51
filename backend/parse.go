package backend

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/tradechart/scale"
	"git.sr.ht/~whereswaldon/tradechart/series"
)

// ErrNoColumns is returned for CSV headers without any plottable column.
var ErrNoColumns = errors.New("no plottable columns")

// BarsColumn is the name given to the column built from the open, high,
// low and close fields of a file.
const BarsColumn = "ohlc"

// layout locates the fields of a market data file.
type layout struct {
	time int
	// ohlc holds the field indices of open, high, low and close, or is
	// nil if the file has no bars.
	ohlc   []int
	values []valueField
}

type valueField struct {
	name  string
	index int
}

func isTimeHeading(h string) bool {
	switch h {
	case "time", "date", "timestamp", "datetime":
		return true
	}
	return false
}

// detectLayout reads a header line. The time field is the first one named
// like a time, or the first field. If open, high, low and close are all
// present they form the bars column; every other field becomes a value
// column named after its heading.
func detectLayout(header []string) (layout, error) {
	l := layout{time: -1}
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.ToLower(strings.TrimSpace(h))
		if l.time < 0 && isTimeHeading(names[i]) {
			l.time = i
		}
	}
	if l.time < 0 {
		l.time = 0
	}
	ohlc := []int{-1, -1, -1, -1}
	for i, n := range names {
		switch n {
		case "open", "o":
			ohlc[0] = i
		case "high", "h":
			ohlc[1] = i
		case "low", "l":
			ohlc[2] = i
		case "close", "c":
			ohlc[3] = i
		}
	}
	if ohlc[0] >= 0 && ohlc[1] >= 0 && ohlc[2] >= 0 && ohlc[3] >= 0 {
		l.ohlc = ohlc
	}
	for i, h := range header {
		if i == l.time || (l.ohlc != nil && isOHLC(l.ohlc, i)) {
			continue
		}
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column %d", i+1)
		}
		l.values = append(l.values, valueField{name: name, index: i})
	}
	if l.ohlc == nil && len(l.values) == 0 {
		return layout{}, fmt.Errorf("header %q: %w", header, ErrNoColumns)
	}
	return l, nil
}

func isOHLC(ohlc []int, i int) bool {
	for _, f := range ohlc {
		if f == i {
			return true
		}
	}
	return false
}

// dataset returns an empty dataset with the columns of l.
func (l layout) dataset() Dataset {
	var columns []Column
	if l.ohlc != nil {
		columns = append(columns, Column{Name: BarsColumn, Bars: true})
	}
	for _, v := range l.values {
		columns = append(columns, Column{Name: v.name})
	}
	return NewDataset(columns...)
}

func field(rec []string, i int) (float64, bool) {
	if i >= len(rec) {
		return 0, false
	}
	s := strings.TrimSpace(rec[i])
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// parse converts one record into a row of points indexed like the columns
// of l.dataset(). Empty or malformed cells leave a nil point.
func (l layout) parse(rec []string) ([]series.Point, error) {
	if l.time >= len(rec) {
		return nil, fmt.Errorf("record has %d fields, time is field %d", len(rec), l.time+1)
	}
	t := scale.ParseTime(rec[l.time])
	if !t.Valid() {
		return nil, fmt.Errorf("unparsable time %q", rec[l.time])
	}
	row := make([]series.Point, 0, len(l.values)+1)
	if l.ohlc != nil {
		var v [4]float64
		ok := true
		for i, f := range l.ohlc {
			v[i], ok = field(rec, f)
			if !ok {
				break
			}
		}
		if ok {
			row = append(row, series.BarPoint{Time: t, Open: v[0], High: v[1], Low: v[2], Close: v[3]})
		} else {
			row = append(row, nil)
		}
	}
	for _, vf := range l.values {
		if v, ok := field(rec, vf.index); ok {
			row = append(row, series.LinePoint{Time: t, Value: v})
		} else {
			row = append(row, nil)
		}
	}
	return row, nil
}
