package canvas

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Call is one method invocation captured by a Recorder, together with the
// state that was current once the call completed.
type Call struct {
	Name  string
	Args  []any
	State State
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		switch a := a.(type) {
		case string:
			args[i] = fmt.Sprintf("%q", a)
		default:
			args[i] = fmt.Sprint(a)
		}
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// Recorder is a Context that draws nothing and remembers every call made
// on it. Paint operations validate the colors they would use, so color
// failures surface through Flush just as they would on a real backend.
type Recorder struct {
	Base
	Calls []Call
}

var _ Context = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{Base: NewBase()}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args, State: r.Base.State()})
}

// Reset forgets the recorded calls but keeps the drawing state.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Names lists the recorded method names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// Filter returns the calls with the given name.
func (r *Recorder) Filter(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// String renders the calls one per line.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, c := range r.Calls {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Recorder) check(style Style) {
	colors := []string{style.Color}
	if style.Gradient != nil {
		colors = colors[:0]
		for _, s := range style.Gradient.Stops {
			colors = append(colors, s.Color)
		}
	}
	for _, c := range colors {
		if _, err := ParseColor(c); err != nil {
			r.Fail(err)
		}
	}
}

func (r *Recorder) SetLineWidth(width float64) {
	r.Base.SetLineWidth(width)
	r.record("setLineWidth", width)
}

func (r *Recorder) SetStrokeStyle(style Style) {
	r.Base.SetStrokeStyle(style)
	r.record("setStrokeStyle", style.String())
}

func (r *Recorder) SetFillStyle(style Style) {
	r.Base.SetFillStyle(style)
	r.record("setFillStyle", style.String())
}

func (r *Recorder) SetFont(font string) {
	r.Base.SetFont(font)
	r.record("setFont", font)
}

func (r *Recorder) SetTextAlign(align TextAlign) {
	r.Base.SetTextAlign(align)
	r.record("setTextAlign", align.String())
}

func (r *Recorder) SetTextBaseline(baseline TextBaseline) {
	r.Base.SetTextBaseline(baseline)
	r.record("setTextBaseline", baseline.String())
}

func (r *Recorder) SetLineDash(segments []float64) {
	r.Base.SetLineDash(segments)
	r.record("setLineDash", r.Base.LineDash())
}

func (r *Recorder) BeginPath() {
	r.Base.BeginPath()
	r.record("beginPath")
}

func (r *Recorder) MoveTo(x, y float64) {
	r.Base.MoveTo(x, y)
	r.record("moveTo", x, y)
}

func (r *Recorder) LineTo(x, y float64) {
	r.Base.LineTo(x, y)
	r.record("lineTo", x, y)
}

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool) {
	r.Base.Arc(x, y, radius, startAngle, endAngle, counterClockwise)
	r.record("arc", x, y, radius, startAngle, endAngle, counterClockwise)
}

func (r *Recorder) ClosePath() {
	r.Base.ClosePath()
	r.record("closePath")
}

func (r *Recorder) Stroke() {
	r.check(r.Base.StrokeStyle())
	r.record("stroke")
}

func (r *Recorder) Fill() {
	r.check(r.Base.FillStyle())
	r.record("fill")
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.check(r.Base.FillStyle())
	r.record("fillRect", x, y, w, h)
}

func (r *Recorder) StrokeRect(x, y, w, h float64) {
	r.check(r.Base.StrokeStyle())
	r.record("strokeRect", x, y, w, h)
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record("clearRect", x, y, w, h)
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.check(r.Base.FillStyle())
	r.record("fillText", text, x, y)
}

// MeasureText estimates metrics from the font size, treating every rune as
// six tenths of an em wide.
func (r *Recorder) MeasureText(text string) TextMetrics {
	size := FontSize(r.Base.Font())
	r.record("measureText", text)
	return TextMetrics{
		Width:   float64(utf8.RuneCountInString(text)) * size * 0.6,
		Ascent:  size * 0.8,
		Descent: size * 0.2,
	}
}

func (r *Recorder) Save() {
	r.Base.Save()
	r.record("save")
}

func (r *Recorder) Restore() {
	r.Base.Restore()
	r.record("restore")
}

func (r *Recorder) Translate(x, y float64) {
	r.Base.Translate(x, y)
	r.record("translate", x, y)
}

func (r *Recorder) Scale(x, y float64) {
	r.Base.Scale(x, y)
	r.record("scale", x, y)
}

func (r *Recorder) Rotate(angle float64) {
	r.Base.Rotate(angle)
	r.record("rotate", angle)
}
