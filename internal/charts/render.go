package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"

	apperrors "fecreport/internal/errors"
)

// Render realizes a chart spec as a PNG. Specs with no bound data render as
// an empty image of the requested size rather than failing.
func Render(spec Spec, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, apperrors.Render(fmt.Sprintf("invalid chart size %dx%d", width, height))
	}

	switch spec.Kind {
	case KindBar, KindChoropleth:
		return renderBars(spec, width, height)
	case KindDensity, KindRidge:
		return renderCurve(spec, width, height)
	case KindStrip:
		return renderStrip(spec, width, height)
	default:
		return nil, apperrors.Render(fmt.Sprintf("unknown chart kind %q", spec.Kind))
	}
}

func renderBars(spec Spec, width, height int) ([]byte, error) {
	if len(spec.Bars) == 0 {
		return blankPNG(width, height)
	}

	bars := make([]chart.Value, 0, len(spec.Bars))
	for _, b := range spec.Bars {
		bars = append(bars, chart.Value{
			Value: b.Value,
			Label: b.Label,
			Style: chart.Style{
				FillColor:   b.Color,
				StrokeColor: b.Color,
				StrokeWidth: 0,
			},
		})
	}

	barWidth := width / (2 * len(bars))
	if barWidth < 4 {
		barWidth = 4
	}

	ch := chart.BarChart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 28}},
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name: spec.YLabel,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, apperrors.RenderWrap(err, fmt.Sprintf("render %s", spec.ID))
	}
	return buf.Bytes(), nil
}

func renderCurve(spec Spec, width, height int) ([]byte, error) {
	if len(spec.Curve) == 0 {
		return blankPNG(width, height)
	}

	xs := make([]float64, len(spec.Curve))
	ys := make([]float64, len(spec.Curve))
	for i, p := range spec.Curve {
		xs[i] = p.X
		ys[i] = p.Y
	}
	// go-chart needs a non-degenerate x range
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}

	fill := spec.BaseColor
	fill.A = 60

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 28}},
		XAxis:      chart.XAxis{Name: spec.XLabel},
		YAxis:      chart.YAxis{Name: spec.YLabel},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    spec.Title,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: spec.BaseColor,
					StrokeWidth: 2,
					FillColor:   fill,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, apperrors.RenderWrap(err, fmt.Sprintf("render %s", spec.ID))
	}
	return buf.Bytes(), nil
}

// renderStrip draws one jittered point column per category, the nearest
// go-chart realization of a violin/strip plot.
func renderStrip(spec Spec, width, height int) ([]byte, error) {
	if len(spec.Points) == 0 {
		return blankPNG(width, height)
	}

	order := make([]string, 0)
	position := make(map[string]int)
	for _, p := range spec.Points {
		if _, ok := position[p.Category]; !ok {
			position[p.Category] = len(order)
			order = append(order, p.Category)
		}
	}

	jitter := newJitter()
	xs := make([]float64, 0, len(spec.Points))
	ys := make([]float64, 0, len(spec.Points))
	for _, p := range spec.Points {
		xs = append(xs, float64(position[p.Category])+jitter.next())
		ys = append(ys, p.Value)
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}

	ticks := make([]chart.Tick, 0, len(order))
	for i, cat := range order {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: cat})
	}

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:  spec.XLabel,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(order)) - 0.5},
		},
		YAxis: chart.YAxis{Name: spec.YLabel},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    spec.Title,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    spec.BaseColor,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, apperrors.RenderWrap(err, fmt.Sprintf("render %s", spec.ID))
	}
	return buf.Bytes(), nil
}

// blankPNG stands in for a chart over an empty aggregate.
func blankPNG(width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, white)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, apperrors.RenderWrap(err, "encode blank chart")
	}
	return buf.Bytes(), nil
}

// jitter is a small deterministic spreader so strip columns render the same
// on every run.
type jitter struct {
	state uint64
}

func newJitter() *jitter {
	return &jitter{state: 0x9e3779b97f4a7c15}
}

func (j *jitter) next() float64 {
	j.state ^= j.state << 13
	j.state ^= j.state >> 7
	j.state ^= j.state << 17
	return (float64(j.state%1000)/1000.0 - 0.5) * 0.5
}
