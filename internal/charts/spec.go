package charts

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"fecreport/internal/fec"
	"fecreport/internal/models"
)

type Kind string

const (
	KindBar        Kind = "bar"
	KindDensity    Kind = "density"
	KindStrip      Kind = "strip"
	KindRidge      Kind = "ridge"
	KindChoropleth Kind = "choropleth"
)

// Spec is a purely descriptive chart specification: geometry, axis bindings,
// colors and labels over an already-computed aggregate. It holds no
// aggregation logic of its own.
type Spec struct {
	ID     string
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	// Bars carries bar and choropleth geometry, Points strip geometry,
	// Curve density and ridge geometry. Only the field matching Kind is set.
	Bars   []BarValue
	Points []CategoryPoint
	Curve  []XY

	// BaseColor styles single-color geometries; Scale is the ordered bucket
	// color scale for choropleth variants.
	BaseColor drawing.Color
	Scale     []drawing.Color
}

type BarValue struct {
	Label string
	Value float64
	Color drawing.Color
}

type CategoryPoint struct {
	Category string
	Value    float64
}

type XY struct {
	X float64
	Y float64
}

var (
	colorParty   = drawing.Color{R: 70, G: 130, B: 180, A: 255}
	colorDensity = drawing.Color{R: 46, G: 139, B: 87, A: 255}
	colorLoan    = drawing.Color{R: 178, G: 34, B: 34, A: 255}
	colorRidge   = drawing.Color{R: 72, G: 61, B: 139, A: 255}

	// choroplethScale is an ordered light-to-dark ramp, one color per count
	// bucket.
	choroplethScale = []drawing.Color{
		{R: 239, G: 243, B: 255, A: 255},
		{R: 198, G: 219, B: 239, A: 255},
		{R: 158, G: 202, B: 225, A: 255},
		{R: 107, G: 174, B: 214, A: 255},
		{R: 49, G: 130, B: 189, A: 255},
		{R: 8, G: 81, B: 156, A: 255},
	}

	// darkScale is the deliberately misleading variant: a narrow-range,
	// low-contrast ramp over near-black values. The bucket assignment is
	// identical to the faithful scale; only the colors compress.
	darkScale = []drawing.Color{
		{R: 28, G: 28, B: 36, A: 255},
		{R: 32, G: 32, B: 42, A: 255},
		{R: 36, G: 36, B: 48, A: 255},
		{R: 40, G: 40, B: 54, A: 255},
		{R: 44, G: 44, B: 60, A: 255},
		{R: 48, G: 48, B: 66, A: 255},
	}
)

func EncodeTopParties(parties []models.PartyCount) Spec {
	bars := make([]BarValue, 0, len(parties))
	for _, p := range parties {
		bars = append(bars, BarValue{Label: p.Party, Value: float64(p.Count), Color: colorParty})
	}
	return Spec{
		ID:        "top-parties",
		Kind:      KindBar,
		Title:     "Top Parties by Distinct Candidates",
		XLabel:    "Party",
		YLabel:    "Candidates",
		Bars:      bars,
		BaseColor: colorParty,
	}
}

// EncodeContributionDensity estimates the density of the asinh-transformed
// contribution sample; the transform itself happens upstream.
func EncodeContributionDensity(sample []float64) Spec {
	curve := make([]XY, 0)
	for _, p := range KDE(sample, 200) {
		curve = append(curve, XY{X: p.X, Y: p.Y})
	}
	return Spec{
		ID:        "contribution-density",
		Kind:      KindDensity,
		Title:     "Individual Contributions (asinh scale)",
		XLabel:    "asinh(contribution)",
		YLabel:    "Density",
		Curve:     curve,
		BaseColor: colorDensity,
	}
}

func EncodeLoanByState(points []models.LoanPoint) Spec {
	pts := make([]CategoryPoint, 0, len(points))
	for _, p := range points {
		pts = append(pts, CategoryPoint{Category: p.State, Value: p.LogLoan})
	}
	return Spec{
		ID:        "loan-by-state",
		Kind:      KindStrip,
		Title:     "Candidate Loans in Five Large States, 2020",
		XLabel:    "Office state",
		YLabel:    "ln(total loan)",
		Points:    pts,
		BaseColor: colorLoan,
	}
}

func EncodeEndYearCounts(years []models.YearCount) Spec {
	return Spec{
		ID:        "end-year-counts",
		Kind:      KindRidge,
		Title:     "Filings by Coverage End Year",
		XLabel:    "Year",
		YLabel:    "Filings",
		Curve:     yearCurve(years),
		BaseColor: colorRidge,
	}
}

// EncodeLogEndYearCounts is the misleading counterpart of the end-year
// chart: identical retained years, counts already replaced by their natural
// log, flattening the differences between years.
func EncodeLogEndYearCounts(years []models.YearCount) Spec {
	return Spec{
		ID:        "log-end-year-counts",
		Kind:      KindRidge,
		Title:     "Filings by Coverage End Year (log counts)",
		XLabel:    "Year",
		YLabel:    "ln(filings)",
		Curve:     yearCurve(years),
		BaseColor: colorRidge,
	}
}

func EncodeOfficeStateCounts(states []models.StateCount) Spec {
	return Spec{
		ID:     "office-state-counts",
		Kind:   KindChoropleth,
		Title:  "Filings per Office State",
		XLabel: "Office state",
		YLabel: "Filings",
		Bars:   stateBars(states, choroplethScale),
		Scale:  choroplethScale,
	}
}

// EncodeDarkOfficeStateCounts reuses the faithful state buckets under the
// compressed dark scale.
func EncodeDarkOfficeStateCounts(states []models.StateCount) Spec {
	return Spec{
		ID:     "dark-office-state-counts",
		Kind:   KindChoropleth,
		Title:  "Filings per Office State (dark scale)",
		XLabel: "Office state",
		YLabel: "Filings",
		Bars:   stateBars(states, darkScale),
		Scale:  darkScale,
	}
}

func yearCurve(years []models.YearCount) []XY {
	curve := make([]XY, 0, len(years))
	for _, y := range years {
		curve = append(curve, XY{X: float64(y.Year), Y: y.Count})
	}
	return curve
}

func stateBars(states []models.StateCount, scale []drawing.Color) []BarValue {
	bars := make([]BarValue, 0, len(states))
	for _, s := range states {
		bars = append(bars, BarValue{
			Label: s.State,
			Value: float64(s.Count),
			Color: scaleColor(scale, s.Bucket),
		})
	}
	return bars
}

func scaleColor(scale []drawing.Color, bucket models.CountBucket) drawing.Color {
	for i, b := range fec.CountBuckets {
		if b.Label == bucket.Label && i < len(scale) {
			return scale[i]
		}
	}
	return scale[len(scale)-1]
}

// Filename is the on-disk name for a rendered section image.
func Filename(position int, id string) string {
	return fmt.Sprintf("%02d_%s.png", position, id)
}
