package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"

	"fecreport/internal/charts"
	"fecreport/internal/config"
	apperrors "fecreport/internal/errors"
	"fecreport/internal/fec"
	"fecreport/internal/models"
	"fecreport/internal/observability"
)

const topPartyCount = 5

// Section is one report unit: a chart spec plus a terminal summary table,
// built from the shared record set. build runs isolated; a panic or error in
// one section never reaches the others.
type Section struct {
	ID    string
	Title string
	build func(records []models.CandidateRecord, base baseAggregates) (charts.Spec, summary)
}

type summary struct {
	header []string
	rows   [][]string
}

// baseAggregates holds the two faithful aggregates the misleading variants
// reuse, computed once per run.
type baseAggregates struct {
	years  []models.YearCount
	states []models.StateCount
}

type sectionResult struct {
	spec     charts.Spec
	summary  summary
	filename string
	err      error
}

type Reporter struct {
	logger *slog.Logger
	cfg    *config.Config
	out    io.Writer
}

func NewReporter(logger *slog.Logger, cfg *config.Config) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		logger: logger,
		cfg:    cfg,
		out:    os.Stdout,
	}
}

// SetOutput redirects the terminal emission, used by tests.
func (r *Reporter) SetOutput(w io.Writer) {
	r.out = w
}

// Sections returns the fixed report order.
func Sections() []Section {
	return []Section{
		{
			ID:    "top-parties",
			Title: "Top Parties by Distinct Candidates",
			build: func(records []models.CandidateRecord, _ baseAggregates) (charts.Spec, summary) {
				parties := fec.TopParties(records, topPartyCount)
				rows := make([][]string, 0, len(parties))
				for _, p := range parties {
					rows = append(rows, []string{p.Party, strconv.Itoa(p.Count)})
				}
				return charts.EncodeTopParties(parties), summary{
					header: []string{"Party", "Distinct Candidates"},
					rows:   rows,
				}
			},
		},
		{
			ID:    "contribution-density",
			Title: "Individual Contributions (asinh scale)",
			build: func(records []models.CandidateRecord, _ baseAggregates) (charts.Spec, summary) {
				sample := fec.ContributionDensity(records)
				return charts.EncodeContributionDensity(sample), sampleSummary(sample)
			},
		},
		{
			ID:    "loan-by-state",
			Title: "Candidate Loans in Five Large States, 2020",
			build: func(records []models.CandidateRecord, _ baseAggregates) (charts.Spec, summary) {
				points := fec.LoanByState(records, fec.DefaultLoanStates, fec.DefaultLoanYear)
				return charts.EncodeLoanByState(points), loanSummary(points)
			},
		},
		{
			ID:    "end-year-counts",
			Title: "Filings by Coverage End Year",
			build: func(_ []models.CandidateRecord, base baseAggregates) (charts.Spec, summary) {
				return charts.EncodeEndYearCounts(base.years), yearSummary(base.years, false)
			},
		},
		{
			ID:    "office-state-counts",
			Title: "Filings per Office State",
			build: func(_ []models.CandidateRecord, base baseAggregates) (charts.Spec, summary) {
				rows := make([][]string, 0, len(base.states))
				for _, s := range base.states {
					rows = append(rows, []string{s.State, strconv.Itoa(s.Count), s.Bucket.Label})
				}
				return charts.EncodeOfficeStateCounts(base.states), summary{
					header: []string{"State", "Filings", "Bucket"},
					rows:   rows,
				}
			},
		},
		{
			ID:    "log-end-year-counts",
			Title: "Filings by Coverage End Year (log counts)",
			build: func(_ []models.CandidateRecord, base baseAggregates) (charts.Spec, summary) {
				logYears := fec.LogEndYearCounts(base.years)
				return charts.EncodeLogEndYearCounts(logYears), yearSummary(logYears, true)
			},
		},
		{
			ID:    "dark-office-state-counts",
			Title: "Filings per Office State (dark scale)",
			build: func(_ []models.CandidateRecord, base baseAggregates) (charts.Spec, summary) {
				states := fec.DarkOfficeStateCounts(base.states)
				return charts.EncodeDarkOfficeStateCounts(states), bucketSummary(states)
			},
		},
	}
}

// Generate runs the full report: the seven sections fan out over a bounded
// errgroup against the shared read-only record set, join, and then emit in
// document order. Only output-directory problems are fatal; a failed section
// is reported in place of its chart.
func (r *Reporter) Generate(ctx context.Context, records []models.CandidateRecord) error {
	if err := os.MkdirAll(r.cfg.Output.Dir, 0o755); err != nil {
		return apperrors.IOWrap(err, fmt.Sprintf("cannot create output directory %q", r.cfg.Output.Dir))
	}

	base := baseAggregates{
		years:  fec.EndYearCounts(records),
		states: fec.OfficeStateCounts(records),
	}

	sections := Sections()
	results := make([]sectionResult, len(sections))

	var wg errgroup.Group
	wg.SetLimit(r.cfg.Run.Workers)

	for i, section := range sections {
		i, section := i, section
		wg.Go(func() error {
			select {
			case <-ctx.Done():
				results[i] = sectionResult{err: ctx.Err()}
				return nil
			default:
			}
			results[i] = r.runSection(ctx, i+1, section, records, base)
			return nil
		})
	}

	if err := wg.Wait(); err != nil {
		return err
	}

	r.emit(sections, results)
	return nil
}

// runSection builds, encodes, renders and writes one section. A panic in an
// aggregate is contained here so the remaining sections still render.
func (r *Reporter) runSection(ctx context.Context, position int, section Section, records []models.CandidateRecord, base baseAggregates) (result sectionResult) {
	logger := r.logger.With("section", section.ID)
	ctx = observability.WithSectionID(ctx, section.ID)
	logger.DebugContext(ctx, "section starting", "position", position)

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("section aggregation panicked", "panic", rec)
			result = sectionResult{err: apperrors.Aggregate(fmt.Sprintf("section %s panicked: %v", section.ID, rec))}
		}
	}()

	spec, sum := section.build(records, base)

	pngBytes, err := charts.Render(spec, r.cfg.Output.ChartWidth, r.cfg.Output.ChartHeight)
	if err != nil {
		logger.Error("section render failed", "error", err)
		return sectionResult{spec: spec, summary: sum, err: err}
	}

	filename := filepath.Join(r.cfg.Output.Dir, charts.Filename(position, spec.ID))
	if err := os.WriteFile(filename, pngBytes, 0o644); err != nil {
		logger.Error("section write failed", "file", filename, "error", err)
		return sectionResult{spec: spec, summary: sum, err: apperrors.IOWrap(err, "write chart image")}
	}

	logger.Debug("section rendered", "file", filename, "bytes", len(pngBytes))
	return sectionResult{spec: spec, summary: sum, filename: filename}
}

// emit prints the report to the terminal in document order: heading, fixed
// caption, then the section's aggregate as a table.
func (r *Reporter) emit(sections []Section, results []sectionResult) {
	heading := color.New(color.FgCyan, color.Bold)
	failure := color.New(color.FgRed)

	for i, section := range sections {
		res := results[i]

		fmt.Fprintln(r.out)
		heading.Fprintf(r.out, "%d. %s\n", i+1, section.Title)

		if res.err != nil {
			failure.Fprintf(r.out, "section failed: %v\n", res.err)
			continue
		}

		fmt.Fprintln(r.out, Captions[section.ID])
		fmt.Fprintf(r.out, "chart: %s\n", res.filename)

		if len(res.summary.rows) == 0 {
			fmt.Fprintln(r.out, "(no qualifying rows)")
			continue
		}

		table := tablewriter.NewWriter(r.out)
		table.SetHeader(res.summary.header)
		for _, row := range res.summary.rows {
			table.Append(row)
		}
		table.Render()
	}
}

func sampleSummary(sample []float64) summary {
	if len(sample) == 0 {
		return summary{header: []string{"Observations", "Min", "Mean", "Max"}}
	}

	lo, hi, mean := sample[0], sample[0], 0.0
	for _, v := range sample {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		mean += v
	}
	mean /= float64(len(sample))

	return summary{
		header: []string{"Observations", "Min", "Mean", "Max"},
		rows: [][]string{{
			strconv.Itoa(len(sample)),
			formatFloat(lo),
			formatFloat(mean),
			formatFloat(hi),
		}},
	}
}

func loanSummary(points []models.LoanPoint) summary {
	type agg struct {
		count int
		total float64
	}
	byState := make(map[string]*agg)
	for _, p := range points {
		if byState[p.State] == nil {
			byState[p.State] = &agg{}
		}
		byState[p.State].count++
		byState[p.State].total += p.LogLoan
	}

	states := make([]string, 0, len(byState))
	for s := range byState {
		states = append(states, s)
	}
	sort.Strings(states)

	rows := make([][]string, 0, len(states))
	for _, s := range states {
		a := byState[s]
		rows = append(rows, []string{s, strconv.Itoa(a.count), formatFloat(a.total / float64(a.count))})
	}
	return summary{
		header: []string{"State", "Loans", "Mean ln(loan)"},
		rows:   rows,
	}
}

func yearSummary(years []models.YearCount, logScale bool) summary {
	label := "Filings"
	if logScale {
		label = "ln(Filings)"
	}
	rows := make([][]string, 0, len(years))
	for _, y := range years {
		value := strconv.Itoa(int(y.Count))
		if logScale {
			value = formatFloat(y.Count)
		}
		rows = append(rows, []string{strconv.Itoa(y.Year), value})
	}
	return summary{
		header: []string{"Year", label},
		rows:   rows,
	}
}

func bucketSummary(states []models.StateCount) summary {
	occupancy := make(map[string]int)
	for _, s := range states {
		occupancy[s.Bucket.Label]++
	}

	rows := make([][]string, 0, len(fec.CountBuckets))
	for _, b := range fec.CountBuckets {
		rows = append(rows, []string{b.Label, strconv.Itoa(occupancy[b.Label])})
	}
	return summary{
		header: []string{"Bucket", "States"},
		rows:   rows,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
