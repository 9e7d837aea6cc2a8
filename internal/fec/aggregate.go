package fec

import (
	"math"
	"slices"
	"strings"
	"time"

	"fecreport/internal/models"
)

// DefaultLoanStates is the fixed allow-set for the loan strip chart.
var DefaultLoanStates = map[string]bool{
	"CA": true,
	"TX": true,
	"FL": true,
	"NY": true,
	"IL": true,
}

// DefaultLoanYear filters loan rows by literal substring match on the
// coverage end date, not by parsed year.
const DefaultLoanYear = "2020"

// CountBuckets are the six ordered ranges used to discretize state counts
// for the choropleth sections. Together they partition [0, inf) with no gaps
// or overlaps.
var CountBuckets = []models.CountBucket{
	{Label: "<400", Min: 0, Max: 400},
	{Label: "400–800", Min: 400, Max: 800},
	{Label: "800–1200", Min: 800, Max: 1200},
	{Label: "1200–1600", Min: 1200, Max: 1600},
	{Label: "1600–2000", Min: 1600, Max: 2001},
	{Label: ">2000", Min: 2001, Max: -1},
}

// TopParties counts distinct candidate names per party and returns the k
// largest parties. A candidate appearing on several rows counts once, under
// the party of the first row; ties between parties break by the order the
// party label was first seen in the input.
func TopParties(records []models.CandidateRecord, k int) []models.PartyCount {
	if k <= 0 {
		return []models.PartyCount{}
	}

	seen := make(map[string]bool, len(records))
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for _, r := range records {
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true

		if _, ok := firstSeen[r.PartyAffiliation]; !ok {
			firstSeen[r.PartyAffiliation] = len(firstSeen)
		}
		counts[r.PartyAffiliation]++
	}

	result := make([]models.PartyCount, 0, len(counts))
	for party, count := range counts {
		result = append(result, models.PartyCount{Party: party, Count: count})
	}

	slices.SortFunc(result, func(a, b models.PartyCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return firstSeen[a.Party] - firstSeen[b.Party]
	})

	if len(result) > k {
		result = result[:k]
	}
	return result
}

// ContributionDensity applies the inverse hyperbolic sine to every parseable
// individual-contribution value, zero and negative included. The sample is
// returned unfiltered; density estimation happens at encoding time.
func ContributionDensity(records []models.CandidateRecord) []float64 {
	result := make([]float64, 0, len(records))
	for _, r := range records {
		if r.IndividualContribution == nil {
			continue
		}
		result = append(result, math.Asinh(r.IndividualContribution.InexactFloat64()))
	}
	return result
}

// LoanByState selects rows whose office state is in the allow-set, whose
// total loan is positive, and whose coverage end string contains the literal
// year, and emits the natural log of each loan.
func LoanByState(records []models.CandidateRecord, states map[string]bool, year string) []models.LoanPoint {
	result := make([]models.LoanPoint, 0)
	for _, r := range records {
		if !states[r.OfficeState] {
			continue
		}
		if r.TotalLoan == nil || !r.TotalLoan.IsPositive() {
			continue
		}
		if !strings.Contains(r.CoverageEndDate, year) {
			continue
		}
		result = append(result, models.LoanPoint{
			State:   r.OfficeState,
			LogLoan: math.Log(r.TotalLoan.InexactFloat64()),
		})
	}
	return result
}

// EndYearCounts counts records by the calendar year of the coverage end
// date. Rows with unparseable dates drop out; years that only occur once are
// discarded. The result is ordered by year.
func EndYearCounts(records []models.CandidateRecord) []models.YearCount {
	counts := make(map[int]int)
	for _, r := range records {
		year, ok := parseEndYear(r.CoverageEndDate)
		if !ok {
			continue
		}
		counts[year]++
	}

	result := make([]models.YearCount, 0, len(counts))
	for year, count := range counts {
		if count <= 1 {
			continue
		}
		result = append(result, models.YearCount{Year: year, Count: float64(count)})
	}

	slices.SortFunc(result, func(a, b models.YearCount) int {
		return a.Year - b.Year
	})
	return result
}

// OfficeStateCounts counts records per office state and tags each count with
// its display bucket. The historical candidate-state filter is applied as
// written in the published report: keep when CandState != "VI" or
// CandState != "PR". One clause is always true, so the filter excludes
// nothing; it is kept verbatim rather than silently rewritten to drop the
// VI and PR rows.
func OfficeStateCounts(records []models.CandidateRecord) []models.StateCount {
	counts := make(map[string]int)
	for _, r := range records {
		if !(r.CandState != "VI" || r.CandState != "PR") {
			continue
		}
		counts[r.OfficeState]++
	}

	result := make([]models.StateCount, 0, len(counts))
	for state, count := range counts {
		result = append(result, models.StateCount{
			State:  state,
			Count:  count,
			Bucket: BucketFor(count),
		})
	}

	slices.SortFunc(result, func(a, b models.StateCount) int {
		return strings.Compare(a.State, b.State)
	})
	return result
}

// LogEndYearCounts reuses the faithful year counts with each count replaced
// by its natural logarithm. Only the value transform differs; the retained
// years are identical.
func LogEndYearCounts(yearCounts []models.YearCount) []models.YearCount {
	result := make([]models.YearCount, len(yearCounts))
	for i, yc := range yearCounts {
		result[i] = models.YearCount{Year: yc.Year, Count: math.Log(yc.Count)}
	}
	return result
}

// DarkOfficeStateCounts reuses the faithful state counts unchanged. The dark
// choropleth differs only in the encoder's color scale.
func DarkOfficeStateCounts(stateCounts []models.StateCount) []models.StateCount {
	return stateCounts
}

// BucketFor places a state count into its display bucket.
func BucketFor(count int) models.CountBucket {
	c := float64(count)
	for _, b := range CountBuckets {
		if c >= b.Min && (b.Max < 0 || c < b.Max) {
			return b
		}
	}
	return CountBuckets[len(CountBuckets)-1]
}

// parseEndYear reads an M/D/YYYY date leniently (one- or two-digit month and
// day) and reports the calendar year.
func parseEndYear(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	t, err := time.Parse("1/2/2006", s)
	if err != nil {
		return 0, false
	}
	return t.Year(), true
}
