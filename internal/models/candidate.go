package models

import "github.com/shopspring/decimal"

// CandidateRecord is one row of the FEC candidate summary file. One candidate
// may appear on several rows (one per reporting period). Records are never
// mutated after load; amounts are nil when the source field was blank or not
// a number.
type CandidateRecord struct {
	Name                   string
	PartyAffiliation       string
	OfficeState            string
	CandState              string
	IndividualContribution *decimal.Decimal
	TotalLoan              *decimal.Decimal
	CoverageEndDate        string
}

type PartyCount struct {
	Party string `json:"party"`
	Count int    `json:"count"`
}

type YearCount struct {
	Year  int     `json:"year"`
	Count float64 `json:"count"`
}

// CountBucket is a labeled numeric range used to discretize a state count
// for choropleth coloring. Min is inclusive, Max exclusive; Max < 0 marks an
// open upper bound.
type CountBucket struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

type StateCount struct {
	State  string      `json:"state"`
	Count  int         `json:"count"`
	Bucket CountBucket `json:"bucket"`
}

// LoanPoint is one (state, ln(total loan)) observation for the loan strip
// chart.
type LoanPoint struct {
	State   string  `json:"state"`
	LogLoan float64 `json:"log_loan"`
}

// LoadStats counts what the loader saw. Rows with unparseable amounts stay
// in the record set (the amount is nil); only the counters record them.
type LoadStats struct {
	RowsRead         int64 `json:"rows_read"`
	RowsKept         int64 `json:"rows_kept"`
	BadAmountFields  int64 `json:"bad_amount_fields"`
	ShortRowsSkipped int64 `json:"short_rows_skipped"`
}
