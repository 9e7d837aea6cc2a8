package fec

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	apperrors "fecreport/internal/errors"
	"fecreport/internal/models"
)

const (
	batchSize  = 5000
	maxWorkers = 8

	colName         = "Cand_Name"
	colParty        = "Cand_Party_Affiliation"
	colOfficeState  = "Cand_Office_St"
	colCandState    = "Cand_State"
	colContribution = "Individual_Contribution"
	colTotalLoan    = "Total_Loan"
	colCoverageEnd  = "Coverage_End_Date"
)

var requiredColumns = []string{
	colName,
	colParty,
	colOfficeState,
	colCandState,
	colContribution,
	colTotalLoan,
	colCoverageEnd,
}

// Loader reads the candidate summary file into memory. The record order of
// the source file is preserved.
type Loader struct {
	logger   *slog.Logger
	progress rate.Sometimes
	stats    models.LoadStats
	badAmts  atomic.Int64
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:   logger,
		progress: rate.Sometimes{Interval: 2 * time.Second},
	}
}

// Stats reports counters from the most recent Load call.
func (l *Loader) Stats() models.LoadStats {
	s := l.stats
	s.BadAmountFields = l.badAmts.Load()
	return s
}

// Load parses the whole file. A missing file, an empty file, a malformed
// delimited stream, or an absent required column is fatal; a row with an
// unparseable amount is kept with that amount nil.
func (l *Loader) Load(ctx context.Context, filename string) ([]models.CandidateRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.IOWrap(err, fmt.Sprintf("input file %q not found", filename))
		}
		return nil, apperrors.IOWrap(err, fmt.Sprintf("cannot open input file %q", filename))
	}
	defer file.Close()

	l.stats = models.LoadStats{}
	l.badAmts.Store(0)

	start := time.Now()
	records, err := l.stream(ctx, csv.NewReader(file))
	if err != nil {
		return nil, err
	}

	l.logger.Info("candidate summary loaded",
		"file", filename,
		"rows", len(records),
		"bad_amount_fields", l.badAmts.Load(),
		"short_rows_skipped", l.stats.ShortRowsSkipped,
		"duration", time.Since(start),
	)

	return records, nil
}

func (l *Loader) stream(ctx context.Context, r *csv.Reader) ([]models.CandidateRecord, error) {
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, apperrors.Parse("input file is empty")
	}
	if err != nil {
		return nil, apperrors.ParseWrap(err, "cannot read header row")
	}

	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var (
		records []models.CandidateRecord
		batch   [][]string
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		parsed, err := l.parseBatch(ctx, batch, cols)
		if err != nil {
			return err
		}
		records = append(records, parsed...)
		batch = batch[:0]
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.ParseWrap(err, "malformed delimited row")
		}

		l.stats.RowsRead++
		if len(row) <= cols.max {
			l.stats.ShortRowsSkipped++
			continue
		}

		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
			l.progress.Do(func() {
				l.logger.Debug("loading candidate summary", "rows_read", l.stats.RowsRead)
			})
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	l.stats.RowsKept = int64(len(records))
	return records, nil
}

// parseBatch types a batch of raw rows in parallel. Results land at the
// source index so the file order survives the fan-out.
func (l *Loader) parseBatch(ctx context.Context, batch [][]string, cols columns) ([]models.CandidateRecord, error) {
	out := make([]models.CandidateRecord, len(batch))

	var wg errgroup.Group
	wg.SetLimit(maxWorkers)

	for i, row := range batch {
		i, row := i, row
		wg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			out[i] = l.parseRow(row, cols)
			return nil
		})
	}

	if err := wg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Loader) parseRow(row []string, cols columns) models.CandidateRecord {
	return models.CandidateRecord{
		Name:                   strings.TrimSpace(row[cols.name]),
		PartyAffiliation:       strings.TrimSpace(row[cols.party]),
		OfficeState:            strings.TrimSpace(row[cols.officeState]),
		CandState:              strings.TrimSpace(row[cols.candState]),
		IndividualContribution: l.parseAmount(row[cols.contribution]),
		TotalLoan:              l.parseAmount(row[cols.totalLoan]),
		CoverageEndDate:        strings.TrimSpace(row[cols.coverageEnd]),
	}
}

// parseAmount accepts the money spellings the source file uses: plain
// numbers, "$1,234.56", and "(123.45)" for negatives. Anything else counts
// as a bad field and parses to nil.
func (l *Loader) parseAmount(raw string) *decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		l.badAmts.Add(1)
		return nil
	}
	if negative {
		d = d.Neg()
	}
	return &d
}

type columns struct {
	name         int
	party        int
	officeState  int
	candState    int
	contribution int
	totalLoan    int
	coverageEnd  int
	max          int
}

func columnIndex(header []string) (columns, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := byName[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return columns{}, apperrors.Parse(fmt.Sprintf("required columns missing: %s", strings.Join(missing, ", ")))
	}

	cols := columns{
		name:         byName[colName],
		party:        byName[colParty],
		officeState:  byName[colOfficeState],
		candState:    byName[colCandState],
		contribution: byName[colContribution],
		totalLoan:    byName[colTotalLoan],
		coverageEnd:  byName[colCoverageEnd],
	}
	for _, idx := range []int{cols.name, cols.party, cols.officeState, cols.candState, cols.contribution, cols.totalLoan, cols.coverageEnd} {
		if idx > cols.max {
			cols.max = idx
		}
	}
	return cols, nil
}
