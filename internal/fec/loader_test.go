package fec

import (
	"context"
	"os"
	"testing"
)

const testHeader = "Link_Image,Cand_Id,Cand_Name,Cand_Office_St,Cand_Party_Affiliation,Total_Receipt,Individual_Contribution,Total_Loan,Cand_State,Coverage_End_Date"

func createTempCSV(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "test*.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}

func TestLoader_Load_ValidData(t *testing.T) {
	csv := testHeader + "\n" +
		`img,C001,"SMITH, JOHN",CA,DEM,100.00,50.25,0.00,CA,12/31/2020` + "\n" +
		`img,C002,"DOE, JANE",TX,REP,200.00,"$1,234.56",500.00,TX,1/1/2019`

	f := createTempCSV(t, csv)

	loader := NewLoader(nil)
	records, err := loader.Load(context.Background(), f)
	if err != nil {
		t.Fatalf("Load() with valid data should not error, got: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	if records[0].Name != "SMITH, JOHN" {
		t.Errorf("quoted name should survive parsing, got %q", records[0].Name)
	}
	if records[0].PartyAffiliation != "DEM" || records[0].OfficeState != "CA" {
		t.Errorf("unexpected first record: %+v", records[0])
	}

	if records[1].IndividualContribution == nil {
		t.Fatal("formatted money field should parse")
	}
	if got := records[1].IndividualContribution.InexactFloat64(); got != 1234.56 {
		t.Errorf("expected 1234.56, got %v", got)
	}
	if records[1].CoverageEndDate != "1/1/2019" {
		t.Errorf("coverage end date should stay a raw string, got %q", records[1].CoverageEndDate)
	}
}

func TestLoader_Load_PreservesOrder(t *testing.T) {
	csv := testHeader + "\n"
	names := []string{"A", "B", "C", "D", "E"}
	for _, n := range names {
		csv += "img,C0," + n + ",CA,DEM,0,0,0,CA,1/1/2020\n"
	}

	f := createTempCSV(t, csv)

	loader := NewLoader(nil)
	records, err := loader.Load(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}

	for i, n := range names {
		if records[i].Name != n {
			t.Fatalf("record %d: expected %q, got %q", i, n, records[i].Name)
		}
	}
}

func TestLoader_Load_FatalInputs(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "empty file",
			csv:  "",
		},
		{
			name: "missing required column",
			csv:  "Cand_Name,Cand_Party_Affiliation,Cand_Office_St,Cand_State,Individual_Contribution,Total_Loan\nX,DEM,CA,CA,0,0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTempCSV(t, tt.csv)

			loader := NewLoader(nil)
			if _, err := loader.Load(context.Background(), f); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	loader := NewLoader(nil)
	if _, err := loader.Load(context.Background(), "does-not-exist.csv"); err == nil {
		t.Error("Load() should fail on a missing file")
	}
}

func TestLoader_Load_BadAmountsAreNotFatal(t *testing.T) {
	csv := testHeader + "\n" +
		"img,C001,SMITH,CA,DEM,0,not-a-number,also-bad,CA,12/31/2020\n" +
		"img,C002,DOE,TX,REP,0,10.00,0,TX,12/31/2020"

	f := createTempCSV(t, csv)

	loader := NewLoader(nil)
	records, err := loader.Load(context.Background(), f)
	if err != nil {
		t.Fatalf("bad amounts should not be fatal, got: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected both rows kept, got %d", len(records))
	}
	if records[0].IndividualContribution != nil || records[0].TotalLoan != nil {
		t.Error("unparseable amounts should load as nil")
	}
	if records[1].IndividualContribution == nil {
		t.Error("valid amount on the other row should still parse")
	}

	if stats := loader.Stats(); stats.BadAmountFields != 2 {
		t.Errorf("expected 2 bad amount fields, got %d", stats.BadAmountFields)
	}
}

func TestLoader_Load_ShortRowsSkipped(t *testing.T) {
	csv := testHeader + "\n" +
		"img,C001,SMITH\n" +
		"img,C002,DOE,TX,REP,0,10.00,0,TX,12/31/2020"

	f := createTempCSV(t, csv)

	loader := NewLoader(nil)
	records, err := loader.Load(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if stats := loader.Stats(); stats.ShortRowsSkipped != 1 {
		t.Errorf("expected 1 short row skipped, got %d", stats.ShortRowsSkipped)
	}
}

func TestLoader_ParseAmount(t *testing.T) {
	loader := NewLoader(nil)

	tests := []struct {
		name string
		raw  string
		want float64
		nil_ bool
	}{
		{name: "plain", raw: "1234.56", want: 1234.56},
		{name: "dollar and commas", raw: "$1,234,567.89", want: 1234567.89},
		{name: "parenthesized negative", raw: "(250.00)", want: -250},
		{name: "zero", raw: "0", want: 0},
		{name: "blank", raw: "   ", nil_: true},
		{name: "garbage", raw: "N/A", nil_: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loader.parseAmount(tt.raw)
			if tt.nil_ {
				if got != nil {
					t.Errorf("parseAmount(%q) = %v, want nil", tt.raw, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("parseAmount(%q) = nil, want %v", tt.raw, tt.want)
			}
			if got.InexactFloat64() != tt.want {
				t.Errorf("parseAmount(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoader_Load_Cancelled(t *testing.T) {
	csv := testHeader + "\n" +
		"img,C001,SMITH,CA,DEM,0,0,0,CA,12/31/2020"

	f := createTempCSV(t, csv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader(nil)
	if _, err := loader.Load(ctx, f); err == nil {
		t.Error("Load() should respect a cancelled context")
	}
}
