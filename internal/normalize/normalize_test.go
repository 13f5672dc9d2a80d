package normalize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRoundHalfEven(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{7.25, 1, 7.2},
		{0.375, 2, 0.38},
		{7.0, 1, 7.0},
		{6.666666, 1, 6.7},
		{0.125, 2, 0.12},
		{0, 2, 0},
	}
	for _, tt := range tests {
		if got := RoundHalfEven(tt.v, tt.places); got != tt.want {
			t.Errorf("RoundHalfEven(%v, %d) = %v, want %v", tt.v, tt.places, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2023, 3, 7, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2023-03-07", "03/07/2023", "3/7/2023", "2023-03-07T10:11:12Z", "2023-03-07 23:59:00", "March 7, 2023"} {
		got := ParseDate(s)
		if got == nil {
			t.Errorf("ParseDate(%q) = nil", s)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", s, got, want)
		}
	}
	for _, s := range []string{"", "   ", "not a date"} {
		if got := ParseDate(s); got != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", s, got)
		}
	}
}

func TestDateKey(t *testing.T) {
	d := time.Date(2024, 12, 31, 18, 0, 0, 0, time.UTC)
	if got := DateKey(d); got != 20241231 {
		t.Errorf("DateKey = %d, want 20241231", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 12, 30, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 2, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 3 {
		t.Errorf("DaysBetween = %d, want 3", got)
	}
	if got := DaysBetween(b, a); got != -3 {
		t.Errorf("DaysBetween reversed = %d, want -3", got)
	}
}

func TestFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.csv")
	os.WriteFile(path, []byte("abc"), 0644)
	got, err := FileHash(path)
	if err != nil {
		t.Fatalf("FileHash: %v", err)
	}
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("FileHash = %s, want %s", got, want)
	}
	if _, err := FileHash(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRecordsHash_OrderSensitive(t *testing.T) {
	a := RecordsHash([][]string{{"1", "P100000"}, {"2", "P100001"}})
	b := RecordsHash([][]string{{"2", "P100001"}, {"1", "P100000"}})
	if a == b {
		t.Error("hash should depend on record order")
	}
	if a != RecordsHash([][]string{{" 1", "P100000 "}, {"2", "P100001"}}) {
		t.Error("hash should ignore surrounding whitespace")
	}
}

func sampleRecord() []string {
	return []string{
		"1", "P100000", "42", "Female", "White", "Medium", "Private Insurance",
		"2022-01-01", "Suburban Clinic", "Clinic", "Hypertension", "I10",
		"Beta Blockers", "Improved", "1", "2345.67", "0", "8", "0",
	}
}

func TestToVisit(t *testing.T) {
	v, err := ToVisit(sampleRecord(), 2)
	if err != nil {
		t.Fatalf("ToVisit: %v", err)
	}
	if v.VisitID != 1 || v.PatientID != "P100000" || v.Age != 42 {
		t.Errorf("identity fields: %+v", v)
	}
	if !v.VisitDate.Equal(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("VisitDate = %v", v.VisitDate)
	}
	if v.TotalCost != 2345.67 || v.SatisfactionScore != 8 || v.LengthOfStayDays != 1 {
		t.Errorf("measures: %+v", v)
	}
	if strings.Join(v.Record(), ",") != strings.Join(sampleRecord(), ",") {
		t.Errorf("Record() = %v", v.Record())
	}
}

func TestToVisit_BooleanFlags(t *testing.T) {
	rec := sampleRecord()
	rec[16] = "True"
	rec[18] = "False"
	v, err := ToVisit(rec, 2)
	if err != nil {
		t.Fatalf("ToVisit: %v", err)
	}
	if v.Readmission30Days != 1 || v.AdverseEvent != 0 {
		t.Errorf("flags = %d/%d, want 1/0", v.Readmission30Days, v.AdverseEvent)
	}
}

func TestToVisit_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]string) []string
		want   string
	}{
		{"short", func(r []string) []string { return r[:5] }, "expected 19 fields"},
		{"bad age", func(r []string) []string { r[2] = "forty"; return r }, "age"},
		{"bad date", func(r []string) []string { r[7] = "someday"; return r }, "visit_date"},
		{"bad cost", func(r []string) []string { r[15] = "$12"; return r }, "total_cost"},
		{"empty patient", func(r []string) []string { r[1] = " "; return r }, "patient_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToVisit(tt.mutate(sampleRecord()), 7)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) || !strings.Contains(err.Error(), "row 7") {
				t.Errorf("error %q should mention %q and row 7", err, tt.want)
			}
		})
	}
}
