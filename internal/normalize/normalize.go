package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gyeh/visitmart/internal/model"
)

// ToVisit converts a raw text record in model.VisitColumns order into a
// Visit. rowNum is only used for error messages.
func ToVisit(rec []string, rowNum int64) (*model.Visit, error) {
	cols := model.VisitColumns()
	if len(rec) != len(cols) {
		return nil, fmt.Errorf("row %d: expected %d fields, got %d", rowNum, len(cols), len(rec))
	}
	f := func(i int) string { return strings.TrimSpace(rec[i]) }

	var v model.Visit
	p := fieldParser{row: rowNum, cols: cols}

	v.VisitID = p.parseInt64(0, f(0))
	v.PatientID = f(1)
	v.Age = p.parseInt(2, f(2))
	v.Gender = f(3)
	v.Ethnicity = f(4)
	v.SocioeconomicStatus = f(5)
	v.InsuranceType = f(6)
	if d := ParseDate(f(7)); d != nil {
		v.VisitDate = *d
	} else if p.err == nil {
		p.err = fmt.Errorf("row %d: %s: unparseable date %q", rowNum, cols[7], f(7))
	}
	v.FacilityName = f(8)
	v.FacilityType = f(9)
	v.Diagnosis = f(10)
	v.ICD10Code = f(11)
	v.Treatment = f(12)
	v.Outcome = f(13)
	v.LengthOfStayDays = p.parseInt(14, f(14))
	v.TotalCost = p.parseFloat(15, f(15))
	v.Readmission30Days = p.parseInt(16, f(16))
	v.SatisfactionScore = p.parseInt(17, f(17))
	v.AdverseEvent = p.parseInt(18, f(18))

	if p.err != nil {
		return nil, p.err
	}
	if v.PatientID == "" {
		return nil, fmt.Errorf("row %d: empty patient_id", rowNum)
	}
	return &v, nil
}

// fieldParser records the first conversion error and keeps going.
type fieldParser struct {
	row  int64
	cols []string
	err  error
}

func (p *fieldParser) fail(i int, s string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("row %d: %s: %q: %w", p.row, p.cols[i], s, err)
	}
}

func (p *fieldParser) parseInt64(i int, s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		p.fail(i, s, err)
	}
	return n
}

func (p *fieldParser) parseInt(i int, s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		// exported flags are sometimes written as booleans
		switch strings.ToLower(s) {
		case "true":
			return 1
		case "false":
			return 0
		}
		p.fail(i, s, err)
	}
	return n
}

func (p *fieldParser) parseFloat(i int, s string) float64 {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(i, s, err)
	}
	return n
}
