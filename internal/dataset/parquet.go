package dataset

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/visitmart/internal/model"
	"github.com/gyeh/visitmart/internal/normalize"
)

// VisitParquet is the Parquet row of one visit. Dates are stored as
// YYYY-MM-DD strings to match the CSV export.
type VisitParquet struct {
	VisitID             int64   `parquet:"visit_id"`
	PatientID           string  `parquet:"patient_id,dict"`
	Age                 int32   `parquet:"age"`
	Gender              string  `parquet:"gender,dict"`
	Ethnicity           string  `parquet:"ethnicity,dict"`
	SocioeconomicStatus string  `parquet:"socioeconomic_status,dict"`
	InsuranceType       string  `parquet:"insurance_type,dict"`
	VisitDate           string  `parquet:"visit_date,dict"`
	FacilityName        string  `parquet:"facility_name,dict"`
	FacilityType        string  `parquet:"facility_type,dict"`
	Diagnosis           string  `parquet:"diagnosis,dict"`
	ICD10Code           string  `parquet:"icd_10_code,dict"`
	Treatment           string  `parquet:"treatment,dict"`
	Outcome             string  `parquet:"outcome,dict"`
	LengthOfStayDays    int32   `parquet:"length_of_stay_days"`
	TotalCost           float64 `parquet:"total_cost"`
	Readmission30Days   int32   `parquet:"readmission_30_days"`
	SatisfactionScore   int32   `parquet:"patient_satisfaction_score"`
	AdverseEvent        int32   `parquet:"adverse_event"`
}

func visitToParquet(v *model.Visit) VisitParquet {
	return VisitParquet{
		VisitID:             v.VisitID,
		PatientID:           v.PatientID,
		Age:                 int32(v.Age),
		Gender:              v.Gender,
		Ethnicity:           v.Ethnicity,
		SocioeconomicStatus: v.SocioeconomicStatus,
		InsuranceType:       v.InsuranceType,
		VisitDate:           v.VisitDate.Format(model.DateLayout),
		FacilityName:        v.FacilityName,
		FacilityType:        v.FacilityType,
		Diagnosis:           v.Diagnosis,
		ICD10Code:           v.ICD10Code,
		Treatment:           v.Treatment,
		Outcome:             v.Outcome,
		LengthOfStayDays:    int32(v.LengthOfStayDays),
		TotalCost:           v.TotalCost,
		Readmission30Days:   int32(v.Readmission30Days),
		SatisfactionScore:   int32(v.SatisfactionScore),
		AdverseEvent:        int32(v.AdverseEvent),
	}
}

// record renders the row as text fields in model.VisitColumns order so it
// goes through the same parsing as a CSV row.
func (p *VisitParquet) record() []string {
	itoa := func(n int32) string { return strconv.FormatInt(int64(n), 10) }
	return []string{
		strconv.FormatInt(p.VisitID, 10),
		p.PatientID,
		itoa(p.Age),
		p.Gender,
		p.Ethnicity,
		p.SocioeconomicStatus,
		p.InsuranceType,
		p.VisitDate,
		p.FacilityName,
		p.FacilityType,
		p.Diagnosis,
		p.ICD10Code,
		p.Treatment,
		p.Outcome,
		itoa(p.LengthOfStayDays),
		strconv.FormatFloat(p.TotalCost, 'f', -1, 64),
		itoa(p.Readmission30Days),
		itoa(p.SatisfactionScore),
		itoa(p.AdverseEvent),
	}
}

const parquetFlushInterval = 100_000

// VisitWriter streams visits to a Snappy-compressed Parquet file.
type VisitWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[VisitParquet]
	count  int
}

// NewVisitWriter creates the file at path.
func NewVisitWriter(path string) (*VisitWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}
	writer := parquet.NewGenericWriter[VisitParquet](file,
		parquet.Compression(&parquet.Snappy),
		parquet.CreatedBy("visitmart", "1.0", ""),
	)
	return &VisitWriter{file: file, writer: writer}, nil
}

// Write appends one visit. Row groups are flushed periodically to bound
// memory.
func (w *VisitWriter) Write(v *model.Visit) error {
	if _, err := w.writer.Write([]VisitParquet{visitToParquet(v)}); err != nil {
		return fmt.Errorf("write parquet visit %d: %w", v.VisitID, err)
	}
	w.count++
	if w.count%parquetFlushInterval == 0 {
		if err := w.writer.Flush(); err != nil {
			return fmt.Errorf("flush parquet row group: %w", err)
		}
	}
	return nil
}

// Close flushes and closes the writer.
func (w *VisitWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}

// WriteVisitsParquet writes visits to a new Parquet file at path.
func WriteVisitsParquet(path string, visits []model.Visit) error {
	w, err := NewVisitWriter(path)
	if err != nil {
		return err
	}
	for i := range visits {
		if err := w.Write(&visits[i]); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// VisitReader streams VisitParquet rows from a file.
type VisitReader struct {
	file   *os.File
	reader *parquet.GenericReader[VisitParquet]
}

// OpenVisits opens a visit Parquet file and checks its schema.
func OpenVisits(path string) (*VisitReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	if err := ValidateSchema(pf.Schema()); err != nil {
		f.Close()
		return nil, err
	}
	return &VisitReader{file: f, reader: parquet.NewGenericReader[VisitParquet](pf)}, nil
}

// NumRows returns the number of rows in the file.
func (r *VisitReader) NumRows() int64 { return r.reader.NumRows() }

// Read reads up to len(rows) rows. It returns io.EOF when done.
func (r *VisitReader) Read(rows []VisitParquet) (int, error) {
	n, err := r.reader.Read(rows)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("read parquet rows: %w", err)
	}
	return n, err
}

// Close releases the reader and its file.
func (r *VisitReader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// ValidateSchema checks that a Parquet schema has every visit column.
func ValidateSchema(schema *parquet.Schema) error {
	have := make(map[string]bool)
	for _, field := range schema.Fields() {
		have[strings.ToLower(field.Name())] = true
	}
	var missing []string
	for _, c := range model.VisitColumns() {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s", ErrHeader, strings.Join(missing, ", "))
	}
	return nil
}

// ReadVisitsParquet reads every visit in a Parquet file.
func ReadVisitsParquet(path string) ([]model.Visit, error) {
	r, err := OpenVisits(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	visits := make([]model.Visit, 0, r.NumRows())
	buf := make([]VisitParquet, 256)
	row := int64(0)
	for {
		n, readErr := r.Read(buf)
		for i := 0; i < n; i++ {
			row++
			v, err := normalize.ToVisit(buf[i].record(), row)
			if err != nil {
				return nil, err
			}
			visits = append(visits, *v)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, readErr
		}
	}
	return visits, nil
}

// SummaryParquet is the Parquet row of one patient summary.
type SummaryParquet struct {
	PatientID          string   `parquet:"patient_id"`
	Age                int32    `parquet:"age"`
	AgeGroup           string   `parquet:"age_group,dict"`
	Gender             string   `parquet:"gender,dict"`
	Ethnicity          string   `parquet:"ethnicity,dict"`
	InsuranceType      string   `parquet:"insurance_type,dict"`
	TotalVisits        int32    `parquet:"total_visits"`
	FirstVisitDate     *string  `parquet:"first_visit_date,optional"`
	LastVisitDate      *string  `parquet:"last_visit_date,optional"`
	TotalCost          float64  `parquet:"total_cost"`
	AvgSatisfaction    *float64 `parquet:"average_satisfaction_score,optional"`
	Readmissions30Day  int32    `parquet:"readmissions_30_day"`
	AdverseEventsCount int32    `parquet:"adverse_events_count"`
	DaysSinceLastVisit *int32   `parquet:"days_since_last_visit,optional"`
	ChronicConditions  int32    `parquet:"chronic_condition_count"`
	HighRiskPatient    bool     `parquet:"high_risk_patient"`
	LastUpdated        string   `parquet:"last_updated"`
}

func summaryToParquet(s *model.PatientSummary) SummaryParquet {
	row := SummaryParquet{
		PatientID:          s.PatientID,
		Age:                int32(s.Age),
		AgeGroup:           s.AgeGroup,
		Gender:             s.Gender,
		Ethnicity:          s.Ethnicity,
		InsuranceType:      s.InsuranceType,
		TotalVisits:        int32(s.TotalVisits),
		FirstVisitDate:     formatDate(s.FirstVisitDate),
		LastVisitDate:      formatDate(s.LastVisitDate),
		TotalCost:          s.TotalCost,
		AvgSatisfaction:    s.AvgSatisfaction,
		Readmissions30Day:  int32(s.Readmissions30Day),
		AdverseEventsCount: int32(s.AdverseEventsCount),
		ChronicConditions:  int32(s.ChronicConditions),
		HighRiskPatient:    s.HighRiskPatient,
		LastUpdated:        s.LastUpdated.UTC().Format(time.RFC3339),
	}
	if s.DaysSinceLastVisit != nil {
		d := int32(*s.DaysSinceLastVisit)
		row.DaysSinceLastVisit = &d
	}
	return row
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := normalize.CalendarDate(*t).Format(model.DateLayout)
	return &s
}

// WriteSummariesParquet writes patient summaries to a new Parquet file.
func WriteSummariesParquet(path string, rows []model.PatientSummary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}
	writer := parquet.NewGenericWriter[SummaryParquet](file,
		parquet.Compression(&parquet.Snappy),
		parquet.CreatedBy("visitmart", "1.0", ""),
	)
	batch := make([]SummaryParquet, 0, 1024)
	for i := range rows {
		batch = append(batch, summaryToParquet(&rows[i]))
		if len(batch) == cap(batch) {
			if _, err := writer.Write(batch); err != nil {
				writer.Close()
				file.Close()
				return fmt.Errorf("write parquet summaries: %w", err)
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if _, err := writer.Write(batch); err != nil {
			writer.Close()
			file.Close()
			return fmt.Errorf("write parquet summaries: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return file.Close()
}
