// Package dataset reads and writes visit batches and patient summaries as
// CSV and Parquet files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gyeh/visitmart/internal/model"
	"github.com/gyeh/visitmart/internal/normalize"
)

// ErrHeader is returned when a CSV header does not match the visit columns.
var ErrHeader = errors.New("unexpected visit header")

// WriteVisitsCSV writes a header row and one row per visit.
func WriteVisitsCSV(w io.Writer, visits []model.Visit) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.VisitColumns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range visits {
		if err := cw.Write(visits[i].Record()); err != nil {
			return fmt.Errorf("write visit %d: %w", visits[i].VisitID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadVisitsCSV reads a visit CSV. The header must name the visit columns
// in order (case and surrounding space are ignored).
func ReadVisitsCSV(r io.Reader) ([]model.Visit, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := ValidateHeader(header); err != nil {
		return nil, err
	}

	var visits []model.Visit
	row := int64(1)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		v, err := normalize.ToVisit(rec, row)
		if err != nil {
			return nil, err
		}
		visits = append(visits, *v)
	}
	return visits, nil
}

// ValidateHeader checks a header row against model.VisitColumns.
func ValidateHeader(header []string) error {
	cols := model.VisitColumns()
	if len(header) != len(cols) {
		return fmt.Errorf("%w: %d columns, want %d", ErrHeader, len(header), len(cols))
	}
	for i, c := range cols {
		// Excel-saved files carry a byte order mark.
		got := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")))
		if got != c {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrHeader, i+1, header[i], c)
		}
	}
	return nil
}

// WriteVisitsCSVFile writes visits to a new CSV file at path.
func WriteVisitsCSVFile(path string, visits []model.Visit) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	if err := WriteVisitsCSV(f, visits); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadVisitsFile reads a visit batch from a .parquet file or, for any other
// extension, a CSV file.
func ReadVisitsFile(path string) ([]model.Visit, error) {
	if IsParquet(path) {
		return ReadVisitsParquet(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()
	return ReadVisitsCSV(f)
}

// IsParquet reports whether path names a Parquet file.
func IsParquet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".parquet")
}
