package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a diagnosis has no profile.
	ErrNotFound = errors.New("diagnosis not in catalog")
	// ErrCatalogGap is returned when an age band references a diagnosis
	// that has no profile.
	ErrCatalogGap = errors.New("catalog gap")
	// ErrInvalidRange is returned for a negative or inverted cost/LOS range.
	ErrInvalidRange = errors.New("invalid range")
)

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64
	Max float64
}

// DayRange is an inclusive length-of-stay interval in days.
type DayRange struct {
	Min int
	Max int
}

// Profile describes the clinical pattern of one diagnosis.
type Profile struct {
	Diagnosis    string
	Treatments   []string
	Cost         Range
	LengthOfStay DayRange
	SuccessRate  float64
	ICD10        string
}

// AgeBand maps an inclusive age range to the diagnoses seen in it.
type AgeBand struct {
	MinAge    int
	MaxAge    int
	Diagnoses []string
}

// Contains reports whether age falls inside the band.
func (b AgeBand) Contains(age int) bool {
	return age >= b.MinAge && age <= b.MaxAge
}

// Catalog is a read-only lookup of diagnosis profiles and age eligibility.
type Catalog struct {
	profiles map[string]Profile
	order    []string
	bands    []AgeBand
	fallback string
}

// New builds a catalog. Profiles keep their given order; bands are checked
// in order and the first containing band wins.
func New(profiles []Profile, bands []AgeBand, fallback string) *Catalog {
	c := &Catalog{
		profiles: make(map[string]Profile, len(profiles)),
		order:    make([]string, 0, len(profiles)),
		bands:    bands,
		fallback: fallback,
	}
	for _, p := range profiles {
		if _, dup := c.profiles[p.Diagnosis]; !dup {
			c.order = append(c.order, p.Diagnosis)
		}
		c.profiles[p.Diagnosis] = p
	}
	return c
}

// Default returns the shipped reference catalog.
func Default() *Catalog {
	return New(Profiles, AgeBands, FallbackDiagnosis)
}

// ProfileFor returns the profile of a diagnosis.
func (c *Catalog) ProfileFor(diagnosis string) (Profile, error) {
	p, ok := c.profiles[diagnosis]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrNotFound, diagnosis)
	}
	return p, nil
}

// Eligible returns the diagnoses eligible for age. When no band contains the
// age it returns the fallback diagnosis alone and ok=false.
func (c *Catalog) Eligible(age int) (diagnoses []string, ok bool) {
	for _, b := range c.bands {
		if b.Contains(age) {
			return b.Diagnoses, true
		}
	}
	return []string{c.fallback}, false
}

// Diagnoses lists profile names in catalog order.
func (c *Catalog) Diagnoses() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Validate checks that every banded diagnosis (and the fallback) has a
// profile and that all ranges are well-formed.
func (c *Catalog) Validate() error {
	for _, b := range c.bands {
		if b.MinAge > b.MaxAge {
			return fmt.Errorf("%w: age band %d-%d", ErrInvalidRange, b.MinAge, b.MaxAge)
		}
		if len(b.Diagnoses) == 0 {
			return fmt.Errorf("%w: age band %d-%d has no diagnoses", ErrCatalogGap, b.MinAge, b.MaxAge)
		}
		for _, d := range b.Diagnoses {
			if _, ok := c.profiles[d]; !ok {
				return fmt.Errorf("%w: %q (age band %d-%d) has no profile", ErrCatalogGap, d, b.MinAge, b.MaxAge)
			}
		}
	}
	if _, ok := c.profiles[c.fallback]; !ok {
		return fmt.Errorf("%w: fallback %q has no profile", ErrCatalogGap, c.fallback)
	}
	for _, name := range c.order {
		p := c.profiles[name]
		if p.Cost.Min < 0 || p.Cost.Min > p.Cost.Max {
			return fmt.Errorf("%w: %q cost %.2f-%.2f", ErrInvalidRange, name, p.Cost.Min, p.Cost.Max)
		}
		if p.LengthOfStay.Min < 0 || p.LengthOfStay.Min > p.LengthOfStay.Max {
			return fmt.Errorf("%w: %q length of stay %d-%d", ErrInvalidRange, name, p.LengthOfStay.Min, p.LengthOfStay.Max)
		}
		if len(p.Treatments) == 0 {
			return fmt.Errorf("%w: %q has no treatments", ErrCatalogGap, name)
		}
	}
	return nil
}
