package model

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when a range constructor receives start > end.
var ErrInvalidRange = errors.New("invalid year range: start > end")

// YearRange is a closed integer interval [Start, End] of calendar years.
// A single-year claim is represented as Start == End.
type YearRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// NewYearRange validates and constructs a YearRange.
// Malformed ranges are rejected here, never silently fixed.
func NewYearRange(start, end int) (YearRange, error) {
	if start > end {
		return YearRange{}, fmt.Errorf("%w: %d > %d", ErrInvalidRange, start, end)
	}
	return YearRange{Start: start, End: end}, nil
}

// MustYearRange constructs a YearRange and panics on invalid input.
// For literals in tests and built-in catalog data.
func MustYearRange(start, end int) YearRange {
	r, err := NewYearRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// Overlaps reports whether the two ranges share at least one year.
func (r YearRange) Overlaps(other YearRange) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// Intersect returns the overlapping range and true, or a zero range and
// false when the ranges are disjoint. Symmetric: Intersect(a,b) == Intersect(b,a).
func (r YearRange) Intersect(other YearRange) (YearRange, bool) {
	start := r.Start
	if other.Start > start {
		start = other.Start
	}
	end := r.End
	if other.End < end {
		end = other.End
	}
	if start > end {
		return YearRange{}, false
	}
	return YearRange{Start: start, End: end}, true
}

// Width is the span of the range in years (0 for a point).
func (r YearRange) Width() int {
	return r.End - r.Start
}

// Midpoint is the center year, ties rounded down. Years are never
// negative (the horizon forbids BCE dates), so integer division is exact.
func (r YearRange) Midpoint() int {
	return (r.Start + r.End) / 2
}

// ContainsPoint reports whether the year falls inside the range.
func (r YearRange) ContainsPoint(year int) bool {
	return r.Start <= year && year <= r.End
}

// Contains reports whether other lies entirely within r.
func (r YearRange) Contains(other YearRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// OverlapFraction returns width(r ∩ ref) / width(ref), with ref as the
// reference range. Asymmetric by design: a narrow correct guess and a wide
// correct guess sharing the same absolute overlap score differently.
// A point reference uses denominator 1.
func (r YearRange) OverlapFraction(ref YearRange) float64 {
	inter, ok := r.Intersect(ref)
	if !ok {
		return 0
	}
	den := ref.Width()
	if den < 1 {
		den = 1
	}
	return float64(inter.Width()) / float64(den)
}

func (r YearRange) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
