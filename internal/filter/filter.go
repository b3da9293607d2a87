// Package filter derives the list views from a fetched routine set. Input order
// is preserved and the input slice is never modified.
package filter

import (
	"fmt"
	"strings"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
)

// All disables the frequency filter.
const All = "all"

// Criteria combines the filters offered by the list and timeline views.
type Criteria struct {
	// Frequency is "all", empty, or a model.TimeUnit.
	Frequency  string
	Query      string
	ActiveOnly bool
}

// ParseFrequency accepts "", "all" or a known unit.
func ParseFrequency(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == All {
		return All, nil
	}
	if !model.TimeUnit(s).Valid() {
		return "", fmt.Errorf("unknown frequency type %q", s)
	}
	return s, nil
}

func keep(rs []model.Routine, pred func(model.Routine) bool) []model.Routine {
	out := make([]model.Routine, 0, len(rs))
	for _, r := range rs {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// ByFrequency keeps routines whose frequencyType equals f; "all" or "" keeps everything.
func ByFrequency(rs []model.Routine, f string) []model.Routine {
	if f == "" || f == All {
		return keep(rs, func(model.Routine) bool { return true })
	}
	return keep(rs, func(r model.Routine) bool { return string(r.FrequencyType) == f })
}

// Search keeps routines whose name or description contains q, ignoring case.
func Search(rs []model.Routine, q string) []model.Routine {
	q = strings.ToLower(q)
	if q == "" {
		return keep(rs, func(model.Routine) bool { return true })
	}
	return keep(rs, func(r model.Routine) bool {
		if strings.Contains(strings.ToLower(r.Name), q) {
			return true
		}
		return r.Description != nil && strings.Contains(strings.ToLower(*r.Description), q)
	})
}

// ActiveOnly keeps routines with isActive set.
func ActiveOnly(rs []model.Routine) []model.Routine {
	return keep(rs, func(r model.Routine) bool { return r.IsActive })
}

// Apply runs the active pre-filter, then the frequency filter, then the search.
func Apply(rs []model.Routine, c Criteria) []model.Routine {
	if c.ActiveOnly {
		rs = ActiveOnly(rs)
	}
	return Search(ByFrequency(rs, c.Frequency), c.Query)
}
